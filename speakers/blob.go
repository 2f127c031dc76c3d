package speakers

import "sync/atomic"

// Blob is the reference-counted holder behind Speakers.FormatData. Side
// information (a Vorbis setup header, say) is expensive enough to copy
// that Speakers values share one Blob by reference; Clone bumps the
// refcount instead of copying bytes.
type Blob struct {
	bytes []byte
	refs  *int32
}

// NewBlob wraps data (not copied) in a fresh, single-owner Blob.
func NewBlob(data []byte) Blob {
	n := int32(1)
	return Blob{bytes: data, refs: &n}
}

// Clone returns a Blob sharing the same backing bytes, with the refcount
// incremented. The caller may hold it across Speakers copies without
// cloning the buffer, per the shared-resource policy.
func (b Blob) Clone() Blob {
	if b.refs == nil {
		return b
	}
	atomic.AddInt32(b.refs, 1)
	return b
}

// Release decrements the refcount. It is advisory bookkeeping only: Go's
// GC reclaims the backing array once the last reference is dropped, so
// Release exists for callers that want to track liveness, not to free
// memory manually.
func (b Blob) Release() {
	if b.refs != nil {
		atomic.AddInt32(b.refs, -1)
	}
}

// Bytes returns the underlying bytes. Callers must not mutate them.
func (b Blob) Bytes() []byte { return b.bytes }

func (b Blob) IsZero() bool { return b.bytes == nil }

// Equal compares two blobs by byte content, per the Speakers equality
// rule ("format_data compared by bytes").
func (b Blob) Equal(other Blob) bool {
	if len(b.bytes) != len(other.bytes) {
		return false
	}
	for i := range b.bytes {
		if b.bytes[i] != other.bytes[i] {
			return false
		}
	}
	return true
}
