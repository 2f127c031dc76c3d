package graph

import "github.com/doismellburning/valib/speakers"

// Source is a pull-based producer of chunks.
type Source interface {
	// GetOutput is the current output format; Unknown iff the source
	// has not produced data yet.
	GetOutput() speakers.Speakers

	// NewStream is set exactly on the first chunk of a new stream
	// (after a format change, or on the first chunk ever). It is
	// cleared by the next GetChunk call.
	NewStream() bool

	// GetChunk fills out and returns true, or returns false at end of
	// stream. It may block, and may return a *Error (recoverable only
	// by Reset).
	GetChunk(out *speakers.Chunk) (bool, error)

	// Reset returns to the initial position, drops internal buffering,
	// and clears NewStream.
	Reset()
}

// Filter is a stateful transducer between two Speakers formats.
type Filter interface {
	// CanOpen is a pure predicate on static state plus spk.
	CanOpen(spk speakers.Speakers) bool

	// Open allocates and enters the open state. After success,
	// GetInput() == spk; GetOutput() is either known immediately or
	// Unknown until the first output chunk.
	Open(spk speakers.Speakers) error

	// Close releases resources. Idempotent.
	Close()

	// Reset drops buffered data and prepares for a fresh stream at the
	// same input format; it never causes a subsequent NewStream.
	Reset()

	GetInput() speakers.Speakers
	GetOutput() speakers.Speakers

	// Process consumes a prefix of in (in is updated to reflect what
	// remains). If an output chunk is ready, it fills out and returns
	// true. Must be called repeatedly with the same in until it
	// returns false, at which point in may be replaced. A filter that
	// has accepted all input but not yet produced returns false with
	// in left empty.
	Process(in *speakers.Chunk, out *speakers.Chunk) (bool, error)

	// Flush drains internal buffers one chunk at a time after upstream
	// EOS, using the same polling discipline as Process. Returns false
	// once the filter is empty.
	Flush(out *speakers.Chunk) (bool, error)

	// NewStream is set on the first output chunk whose Speakers differ
	// from the previous output, or on the first chunk after an
	// implicit re-open. Cleared on the next call.
	NewStream() bool
}

// Sink is a push-based consumer of chunks.
type Sink interface {
	CanOpen(spk speakers.Speakers) bool
	Open(spk speakers.Speakers) error
	Close()
	Reset()
	GetInput() speakers.Speakers

	// Process accepts in; in must be fully consumed or an error
	// returned (sinks have no downstream to push partial data to).
	Process(in *speakers.Chunk) error
}
