package speakers

// Chunk is a zero-copy view into producer-owned memory: either Raw
// bytes (compressed/container formats) or per-channel Samples (linear
// format) is live, never both. The referenced buffer must live until
// the next call into the producer that issued the chunk.
type Chunk struct {
	Spk Speakers

	Raw     []byte
	Samples [MaxChannels][]float64

	// Size is the element count: bytes for Raw, samples-per-channel for
	// Samples.
	Size int

	// Sync, if true, means Time applies to the first sample/byte of
	// this chunk. An end-of-stream marker is an empty chunk with
	// Sync==true (the normalized form chosen in SPEC_FULL.md; there is
	// no separate eos field).
	Sync bool
	Time float64
}

// IsDummy reports a chunk carrying no data and no timestamp.
func (c Chunk) IsDummy() bool { return c.Size == 0 && !c.Sync }

// IsEOS reports the normalized end-of-stream marker: empty and synced.
func (c Chunk) IsEOS() bool { return c.Size == 0 && c.Sync }

// IsRaw reports whether Raw (as opposed to Samples) is the live field.
func (c Chunk) IsRaw() bool { return c.Spk.Format.IsCompressed() || c.Spk.Format.IsContainer() || c.Spk.Format.IsPCM() && !c.Spk.Format.IsLinear() }

// EOS builds the normalized end-of-stream chunk for spk.
func EOS(spk Speakers) Chunk {
	return Chunk{Spk: spk, Sync: true}
}

// Dummy builds a chunk carrying no data, for filters that must return a
// chunk but have nothing to say.
func Dummy(spk Speakers) Chunk {
	return Chunk{Spk: spk}
}
