package parser

import "github.com/doismellburning/valib/speakers"

// BSType is the bitstream endianness/word-width tag a frame was found
// in, relevant for formats (DTS, MPA) that can appear in more than one
// byte order.
type BSType int

const (
	BS8 BSType = iota
	BS16BE
	BS16LE
	BS14BE
	BS14LE
)

// FrameInfo is the per-frame descriptor a CodecParser produces once a
// candidate sync has been validated.
type FrameInfo struct {
	Spk        speakers.Speakers
	FrameSize  int
	NSamples   int
	BSType     BSType
	SPDIFType  int
}

// SyncInfo pairs a compiled SyncTrie with the frame-size bounds a codec
// promises: frames are never shorter than MinFrameSize nor longer than
// MaxFrameSize. StreamBuffer records both bounds but does not act on
// them; its bridging accumulator grows as a frame needs.
type SyncInfo struct {
	Trie          SyncTrie
	MinFrameSize  int
	MaxFrameSize  int
}
