// Package ac3 implements parser.CodecParser for ATSC A/52 (AC-3)
// elementary streams. Dolby Digital Plus (E-AC-3) headers share the
// sync word but are rejected by ParseHeader (bsid above 8).
package ac3

import (
	"github.com/doismellburning/valib/parser"
	"github.com/doismellburning/valib/speakers"
)

// Parser recognizes AC-3 frames. E-AC-3 reuses the same 0x0B77 sync
// word but a different header layout (bsid 16..), which a future
// bsid-dispatching ParseHeader can add without touching the trie.
type Parser struct{}

func New() *Parser { return &Parser{} }

func (*Parser) Name() string { return "ac3" }

// SyncInfo builds the trie for spec.md's two AC-3 sync-word byte
// orders: 0x0B77 for a normal big-endian bitstream, 0x770B for the
// byte-swapped ("16-bit shuffled") bitstream some SPDIF sources emit.
func (*Parser) SyncInfo() parser.SyncInfo {
	trie := parser.Byte(0x0b77, 2).Or(parser.Byte(0x770b, 2))
	return parser.SyncInfo{Trie: trie, MinFrameSize: 128, MaxFrameSize: 3840}
}

func (*Parser) HeaderSize() int { return 7 }

// frameSizeWords[bitrateIndex][fscod] is the standard AC-3 frame size
// table (in 16-bit words), indexed by frmsizecod/2 and sample-rate code.
var frameSizeWords = [19][3]int{
	{64, 69, 96}, {80, 87, 120}, {96, 104, 144}, {112, 121, 168},
	{128, 139, 192}, {160, 174, 240}, {192, 208, 288}, {224, 243, 336},
	{256, 278, 384}, {320, 348, 480}, {384, 417, 576}, {448, 487, 672},
	{512, 557, 768}, {640, 696, 960}, {768, 835, 1152}, {896, 975, 1344},
	{1024, 1114, 1536}, {1152, 1253, 1728}, {1280, 1393, 1920},
}

// The odd frmsizecod in each pair uses one extra word at 44.1kHz to
// compensate for its fractional sample rate; everything else is shared
// between the even/odd pair, so this table only needs the +1 correction.
var frameSizeWords44k1Odd = [19]int{
	70, 88, 105, 122, 140, 175, 209, 244, 279, 349, 418, 488, 558, 697, 836, 976, 1115, 1254, 1394,
}

var sampleRates = [3]int{48000, 44100, 32000}

func (*Parser) ParseHeader(buf []byte) (parser.FrameInfo, bool) {
	if len(buf) < 7 {
		return parser.FrameInfo{}, false
	}
	fscod := buf[4] >> 6
	frmsizecod := buf[4] & 0x3f
	if fscod == 3 || frmsizecod > 37 {
		return parser.FrameInfo{}, false
	}
	bsid := buf[5] >> 3
	if bsid > 8 {
		return parser.FrameInfo{}, false // E-AC-3/reserved, not handled by this parser yet
	}
	acmod := (buf[6] >> 5) & 0x7
	bitIdx := int(frmsizecod) >> 1
	words := frameSizeWords[bitIdx][fscod]
	if frmsizecod&1 == 1 && fscod == 1 {
		words = frameSizeWords44k1Odd[bitIdx]
	}
	frameBytes := words * 2

	bitPos := 3 // consumed acmod's 3 bits out of buf[6]
	readBits := func(n int) int {
		v := 0
		for n > 0 {
			byteIdx := 6 + bitPos/8
			if byteIdx >= len(buf) {
				return v
			}
			bitInByte := 7 - bitPos%8
			v = v<<1 | int((buf[byteIdx]>>uint(bitInByte))&1)
			bitPos++
			n--
		}
		return v
	}
	if acmod == 2 {
		readBits(2) // dsurmod
	}
	if acmod&0x1 != 0 && acmod != 1 {
		readBits(2) // cmixlev
	}
	if acmod&0x4 != 0 {
		readBits(2) // surmixlev
	}
	lfeon := readBits(1) == 1

	mask := acmodMask(acmod)
	if lfeon {
		mask |= speakers.Bit(speakers.LFE)
	}

	spk := speakers.New(speakers.AC3, mask, sampleRates[fscod])
	return parser.FrameInfo{
		Spk:       spk,
		FrameSize: frameBytes,
		NSamples:  1536,
	}, true
}

func acmodMask(acmod byte) speakers.Mask {
	switch acmod {
	case 0:
		return speakers.ModeStereo // 1+1 dual mono, carried as two independent mono channels
	case 1:
		return speakers.Bit(speakers.C)
	case 2:
		return speakers.ModeStereo
	case 3:
		return speakers.Mode3_0
	case 4:
		return speakers.ModeStereo | speakers.Bit(speakers.BC)
	case 5:
		return speakers.Mode3_0 | speakers.Bit(speakers.BC)
	case 6:
		return speakers.ModeQuadro
	case 7:
		return speakers.Mode3_0 | speakers.Bit(speakers.SL) | speakers.Bit(speakers.SR)
	default:
		return speakers.ModeStereo
	}
}

// CompareHeaders treats fscod/acmod/lfeon and the bsid/bsmod byte as
// the stream-identity fields; frmsizecod (hence bitrate) can legally
// change frame to frame without that counting as a new stream.
func (*Parser) CompareHeaders(a, b []byte) bool {
	if len(a) < 7 || len(b) < 7 {
		return false
	}
	// lfeon always falls in byte 6, after acmod and the optional
	// 2-bit mix/surround fields that acmod selects.
	lfeon := func(b6 byte) byte {
		acmod, pos := b6>>5, 3
		if acmod == 2 {
			pos += 2
		}
		if acmod&0x1 != 0 && acmod != 1 {
			pos += 2
		}
		if acmod&0x4 != 0 {
			pos += 2
		}
		return (b6 >> uint(7-pos)) & 1
	}
	return a[4]>>6 == b[4]>>6 && a[6]>>5 == b[6]>>5 && a[5] == b[5] && lfeon(a[6]) == lfeon(b[6])
}

func (p *Parser) BuildSyncInfo(_ []byte, _ parser.FrameInfo) parser.SyncInfo {
	return p.SyncInfo()
}
