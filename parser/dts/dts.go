// Package dts implements parser.CodecParser for DTS Coherent Acoustics
// core frames, accepting all four bitstream packings the format can
// arrive in over SPDIF: 14/16-bit words, big/little-endian.
package dts

import (
	"github.com/doismellburning/valib/parser"
	"github.com/doismellburning/valib/speakers"
)

type Parser struct{}

func New() *Parser { return &Parser{} }

func (*Parser) Name() string { return "dts" }

func (*Parser) SyncInfo() parser.SyncInfo {
	trie := parser.Byte(0x7ffe8001, 4).
		Or(parser.Byte(0xfe7f0180, 4)).
		Or(parser.Byte(0x1fffe800, 4)).
		Or(parser.Byte(0xff1f00e8, 4))
	return parser.SyncInfo{Trie: trie, MinFrameSize: 96, MaxFrameSize: 18724}
}

func (*Parser) HeaderSize() int { return 14 }

func bsTypeOf(buf []byte) parser.BSType {
	switch {
	case buf[0] == 0x7f && buf[1] == 0xfe && buf[2] == 0x80 && buf[3] == 0x01:
		return parser.BS16BE
	case buf[0] == 0xfe && buf[1] == 0x7f && buf[2] == 0x01 && buf[3] == 0x80:
		return parser.BS16LE
	case buf[0] == 0x1f && buf[1] == 0xff && buf[2] == 0xe8 && buf[3] == 0x00:
		return parser.BS14BE
	default:
		return parser.BS14LE
	}
}

// normalize converts any of the four on-wire packings to a flat 16-bit
// big-endian working buffer: swap byte pairs for the LE forms, and for
// the 14-in-16 forms concatenate the low 14 bits of each word into a
// continuous bitstream that is then re-chunked into 16-bit words.
func normalize(buf []byte, bs parser.BSType) []byte {
	switch bs {
	case parser.BS16BE:
		return buf
	case parser.BS16LE:
		out := make([]byte, len(buf)&^1)
		for i := 0; i+1 < len(buf); i += 2 {
			out[i], out[i+1] = buf[i+1], buf[i]
		}
		return out
	case parser.BS14BE, parser.BS14LE:
		words := make([]uint16, 0, len(buf)/2)
		for i := 0; i+1 < len(buf); i += 2 {
			hi, lo := buf[i], buf[i+1]
			if bs == parser.BS14LE {
				hi, lo = lo, hi
			}
			words = append(words, uint16(hi)<<8|uint16(lo))
		}
		var bitBuf uint64
		nbits := 0
		out := make([]byte, 0, len(buf))
		for _, w := range words {
			bitBuf = bitBuf<<14 | uint64(w&0x3fff)
			nbits += 14
			for nbits >= 16 {
				nbits -= 16
				out = append(out, byte(bitBuf>>uint(nbits+8)), byte(bitBuf>>uint(nbits)))
			}
		}
		return out
	}
	return buf
}

var sampleRateTab = map[byte]int{
	1: 8000, 2: 16000, 3: 32000, 6: 11025, 7: 22050, 8: 44100,
	11: 12000, 12: 24000, 13: 48000, 14: 96000, 15: 192000,
}

func (p *Parser) ParseHeader(buf []byte) (parser.FrameInfo, bool) {
	if len(buf) < 14 {
		return parser.FrameInfo{}, false
	}
	bs := bsTypeOf(buf)
	core := normalize(buf, bs)
	if len(core) < 10 {
		return parser.FrameInfo{}, false
	}
	// core[0:4] is the 16BE-normalized sync word; fields start at bit 32.
	read := bitReader{buf: core, pos: 32}
	read.read(1)          // FTYPE
	read.read(5)           // SHORT
	read.read(1)           // CPF
	nblks := read.read(7)  // NBLKS
	fsize := read.read(14) // FSIZE
	amode := read.read(6)  // AMODE
	sfreq := read.read(4)  // SFREQ
	read.read(5)            // RATE

	rate, ok := sampleRateTab[byte(sfreq)]
	if !ok {
		return parser.FrameInfo{}, false
	}
	frameBytes := int(fsize) + 1
	if frameBytes < 96 {
		return parser.FrameInfo{}, false
	}

	spk := speakers.New(speakers.DTS, amodeMask(byte(amode)), rate)
	return parser.FrameInfo{
		Spk:       spk,
		FrameSize: frameBytes,
		NSamples:  (int(nblks) + 1) * 32,
		BSType:    bs,
	}, true
}

type bitReader struct {
	buf []byte
	pos int
}

func (r *bitReader) read(n int) uint32 {
	var v uint32
	for n > 0 {
		byteIdx := r.pos / 8
		if byteIdx >= len(r.buf) {
			return v
		}
		bitInByte := 7 - r.pos%8
		v = v<<1 | uint32((r.buf[byteIdx]>>uint(bitInByte))&1)
		r.pos++
		n--
	}
	return v
}

func amodeMask(amode byte) speakers.Mask {
	switch amode {
	case 0:
		return speakers.Bit(speakers.C)
	case 1, 2:
		return speakers.ModeStereo
	case 3:
		return speakers.Mode3_0
	case 4:
		return speakers.ModeStereo | speakers.Bit(speakers.BC)
	case 5:
		return speakers.Mode3_0 | speakers.Bit(speakers.BC)
	case 6:
		return speakers.ModeQuadro
	case 7, 8, 9:
		return speakers.Mode3_0 | speakers.Bit(speakers.SL) | speakers.Bit(speakers.SR)
	default:
		return speakers.Mode5_1
	}
}

func (*Parser) CompareHeaders(a, b []byte) bool {
	if len(a) < 14 || len(b) < 14 {
		return false
	}
	return bsTypeOf(a) == bsTypeOf(b)
}

// BuildSyncInfo narrows the trie to the bitstream type this stream has
// already locked onto, once the first frame has revealed it, instead of
// re-testing all four packings on every subsequent frame.
func (*Parser) BuildSyncInfo(_ []byte, info parser.FrameInfo) parser.SyncInfo {
	var trie parser.SyncTrie
	switch info.BSType {
	case parser.BS16BE:
		trie = parser.Byte(0x7ffe8001, 4)
	case parser.BS16LE:
		trie = parser.Byte(0xfe7f0180, 4)
	case parser.BS14BE:
		trie = parser.Byte(0x1fffe800, 4)
	default:
		trie = parser.Byte(0xff1f00e8, 4)
	}
	return parser.SyncInfo{Trie: trie, MinFrameSize: 96, MaxFrameSize: 18724}
}
