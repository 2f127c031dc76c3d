// Package aac implements parser.CodecParser for ADTS-framed AAC
// elementary streams.
package aac

import (
	"github.com/doismellburning/valib/parser"
	"github.com/doismellburning/valib/speakers"
)

type Parser struct{}

func New() *Parser { return &Parser{} }

func (*Parser) Name() string { return "aac" }

// SyncInfo matches the 12-bit ADTS sync word and constrains the
// following nibble to layer==00, the same constrained-field trick MPA's
// sync uses. The sampling-frequency index (in the third byte) is not
// part of the trie; ParseHeader rejects reserved values.
func (*Parser) SyncInfo() parser.SyncInfo {
	trie := parser.Byte(0xff, 1).Concat(parser.Pred(func(b byte) bool {
		return b&0xf0 == 0xf0 && (b>>1)&0x3 == 0
	}))
	return parser.SyncInfo{Trie: trie, MinFrameSize: 7, MaxFrameSize: 8191}
}

func (*Parser) HeaderSize() int { return 7 }

var sampleRates = [13]int{
	96000, 88200, 64000, 48000, 44100, 32000,
	24000, 22050, 16000, 12000, 11025, 8000, 7350,
}

func (*Parser) ParseHeader(buf []byte) (parser.FrameInfo, bool) {
	if len(buf) < 7 || buf[0] != 0xff || buf[1]&0xf0 != 0xf0 {
		return parser.FrameInfo{}, false
	}
	layer := (buf[1] >> 1) & 0x3
	if layer != 0 {
		return parser.FrameInfo{}, false
	}
	freqIdx := (buf[2] >> 2) & 0xf
	if freqIdx >= 13 {
		return parser.FrameInfo{}, false
	}
	chanCfg := (buf[2]&0x1)<<2 | (buf[3] >> 6)
	frameLen := int(buf[3]&0x3)<<11 | int(buf[4])<<3 | int(buf[5]>>5)
	nblocks := buf[6] & 0x3

	if frameLen < 7 {
		return parser.FrameInfo{}, false
	}

	spk := speakers.New(speakers.AAC, chanConfigMask(chanCfg), sampleRates[freqIdx])
	return parser.FrameInfo{
		Spk:       spk,
		FrameSize: frameLen,
		NSamples:  1024 * (int(nblocks) + 1),
	}, true
}

func chanConfigMask(cfg byte) speakers.Mask {
	switch cfg {
	case 1:
		return speakers.Bit(speakers.C)
	case 2:
		return speakers.ModeStereo
	case 3:
		return speakers.Mode3_0
	case 4:
		return speakers.Mode3_0 | speakers.Bit(speakers.BC)
	case 5:
		return speakers.Mode3_0 | speakers.Bit(speakers.SL) | speakers.Bit(speakers.SR)
	case 6:
		return speakers.Mode5_1
	case 7:
		return speakers.Mode3_0 | speakers.Bit(speakers.SL) | speakers.Bit(speakers.SR) |
			speakers.Bit(speakers.BL) | speakers.Bit(speakers.BR)
	default:
		return speakers.ModeStereo
	}
}

func (*Parser) CompareHeaders(a, b []byte) bool {
	if len(a) < 3 || len(b) < 3 {
		return false
	}
	return a[2]&0xfd == b[2]&0xfd && ((a[2]&0x1)<<2|(a[3]>>6)) == ((b[2]&0x1)<<2|(b[3]>>6))
}

func (p *Parser) BuildSyncInfo(_ []byte, _ parser.FrameInfo) parser.SyncInfo {
	return p.SyncInfo()
}
