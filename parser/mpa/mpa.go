// Package mpa implements parser.CodecParser for MPEG-1/2 Audio Layer
// I/II/III elementary streams.
package mpa

import (
	"github.com/doismellburning/valib/parser"
	"github.com/doismellburning/valib/speakers"
)

type Parser struct{}

func New() *Parser { return &Parser{} }

func (*Parser) Name() string { return "mpa" }

// SyncInfo matches the 11-bit all-ones sync word followed by a version
// field that isn't the reserved value and a layer field that isn't the
// reserved value, narrowing the trie past what a plain byte/mask pair
// could express.
func (*Parser) SyncInfo() parser.SyncInfo {
	trie := parser.Byte(0xff, 1).Concat(parser.Pred(func(b byte) bool {
		return b&0xe0 == 0xe0 && (b>>3)&0x3 != 1 && (b>>1)&0x3 != 0
	}))
	return parser.SyncInfo{Trie: trie, MinFrameSize: 24, MaxFrameSize: 1441}
}

func (*Parser) HeaderSize() int { return 4 }

var sampleRatesByVersion = map[byte][3]int{
	3: {44100, 48000, 32000}, // MPEG1
	2: {22050, 24000, 16000}, // MPEG2
	0: {11025, 12000, 8000},  // MPEG2.5
}

var bitrateTabL1 = [2][16]int{
	{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448, -1},
	{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256, -1},
}
var bitrateTabL2 = [2][16]int{
	{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384, -1},
	{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, -1},
}
var bitrateTabL3 = [2][16]int{
	{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, -1},
	{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, -1},
}

func (*Parser) ParseHeader(buf []byte) (parser.FrameInfo, bool) {
	if len(buf) < 4 || buf[0] != 0xff || buf[1]&0xe0 != 0xe0 {
		return parser.FrameInfo{}, false
	}
	version := (buf[1] >> 3) & 0x3
	layer := (buf[1] >> 1) & 0x3
	protected := buf[1] & 0x1
	_ = protected
	bitrateIdx := (buf[2] >> 4) & 0xf
	freqIdx := (buf[2] >> 2) & 0x3
	padding := (buf[2] >> 1) & 0x1
	mode := (buf[3] >> 6) & 0x3

	if version == 1 || layer == 0 || freqIdx == 3 || bitrateIdx == 15 {
		return parser.FrameInfo{}, false
	}

	rates, ok := sampleRatesByVersion[version]
	if !ok {
		return parser.FrameInfo{}, false
	}
	rate := rates[freqIdx]

	mpeg1 := version == 3
	vGroup := 1
	if mpeg1 {
		vGroup = 0
	}

	var bitrate, samples, frameSize int
	switch layer {
	case 3: // Layer I
		bitrate = bitrateTabL1[vGroup][bitrateIdx]
		samples = 384
		frameSize = (12*bitrate*1000/rate + int(padding)) * 4
	case 2: // Layer II
		bitrate = bitrateTabL2[vGroup][bitrateIdx]
		samples = 1152
		frameSize = 144*bitrate*1000/rate + int(padding)
	case 1: // Layer III
		bitrate = bitrateTabL3[vGroup][bitrateIdx]
		if mpeg1 {
			samples = 1152
			frameSize = 144*bitrate*1000/rate + int(padding)
		} else {
			samples = 576
			frameSize = 72*bitrate*1000/rate + int(padding)
		}
	}
	if bitrate <= 0 || frameSize <= 0 {
		return parser.FrameInfo{}, false
	}

	spk := speakers.New(speakers.MPA, modeMask(mode), rate)
	return parser.FrameInfo{Spk: spk, FrameSize: frameSize, NSamples: samples}, true
}

func modeMask(mode byte) speakers.Mask {
	if mode == 3 {
		return speakers.Bit(speakers.C)
	}
	return speakers.ModeStereo
}

// CompareHeaders treats version/layer/freqIdx/mode as stream identity;
// bitrate and padding may legitimately vary frame to frame.
func (*Parser) CompareHeaders(a, b []byte) bool {
	if len(a) < 4 || len(b) < 4 {
		return false
	}
	return a[1]&0xfe == b[1]&0xfe && a[2]&0xc == b[2]&0xc && a[3]&0xc0 == b[3]&0xc0
}

func (p *Parser) BuildSyncInfo(_ []byte, _ parser.FrameInfo) parser.SyncInfo {
	return p.SyncInfo()
}
