// Package pes implements parser.CodecParser for MPEG-2 Program
// Elementary Stream packets, the demultiplexing container spec.md's
// pesdemux package consumes.
package pes

import (
	"github.com/doismellburning/valib/parser"
	"github.com/doismellburning/valib/speakers"
)

type Parser struct{}

func New() *Parser { return &Parser{} }

func (*Parser) Name() string { return "pes" }

// SyncInfo matches the 24-bit start code 0x000001 followed by a
// stream_id of 0xB9 or above: the program-end/pack/system-header/PES
// stream_id range, excluding the reserved 0x00-0xB8 values that never
// start a real PES packet.
func (*Parser) SyncInfo() parser.SyncInfo {
	trie := parser.Byte(0x000001, 3).Concat(parser.Pred(func(b byte) bool { return b >= 0xb9 }))
	return parser.SyncInfo{Trie: trie, MinFrameSize: 6, MaxFrameSize: 65536 + 6}
}

func (*Parser) HeaderSize() int { return 6 }

func (*Parser) ParseHeader(buf []byte) (parser.FrameInfo, bool) {
	if len(buf) < 6 || buf[0] != 0 || buf[1] != 0 || buf[2] != 1 || buf[3] < 0xb9 {
		return parser.FrameInfo{}, false
	}
	length := int(buf[4])<<8 | int(buf[5])
	frameSize := 0
	if length > 0 {
		frameSize = 6 + length
	} // length == 0 means "unbounded", left as FrameSize 0 (unknown-size path)

	return parser.FrameInfo{
		Spk:       speakers.New(speakers.PES, 0, 0),
		FrameSize: frameSize,
	}, true
}

// CompareHeaders treats stream_id as the substream boundary; pesdemux
// is what actually classifies and routes by stream_id.
func (*Parser) CompareHeaders(a, b []byte) bool {
	if len(a) < 4 || len(b) < 4 {
		return false
	}
	return a[3] == b[3]
}

func (p *Parser) BuildSyncInfo(_ []byte, _ parser.FrameInfo) parser.SyncInfo {
	return p.SyncInfo()
}
