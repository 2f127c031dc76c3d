// Package pesdemux demultiplexes MPEG-2 Program Stream (PES) packets,
// classifying each by stream id and, for private_stream_1, by the
// AC-3/DTS/LPCM sub-stream id carried in the first payload byte, per
// spec.md §6.
package pesdemux

import (
	"github.com/doismellburning/valib/parser/pes"
	"github.com/doismellburning/valib/speakers"
)

// Stream id ranges, ISO/IEC 13818-1 Table 2-18.
const (
	StreamIDPrivate1 = 0xbd
	StreamIDAudioMin = 0xc0
	StreamIDAudioMax = 0xdf
)

// Sub-stream ids within a private_stream_1 payload's first byte,
// DVD-convention (the layout the original spec's mpeg_demux targets).
const (
	SubstreamAC3Min  = 0x80
	SubstreamAC3Max  = 0x87
	SubstreamDTSMin  = 0x88
	SubstreamDTSMax  = 0x8f
	SubstreamLPCMMin = 0xa0
	SubstreamLPCMMax = 0xa7
)

var parser = pes.New()

// Payload classifies one PES packet's header (buf is the whole packet,
// start code included) and returns the codec Speakers its payload
// should be handed off as, plus the byte offset within buf where the
// payload starts.
func Payload(buf []byte) (spk speakers.Speakers, payloadOffset int, ok bool) {
	if _, parsed := parser.ParseHeader(buf); !parsed {
		return speakers.Speakers{}, 0, false
	}
	streamID := buf[3]
	headerLen := pesHeaderLength(buf)

	switch {
	case streamID >= StreamIDAudioMin && streamID <= StreamIDAudioMax:
		return speakers.New(speakers.MPA, 0, 0), headerLen, true
	case streamID == StreamIDPrivate1:
		return classifyPrivate1(buf, headerLen)
	default:
		return speakers.Speakers{}, 0, false
	}
}

// pesHeaderLength returns the offset of the elementary-stream payload
// within a PES packet: the fixed 6-byte start-code+length header, plus
// (for stream ids that carry one) the optional-header / stuffing-byte
// block whose total length is given at buf[8].
func pesHeaderLength(buf []byte) int {
	if len(buf) < 9 {
		return len(buf)
	}
	streamID := buf[3]
	if streamID == 0xbc || streamID == 0xbe || streamID == 0xbf ||
		(streamID >= 0xf0 && streamID <= 0xf2) || streamID == 0xf8 || streamID == 0xff {
		return 6
	}
	return 9 + int(buf[8])
}

func classifyPrivate1(buf []byte, headerLen int) (speakers.Speakers, int, bool) {
	if headerLen >= len(buf) {
		return speakers.Speakers{}, 0, false
	}
	sub := buf[headerLen]
	switch {
	case sub >= SubstreamAC3Min && sub <= SubstreamAC3Max:
		return speakers.New(speakers.AC3, 0, 0), headerLen + 4, true
	case sub >= SubstreamDTSMin && sub <= SubstreamDTSMax:
		return speakers.New(speakers.DTS, 0, 0), headerLen + 4, true
	case sub >= SubstreamLPCMMin && sub <= SubstreamLPCMMax:
		return speakers.New(speakers.LPCM20, 0, 0), headerLen + 7, true
	default:
		return speakers.Speakers{}, 0, false
	}
}
