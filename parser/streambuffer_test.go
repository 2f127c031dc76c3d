package parser_test

import (
	"testing"

	"github.com/doismellburning/valib/parser"
	"github.com/doismellburning/valib/parser/ac3"
	"github.com/doismellburning/valib/parser/pes"
	"github.com/stretchr/testify/assert"
)

// ac3Frame builds a minimal synthetic AC-3 frame: 48kHz, frmsizecod 0
// (128-byte frame, bitIdx 0 -> 64 words), stereo, no LFE. Body bytes are
// zero-filled; ParseHeader only looks at the first 7 bytes.
func ac3Frame(fill byte) []byte {
	f := make([]byte, 128)
	f[0], f[1] = 0x0b, 0x77
	f[2], f[3] = 0x00, 0x00 // crc
	f[4] = 0x00             // fscod=0 (48kHz), frmsizecod=0
	f[5] = 0x40             // bsid=8, bsmod=0
	f[6] = 0x40             // acmod=2 (stereo), dsurmod=0, lfeon=0
	for i := 7; i < len(f); i++ {
		f[i] = fill
	}
	return f
}

func Test_StreamBuffer_FastPath_WholeFrameInOneCall(t *testing.T) {
	sb := parser.New(ac3.New())
	frame := ac3Frame(0xaa)
	data := append([]byte(nil), frame...)

	res, ok := sb.LoadFrame(&data)
	assert.True(t, ok)
	assert.Equal(t, frame, res.Frame)
	assert.Equal(t, 128, res.Info.FrameSize)
	assert.Equal(t, 1536, res.Info.NSamples)
	assert.True(t, res.NewStream)
	assert.Equal(t, 0, sb.ErrorCount())
	assert.Empty(t, data)
}

func Test_StreamBuffer_BridgingPath_SplitMidHeaderAndMidBody(t *testing.T) {
	sb := parser.New(ac3.New())
	frame := ac3Frame(0x55)

	// Split after 4 bytes: mid-header.
	part1 := append([]byte(nil), frame[:4]...)
	res, ok := sb.LoadFrame(&part1)
	assert.False(t, ok)
	assert.Empty(t, part1)

	// Split again mid-body.
	part2 := append([]byte(nil), frame[4:70]...)
	res, ok = sb.LoadFrame(&part2)
	assert.False(t, ok)
	assert.Empty(t, part2)

	part3 := append([]byte(nil), frame[70:]...)
	res, ok = sb.LoadFrame(&part3)
	assert.True(t, ok)
	assert.Equal(t, frame, res.Frame)
	assert.Empty(t, part3)
}

func Test_StreamBuffer_ResyncAfterGarbage(t *testing.T) {
	sb := parser.New(ac3.New())
	frame := ac3Frame(0x11)
	garbage := []byte{0x00, 0x0b, 0x77, 0x01, 0x02} // spurious partial sync byte in the noise

	data := append(append([]byte(nil), garbage...), frame...)
	res, ok := sb.LoadFrame(&data)
	assert.True(t, ok)
	assert.Equal(t, frame, res.Frame)
	assert.Greater(t, sb.ErrorCount(), 0)
}

func Test_StreamBuffer_NewStream_FalseWhenHeaderUnchanged(t *testing.T) {
	sb := parser.New(ac3.New())
	frame := ac3Frame(0x22)

	data := append(append([]byte(nil), frame...), frame...)
	res1, ok := sb.LoadFrame(&data)
	assert.True(t, ok)
	assert.True(t, res1.NewStream)

	res2, ok := sb.LoadFrame(&data)
	assert.True(t, ok)
	assert.False(t, res2.NewStream)
}

func Test_StreamBuffer_Flush_EmitsNothingWithNoPartialFrame(t *testing.T) {
	sb := parser.New(ac3.New())
	_, ok := sb.Flush()
	assert.False(t, ok)
	assert.False(t, sb.Truncated())
}

// Test_StreamBuffer_Flush_EmitsTailForKnownSizeCodec pins the AC-3/MPA
// tolerant-tail behavior: a frame cut short by EOS is still known-size,
// so Flush hands back whatever body bytes arrived instead of dropping
// them.
func Test_StreamBuffer_Flush_EmitsTailForKnownSizeCodec(t *testing.T) {
	sb := parser.New(ac3.New())
	frame := ac3Frame(0x99)
	partial := append([]byte(nil), frame[:17]...) // header + 10 body bytes of 128

	data := append([]byte(nil), partial...)
	_, ok := sb.LoadFrame(&data)
	assert.False(t, ok)
	assert.Empty(t, data)

	res, ok := sb.Flush()
	assert.True(t, ok)
	assert.Equal(t, partial, res.Frame)
	assert.False(t, sb.Truncated())

	_, ok = sb.Flush()
	assert.False(t, ok)
}

// Test_StreamBuffer_Flush_DropsTailForUnknownSizeCodec pins the
// unknown-size (e.g. DTS-over-SPDIF) intolerant case: PES's
// unbounded-length header (length field 0) puts the buffer in the same
// "scan for next sync" unknown-size mode, and a tail cut short there is
// discarded rather than guessed at.
func Test_StreamBuffer_Flush_DropsTailForUnknownSizeCodec(t *testing.T) {
	sb := parser.New(pes.New())
	header := []byte{0x00, 0x00, 0x01, 0xe0, 0x00, 0x00} // stream_id 0xe0, length 0 (unbounded)
	body := []byte{0x11, 0x22, 0x33, 0x44}                // no embedded sync word

	data := append(append([]byte(nil), header...), body...)
	_, ok := sb.LoadFrame(&data)
	assert.False(t, ok)
	assert.Empty(t, data)

	res, ok := sb.Flush()
	assert.False(t, ok)
	assert.Equal(t, parser.Result{}, res)
	assert.True(t, sb.Truncated())
}

func Test_MultiFrameParser_LocksToMatchingCodec(t *testing.T) {
	mp := parser.NewMulti(ac3.New())
	frame := ac3Frame(0x33)
	data := append([]byte(nil), frame...)

	res, codec, ok := mp.LoadFrame(&data)
	assert.True(t, ok)
	assert.Equal(t, "ac3", codec.Name())
	assert.Equal(t, frame, res.Frame)
	assert.Equal(t, "ac3", mp.Locked().Name())
}
