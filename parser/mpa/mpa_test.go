package mpa

import (
	"testing"

	"github.com/doismellburning/valib/speakers"
	"github.com/stretchr/testify/assert"
)

// mpeg1Layer3Stereo44k builds a valid MPEG-1 Layer III header: version=3
// (MPEG1), layer=1 (Layer III), protected=1 (no CRC), bitrate index 9
// (128kbps), 44.1kHz, no padding, stereo mode.
func mpeg1Layer3Stereo44k() []byte {
	return []byte{0xff, 0xfb, 0x90, 0x00}
}

func TestParseHeaderDecodesMPEG1LayerIII(t *testing.T) {
	p := New()
	info, ok := p.ParseHeader(mpeg1Layer3Stereo44k())
	assert.True(t, ok)
	assert.Equal(t, 44100, info.Spk.SampleRate)
	assert.Equal(t, speakers.ModeStereo, info.Spk.Mask)
	assert.Equal(t, 417, info.FrameSize)
	assert.Equal(t, 1152, info.NSamples)
}

func TestParseHeaderRejectsBadSync(t *testing.T) {
	p := New()
	buf := mpeg1Layer3Stereo44k()
	buf[1] &^= 0xe0
	_, ok := p.ParseHeader(buf)
	assert.False(t, ok)
}

func TestParseHeaderRejectsReservedLayer(t *testing.T) {
	p := New()
	buf := mpeg1Layer3Stereo44k()
	buf[1] = buf[1]&^0x06 | 0x00 // layer bits = 00, reserved
	_, ok := p.ParseHeader(buf)
	assert.False(t, ok)
}

func TestParseHeaderDecodesMonoMode(t *testing.T) {
	p := New()
	buf := mpeg1Layer3Stereo44k()
	buf[3] = 0xc0 // mode = 11 (mono)
	info, ok := p.ParseHeader(buf)
	assert.True(t, ok)
	assert.Equal(t, speakers.Bit(speakers.C), info.Spk.Mask)
}

func TestCompareHeadersIgnoresBitrateAndPadding(t *testing.T) {
	p := New()
	a := mpeg1Layer3Stereo44k()
	b := mpeg1Layer3Stereo44k()
	b[2] = 0xa2 // different bitrate index and padding bit
	assert.True(t, p.CompareHeaders(a, b))
}

func TestCompareHeadersDetectsModeChange(t *testing.T) {
	p := New()
	a := mpeg1Layer3Stereo44k()
	b := mpeg1Layer3Stereo44k()
	b[3] = 0xc0
	assert.False(t, p.CompareHeaders(a, b))
}
