package pes

import (
	"testing"

	"github.com/doismellburning/valib/speakers"
	"github.com/stretchr/testify/assert"
)

func TestParseHeaderAcceptsPrivateStream1(t *testing.T) {
	p := New()
	buf := []byte{0x00, 0x00, 0x01, 0xbd, 0x00, 0x01, 0xff}
	info, ok := p.ParseHeader(buf)
	assert.True(t, ok)
	assert.Equal(t, speakers.PES, info.Spk.Format)
	assert.Equal(t, 6+1, info.FrameSize)
}

func TestParseHeaderRejectsLowStreamID(t *testing.T) {
	p := New()
	buf := []byte{0x00, 0x00, 0x01, 0x10, 0x00, 0x01}
	_, ok := p.ParseHeader(buf)
	assert.False(t, ok)
}

func TestParseHeaderRejectsBadStartCode(t *testing.T) {
	p := New()
	buf := []byte{0x00, 0x00, 0x02, 0xbd, 0x00, 0x01}
	_, ok := p.ParseHeader(buf)
	assert.False(t, ok)
}

func TestCompareHeadersUsesStreamID(t *testing.T) {
	p := New()
	a := []byte{0x00, 0x00, 0x01, 0xbd}
	b := []byte{0x00, 0x00, 0x01, 0xbd}
	c := []byte{0x00, 0x00, 0x01, 0xc0}
	assert.True(t, p.CompareHeaders(a, b))
	assert.False(t, p.CompareHeaders(a, c))
}
