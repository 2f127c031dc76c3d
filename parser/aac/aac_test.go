package aac

import (
	"testing"

	"github.com/doismellburning/valib/speakers"
	"github.com/stretchr/testify/assert"
)

// adtsStereo48k builds a valid 7-byte ADTS header: 48kHz, stereo,
// frame_length 500, one AAC block per ADTS frame.
func adtsStereo48k() []byte {
	return []byte{0xff, 0xf0, 0x0c, 0x80, 0x3e, 0x80, 0x00}
}

func TestParseHeaderDecodesFields(t *testing.T) {
	p := New()
	info, ok := p.ParseHeader(adtsStereo48k())
	assert.True(t, ok)
	assert.Equal(t, 48000, info.Spk.SampleRate)
	assert.Equal(t, speakers.ModeStereo, info.Spk.Mask)
	assert.Equal(t, 500, info.FrameSize)
	assert.Equal(t, 1024, info.NSamples)
}

func TestParseHeaderRejectsNonZeroLayer(t *testing.T) {
	p := New()
	buf := adtsStereo48k()
	buf[1] |= 0x02 // layer bits nonzero
	_, ok := p.ParseHeader(buf)
	assert.False(t, ok)
}

func TestParseHeaderRejectsReservedFreqIdx(t *testing.T) {
	p := New()
	buf := adtsStereo48k()
	buf[2] = buf[2]&0x03 | 0x3c // freqIdx = 15, reserved
	_, ok := p.ParseHeader(buf)
	assert.False(t, ok)
}

func TestParseHeaderDecodesMultipleBlocks(t *testing.T) {
	p := New()
	buf := adtsStereo48k()
	buf[6] = 1 // two AAC blocks per ADTS frame
	info, ok := p.ParseHeader(buf)
	assert.True(t, ok)
	assert.Equal(t, 2048, info.NSamples)
}

func TestCompareHeadersDetectsFreqChange(t *testing.T) {
	p := New()
	a := adtsStereo48k()
	b := adtsStereo48k()
	b[2] = 0x10 // different freqIdx (4 -> 44100)
	assert.False(t, p.CompareHeaders(a, b))
}

func TestSyncInfoAcceptsADTSSyncWord(t *testing.T) {
	p := New()
	table := p.SyncInfo().Trie.Compile()
	e := table.Step(0, 0xff)
	e2 := table.Step(e.Next, 0xf0)
	assert.Equal(t, 2, int(e2.Decision)) // Accept
}
