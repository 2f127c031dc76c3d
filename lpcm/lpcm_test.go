package lpcm

import (
	"testing"

	"github.com/doismellburning/valib/speakers"
	"github.com/stretchr/testify/assert"
)

func TestUnpack20RoundsTripsFullScale(t *testing.T) {
	// 2 channels, one group: hi words 0xFFFFF>>4 pattern plus nibble byte.
	// sample20 = 0xFFFFF (max positive-ish) for both channels.
	buf := []byte{0xff, 0xff, 0xff, 0xff, 0xff} // hi16 ch0, hi16 ch1, ext nibble byte
	out, consumed := Unpack20(buf, 2, 0x80000)
	assert.Equal(t, len(buf), consumed)
	assert.Len(t, out, 2)
	assert.Len(t, out[0], 1)
	assert.InDelta(t, float64(0xfffff-0x80000)/0x80000*0x80000, out[0][0], 1e-9)
}

func TestUnpack24RoundsTripsZero(t *testing.T) {
	buf := []byte{0x80, 0x00, 0x80, 0x00, 0x00, 0x00}
	out, consumed := Unpack24(buf, 2, 1.0)
	assert.Equal(t, len(buf), consumed)
	assert.InDelta(t, 0.0, out[0][0], 1e-9)
	assert.InDelta(t, 0.0, out[1][0], 1e-9)
}

func TestUnpack24HandlesPartialTrailingGroup(t *testing.T) {
	buf := make([]byte, 8) // 1 full group (6 bytes) + 2 leftover bytes
	out, consumed := Unpack24(buf, 2, 1.0)
	assert.Equal(t, 6, consumed)
	assert.Len(t, out[0], 1)
}

func TestToChunkSetsSizeFromLongestChannel(t *testing.T) {
	samples := [][]float64{{1, 2, 3}, {4, 5, 6}}
	c := ToChunk(samples, speakers.ModeStereo, 48000)
	assert.Equal(t, 3, c.Size)
	assert.Equal(t, speakers.Linear, c.Spk.Format)
}
