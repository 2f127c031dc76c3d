package dts

import (
	"testing"

	"github.com/doismellburning/valib/parser"
	"github.com/doismellburning/valib/speakers"
	"github.com/stretchr/testify/assert"
)

// bitWriter packs fields MSB-first starting right after the 4-byte sync
// word, matching the field layout ParseHeader's bitReader expects.
type bitWriter struct {
	bits []bool
}

func (w *bitWriter) write(v uint32, n int) {
	for i := n - 1; i >= 0; i-- {
		w.bits = append(w.bits, (v>>uint(i))&1 == 1)
	}
}

func (w *bitWriter) bytes(totalLen int) []byte {
	out := make([]byte, totalLen)
	copy(out, []byte{0x7f, 0xfe, 0x80, 0x01})
	for i, bit := range w.bits {
		if !bit {
			continue
		}
		byteIdx := 4 + i/8
		if byteIdx >= len(out) {
			continue
		}
		out[byteIdx] |= 1 << uint(7-i%8)
	}
	return out
}

func coreHeader(nblks, fsize uint32, amode, sfreq byte) []byte {
	w := &bitWriter{}
	w.write(0, 1)       // FTYPE
	w.write(0, 5)       // SHORT
	w.write(0, 1)       // CPF
	w.write(nblks, 7)   // NBLKS
	w.write(fsize, 14)  // FSIZE
	w.write(uint32(amode), 6)
	w.write(uint32(sfreq), 4)
	w.write(0, 5) // RATE
	return w.bytes(14)
}

func TestParseHeaderDecodes16BE(t *testing.T) {
	p := New()
	buf := coreHeader(15, 1023, 2, 13) // amode=2 stereo, sfreq=13 -> 48kHz
	info, ok := p.ParseHeader(buf)
	assert.True(t, ok)
	assert.Equal(t, 48000, info.Spk.SampleRate)
	assert.Equal(t, speakers.ModeStereo, info.Spk.Mask)
	assert.Equal(t, 1024, info.FrameSize)
	assert.Equal(t, 16*32, info.NSamples)
	assert.Equal(t, parser.BS16BE, info.BSType)
}

func TestParseHeaderRejectsUnknownSampleRate(t *testing.T) {
	p := New()
	buf := coreHeader(15, 1023, 2, 0)
	_, ok := p.ParseHeader(buf)
	assert.False(t, ok)
}

func TestParseHeaderRecognizes16LEByteSwap(t *testing.T) {
	p := New()
	be := coreHeader(15, 1023, 2, 13)
	le := make([]byte, len(be))
	for i := 0; i+1 < len(be); i += 2 {
		le[i], le[i+1] = be[i+1], be[i]
	}
	info, ok := p.ParseHeader(le)
	assert.True(t, ok)
	assert.Equal(t, parser.BS16LE, info.BSType)
	assert.Equal(t, 48000, info.Spk.SampleRate)
}

func TestCompareHeadersUsesBSType(t *testing.T) {
	p := New()
	be := coreHeader(15, 1023, 2, 13)
	le := make([]byte, len(be))
	for i := 0; i+1 < len(be); i += 2 {
		le[i], le[i+1] = be[i+1], be[i]
	}
	assert.False(t, p.CompareHeaders(be, le))
	assert.True(t, p.CompareHeaders(be, coreHeader(1, 1023, 2, 13)))
}
