package ac3

import (
	"testing"

	"github.com/doismellburning/valib/speakers"
	"github.com/stretchr/testify/assert"
)

func header(fscod, frmsizecod, bsid, acmod byte) []byte {
	return []byte{
		0x0b, 0x77,
		0x00, 0x00,
		fscod<<6 | frmsizecod,
		bsid << 3,
		acmod << 5,
	}
}

func TestParseHeaderDecodesStereo48k(t *testing.T) {
	p := New()
	buf := header(0, 0, 8, 2)
	info, ok := p.ParseHeader(buf)
	assert.True(t, ok)
	assert.Equal(t, 48000, info.Spk.SampleRate)
	assert.Equal(t, speakers.ModeStereo, info.Spk.Mask)
	assert.Equal(t, 128, info.FrameSize)
	assert.Equal(t, 1536, info.NSamples)
}

func TestParseHeaderSetsLFEBit(t *testing.T) {
	p := New()
	buf := header(0, 0, 8, 2)
	buf[6] |= 1 << 2 // lfeon bit, per the bitstream layout ParseHeader reads
	info, ok := p.ParseHeader(buf)
	assert.True(t, ok)
	assert.True(t, info.Spk.Mask.Has(speakers.LFE))
}

func TestParseHeaderRejectsReservedFscod(t *testing.T) {
	p := New()
	buf := header(3, 0, 8, 2)
	_, ok := p.ParseHeader(buf)
	assert.False(t, ok)
}

func TestParseHeaderRejectsHighBsid(t *testing.T) {
	p := New()
	buf := header(0, 0, 20, 2)
	_, ok := p.ParseHeader(buf)
	assert.False(t, ok)
}

func TestSyncInfoAcceptsBothByteOrders(t *testing.T) {
	p := New()
	table := p.SyncInfo().Trie.Compile()

	for _, seq := range [][2]byte{{0x0b, 0x77}, {0x77, 0x0b}} {
		e := table.Step(0, seq[0])
		e2 := table.Step(e.Next, seq[1])
		assert.Equal(t, 2, int(e2.Decision)) // Accept
	}
}

func TestCompareHeadersIgnoresFrmsizecod(t *testing.T) {
	p := New()
	a := header(0, 0, 8, 2)
	b := header(0, 10, 8, 2)
	assert.True(t, p.CompareHeaders(a, b))
}

func TestCompareHeadersDetectsAcmodChange(t *testing.T) {
	p := New()
	a := header(0, 0, 8, 2)
	b := header(0, 0, 8, 3)
	assert.False(t, p.CompareHeaders(a, b))
}
