package graph

import (
	"testing"

	"github.com/doismellburning/valib/speakers"
	"github.com/stretchr/testify/assert"
)

// fakeSource emits a fixed list of chunks, then EOS.
type fakeSource struct {
	chunks    []speakers.Chunk
	i         int
	newStream bool
	output    speakers.Speakers
}

func (s *fakeSource) GetOutput() speakers.Speakers { return s.output }
func (s *fakeSource) NewStream() bool {
	v := s.newStream
	s.newStream = false
	return v
}
func (s *fakeSource) GetChunk(out *speakers.Chunk) (bool, error) {
	if s.i >= len(s.chunks) {
		return false, nil
	}
	*out = s.chunks[s.i]
	if s.i == 0 {
		s.newStream = true
	}
	s.output = out.Spk
	s.i++
	return true, nil
}
func (s *fakeSource) Reset() { s.i = 0; s.newStream = false }

func stereoChunk(spk speakers.Speakers, raw []byte, t float64, sync bool) speakers.Chunk {
	return speakers.Chunk{Spk: spk, Raw: raw, Size: len(raw), Sync: sync, Time: t}
}

func Test_NullFilter_Passthrough(t *testing.T) {
	spk := speakers.New(speakers.PCM16LE, speakers.ModeStereo, 48000)
	f := NewNullFilter()
	require := assert.New(t)
	require.NoError(f.Open(spk))

	in := stereoChunk(spk, []byte{1, 2, 3, 4}, 1.5, true)
	var out speakers.Chunk
	ok, err := f.Process(&in, &out)
	require.NoError(err)
	require.True(ok)
	require.Equal([]byte{1, 2, 3, 4}, out.Raw)
	require.Equal(1.5, out.Time)
	require.True(in.IsDummy())
}

func Test_SourceFilter_PropagatesNewStreamOnce(t *testing.T) {
	spk := speakers.New(speakers.PCM16LE, speakers.ModeStereo, 48000)
	src := &fakeSource{chunks: []speakers.Chunk{
		stereoChunk(spk, []byte{1, 2}, 0, true),
		stereoChunk(spk, []byte{3, 4}, 0, false),
	}}
	sf := NewSourceFilter(src, NewNullFilter())

	var out speakers.Chunk
	ok, err := sf.GetChunk(&out)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, sf.NewStream())

	ok, err = sf.GetChunk(&out)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, sf.NewStream())

	ok, _ = sf.GetChunk(&out)
	assert.False(t, ok) // EOS
}

func Test_FilterChain_TwoFilterPassthrough(t *testing.T) {
	spk := speakers.New(speakers.PCM16LE, speakers.ModeStereo, 48000)
	chain := NewFilterChain(NewNullFilter(), NewNullFilter())
	assert.NoError(t, chain.Open(spk))
	assert.Equal(t, spk, chain.GetOutput())

	in := stereoChunk(spk, []byte{9, 9}, 2.0, true)
	var out speakers.Chunk
	ok, err := chain.Process(&in, &out)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte{9, 9}, out.Raw)
	assert.Equal(t, 2.0, out.Time)
}

func Test_Error_IsByKind(t *testing.T) {
	e1 := NewError(BadFormat, "open", nil)
	e2 := NewError(BadFormat, "process", nil)
	assert.True(t, e1.Is(e2))

	e3 := NewError(OutOfSync, "open", nil)
	assert.False(t, e1.Is(e3))
}
