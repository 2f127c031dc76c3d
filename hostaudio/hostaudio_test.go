package hostaudio

import (
	"testing"

	"github.com/doismellburning/valib/speakers"
	"github.com/stretchr/testify/assert"
)

func TestSinkCanOpenAcceptsLinearStereo(t *testing.T) {
	s := NewSink()
	spk := speakers.New(speakers.Linear, speakers.ModeStereo, 48000)
	assert.True(t, s.CanOpen(spk))
}

func TestSinkCanOpenRejectsCompressed(t *testing.T) {
	s := NewSink()
	spk := speakers.New(speakers.AC3, 0, 48000)
	assert.False(t, s.CanOpen(spk))
}

func TestSinkCanOpenRejectsZeroRate(t *testing.T) {
	s := NewSink()
	spk := speakers.New(speakers.Linear, speakers.ModeStereo, 0)
	assert.False(t, s.CanOpen(spk))
}

func TestSinkProcessBeforeOpenReturnsProtocolViolation(t *testing.T) {
	s := NewSink()
	c := &speakers.Chunk{}
	err := s.Process(c)
	assert.Error(t, err)
}

func TestSinkCloseIdempotentBeforeOpen(t *testing.T) {
	s := NewSink()
	assert.NotPanics(t, func() { s.Close() })
	assert.NotPanics(t, func() { s.Close() })
}

func TestSourceGetOutputBeforeOpenIsZeroValue(t *testing.T) {
	s := NewSource(speakers.New(speakers.Linear, speakers.ModeStereo, 48000))
	assert.Equal(t, speakers.Speakers{}, s.GetOutput())
}

func TestSourceGetChunkBeforeOpenReturnsError(t *testing.T) {
	s := NewSource(speakers.New(speakers.Linear, speakers.ModeStereo, 48000))
	var out speakers.Chunk
	ok, err := s.GetChunk(&out)
	assert.False(t, ok)
	assert.Error(t, err)
}
