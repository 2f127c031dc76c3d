package pesdemux

import (
	"testing"

	"github.com/doismellburning/valib/speakers"
	"github.com/stretchr/testify/assert"
)

func TestPayloadClassifiesAudioStream(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x01, 0xc0, 0x00, 0x05, 0x80, 0x00, 0x00, 0xaa, 0xbb}
	spk, offset, ok := Payload(buf)
	assert.True(t, ok)
	assert.Equal(t, speakers.MPA, spk.Format)
	assert.Equal(t, 9, offset)
}

func TestPayloadClassifiesPrivateStreamAC3(t *testing.T) {
	buf := append([]byte{0x00, 0x00, 0x01, 0xbd, 0x00, 0x0a, 0x80, 0x00, 0x00}, 0x80, 0x00, 0x00, 0x00, 0xde, 0xad)
	spk, offset, ok := Payload(buf)
	assert.True(t, ok)
	assert.Equal(t, speakers.AC3, spk.Format)
	assert.Equal(t, 9+4, offset)
}

func TestPayloadClassifiesPrivateStreamDTS(t *testing.T) {
	buf := append([]byte{0x00, 0x00, 0x01, 0xbd, 0x00, 0x0a, 0x80, 0x00, 0x00}, 0x88, 0x00, 0x00, 0x00, 0xde, 0xad)
	spk, _, ok := Payload(buf)
	assert.True(t, ok)
	assert.Equal(t, speakers.DTS, spk.Format)
}

func TestPayloadRejectsUnknownSubstream(t *testing.T) {
	buf := append([]byte{0x00, 0x00, 0x01, 0xbd, 0x00, 0x0a, 0x80, 0x00, 0x00}, 0x01, 0x00, 0x00, 0x00, 0xde, 0xad)
	_, _, ok := Payload(buf)
	assert.False(t, ok)
}

func TestPayloadRejectsBadStartCode(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x02, 0xc0, 0x00, 0x05}
	_, _, ok := Payload(buf)
	assert.False(t, ok)
}
