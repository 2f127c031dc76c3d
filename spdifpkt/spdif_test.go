package spdifpkt

import (
	"testing"

	"github.com/doismellburning/valib/internal/synctab"
	"github.com/stretchr/testify/assert"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	payload := []byte{0x0b, 0x77, 0x01, 0x02, 0x03, 0x04, 0x05}
	burst := Pack(payload, DataTypeAC3, 0)

	got, dt, ok := Unpack(burst)
	assert.True(t, ok)
	assert.Equal(t, DataTypeAC3, dt)
	assert.Equal(t, payload, got)
}

func TestUnpackRejectsBadSync(t *testing.T) {
	buf := make([]byte, 16)
	_, _, ok := Unpack(buf)
	assert.False(t, ok)
}

func TestUnpackRejectsShortBuffer(t *testing.T) {
	_, _, ok := Unpack([]byte{0x72, 0xf8, 0x1f})
	assert.False(t, ok)
}

func TestPackPadsToRequestedBurstLength(t *testing.T) {
	payload := []byte{1, 2, 3}
	burst := Pack(payload, DataTypeDTS1, 8)
	assert.Len(t, burst, PreambleBytes+8*2)

	got, _, ok := Unpack(burst)
	assert.True(t, ok)
	assert.Equal(t, payload, got)
}

func TestSyncInfoMatchesPackedPreamble(t *testing.T) {
	burst := Pack([]byte{0xaa, 0xbb}, DataTypeMPA1L1, 0)
	table := SyncInfo().Trie.Compile()

	state := 0
	accepted := false
	for _, b := range burst[:4] {
		entry := table.Rows[state][b]
		if entry.Decision == synctab.Accept {
			accepted = true
			break
		}
		state = entry.Next
	}
	assert.True(t, accepted)
}
