package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_SyncTrie_Byte_AcceptsExactSequence(t *testing.T) {
	trie := Byte(0x0b77, 2)
	table := trie.Compile()

	e := table.Step(0, 0x0b)
	assert.Equal(t, 1, int(e.Decision)) // Match
	e2 := table.Step(e.Next, 0x77)
	assert.Equal(t, 2, int(e2.Decision)) // Accept
}

func Test_SyncTrie_Byte_RejectsWrongSecondByte(t *testing.T) {
	trie := Byte(0x0b77, 2)
	table := trie.Compile()

	e := table.Step(0, 0x0b)
	e2 := table.Step(e.Next, 0x00)
	assert.Equal(t, 0, int(e2.Decision)) // Reject
}

func Test_SyncTrie_Or_AcceptsEitherAlternative(t *testing.T) {
	trie := Byte(0x0b77, 2).Or(Byte(0x770b, 2))
	table := trie.Compile()

	for _, seq := range [][2]byte{{0x0b, 0x77}, {0x77, 0x0b}} {
		e := table.Step(0, seq[0])
		assert.Equal(t, 1, int(e.Decision))
		e2 := table.Step(e.Next, seq[1])
		assert.Equal(t, 2, int(e2.Decision))
	}

	// A byte that starts neither alternative rejects immediately.
	e := table.Step(0, 0xff)
	assert.Equal(t, 0, int(e.Decision))
}

func Test_SyncTrie_Concat_WithConstrainedSecondByte(t *testing.T) {
	// Mirrors the ADTS sync shape: a literal byte, then a nibble-masked
	// predicate that excludes the reserved layer bits.
	trie := Byte(0xff, 1).Concat(Pred(func(b byte) bool { return b&0xf0 == 0xf0 && (b>>1)&0x3 == 0 }))
	table := trie.Compile()

	e := table.Step(0, 0xff)
	assert.Equal(t, 1, int(e.Decision))
	ok := table.Step(e.Next, 0xf1) // layer bits zero: valid
	assert.Equal(t, 2, int(ok.Decision))
	bad := table.Step(e.Next, 0xf3) // layer bits nonzero: invalid
	assert.Equal(t, 0, int(bad.Decision))
}

func Test_SyncTrie_MinMaxLength(t *testing.T) {
	trie := Byte(0x0b77, 2).Or(Byte(0x000001, 3))
	assert.Equal(t, 2, trie.MinLength())
	assert.Equal(t, 3, trie.MaxLength())
}

func Test_SyncTrie_Compile_MemoizesSharedStates(t *testing.T) {
	// Two 2-byte literals sharing their first byte reach the same
	// state after it and differ only in the final byte; this asserts
	// compilation terminates with a small number of states rather than
	// one per alternative-length path, i.e. that states are memoized.
	trie := Byte(0x0b77, 2).Or(Byte(0x0b00, 2))
	table := trie.Compile()
	assert.LessOrEqual(t, len(table.Rows), 3)
}
