// Package synctab holds the compiled, byte-indexed dispatch tables a
// parser.SyncTrie compiles down to: a flat array of 256-entry rows
// keyed by state id, each entry saying Match (keep scanning), Accept
// (minimum sync length reached, call the header validator), or Reject
// (back up one byte and retry). See spec §4.3.1.
package synctab

// Decision is the per-byte verdict at one trie state.
type Decision byte

const (
	Reject Decision = iota
	Match
	Accept
)

// Entry is one (decision, next-state) cell of a dispatch row.
type Entry struct {
	Decision Decision
	Next     int // valid iff Decision == Match
}

// Row is one state's 256-entry dispatch row, indexed by the next input
// byte.
type Row [256]Entry

// Table is the whole compiled trie: Rows[0] is always the start state.
type Table struct {
	Rows []Row
}

// Step evaluates one byte against state, returning the decision and
// (if Match) the next state id to use for the following byte.
func (t *Table) Step(state int, b byte) Entry {
	return t.Rows[state][b]
}
