package synctab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepReturnsZeroRowEntryByDefault(t *testing.T) {
	table := &Table{Rows: []Row{{}}}
	e := table.Step(0, 0x42)
	assert.Equal(t, Reject, e.Decision)
}

func TestStepFollowsMatchChain(t *testing.T) {
	var rows []Row
	row0 := Row{}
	row0[0xaa] = Entry{Decision: Match, Next: 1}
	row1 := Row{}
	row1[0xbb] = Entry{Decision: Accept}
	rows = append(rows, row0, row1)
	table := &Table{Rows: rows}

	e := table.Step(0, 0xaa)
	assert.Equal(t, Match, e.Decision)
	assert.Equal(t, 1, e.Next)

	e2 := table.Step(e.Next, 0xbb)
	assert.Equal(t, Accept, e2.Decision)
}
