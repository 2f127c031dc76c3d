package logging

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestForReturnsSameLoggerByName(t *testing.T) {
	a := For("parser")
	b := For("parser")
	assert.Same(t, a, b)
}

func TestSetLevelAppliesToExistingLogger(t *testing.T) {
	l := For("fir-test")
	SetLevel("fir-test", log.DebugLevel)
	assert.Equal(t, log.DebugLevel, l.GetLevel())
}

func TestDistinctNamesGetDistinctLoggers(t *testing.T) {
	a := For("graph-test")
	b := For("convolve-test")
	assert.NotSame(t, a, b)
}
