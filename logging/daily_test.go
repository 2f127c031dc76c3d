package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDailyFileExpandsPattern(t *testing.T) {
	dir := t.TempDir()
	pattern := filepath.Join(dir, "trace-%Y%m%d.log")
	stamp := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)

	f, err := OpenDailyFile(pattern, stamp)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, filepath.Join(dir, "trace-20260305.log"), f.Name())
	_, statErr := os.Stat(f.Name())
	assert.NoError(t, statErr)
}

func TestUseDailyFileRedirectsExistingLogger(t *testing.T) {
	dir := t.TempDir()
	pattern := filepath.Join(dir, "trace-%Y%m%d.log")
	stamp := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)

	l := For("daily-test")
	l.Info("before redirect")

	f, err := UseDailyFile(pattern, stamp)
	require.NoError(t, err)
	defer f.Close()

	For("daily-test").Info("after redirect")

	data, err := os.ReadFile(filepath.Join(dir, "trace-20260305.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "after redirect")
}
