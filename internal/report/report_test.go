package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2026, 2, 17, 12, 30, 5, 0, time.Local)

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, []string{"a.com", "http://b.com/x"}, fixedTime))

	want := "# Clash core Match rule matched URLs\n" +
		"# Generated at: 2026-02-17 12:30:05\n" +
		"# Total matched URLs: 2\n" +
		"# " + strings.Repeat("=", 60) + "\n" +
		"\n" +
		"1. a.com\n" +
		"2. http://b.com/x\n"
	assert.Equal(t, want, buf.String())
}

func TestSaveCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "urls.txt")
	w := NewWriter(path)
	w.now = func() time.Time { return fixedTime }

	require.NoError(t, w.Save([]string{"example.com"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "1. example.com\n")
	assert.Contains(t, string(data), "# Total matched URLs: 1\n")

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestSaveEmptyWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")

	require.NoError(t, NewWriter(path).Save(nil))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0644))

	require.NoError(t, NewWriter(path).Save([]string{"fresh.com"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
	assert.Contains(t, string(data), "1. fresh.com")
}

func TestSaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	// The parent "directory" is a regular file, so MkdirAll fails.
	err := NewWriter(filepath.Join(blocker, "urls.txt")).Save([]string{"a.com"})
	assert.ErrorIs(t, err, ErrReportWrite)
}
