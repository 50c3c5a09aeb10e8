package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atikulmunna/matchlog/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestScanCommandJSON(t *testing.T) {
	dir := t.TempDir()
	logs := filepath.Join(dir, "logs")
	require.NoError(t, os.MkdirAll(logs, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(logs, "a.log"),
		[]byte("foo match Match http://x.test/page bar\n"), 0644))
	out := filepath.Join(dir, "report", "urls.txt")

	stdout, _, err := execute(t, logs, out, "--output", "json")
	require.NoError(t, err)

	var kinds []model.EventKind
	dec := json.NewDecoder(strings.NewReader(stdout))
	for dec.More() {
		var ev model.Event
		require.NoError(t, dec.Decode(&ev))
		kinds = append(kinds, ev.Kind)
	}
	assert.Equal(t, []model.EventKind{
		model.EventBanner,
		model.EventFileFound,
		model.EventFilesTotal,
		model.EventFileStart,
		model.EventMatch,
		model.EventSummary,
		model.EventReport,
	}, kinds)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n1. http://x.test/page\n")
}

func TestScanCommandMissingDirExitsCleanly(t *testing.T) {
	dir := t.TempDir()

	stdout, stderr, err := execute(t, filepath.Join(dir, "missing"), filepath.Join(dir, "urls.txt"), "--output", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No log files found")
	assert.Contains(t, stderr, "input directory not found")
	assert.NoFileExists(t, filepath.Join(dir, "urls.txt"))
}

func TestScanCommandTooManyArgs(t *testing.T) {
	_, _, err := execute(t, "a", "b", "c")
	assert.Error(t, err)
}

func TestCompdbCommand(t *testing.T) {
	ws := t.TempDir()
	frag := filepath.Join(ws, "build", "lib", "compile_commands.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(frag), 0755))
	require.NoError(t, os.WriteFile(frag, []byte(`[{"file":"a.c"}]`), 0644))

	stdout, _, err := execute(t, "compdb", ws, "--output", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "compile_commands.json")

	data, err := os.ReadFile(filepath.Join(ws, "build", "compile_commands.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"file": "a.c"`)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{".log", ".txt", ".out"}, splitList([]string{".log,.txt", " .out ", ","}))
	assert.Empty(t, splitList(nil))
}

func TestScanCommandExtensionsFromEnv(t *testing.T) {
	t.Setenv("MATCHLOG_EXTENSIONS", ".csv,.log")
	dir := t.TempDir()
	logs := filepath.Join(dir, "logs")
	require.NoError(t, os.MkdirAll(logs, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(logs, "a.csv"), []byte("match Match csv.example.com\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(logs, "b.log"), []byte("match Match log.example.com\n"), 0644))
	out := filepath.Join(dir, "urls.txt")

	_, _, err := execute(t, logs, out, "--output", "json")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "1. csv.example.com\n")
	assert.Contains(t, string(data), "2. log.example.com\n")
}
