// Package compdb merges per-target compile_commands.json fragments found in a
// build tree into a single compilation database at the build root.
package compdb

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// FileName is the compilation database file name.
const FileName = "compile_commands.json"

// ErrDecode is returned for fragments that are not a JSON array.
var ErrDecode = errors.New("invalid compilation database")

// Result describes a completed merge.
type Result struct {
	Output    string // path of the merged file
	Fragments int    // fragments that contributed entries
	Entries   int    // total merged entries
}

// Workspace resolves the project root from the working directory: cwd itself
// when it holds a src directory, otherwise its parent.
func Workspace(cwd string) string {
	if info, err := os.Stat(filepath.Join(cwd, "src")); err == nil && info.IsDir() {
		return cwd
	}
	return filepath.Dir(cwd)
}

// BuildDir returns the build directory for a workspace.
func BuildDir(workspace string) string {
	return filepath.Join(workspace, "build")
}

// Merger collects fragments below a build directory.
type Merger struct {
	buildDir string
	log      zerolog.Logger
}

// New creates a Merger for buildDir.
func New(buildDir string, log zerolog.Logger) *Merger {
	return &Merger{buildDir: buildDir, log: log}
}

// Fragments lists every compile_commands.json below the build directory,
// excluding the merged output at its root. A missing build dir has none.
func (m *Merger) Fragments() ([]string, error) {
	if _, err := os.Stat(m.buildDir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	matches, err := doublestar.Glob(os.DirFS(m.buildDir), "**/"+FileName, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", m.buildDir, err)
	}

	var out []string
	for _, p := range matches {
		if p == FileName {
			continue
		}
		out = append(out, filepath.Join(m.buildDir, filepath.FromSlash(p)))
	}
	return out, nil
}

// Load decodes one fragment. Entries are kept verbatim so key order survives the merge.
func Load(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrDecode, path, err)
	}
	// null decodes without error but leaves the slice nil; [] yields an empty one.
	if entries == nil {
		return nil, fmt.Errorf("%w %s: not a JSON array", ErrDecode, path)
	}
	return entries, nil
}

// Merge concatenates all fragments and writes the result to the build root.
// Empty and undecodable fragments are logged and skipped.
func (m *Merger) Merge() (Result, error) {
	paths, err := m.Fragments()
	if err != nil {
		return Result{}, err
	}

	merged := make([]json.RawMessage, 0)
	used := 0
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			m.log.Error().Err(err).Str("path", p).Msg("cannot stat fragment")
			continue
		}
		if info.Size() == 0 {
			m.log.Warn().Str("path", p).Msg("skipping empty file")
			continue
		}
		entries, err := Load(p)
		if err != nil {
			m.log.Error().Err(err).Str("path", p).Msg("error decoding JSON")
			continue
		}
		merged = append(merged, entries...)
		used++
	}

	if err := os.MkdirAll(m.buildDir, 0755); err != nil {
		return Result{}, fmt.Errorf("create build dir: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(merged); err != nil {
		return Result{}, fmt.Errorf("encode merged database: %w", err)
	}

	out := filepath.Join(m.buildDir, FileName)
	if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", out, err)
	}
	return Result{Output: out, Fragments: used, Entries: len(merged)}, nil
}
