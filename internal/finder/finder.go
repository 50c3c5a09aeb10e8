package finder

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/atikulmunna/matchlog/internal/model"
	"github.com/bmatcuk/doublestar/v4"
)

// ErrMissingInputDir is returned when the scan root does not exist or is not a directory.
var ErrMissingInputDir = errors.New("input directory does not exist")

// DefaultExtensions are the file extensions treated as plain-text logs.
var DefaultExtensions = []string{".log", ".txt", ".out"}

// Finder discovers log files below a root directory.
type Finder struct {
	exts map[string]bool
}

// New creates a Finder accepting the given extensions (case-insensitive).
// An empty list falls back to DefaultExtensions.
func New(extensions []string) *Finder {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	f := &Finder{exts: make(map[string]bool, len(extensions))}
	for _, e := range extensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		f.exts[e] = true
	}
	return f
}

// Find walks root recursively and returns every regular file whose extension
// is accepted, in traversal order. Symlinked directories are not entered;
// symlinked files are.
func (f *Finder) Find(root string) ([]model.LogFile, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrMissingInputDir, root)
	}

	var files []model.LogFile
	err = doublestar.GlobWalk(os.DirFS(root), "**/*", func(p string, d fs.DirEntry) error {
		if !f.Accepts(p) {
			return nil
		}
		if !isRegular(root, p, d) {
			return nil
		}
		files = append(files, model.LogFile{
			Path:      filepath.Join(root, filepath.FromSlash(p)),
			Extension: Suffix(p),
		})
		return nil
	}, doublestar.WithFilesOnly(), doublestar.WithNoFollow())
	if err != nil {
		return files, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

// Accepts reports whether a path has one of the accepted extensions.
func (f *Finder) Accepts(path string) bool {
	return f.exts[Suffix(path)]
}

// Suffix returns the lower-cased final extension of a path. A leading dot on
// the base name does not start an extension, so ".log" has none.
func Suffix(path string) string {
	base := filepath.Base(filepath.FromSlash(path))
	i := strings.LastIndexByte(base, '.')
	if i <= 0 || i == len(base)-1 {
		return ""
	}
	return strings.ToLower(base[i:])
}

// isRegular follows symlinks so a link to a log file is scanned like the file itself.
func isRegular(root, p string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	info, err := os.Stat(filepath.Join(root, filepath.FromSlash(p)))
	return err == nil && info.Mode().IsRegular()
}
