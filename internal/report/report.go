package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrReportWrite wraps any failure to create or write the report file.
var ErrReportWrite = errors.New("cannot write report")

// Title is the first header line of every report.
const Title = "Clash core Match rule matched URLs"

// TimeLayout formats the generation timestamp.
const TimeLayout = "2006-01-02 15:04:05"

// Separator closes the header block.
var Separator = strings.Repeat("=", 60)

// Writer renders sorted URL lists to a report file.
type Writer struct {
	path string
	now  func() time.Time
}

// NewWriter returns a Writer targeting path, stamping reports with wall-clock time.
func NewWriter(path string) *Writer {
	return &Writer{path: path, now: time.Now}
}

// Path returns the report destination.
func (w *Writer) Path() string { return w.path }

// Render writes the report body for urls, which must already be sorted.
func Render(out io.Writer, urls []string, generated time.Time) error {
	bw := bufio.NewWriter(out)
	fmt.Fprintf(bw, "# %s\n", Title)
	fmt.Fprintf(bw, "# Generated at: %s\n", generated.Format(TimeLayout))
	fmt.Fprintf(bw, "# Total matched URLs: %d\n", len(urls))
	fmt.Fprintf(bw, "# %s\n\n", Separator)
	for i, u := range urls {
		fmt.Fprintf(bw, "%d. %s\n", i+1, u)
	}
	return bw.Flush()
}

// Save writes the report, creating parent directories as needed. Nothing is
// written for an empty list. The file is replaced atomically.
func (w *Writer) Save(urls []string) error {
	if len(urls) == 0 {
		return nil
	}

	if dir := filepath.Dir(w.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: %v", ErrReportWrite, err)
		}
	}

	// Write to a temp file first, then rename for atomicity.
	tmp := w.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReportWrite, err)
	}
	if err := Render(f, urls, w.now()); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrReportWrite, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrReportWrite, err)
	}
	if err := os.Rename(tmp, w.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrReportWrite, err)
	}
	return nil
}
