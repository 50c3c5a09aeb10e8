package linereader

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atikulmunna/matchlog/internal/model"
)

// ErrFileRead wraps any failure to open or read a log file.
var ErrFileRead = errors.New("cannot read file")

// MaxLineSize bounds a single line; longer lines abort the file with ErrFileRead.
const MaxLineSize = 16 * 1024 * 1024

// ReadFile opens path and calls fn for every line, numbered from 1.
// Lines reach fn exactly as read, minus the terminator and any invalid UTF-8.
func ReadFile(path string, fn func(model.LogLine)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrFileRead, path, err)
	}
	defer f.Close()

	if err := Read(f, path, fn); err != nil {
		return fmt.Errorf("%w %s: %v", ErrFileRead, path, err)
	}
	return nil
}

// Read iterates over r line by line. "\n", "\r\n" and a lone "\r" all end a line.
func Read(r io.Reader, source string, fn func(model.LogLine)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), MaxLineSize)
	scanner.Split(scanLines)

	n := 0
	for scanner.Scan() {
		n++
		fn(model.LogLine{
			Number: n,
			Text:   strings.ToValidUTF8(scanner.Text(), ""),
			Source: source,
		})
	}
	return scanner.Err()
}

// scanLines is bufio.ScanLines extended to treat a bare carriage return as a line break.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// Need one more byte to tell "\r\n" from a lone "\r".
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
