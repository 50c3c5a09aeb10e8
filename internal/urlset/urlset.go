package urlset

import (
	"sort"
	"time"
)

// Stats holds a point-in-time snapshot of run counters.
type Stats struct {
	Elapsed      string `json:"elapsed"`
	FilesFound   int    `json:"files_found"`
	FilesScanned int    `json:"files_scanned"`
	FilesFailed  int    `json:"files_failed"`
	LinesRead    int64  `json:"lines_read"`
	MarkerLines  int64  `json:"marker_lines"`
	UniqueURLs   int    `json:"unique_urls"`
}

// Set is the run-scoped collection of distinct URLs plus the counters that
// describe how they were found. Equality is exact string match.
type Set struct {
	startTime    time.Time
	seen         map[string]struct{}
	filesFound   int
	filesScanned int
	filesFailed  int
	linesRead    int64
	markerLines  int64
}

// New returns an empty Set.
func New() *Set {
	return &Set{
		startTime: time.Now(),
		seen:      make(map[string]struct{}),
	}
}

// Add records url and reports whether it had not been seen before.
func (s *Set) Add(url string) bool {
	if url == "" {
		return false
	}
	if _, ok := s.seen[url]; ok {
		return false
	}
	s.seen[url] = struct{}{}
	return true
}

// Len returns the number of distinct URLs.
func (s *Set) Len() int { return len(s.seen) }

// Sorted returns the URLs in lexicographic order.
func (s *Set) Sorted() []string {
	out := make([]string, 0, len(s.seen))
	for u := range s.seen {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

// FilesFound records how many files discovery returned.
func (s *Set) FilesFound(n int) { s.filesFound = n }

// FileScanned counts a file whose lines were read; failed marks a read error.
func (s *Set) FileScanned(failed bool) {
	s.filesScanned++
	if failed {
		s.filesFailed++
	}
}

// LineRead counts a line; marker reports whether it carried the marker.
func (s *Set) LineRead(marker bool) {
	s.linesRead++
	if marker {
		s.markerLines++
	}
}

// Snapshot returns the current counters.
func (s *Set) Snapshot() Stats {
	return Stats{
		Elapsed:      time.Since(s.startTime).Truncate(time.Millisecond).String(),
		FilesFound:   s.filesFound,
		FilesScanned: s.filesScanned,
		FilesFailed:  s.filesFailed,
		LinesRead:    s.linesRead,
		MarkerLines:  s.markerLines,
		UniqueURLs:   len(s.seen),
	}
}
