package model

import "time"

// EventKind identifies a progress event emitted during a run.
type EventKind string

const (
	EventBanner     EventKind = "banner"
	EventFileFound  EventKind = "file_found"
	EventFilesTotal EventKind = "files_total"
	EventFileStart  EventKind = "file_start"
	EventMatch      EventKind = "match"
	EventSummary    EventKind = "summary"
	EventReport     EventKind = "report"
	EventNoFiles    EventKind = "no_files"
	EventNoMatches  EventKind = "no_matches"
	EventMerged     EventKind = "merged"
)

// Event is a single line of progress output. Only the fields relevant to
// Kind are populated.
type Event struct {
	Time   time.Time `json:"time"`
	Kind   EventKind `json:"kind"`
	Source string    `json:"source,omitempty"`
	Output string    `json:"output,omitempty"`
	Marker string    `json:"marker,omitempty"`
	Line   int       `json:"line,omitempty"`
	URL    string    `json:"url,omitempty"`
	Count  int       `json:"count,omitempty"`
	Files  int       `json:"files,omitempty"`
}
