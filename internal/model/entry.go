package model

// LogFile is a plain-text file discovered under the scan root.
type LogFile struct {
	Path      string `json:"path"`
	Extension string `json:"extension"` // lower-cased, including the dot
}

// LogLine is a single line read from a LogFile.
type LogLine struct {
	Number int    `json:"number"` // 1-based
	Text   string `json:"text"`
	Source string `json:"source"` // originating file path
}
