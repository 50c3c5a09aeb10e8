package extract

import (
	"regexp"
	"strings"
)

// DefaultMarker is the phrase that qualifies a line for URL extraction.
const DefaultMarker = "match Match"

// trailingPunct is stripped repeatedly from the end of every token.
const trailingPunct = ".,;:!?)"

// space lists every rune Unicode treats as whitespace; RE2's \s alone is ASCII-only.
const space = `\s\x0b\x1c-\x1f\x85\p{Z}`

// urlPattern matches either an explicit http(s) URL or a bare hostname with an
// optional path.
const urlPattern = `(?i)(https?://[^` + space + `]+)|([a-zA-Z0-9.-]+\.[a-zA-Z]{2,}(?:/[^` + space + `]*)?)`

// Extractor finds URL-like tokens on lines that carry the marker phrase.
// Its patterns are compiled once and never mutated, so an Extractor is safe to share.
type Extractor struct {
	marker     string
	structured *regexp.Regexp
	url        *regexp.Regexp
}

// New returns an Extractor for the given marker. An empty marker uses DefaultMarker.
func New(marker string) *Extractor {
	if marker == "" {
		marker = DefaultMarker
	}
	return &Extractor{
		marker: marker,
		// Anchored at line start; the leading .* lets the marker sit anywhere,
		// and being greedy it binds to the last case-insensitive occurrence.
		structured: regexp.MustCompile(`(?i)^.*` + regexp.QuoteMeta(marker) + `[` + space + `]+(.+?)(?:[` + space + `]|$)`),
		url:        regexp.MustCompile(urlPattern),
	}
}

// Marker returns the phrase this Extractor looks for.
func (e *Extractor) Marker() string { return e.marker }

// Qualifies reports whether a line contains the marker (case-sensitive).
func (e *Extractor) Qualifies(line string) bool {
	return strings.Contains(line, e.marker)
}

// Target returns the text URL extraction should run over: the token captured
// after the marker when the structured match succeeds, otherwise the whole line.
// The second result reports whether the structured match succeeded.
func (e *Extractor) Target(line string) (string, bool) {
	m := e.structured.FindStringSubmatch(line)
	if m == nil {
		return line, false
	}
	return m[1], true
}

// Extract returns the distinct URLs on a line, in first-occurrence order.
// Lines without the marker yield nothing.
func (e *Extractor) Extract(line string) []string {
	if !e.Qualifies(line) {
		return nil
	}
	target, _ := e.Target(line)
	return e.URLs(target)
}

// URLs returns every cleaned, distinct URL-like token in text.
func (e *Extractor) URLs(text string) []string {
	var urls []string
	for _, raw := range e.url.FindAllString(text, -1) {
		u := Clean(raw)
		if u == "" || contains(urls, u) {
			continue
		}
		urls = append(urls, u)
	}
	return urls
}

// Clean trims whitespace and strips trailing punctuation from a raw token.
func Clean(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), trailingPunct)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
