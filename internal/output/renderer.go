package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/atikulmunna/matchlog/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Renderer writes progress events to an output stream.
type Renderer interface {
	Render(ev model.Event) error
}

// New returns the renderer for format ("text" or "json"), writing to w.
func New(format string, w io.Writer) Renderer {
	switch strings.ToLower(format) {
	case "json":
		return NewJSONRenderer(w)
	default:
		return NewTextRenderer(w)
	}
}

// ---------------------------------------------------------------------------
// Text Renderer (colorized terminal output)
// ---------------------------------------------------------------------------

var (
	styleRule   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleTitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true) // cyan bold
	styleLabel  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))           // gray
	stylePath   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Faint(true)
	styleURL    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")) // green
	styleNotice = lipgloss.NewStyle().Foreground(lipgloss.Color("220")) // yellow
	styleDone   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
)

const bannerTitle = "Clash core Match rule log scanner"

var (
	heavyRule = strings.Repeat("=", 60)
	lightRule = strings.Repeat("-", 60)
)

// TextRenderer prints human-readable progress with lipgloss styling.
type TextRenderer struct {
	w io.Writer
}

// NewTextRenderer returns a Renderer that writes styled text to w.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

func (r *TextRenderer) Render(ev model.Event) error {
	var lines []string
	switch ev.Kind {
	case model.EventBanner:
		lines = []string{
			styleRule.Render(heavyRule),
			styleTitle.Render(bannerTitle),
			styleRule.Render(heavyRule),
			styleLabel.Render("Log directory: ") + stylePath.Render(ev.Source),
			styleLabel.Render("Output file:   ") + stylePath.Render(ev.Output),
			styleLabel.Render("Marker:        ") + fmt.Sprintf("%q", ev.Marker),
			styleRule.Render(lightRule),
		}
	case model.EventFileFound:
		lines = []string{styleLabel.Render("Found log file: ") + stylePath.Render(ev.Source)}
	case model.EventFilesTotal:
		lines = []string{
			fmt.Sprintf("Found %d log file(s)", ev.Count),
			styleRule.Render(lightRule),
		}
	case model.EventFileStart:
		lines = []string{styleLabel.Render("Analyzing file: ") + stylePath.Render(ev.Source)}
	case model.EventMatch:
		lines = []string{fmt.Sprintf("  match (line %d): %s", ev.Line, styleURL.Render(ev.URL))}
	case model.EventSummary:
		lines = []string{
			styleRule.Render(lightRule),
			styleDone.Render(fmt.Sprintf("Analysis complete! Found %d unique URL(s)", ev.Count)),
		}
	case model.EventReport:
		lines = []string{
			styleLabel.Render("Results saved to: ") + stylePath.Render(ev.Output),
			fmt.Sprintf("Extracted %d unique URL(s)", ev.Count),
		}
	case model.EventNoFiles:
		lines = []string{styleNotice.Render("No log files found")}
	case model.EventNoMatches:
		lines = []string{styleNotice.Render("No matching URLs found")}
	case model.EventMerged:
		lines = []string{
			styleDone.Render(fmt.Sprintf("Merged %d compile command(s) from %d file(s)", ev.Count, ev.Files)),
			styleLabel.Render("Compile commands have been written to ") + stylePath.Render(ev.Output),
		}
	default:
		return fmt.Errorf("unknown event kind %q", ev.Kind)
	}

	_, err := fmt.Fprintln(r.w, strings.Join(lines, "\n"))
	return err
}

// ---------------------------------------------------------------------------
// JSON Renderer (structured output for piping)
// ---------------------------------------------------------------------------

// JSONRenderer prints each event as a single JSON object per line.
type JSONRenderer struct {
	enc *json.Encoder
}

// NewJSONRenderer returns a Renderer that writes JSON lines to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONRenderer{enc: enc}
}

func (r *JSONRenderer) Render(ev model.Event) error {
	return r.enc.Encode(ev)
}
