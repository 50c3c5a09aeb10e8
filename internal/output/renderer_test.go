package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/atikulmunna/matchlog/internal/model"
)

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	renderer := NewJSONRenderer(&buf)

	ev := model.Event{
		Time:   time.Date(2026, 2, 17, 12, 0, 0, 0, time.UTC),
		Kind:   model.EventMatch,
		Source: "/var/log/clash.log",
		Line:   42,
		URL:    "http://example.com/?a=1&b=2",
	}

	if err := renderer.Render(ev); err != nil {
		t.Fatal(err)
	}

	// Parse the output JSON.
	var got model.Event
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\nraw: %s", err, buf.String())
	}

	if got.Kind != model.EventMatch {
		t.Errorf("expected kind match, got %s", got.Kind)
	}
	if got.Line != 42 {
		t.Errorf("expected line 42, got %d", got.Line)
	}
	if got.URL != ev.URL {
		t.Errorf("expected url %q, got %q", ev.URL, got.URL)
	}
	if strings.Contains(buf.String(), `\u0026`) {
		t.Errorf("expected unescaped ampersand, got %s", buf.String())
	}
}

func TestTextRendererMatch(t *testing.T) {
	var buf bytes.Buffer
	renderer := NewTextRenderer(&buf)

	if err := renderer.Render(model.Event{Kind: model.EventMatch, Line: 7, URL: "example.com"}); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "line 7") || !strings.Contains(out, "example.com") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestTextRendererBanner(t *testing.T) {
	var buf bytes.Buffer
	renderer := NewTextRenderer(&buf)

	if err := renderer.Render(model.Event{Kind: model.EventBanner, Source: "/logs", Output: "/logs/out.txt", Marker: "match Match"}); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"/logs", "/logs/out.txt", `"match Match"`, strings.Repeat("=", 60)} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in banner, got %q", want, out)
		}
	}
}

func TestTextRendererUnknownKind(t *testing.T) {
	renderer := NewTextRenderer(&bytes.Buffer{})

	if err := renderer.Render(model.Event{Kind: "bogus"}); err == nil {
		t.Error("expected error for unknown event kind")
	}
}

func TestNewSelectsFormat(t *testing.T) {
	if _, ok := New("JSON", &bytes.Buffer{}).(*JSONRenderer); !ok {
		t.Error("expected JSON renderer")
	}
	if _, ok := New("text", &bytes.Buffer{}).(*TextRenderer); !ok {
		t.Error("expected text renderer")
	}
	if _, ok := New("", &bytes.Buffer{}).(*TextRenderer); !ok {
		t.Error("expected text renderer by default")
	}
}
