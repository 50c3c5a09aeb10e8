package scan

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/atikulmunna/matchlog/internal/extract"
	"github.com/atikulmunna/matchlog/internal/finder"
	"github.com/atikulmunna/matchlog/internal/linereader"
	"github.com/atikulmunna/matchlog/internal/model"
	"github.com/atikulmunna/matchlog/internal/output"
	"github.com/atikulmunna/matchlog/internal/report"
	"github.com/atikulmunna/matchlog/internal/urlset"
	"github.com/rs/zerolog"
)

// Config describes a single scan run.
type Config struct {
	InputDir   string
	OutputFile string
	Marker     string   // defaults to extract.DefaultMarker
	Extensions []string // defaults to finder.DefaultExtensions
}

// Result summarizes a finished run.
type Result struct {
	Stats         urlset.Stats
	ReportWritten bool
}

// Runner discovers log files, extracts marker URLs from them and writes the report.
// A Runner is single-use: its URL set spans exactly one Run.
type Runner struct {
	cfg       Config
	finder    *finder.Finder
	extractor *extract.Extractor
	writer    *report.Writer
	renderer  output.Renderer
	log       zerolog.Logger
	urls      *urlset.Set
}

// New creates a Runner. Progress goes to renderer, diagnostics to log.
func New(cfg Config, renderer output.Renderer, log zerolog.Logger) *Runner {
	return &Runner{
		cfg:       cfg,
		finder:    finder.New(cfg.Extensions),
		extractor: extract.New(cfg.Marker),
		writer:    report.NewWriter(cfg.OutputFile),
		renderer:  renderer,
		log:       log,
		urls:      urlset.New(),
	}
}

// URLs exposes the run-scoped set.
func (r *Runner) URLs() *urlset.Set { return r.urls }

// Run executes the whole scan. Handled failures are logged, never returned;
// the only error is ctx's when the run is interrupted between files, in
// which case no report is written.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	r.emit(model.Event{
		Kind:   model.EventBanner,
		Source: r.cfg.InputDir,
		Output: r.cfg.OutputFile,
		Marker: r.extractor.Marker(),
	})

	files := r.Discover()
	r.urls.FilesFound(len(files))
	if len(files) == 0 {
		r.emit(model.Event{Kind: model.EventNoFiles})
		return Result{Stats: r.urls.Snapshot()}, nil
	}
	r.emit(model.Event{Kind: model.EventFilesTotal, Count: len(files)})

	total := 0
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			r.log.Warn().Err(err).Int("remaining", len(files)-i).Msg("scan interrupted")
			return Result{Stats: r.urls.Snapshot()}, err
		}
		n, err := r.AnalyzeFile(f.Path)
		if err != nil {
			r.log.Error().Err(err).Str("path", f.Path).Msg("failed to read log file")
		}
		total += n
	}

	stats := r.urls.Snapshot()
	r.log.Debug().
		Int("new_urls", total).
		Int64("lines", stats.LinesRead).
		Int64("marker_lines", stats.MarkerLines).
		Int("failed_files", stats.FilesFailed).
		Str("elapsed", stats.Elapsed).
		Msg("scan finished")
	r.emit(model.Event{Kind: model.EventSummary, Count: r.urls.Len()})

	if r.urls.Len() == 0 {
		r.emit(model.Event{Kind: model.EventNoMatches})
		return Result{Stats: stats}, nil
	}

	written := r.WriteReport()
	return Result{Stats: stats, ReportWritten: written}, nil
}

// Discover lists candidate log files. A missing input directory is reported
// and yields an empty list.
func (r *Runner) Discover() []model.LogFile {
	files, err := r.finder.Find(r.cfg.InputDir)
	if err != nil {
		if errors.Is(err, finder.ErrMissingInputDir) {
			r.log.Error().Err(err).Str("path", r.cfg.InputDir).Msg("input directory not found")
		} else {
			r.log.Warn().Err(err).Str("path", r.cfg.InputDir).Msg("directory walk incomplete")
		}
	}
	for _, f := range files {
		r.emit(model.Event{Kind: model.EventFileFound, Source: f.Path})
	}
	return files
}

// AnalyzeFile scans one file and returns how many previously unseen URLs it
// contributed. URLs found before a read error stay in the set.
func (r *Runner) AnalyzeFile(path string) (int, error) {
	r.emit(model.Event{Kind: model.EventFileStart, Source: path})

	count := 0
	err := linereader.ReadFile(path, func(line model.LogLine) {
		text := strings.TrimSpace(line.Text)
		if text == "" {
			r.urls.LineRead(false)
			return
		}
		if !r.extractor.Qualifies(text) {
			r.urls.LineRead(false)
			return
		}
		r.urls.LineRead(true)

		target, structured := r.extractor.Target(text)
		urls := r.extractor.URLs(target)
		r.log.Debug().Str("path", path).Int("line", line.Number).Bool("structured", structured).Int("urls", len(urls)).Msg("marker line")

		for _, u := range urls {
			if !r.urls.Add(u) {
				continue
			}
			count++
			r.emit(model.Event{Kind: model.EventMatch, Source: path, Line: line.Number, URL: u})
		}
	})
	r.urls.FileScanned(err != nil)
	return count, err
}

// WriteReport saves the sorted URL set and reports whether the file was written.
func (r *Runner) WriteReport() bool {
	if err := r.writer.Save(r.urls.Sorted()); err != nil {
		r.log.Error().Err(err).Str("path", r.writer.Path()).Msg("failed to save report")
		return false
	}
	r.emit(model.Event{Kind: model.EventReport, Output: r.writer.Path(), Count: r.urls.Len()})
	return true
}

func (r *Runner) emit(ev model.Event) {
	ev.Time = time.Now()
	if err := r.renderer.Render(ev); err != nil {
		r.log.Warn().Err(err).Msg("render error")
	}
}
