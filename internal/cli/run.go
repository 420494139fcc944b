package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"

	"github.com/tydukes/coding-style-guide-sub009/internal/input"
	"github.com/tydukes/coding-style-guide-sub009/internal/output"
	"github.com/tydukes/coding-style-guide-sub009/internal/watch"
)

// Streams are the standard streams a command reads from and writes to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process streams.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:  level,
		Prefix: "styleguide",
	})
}

// resolveColor decides how a report written to w is styled.
func resolveColor(mode ColorMode, w io.Writer) (noColor bool, r *lipgloss.Renderer) {
	switch mode {
	case ColorAlways:
		return false, output.ColorRenderer(w, termenv.ANSI256)
	case ColorNever:
		return true, nil
	}
	f, ok := w.(*os.File)
	if !ok || !output.IsTerminal(f.Fd()) {
		return true, nil
	}
	return false, lipgloss.NewRenderer(f)
}

// Run renders the lint results document named by cfg.
// Returns exit code: 0 = no errors reported, 1 = errors reported, 2 = failure.
func Run(ctx context.Context, cfg Config, streams Streams) int {
	logger := newLogger(streams.Err, cfg.Verbose)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		return ExitError
	}

	format := output.ParseFormat(cfg.Format)
	if cfg.Format != "" && string(format) != cfg.Format {
		logger.Warn("unknown format, using text", "format", cfg.Format)
	}

	opts := output.Options{Quiet: cfg.Quiet, Dir: cfg.Dir}
	colorTarget := streams.Out
	if cfg.OutputFile != "" {
		colorTarget = io.Discard
	}
	opts.NoColor, opts.Renderer = resolveColor(cfg.Color, colorTarget)

	r := &reporter{
		formatter: output.NewFormatter(format, opts),
		reader:    input.ForPath(cfg.Path, streams.In, input.NewFileReader(cfg.MmapThreshold)),
		writer:    output.NewWriter(streams.Out),
		logger:    logger,
	}

	if cfg.Watch {
		return runWatch(ctx, cfg, r)
	}
	code, err := r.renderOut(cfg.Path, cfg.OutputFile)
	if err != nil {
		logger.Error("cannot render report", "err", err)
		return ExitError
	}
	return code
}

// reporter reads, renders and writes one report at a time.
type reporter struct {
	formatter output.Formatter
	reader    input.Reader
	writer    *output.Writer
	logger    *log.Logger
}

// build reads and formats the document at path without writing anything.
func (r *reporter) build(path string) (string, int, error) {
	doc, size, err := input.ReadLintOutput(r.reader, path)
	if err != nil {
		return "", ExitError, err
	}
	r.logger.Debug("read lint results",
		"path", path,
		"size", humanize.Bytes(uint64(size)),
		"files", len(doc.Results),
	)
	if err := output.CheckSummary(doc); err != nil {
		r.logger.Debug("summary disagrees with results", "err", err)
	}

	report, err := r.formatter.Format(doc)
	if err != nil {
		return "", ExitError, err
	}
	if doc.HasErrors() {
		return report, ExitFindings, nil
	}
	return report, ExitClean, nil
}

func (r *reporter) render(path string) (int, error) {
	report, code, err := r.build(path)
	if err != nil {
		return code, err
	}
	if err := r.writer.WriteReport(report); err != nil {
		return ExitError, err
	}
	return code, nil
}

// renderTo renders src into dst, replacing its content. dst is only
// created once the report has been built, so a bad input leaves it as is.
func (r *reporter) renderTo(src, dst string) (int, error) {
	report, code, err := r.build(src)
	if err != nil {
		return code, err
	}
	f, err := os.Create(dst)
	if err != nil {
		return ExitError, err
	}
	err = output.NewWriter(f).WriteReport(report)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return ExitError, err
	}
	return code, nil
}

// renderOut writes to dst when set and to the reporter's writer otherwise.
func (r *reporter) renderOut(src, dst string) (int, error) {
	if dst != "" {
		return r.renderTo(src, dst)
	}
	return r.render(src)
}

func runWatch(ctx context.Context, cfg Config, r *reporter) int {
	watcher, err := watch.New()
	if err != nil {
		r.logger.Error("failed to create watcher", "err", err)
		return ExitError
	}
	defer watcher.Close()

	if err := watcher.Add(cfg.Path); err != nil {
		r.logger.Error("failed to watch", "path", cfg.Path, "err", err)
		return ExitError
	}

	renderOnce := func() int {
		code, err := r.renderOut(cfg.Path, cfg.OutputFile)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				r.logger.Info("waiting for results", "path", cfg.Path)
			} else {
				r.logger.Warn("cannot render report", "path", cfg.Path, "err", err)
			}
		}
		return code
	}

	code := renderOnce()
	events := watcher.Events()
	for {
		select {
		case <-ctx.Done():
			return code
		case evt, ok := <-events:
			if !ok {
				return code
			}
			if evt.Err != nil {
				r.logger.Warn("watch error", "err", evt.Err)
				continue
			}
			r.logger.Debug("results changed", "path", evt.Path, "event", evt.Type)
			switch evt.Type {
			case watch.EventWritten:
				code = renderOnce()
			case watch.EventRemoved:
				r.logger.Warn("watched file removed", "path", evt.Path)
			}
		}
	}
}
