package output

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/muesli/termenv"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"text", FormatText},
		{"json", FormatJSON},
		{"sarif", FormatSARIF},
		{"JSON", FormatText},
		{"xml", FormatText},
		{"", FormatText},
	}
	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatOutput_UnknownFormatIsText(t *testing.T) {
	opts := Options{NoColor: true, Dir: "/repo"}
	want, err := FormatOutput(sampleOutput(), FormatText, opts)
	if err != nil {
		t.Fatal(err)
	}
	got, err := FormatOutput(sampleOutput(), Format("xml"), opts)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("unknown format: got %q, want text %q", got, want)
	}
}

func TestFormatOutput_Concurrent(t *testing.T) {
	colored := ColorRenderer(io.Discard, termenv.ANSI256)

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := range 32 {
		wg.Add(1)
		go func(noColor bool) {
			defer wg.Done()
			got, err := FormatOutput(sampleOutput(), FormatText, Options{NoColor: noColor, Renderer: colored})
			if err != nil {
				errs <- err
				return
			}
			if hasEsc := strings.Contains(got, "\x1b"); hasEsc == noColor {
				errs <- fmt.Errorf("noColor=%v but escapes present=%v", noColor, hasEsc)
			}
		}(i%2 == 0)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestNewFormatter(t *testing.T) {
	f := NewFormatter(FormatJSON, Options{})
	got, err := f.Format(&LintOutput{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "{\n  \"results\": []") {
		t.Errorf("unexpected JSON formatter output: %q", got)
	}

	// the formatter is reusable
	again, err := f.Format(&LintOutput{})
	if err != nil {
		t.Fatal(err)
	}
	if again != got {
		t.Error("second Format call differs")
	}
}

func TestFormatInitSuccess(t *testing.T) {
	got := FormatInitSuccess(".styleguide.yaml", "standard", Options{NoColor: true})
	want := strings.Join([]string{
		"✓ Created .styleguide.yaml from the standard template",
		"",
		"Next steps:",
		"  1. Review the settings in .styleguide.yaml",
		"  2. Run styleguide linters to see which linters are available",
		"  3. Run styleguide report <results.json> to render lint results",
	}, "\n")
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}

	colored := FormatInitSuccess("cfg.yaml", "strict", Options{Renderer: ColorRenderer(io.Discard, termenv.ANSI)})
	if !strings.Contains(colored, "\x1b[") {
		t.Errorf("colored message has no escape codes: %q", colored)
	}
}

func TestCheckSummary(t *testing.T) {
	if err := CheckSummary(sampleOutput()); err != nil {
		t.Errorf("consistent output: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*LintOutput)
	}{
		{"errors", func(o *LintOutput) { o.Summary.Errors = 5 }},
		{"warnings", func(o *LintOutput) { o.Summary.Warnings = 0 }},
		{"fixable total", func(o *LintOutput) { o.Summary.Fixable = 0 }},
		{"per-file fixable", func(o *LintOutput) { o.Results[1].Fixable = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := sampleOutput()
			tt.mutate(out)
			if err := CheckSummary(out); !errors.Is(err, ErrSummaryMismatch) {
				t.Errorf("CheckSummary() = %v, want ErrSummaryMismatch", err)
			}
		})
	}
}

func TestCheckSummary_NotUsedByRenderers(t *testing.T) {
	out := sampleOutput()
	out.Summary.Errors = 0 // disagrees with results

	got, err := FormatOutput(out, FormatText, Options{NoColor: true, Dir: "/repo"})
	if err != nil {
		t.Fatalf("FormatOutput() error: %v", err)
	}
	// the summary is rendered as given
	if !strings.HasSuffix(got, "\n⚠ 3 files checked, 0 errors, 1 warning, 1 fixable (12ms)") {
		t.Errorf("summary line recomputed:\n%s", got)
	}
}

func TestWriter_Buffer(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteReport("first"); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteReport(""); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "first\n\n" {
		t.Errorf("got %q, want %q", got, "first\n\n")
	}
}

func TestWriter_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := NewWriter(f)
	report := strings.Repeat("line\n", 1000) + "end"
	if err := w.WriteReport(report); err != nil {
		t.Fatalf("WriteReport() error: %v", err)
	}
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != report+"\n" {
		t.Errorf("file has %d bytes, want %d", len(data), len(report)+1)
	}
}

func TestWriter_ConcurrentReportsDoNotInterleave(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.WriteReport(strings.Repeat(string(rune('a'+i)), 100))
		}()
	}
	wg.Wait()

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		if len(line) != 100 || strings.Count(line, line[:1]) != 100 {
			t.Errorf("interleaved line: %q", line)
		}
	}
}
