package output

import "github.com/charmbracelet/lipgloss"

// Format selects the representation produced by FormatOutput.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatSARIF Format = "sarif"
)

// ParseFormat converts a format name to a Format. Matching is case-sensitive
// and any unrecognized name yields FormatText.
func ParseFormat(name string) Format {
	switch Format(name) {
	case FormatJSON:
		return FormatJSON
	case FormatSARIF:
		return FormatSARIF
	default:
		return FormatText
	}
}

// Options controls a single formatting call.
type Options struct {
	// Quiet hides non-error issues in the text report. Counts are unaffected.
	Quiet bool

	// NoColor disables all ANSI styling for this call only.
	NoColor bool

	// Renderer supplies the color profile when NoColor is false.
	// Nil means lipgloss.DefaultRenderer().
	Renderer *lipgloss.Renderer

	// Dir is the base directory file paths are shown relative to in the text
	// report. Empty means the process working directory.
	Dir string
}

// Formatter renders a LintOutput into a single string.
type Formatter interface {
	Format(out *LintOutput) (string, error)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc func(out *LintOutput) (string, error)

func (f FormatterFunc) Format(out *LintOutput) (string, error) {
	return f(out)
}

// NewFormatter returns the Formatter for the given format. Unknown formats
// get the text formatter.
func NewFormatter(format Format, opts Options) Formatter {
	switch format {
	case FormatJSON:
		return FormatterFunc(renderJSON)
	case FormatSARIF:
		return FormatterFunc(renderSARIF)
	default:
		st := resolveStyles(opts)
		return FormatterFunc(func(out *LintOutput) (string, error) {
			return renderText(out, opts, st), nil
		})
	}
}

// FormatOutput renders out in the requested format.
// Styling is resolved per call, so concurrent calls with different NoColor
// settings do not interfere and no shared state outlives the call.
// Errors from the selected renderer are returned as-is.
func FormatOutput(out *LintOutput, format Format, opts Options) (string, error) {
	return NewFormatter(format, opts).Format(out)
}

// Ensure FormatterFunc implements Formatter.
var _ Formatter = FormatterFunc(nil)
