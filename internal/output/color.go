package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles for report formatting.
// All styles are bound to one renderer, so its color profile decides whether
// any escape codes are emitted.
type Styles struct {
	Path    lipgloss.Style
	Dim     lipgloss.Style
	Bold    lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Fixable lipgloss.Style
}

// NewStyles creates the default color styles on the given renderer.
// A nil renderer means lipgloss.DefaultRenderer().
func NewStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Styles{
		Path:    r.NewStyle().Underline(true),
		Dim:     r.NewStyle().Faint(true),
		Bold:    r.NewStyle().Bold(true),
		Error:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true), // bold red
		Warning: r.NewStyle().Foreground(lipgloss.Color("3")),            // yellow
		Info:    r.NewStyle().Foreground(lipgloss.Color("4")),            // blue
		Success: r.NewStyle().Foreground(lipgloss.Color("2")),            // green
		Fixable: r.NewStyle().Foreground(lipgloss.Color("2")),
	}
}

// NoStyles returns styles that never emit escape codes.
func NoStyles() Styles {
	return NewStyles(PlainRenderer())
}

// PlainRenderer returns a private renderer pinned to the Ascii profile.
// It never touches the default renderer.
func PlainRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return r
}

// ColorRenderer returns a private renderer forced to the given profile,
// regardless of what the output is attached to.
func ColorRenderer(w io.Writer, profile termenv.Profile) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	return r
}

// resolveStyles picks the styles for a single formatting call.
func resolveStyles(opts Options) Styles {
	if opts.NoColor {
		return NoStyles()
	}
	return NewStyles(opts.Renderer)
}

// IsTerminal checks if the given file descriptor is a terminal.
func IsTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
