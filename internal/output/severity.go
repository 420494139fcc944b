package output

// Status glyphs used by the summary line and the linter inventory.
const (
	GlyphSuccess = "✓"
	GlyphWarning = "⚠"
	GlyphError   = "✗"
)

// Label returns the display label for the severity.
func (s Severity) Label() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// SARIFLevel maps the severity to a SARIF result level.
func (s Severity) SARIFLevel() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}

// statusGlyph picks the leading glyph of the summary line.
// Errors take precedence over warnings.
func statusGlyph(sum Summary, st Styles) string {
	switch {
	case sum.Errors > 0:
		return st.Error.Render(GlyphError)
	case sum.Warnings > 0:
		return st.Warning.Render(GlyphWarning)
	default:
		return st.Success.Render(GlyphSuccess)
	}
}
