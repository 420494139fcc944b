package output

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderText produces the human-readable report: one block per file with
// something to show, followed by a single summary line.
func renderText(out *LintOutput, opts Options, st Styles) string {
	base := opts.Dir
	if base == "" {
		base, _ = os.Getwd()
	} else if abs, err := filepath.Abs(base); err == nil {
		base = abs
	}

	var lines []string
	for _, result := range out.Results {
		issues := result.Issues
		if opts.Quiet {
			issues = errorsOnly(issues)
		}
		if len(issues) == 0 {
			continue
		}

		lines = append(lines, "", st.Path.Render(relPath(base, result.File)))
		for i := range issues {
			lines = append(lines, formatIssue(&issues[i], st))
		}
	}

	lines = append(lines, renderSummary(out.Summary, st))
	return strings.Join(lines, "\n")
}

func errorsOnly(issues []Issue) []Issue {
	var kept []Issue
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			kept = append(kept, issue)
		}
	}
	return kept
}

// formatIssue renders `<line>:<column>  <label>  <message> (<rule>)[ [fixable]]`.
func formatIssue(issue *Issue, st Styles) string {
	var b strings.Builder
	pos := strconv.Itoa(issue.Line) + ":" + strconv.Itoa(issue.Column)
	b.WriteString(st.Dim.Render(pos))
	b.WriteString("  ")
	b.WriteString(severityStyle(issue.Severity, st).Render(issue.Severity.Label()))
	b.WriteString("  ")
	b.WriteString(issue.Message)
	b.WriteByte(' ')
	b.WriteString(st.Dim.Render("(" + issue.Rule + ")"))
	if issue.Fixable {
		b.WriteByte(' ')
		b.WriteString(st.Fixable.Render("[fixable]"))
	}
	return b.String()
}

func severityStyle(s Severity, st Styles) lipgloss.Style {
	switch s {
	case SeverityError:
		return st.Error
	case SeverityWarning:
		return st.Warning
	default:
		return st.Info
	}
}

// renderSummary builds the trailing summary line, e.g.
// "✗ 3 files checked, 1 error, 0 warnings, 1 fixable (12ms)".
func renderSummary(sum Summary, st Styles) string {
	clauses := []string{
		plural(sum.Files, "file", "files") + " checked",
		plural(sum.Errors, "error", "errors"),
		plural(sum.Warnings, "warning", "warnings"),
	}
	if sum.Fixable > 0 {
		clauses = append(clauses, strconv.Itoa(sum.Fixable)+" fixable")
	}
	if sum.Fixed != nil && *sum.Fixed > 0 {
		clauses = append(clauses, strconv.Itoa(*sum.Fixed)+" fixed")
	}

	duration := st.Dim.Render("(" + strconv.FormatInt(sum.Duration, 10) + "ms)")
	return statusGlyph(sum, st) + " " + strings.Join(clauses, ", ") + " " + duration
}

// plural formats n with the singular noun only when n is exactly 1.
func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + pluralForm
}

// relPath shows file relative to base. Relative paths are taken to be
// relative to base already; anything that cannot be relativized is returned
// unchanged.
func relPath(base, file string) string {
	if base == "" || file == "" {
		return file
	}
	abs := file
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(base, file)
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return file
	}
	return rel
}
