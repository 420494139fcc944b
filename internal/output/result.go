package output

// Severity is the severity tag of a single issue.
// Only SeverityError and SeverityWarning are distinguished; every other value,
// including SeverityInfo and anything unknown, is displayed at the info tier.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is one finding within a file. Positions are 1-based.
type Issue struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	// EndLine and EndColumn are optional; nil means the region is a single point.
	EndLine   *int     `json:"endLine,omitempty"`
	EndColumn *int     `json:"endColumn,omitempty"`
	Message   string   `json:"message"`
	Rule      string   `json:"rule"`
	Severity  Severity `json:"severity"`
	Fixable   bool     `json:"fixable"`
}

// End returns the end position of the issue, falling back to the start
// position for any missing coordinate.
func (i *Issue) End() (line, column int) {
	line, column = i.Line, i.Column
	if i.EndLine != nil {
		line = *i.EndLine
	}
	if i.EndColumn != nil {
		column = *i.EndColumn
	}
	return line, column
}

// LintResult holds the findings for a single file, in scan order.
type LintResult struct {
	File     string  `json:"file"`
	Language string  `json:"language"`
	Issues   []Issue `json:"issues"`
	// Fixable caches the number of issues with Fixable set.
	Fixable int `json:"fixable"`
}

// Summary aggregates counters across all results. It is computed upstream
// and rendered as given.
type Summary struct {
	// Files may exceed len(Results) when clean files are omitted.
	Files    int  `json:"files"`
	Errors   int  `json:"errors"`
	Warnings int  `json:"warnings"`
	Fixable  int  `json:"fixable"`
	Fixed    *int `json:"fixed,omitempty"` // set only after an auto-fix pass
	// Duration is the elapsed scan time in milliseconds.
	Duration int64 `json:"duration"`
}

// LintOutput is the root of a lint run.
type LintOutput struct {
	Results []LintResult `json:"results"`
	Summary Summary      `json:"summary"`
}

// HasErrors reports whether the summary counts any errors.
func (o *LintOutput) HasErrors() bool {
	return o.Summary.Errors > 0
}

// IntPtr returns a pointer to v, for populating optional fields.
func IntPtr(v int) *int {
	return &v
}
