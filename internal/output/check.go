package output

import (
	"errors"
	"fmt"
)

// ErrSummaryMismatch is returned by CheckSummary when the supplied summary
// disagrees with the results.
var ErrSummaryMismatch = errors.New("summary does not match results")

// CheckSummary recomputes the error, warning and fixable totals from the
// results and compares them against the summary. Renderers never call it;
// the summary is always rendered as given.
func CheckSummary(out *LintOutput) error {
	var errs, warnings, fixable int
	for _, r := range out.Results {
		var resultFixable int
		for _, issue := range r.Issues {
			switch issue.Severity {
			case SeverityError:
				errs++
			case SeverityWarning:
				warnings++
			}
			if issue.Fixable {
				resultFixable++
			}
		}
		if resultFixable != r.Fixable {
			return fmt.Errorf("%w: %s has %d fixable issues, result says %d",
				ErrSummaryMismatch, r.File, resultFixable, r.Fixable)
		}
		fixable += r.Fixable
	}

	s := out.Summary
	switch {
	case errs != s.Errors:
		return fmt.Errorf("%w: %d errors in results, summary says %d", ErrSummaryMismatch, errs, s.Errors)
	case warnings != s.Warnings:
		return fmt.Errorf("%w: %d warnings in results, summary says %d", ErrSummaryMismatch, warnings, s.Warnings)
	case fixable != s.Fixable:
		return fmt.Errorf("%w: %d fixable in results, summary says %d", ErrSummaryMismatch, fixable, s.Fixable)
	}
	return nil
}
