package output

import (
	"bytes"
	"encoding/json"
)

// renderJSON serializes the output verbatim as indented JSON.
func renderJSON(out *LintOutput) (string, error) {
	return marshalIndent(normalize(out))
}

// normalize returns a shallow copy whose nil slices are empty, so that
// absent collections render as [] rather than null.
func normalize(out *LintOutput) *LintOutput {
	cp := *out
	cp.Results = make([]LintResult, len(out.Results))
	for i, r := range out.Results {
		if r.Issues == nil {
			r.Issues = []Issue{}
		}
		cp.Results[i] = r
	}
	return &cp
}

// marshalIndent encodes v with a two-space indent, without HTML escaping and
// without a trailing newline.
func marshalIndent(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}
