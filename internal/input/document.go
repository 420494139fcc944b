package input

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tydukes/coding-style-guide-sub009/internal/output"
)

var jsonNull = []byte("null")

// DecodeLintOutput parses a lint results document. A blank document or a
// bare JSON null is ErrEmpty.
func DecodeLintOutput(data []byte) (*output.LintOutput, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull) {
		return nil, ErrEmpty
	}
	var out output.LintOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode lint output: %w", err)
	}
	return &out, nil
}

// ReadLintOutput reads and decodes the lint results document at path.
// The returned value does not reference the read buffer.
func ReadLintOutput(r Reader, path string) (*output.LintOutput, int, error) {
	res, err := r.Read(path)
	if err != nil {
		return nil, 0, err
	}
	defer res.Closer()

	out, err := DecodeLintOutput(res.Data)
	if err != nil {
		return nil, len(res.Data), fmt.Errorf("%s: %w", displayName(path), err)
	}
	return out, len(res.Data), nil
}

// ReadLinterSet reads a linter registry. A document starting with '{' is
// decoded as JSON, anything else as YAML. Linters keep the order they appear
// in the document.
func ReadLinterSet(r Reader, path string) (*output.LinterSet, error) {
	res, err := r.Read(path)
	if err != nil {
		return nil, err
	}
	defer res.Closer()

	trimmed := bytes.TrimSpace(res.Data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%s: %w", displayName(path), ErrEmpty)
	}
	set := output.NewLinterSet()
	if trimmed[0] == '{' {
		err = json.Unmarshal(trimmed, set)
	} else {
		err = yaml.Unmarshal(res.Data, set)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: decode linter registry: %w", displayName(path), err)
	}
	return set, nil
}

func displayName(path string) string {
	if path == StdinPath || path == "" {
		return "<stdin>"
	}
	return path
}
