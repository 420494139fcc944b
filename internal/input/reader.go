// Package input reads the documents the CLI renders: lint results produced by
// the orchestration step, and linter registries.
package input

import (
	"errors"
	"io"
)

// StdinPath is the path argument that selects standard input.
const StdinPath = "-"

// ErrEmpty is returned when a document has no content.
var ErrEmpty = errors.New("empty document")

// ReadResult holds the data read from a document and a cleanup function.
// Data may point into a pooled buffer or a memory mapping, so it must not be
// used after Closer has been called.
type ReadResult struct {
	Data   []byte
	Closer func() error
}

// noopCloser is a package-level no-op closer to avoid allocating a func literal per read.
func noopCloser() error { return nil }

// Reader reads a whole document into memory.
type Reader interface {
	Read(path string) (ReadResult, error)
}

// ForPath returns the reader for path: a stream reader on stdin for StdinPath
// or an empty path, the file reader otherwise. A nil stdin means os.Stdin.
func ForPath(path string, stdin io.Reader, files Reader) Reader {
	if path == StdinPath || path == "" {
		if stdin == nil {
			return NewStdinReader()
		}
		return NewStreamReader(stdin)
	}
	return files
}
