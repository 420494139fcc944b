package input

import (
	"fmt"
	"io"
	"os"
)

// StdinReader reads all data from stdin, or from the reader it was built with.
type StdinReader struct {
	r io.Reader
}

// NewStdinReader creates a StdinReader on os.Stdin.
func NewStdinReader() *StdinReader {
	return &StdinReader{r: os.Stdin}
}

// NewStreamReader creates a StdinReader on an arbitrary stream.
func NewStreamReader(r io.Reader) *StdinReader {
	return &StdinReader{r: r}
}

// Read ignores path and drains the stream.
func (r *StdinReader) Read(_ string) (ReadResult, error) {
	data, err := io.ReadAll(r.r)
	if err != nil {
		return ReadResult{}, fmt.Errorf("read stdin: %w", err)
	}
	if len(data) == 0 {
		return ReadResult{Closer: noopCloser}, nil
	}
	return ReadResult{Data: data, Closer: noopCloser}, nil
}
