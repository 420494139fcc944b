package output

import (
	"io"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

var newline = []byte{'\n'}

// Writer writes rendered reports, each terminated by a newline.
// Reports from concurrent callers are never interleaved.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
	fd int // -1 unless w is an *os.File
}

// NewWriter creates a Writer on w. When w is an *os.File, report and newline
// go out in a single writev call.
func NewWriter(w io.Writer) *Writer {
	fd := -1
	if f, ok := w.(*os.File); ok {
		fd = int(f.Fd())
	}
	return &Writer{w: w, fd: fd}
}

// WriteReport writes report followed by a newline.
func (w *Writer) WriteReport(report string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fd < 0 {
		if _, err := io.WriteString(w.w, report); err != nil {
			return err
		}
		_, err := w.w.Write(newline)
		return err
	}
	return writev(w.fd, [][]byte{[]byte(report), newline})
}

// writev writes all of iovs, retrying after short writes.
func writev(fd int, iovs [][]byte) error {
	for len(iovs) > 0 {
		n, err := unix.Writev(fd, iovs)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return err
		}
		for n > 0 && len(iovs) > 0 {
			if n < len(iovs[0]) {
				iovs[0] = iovs[0][n:]
				n = 0
				break
			}
			n -= len(iovs[0])
			iovs = iovs[1:]
		}
		// drop empty leading buffers so the loop terminates
		for len(iovs) > 0 && len(iovs[0]) == 0 {
			iovs = iovs[1:]
		}
	}
	return nil
}
