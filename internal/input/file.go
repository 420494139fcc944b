package input

import (
	"fmt"
	"sync"
	"syscall"

	"golang.org/x/sys/unix"
)

// DefaultMmapThreshold is the file size from which documents are memory-mapped.
const DefaultMmapThreshold = 4 << 20

// bufPool pools read buffers. Lint result documents are decoded and released
// immediately, so buffers are returned quickly.
var bufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 64*1024)
		return &b
	},
}

// FileReader opens a file once, fstats it, and reads it with pread into a
// pooled buffer, or memory-maps it when it is at least threshold bytes.
type FileReader struct {
	threshold int64
}

// NewFileReader creates a FileReader. A threshold <= 0 uses DefaultMmapThreshold.
func NewFileReader(mmapThreshold int64) *FileReader {
	if mmapThreshold <= 0 {
		mmapThreshold = DefaultMmapThreshold
	}
	return &FileReader{threshold: mmapThreshold}
}

func (r *FileReader) Read(path string) (ReadResult, error) {
	fd, err := openFile(path)
	if err != nil {
		return ReadResult{}, fmt.Errorf("open %s: %w", path, err)
	}

	var stat unix.Stat_t
	if err := unix.Fstat(fd, &stat); err != nil {
		unix.Close(fd)
		return ReadResult{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.Mode&unix.S_IFMT == unix.S_IFDIR {
		unix.Close(fd)
		return ReadResult{}, fmt.Errorf("read %s: is a directory", path)
	}
	if stat.Size == 0 {
		unix.Close(fd)
		return ReadResult{Closer: noopCloser}, nil
	}

	if stat.Size >= r.threshold {
		return readMmap(fd, stat.Size)
	}
	return readPooled(fd, stat.Size)
}

// readPooled reads size bytes from fd into a pooled buffer.
// Takes ownership of fd.
func readPooled(fd int, size int64) (ReadResult, error) {
	defer unix.Close(fd)

	bp := bufPool.Get().(*[]byte)
	buf := *bp
	if cap(buf) < int(size) {
		buf = make([]byte, size)
	} else {
		buf = buf[:size]
	}
	release := func() error {
		*bp = buf[:0]
		bufPool.Put(bp)
		return nil
	}

	var n int
	for n < int(size) {
		m, err := unix.Pread(fd, buf[n:], int64(n))
		if err != nil {
			release()
			return ReadResult{}, err
		}
		if m == 0 {
			break
		}
		n += m
	}
	return ReadResult{Data: buf[:n], Closer: release}, nil
}

// readMmap maps fd read-only. Falls back to a pooled read if mapping fails.
// Takes ownership of fd.
func readMmap(fd int, size int64) (ReadResult, error) {
	data, err := syscall.Mmap(fd, 0, int(size), syscall.PROT_READ, syscall.MAP_PRIVATE)
	if err != nil {
		return readPooled(fd, size)
	}
	unix.Madvise(data, unix.MADV_SEQUENTIAL)

	return ReadResult{
		Data: data,
		Closer: func() error {
			err := syscall.Munmap(data)
			unix.Close(fd)
			return err
		},
	}, nil
}

// openFile opens a file with O_NOATIME, falling back without it.
func openFile(path string) (int, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NOATIME|unix.O_CLOEXEC, 0)
	if err != nil {
		fd, err = unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	}
	return fd, err
}
