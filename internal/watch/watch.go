// Package watch notifies when lint result documents change on disk.
package watch

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

// Event represents a change to a watched file.
type Event struct {
	Path string
	Type EventType
	Err  error
}

// EventType identifies the kind of file change.
type EventType int

const (
	// EventWritten means the file was rewritten in place or replaced by a
	// rename (the usual way tools publish a finished results file).
	EventWritten EventType = iota
	// EventRemoved means the file was deleted or moved away.
	EventRemoved
)

func (t EventType) String() string {
	switch t {
	case EventWritten:
		return "written"
	case EventRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Watcher watches files for changes using raw inotify + epoll.
// Each file is watched through its parent directory so that atomic
// replacements are seen as well as in-place writes.
type Watcher struct {
	inotifyFd int
	epollFd   int

	mu    sync.Mutex
	dirs  map[int]string             // wd -> directory
	files map[string]map[string]bool // directory -> watched base names

	done      chan struct{}
	readers   sync.WaitGroup // Events goroutines; fds stay open until they exit
	closeOnce sync.Once
}

// New creates a new inotify-based watcher.
func New() (*Watcher, error) {
	ifd, err := unix.InotifyInit1(unix.IN_CLOEXEC | unix.IN_NONBLOCK)
	if err != nil {
		return nil, fmt.Errorf("inotify_init1: %w", err)
	}

	efd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		unix.Close(ifd)
		return nil, fmt.Errorf("epoll_create1: %w", err)
	}

	event := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(ifd)}
	if err := unix.EpollCtl(efd, unix.EPOLL_CTL_ADD, ifd, &event); err != nil {
		unix.Close(efd)
		unix.Close(ifd)
		return nil, fmt.Errorf("epoll_ctl: %w", err)
	}

	return &Watcher{
		inotifyFd: ifd,
		epollFd:   efd,
		dirs:      make(map[int]string),
		files:     make(map[string]map[string]bool),
		done:      make(chan struct{}),
	}, nil
}

// Add starts watching a file. The file itself need not exist yet, but its
// directory must.
func (w *Watcher) Add(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir, name := filepath.Split(absPath)
	dir = filepath.Clean(dir)

	mask := uint32(unix.IN_CLOSE_WRITE | unix.IN_MOVED_TO | unix.IN_DELETE | unix.IN_MOVED_FROM)
	wd, err := unix.InotifyAddWatch(w.inotifyFd, dir, mask)
	if err != nil {
		return fmt.Errorf("inotify_add_watch %s: %w", dir, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.dirs[wd] = dir
	if w.files[dir] == nil {
		w.files[dir] = make(map[string]bool)
	}
	w.files[dir][name] = true
	return nil
}

// Events returns a channel of file events. The channel is closed by Close,
// and is returned already closed once the watcher is closed.
func (w *Watcher) Events() <-chan Event {
	ch := make(chan Event, 64)

	w.mu.Lock()
	if w.closed() {
		w.mu.Unlock()
		close(ch)
		return ch
	}
	w.readers.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.readers.Done()
		defer close(ch)
		buf := make([]byte, 4096)
		events := make([]unix.EpollEvent, 1)

		for {
			if w.closed() {
				return
			}

			// 100ms timeout so Close is noticed promptly
			n, err := unix.EpollWait(w.epollFd, events, 100)
			if err != nil {
				if w.closed() {
					return
				}
				if err == unix.EINTR {
					continue
				}
				w.send(ch, Event{Err: fmt.Errorf("epoll_wait: %w", err)})
				return
			}
			if n == 0 {
				continue
			}

			nbytes, err := unix.Read(w.inotifyFd, buf)
			if err != nil {
				if w.closed() {
					return
				}
				if err == unix.EAGAIN {
					continue
				}
				w.send(ch, Event{Err: fmt.Errorf("read inotify: %w", err)})
				return
			}
			for _, evt := range w.parseEvents(buf[:nbytes]) {
				if !w.send(ch, evt) {
					return
				}
			}
		}
	}()
	return ch
}

func (w *Watcher) closed() bool {
	select {
	case <-w.done:
		return true
	default:
		return false
	}
}

// send delivers evt unless the watcher is closing.
func (w *Watcher) send(ch chan<- Event, evt Event) bool {
	select {
	case ch <- evt:
		return true
	case <-w.done:
		return false
	}
}

// inotify event header layout:
//
//	int32  wd       (offset 0)
//	uint32 mask     (offset 4)
//	uint32 cookie   (offset 8)
//	uint32 len      (offset 12)
//	char   name[]   (offset 16)
const inotifyEventSize = 16

func (w *Watcher) parseEvents(buf []byte) []Event {
	w.mu.Lock()
	defer w.mu.Unlock()

	var out []Event
	offset := 0
	for offset+inotifyEventSize <= len(buf) {
		wd := int32(binary.LittleEndian.Uint32(buf[offset:]))
		mask := binary.LittleEndian.Uint32(buf[offset+4:])
		nameLen := int(binary.LittleEndian.Uint32(buf[offset+12:]))

		nameStart := offset + inotifyEventSize
		nameEnd := nameStart + nameLen
		if nameEnd > len(buf) {
			break
		}
		name := string(trimNUL(buf[nameStart:nameEnd]))
		offset = nameEnd

		dir, ok := w.dirs[int(wd)]
		if !ok || !w.files[dir][name] {
			continue
		}
		path := filepath.Join(dir, name)

		switch {
		case mask&(unix.IN_CLOSE_WRITE|unix.IN_MOVED_TO) != 0:
			out = append(out, Event{Path: path, Type: EventWritten})
		case mask&(unix.IN_DELETE|unix.IN_MOVED_FROM) != 0:
			out = append(out, Event{Path: path, Type: EventRemoved})
		}
	}
	return out
}

func trimNUL(b []byte) []byte {
	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}
	return b
}

// Close stops the watcher and releases resources. It returns once every
// Events channel has been closed.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.mu.Lock()
		close(w.done)
		w.mu.Unlock()

		w.readers.Wait()
		unix.Close(w.epollFd)
		err = unix.Close(w.inotifyFd)
	})
	return err
}
