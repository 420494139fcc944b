package watch

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func TestWatcher_CreateAndClose(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close() error: %v", err)
	}
}

func TestWatcher_AddFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.json")
	if err := os.WriteFile(path, []byte("{}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
}

func TestWatcher_AddMissingFile(t *testing.T) {
	dir := t.TempDir()

	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	// the file does not exist yet; its directory does
	if err := w.Add(filepath.Join(dir, "results.json")); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if err := w.Add(filepath.Join(dir, "missing", "results.json")); err == nil {
		t.Fatal("Add() in a missing directory: expected error")
	}
}

// waitEvent returns the next event or fails the test after two seconds.
func waitEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	timer := time.NewTimer(2 * time.Second)
	defer timer.Stop()

	select {
	case evt, ok := <-events:
		if !ok {
			t.Fatal("events channel closed")
		}
		if evt.Err != nil {
			t.Fatalf("event error: %v", evt.Err)
		}
		return evt
	case <-timer.C:
		t.Fatal("timeout waiting for event")
	}
	return Event{}
}

func TestWatcher_DetectWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.json")
	if err := os.WriteFile(path, []byte("{}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		t.Fatal(err)
	}
	events := w.Events()

	go func() {
		time.Sleep(50 * time.Millisecond)
		os.WriteFile(path, []byte(`{"results":[]}`), 0644)
	}()

	evt := waitEvent(t, events)
	if evt.Type != EventWritten {
		t.Errorf("event type = %v, want %v", evt.Type, EventWritten)
	}
	if evt.Path != path {
		t.Errorf("path = %q, want %q", evt.Path, path)
	}
}

func TestWatcher_DetectAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.json")

	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		t.Fatal(err)
	}
	events := w.Events()

	go func() {
		time.Sleep(50 * time.Millisecond)
		tmp := filepath.Join(dir, ".results.json.tmp")
		if err := os.WriteFile(tmp, []byte("{}"), 0644); err != nil {
			return
		}
		os.Rename(tmp, path)
	}()

	// the temp file's own close-write is filtered out
	evt := waitEvent(t, events)
	if evt.Type != EventWritten {
		t.Errorf("event type = %v, want %v", evt.Type, EventWritten)
	}
	if evt.Path != path {
		t.Errorf("path = %q, want %q", evt.Path, path)
	}
}

func TestWatcher_DetectRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.json")
	if err := os.WriteFile(path, []byte("{}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		t.Fatal(err)
	}
	events := w.Events()

	go func() {
		time.Sleep(50 * time.Millisecond)
		os.Remove(path)
	}()

	evt := waitEvent(t, events)
	if evt.Type != EventRemoved {
		t.Errorf("event type = %v, want %v", evt.Type, EventRemoved)
	}
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.json")
	other := filepath.Join(dir, "other.json")

	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		t.Fatal(err)
	}
	events := w.Events()

	go func() {
		time.Sleep(50 * time.Millisecond)
		os.WriteFile(other, []byte("{}"), 0644)
		time.Sleep(50 * time.Millisecond)
		os.WriteFile(path, []byte("{}"), 0644)
	}()

	evt := waitEvent(t, events)
	if evt.Path != path {
		t.Errorf("first event path = %q, want %q", evt.Path, path)
	}
}

func TestWatcher_EventsClosedAfterClose(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	events := w.Events()
	w.Close()

	timer := time.NewTimer(2 * time.Second)
	defer timer.Stop()
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-timer.C:
			t.Fatal("events channel not closed after Close")
		}
	}
}

func TestWatcher_CloseWaitsForReaders(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Add(filepath.Join(t.TempDir(), "results.json")); err != nil {
		t.Fatal(err)
	}
	chans := []<-chan Event{w.Events(), w.Events(), w.Events()}

	if err := w.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	// every reader has exited by the time Close returns
	for i, ch := range chans {
		select {
		case _, ok := <-ch:
			if ok {
				t.Errorf("channel %d delivered an event after Close", i)
			}
		default:
			t.Errorf("channel %d still open after Close returned", i)
		}
	}

	if _, ok := <-w.Events(); ok {
		t.Error("Events after Close delivered an event")
	}
}

// inotifyRecord encodes one inotify event with its name NUL-padded to 16 bytes.
func inotifyRecord(wd int32, mask uint32, name string) []byte {
	nameLen := 16
	buf := make([]byte, inotifyEventSize+nameLen)
	binary.LittleEndian.PutUint32(buf[0:], uint32(wd))
	binary.LittleEndian.PutUint32(buf[4:], mask)
	binary.LittleEndian.PutUint32(buf[12:], uint32(nameLen))
	copy(buf[inotifyEventSize:], name)
	return buf
}

func TestParseEvents(t *testing.T) {
	w := &Watcher{
		dirs:  map[int]string{1: "/tmp/lint"},
		files: map[string]map[string]bool{"/tmp/lint": {"results.json": true}},
	}

	var buf []byte
	buf = append(buf, inotifyRecord(1, unix.IN_CLOSE_WRITE, "results.json")...)
	buf = append(buf, inotifyRecord(1, unix.IN_CLOSE_WRITE, "other.json")...)
	buf = append(buf, inotifyRecord(1, unix.IN_MOVED_FROM, "results.json")...)
	buf = append(buf, inotifyRecord(2, unix.IN_DELETE, "results.json")...)

	got := w.parseEvents(buf)
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(got), got)
	}
	if got[0].Type != EventWritten || got[0].Path != "/tmp/lint/results.json" {
		t.Errorf("event 0 = %+v, want written /tmp/lint/results.json", got[0])
	}
	if got[1].Type != EventRemoved {
		t.Errorf("event 1 type = %v, want %v", got[1].Type, EventRemoved)
	}
}

func TestParseEvents_Truncated(t *testing.T) {
	w := &Watcher{
		dirs:  map[int]string{1: "/tmp/lint"},
		files: map[string]map[string]bool{"/tmp/lint": {"results.json": true}},
	}
	buf := inotifyRecord(1, unix.IN_CLOSE_WRITE, "results.json")
	if got := w.parseEvents(buf[:inotifyEventSize+4]); len(got) != 0 {
		t.Errorf("truncated record produced events: %+v", got)
	}
}
