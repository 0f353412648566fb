package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestConvertOp(t *testing.T) {
	tests := []struct {
		in   fsnotify.Op
		want Operation
		ok   bool
	}{
		{fsnotify.Write, OpWrite, true},
		{fsnotify.Create, OpCreate, true},
		{fsnotify.Create | fsnotify.Write, OpCreate, true},
		{fsnotify.Remove, OpRemove, true},
		{fsnotify.Rename, OpRename, true},
		{fsnotify.Chmod, 0, false},
	}
	for _, tt := range tests {
		got, ok := convertOp(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("convertOp(%v) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestWatcher_Watch(t *testing.T) {
	dir := t.TempDir()
	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	// The file need not exist.
	if err := w.Watch(filepath.Join(dir, "critic.toml")); err != nil {
		t.Errorf("Watch() error = %v", err)
	}
	if err := w.Watch(filepath.Join(dir, "critic.yaml")); err != nil {
		t.Errorf("Watch() error = %v", err)
	}
	if got := len(w.WatchedFiles()); got != 2 {
		t.Errorf("WatchedFiles() = %d files, want 2", got)
	}
	if len(w.dirs) != 1 {
		t.Errorf("expected one followed directory, got %d", len(w.dirs))
	}

	if err := w.Watch(filepath.Join(dir, "missing", "x.toml")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestWatcher_Closed(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
	if err := w.Watch(t.TempDir()); err != ErrWatcherClosed {
		t.Errorf("Watch after Close = %v, want ErrWatcherClosed", err)
	}
}

func TestWatcher_DeliversChanges(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "critic.toml")
	other := filepath.Join(dir, "other.toml")

	w, err := New(WithDebounce(20 * time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	events := make(chan Event, 16)
	w.OnChange(func(e Event) { events <- e })
	w.OnChange(func(Event) { panic("handler failure") })
	if err := w.Watch(watched); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(other, []byte("x = 1"), 0644); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(watched, []byte("author = \"amy\""), 0644); err != nil {
			t.Fatal(err)
		}
	}

	want, _ := filepath.Abs(watched)
	select {
	case e := <-events:
		if e.Path != want {
			t.Errorf("event path = %s, want %s", e.Path, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change delivered")
	}

	// Drain; nothing from the unwatched file may arrive.
	deadline := time.After(100 * time.Millisecond)
	for {
		select {
		case e := <-events:
			if e.Path != want {
				t.Errorf("unexpected event for %s", e.Path)
			}
		case <-deadline:
			return
		}
	}
}

func TestWatchContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "critic.toml")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []string{path}, func(Event) {})
	}()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
