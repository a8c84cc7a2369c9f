package bindings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chatter/uinav/internal/logger"
)

func TestWatcher_ForwardsBindingsFileOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bindings.toml")

	w, err := NewWatcher(path, logger.Nop())
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[[action]]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case event := <-w.Events():
		if filepath.Clean(event.Name) != path {
			t.Errorf("got event for %s, want %s", event.Name, path)
		}
	case <-time.After(500 * time.Millisecond):
		t.Error("expected event for bindings file, got none")
	}
}

func TestWatcher_SeesAtomicSave(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "bindings.toml"), columns, logger.Nop())

	w, err := NewWatcher(s.Path(), logger.Nop())
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	if err := s.Save(s.Defaults()); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Events():
	case <-time.After(500 * time.Millisecond):
		t.Error("rename into place was not reported")
	}
}

func TestWatcher_CloseClosesEvents(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "bindings.toml"), logger.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	select {
	case _, ok := <-w.Events():
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(500 * time.Millisecond):
		t.Error("events channel not closed after Close")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "bindings.toml"), logger.Nop())
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
