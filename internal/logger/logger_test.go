package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func readLog(t *testing.T, l *Logger) string {
	t.Helper()
	content, err := os.ReadFile(l.Path())
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	return string(content)
}

// =============================================================================
// Unit Tests
// =============================================================================

func TestNew_LogFilePerProcess(t *testing.T) {
	stateDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateDir)

	l, err := New("Info")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer l.Close()

	want := filepath.Join(stateDir, "uinav", "uinav-"+strconv.Itoa(os.Getpid())+".log")
	if l.Path() != want {
		t.Errorf("Path() = %q, want %q", l.Path(), want)
	}
	if content := readLog(t, l); !strings.Contains(content, "uinav started") {
		t.Errorf("missing start record, got:\n%s", content)
	}
}

func TestNew_EmptyLevelTouchesNothing(t *testing.T) {
	stateDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateDir)

	l, err := New("")
	if err != nil {
		t.Fatalf("New(\"\"): %v", err)
	}
	l.Info("dropped")
	if err := l.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if l.Path() != "" {
		t.Errorf("Path() = %q, want empty", l.Path())
	}
	if _, err := os.Stat(filepath.Join(stateDir, "uinav")); !os.IsNotExist(err) {
		t.Errorf("log directory should not exist for empty level")
	}
}

func TestNew_ClobbersPreviousSession(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	first, err := New("debug")
	if err != nil {
		t.Fatal(err)
	}
	first.Info("first session")
	first.Close()

	second, err := New("debug")
	if err != nil {
		t.Fatal(err)
	}
	second.Info("second session")
	second.Close()

	content := readLog(t, second)
	if strings.Contains(content, "first session") || !strings.Contains(content, "second session") {
		t.Errorf("log file should be clobbered, got:\n%s", content)
	}
}

func TestLevelFiltering(t *testing.T) {
	messages := []string{"debug msg", "info msg", "warn msg", "error msg"}
	tests := []struct {
		level string
		first int // index of the first message that must appear
	}{
		{"debug", 0},
		{"info", 1},
		{"warn", 2},
		{"error", 3},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Setenv("XDG_STATE_HOME", t.TempDir())
			l, err := New(tt.level)
			if err != nil {
				t.Fatal(err)
			}
			l.Debug(messages[0])
			l.Info(messages[1])
			l.Warn(messages[2])
			l.Error(messages[3])
			l.Close()

			content := readLog(t, l)
			for i, msg := range messages {
				if got, want := strings.Contains(content, msg), i >= tt.first; got != want {
					t.Errorf("level %s: contains %q = %v, want %v", tt.level, msg, got, want)
				}
			}
		})
	}
}

func TestWith_SharesFile(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	l, err := New("debug")
	if err != nil {
		t.Fatal(err)
	}

	child := l.With("component", "bindings")
	child.Info("reloaded", "actions", 8)
	if err := child.Close(); err != nil {
		t.Fatalf("child Close: %v", err)
	}
	l.Info("still open")
	l.Close()

	content := readLog(t, l)
	for _, want := range []string{"component=bindings", "actions=8", "still open"} {
		if !strings.Contains(content, want) {
			t.Errorf("log missing %q:\n%s", want, content)
		}
	}
}

// =============================================================================
// Property Tests
// =============================================================================

func TestNew_InvalidLevels(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		level := rapid.StringMatching(`[a-zA-Z0-9]{1,10}`).Draw(rt, "level")
		switch strings.ToLower(level) {
		case "debug", "info", "warn", "error":
			rt.Skip("valid level generated")
		}

		l, err := New(level)
		if err == nil {
			l.Close()
			rt.Fatalf("New(%q) should fail", level)
		}
		if !errors.Is(err, ErrInvalidLogLevel) {
			rt.Fatalf("New(%q) error = %v, want ErrInvalidLogLevel", level, err)
		}
	})
}
