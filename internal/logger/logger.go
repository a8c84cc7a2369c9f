// Package logger writes structured session logs to the XDG state directory.
// The terminal belongs to the UI, so nothing is ever logged to stderr.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidLogLevel is returned when an unrecognised log level is provided.
var ErrInvalidLogLevel = errors.New("invalid log level")

const (
	appName = "uinav"

	dirPermissions  = 0o755
	filePermissions = 0o644
)

// Logger is a leveled slog logger backed by a per-process log file.
type Logger struct {
	log  *slog.Logger
	file *os.File
	// owner is false for loggers derived with With; they share the parent's
	// file and must not close it.
	owner bool
}

// New creates a Logger. An empty level returns a logger that discards
// everything without touching the filesystem. Valid levels: debug, info,
// warn, error (case-insensitive).
func New(level string) (*Logger, error) {
	if level == "" {
		return Nop(), nil
	}

	slogLevel, err := parseLogLevel(level)
	if err != nil {
		return nil, err
	}

	dir, err := logDir()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, fmt.Sprintf("%s-%d.log", appName, os.Getpid()))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermissions)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}

	l := &Logger{
		log:   slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slogLevel})),
		file:  f,
		owner: true,
	}
	l.Info(appName+" started", "pid", os.Getpid(), "level", strings.ToLower(level), "log_path", path)
	return l, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// With returns a logger that adds args to every record, e.g.
// With("component", "bindings").
func (l *Logger) With(args ...any) *Logger {
	return &Logger{log: l.log.With(args...), file: l.file}
}

// Path returns the log file path, or "" when logging is disabled.
func (l *Logger) Path() string {
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}

// Close closes the log file. It is a no-op for derived and no-op loggers.
func (l *Logger) Close() error {
	if !l.owner || l.file == nil {
		return nil
	}
	return l.file.Close()
}

func (l *Logger) Debug(msg string, args ...any) { l.log.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any) { l.log.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any) { l.log.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log.Error(msg, args...) }

func logDir() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine home directory: %w", err)
		}
		stateDir = filepath.Join(home, ".local", "state")
	}

	dir := filepath.Join(stateDir, appName)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return "", fmt.Errorf("could not create log directory: %w", err)
	}
	return dir, nil
}

func parseLogLevel(level string) (slog.Level, error) {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		if err := l.UnmarshalText([]byte(level)); err != nil {
			return 0, fmt.Errorf("%w: %s", ErrInvalidLogLevel, level)
		}
		return l, nil
	default:
		return 0, fmt.Errorf("%w: %s (use debug, info, warn, error)", ErrInvalidLogLevel, level)
	}
}
