package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
)

// Config describes where and how a Logger writes.
// Each Logger owns its configuration; nothing is shared between instances.
type Config struct {
	// Component is attached to every record
	Component string

	// Level is the minimum level written (default: info)
	Level slog.Level

	// Dir, when set, sends records to <Dir>/<session-id>-browserinit.log
	// instead of the console
	Dir string

	// Console receives colored output when Dir is empty (default: os.Stderr)
	Console io.Writer

	// NoColor disables ANSI colors on console output
	NoColor bool
}

// Logger provides leveled logging for browserinit components.
type Logger struct {
	sessionID string
	component string
	slog      *slog.Logger
	file      *os.File
	logPath   string
	closeOnce sync.Once
}

// New creates a logger from cfg.
//
// If the log directory cannot be created or the log file cannot be opened,
// it returns a fallback logger that writes to the console along with the error.
// Callers can check the error to detect fallback mode.
func New(cfg Config) (*Logger, error) {
	sessionID := uuid.New().String()

	if cfg.Dir == "" {
		return newConsoleLogger(cfg, sessionID), nil
	}

	if err := os.MkdirAll(cfg.Dir, 0750); err != nil {
		return newFallbackLogger(cfg, sessionID, fmt.Errorf("failed to create log directory: %w", err))
	}

	logPath := filepath.Join(cfg.Dir, fmt.Sprintf("%s-browserinit.log", sessionID))

	// Open log file in append mode (multiple components may write to same file)
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return newFallbackLogger(cfg, sessionID, fmt.Errorf("failed to open log file: %w", err))
	}

	handler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: cfg.Level})

	return &Logger{
		sessionID: sessionID,
		component: cfg.Component,
		slog:      slog.New(handler).With("component", cfg.Component, "session", sessionID),
		file:      file,
		logPath:   logPath,
	}, nil
}

func newConsoleLogger(cfg Config, sessionID string) *Logger {
	w := cfg.Console
	if w == nil {
		w = os.Stderr
	}

	handler := tint.NewHandler(w, &tint.Options{
		Level:      cfg.Level,
		TimeFormat: time.DateTime,
		NoColor:    cfg.NoColor,
	})

	return &Logger{
		sessionID: sessionID,
		component: cfg.Component,
		slog:      slog.New(handler).With("component", cfg.Component),
	}
}

// newFallbackLogger creates a console logger when file logging fails
func newFallbackLogger(cfg Config, sessionID string, err error) (*Logger, error) {
	logger := newConsoleLogger(cfg, sessionID)
	logger.Warnf("Failed to initialize file logging: %v", err)
	logger.Warnf("Falling back to console logging")
	return logger, err
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return &Logger{
		component: "discard",
		slog:      slog.New(discardHandler{}),
	}
}

// ParseLevel converts a textual level (debug, info, warn, error) to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// With returns a logger for a sub-component sharing this logger's output.
func (l *Logger) With(component string) *Logger {
	return &Logger{
		sessionID: l.sessionID,
		component: component,
		slog:      l.slog.With("subcomponent", component),
		logPath:   l.logPath,
	}
}

// Debugf logs a debug-level message
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.log(slog.LevelDebug, format, v...)
}

// Infof logs an info-level message
func (l *Logger) Infof(format string, v ...interface{}) {
	l.log(slog.LevelInfo, format, v...)
}

// Warnf logs a warning-level message
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.log(slog.LevelWarn, format, v...)
}

// Errorf logs an error-level message
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.log(slog.LevelError, format, v...)
}

func (l *Logger) log(level slog.Level, format string, v ...interface{}) {
	ctx := context.Background()
	if !l.slog.Enabled(ctx, level) {
		return
	}
	l.slog.Log(ctx, level, fmt.Sprintf(format, v...))
}

// Slog exposes the underlying structured logger.
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

// SessionID returns the identifier shared by all records of this logger
func (l *Logger) SessionID() string {
	return l.sessionID
}

// LogPath returns the path to the log file, or "" for console output
func (l *Logger) LogPath() string {
	return l.logPath
}

// Close closes the log file. Safe to call multiple times.
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.file != nil {
			err = l.file.Close()
		}
	})
	return err
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
