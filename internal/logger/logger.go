// Package logger provides a simple logging interface for htop components.
// It allows packages to log debug, info, warn, and error messages without
// being coupled to a specific logging implementation.
//
// While the interactive display owns the terminal nothing may be written to
// stdout or stderr, so the monitor logs to a rotating file (NewFileLogger),
// to a buffer flushed to stderr afterwards (NewDeferredLogger), or nowhere.
package logger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// DebugEnv forces debug level. Without a log file it also buffers the run's
// records and prints them to stderr once the terminal is released.
const DebugEnv = "HTOP_DEBUG"

// Logger defines the interface for logging operations.
// All methods accept a format string and arguments, similar to fmt.Printf.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// DebugEnabled reports whether HTOP_DEBUG is set.
func DebugEnabled() bool {
	return os.Getenv(DebugEnv) != ""
}

// slogLogger adapts a *slog.Logger to the printf-style Logger interface.
type slogLogger struct {
	l      *slog.Logger
	closer io.Closer
}

// FileLogger is a Logger backed by a rotating log file. Close releases the file.
type FileLogger interface {
	Logger
	io.Closer
}

// NewFileLogger writes text records to path, rotating at 10 MB and keeping
// three old files. level is one of debug, info, warn, error.
func NewFileLogger(path, level string) (FileLogger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   false,
	}
	return newSlogLogger(w, lvl, w), nil
}

// NewWriterLogger logs text records to w. The caller owns w.
func NewWriterLogger(w io.Writer, level slog.Level) Logger {
	return newSlogLogger(w, level, nil)
}

// deferredLogger holds records in memory until Close copies them to out.
type deferredLogger struct {
	Logger
	buf *lockedBuffer
	out io.Writer
}

// NewDeferredLogger buffers records at level and writes them to out on
// Close. Used for stderr, which is unusable until the display lets go of
// the terminal.
func NewDeferredLogger(out io.Writer, level slog.Level) FileLogger {
	buf := &lockedBuffer{}
	return &deferredLogger{Logger: NewWriterLogger(buf, level), buf: buf, out: out}
}

func (l *deferredLogger) Close() error {
	data := l.buf.take()
	if len(data) == 0 {
		return nil
	}
	_, err := l.out.Write(data)
	return err
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) take() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	data := append([]byte(nil), b.buf.Bytes()...)
	b.buf.Reset()
	return data
}

func newSlogLogger(w io.Writer, level slog.Level, closer io.Closer) *slogLogger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &slogLogger{l: slog.New(h), closer: closer}
}

func (l *slogLogger) log(level slog.Level, format string, args ...interface{}) {
	ctx := context.Background()
	if !l.l.Enabled(ctx, level) {
		return
	}
	l.l.Log(ctx, level, fmt.Sprintf(format, args...))
}

func (l *slogLogger) Debug(format string, args ...interface{}) {
	l.log(slog.LevelDebug, format, args...)
}

func (l *slogLogger) Info(format string, args ...interface{}) {
	l.log(slog.LevelInfo, format, args...)
}

func (l *slogLogger) Warn(format string, args ...interface{}) {
	l.log(slog.LevelWarn, format, args...)
}

func (l *slogLogger) Error(format string, args ...interface{}) {
	l.log(slog.LevelError, format, args...)
}

func (l *slogLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// ParseLevel maps a config level name to a slog level. Empty means info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (use debug, info, warn, or error)", level)
	}
}

// noopLogger implements Logger but discards all messages.
type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(format string, args ...interface{}) {}
func (l *noopLogger) Info(format string, args ...interface{})  {}
func (l *noopLogger) Warn(format string, args ...interface{})  {}
func (l *noopLogger) Error(format string, args ...interface{}) {}

// LogMessage represents a captured log message.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger captures log messages for testing. Safe for concurrent use.
type BufferLogger struct {
	mu       sync.Mutex
	Messages []LogMessage
}

// NewBufferLogger creates a logger that captures messages for inspection.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{
		Messages: make([]LogMessage, 0),
	}
}

func (l *BufferLogger) add(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, LogMessage{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Debug(format string, args ...interface{}) { l.add("debug", format, args...) }
func (l *BufferLogger) Info(format string, args ...interface{})  { l.add("info", format, args...) }
func (l *BufferLogger) Warn(format string, args ...interface{})  { l.add("warn", format, args...) }
func (l *BufferLogger) Error(format string, args ...interface{}) { l.add("error", format, args...) }

// HasLevel returns true if any message was logged at the given level.
func (l *BufferLogger) HasLevel(level string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.Messages {
		if m.Level == level {
			return true
		}
	}
	return false
}

// Contains reports whether any message at level contains substr.
func (l *BufferLogger) Contains(level, substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.Messages {
		if m.Level == level && strings.Contains(m.Message, substr) {
			return true
		}
	}
	return false
}

// Clear removes all captured messages.
func (l *BufferLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = l.Messages[:0]
}
