package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugEnabled(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		want     bool
	}{
		{name: "set", envValue: "1", want: true},
		{name: "any value", envValue: "true", want: true},
		{name: "empty", envValue: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(DebugEnv, tt.envValue)
			assert.Equal(t, tt.want, DebugEnabled())
		})
	}
}

func TestDeferredLogger(t *testing.T) {
	var out bytes.Buffer
	l := NewDeferredLogger(&out, slog.LevelDebug)

	l.Debug("sample took %dms", 12)
	l.Warn("entering degraded state")
	assert.Empty(t, out.String(), "nothing reaches out before Close")

	require.NoError(t, l.Close())
	assert.Contains(t, out.String(), "sample took 12ms")
	assert.Contains(t, out.String(), "level=WARN")

	out.Reset()
	require.NoError(t, l.Close())
	assert.Empty(t, out.String(), "a second Close writes nothing")
}

func TestWriterLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, slog.LevelWarn)

	l.Debug("hidden")
	l.Info("hidden too")
	l.Warn("entering degraded state after %d failures", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "entering degraded state after 1 failures")
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "htop.log")

	l, err := NewFileLogger(path, "debug")
	require.NoError(t, err)
	l.Debug("sample took %dms", 12)
	l.Error("boom")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "sample took 12ms")
	assert.Contains(t, string(data), "level=ERROR")
}

func TestFileLogger_BadLevel(t *testing.T) {
	_, err := NewFileLogger(filepath.Join(t.TempDir(), "x.log"), "loud")
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "", want: slog.LevelInfo},
		{in: "info", want: slog.LevelInfo},
		{in: "DEBUG", want: slog.LevelDebug},
		{in: " warn ", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "trace", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNoop(t *testing.T) {
	l := Noop()
	assert.NotPanics(t, func() {
		l.Debug("x")
		l.Info("x")
		l.Warn("x")
		l.Error("x")
	})
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()

	l.Info("tick %d", 1)
	l.Warn("source unavailable")

	require.Len(t, l.Messages, 2)
	assert.Equal(t, LogMessage{Level: "info", Message: "tick 1"}, l.Messages[0])
	assert.True(t, l.HasLevel("warn"))
	assert.False(t, l.HasLevel("error"))
	assert.True(t, l.Contains("warn", "unavailable"))
	assert.False(t, l.Contains("info", "unavailable"))

	l.Clear()
	assert.Empty(t, l.Messages)
}
