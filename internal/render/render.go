// Package render puts Frames on screen. A Renderer owns an interactive
// terminal; a Sink is where the monitor sends frames, either through a
// Renderer (TerminalSink) or as plain text to a writer (PlainSink).
package render

import (
	"context"
	"time"

	"github.com/uf46yr/htop/internal/present"
)

// Key is a key press in bubbletea notation: "d", "D", "q", "ctrl+c".
type Key string

// String implements fmt.Stringer so keys match bubbles/key bindings.
func (k Key) String() string {
	return string(k)
}

// EventKind distinguishes what PollEvent observed.
type EventKind int

const (
	// EventNone means the timeout elapsed (or the context ended) first.
	EventNone EventKind = iota
	EventKey
	EventResize
)

// Event is one input event from the terminal.
type Event struct {
	Kind EventKind
	Key  Key
}

// Renderer is an acquired interactive terminal.
type Renderer interface {
	// Size returns the current terminal size.
	Size() present.Size
	// Draw replaces the screen contents with frame.
	Draw(frame *present.Frame) error
	// PollEvent waits up to timeout for a key or resize.
	PollEvent(ctx context.Context, timeout time.Duration) Event
	// Restore returns the terminal to its original state. Idempotent.
	Restore() error
}

// SinkKind identifies a Sink implementation.
type SinkKind int

const (
	SinkTerminal SinkKind = iota
	SinkPlain
)

// String returns a human-readable label for the sink kind.
func (k SinkKind) String() string {
	if k == SinkPlain {
		return "plain"
	}
	return "terminal"
}

// Sink is where rendered frames go.
type Sink interface {
	Kind() SinkKind
	Size() present.Size
	Emit(frame *present.Frame) error
	PollEvent(ctx context.Context, timeout time.Duration) Event
	// Close releases the output; for terminals this restores the screen.
	Close() error
}

// waitNone blocks until timeout or ctx is done and reports no event.
func waitNone(ctx context.Context, timeout time.Duration) Event {
	if timeout <= 0 {
		return Event{}
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
	return Event{}
}
