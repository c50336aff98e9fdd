package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/uf46yr/htop/internal/errors"
	"github.com/uf46yr/htop/internal/present"
)

// TerminalSink sends frames to an interactive Renderer.
type TerminalSink struct {
	renderer Renderer
	once     sync.Once
	closeErr error
}

// NewTerminalSink wraps r.
func NewTerminalSink(r Renderer) *TerminalSink {
	return &TerminalSink{renderer: r}
}

// Kind implements Sink.
func (s *TerminalSink) Kind() SinkKind { return SinkTerminal }

// Size implements Sink.
func (s *TerminalSink) Size() present.Size { return s.renderer.Size() }

// Emit implements Sink. Failures carry ErrRender.
func (s *TerminalSink) Emit(frame *present.Frame) error {
	if err := s.renderer.Draw(frame); err != nil {
		if errors.IsCode(err, errors.ErrRender) {
			return err
		}
		return errors.WrapWithCode(err, errors.ErrRender, "Drawing to the terminal failed", "")
	}
	return nil
}

// PollEvent implements Sink.
func (s *TerminalSink) PollEvent(ctx context.Context, timeout time.Duration) Event {
	return s.renderer.PollEvent(ctx, timeout)
}

// Close implements Sink by restoring the terminal once.
func (s *TerminalSink) Close() error {
	s.once.Do(func() {
		s.closeErr = s.renderer.Restore()
	})
	return s.closeErr
}

// PlainSink writes each frame as text. On a terminal it clears the screen
// first; otherwise frames are separated by a timestamped rule so piped
// output stays readable. It never reads input.
type PlainSink struct {
	w        io.Writer
	out      *termenv.Output
	tty      *os.File
	fallback present.Size
	now      func() time.Time
}

// PlainOption configures a PlainSink.
type PlainOption func(*PlainSink)

// WithColorProfile overrides color detection.
func WithColorProfile(p termenv.Profile) PlainOption {
	return func(s *PlainSink) {
		s.out = termenv.NewOutput(s.w, termenv.WithProfile(p))
	}
}

// WithPlainClock replaces time.Now for separator timestamps.
func WithPlainClock(now func() time.Time) PlainOption {
	return func(s *PlainSink) {
		if now != nil {
			s.now = now
		}
	}
}

// NewPlainSink writes to w. fallback is the frame size used when w is not
// a terminal whose size can be read.
func NewPlainSink(w io.Writer, fallback present.Size, opts ...PlainOption) *PlainSink {
	s := &PlainSink{
		w:        w,
		out:      termenv.NewOutput(w),
		fallback: fallback,
		now:      time.Now,
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		s.tty = f
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Kind implements Sink.
func (s *PlainSink) Kind() SinkKind { return SinkPlain }

// Size implements Sink.
func (s *PlainSink) Size() present.Size {
	if s.tty != nil {
		if cols, rows, err := term.GetSize(int(s.tty.Fd())); err == nil && rows > 0 && cols > 0 {
			return present.Size{Rows: rows, Cols: cols}
		}
	}
	return s.fallback
}

// Emit implements Sink. A write failure is ErrIO: there is no other
// output left to fall back to.
func (s *PlainSink) Emit(frame *present.Frame) error {
	var b strings.Builder
	if s.tty != nil {
		b.WriteString(termenv.CSI + fmt.Sprintf(termenv.EraseDisplaySeq, 2))
		b.WriteString(termenv.CSI + fmt.Sprintf(termenv.CursorPositionSeq, 1, 1))
	} else {
		b.WriteString("--- " + s.now().Format("2006-01-02 15:04:05") + " ---\n")
	}

	rows := frame.Size().Rows
	for r := 0; r < rows; r++ {
		var line strings.Builder
		for _, run := range frame.Runs(r) {
			line.WriteString(termenvRun(s.out, run))
		}
		text := line.String()
		if s.out.Profile == termenv.Ascii {
			text = strings.TrimRight(text, " ")
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}

	if _, err := io.WriteString(s.w, b.String()); err != nil {
		return errors.WrapWithCode(err, errors.ErrIO,
			"Cannot write to standard output", "")
	}
	return nil
}

// PollEvent implements Sink. Plain output has no input; it only waits.
func (s *PlainSink) PollEvent(ctx context.Context, timeout time.Duration) Event {
	return waitNone(ctx, timeout)
}

// Close implements Sink.
func (s *PlainSink) Close() error {
	return nil
}
