package render

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/uf46yr/htop/internal/errors"
	"github.com/uf46yr/htop/internal/present"
)

// eventBuffer bounds queued input; further events are dropped until the
// monitor catches up.
const eventBuffer = 32

// restoreTimeout bounds how long Restore waits for the program to exit.
const restoreTimeout = 2 * time.Second

// TeaRenderer drives the terminal with a bubbletea program on the
// alternate screen. Key and resize messages are forwarded to PollEvent;
// frames sent with Draw become the program's view.
type TeaRenderer struct {
	program *tea.Program
	events  chan Event
	done    chan struct{}

	mu     sync.Mutex
	size   present.Size
	runErr error

	restoreOnce sync.Once
	exitSeen    atomic.Bool
}

// NewTeaRenderer acquires the terminal on in/out. It fails with ErrRender
// when either is not a terminal.
func NewTeaRenderer(in, out *os.File) (*TeaRenderer, error) {
	if in == nil || out == nil || !term.IsTerminal(int(in.Fd())) || !term.IsTerminal(int(out.Fd())) {
		return nil, errors.New(errors.ErrRender,
			"Not running in an interactive terminal",
			"Output falls back to plain text; use --plain to choose it explicitly")
	}
	cols, rows, err := term.GetSize(int(out.Fd()))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrRender,
			"Cannot read the terminal size", "")
	}

	r := &TeaRenderer{
		events: make(chan Event, eventBuffer),
		done:   make(chan struct{}),
		size:   present.Size{Rows: rows, Cols: cols},
	}
	r.program = tea.NewProgram(
		newTeaModel(r),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	go func() {
		_, err := r.program.Run()
		r.mu.Lock()
		r.runErr = err
		r.mu.Unlock()
		close(r.done)
	}()

	return r, nil
}

// Size implements Renderer.
func (r *TeaRenderer) Size() present.Size {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

func (r *TeaRenderer) setSize(s present.Size) {
	r.mu.Lock()
	r.size = s
	r.mu.Unlock()
}

// push queues an event without blocking the program's event loop.
func (r *TeaRenderer) push(ev Event) {
	select {
	case r.events <- ev:
	default:
	}
}

// Draw implements Renderer.
func (r *TeaRenderer) Draw(frame *present.Frame) error {
	select {
	case <-r.done:
		return r.exitErr()
	default:
	}

	// Send returns once the program takes the message or has exited.
	r.program.Send(frameMsg{frame: frame})
	select {
	case <-r.done:
		return r.exitErr()
	default:
		return nil
	}
}

func (r *TeaRenderer) exitErr() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return errors.WrapWithCode(r.runErr, errors.ErrRender, "Terminal renderer stopped", "")
}

// PollEvent implements Renderer.
func (r *TeaRenderer) PollEvent(ctx context.Context, timeout time.Duration) Event {
	// Input that is already queued wins over an expired deadline.
	select {
	case ev := <-r.events:
		return ev
	default:
	}
	if timeout <= 0 {
		return Event{}
	}

	// A program that exited on its own is reported once as a resize, so the
	// caller redraws now and finds out from Draw. Later polls wait normally.
	done := r.done
	if r.exitSeen.Load() {
		done = nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case ev := <-r.events:
		return ev
	case <-timer.C:
	case <-ctx.Done():
	case <-done:
		r.exitSeen.Store(true)
		return Event{Kind: EventResize}
	}
	return Event{}
}

// Restore implements Renderer. It stops the program, which leaves the
// alternate screen and restores the terminal mode.
func (r *TeaRenderer) Restore() error {
	var err error
	r.restoreOnce.Do(func() {
		r.program.Quit()
		select {
		case <-r.done:
		case <-time.After(restoreTimeout):
			r.program.Kill()
			<-r.done
		}
		r.mu.Lock()
		if r.runErr != nil && r.runErr != tea.ErrProgramKilled {
			err = errors.WrapWithCode(r.runErr, errors.ErrRender, "Terminal was not restored cleanly", "Run 'reset' if the terminal looks wrong")
		}
		r.mu.Unlock()
	})
	return err
}

// frameMsg carries a frame into the bubbletea program.
type frameMsg struct {
	frame *present.Frame
}

// teaModel is the bubbletea model. It holds no monitor state: it shows the
// last frame and reports input back to the renderer.
type teaModel struct {
	renderer *TeaRenderer
	styles   map[present.Style]lipgloss.Style
	frame    *present.Frame
}

func newTeaModel(r *TeaRenderer) teaModel {
	return teaModel{renderer: r, styles: LipglossStyles()}
}

func (m teaModel) Init() tea.Cmd {
	return nil
}

func (m teaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.renderer.push(Event{Kind: EventKey, Key: Key(msg.String())})
	case tea.WindowSizeMsg:
		m.renderer.setSize(present.Size{Rows: msg.Height, Cols: msg.Width})
		m.renderer.push(Event{Kind: EventResize})
	case frameMsg:
		m.frame = msg.frame
	}
	return m, nil
}

func (m teaModel) View() string {
	if m.frame == nil {
		return ""
	}
	return StyledFrame(m.frame, m.styles)
}
