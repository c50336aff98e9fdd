package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/uf46yr/htop/internal/errors"
	"github.com/uf46yr/htop/internal/logger"
	"github.com/uf46yr/htop/internal/present"
	"github.com/uf46yr/htop/internal/proctable"
	"github.com/uf46yr/htop/internal/render"
	"github.com/uf46yr/htop/internal/sampler"
	"github.com/uf46yr/htop/internal/util"
)

// RunState is the controller's position in its lifecycle.
type RunState int

const (
	StateStarting RunState = iota
	StateRunning
	// StateDegraded keeps showing the last good snapshot, marked stale,
	// while samples fail.
	StateDegraded
	StateExiting
)

func (s RunState) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateDegraded:
		return "degraded"
	case StateExiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// State is the whole per-run state. Tick, HandleKey and Redraw take a
// State and return the next one.
type State struct {
	Run    RunState
	Output render.SinkKind
	Mode   proctable.ViewMode
	Sort   proctable.SortKey

	LastGood    *sampler.Snapshot
	LastGoodAt  time.Time
	FailedTicks int
}

// String reports the run state and, for the plain fallback, the sink,
// e.g. "running" or "degraded(plain)".
func (s State) String() string {
	if s.Output == render.SinkPlain && (s.Run == StateRunning || s.Run == StateDegraded) {
		return fmt.Sprintf("%s(%s)", s.Run, s.Output)
	}
	return s.Run.String()
}

// Sampler produces snapshots. *sampler.Sampler satisfies it.
type Sampler interface {
	Sample(ctx context.Context) (*sampler.Snapshot, error)
}

// Options configures a Controller.
type Options struct {
	Interval time.Duration
	Mode     proctable.ViewMode
	Sort     proctable.SortKey
	// ForcePlain skips the terminal renderer.
	ForcePlain bool

	Logger logger.Logger
	Clock  func() time.Time
}

// Controller owns the refresh loop. It samples, lays out and emits a
// frame each tick and applies key presses between ticks.
type Controller struct {
	opts         Options
	sampler      Sampler
	presenter    *present.Presenter
	openTerminal func() (render.Sink, error)
	plain        func() render.Sink

	sink       render.Sink
	hints      string
	plainHints string
	log        logger.Logger
	now        func() time.Time
}

// New creates a Controller. openTerminal may be nil, in which case output
// always goes to the sink built by plain.
func New(opts Options, s Sampler, p *present.Presenter, openTerminal func() (render.Sink, error), plain func() render.Sink) *Controller {
	if opts.Interval <= 0 {
		opts.Interval = 2 * time.Second
	}
	c := &Controller{
		opts:         opts,
		sampler:      s,
		presenter:    p,
		openTerminal: openTerminal,
		plain:        plain,
		hints:        footerHints(keys),
		plainHints:   footerHints(plainKeys),
		log:          opts.Logger,
		now:          opts.Clock,
	}
	if c.log == nil {
		c.log = logger.Noop()
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Start acquires an output sink. A terminal that cannot be acquired is not
// an error: the controller runs with plain text output instead.
func (c *Controller) Start(ctx context.Context) (State, error) {
	st := State{Run: StateStarting, Mode: c.opts.Mode, Sort: c.opts.Sort}
	if err := ctx.Err(); err != nil {
		return st, err
	}

	if !c.opts.ForcePlain && c.openTerminal != nil {
		sink, err := c.openTerminal()
		if err == nil {
			c.sink = sink
		} else {
			c.log.Info("terminal unavailable, using plain output: %v", err)
		}
	}
	if c.sink == nil {
		c.sink = c.plain()
	}

	st.Run = StateRunning
	st.Output = c.sink.Kind()
	c.log.Debug("started: %s", st)
	return st, nil
}

// Tick takes one sample and emits a frame. A failed sample moves the
// state to Degraded and re-emits the last good snapshot marked stale; the
// next good sample returns it to Running.
func (c *Controller) Tick(ctx context.Context, st State) (State, error) {
	if st.Run == StateExiting {
		return st, nil
	}

	snap, err := c.sampler.Sample(ctx)
	if ctx.Err() != nil {
		return st, ctx.Err()
	}
	if err != nil {
		st.FailedTicks++
		if st.Run != StateDegraded {
			c.log.Warn("entering degraded state: %v", err)
		}
		st.Run = StateDegraded
	} else {
		if st.Run == StateDegraded {
			c.log.Info("sampling recovered after %d failed %s",
				st.FailedTicks, util.Pluralize(st.FailedTicks, "tick", "ticks"))
		}
		st.Run = StateRunning
		st.LastGood = snap
		st.LastGoodAt = snap.CapturedAt
		st.FailedTicks = 0
	}
	return c.Redraw(st)
}

// HandleKey applies a key press. It reports whether the state changed and
// a redraw is due. Quit moves the state to Exiting.
func (c *Controller) HandleKey(st State, k render.Key) (State, bool) {
	switch {
	case matches(k, keys.Quit):
		st.Run = StateExiting
		return st, true
	case matches(k, keys.ToggleDetail):
		st.Mode = st.Mode.Toggle()
		return st, true
	case matches(k, keys.CycleSort):
		st.Sort = st.Sort.Next()
		return st, true
	}
	return st, false
}

// Redraw emits a frame for the held snapshot without sampling. If the
// terminal fails mid-run the controller switches to plain output and
// emits again; a plain output failure is fatal.
func (c *Controller) Redraw(st State) (State, error) {
	if st.Run == StateExiting {
		return st, nil
	}

	err := c.sink.Emit(c.frame(st))
	if err == nil {
		return st, nil
	}

	if c.sink.Kind() == render.SinkTerminal {
		c.log.Warn("terminal output failed, switching to plain output: %v", err)
		if cerr := c.sink.Close(); cerr != nil {
			c.log.Warn("restoring terminal: %v", cerr)
		}
		c.sink = c.plain()
		st.Output = c.sink.Kind()
		err = c.sink.Emit(c.frame(st))
		if err == nil {
			return st, nil
		}
	}

	st.Run = StateExiting
	c.log.Error("output failed: %v", err)
	if errors.IsCode(err, errors.ErrIO) {
		return st, err
	}
	return st, errors.WrapWithCode(err, errors.ErrIO, "Cannot write to any output", "")
}

// frame lays out st at the sink's current size.
func (c *Controller) frame(st State) *present.Frame {
	size := c.sink.Size()
	rows, _ := proctable.Build(st.LastGood, st.Mode, st.Sort, c.presenter.Capacity(size, st.Mode))

	v := present.View{
		Snapshot: st.LastGood,
		Rows:     rows,
		Mode:     st.Mode,
		Sort:     st.Sort,
		Size:     size,
		Stale:    st.Run == StateDegraded,
		Hints:    c.hints,
	}
	if st.Output == render.SinkPlain {
		v.Hints = c.plainHints
	}
	if v.Stale && st.LastGood != nil {
		v.StaleFor = c.now().Sub(st.LastGoodAt)
	}
	return c.presenter.Render(v)
}

// Run drives the loop until a quit key, ctx cancellation or a fatal output
// error. The sink is closed on every path. Ticks are a fixed interval
// apart, measured from the end of the previous tick.
func (c *Controller) Run(ctx context.Context) error {
	st, err := c.Start(ctx)
	if err != nil {
		return nil
	}
	defer func() {
		if cerr := c.sink.Close(); cerr != nil {
			c.log.Warn("closing output: %v", cerr)
		}
	}()

	next := c.now()
	for {
		if ctx.Err() != nil {
			c.log.Debug("interrupted: %v", ctx.Err())
			return nil
		}

		if !c.now().Before(next) {
			st, err = c.Tick(ctx, st)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			next = c.now().Add(c.opts.Interval)
		}

		// One bounded wait covers both input and the next tick.
		ev := c.sink.PollEvent(ctx, next.Sub(c.now()))
		switch ev.Kind {
		case render.EventKey:
			var changed bool
			st, changed = c.HandleKey(st, ev.Key)
			if st.Run == StateExiting {
				c.log.Debug("quit requested")
				return nil
			}
			if !changed {
				continue
			}
		case render.EventResize:
		default:
			continue
		}

		if st, err = c.Redraw(st); err != nil {
			return err
		}
	}
}
