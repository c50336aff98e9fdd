package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/uf46yr/htop/internal/config"
	"github.com/uf46yr/htop/internal/logger"
	"github.com/uf46yr/htop/internal/metrics"
	"github.com/uf46yr/htop/internal/monitor"
	"github.com/uf46yr/htop/internal/present"
	"github.com/uf46yr/htop/internal/proctable"
	"github.com/uf46yr/htop/internal/render"
	"github.com/uf46yr/htop/internal/sampler"
)

// monitorCommand wires the sampler, presenter and sinks and runs the
// refresh loop until quit or cancellation.
func monitorCommand(ctx context.Context, cfg *config.Config, cfgPath string) error {
	log, err := openLog(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}
	// Run closes its sink before returning, so a deferred stderr log
	// flushes onto a restored terminal.
	defer log.Close()

	if cfgPath == "" {
		cfgPath = "(defaults)"
	}
	log.Info("%s starting: config=%s interval=%s sample_timeout=%v plain=%t",
		versionLine(), cfgPath, cfg.IntervalDuration(), cfg.SampleTimeoutDuration(), cfg.Plain)

	s := sampler.New(metrics.NewGopsutilSource(),
		sampler.WithTimeout(cfg.SampleTimeoutDuration()),
		sampler.WithLogger(log),
	)
	p := present.New(present.NewBands(cfg.Thresholds),
		present.Size{Rows: cfg.Layout.MinRows, Cols: cfg.Layout.MinCols})

	openTerminal := func() (render.Sink, error) {
		r, err := render.NewTeaRenderer(os.Stdin, os.Stdout)
		if err != nil {
			return nil, err
		}
		return render.NewTerminalSink(r), nil
	}
	plain := func() render.Sink {
		return render.NewPlainSink(os.Stdout,
			present.Size{Rows: cfg.Layout.PlainRows, Cols: cfg.Layout.PlainCols})
	}

	ctrl := monitor.New(monitor.Options{
		Interval:   cfg.IntervalDuration(),
		Mode:       proctable.ParseViewMode(cfg.View),
		Sort:       proctable.ParseSortKey(cfg.Sort),
		ForcePlain: cfg.Plain,
		Logger:     log,
	}, s, p, openTerminal, plain)

	err = ctrl.Run(ctx)
	if err != nil {
		log.Error("exiting: %v", err)
	} else {
		log.Info("exiting")
	}
	return err
}

// nopCloser adapts a Logger without a file.
type nopCloser struct {
	logger.Logger
}

func (nopCloser) Close() error { return nil }

// openLog opens the diagnostic log. HTOP_DEBUG raises the level to debug,
// and without a log file it holds records for stderr until exit. Otherwise
// no file means no logging, since the terminal belongs to the monitor.
func openLog(c config.LogConfig, stderr io.Writer) (logger.FileLogger, error) {
	debug := logger.DebugEnabled()
	if c.File != "" {
		level := c.Level
		if debug {
			level = "debug"
		}
		return logger.NewFileLogger(c.File, level)
	}
	if debug {
		return logger.NewDeferredLogger(stderr, slog.LevelDebug), nil
	}
	return nopCloser{logger.Noop()}, nil
}
