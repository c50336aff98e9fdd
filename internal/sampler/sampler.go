// Package sampler turns raw, cumulative readings from a metrics.Source into
// immutable Snapshots with derived utilization fractions.
//
// CPU utilization is a delta between consecutive samples, so the Sampler
// keeps the previous host counter and a per-PID cumulative CPU time map.
// That state is only touched on the caller's goroutine after a complete raw
// reading has arrived: a sample abandoned on timeout leaves it unchanged.
package sampler

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/uf46yr/htop/internal/errors"
	"github.com/uf46yr/htop/internal/logger"
	"github.com/uf46yr/htop/internal/metrics"
)

// DefaultTimeout bounds a sample when no WithTimeout option is given.
const DefaultTimeout = 1500 * time.Millisecond

// Sampler produces Snapshots. It is not safe for concurrent Sample calls.
type Sampler struct {
	source  metrics.Source
	timeout time.Duration
	now     func() time.Time
	log     logger.Logger

	prevHost *metrics.CPUTimes
	prevProc map[int32]float64
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithTimeout sets how long one sample may take.
func WithTimeout(d time.Duration) Option {
	return func(s *Sampler) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithClock replaces time.Now, for deterministic elapsed times in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Sampler) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger for sample diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(s *Sampler) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a Sampler reading from source.
func New(source metrics.Source, opts ...Option) *Sampler {
	s := &Sampler{
		source:   source,
		timeout:  DefaultTimeout,
		now:      time.Now,
		log:      logger.Noop(),
		prevProc: make(map[int32]float64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Timeout returns the per-sample time limit.
func (s *Sampler) Timeout() time.Duration {
	return s.timeout
}

type rawSample struct {
	host  *metrics.RawHost
	procs []metrics.RawProcess
}

type readResult struct {
	raw rawSample
	err error
}

// Sample reads the source and derives a Snapshot. It returns an ErrSource
// error when the source fails or does not answer within the timeout.
func (s *Sampler) Sample(ctx context.Context) (*Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := s.now()
	resultCh := make(chan readResult, 1)
	go func() {
		raw, err := read(ctx, s.source)
		resultCh <- readResult{raw: raw, err: err}
	}()

	var res readResult
	select {
	case <-ctx.Done():
		s.log.Warn("sample abandoned after %v: %v", s.timeout, ctx.Err())
		return nil, errors.WrapWithCode(ctx.Err(), errors.ErrSource,
			fmt.Sprintf("Metrics source did not answer within %v", s.timeout),
			"Raise sample_timeout if the machine is heavily loaded")
	case res = <-resultCh:
	}

	if res.err != nil {
		s.log.Warn("sample failed: %v", res.err)
		return nil, errors.WrapWithCode(res.err, errors.ErrSource,
			"Metrics source failed", "")
	}

	snap := s.derive(res.raw, s.now())
	s.log.Debug("sampled %d processes in %v", len(snap.Processes), snap.CapturedAt.Sub(start))
	return snap, nil
}

// read fetches host and process readings concurrently. It must not touch
// Sampler state; it may outlive Sample when the deadline fires first.
func read(ctx context.Context, source metrics.Source) (rawSample, error) {
	var raw rawSample
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		h, err := source.ReadHost(gctx)
		if err != nil {
			return err
		}
		if h == nil {
			return fmt.Errorf("source returned no host reading")
		}
		raw.host = h
		return nil
	})
	g.Go(func() error {
		procs, err := source.ListProcesses(gctx)
		if err != nil {
			return err
		}
		raw.procs = procs
		return nil
	})

	if err := g.Wait(); err != nil {
		return rawSample{}, err
	}
	return raw, nil
}

// derive computes fractions from a complete raw reading and advances the
// delta state. Runs on the caller's goroutine only.
func (s *Sampler) derive(raw rawSample, now time.Time) *Snapshot {
	h := raw.host

	var totalDelta float64
	var hostCPU float64
	primed := false
	if s.prevHost != nil {
		dt := h.CPU.Total - s.prevHost.Total
		db := h.CPU.Busy - s.prevHost.Busy
		if dt > 0 && db >= 0 {
			hostCPU = clamp(db / dt)
			totalDelta = dt
			primed = true
		}
	}
	prev := h.CPU
	s.prevHost = &prev

	snap := &Snapshot{
		Host: HostReading{
			Hostname:    h.Hostname,
			Uptime:      h.Uptime,
			NumCPU:      h.NumCPU,
			CPU:         hostCPU,
			Memory:      fraction(h.MemUsed, h.MemTotal),
			MemUsed:     h.MemUsed,
			MemTotal:    h.MemTotal,
			Load:        h.Load,
			Battery:     clampPtr(h.Battery),
			Temperature: h.Temperature,
		},
		CapturedAt: now,
		Primed:     primed,
	}
	snap.Host.Disks, snap.Host.DiskAggregate = diskUsage(h.Disks)

	nextProc := make(map[int32]float64, len(raw.procs))
	snap.Processes = make([]ProcessReading, 0, len(raw.procs))
	for _, p := range raw.procs {
		if _, dup := nextProc[p.PID]; dup {
			continue
		}
		nextProc[p.PID] = p.CPUSeconds

		var cpu float64
		// A counter that went backwards means the PID was reused.
		if before, ok := s.prevProc[p.PID]; ok && primed && p.CPUSeconds >= before {
			cpu = clamp((p.CPUSeconds - before) / totalDelta)
		}

		pr := ProcessReading{
			PID:         p.PID,
			User:        p.User,
			CPU:         cpu,
			FullCommand: commandText(p),
			Virtual:     p.Virtual,
			Resident:    p.Resident,
		}
		pr.Command = TruncateCommand(pr.FullCommand, MaxCommandDisplay)
		if p.Resident != nil {
			pr.Memory = fraction(*p.Resident, h.MemTotal)
		}
		if p.Started != nil {
			elapsed := now.Sub(*p.Started)
			if elapsed < 0 {
				elapsed = 0
			}
			pr.Elapsed = &elapsed
		}
		snap.Processes = append(snap.Processes, pr)
	}
	s.prevProc = nextProc

	return snap
}

func diskUsage(raw []metrics.RawDisk) ([]DiskUsage, float64) {
	if len(raw) == 0 {
		return nil, 0
	}
	disks := make([]DiskUsage, 0, len(raw))
	var used, total uint64
	for _, d := range raw {
		disks = append(disks, DiskUsage{
			Mount:    d.Mount,
			Used:     d.Used,
			Total:    d.Total,
			Fraction: fraction(d.Used, d.Total),
		})
		used += d.Used
		total += d.Total
	}
	return disks, fraction(used, total)
}

// commandText picks the best display text for a process and flattens
// control characters (cmdline separators, newlines) to spaces.
func commandText(p metrics.RawProcess) string {
	cmd := p.Command
	if strings.TrimSpace(cmd) == "" {
		cmd = p.Name
	}
	if strings.TrimSpace(cmd) == "" {
		return "?"
	}
	cmd = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, cmd)
	return strings.TrimSpace(cmd)
}

// TruncateCommand shortens s to at most max runes, ending with
// TruncationMarker when anything was cut.
func TruncateCommand(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	marker := []rune(TruncationMarker)
	if max <= len(marker) {
		return string(marker[:max])
	}
	return string(runes[:max-len(marker)]) + TruncationMarker
}

func fraction(used, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return clamp(float64(used) / float64(total))
}

func clamp(v float64) float64 {
	switch {
	case v != v: // NaN
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func clampPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := clamp(*v)
	return &c
}
