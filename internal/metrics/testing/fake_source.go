// Package testing provides test doubles for the metrics package.
package testing

import (
	"context"
	"sync"
	"time"

	"github.com/uf46yr/htop/internal/metrics"
)

// Step scripts one call to ReadHost and ListProcesses.
type Step struct {
	Host      *metrics.RawHost
	Processes []metrics.RawProcess
	HostErr   error
	ProcErr   error
	Delay     time.Duration // applied to both calls; honors ctx
}

// FakeSource replays scripted steps. The Nth ReadHost call and the Nth
// ListProcesses call both see step N, so concurrent callers stay in step.
// Once the script runs out the last step repeats.
type FakeSource struct {
	mu    sync.Mutex
	steps []Step

	// Call tracking
	HostCalls int
	ProcCalls int
}

// NewFakeSource creates a source that plays back steps in order.
func NewFakeSource(steps ...Step) *FakeSource {
	return &FakeSource{steps: steps}
}

// Append adds steps to the end of the script.
func (f *FakeSource) Append(steps ...Step) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.steps = append(f.steps, steps...)
}

func (f *FakeSource) step(i int) Step {
	if len(f.steps) == 0 {
		return Step{}
	}
	if i >= len(f.steps) {
		i = len(f.steps) - 1
	}
	return f.steps[i]
}

// ReadHost implements metrics.Source.
func (f *FakeSource) ReadHost(ctx context.Context) (*metrics.RawHost, error) {
	f.mu.Lock()
	step := f.step(f.HostCalls)
	f.HostCalls++
	f.mu.Unlock()

	if err := wait(ctx, step.Delay); err != nil {
		return nil, err
	}
	if step.HostErr != nil {
		return nil, step.HostErr
	}
	if step.Host == nil {
		return &metrics.RawHost{}, nil
	}
	h := *step.Host
	h.Disks = append([]metrics.RawDisk(nil), step.Host.Disks...)
	return &h, nil
}

// ListProcesses implements metrics.Source.
func (f *FakeSource) ListProcesses(ctx context.Context) ([]metrics.RawProcess, error) {
	f.mu.Lock()
	step := f.step(f.ProcCalls)
	f.ProcCalls++
	f.mu.Unlock()

	if err := wait(ctx, step.Delay); err != nil {
		return nil, err
	}
	if step.ProcErr != nil {
		return nil, step.ProcErr
	}
	return append([]metrics.RawProcess(nil), step.Processes...), nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Uint64 returns a pointer to v, for building optional fields.
func Uint64(v uint64) *uint64 { return &v }

// Float64 returns a pointer to v, for building optional fields.
func Float64(v float64) *float64 { return &v }

// Time returns a pointer to v, for building optional fields.
func Time(v time.Time) *time.Time { return &v }
