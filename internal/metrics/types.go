package metrics

import (
	"context"
	"time"
)

// Source is the pluggable origin of raw host and process readings.
// Implementations must be safe to call from several goroutines and must
// return promptly once ctx is done.
type Source interface {
	// ReadHost returns a host-wide reading. Optional fields the platform
	// cannot provide are left nil; only a failure to obtain the mandatory
	// counters (CPU times, memory) is an error.
	ReadHost(ctx context.Context) (*RawHost, error)

	// ListProcesses enumerates running processes. Processes that exit
	// during enumeration are skipped, not reported as errors.
	ListProcesses(ctx context.Context) ([]RawProcess, error)
}

// CPUTimes is a cumulative CPU time counter in seconds, summed over all cores.
type CPUTimes struct {
	Busy  float64
	Total float64
}

// LoadAvg holds the 1, 5 and 15 minute load averages.
type LoadAvg struct {
	One     float64
	Five    float64
	Fifteen float64
}

// RawDisk is one mounted filesystem's usage in bytes.
type RawDisk struct {
	Mount string
	Used  uint64
	Total uint64
}

// RawHost contains host-wide counters as read from the platform.
type RawHost struct {
	Hostname string
	Uptime   time.Duration
	NumCPU   int
	CPU      CPUTimes
	MemUsed  uint64
	MemTotal uint64
	Disks    []RawDisk

	Load        *LoadAvg // nil if unsupported
	Battery     *float64 // remaining charge 0..1, nil if no battery
	Temperature *float64 // degrees Celsius, nil if no sensor
}

// RawProcess is one process as read from the platform.
type RawProcess struct {
	PID        int32
	User       string
	Name       string
	Command    string // full command line, Name when unavailable
	CPUSeconds float64

	Resident *uint64    // nil if unavailable
	Virtual  *uint64    // nil if unavailable
	Started  *time.Time // nil if unavailable
}
