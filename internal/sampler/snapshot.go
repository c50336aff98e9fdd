package sampler

import (
	"time"

	"github.com/uf46yr/htop/internal/metrics"
)

// MaxCommandDisplay is the longest command text kept for display, in runes,
// including the truncation marker.
const MaxCommandDisplay = 120

// TruncationMarker ends a command that was cut for display.
const TruncationMarker = "..."

// DiskUsage is one filesystem's usage with its derived fraction.
type DiskUsage struct {
	Mount    string
	Used     uint64
	Total    uint64
	Fraction float64
}

// HostReading is the host-wide part of a Snapshot. Fractions are in [0,1].
type HostReading struct {
	Hostname string
	Uptime   time.Duration
	NumCPU   int

	CPU      float64
	Memory   float64
	MemUsed  uint64
	MemTotal uint64

	Disks         []DiskUsage
	DiskAggregate float64 // sum(used)/sum(total) over Disks; 0 when none

	Load        *metrics.LoadAvg
	Battery     *float64
	Temperature *float64
}

// ProcessReading is one process in a Snapshot.
type ProcessReading struct {
	PID         int32
	User        string
	CPU         float64 // share of the whole machine, [0,1]
	Memory      float64 // resident / host memory total, [0,1]
	Command     string  // display form, at most MaxCommandDisplay runes
	FullCommand string

	Virtual  *uint64
	Resident *uint64
	Elapsed  *time.Duration
}

// Snapshot is one complete, immutable sample. Consumers must not modify it.
type Snapshot struct {
	Host       HostReading
	Processes  []ProcessReading // source order, unique PIDs
	CapturedAt time.Time

	// Primed is false when no earlier counters existed to derive CPU
	// deltas from; CPU values are then reported as 0.
	Primed bool
}

// ProcessCount returns the number of processes in the snapshot.
func (s *Snapshot) ProcessCount() int {
	if s == nil {
		return 0
	}
	return len(s.Processes)
}
