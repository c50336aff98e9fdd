// Package proctable orders and trims a Snapshot's processes into the rows
// the display shows.
package proctable

import (
	"sort"
	"strings"
	"time"

	"github.com/uf46yr/htop/internal/sampler"
)

// ViewMode selects which columns the process table shows.
type ViewMode int

const (
	ViewBasic ViewMode = iota
	ViewDetailed
)

// String returns a human-readable label for the view mode.
func (v ViewMode) String() string {
	switch v {
	case ViewDetailed:
		return "Detailed"
	default:
		return "Basic"
	}
}

// Toggle switches between Basic and Detailed.
func (v ViewMode) Toggle() ViewMode {
	if v == ViewDetailed {
		return ViewBasic
	}
	return ViewDetailed
}

// ParseViewMode maps a config value to a ViewMode. Unknown values are Basic.
func ParseViewMode(s string) ViewMode {
	if strings.EqualFold(strings.TrimSpace(s), "detailed") {
		return ViewDetailed
	}
	return ViewBasic
}

// SortKey defines how processes are ordered.
type SortKey int

const (
	SortByCPU SortKey = iota
	SortByMemory
	SortByPID
)

// String returns the short label shown in the footer.
func (k SortKey) String() string {
	switch k {
	case SortByMemory:
		return "MEM"
	case SortByPID:
		return "PID"
	default:
		return "CPU"
	}
}

// Next cycles to the next sort key.
func (k SortKey) Next() SortKey {
	return SortKey((int(k) + 1) % 3)
}

// ParseSortKey maps a config value ("cpu", "mem", "pid") to a SortKey.
// Unknown values sort by CPU.
func ParseSortKey(s string) SortKey {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mem", "memory":
		return SortByMemory
	case "pid":
		return SortByPID
	default:
		return SortByCPU
	}
}

// DisplayRow is one process line. Virtual, Resident and Elapsed are only
// set in Detailed mode, and only when the platform supplied them.
type DisplayRow struct {
	PID     int32
	User    string
	CPU     float64
	Memory  float64
	Command string

	Virtual  *uint64
	Resident *uint64
	Elapsed  *time.Duration
}

// Field is the DisplayRow value a column shows.
type Field int

const (
	FieldPID Field = iota
	FieldUser
	FieldCPU
	FieldMemory
	FieldVirtual
	FieldResident
	FieldElapsed
	FieldCommand
)

// Column describes one table column. Width 0 takes the rest of the line.
type Column struct {
	Title string
	Width int
	Right bool
	Field Field
}

var (
	basicColumns = []Column{
		{"PID", 7, true, FieldPID},
		{"USER", 9, false, FieldUser},
		{"CPU%", 6, true, FieldCPU},
		{"MEM%", 6, true, FieldMemory},
		{"COMMAND", 0, false, FieldCommand},
	}
	detailedColumns = []Column{
		{"PID", 7, true, FieldPID},
		{"USER", 9, false, FieldUser},
		{"CPU%", 6, true, FieldCPU},
		{"MEM%", 6, true, FieldMemory},
		{"VIRT", 6, true, FieldVirtual},
		{"RES", 6, true, FieldResident},
		{"TIME", 11, true, FieldElapsed},
		{"COMMAND", 0, false, FieldCommand},
	}
)

// Columns returns the column set for mode.
func Columns(mode ViewMode) []Column {
	if mode == ViewDetailed {
		return append([]Column(nil), detailedColumns...)
	}
	return append([]Column(nil), basicColumns...)
}

// Build orders the snapshot's processes by key and keeps at most capacity
// rows. It returns the rows and their count. The snapshot is not modified.
func Build(snap *sampler.Snapshot, mode ViewMode, key SortKey, capacity int) ([]DisplayRow, int) {
	if snap == nil || capacity <= 0 || len(snap.Processes) == 0 {
		return nil, 0
	}

	procs := make([]sampler.ProcessReading, len(snap.Processes))
	copy(procs, snap.Processes)
	sort.SliceStable(procs, less(procs, key))

	n := len(procs)
	if n > capacity {
		n = capacity
	}

	rows := make([]DisplayRow, n)
	for i := 0; i < n; i++ {
		p := procs[i]
		rows[i] = DisplayRow{
			PID:     p.PID,
			User:    p.User,
			CPU:     p.CPU,
			Memory:  p.Memory,
			Command: p.Command,
		}
		if mode == ViewDetailed {
			rows[i].Virtual = p.Virtual
			rows[i].Resident = p.Resident
			rows[i].Elapsed = p.Elapsed
		}
	}
	return rows, n
}

// less returns a total order: ties on the primary key fall back to the
// other utilization value, then ascending PID.
func less(procs []sampler.ProcessReading, key SortKey) func(i, j int) bool {
	return func(i, j int) bool {
		a, b := procs[i], procs[j]
		switch key {
		case SortByMemory:
			if a.Memory != b.Memory {
				return a.Memory > b.Memory
			}
			if a.CPU != b.CPU {
				return a.CPU > b.CPU
			}
		case SortByPID:
		default:
			if a.CPU != b.CPU {
				return a.CPU > b.CPU
			}
			if a.Memory != b.Memory {
				return a.Memory > b.Memory
			}
		}
		return a.PID < b.PID
	}
}
