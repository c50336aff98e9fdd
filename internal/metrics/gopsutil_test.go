package metrics

import (
	"context"
	"testing"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCPUTimes(t *testing.T) {
	got := cpuTimes(cpu.TimesStat{
		User:    100,
		System:  50,
		Nice:    5,
		Idle:    800,
		Iowait:  20,
		Irq:     3,
		Softirq: 2,
		Steal:   0,
		Guest:   40, // already part of User
	})

	assert.InDelta(t, 160.0, got.Busy, 1e-9)
	assert.InDelta(t, 980.0, got.Total, 1e-9)
}

func TestPickTemperature(t *testing.T) {
	tests := []struct {
		name  string
		temps []host.TemperatureStat
		want  *float64
	}{
		{name: "no sensors", temps: nil, want: nil},
		{
			name: "package preferred over core",
			temps: []host.TemperatureStat{
				{SensorKey: "coretemp_core_0", Temperature: 48},
				{SensorKey: "coretemp_package_id_0", Temperature: 55},
			},
			want: ptr(55),
		},
		{
			name: "acpi fallback",
			temps: []host.TemperatureStat{
				{SensorKey: "nvme_composite", Temperature: 38},
				{SensorKey: "acpitz", Temperature: 41.5},
			},
			want: ptr(41.5),
		},
		{
			name:  "unknown sensors only",
			temps: []host.TemperatureStat{{SensorKey: "nvme_composite", Temperature: 38}},
			want:  nil,
		},
		{
			name:  "zero readings ignored",
			temps: []host.TemperatureStat{{SensorKey: "acpitz", Temperature: 0}},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pickTemperature(tt.temps)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

// Reads the machine running the tests; asserts only what every platform supports.
func TestGopsutilSource_Local(t *testing.T) {
	if testing.Short() {
		t.Skip("reads the local machine")
	}
	src := NewGopsutilSource()
	ctx := context.Background()

	h, err := src.ReadHost(ctx)
	require.NoError(t, err)
	assert.Greater(t, h.CPU.Total, 0.0)
	assert.GreaterOrEqual(t, h.CPU.Total, h.CPU.Busy)
	assert.Greater(t, h.MemTotal, uint64(0))

	procs, err := src.ListProcesses(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, procs)

	seen := make(map[int32]bool)
	for _, p := range procs {
		assert.False(t, seen[p.PID], "pid %d listed twice", p.PID)
		seen[p.PID] = true
	}
}

func TestGopsutilSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGopsutilSource().ListProcesses(ctx)
	assert.Error(t, err)
}
