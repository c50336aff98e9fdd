package metrics

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/uf46yr/htop/internal/errors"
)

// pseudoFilesystems are never shown as disks even when the platform lists them.
var pseudoFilesystems = map[string]bool{
	"tmpfs":     true,
	"devtmpfs":  true,
	"overlay":   true,
	"squashfs":  true,
	"proc":      true,
	"sysfs":     true,
	"cgroup":    true,
	"cgroup2":   true,
	"autofs":    true,
	"devfs":     true,
	"nullfs":    true,
	"efivarfs":  true,
	"tracefs":   true,
	"ramfs":     true,
	"fuse.snap": true,
}

// GopsutilSource reads the local machine through gopsutil.
type GopsutilSource struct {
	battery *BatteryReader
}

// NewGopsutilSource creates a Source for the local machine.
func NewGopsutilSource() *GopsutilSource {
	return &GopsutilSource{battery: NewBatteryReader()}
}

// ReadHost implements Source.
func (s *GopsutilSource) ReadHost(ctx context.Context) (*RawHost, error) {
	times, err := cpu.TimesWithContext(ctx, false)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read CPU times")
	}
	if len(times) == 0 {
		return nil, errors.New(errors.ErrSource, "Platform returned no CPU times", "")
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read memory usage")
	}

	raw := &RawHost{
		CPU:      cpuTimes(times[0]),
		MemUsed:  vm.Used,
		MemTotal: vm.Total,
	}

	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		raw.NumCPU = n
	}

	if info, err := host.InfoWithContext(ctx); err == nil {
		raw.Hostname = info.Hostname
		raw.Uptime = time.Duration(info.Uptime) * time.Second
	}

	if avg, err := load.AvgWithContext(ctx); err == nil {
		raw.Load = &LoadAvg{One: avg.Load1, Five: avg.Load5, Fifteen: avg.Load15}
	}

	raw.Disks = readDisks(ctx)
	raw.Temperature = readTemperature(ctx)
	raw.Battery = s.battery.Read()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return raw, nil
}

// cpuTimes folds a gopsutil counter into busy/total seconds. Guest time is
// already accounted in user time on Linux, so it is not added again.
func cpuTimes(t cpu.TimesStat) CPUTimes {
	idle := t.Idle + t.Iowait
	busy := t.User + t.System + t.Nice + t.Irq + t.Softirq + t.Steal
	return CPUTimes{Busy: busy, Total: busy + idle}
}

func readDisks(ctx context.Context) []RawDisk {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	disks := make([]RawDisk, 0, len(parts))
	for _, p := range parts {
		if pseudoFilesystems[p.Fstype] || seen[p.Device] {
			continue
		}
		u, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil || u.Total == 0 {
			continue
		}
		seen[p.Device] = true
		disks = append(disks, RawDisk{Mount: p.Mountpoint, Used: u.Used, Total: u.Total})
	}

	// Root first, then by mount path.
	sort.SliceStable(disks, func(i, j int) bool {
		if disks[i].Mount == "/" || disks[j].Mount == "/" {
			return disks[i].Mount == "/"
		}
		return disks[i].Mount < disks[j].Mount
	})
	return disks
}

// temperatureSensorPrefixes are tried in order; the first matching sensor wins.
var temperatureSensorPrefixes = []string{
	"coretemp_package",
	"k10temp_tctl",
	"cpu_thermal",
	"acpitz",
	"coretemp",
	"tc0p", // macOS CPU proximity
}

func readTemperature(ctx context.Context) *float64 {
	// Partial results come back together with a warnings error.
	temps, _ := host.SensorsTemperaturesWithContext(ctx)
	return pickTemperature(temps)
}

func pickTemperature(temps []host.TemperatureStat) *float64 {
	for _, prefix := range temperatureSensorPrefixes {
		for _, t := range temps {
			if strings.HasPrefix(strings.ToLower(t.SensorKey), prefix) && t.Temperature > 0 {
				v := t.Temperature
				return &v
			}
		}
	}
	return nil
}

// ListProcesses implements Source.
func (s *GopsutilSource) ListProcesses(ctx context.Context) ([]RawProcess, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to enumerate processes")
	}

	out := make([]RawProcess, 0, len(procs))
	for _, p := range procs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rp, ok := readProcess(ctx, p)
		if !ok {
			continue
		}
		out = append(out, rp)
	}
	return out, nil
}

// readProcess returns false when the process went away mid-read.
func readProcess(ctx context.Context, p *process.Process) (RawProcess, bool) {
	times, err := p.TimesWithContext(ctx)
	if err != nil {
		return RawProcess{}, false
	}

	rp := RawProcess{
		PID:        p.Pid,
		CPUSeconds: times.User + times.System,
	}

	if name, err := p.NameWithContext(ctx); err == nil {
		rp.Name = name
	}
	if user, err := p.UsernameWithContext(ctx); err == nil {
		rp.User = user
	} else if uids, err := p.UidsWithContext(ctx); err == nil && len(uids) > 0 {
		rp.User = formatUID(uids[0])
	}
	if cmd, err := p.CmdlineWithContext(ctx); err == nil && strings.TrimSpace(cmd) != "" {
		rp.Command = cmd
	} else {
		rp.Command = rp.Name
	}
	if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
		rss, vms := mi.RSS, mi.VMS
		rp.Resident = &rss
		rp.Virtual = &vms
	}
	if ms, err := p.CreateTimeWithContext(ctx); err == nil && ms > 0 {
		started := time.UnixMilli(ms)
		rp.Started = &started
	}

	return rp, true
}

func formatUID(uid int32) string {
	return strconv.FormatInt(int64(uid), 10)
}
