package present

import "github.com/uf46yr/htop/internal/config"

// Severity is the color class of a metric value.
type Severity int

const (
	SeverityNormal Severity = iota
	SeverityWarning
	SeverityCritical
)

// String returns a human-readable label for the severity.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "normal"
	}
}

// Style returns the cell style used to draw a value of this severity.
func (s Severity) Style() Style {
	switch s {
	case SeverityWarning:
		return StyleWarning
	case SeverityCritical:
		return StyleCritical
	default:
		return StyleNormal
	}
}

// Band maps a metric value to a Severity. Values exactly on a threshold take
// the higher severity. Inverted bands are for metrics where low is bad
// (battery charge): v <= Critical is critical, v <= Warning is warning.
type Band struct {
	Warning  float64
	Critical float64
	Inverted bool
}

// Classify returns the severity of v.
func (b Band) Classify(v float64) Severity {
	if b.Inverted {
		switch {
		case v <= b.Critical:
			return SeverityCritical
		case v <= b.Warning:
			return SeverityWarning
		default:
			return SeverityNormal
		}
	}
	switch {
	case v >= b.Critical:
		return SeverityCritical
	case v >= b.Warning:
		return SeverityWarning
	default:
		return SeverityNormal
	}
}

// PercentBand builds a band over fractions from integer percent thresholds.
func PercentBand(warning, critical int) Band {
	return Band{Warning: float64(warning) / 100, Critical: float64(critical) / 100}
}

// Bands holds one band per colored metric. Percent metrics are classified on
// fractions in [0,1], Temperature in degrees Celsius.
type Bands struct {
	CPU           Band
	Memory        Band
	Disk          Band
	Temperature   Band
	Battery       Band
	ProcessCPU    Band
	ProcessMemory Band
}

// NewBands converts configured thresholds into bands.
func NewBands(t config.ThresholdsConfig) Bands {
	battery := PercentBand(t.Battery.Warning, t.Battery.Critical)
	battery.Inverted = true
	return Bands{
		CPU:           PercentBand(t.CPU.Warning, t.CPU.Critical),
		Memory:        PercentBand(t.Memory.Warning, t.Memory.Critical),
		Disk:          PercentBand(t.Disk.Warning, t.Disk.Critical),
		Temperature:   Band{Warning: float64(t.Temperature.Warning), Critical: float64(t.Temperature.Critical)},
		Battery:       battery,
		ProcessCPU:    PercentBand(t.ProcessCPU.Warning, t.ProcessCPU.Critical),
		ProcessMemory: PercentBand(t.ProcessMemory.Warning, t.ProcessMemory.Critical),
	}
}

// DefaultBands returns the bands for the default configuration.
func DefaultBands() Bands {
	return NewBands(config.DefaultConfig().Thresholds)
}
