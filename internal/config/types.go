package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .htop.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Interval between samples, as a duration string ("2s").
	Interval string `yaml:"interval" mapstructure:"interval"`

	// SampleTimeout bounds one sample. Must not exceed Interval.
	SampleTimeout string `yaml:"sample_timeout" mapstructure:"sample_timeout"`

	// View is the initial process table mode: "basic" or "detailed".
	View string `yaml:"view" mapstructure:"view"`

	// Sort is the initial process ordering: "cpu", "mem", or "pid".
	Sort string `yaml:"sort" mapstructure:"sort"`

	// Plain skips the interactive terminal and prints text frames to stdout.
	Plain bool `yaml:"plain" mapstructure:"plain"`

	Thresholds ThresholdsConfig `yaml:"thresholds" mapstructure:"thresholds"`
	Layout     LayoutConfig     `yaml:"layout" mapstructure:"layout"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// ThresholdsConfig holds color band thresholds per metric.
// Percent values are integers 0-100. Temperature is in degrees Celsius.
// Battery thresholds apply to remaining charge, so warning sits above critical.
type ThresholdsConfig struct {
	CPU           ThresholdValues `yaml:"cpu" mapstructure:"cpu"`
	Memory        ThresholdValues `yaml:"memory" mapstructure:"memory"`
	Disk          ThresholdValues `yaml:"disk" mapstructure:"disk"`
	Temperature   ThresholdValues `yaml:"temperature" mapstructure:"temperature"`
	Battery       ThresholdValues `yaml:"battery" mapstructure:"battery"`
	ProcessCPU    ThresholdValues `yaml:"process_cpu" mapstructure:"process_cpu"`
	ProcessMemory ThresholdValues `yaml:"process_memory" mapstructure:"process_memory"`
}

// ThresholdValues defines warning and critical levels for a metric.
type ThresholdValues struct {
	Warning  int `yaml:"warning" mapstructure:"warning"`
	Critical int `yaml:"critical" mapstructure:"critical"`
}

// LayoutConfig controls when the compact layout kicks in and the size used
// for plain text output when stdout is not a terminal.
type LayoutConfig struct {
	MinRows   int `yaml:"min_rows" mapstructure:"min_rows"`
	MinCols   int `yaml:"min_cols" mapstructure:"min_cols"`
	PlainRows int `yaml:"plain_rows" mapstructure:"plain_rows"`
	PlainCols int `yaml:"plain_cols" mapstructure:"plain_cols"`
}

// LogConfig controls the diagnostic log. An empty File disables logging
// unless HTOP_DEBUG is set.
type LogConfig struct {
	File  string `yaml:"file" mapstructure:"file"`
	Level string `yaml:"level" mapstructure:"level"`
}

// Defaults used by DefaultConfig and as viper defaults.
const (
	DefaultInterval      = 2 * time.Second
	DefaultSampleTimeout = 1500 * time.Millisecond
	MinInterval          = 500 * time.Millisecond
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:       CurrentConfigVersion,
		Interval:      DefaultInterval.String(),
		SampleTimeout: DefaultSampleTimeout.String(),
		View:          "basic",
		Sort:          "cpu",
		Plain:         false,
		Thresholds: ThresholdsConfig{
			CPU:           ThresholdValues{Warning: 60, Critical: 85},
			Memory:        ThresholdValues{Warning: 60, Critical: 85},
			Disk:          ThresholdValues{Warning: 70, Critical: 90},
			Temperature:   ThresholdValues{Warning: 70, Critical: 85},
			Battery:       ThresholdValues{Warning: 30, Critical: 15},
			ProcessCPU:    ThresholdValues{Warning: 10, Critical: 20},
			ProcessMemory: ThresholdValues{Warning: 2, Critical: 5},
		},
		Layout: LayoutConfig{
			MinRows:   24,
			MinCols:   80,
			PlainRows: 24,
			PlainCols: 80,
		},
		Log: LogConfig{
			File:  "",
			Level: "info",
		},
	}
}

// IntervalDuration returns the parsed refresh interval, or the default when
// the value is empty or invalid. Validate reports invalid values.
func (c *Config) IntervalDuration() time.Duration {
	return parseDuration(c.Interval, DefaultInterval)
}

// SampleTimeoutDuration returns the parsed sample timeout, capped at the interval.
func (c *Config) SampleTimeoutDuration() time.Duration {
	d := parseDuration(c.SampleTimeout, DefaultSampleTimeout)
	if iv := c.IntervalDuration(); d > iv {
		return iv
	}
	return d
}

// parseDuration parses a duration string, returning the default if parsing fails.
func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
