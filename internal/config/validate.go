package config

import (
	"fmt"
	"time"

	"github.com/uf46yr/htop/internal/errors"
	"github.com/uf46yr/htop/internal/logger"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but htop only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade htop or lower the version field")
	}

	if err := validateTiming(cfg.Interval, cfg.SampleTimeout); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check 'interval' and 'sample_timeout' in your .htop.yaml.")
	}

	if err := validateEnums(cfg.View, cfg.Sort); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check 'view' and 'sort' in your .htop.yaml.")
	}

	if err := validateAllThresholds(cfg.Thresholds); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'thresholds' section in your .htop.yaml.")
	}

	if err := validateLayout(cfg.Layout); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'layout' section in your .htop.yaml.")
	}

	if _, err := logger.ParseLevel(cfg.Log.Level); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "log.level "+err.Error(), "Check the 'log' section in your .htop.yaml.")
	}

	return nil
}

func validateTiming(interval, timeout string) error {
	iv, err := ValidateInterval(interval)
	if err != nil {
		return err
	}
	if timeout == "" {
		return nil
	}
	to, err := time.ParseDuration(timeout)
	if err != nil {
		return fmt.Errorf("sample_timeout '%s' doesn't look like a valid duration - try something like '1s' or '1500ms'", timeout)
	}
	if to <= 0 {
		return fmt.Errorf("sample_timeout needs to be positive (got %s)", timeout)
	}
	if to > iv {
		return fmt.Errorf("sample_timeout (%v) is longer than interval (%v) - a sample must finish before the next tick", to, iv)
	}
	return nil
}

// ValidateInterval parses a refresh interval and enforces the minimum.
// An empty value means the default.
func ValidateInterval(interval string) (time.Duration, error) {
	if interval == "" {
		return DefaultInterval, nil
	}
	iv, err := time.ParseDuration(interval)
	if err != nil {
		return 0, fmt.Errorf("interval '%s' doesn't look like a valid duration - try something like '2s', '5s', or '1m'", interval)
	}
	if iv < MinInterval {
		return 0, fmt.Errorf("interval %v is too short - use at least %v", iv, MinInterval)
	}
	return iv, nil
}

func validateEnums(view, sort string) error {
	switch view {
	case "", "basic", "detailed":
	default:
		return fmt.Errorf("view '%s' isn't one of basic, detailed", view)
	}
	switch sort {
	case "", "cpu", "mem", "pid":
	default:
		return fmt.Errorf("sort '%s' isn't one of cpu, mem, pid", sort)
	}
	return nil
}

func validateAllThresholds(t ThresholdsConfig) error {
	percents := []struct {
		name   string
		values ThresholdValues
	}{
		{"cpu", t.CPU},
		{"memory", t.Memory},
		{"disk", t.Disk},
		{"process_cpu", t.ProcessCPU},
		{"process_memory", t.ProcessMemory},
	}
	for _, p := range percents {
		if err := validateThresholds(p.name, p.values); err != nil {
			return err
		}
	}

	if t.Temperature.Warning < 0 || t.Temperature.Critical > 150 {
		return fmt.Errorf("thresholds.temperature needs to be 0-150°C (got %d/%d)", t.Temperature.Warning, t.Temperature.Critical)
	}
	if t.Temperature.Warning >= t.Temperature.Critical {
		return fmt.Errorf("thresholds.temperature.warning (%d°C) is higher than critical (%d°C) - should be the other way around", t.Temperature.Warning, t.Temperature.Critical)
	}

	if err := validateRange("battery", t.Battery); err != nil {
		return err
	}
	if t.Battery.Warning <= t.Battery.Critical {
		return fmt.Errorf("thresholds.battery.warning (%d%%) should be above critical (%d%%) - battery bands count remaining charge", t.Battery.Warning, t.Battery.Critical)
	}
	return nil
}

// validateThresholds checks a percent threshold pair for a single metric.
func validateThresholds(name string, thresh ThresholdValues) error {
	if err := validateRange(name, thresh); err != nil {
		return err
	}
	if thresh.Warning >= thresh.Critical {
		return fmt.Errorf("thresholds.%s.warning (%d%%) is higher than critical (%d%%) - should be the other way around", name, thresh.Warning, thresh.Critical)
	}
	return nil
}

func validateRange(name string, thresh ThresholdValues) error {
	if thresh.Warning < 0 || thresh.Warning > 100 {
		return fmt.Errorf("thresholds.%s.warning needs to be 0-100 (got %d)", name, thresh.Warning)
	}
	if thresh.Critical < 0 || thresh.Critical > 100 {
		return fmt.Errorf("thresholds.%s.critical needs to be 0-100 (got %d)", name, thresh.Critical)
	}
	return nil
}

func validateLayout(l LayoutConfig) error {
	if l.MinRows < 1 || l.MinCols < 1 {
		return fmt.Errorf("layout.min_rows and layout.min_cols need to be positive (got %d x %d)", l.MinRows, l.MinCols)
	}
	if l.PlainRows < 1 || l.PlainCols < 1 {
		return fmt.Errorf("layout.plain_rows and layout.plain_cols need to be positive (got %d x %d)", l.PlainRows, l.PlainCols)
	}
	return nil
}
