package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/uf46yr/htop/internal/config"
	"github.com/uf46yr/htop/internal/errors"
)

// MonitorFlags holds the flags that override config values.
type MonitorFlags struct {
	ConfigFile    string
	Interval      string
	SampleTimeout string
	Sort          string
	LogFile       string
	Detailed      bool
	Plain         bool
}

var flags MonitorFlags

// AddMonitorFlags registers the config override flags as persistent flags,
// so `htop config` shows their effect too.
func AddMonitorFlags(cmd *cobra.Command, f *MonitorFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.ConfigFile, "config", "", "config file (default ./.htop.yaml, then ~/.config/htop/config.yaml)")
	pf.StringVar(&f.Interval, "interval", "", "refresh interval (e.g., 2s, 5s, 1m)")
	pf.StringVar(&f.SampleTimeout, "sample-timeout", "", "give up on a sample after this long (at most the interval)")
	pf.BoolVar(&f.Detailed, "detailed", false, "start with detailed columns (VIRT, RES, TIME)")
	pf.StringVar(&f.Sort, "sort", "", "initial sort key: cpu, mem or pid")
	pf.BoolVar(&f.Plain, "plain", false, "print plain text frames instead of the interactive view")
	pf.StringVar(&f.LogFile, "log-file", "", "write a diagnostic log to this file")
}

// ApplyFlags copies the flags that were set on cmd into cfg.
func ApplyFlags(cmd *cobra.Command, f *MonitorFlags, cfg *config.Config) error {
	changed := cmd.Flags().Changed

	if changed("interval") {
		iv, err := config.ValidateInterval(f.Interval)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig, err.Error(),
				"Use a duration like 2s, 5s or 1m")
		}
		cfg.Interval = f.Interval
		// Keep the configured timeout valid for a shorter interval unless
		// it was given explicitly too.
		if !changed("sample-timeout") {
			if to, err := time.ParseDuration(cfg.SampleTimeout); err == nil && to > iv {
				cfg.SampleTimeout = iv.String()
			}
		}
	}
	if changed("sample-timeout") {
		cfg.SampleTimeout = f.SampleTimeout
	}
	if changed("detailed") {
		if f.Detailed {
			cfg.View = "detailed"
		} else {
			cfg.View = "basic"
		}
	}
	if changed("sort") {
		cfg.Sort = f.Sort
	}
	if changed("plain") {
		cfg.Plain = f.Plain
	}
	if changed("log-file") {
		cfg.Log.File = config.ExpandTilde(f.LogFile)
	}
	return nil
}

// loadConfig finds and loads the config, applies flag overrides and
// validates the result. It returns the config file path, empty when only
// defaults and environment were used.
func loadConfig(cmd *cobra.Command, f *MonitorFlags) (*config.Config, string, error) {
	cfg, path, err := config.LoadOrDefault(f.ConfigFile)
	if err != nil {
		return nil, "", err
	}
	if err := ApplyFlags(cmd, f, cfg); err != nil {
		return nil, "", err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}
