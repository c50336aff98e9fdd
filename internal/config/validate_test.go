package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uf46yr/htop/internal/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*Config)
		wantErr     bool
		errContains string
	}{
		{name: "defaults are valid", modify: func(c *Config) {}},
		{
			name:        "future version",
			modify:      func(c *Config) { c.Version = 99 },
			wantErr:     true,
			errContains: "from the future",
		},
		{
			name:        "bad interval",
			modify:      func(c *Config) { c.Interval = "often" },
			wantErr:     true,
			errContains: "valid duration",
		},
		{
			name:        "interval below minimum",
			modify:      func(c *Config) { c.Interval = "100ms" },
			wantErr:     true,
			errContains: "too short",
		},
		{
			name:        "timeout longer than interval",
			modify:      func(c *Config) { c.Interval = "1s"; c.SampleTimeout = "2s" },
			wantErr:     true,
			errContains: "longer than interval",
		},
		{
			name:   "timeout equal to interval",
			modify: func(c *Config) { c.Interval = "1s"; c.SampleTimeout = "1s" },
		},
		{
			name:        "zero timeout",
			modify:      func(c *Config) { c.SampleTimeout = "0s" },
			wantErr:     true,
			errContains: "positive",
		},
		{
			name:        "unknown view",
			modify:      func(c *Config) { c.View = "tree" },
			wantErr:     true,
			errContains: "view 'tree'",
		},
		{
			name:        "unknown sort",
			modify:      func(c *Config) { c.Sort = "name" },
			wantErr:     true,
			errContains: "sort 'name'",
		},
		{
			name:        "cpu warning above critical",
			modify:      func(c *Config) { c.Thresholds.CPU = ThresholdValues{Warning: 90, Critical: 80} },
			wantErr:     true,
			errContains: "thresholds.cpu.warning",
		},
		{
			name:        "disk out of range",
			modify:      func(c *Config) { c.Thresholds.Disk = ThresholdValues{Warning: 50, Critical: 101} },
			wantErr:     true,
			errContains: "0-100",
		},
		{
			name:        "battery must be inverted",
			modify:      func(c *Config) { c.Thresholds.Battery = ThresholdValues{Warning: 10, Critical: 20} },
			wantErr:     true,
			errContains: "remaining charge",
		},
		{
			name:        "temperature order",
			modify:      func(c *Config) { c.Thresholds.Temperature = ThresholdValues{Warning: 90, Critical: 80} },
			wantErr:     true,
			errContains: "temperature.warning",
		},
		{
			name:        "layout must be positive",
			modify:      func(c *Config) { c.Layout.MinRows = 0 },
			wantErr:     true,
			errContains: "layout.min_rows",
		},
		{
			name:        "bad log level",
			modify:      func(c *Config) { c.Log.Level = "chatty" },
			wantErr:     true,
			errContains: "log.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := Validate(cfg)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	assert.NoError(t, Validate(nil))
}

func TestValidateInterval(t *testing.T) {
	d, err := ValidateInterval("")
	require.NoError(t, err)
	assert.Equal(t, DefaultInterval, d)

	d, err = ValidateInterval("500ms")
	require.NoError(t, err)
	assert.Equal(t, MinInterval, d)

	_, err = ValidateInterval("499ms")
	assert.Error(t, err)
}
