package present

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uf46yr/htop/internal/config"
)

func TestBand_Classify(t *testing.T) {
	band := PercentBand(60, 85)

	tests := []struct {
		name  string
		value float64
		want  Severity
	}{
		{name: "zero", value: 0, want: SeverityNormal},
		{name: "just below warning", value: 0.5999, want: SeverityNormal},
		{name: "exactly warning", value: 0.60, want: SeverityWarning},
		{name: "between", value: 0.70, want: SeverityWarning},
		{name: "exactly critical", value: 0.85, want: SeverityCritical},
		{name: "full", value: 1, want: SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, band.Classify(tt.value))
		})
	}
}

func TestBand_ClassifyInverted(t *testing.T) {
	band := Band{Warning: 0.30, Critical: 0.15, Inverted: true}

	assert.Equal(t, SeverityNormal, band.Classify(0.80))
	assert.Equal(t, SeverityWarning, band.Classify(0.30))
	assert.Equal(t, SeverityWarning, band.Classify(0.20))
	assert.Equal(t, SeverityCritical, band.Classify(0.15))
	assert.Equal(t, SeverityCritical, band.Classify(0))
}

func TestBand_Temperature(t *testing.T) {
	band := DefaultBands().Temperature

	assert.Equal(t, SeverityNormal, band.Classify(45))
	assert.Equal(t, SeverityWarning, band.Classify(70))
	assert.Equal(t, SeverityCritical, band.Classify(85))
}

func TestNewBands(t *testing.T) {
	th := config.DefaultConfig().Thresholds
	th.Disk = config.ThresholdValues{Warning: 50, Critical: 95}

	b := NewBands(th)
	assert.Equal(t, PercentBand(50, 95), b.Disk)
	assert.InDelta(t, 0.60, b.CPU.Warning, 1e-12)
	assert.InDelta(t, 0.85, b.Memory.Critical, 1e-12)
	assert.True(t, b.Battery.Inverted)
	assert.False(t, b.CPU.Inverted)
	assert.InDelta(t, 0.10, b.ProcessCPU.Warning, 1e-12)
	assert.InDelta(t, 0.05, b.ProcessMemory.Critical, 1e-12)
}

func TestSeverity(t *testing.T) {
	tests := []struct {
		sev   Severity
		name  string
		style Style
	}{
		{SeverityNormal, "normal", StyleNormal},
		{SeverityWarning, "warning", StyleWarning},
		{SeverityCritical, "critical", StyleCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.sev.String())
			assert.Equal(t, tt.style, tt.sev.Style())
		})
	}
}
