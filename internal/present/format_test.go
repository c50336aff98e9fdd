package present

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"bash", 10, "bash"},
		{"/usr/lib/firefox/firefox", 10, "/usr/li..."},
		{"abcdef", 3, "abc"},
		{"abcdef", 0, ""},
		{"abcdef", -1, ""},
		{"日本語テキスト", 5, "日..."},
		{"日本語", 3, "日"},
		{"日本語", 6, "日本語"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.width))
		})
	}
}

func TestPad(t *testing.T) {
	assert.Equal(t, "   42", PadLeft("42", 5))
	assert.Equal(t, "42   ", PadRight("42", 5))
	assert.Equal(t, "ab...", PadRight("abcdefgh", 5))
	assert.Equal(t, "漢字 ", PadRight("漢字", 5))
	assert.Equal(t, "  漢字", PadLeft("漢字", 6))
}

func TestScaleBytes(t *testing.T) {
	tests := []struct {
		name  string
		in    uint64
		width int
		want  string
	}{
		{name: "bytes", in: 512, width: 6, want: "512B"},
		{name: "zero", in: 0, width: 6, want: "0B"},
		{name: "kibibytes", in: 1536, width: 6, want: "1.5K"},
		{name: "gibibytes", in: 23 << 30, width: 6, want: "23G"},
		{name: "fraction dropped", in: 1536 << 20, width: 3, want: "1G"},
		{name: "overflow", in: 1023 << 20, width: 3, want: "+++"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScaleBytes(tt.in, tt.width)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), tt.width)
		})
	}
}

func TestScaleCount(t *testing.T) {
	tests := []struct {
		name  string
		in    int64
		width int
		want  string
	}{
		{"fits", 4194304, 7, "4194304"},
		{"scaled with a decimal", 21474836, 7, "21.5M"},
		{"max int32", 2147483647, 7, "2.1G"},
		{"decimal dropped", 2147483647, 2, "2G"},
		{"hopeless", 2147483647, 1, "+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScaleCount(tt.in, tt.width)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), tt.width)
		})
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		name  string
		in    time.Duration
		width int
		want  string
	}{
		{name: "seconds", in: 42 * time.Second, width: 11, want: "00:42"},
		{name: "minutes", in: 5*time.Minute + 3*time.Second, width: 11, want: "05:03"},
		{name: "hours", in: 2*time.Hour + 5*time.Minute, width: 11, want: "02:05:00"},
		{name: "days", in: 3*24*time.Hour + time.Hour, width: 11, want: "3-01:00:00"},
		{name: "many days scaled", in: 400 * 24 * time.Hour, width: 11, want: "400d"},
		{name: "hours scaled", in: 5 * time.Hour, width: 4, want: "5h"},
		{name: "negative", in: -time.Second, width: 11, want: "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatElapsed(tt.in, tt.width))
		})
	}
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "00:05", FormatUptime(5*time.Minute))
	assert.Equal(t, "04:12", FormatUptime(4*time.Hour+12*time.Minute+59*time.Second))
	assert.Equal(t, "3d 04:12", FormatUptime(3*24*time.Hour+4*time.Hour+12*time.Minute))
}

func TestFormatAge(t *testing.T) {
	assert.Equal(t, "8s", FormatAge(8*time.Second))
	assert.Equal(t, "3m", FormatAge(3*time.Minute+10*time.Second))
	assert.Equal(t, "2h", FormatAge(2*time.Hour))
	assert.Equal(t, "4d", FormatAge(4*24*time.Hour))
}

func TestFormatPercentAndTemperature(t *testing.T) {
	assert.Equal(t, "42.0%", FormatPercent(0.42))
	assert.Equal(t, "100.0%", FormatPercent(1))
	assert.Equal(t, "54.0°C", FormatTemperature(54))
}
