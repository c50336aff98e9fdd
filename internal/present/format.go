package present

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Placeholder is shown for values the platform does not provide.
const Placeholder = "N/A"

// Ellipsis ends text that was cut to fit its column.
const Ellipsis = "..."

// Truncate cuts s to at most width cells, ending with Ellipsis when
// something was removed. Wide runes count as two cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if TextWidth(s) <= width {
		return s
	}
	if width <= len(Ellipsis) {
		return cutCells(s, width)
	}
	return cutCells(s, width-len(Ellipsis)) + Ellipsis
}

// cutCells returns the longest prefix of s that fits in width cells.
func cutCells(s string, width int) string {
	n := 0
	for i, ch := range s {
		w := cellWidth(ch)
		if n+w > width {
			return s[:i]
		}
		n += w
	}
	return s
}

// PadLeft right-aligns s in width columns, truncating if needed.
func PadLeft(s string, width int) string {
	s = Truncate(s, width)
	if n := TextWidth(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}

// PadRight left-aligns s in width columns, truncating if needed.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	if n := TextWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// FormatPercent renders a fraction as a percentage with one decimal.
func FormatPercent(fraction float64) string {
	return fmt.Sprintf("%.1f%%", fraction*100)
}

// ScaleBytes renders a byte count in binary units compact enough for
// width columns ("512B", "1.5K", "23G"). The fraction is dropped when it
// does not fit ("1.5G" -> "1G"); values that still do not fit are shown as
// a run of '+'.
func ScaleBytes(b uint64, width int) string {
	s := strings.ReplaceAll(humanize.IBytes(b), " ", "")
	s = strings.TrimSuffix(s, "iB")
	if len(s) > width {
		if i := strings.IndexByte(s, '.'); i >= 0 {
			s = s[:i] + strings.TrimLeft(s[i:], ".0123456789")
		}
	}
	if len(s) > width {
		return strings.Repeat("+", max(width, 0))
	}
	return s
}

// ScaleCount renders n in at most width cells: plain digits when they fit,
// otherwise SI-scaled ("2.1G", then "2G"). Values that still do not fit are
// shown as a run of '+'.
func ScaleCount(n int64, width int) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= width {
		return s
	}
	s = strings.ReplaceAll(humanize.SIWithDigits(float64(n), 1, ""), " ", "")
	if len(s) > width {
		if i := strings.IndexByte(s, '.'); i >= 0 {
			s = s[:i] + strings.TrimLeft(s[i:], ".0123456789")
		}
	}
	if len(s) > width {
		return strings.Repeat("+", max(width, 0))
	}
	return s
}

// FormatElapsed renders a run time ps-style: mm:ss, hh:mm:ss, dd-hh:mm:ss,
// or whole days once that no longer fits in width.
func FormatElapsed(d time.Duration, width int) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	days := total / 86400
	hours := (total % 86400) / 3600
	mins := (total % 3600) / 60
	secs := total % 60

	var s string
	switch {
	case days > 0:
		s = fmt.Sprintf("%d-%02d:%02d:%02d", days, hours, mins, secs)
	case hours > 0:
		s = fmt.Sprintf("%02d:%02d:%02d", hours, mins, secs)
	default:
		s = fmt.Sprintf("%02d:%02d", mins, secs)
	}
	if len(s) > width && days > 0 {
		s = fmt.Sprintf("%dd", days)
	}
	if len(s) > width && hours > 0 && days == 0 {
		s = fmt.Sprintf("%dh", hours)
	}
	if len(s) > width {
		return strings.Repeat("+", max(width, 0))
	}
	return s
}

// FormatUptime renders uptime as "3d 04:12" or "04:12".
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Minute)
	days := total / (24 * 60)
	hours := (total % (24 * 60)) / 60
	mins := total % 60
	if days > 0 {
		return fmt.Sprintf("%dd %02d:%02d", days, hours, mins)
	}
	return fmt.Sprintf("%02d:%02d", hours, mins)
}

// FormatAge renders how old something is with one unit: "8s", "3m", "2h", "4d".
func FormatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int64(d/time.Second))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int64(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int64(d/time.Hour))
	default:
		return fmt.Sprintf("%dd", int64(d/(24*time.Hour)))
	}
}

// FormatTemperature renders degrees Celsius with one decimal.
func FormatTemperature(c float64) string {
	return fmt.Sprintf("%.1f°C", c)
}
