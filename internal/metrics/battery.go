package metrics

import (
	"github.com/distatus/battery"
)

// BatteryReader reports remaining charge across all batteries the platform
// exposes (sysfs on Linux, IOKit on macOS, the power API on Windows and BSD).
type BatteryReader struct {
	getAll func() ([]*battery.Battery, error)
}

// NewBatteryReader reads the machine's batteries.
func NewBatteryReader() *BatteryReader {
	return &BatteryReader{getAll: battery.GetAll}
}

// Read returns remaining charge in 0..1 averaged over all batteries that
// report a full capacity, or nil when there is no readable battery.
// Per-battery errors are partial: readable batteries still count.
func (r *BatteryReader) Read() *float64 {
	if r == nil || r.getAll == nil {
		return nil
	}
	bats, _ := r.getAll()

	var sum float64
	var n int
	for _, b := range bats {
		if b == nil || b.Full <= 0 || b.Current < 0 {
			continue
		}
		frac := b.Current / b.Full
		if frac > 1 {
			frac = 1
		}
		sum += frac
		n++
	}
	if n == 0 {
		return nil
	}
	v := sum / float64(n)
	return &v
}
