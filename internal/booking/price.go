package booking

import (
	"math"
	"time"
)

// Quote derives the total for a stay. Whole-plus-fractional hours are taken
// from the elapsed seconds, and the total is rounded to the nearest whole
// currency unit; fares are not subdivided below that. An unset or inverted
// time range quotes 0, which keeps the confirm action disabled.
func Quote(start, end time.Time, pricePerHour float64) int64 {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	if !end.After(start) {
		return 0
	}

	hours := end.Sub(start).Seconds() / 3600
	return int64(math.Round(hours * pricePerHour))
}

// CanConfirm reports whether the booking form may be submitted.
func CanConfirm(total int64) bool {
	return total > 0
}
