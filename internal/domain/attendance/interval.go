package attendance

import (
	"time"

	"github.com/clayfin/hr-records-go/internal/pkg/clock"
)

const endOfDay = clock.TimeOfDay(24 * time.Hour)

// occupied returns the span a row blocks on its own date. Open rows and rows
// that run past midnight block until the end of the day.
func occupied(a Attendance) (start, end clock.TimeOfDay) {
	if a.CheckOut == nil || a.CheckOut.Before(a.CheckIn) {
		return a.CheckIn, endOfDay
	}
	return a.CheckIn, *a.CheckOut
}

// CheckWindowFree scans rows, which must be sorted by check-in, for a gap that
// holds [from, to]. Touching an existing span counts as overlapping.
func CheckWindowFree(rows []Attendance, from, to clock.TimeOfDay) error {
	prevEnd := clock.TimeOfDay(-1)
	for _, row := range rows {
		start, end := occupied(row)
		if to.Before(start) {
			// every later row starts after this one
			if from.After(prevEnd) {
				return nil
			}
			return ErrAttendanceOverlapping
		}
		if end.After(prevEnd) {
			prevEnd = end
		}
	}
	if from.After(prevEnd) {
		return nil
	}
	return ErrAttendanceOverlapping
}
