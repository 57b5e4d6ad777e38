package attendance

import (
	"time"

	"github.com/clayfin/hr-records-go/internal/pkg/clock"
	"github.com/shopspring/decimal"
)

// DayAttendance aggregates one employee's attendance rows for a calendar day.
// Open rows are counted but contribute no time.
type DayAttendance struct {
	Date         time.Time
	EmployeeID   int64
	Sessions     int
	OpenSessions int
	FirstCheckIn *clock.TimeOfDay
	LastCheckOut *clock.TimeOfDay
	TotalTime    time.Duration
}

func (d DayAttendance) Present() bool {
	return d.Sessions > 0
}

// Hours is TotalTime in hours rounded to two places.
func (d DayAttendance) Hours() decimal.Decimal {
	return durationHours(d.TotalTime)
}

func durationHours(d time.Duration) decimal.Decimal {
	seconds := decimal.NewFromInt(int64(d / time.Second))
	return seconds.Div(decimal.NewFromInt(3600)).Round(2)
}

// SummarizeDay folds the rows dated on date into a DayAttendance. Rows from
// other dates are ignored, so a month's rows can be passed as-is.
func SummarizeDay(employeeID int64, date time.Time, rows []Attendance) DayAttendance {
	date = clock.DateOf(date)
	summary := DayAttendance{Date: date, EmployeeID: employeeID}

	for _, row := range rows {
		if !clock.DateOf(row.Date).Equal(date) {
			continue
		}
		summary.Sessions++

		checkIn := row.CheckIn
		if summary.FirstCheckIn == nil || checkIn.Before(*summary.FirstCheckIn) {
			summary.FirstCheckIn = &checkIn
		}

		if row.IsOpen() {
			summary.OpenSessions++
			continue
		}

		checkOut := *row.CheckOut
		if summary.LastCheckOut == nil || checkOut.After(*summary.LastCheckOut) {
			summary.LastCheckOut = &checkOut
		}
		summary.TotalTime += clock.Elapsed(row.CheckIn, checkOut)
	}

	return summary
}
