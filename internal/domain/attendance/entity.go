package attendance

import (
	"time"

	"github.com/clayfin/hr-records-go/internal/pkg/clock"
)

type Attendance struct {
	ID         int64
	EmployeeID int64
	Date       time.Time
	CheckIn    clock.TimeOfDay
	CheckOut   *clock.TimeOfDay
	SpentTime  time.Duration
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsOpen reports whether the employee is still checked in on this row.
func (a Attendance) IsOpen() bool {
	return a.CheckOut == nil
}
