package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a new attendance row
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID returns ErrAttendanceNotFound when the row does not exist
	GetByID(ctx context.Context, id int64) (Attendance, error)

	// GetLatestByEmployeeID returns the employee's open row if there is one,
	// otherwise the most recently created row, or nil when there is no attendance at all
	GetLatestByEmployeeID(ctx context.Context, employeeID int64) (*Attendance, error)

	// ListByEmployeeAndDate returns the rows of one day ordered by check-in
	ListByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) ([]Attendance, error)

	// ListByEmployeeAndDateRange returns rows with from <= date <= to ordered by date and check-in
	ListByEmployeeAndDateRange(ctx context.Context, employeeID int64, from, to time.Time) ([]Attendance, error)

	ListByEmployeeID(ctx context.Context, employeeID int64) ([]Attendance, error)

	// ListOpenBefore returns every open row dated before date
	ListOpenBefore(ctx context.Context, date time.Time) ([]Attendance, error)

	Update(ctx context.Context, attendance Attendance) (Attendance, error)
	Delete(ctx context.Context, id int64) error
}
