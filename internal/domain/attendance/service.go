package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn opens a new attendance row for the employee
	CheckIn(ctx context.Context, employeeID int64) (AttendanceResponse, error)

	// CheckOut closes the employee's open row, applying the half-day policy to stale rows
	CheckOut(ctx context.Context, employeeID int64) (AttendanceResponse, error)

	// Regularize inserts a missed window into a day that already has attendance
	Regularize(ctx context.Context, employeeID int64, req RegularizeRequest) (AttendanceResponse, error)

	// GetAttendanceByMonthAndEmployeeID summarizes every day of a month
	GetAttendanceByMonthAndEmployeeID(ctx context.Context, req MonthlyAttendanceRequest) (MonthlyAttendanceResponse, error)

	GetDaySummary(ctx context.Context, employeeID int64, date string) (DayAttendanceResponse, error)

	// UpdateAttendance applies a partial update; absent fields are preserved
	UpdateAttendance(ctx context.Context, id int64, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// DeleteAttendance removes the row and returns the deleted snapshot
	DeleteAttendance(ctx context.Context, id int64) (AttendanceResponse, error)

	GetAttendanceByID(ctx context.Context, id int64) (AttendanceResponse, error)
	GetAttendanceByDateAndEmployeeID(ctx context.Context, employeeID int64, date string) ([]AttendanceResponse, error)

	// GetAttendanceByEmployeeID returns today's rows
	GetAttendanceByEmployeeID(ctx context.Context, employeeID int64) ([]AttendanceResponse, error)

	// CloseStaleAttendances applies the half-day policy to open rows from previous days
	CloseStaleAttendances(ctx context.Context) (int, error)
}
