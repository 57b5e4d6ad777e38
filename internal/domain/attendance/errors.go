package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrCheckOutFirst = errors.New("check out first to check in")
	ErrCheckInFirst  = errors.New("you have to check in first to check out")

	// Regularization errors
	ErrNotRegularizable      = errors.New("requested window is not regularizable")
	ErrAttendanceOverlapping = errors.New("attendance time is overlapping")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance not found")
)
