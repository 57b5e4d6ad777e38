package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/clayfin/hr-records-go/internal/domain/attendance"
	"github.com/clayfin/hr-records-go/internal/domain/auth"
	"github.com/clayfin/hr-records-go/internal/domain/employee"
	"github.com/clayfin/hr-records-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrUnauthorized):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, auth.ErrForbidden):
		Forbidden(w, "Insufficient role for this action")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrHRNotFound):
		NotFound(w, "HR not found")
	case errors.Is(err, employee.ErrManagerNotFound):
		NotFound(w, "Manager not found")
	case errors.Is(err, employee.ErrProfileNotFound):
		NotFound(w, "Employee profile not found")
	case errors.Is(err, employee.ErrNoEmployees),
		errors.Is(err, employee.ErrNoReports),
		errors.Is(err, employee.ErrManagerNotAssigned):
		NotFound(w, err.Error())
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrUsernameExists):
		Conflict(w, "Username already taken")
	case errors.Is(err, employee.ErrInvalidManager),
		errors.Is(err, employee.ErrSelfManagement),
		errors.Is(err, employee.ErrManagerAlreadyAssigned),
		errors.Is(err, employee.ErrNotValidHR),
		errors.Is(err, employee.ErrProfileExists):
		Conflict(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance not found")
	case errors.Is(err, attendance.ErrCheckOutFirst),
		errors.Is(err, attendance.ErrCheckInFirst),
		errors.Is(err, attendance.ErrNotRegularizable),
		errors.Is(err, attendance.ErrAttendanceOverlapping):
		Conflict(w, err.Error())

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
