package employee

import (
	"context"

	"github.com/clayfin/hr-records-go/internal/domain/attendance"
)

// EmployeeService defines business logic for the employee directory
type EmployeeService interface {
	// AddEmployee creates an employee on behalf of an HR
	AddEmployee(ctx context.Context, hrID int64, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee applies a partial update
	UpdateEmployee(ctx context.Context, id int64, req UpdateEmployeeRequest) (EmployeeResponse, error)

	GetEmployeeByID(ctx context.Context, id int64) (EmployeeResponse, error)
	GetEmployeeByEmail(ctx context.Context, email string) (EmployeeResponse, error)

	// DeleteEmployee removes the employee and returns what was deleted
	DeleteEmployee(ctx context.Context, id int64) (EmployeeResponse, error)

	GetAllEmployees(ctx context.Context) ([]EmployeeResponse, error)
	GetEmployeeManager(ctx context.Context, employeeID int64) (EmployeeResponse, error)
	GetEmployeesOfManager(ctx context.Context, managerID int64) ([]EmployeeResponse, error)

	// SetManagerToEmployeeByHR assigns a manager once; reassignment is refused
	SetManagerToEmployeeByHR(ctx context.Context, employeeID, hrID int64, req SetManagerRequest) (EmployeeResponse, error)

	// UpdateSkillSet appends skills without deduplicating
	UpdateSkillSet(ctx context.Context, employeeID int64, req UpdateSkillSetRequest) (EmployeeResponse, error)

	GetEmployeeProfile(ctx context.Context, employeeID int64) (ProfileResponse, error)
	AddEmployeeProfile(ctx context.Context, employeeID int64, req CreateProfileRequest) (ProfileResponse, error)
	UpdateEmployeeProfile(ctx context.Context, employeeID int64, req UpdateProfileRequest) (ProfileResponse, error)

	GetAllBirthdayEmployees(ctx context.Context) ([]EmployeeResponse, error)
	GetAllNewEmployees(ctx context.Context) ([]EmployeeResponse, error)
	GetAllAttendanceByEmployeeID(ctx context.Context, employeeID int64) ([]attendance.AttendanceResponse, error)
}
