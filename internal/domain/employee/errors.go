package employee

import "errors"

var (
	// Not found
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrHRNotFound       = errors.New("hr not found")
	ErrManagerNotFound  = errors.New("manager not found")
	ErrProfileNotFound  = errors.New("employee profile not found")

	// Empty results
	ErrNoEmployees        = errors.New("no employees found")
	ErrNoReports          = errors.New("no employees report to this manager")
	ErrManagerNotAssigned = errors.New("manager not assigned to the employee")

	// Business rule violations
	ErrEmailExists            = errors.New("email already registered")
	ErrUsernameExists         = errors.New("username already taken")
	ErrInvalidManager         = errors.New("manager id does not belong to a manager")
	ErrSelfManagement         = errors.New("employee cannot be their own manager")
	ErrManagerAlreadyAssigned = errors.New("employee manager already exists")
	ErrNotValidHR             = errors.New("acting employee is not a valid hr")
	ErrProfileExists          = errors.New("employee profile already exists")
)
