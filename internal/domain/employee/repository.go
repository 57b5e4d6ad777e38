package employee

import (
	"context"
	"time"
)

type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string, excludeID int64) (emailTaken bool, usernameTaken bool, err error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, emp Employee) (Employee, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]Employee, error)
	ListByManagerID(ctx context.Context, managerID int64) ([]Employee, error)

	// ListNewest returns up to limit employees ordered by id descending.
	ListNewest(ctx context.Context, limit int) ([]Employee, error)

	// ListByBirthday returns employees whose profile birth date falls on the
	// same month and day as date.
	ListByBirthday(ctx context.Context, date time.Time) ([]Employee, error)
}

type ProfileRepository interface {
	GetByEmployeeID(ctx context.Context, employeeID int64) (Profile, error)
	Create(ctx context.Context, profile Profile) (Profile, error)
	Update(ctx context.Context, profile Profile) (Profile, error)
}
