package employee

import (
	"time"
)

type Employee struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	Title        string
	JoiningDate  time.Time
	ManagerID    *int64
	ReportingTo  *string
	SkillSet     []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasManager reports whether a manager has been assigned. Once set it never changes.
func (e Employee) HasManager() bool {
	return e.ManagerID != nil
}

type Role string

const (
	RoleHR       Role = "HR"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleHR, RoleManager, RoleEmployee, RoleAdmin:
		return true
	}
	return false
}

type Profile struct {
	ID          int64
	EmployeeID  int64
	FullName    string
	BirthDate   *time.Time
	Gender      *string
	PhoneNumber *string
	Address     *string
	ReportingTo *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
