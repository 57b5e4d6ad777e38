package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/clayfin/hr-records-go/internal/domain/attendance"
	"github.com/clayfin/hr-records-go/internal/domain/employee"
	"github.com/clayfin/hr-records-go/internal/pkg/clock"
	"github.com/clayfin/hr-records-go/internal/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

const (
	dateLayout = "2006-01-02"

	// newEmployeesLimit bounds GetAllNewEmployees
	newEmployeesLimit = 10
)

type EmployeeServiceImpl struct {
	tx             database.Transactor
	employeeRepo   employee.EmployeeRepository
	profileRepo    employee.ProfileRepository
	attendanceRepo attendance.AttendanceRepository
	clock          clock.Clock
}

func NewEmployeeService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	profileRepo employee.ProfileRepository,
	attendanceRepo attendance.AttendanceRepository,
	clk clock.Clock,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:             tx,
		employeeRepo:   employeeRepo,
		profileRepo:    profileRepo,
		attendanceRepo: attendanceRepo,
		clock:          clk,
	}
}

func toEmployeeResponse(e employee.Employee) employee.EmployeeResponse {
	skills := e.SkillSet
	if skills == nil {
		skills = []string{}
	}
	return employee.EmployeeResponse{
		ID:          e.ID,
		Username:    e.Username,
		Email:       e.Email,
		Role:        string(e.Role),
		Title:       e.Title,
		JoiningDate: e.JoiningDate.Format(dateLayout),
		ManagerID:   e.ManagerID,
		ReportingTo: e.ReportingTo,
		SkillSet:    skills,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.Format(time.RFC3339),
	}
}

func toEmployeeResponses(employees []employee.Employee) []employee.EmployeeResponse {
	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, toEmployeeResponse(e))
	}
	return responses
}

func toProfileResponse(p employee.Profile) employee.ProfileResponse {
	resp := employee.ProfileResponse{
		ID:          p.ID,
		EmployeeID:  p.EmployeeID,
		FullName:    p.FullName,
		Gender:      p.Gender,
		PhoneNumber: p.PhoneNumber,
		Address:     p.Address,
		ReportingTo: p.ReportingTo,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
	if p.BirthDate != nil {
		s := p.BirthDate.Format(dateLayout)
		resp.BirthDate = &s
	}
	return resp
}

// parseBirthDate expects a value that already passed request validation.
func parseBirthDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}

// getEmployee maps a missing row to notFound.
func (s *EmployeeServiceImpl) getEmployee(ctx context.Context, id int64, notFound error) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, notFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %d: %w", id, err)
	}
	return emp, nil
}

func (s *EmployeeServiceImpl) checkUnique(ctx context.Context, email, username string, excludeID int64) error {
	emailTaken, usernameTaken, err := s.employeeRepo.ExistsByEmailOrUsername(ctx, email, username, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check email and username: %w", err)
	}
	if emailTaken {
		return employee.ErrEmailExists
	}
	if usernameTaken {
		return employee.ErrUsernameExists
	}
	return nil
}

// AddEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) AddEmployee(ctx context.Context, hrID int64, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hr, err := s.getEmployee(ctx, hrID, employee.ErrHRNotFound)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if hr.Role != employee.RoleHR {
		return employee.EmployeeResponse{}, employee.ErrNotValidHR
	}

	if err := s.checkUnique(ctx, req.Email, req.Username, 0); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Title:        strings.TrimSpace(req.Title),
		JoiningDate:  clock.Today(s.clock),
		SkillSet:     req.SkillSet,
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmailExists) || errors.Is(err, employee.ErrUsernameExists) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("employee added", "employee_id", created.ID, "hr_id", hrID, "role", created.Role)
	return toEmployeeResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, id int64, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing, err := s.getEmployee(ctx, id, employee.ErrEmployeeNotFound)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if (req.Email.Set && req.Email.Value != existing.Email) || (req.Username.Set && req.Username.Value != existing.Username) {
		email, username := existing.Email, existing.Username
		req.Email.Apply(&email)
		req.Username.Apply(&username)
		if err := s.checkUnique(ctx, email, username, id); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}

	req.Username.Apply(&existing.Username)
	req.Email.Apply(&existing.Email)
	req.Role.Apply(&existing.Role)
	req.Title.Apply(&existing.Title)
	req.ReportingTo.Apply(&existing.ReportingTo)
	req.SkillSet.Apply(&existing.SkillSet)

	updated, err := s.employeeRepo.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) || errors.Is(err, employee.ErrEmailExists) || errors.Is(err, employee.ErrUsernameExists) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	slog.Info("employee updated", "employee_id", id)
	return toEmployeeResponse(updated), nil
}

// GetEmployeeByID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployeeByID(ctx context.Context, id int64) (employee.EmployeeResponse, error) {
	emp, err := s.getEmployee(ctx, id, employee.ErrEmployeeNotFound)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toEmployeeResponse(emp), nil
}

// GetEmployeeByEmail implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployeeByEmail(ctx context.Context, email string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee by email: %w", err)
	}
	return toEmployeeResponse(emp), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id int64) (employee.EmployeeResponse, error) {
	existing, err := s.getEmployee(ctx, id, employee.ErrEmployeeNotFound)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to delete employee: %w", err)
	}

	slog.Info("employee deleted", "employee_id", id)
	return toEmployeeResponse(existing), nil
}

// GetAllEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetAllEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	if len(employees) == 0 {
		return nil, employee.ErrNoEmployees
	}
	return toEmployeeResponses(employees), nil
}

// GetEmployeeManager implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployeeManager(ctx context.Context, employeeID int64) (employee.EmployeeResponse, error) {
	emp, err := s.getEmployee(ctx, employeeID, employee.ErrEmployeeNotFound)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !emp.HasManager() {
		return employee.EmployeeResponse{}, employee.ErrManagerNotAssigned
	}

	manager, err := s.getEmployee(ctx, *emp.ManagerID, employee.ErrManagerNotFound)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toEmployeeResponse(manager), nil
}

// GetEmployeesOfManager implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployeesOfManager(ctx context.Context, managerID int64) ([]employee.EmployeeResponse, error) {
	if _, err := s.getEmployee(ctx, managerID, employee.ErrManagerNotFound); err != nil {
		return nil, err
	}

	reports, err := s.employeeRepo.ListByManagerID(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	if len(reports) == 0 {
		return nil, employee.ErrNoReports
	}
	return toEmployeeResponses(reports), nil
}

// SetManagerToEmployeeByHR implements employee.EmployeeService.
func (s *EmployeeServiceImpl) SetManagerToEmployeeByHR(ctx context.Context, employeeID, hrID int64, req employee.SetManagerRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var updated employee.Employee
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		hr, err := s.getEmployee(txCtx, hrID, employee.ErrHRNotFound)
		if err != nil {
			return err
		}
		emp, err := s.getEmployee(txCtx, employeeID, employee.ErrEmployeeNotFound)
		if err != nil {
			return err
		}
		manager, err := s.getEmployee(txCtx, req.ManagerID, employee.ErrManagerNotFound)
		if err != nil {
			return err
		}

		switch {
		case manager.Role != employee.RoleManager:
			return employee.ErrInvalidManager
		case manager.ID == emp.ID:
			return employee.ErrSelfManagement
		case emp.HasManager():
			return employee.ErrManagerAlreadyAssigned
		case hr.Role != employee.RoleHR:
			return employee.ErrNotValidHR
		}

		emp.ManagerID = &manager.ID
		emp.ReportingTo = &manager.Username
		emp.Role = req.Role
		emp.Title = strings.TrimSpace(req.Title)

		updated, err = s.employeeRepo.Update(txCtx, emp)
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("manager assigned", "employee_id", employeeID, "manager_id", req.ManagerID, "hr_id", hrID)
	return toEmployeeResponse(updated), nil
}

// UpdateSkillSet implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateSkillSet(ctx context.Context, employeeID int64, req employee.UpdateSkillSetRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.getEmployee(ctx, employeeID, employee.ErrEmployeeNotFound)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	for _, skill := range req.Skills {
		emp.SkillSet = append(emp.SkillSet, strings.TrimSpace(skill))
	}

	updated, err := s.employeeRepo.Update(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update skill set: %w", err)
	}
	return toEmployeeResponse(updated), nil
}

// GetEmployeeProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployeeProfile(ctx context.Context, employeeID int64) (employee.ProfileResponse, error) {
	if _, err := s.getEmployee(ctx, employeeID, employee.ErrEmployeeNotFound); err != nil {
		return employee.ProfileResponse{}, err
	}

	profile, err := s.profileRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrProfileNotFound) {
			return employee.ProfileResponse{}, employee.ErrProfileNotFound
		}
		return employee.ProfileResponse{}, fmt.Errorf("failed to get profile: %w", err)
	}
	return toProfileResponse(profile), nil
}

// AddEmployeeProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) AddEmployeeProfile(ctx context.Context, employeeID int64, req employee.CreateProfileRequest) (employee.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.ProfileResponse{}, err
	}

	emp, err := s.getEmployee(ctx, employeeID, employee.ErrEmployeeNotFound)
	if err != nil {
		return employee.ProfileResponse{}, err
	}

	_, err = s.profileRepo.GetByEmployeeID(ctx, employeeID)
	switch {
	case err == nil:
		return employee.ProfileResponse{}, employee.ErrProfileExists
	case !errors.Is(err, employee.ErrProfileNotFound):
		return employee.ProfileResponse{}, fmt.Errorf("failed to get profile: %w", err)
	}

	reportingTo := req.ReportingTo
	if emp.HasManager() {
		manager, err := s.getEmployee(ctx, *emp.ManagerID, employee.ErrManagerNotFound)
		if err != nil {
			return employee.ProfileResponse{}, err
		}
		reportingTo = &manager.Username
	}

	created, err := s.profileRepo.Create(ctx, employee.Profile{
		EmployeeID:  employeeID,
		FullName:    strings.TrimSpace(req.FullName),
		BirthDate:   parseBirthDate(req.BirthDate),
		Gender:      req.Gender,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		ReportingTo: reportingTo,
	})
	if err != nil {
		if errors.Is(err, employee.ErrProfileExists) {
			return employee.ProfileResponse{}, err
		}
		return employee.ProfileResponse{}, fmt.Errorf("failed to create profile: %w", err)
	}

	slog.Info("employee profile added", "employee_id", employeeID)
	return toProfileResponse(created), nil
}

// UpdateEmployeeProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployeeProfile(ctx context.Context, employeeID int64, req employee.UpdateProfileRequest) (employee.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.ProfileResponse{}, err
	}

	profile, err := s.profileRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrProfileNotFound) {
			return employee.ProfileResponse{}, employee.ErrProfileNotFound
		}
		return employee.ProfileResponse{}, fmt.Errorf("failed to get profile: %w", err)
	}

	req.FullName.Apply(&profile.FullName)
	if req.BirthDate.Set {
		profile.BirthDate = parseBirthDate(req.BirthDate.Value)
	}
	req.Gender.Apply(&profile.Gender)
	req.PhoneNumber.Apply(&profile.PhoneNumber)
	req.Address.Apply(&profile.Address)
	req.ReportingTo.Apply(&profile.ReportingTo)

	updated, err := s.profileRepo.Update(ctx, profile)
	if err != nil {
		if errors.Is(err, employee.ErrProfileNotFound) {
			return employee.ProfileResponse{}, err
		}
		return employee.ProfileResponse{}, fmt.Errorf("failed to update profile: %w", err)
	}
	return toProfileResponse(updated), nil
}

// GetAllBirthdayEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetAllBirthdayEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.ListByBirthday(ctx, clock.Today(s.clock))
	if err != nil {
		return nil, fmt.Errorf("failed to list birthday employees: %w", err)
	}
	return toEmployeeResponses(employees), nil
}

// GetAllNewEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetAllNewEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.ListNewest(ctx, newEmployeesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list new employees: %w", err)
	}
	return toEmployeeResponses(employees), nil
}

// GetAllAttendanceByEmployeeID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetAllAttendanceByEmployeeID(ctx context.Context, employeeID int64) ([]attendance.AttendanceResponse, error) {
	if _, err := s.getEmployee(ctx, employeeID, employee.ErrEmployeeNotFound); err != nil {
		return nil, err
	}

	rows, err := s.attendanceRepo.ListByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	if len(rows) == 0 {
		return nil, attendance.ErrAttendanceNotFound
	}
	return attendance.NewAttendanceResponses(rows), nil
}
