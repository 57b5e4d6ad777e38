package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/clayfin/hr-records-go/internal/domain/employee"
	"github.com/clayfin/hr-records-go/internal/pkg/clock"
)

// BootstrapHR describes the first HR account of a fresh database.
type BootstrapHR struct {
	Email    string
	Username string
	Password string
}

// EnsureHR creates the bootstrap HR unless an employee with that email already exists.
func EnsureHR(ctx context.Context, employeeRepo employee.EmployeeRepository, clk clock.Clock, hr BootstrapHR) (bool, error) {
	email := strings.TrimSpace(strings.ToLower(hr.Email))

	_, err := employeeRepo.GetByEmail(ctx, email)
	if err == nil {
		slog.Info("bootstrap hr already present", "email", email)
		return false, nil
	}
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return false, fmt.Errorf("failed to look up bootstrap hr: %w", err)
	}

	if len(hr.Password) < 8 {
		return false, fmt.Errorf("bootstrap hr password must be at least 8 characters")
	}
	hash, err := HashPassword(hr.Password)
	if err != nil {
		return false, err
	}

	created, err := employeeRepo.Create(ctx, employee.Employee{
		Username:     hr.Username,
		Email:        email,
		PasswordHash: hash,
		Role:         employee.RoleHR,
		Title:        "HR",
		JoiningDate:  clock.Today(clk),
		SkillSet:     []string{},
	})
	if err != nil {
		return false, fmt.Errorf("failed to create bootstrap hr: %w", err)
	}

	slog.Info("bootstrap hr created", "employee_id", created.ID, "email", created.Email)
	return true, nil
}
