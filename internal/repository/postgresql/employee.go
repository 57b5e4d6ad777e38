package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clayfin/hr-records-go/internal/domain/employee"
	"github.com/clayfin/hr-records-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const employeeColumns = `id, username, email, password_hash, role, title, joining_date,
	manager_id, reporting_to, skill_set, created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.Username, &emp.Email, &emp.PasswordHash, &emp.Role, &emp.Title, &emp.JoiningDate,
		&emp.ManagerID, &emp.ReportingTo, &emp.SkillSet, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	if emp.SkillSet == nil {
		emp.SkillSet = []string{}
	}
	return emp, nil
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return employees, nil
}

// mapEmployeeConstraint translates unique violations into domain conflicts.
func mapEmployeeConstraint(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return nil
	}
	switch pgErr.ConstraintName {
	case "employees_email_key":
		return employee.ErrEmailExists
	case "employees_username_key":
		return employee.ErrUsernameExists
	}
	return nil
}

func skillSetParam(skills []string) []string {
	if skills == nil {
		return []string{}
	}
	return skills
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %d: %w", id, err)
	}
	return emp, nil
}

// GetByEmail implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by email: %w", err)
	}
	return emp, nil
}

// ExistsByEmailOrUsername implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ExistsByEmailOrUsername(ctx context.Context, email, username string, excludeID int64) (bool, bool, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT
			EXISTS (SELECT 1 FROM employees WHERE email = $1 AND id <> $3),
			EXISTS (SELECT 1 FROM employees WHERE username = $2 AND id <> $3)
	`

	var emailTaken, usernameTaken bool
	if err := q.QueryRow(ctx, query, email, username, excludeID).Scan(&emailTaken, &usernameTaken); err != nil {
		return false, false, fmt.Errorf("failed to check employee uniqueness: %w", err)
	}
	return emailTaken, usernameTaken, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (username, email, password_hash, role, title, joining_date, manager_id, reporting_to, skill_set)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.Username,
		newEmployee.Email,
		newEmployee.PasswordHash,
		newEmployee.Role,
		newEmployee.Title,
		newEmployee.JoiningDate,
		newEmployee.ManagerID,
		newEmployee.ReportingTo,
		skillSetParam(newEmployee.SkillSet),
	))
	if err != nil {
		if mapped := mapEmployeeConstraint(err); mapped != nil {
			return employee.Employee{}, mapped
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET username = $2, email = $3, password_hash = $4, role = $5, title = $6,
			manager_id = $7, reporting_to = $8, skill_set = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + employeeColumns

	updated, err := scanEmployee(q.QueryRow(ctx, query,
		emp.ID,
		emp.Username,
		emp.Email,
		emp.PasswordHash,
		emp.Role,
		emp.Title,
		emp.ManagerID,
		emp.ReportingTo,
		skillSetParam(emp.SkillSet),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		if mapped := mapEmployeeConstraint(err); mapped != nil {
			return employee.Employee{}, mapped
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee with id %d: %w", emp.ID, err)
	}
	return updated, nil
}

// Delete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, e.db)

	cmd, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee with id %d: %w", id, err)
	}
	if cmd.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return collectEmployees(rows)
}

// ListByManagerID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListByManagerID(ctx context.Context, managerID int64) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE manager_id = $1 ORDER BY id ASC`

	rows, err := q.Query(ctx, query, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees of manager %d: %w", managerID, err)
	}
	return collectEmployees(rows)
}

// ListNewest implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListNewest(ctx context.Context, limit int) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY id DESC LIMIT $1`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list newest employees: %w", err)
	}
	return collectEmployees(rows)
}

// ListByBirthday implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListByBirthday(ctx context.Context, date time.Time) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT e.id, e.username, e.email, e.password_hash, e.role, e.title, e.joining_date,
			e.manager_id, e.reporting_to, e.skill_set, e.created_at, e.updated_at
		FROM employees e
		JOIN employee_profiles p ON p.employee_id = e.id
		WHERE EXTRACT(MONTH FROM p.birth_date) = $1
		  AND EXTRACT(DAY FROM p.birth_date) = $2
		ORDER BY e.id ASC
	`

	rows, err := q.Query(ctx, query, int(date.Month()), date.Day())
	if err != nil {
		return nil, fmt.Errorf("failed to list birthday employees: %w", err)
	}
	return collectEmployees(rows)
}
