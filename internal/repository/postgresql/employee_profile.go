package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/clayfin/hr-records-go/internal/domain/employee"
	"github.com/clayfin/hr-records-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const profileColumns = `id, employee_id, full_name, birth_date, gender, phone_number, address,
	reporting_to, created_at, updated_at`

type profileRepositoryImpl struct {
	db *database.DB
}

func NewProfileRepository(db *database.DB) employee.ProfileRepository {
	return &profileRepositoryImpl{db: db}
}

func scanProfile(row pgx.Row) (employee.Profile, error) {
	var p employee.Profile
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.FullName, &p.BirthDate, &p.Gender, &p.PhoneNumber, &p.Address,
		&p.ReportingTo, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// GetByEmployeeID implements employee.ProfileRepository.
func (r *profileRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID int64) (employee.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM employee_profiles WHERE employee_id = $1`

	p, err := scanProfile(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Profile{}, employee.ErrProfileNotFound
		}
		return employee.Profile{}, fmt.Errorf("failed to get profile of employee %d: %w", employeeID, err)
	}
	return p, nil
}

// Create implements employee.ProfileRepository.
func (r *profileRepositoryImpl) Create(ctx context.Context, profile employee.Profile) (employee.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_profiles (employee_id, full_name, birth_date, gender, phone_number, address, reporting_to)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + profileColumns

	created, err := scanProfile(q.QueryRow(ctx, query,
		profile.EmployeeID,
		profile.FullName,
		profile.BirthDate,
		profile.Gender,
		profile.PhoneNumber,
		profile.Address,
		profile.ReportingTo,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return employee.Profile{}, employee.ErrProfileExists
		}
		return employee.Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}
	return created, nil
}

// Update implements employee.ProfileRepository.
func (r *profileRepositoryImpl) Update(ctx context.Context, profile employee.Profile) (employee.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employee_profiles
		SET full_name = $2, birth_date = $3, gender = $4, phone_number = $5, address = $6,
			reporting_to = $7, updated_at = NOW()
		WHERE employee_id = $1
		RETURNING ` + profileColumns

	updated, err := scanProfile(q.QueryRow(ctx, query,
		profile.EmployeeID,
		profile.FullName,
		profile.BirthDate,
		profile.Gender,
		profile.PhoneNumber,
		profile.Address,
		profile.ReportingTo,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Profile{}, employee.ErrProfileNotFound
		}
		return employee.Profile{}, fmt.Errorf("failed to update profile of employee %d: %w", profile.EmployeeID, err)
	}
	return updated, nil
}
