package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clayfin/hr-records-go/internal/domain/attendance"
	"github.com/clayfin/hr-records-go/internal/pkg/clock"
	"github.com/clayfin/hr-records-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	uniqueViolation = "23505"

	openAttendanceConstraint = "attendances_one_open_per_employee"

	attendanceColumns = `id, employee_id, date, check_in, check_out, spent_seconds, created_at, updated_at`
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func timeParam(t clock.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: t.Microseconds(), Valid: true}
}

func nullableTimeParam(t *clock.TimeOfDay) pgtype.Time {
	if t == nil {
		return pgtype.Time{}
	}
	return timeParam(*t)
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var (
		att          attendance.Attendance
		checkIn      pgtype.Time
		checkOut     pgtype.Time
		spentSeconds int64
	)
	if err := row.Scan(&att.ID, &att.EmployeeID, &att.Date, &checkIn, &checkOut, &spentSeconds, &att.CreatedAt, &att.UpdatedAt); err != nil {
		return attendance.Attendance{}, err
	}

	att.Date = clock.DateOf(att.Date)
	att.CheckIn = clock.FromMicroseconds(checkIn.Microseconds)
	if checkOut.Valid {
		out := clock.FromMicroseconds(checkOut.Microseconds)
		att.CheckOut = &out
	}
	att.SpentTime = time.Duration(spentSeconds) * time.Second
	return att, nil
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	defer rows.Close()

	var result []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		result = append(result, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}
	return result, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (employee_id, date, check_in, check_out, spent_seconds)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		newAttendance.EmployeeID,
		clock.DateOf(newAttendance.Date),
		timeParam(newAttendance.CheckIn),
		nullableTimeParam(newAttendance.CheckOut),
		int64(newAttendance.SpentTime/time.Second),
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == openAttendanceConstraint {
			return attendance.Attendance{}, attendance.ErrCheckOutFirst
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id int64) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE id = $1`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}

	return att, nil
}

// GetLatestByEmployeeID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetLatestByEmployeeID(ctx context.Context, employeeID int64) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		ORDER BY (check_out IS NULL) DESC, id DESC
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest attendance: %w", err)
	}

	return &att, nil
}

// ListByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND date = $2
		ORDER BY check_in ASC, id ASC
	`

	rows, err := q.Query(ctx, query, employeeID, clock.DateOf(date))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances by date: %w", err)
	}
	return collectAttendances(rows)
}

// ListByEmployeeAndDateRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployeeAndDateRange(ctx context.Context, employeeID int64, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC, check_in ASC, id ASC
	`

	rows, err := q.Query(ctx, query, employeeID, clock.DateOf(from), clock.DateOf(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances by date range: %w", err)
	}
	return collectAttendances(rows)
}

// ListByEmployeeID implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployeeID(ctx context.Context, employeeID int64) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		ORDER BY date DESC, check_in DESC, id DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances by employee: %w", err)
	}
	return collectAttendances(rows)
}

// ListOpenBefore implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListOpenBefore(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE check_out IS NULL AND date < $1
		ORDER BY id ASC
	`

	rows, err := q.Query(ctx, query, clock.DateOf(date))
	if err != nil {
		return nil, fmt.Errorf("failed to list stale attendances: %w", err)
	}
	return collectAttendances(rows)
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET date = $2, check_in = $3, check_out = $4, spent_seconds = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + attendanceColumns

	updated, err := scanAttendance(q.QueryRow(ctx, query,
		att.ID,
		clock.DateOf(att.Date),
		timeParam(att.CheckIn),
		nullableTimeParam(att.CheckOut),
		int64(att.SpentTime/time.Second),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == openAttendanceConstraint {
			return attendance.Attendance{}, attendance.ErrCheckOutFirst
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return updated, nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepository) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	cmd, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
