package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clayfin/hr-records-go/internal/domain/attendance"
	"github.com/clayfin/hr-records-go/internal/domain/employee"
	"github.com/clayfin/hr-records-go/internal/pkg/clock"
	"github.com/clayfin/hr-records-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	march14 = time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)
	march15 = time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
)

func TestAttendanceRepository_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	emp := createEmployee(t, postgresql.NewEmployeeRepository(db), "asha", employee.RoleEmployee)
	repo := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()

	out := clock.NewTimeOfDay(17, 30, 15)
	created, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID: emp.ID,
		Date:       march15,
		CheckIn:    clock.NewTimeOfDay(9, 0, 0),
		CheckOut:   &out,
		SpentTime:  8*time.Hour + 30*time.Minute + 15*time.Second,
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, march15, got.Date)
	assert.Equal(t, clock.NewTimeOfDay(9, 0, 0), got.CheckIn)
	require.NotNil(t, got.CheckOut)
	assert.Equal(t, out, *got.CheckOut)
	assert.Equal(t, 8*time.Hour+30*time.Minute+15*time.Second, got.SpentTime)
	assert.False(t, got.IsOpen())

	_, err = repo.GetByID(ctx, created.ID+1)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceRepository_OneOpenRowPerEmployee(t *testing.T) {
	db := newTestDB(t)
	emp := createEmployee(t, postgresql.NewEmployeeRepository(db), "asha", employee.RoleEmployee)
	repo := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, attendance.Attendance{EmployeeID: emp.ID, Date: march15, CheckIn: clock.NewTimeOfDay(9, 0, 0)})
	require.NoError(t, err)

	_, err = repo.Create(ctx, attendance.Attendance{EmployeeID: emp.ID, Date: march15, CheckIn: clock.NewTimeOfDay(10, 0, 0)})
	assert.ErrorIs(t, err, attendance.ErrCheckOutFirst)
}

func TestAttendanceRepository_LatestPrefersOpenRow(t *testing.T) {
	db := newTestDB(t)
	emp := createEmployee(t, postgresql.NewEmployeeRepository(db), "asha", employee.RoleEmployee)
	repo := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()

	latest, err := repo.GetLatestByEmployeeID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Nil(t, latest)

	open, err := repo.Create(ctx, attendance.Attendance{EmployeeID: emp.ID, Date: march15, CheckIn: clock.NewTimeOfDay(14, 0, 0)})
	require.NoError(t, err)

	out := clock.NewTimeOfDay(10, 0, 0)
	_, err = repo.Create(ctx, attendance.Attendance{EmployeeID: emp.ID, Date: march15, CheckIn: clock.NewTimeOfDay(9, 0, 0), CheckOut: &out, SpentTime: time.Hour})
	require.NoError(t, err)

	latest, err = repo.GetLatestByEmployeeID(ctx, emp.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, open.ID, latest.ID)
}

func TestAttendanceRepository_Listing(t *testing.T) {
	db := newTestDB(t)
	emp := createEmployee(t, postgresql.NewEmployeeRepository(db), "asha", employee.RoleEmployee)
	repo := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()

	closed := func(date time.Time, in, out clock.TimeOfDay) {
		_, err := repo.Create(ctx, attendance.Attendance{EmployeeID: emp.ID, Date: date, CheckIn: in, CheckOut: &out, SpentTime: clock.Elapsed(in, out)})
		require.NoError(t, err)
	}
	closed(march15, clock.NewTimeOfDay(14, 0, 0), clock.NewTimeOfDay(18, 0, 0))
	closed(march15, clock.NewTimeOfDay(9, 0, 0), clock.NewTimeOfDay(12, 0, 0))
	_, err := repo.Create(ctx, attendance.Attendance{EmployeeID: emp.ID, Date: march14, CheckIn: clock.NewTimeOfDay(9, 30, 0)})
	require.NoError(t, err)

	day, err := repo.ListByEmployeeAndDate(ctx, emp.ID, march15)
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, clock.NewTimeOfDay(9, 0, 0), day[0].CheckIn, "rows ordered by check-in")

	month, err := repo.ListByEmployeeAndDateRange(ctx, emp.ID, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, month, 3)
	assert.Equal(t, march14, month[0].Date)

	all, err := repo.ListByEmployeeID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	stale, err := repo.ListOpenBefore(ctx, march15)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, march14, stale[0].Date)
}

func TestAttendanceRepository_UpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	emp := createEmployee(t, postgresql.NewEmployeeRepository(db), "asha", employee.RoleEmployee)
	repo := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()

	row, err := repo.Create(ctx, attendance.Attendance{EmployeeID: emp.ID, Date: march15, CheckIn: clock.NewTimeOfDay(9, 0, 0)})
	require.NoError(t, err)

	out := clock.NewTimeOfDay(13, 0, 0)
	row.CheckOut = &out
	row.SpentTime = 4 * time.Hour
	updated, err := repo.Update(ctx, row)
	require.NoError(t, err)
	assert.False(t, updated.IsOpen())
	assert.Equal(t, 4*time.Hour, updated.SpentTime)

	require.NoError(t, repo.Delete(ctx, row.ID))
	assert.ErrorIs(t, repo.Delete(ctx, row.ID), attendance.ErrAttendanceNotFound)

	row.ID = 999
	_, err = repo.Update(ctx, row)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceRepository_DeletedWithEmployee(t *testing.T) {
	db := newTestDB(t)
	employees := postgresql.NewEmployeeRepository(db)
	emp := createEmployee(t, employees, "asha", employee.RoleEmployee)
	repo := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, attendance.Attendance{EmployeeID: emp.ID, Date: march15, CheckIn: clock.NewTimeOfDay(9, 0, 0)})
	require.NoError(t, err)

	require.NoError(t, employees.Delete(ctx, emp.ID))
	rows, err := repo.ListByEmployeeID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	emp := createEmployee(t, postgresql.NewEmployeeRepository(db), "asha", employee.RoleEmployee)
	repo := postgresql.NewAttendanceRepository(db)
	tx := postgresql.NewTransactor(db)
	ctx := context.Background()
	boom := errors.New("abort")

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := repo.Create(ctx, attendance.Attendance{EmployeeID: emp.ID, Date: march15, CheckIn: clock.NewTimeOfDay(9, 0, 0)}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	rows, err := repo.ListByEmployeeID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
