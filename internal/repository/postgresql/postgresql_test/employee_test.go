package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/clayfin/hr-records-go/internal/domain/employee"
	"github.com/clayfin/hr-records-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewEmployeeRepository(db)
	ctx := context.Background()

	created := createEmployee(t, repo, "asha", employee.RoleEmployee)
	assert.NotZero(t, created.ID)
	assert.Equal(t, []string{"go"}, created.SkillSet)
	assert.Nil(t, created.ManagerID)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, byID.Email)

	byEmail, err := repo.GetByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = repo.GetByID(ctx, created.ID+100)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_UniqueConstraints(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewEmployeeRepository(db)
	ctx := context.Background()

	createEmployee(t, repo, "asha", employee.RoleEmployee)

	_, err := repo.Create(ctx, employee.Employee{Username: "asha2", Email: "asha@example.com", PasswordHash: "x", Role: employee.RoleEmployee})
	assert.ErrorIs(t, err, employee.ErrEmailExists)

	_, err = repo.Create(ctx, employee.Employee{Username: "asha", Email: "other@example.com", PasswordHash: "x", Role: employee.RoleEmployee})
	assert.ErrorIs(t, err, employee.ErrUsernameExists)

	emailTaken, usernameTaken, err := repo.ExistsByEmailOrUsername(ctx, "asha@example.com", "someone", 0)
	require.NoError(t, err)
	assert.True(t, emailTaken)
	assert.False(t, usernameTaken)
}

func TestEmployeeRepository_ManagerAndReports(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewEmployeeRepository(db)
	ctx := context.Background()

	manager := createEmployee(t, repo, "meera", employee.RoleManager)
	emp := createEmployee(t, repo, "ravi", employee.RoleEmployee)

	emp.ManagerID = &manager.ID
	emp.ReportingTo = &manager.Username
	emp.SkillSet = append(emp.SkillSet, "sql")
	updated, err := repo.Update(ctx, emp)
	require.NoError(t, err)
	assert.Equal(t, manager.ID, *updated.ManagerID)
	assert.Equal(t, []string{"go", "sql"}, updated.SkillSet)

	reports, err := repo.ListByManagerID(ctx, manager.ID)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, emp.ID, reports[0].ID)

	require.NoError(t, repo.Delete(ctx, manager.ID))
	orphan, err := repo.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.ManagerID)

	assert.ErrorIs(t, repo.Delete(ctx, manager.ID), employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_ListNewestAndBirthdays(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewEmployeeRepository(db)
	profiles := postgresql.NewProfileRepository(db)
	ctx := context.Background()

	first := createEmployee(t, repo, "first", employee.RoleEmployee)
	second := createEmployee(t, repo, "second", employee.RoleEmployee)
	third := createEmployee(t, repo, "third", employee.RoleEmployee)

	newest, err := repo.ListNewest(ctx, 2)
	require.NoError(t, err)
	require.Len(t, newest, 2)
	assert.Equal(t, third.ID, newest[0].ID)
	assert.Equal(t, second.ID, newest[1].ID)

	birth := time.Date(1990, time.March, 15, 0, 0, 0, 0, time.UTC)
	_, err = profiles.Create(ctx, employee.Profile{EmployeeID: first.ID, FullName: "First Person", BirthDate: &birth})
	require.NoError(t, err)

	_, err = profiles.Create(ctx, employee.Profile{EmployeeID: first.ID, FullName: "Again"})
	assert.ErrorIs(t, err, employee.ErrProfileExists)

	today := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	birthdays, err := repo.ListByBirthday(ctx, today)
	require.NoError(t, err)
	require.Len(t, birthdays, 1)
	assert.Equal(t, first.ID, birthdays[0].ID)

	require.NoError(t, repo.Delete(ctx, first.ID))
	_, err = profiles.GetByEmployeeID(ctx, first.ID)
	assert.ErrorIs(t, err, employee.ErrProfileNotFound)
}
