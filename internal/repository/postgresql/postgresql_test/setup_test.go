package postgresql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/clayfin/hr-records-go/internal/domain/employee"
	"github.com/clayfin/hr-records-go/internal/pkg/database"
	"github.com/clayfin/hr-records-go/internal/repository/postgresql"
	"github.com/clayfin/hr-records-go/migrations"
	"github.com/stretchr/testify/require"
)

// newTestDB connects to TEST_DATABASE_URL, applies migrations and empties
// every table. Tests are skipped when the variable is unset.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolConfig{MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	_, err = postgresql.ApplyMigrations(ctx, db, migrations.FS)
	require.NoError(t, err)

	_, err = db.Exec(ctx, "TRUNCATE TABLE attendances, employee_profiles, employees RESTART IDENTITY CASCADE")
	require.NoError(t, err)

	return db
}

func createEmployee(t *testing.T, repo employee.EmployeeRepository, username string, role employee.Role) employee.Employee {
	t.Helper()

	emp, err := repo.Create(context.Background(), employee.Employee{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
		Role:         role,
		Title:        "Engineer",
		JoiningDate:  time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC),
		SkillSet:     []string{"go"},
	})
	require.NoError(t, err)
	return emp
}
