package auth

import (
	"context"
	"testing"
	"time"

	"github.com/clayfin/hr-records-go/internal/domain/employee"
	"github.com/clayfin/hr-records-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type recordingEmployeeRepo struct {
	fakeEmployeeRepo
	created []employee.Employee
}

func (r *recordingEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	e.ID = int64(len(r.created) + 1)
	r.created = append(r.created, e)
	r.byEmail[e.Email] = e
	return e, nil
}

func TestEnsureHR(t *testing.T) {
	clk := clock.Fixed(time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC))
	repo := &recordingEmployeeRepo{fakeEmployeeRepo: fakeEmployeeRepo{byEmail: map[string]employee.Employee{}}}
	hr := BootstrapHR{Email: "HR@Example.com", Username: "hr", Password: "password123"}

	created, err := EnsureHR(context.Background(), repo, clk, hr)
	require.NoError(t, err)
	assert.True(t, created)
	require.Len(t, repo.created, 1)

	got := repo.created[0]
	assert.Equal(t, "hr@example.com", got.Email)
	assert.Equal(t, employee.RoleHR, got.Role)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), got.JoiningDate)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("password123")))

	created, err = EnsureHR(context.Background(), repo, clk, hr)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, repo.created, 1)
}

func TestEnsureHR_ShortPassword(t *testing.T) {
	repo := &recordingEmployeeRepo{fakeEmployeeRepo: fakeEmployeeRepo{byEmail: map[string]employee.Employee{}}}

	_, err := EnsureHR(context.Background(), repo, clock.Fixed(time.Now()), BootstrapHR{Email: "hr@example.com", Username: "hr", Password: "short"})
	assert.Error(t, err)
	assert.Empty(t, repo.created)
}
