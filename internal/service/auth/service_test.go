package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clayfin/hr-records-go/internal/domain/auth"
	"github.com/clayfin/hr-records-go/internal/domain/employee"
	"github.com/clayfin/hr-records-go/internal/pkg/jwt"
	"github.com/clayfin/hr-records-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	byEmail map[string]employee.Employee
	err     error
}

func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	if f.err != nil {
		return employee.Employee{}, f.err
	}
	emp, ok := f.byEmail[email]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func newAuthFixture(t *testing.T) (auth.AuthService, jwt.Service, *fakeEmployeeRepo) {
	t.Helper()

	hash, err := HashPassword("password123")
	require.NoError(t, err)

	repo := &fakeEmployeeRepo{byEmail: map[string]employee.Employee{
		"asha@example.com":   {ID: 7, Email: "asha@example.com", PasswordHash: hash, Role: employee.RoleManager},
		"nopass@example.com": {ID: 8, Email: "nopass@example.com", Role: employee.RoleEmployee},
	}}
	jwtSvc := jwt.NewJWTService(testSecret, time.Hour)
	return NewAuthService(repo, jwtSvc), jwtSvc, repo
}

func TestLogin_Success(t *testing.T) {
	svc, jwtSvc, _ := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Email: "  Asha@Example.com ", Password: "password123"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(7), resp.EmployeeID)
	assert.Equal(t, employee.RoleManager, resp.Role)
	assert.Greater(t, resp.ExpiresAt, time.Now().Unix())

	token, err := jwtSvc.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(7), claims["employee_id"])
	assert.Equal(t, "MANAGER", claims["role"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	tests := []struct {
		name string
		req  auth.LoginRequest
	}{
		{"unknown email", auth.LoginRequest{Email: "ghost@example.com", Password: "password123"}},
		{"wrong password", auth.LoginRequest{Email: "asha@example.com", Password: "password124"}},
		{"no password set", auth.LoginRequest{Email: "nopass@example.com", Password: "password123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newAuthFixture(t)
			_, err := svc.Login(context.Background(), tt.req)
			assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		})
	}
}

func TestLogin_Validation(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "not-an-email"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestLogin_RepositoryFailure(t *testing.T) {
	svc, _, repo := newAuthFixture(t)
	repo.err = errors.New("connection reset")

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "asha@example.com", Password: "password123"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogout(t *testing.T) {
	svc, jwtSvc, _ := newAuthFixture(t)

	require.NoError(t, svc.Logout(context.Background(), "jti-1", time.Now().Add(time.Hour)))
	assert.True(t, jwtSvc.IsTokenRevoked("jti-1"))

	assert.ErrorIs(t, svc.Logout(context.Background(), "", time.Now()), auth.ErrInvalidToken)
}
