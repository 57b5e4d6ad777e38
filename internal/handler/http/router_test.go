package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clayfin/hr-records-go/internal/domain/attendance"
	"github.com/clayfin/hr-records-go/internal/domain/auth"
	"github.com/clayfin/hr-records-go/internal/domain/employee"
	"github.com/clayfin/hr-records-go/internal/handler/http/response"
	"github.com/clayfin/hr-records-go/internal/pkg/clock"
	"github.com/clayfin/hr-records-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type stubAuthService struct {
	jwtService jwt.Service
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if req.Email != "hr@example.com" || req.Password != "password123" {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	token, exp, err := s.jwtService.GenerateAccessToken(1, req.Email, employee.RoleHR)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return auth.TokenResponse{AccessToken: token, TokenType: "Bearer", ExpiresAt: exp, EmployeeID: 1, Role: employee.RoleHR}, nil
}

func (s *stubAuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	s.jwtService.RevokeToken(jti, expiresAt)
	return nil
}

type stubAttendanceService struct {
	attendance.AttendanceService
	checkedIn  []int64
	checkInErr error
	monthlyReq attendance.MonthlyAttendanceRequest
	deletedID  int64
}

func (s *stubAttendanceService) CheckIn(ctx context.Context, employeeID int64) (attendance.AttendanceResponse, error) {
	if s.checkInErr != nil {
		return attendance.AttendanceResponse{}, s.checkInErr
	}
	s.checkedIn = append(s.checkedIn, employeeID)
	return attendance.AttendanceResponse{ID: 10, EmployeeID: employeeID, CheckIn: "09:00:00", CheckedIn: true}, nil
}

func (s *stubAttendanceService) GetAttendanceByMonthAndEmployeeID(ctx context.Context, req attendance.MonthlyAttendanceRequest) (attendance.MonthlyAttendanceResponse, error) {
	s.monthlyReq = req
	return attendance.MonthlyAttendanceResponse{EmployeeID: req.EmployeeID, Month: req.Month, Year: req.Year}, nil
}

func (s *stubAttendanceService) DeleteAttendance(ctx context.Context, id int64) (attendance.AttendanceResponse, error) {
	s.deletedID = id
	return attendance.AttendanceResponse{ID: id}, nil
}

func (s *stubAttendanceService) GetAttendanceByID(ctx context.Context, id int64) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
}

type stubEmployeeService struct {
	employee.EmployeeService
	createdBy int64
}

func (s *stubEmployeeService) GetAllEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return nil, employee.ErrNoEmployees
}

func (s *stubEmployeeService) AddEmployee(ctx context.Context, hrID int64, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	s.createdBy = hrID
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.EmployeeResponse{ID: 5, Username: req.Username, Email: req.Email}, nil
}

type routerFixture struct {
	handler    http.Handler
	jwtService jwt.Service
	attendance *stubAttendanceService
	employees  *stubEmployeeService
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	jwtService := jwt.NewJWTService(handlerTestSecret, time.Hour)
	att := &stubAttendanceService{}
	emp := &stubEmployeeService{}
	clk := clock.Fixed(time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC))

	r := NewRouter(RouterOptions{AllowedOrigins: []string{"http://localhost:3000"}},
		jwtService,
		NewAuthHandler(&stubAuthService{jwtService: jwtService}),
		NewEmployeeHandler(emp),
		NewAttendanceHandler(att, clk),
	)
	return &routerFixture{handler: r, jwtService: jwtService, attendance: att, employees: emp}
}

func (f *routerFixture) token(t *testing.T, id int64, role employee.Role) string {
	t.Helper()
	token, _, err := f.jwtService.GenerateAccessToken(id, "someone@example.com", role)
	require.NoError(t, err)
	return token
}

func (f *routerFixture) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec, resp
}

func TestLogin(t *testing.T) {
	f := newRouterFixture(t)

	rec, resp := f.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "hr@example.com", "password": "password123"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	rec, resp = f.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "hr@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
}

func TestLogin_MalformedBody(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	f := newRouterFixture(t)

	rec, _ := f.do(t, http.MethodPost, "/api/v1/attendances/check-in", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/api/v1/attendances/check-in", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	foreign, _, err := jwt.NewJWTService("another-secret", time.Hour).GenerateAccessToken(3, "x@example.com", employee.RoleHR)
	require.NoError(t, err)
	rec, _ = f.do(t, http.MethodPost, "/api/v1/attendances/check-in", foreign, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, f.attendance.checkedIn)
}

func TestCheckIn_UsesCallerIdentity(t *testing.T) {
	f := newRouterFixture(t)

	rec, resp := f.do(t, http.MethodPost, "/api/v1/attendances/check-in", f.token(t, 7, employee.RoleEmployee), nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, []int64{7}, f.attendance.checkedIn)
}

func TestCheckIn_ConflictMapsTo409(t *testing.T) {
	f := newRouterFixture(t)
	f.attendance.checkInErr = attendance.ErrCheckOutFirst

	rec, resp := f.do(t, http.MethodPost, "/api/v1/attendances/check-in", f.token(t, 7, employee.RoleEmployee), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, attendance.ErrCheckOutFirst.Error(), resp.Error.Message)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newRouterFixture(t)
	token := f.token(t, 7, employee.RoleEmployee)

	rec, _ := f.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe(t *testing.T) {
	f := newRouterFixture(t)

	rec, resp := f.do(t, http.MethodGet, "/api/v1/auth/me", f.token(t, 7, employee.RoleManager), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(7), data["employee_id"])
	assert.Equal(t, "MANAGER", data["role"])
}

func TestRoleEnforcement(t *testing.T) {
	tests := []struct {
		name   string
		role   employee.Role
		method string
		path   string
		body   any
		want   int
	}{
		{"employee cannot delete attendance", employee.RoleEmployee, http.MethodDelete, "/api/v1/attendances/3", nil, http.StatusForbidden},
		{"hr deletes attendance", employee.RoleHR, http.MethodDelete, "/api/v1/attendances/3", nil, http.StatusOK},
		{"employee cannot list directory", employee.RoleEmployee, http.MethodGet, "/api/v1/employees", nil, http.StatusForbidden},
		{"manager lists directory", employee.RoleManager, http.MethodGet, "/api/v1/employees", nil, http.StatusNotFound},
		{"manager cannot create employee", employee.RoleManager, http.MethodPost, "/api/v1/employees",
			map[string]string{"username": "ravi", "email": "ravi@example.com", "password": "password123"}, http.StatusForbidden},
		{"hr creates employee", employee.RoleHR, http.MethodPost, "/api/v1/employees",
			map[string]string{"username": "ravi", "email": "ravi@example.com", "password": "password123"}, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRouterFixture(t)
			rec, _ := f.do(t, tt.method, tt.path, f.token(t, 1, tt.role), tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestCreateEmployee_ActingHRFromToken(t *testing.T) {
	f := newRouterFixture(t)

	body := map[string]string{"username": "ravi", "email": "ravi@example.com", "password": "password123"}
	rec, _ := f.do(t, http.MethodPost, "/api/v1/employees", f.token(t, 42, employee.RoleHR), body)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(42), f.employees.createdBy)
}

func TestCreateEmployee_ValidationMapsTo422(t *testing.T) {
	f := newRouterFixture(t)

	body := map[string]string{"username": "r", "email": "nope", "password": "short"}
	rec, resp := f.do(t, http.MethodPost, "/api/v1/employees", f.token(t, 1, employee.RoleHR), body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, resp.Error.Details, "username")
	assert.Contains(t, resp.Error.Details, "email")
	assert.Contains(t, resp.Error.Details, "password")
}

func TestEmptyListMapsTo404(t *testing.T) {
	f := newRouterFixture(t)

	rec, resp := f.do(t, http.MethodGet, "/api/v1/employees", f.token(t, 1, employee.RoleHR), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, employee.ErrNoEmployees.Error(), resp.Error.Message)
}

func TestAttendanceByID(t *testing.T) {
	f := newRouterFixture(t)
	token := f.token(t, 1, employee.RoleEmployee)

	rec, _ := f.do(t, http.MethodGet, "/api/v1/attendances/99", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, resp := f.do(t, http.MethodGet, "/api/v1/attendances/abc", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, resp.Error.Details, "id")
}

func TestMonthly_DefaultsAndOverrides(t *testing.T) {
	f := newRouterFixture(t)
	token := f.token(t, 1, employee.RoleEmployee)

	rec, _ := f.do(t, http.MethodGet, "/api/v1/attendances/employees/7/monthly", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, attendance.MonthlyAttendanceRequest{EmployeeID: 7, Month: 3, Year: 2024}, f.attendance.monthlyReq)

	rec, _ = f.do(t, http.MethodGet, "/api/v1/attendances/employees/7/monthly?month=2&year=2023", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, attendance.MonthlyAttendanceRequest{EmployeeID: 7, Month: 2, Year: 2023}, f.attendance.monthlyReq)

	rec, resp := f.do(t, http.MethodGet, "/api/v1/attendances/employees/7/monthly?month=feb", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, resp.Error.Details, "month")
}
