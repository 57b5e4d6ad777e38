package middleware

import (
	"context"
	"time"

	"github.com/clayfin/hr-records-go/internal/domain/auth"
	"github.com/clayfin/hr-records-go/internal/domain/employee"
	"github.com/go-chi/jwtauth/v5"
)

// Claims is the caller identity carried by an access token.
type Claims struct {
	EmployeeID int64
	Email      string
	Role       employee.Role
	TokenID    string
	ExpiresAt  time.Time
}

func ClaimsFromContext(ctx context.Context) (Claims, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return Claims{}, auth.ErrUnauthorized
	}

	// JSON numbers decode as float64.
	id, ok := claims["employee_id"].(float64)
	if !ok || id <= 0 {
		return Claims{}, auth.ErrInvalidToken
	}
	role, ok := claims["role"].(string)
	if !ok || !employee.Role(role).IsValid() {
		return Claims{}, auth.ErrInvalidToken
	}
	email, _ := claims["email"].(string)

	return Claims{
		EmployeeID: int64(id),
		Email:      email,
		Role:       employee.Role(role),
		TokenID:    token.JwtID(),
		ExpiresAt:  token.Expiration(),
	}, nil
}
