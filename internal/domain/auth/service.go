package auth

import (
	"context"
	"time"
)

type AuthService interface {
	// Login verifies the password and issues an access token
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// Logout revokes the token identified by jti until it expires
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}
