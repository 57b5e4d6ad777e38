package middleware

import (
	"net/http"
	"slices"

	"github.com/clayfin/hr-records-go/internal/domain/auth"
	"github.com/clayfin/hr-records-go/internal/domain/employee"
	"github.com/clayfin/hr-records-go/internal/handler/http/response"
)

// RequireRole lets the request through only when the caller holds one of roles.
func RequireRole(roles ...employee.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := ClaimsFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if !slices.Contains(roles, claims.Role) {
				response.HandleError(w, auth.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireHR is RequireRole(employee.RoleHR).
func RequireHR(next http.Handler) http.Handler {
	return RequireRole(employee.RoleHR)(next)
}
