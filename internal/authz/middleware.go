package authz

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fundlift/fundlift/internal/platform/httpx"
)

// Middleware wires policy enforcement for HTTP handlers.
type Middleware struct {
	Guard  *Guard
	Logger *slog.Logger
}

// Require evaluates the policy before the wrapped handler runs. Callers
// without an authenticated principal get 401, callers whose role fails the
// policy get 403 with the denial detail.
func (m Middleware) Require(policy Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := m.Guard.Authorize(r.Context(), policy)
			if err == nil {
				next.ServeHTTP(w, r)
				return
			}
			var denied *DeniedError
			switch {
			case errors.Is(err, ErrNoPrincipal):
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
			case errors.As(err, &denied):
				httpx.Problem(w, http.StatusForbidden, "Forbidden", denied.Error())
			default:
				if m.Logger != nil {
					m.Logger.Error("authorize", slog.Any("error", err))
				}
				httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
			}
		})
	}
}

// RequireRoles is shorthand for Require with a role-only policy.
func (m Middleware) RequireRoles(roles ...Role) func(http.Handler) http.Handler {
	return m.Require(RequireRoles(roles...))
}

// RequirePermissions is shorthand for Require with a permission-only policy.
func (m Middleware) RequirePermissions(perms ...Permission) func(http.Handler) http.Handler {
	return m.Require(RequirePermissions(perms...))
}
