package auth

import (
	"net/http"
	"strings"

	"github.com/fundlift/fundlift/internal/platform/httpx"
	"github.com/fundlift/fundlift/internal/shared"
)

// Middleware validates bearer tokens and attaches the authenticated
// principal to the request context. Requests without an Authorization
// header pass through unauthenticated; the authorization guard decides
// whether that is acceptable for the operation. A present but invalid or
// expired token is rejected here.
func Middleware(issuer *Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid authorization header")
				return
			}
			claims, err := issuer.Parse(parts[1])
			if err != nil {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid or expired token")
				return
			}
			principal := &shared.Principal{
				UserID: claims.UserID,
				Email:  claims.Email,
				Role:   claims.Role,
			}
			next.ServeHTTP(w, r.WithContext(shared.ContextWithPrincipal(r.Context(), principal)))
		})
	}
}
