package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fundlift/fundlift/internal/auth"
	"github.com/fundlift/fundlift/internal/authz"
	"github.com/fundlift/fundlift/internal/identity"
	"github.com/fundlift/fundlift/internal/notifications"
	"github.com/fundlift/fundlift/internal/observability"
	"github.com/fundlift/fundlift/internal/platform/httpx"
	"github.com/fundlift/fundlift/internal/shared"
)

// Policies declares the access requirements of protected operations,
// resolved by direct lookup at mount time. Every entry here is mounted by
// NewRouter.
var Policies = authz.PolicySet{
	"users.admin":   authz.RequirePermissions(authz.PermUsersManage),
	"notifications": authz.RequirePermissions(authz.PermNotificationsManage),
}

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger               *slog.Logger
	Config               *Config
	Metrics              *observability.Metrics
	TokenIssuer          *auth.Issuer
	Guard                *authz.Guard
	Table                *authz.Table
	IdentityHandler      *identity.Handler
	NotificationsHandler *notifications.Handler
}

// NewRouter builds the chi router with the full middleware chain.
func NewRouter(p RouterParams) chi.Router {
	r := chi.NewRouter()
	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  p.Logger,
		Config:  p.Config,
		Metrics: p.Metrics,
	}) {
		r.Use(mw)
	}
	r.Use(auth.Middleware(p.TokenIssuer))

	guard := authz.Middleware{Guard: p.Guard, Logger: p.Logger}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if p.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", p.Metrics.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		r.With(LoginRateLimit()).Group(func(r chi.Router) {
			p.IdentityHandler.MountRoutes(r)
		})
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Use(guard.Require(Policies.Lookup("notifications")))
		p.NotificationsHandler.MountRoutes(r)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(guard.Require(Policies.Lookup("users.admin")))
		p.IdentityHandler.MountAdminRoutes(r)
	})

	// Who am I and what may I do; useful for client-side menu rendering.
	r.With(guard.Require(authz.Policy{Roles: authz.Roles()})).
		Get("/me", func(w http.ResponseWriter, r *http.Request) {
			principal := shared.PrincipalFromContext(r.Context())
			role := authz.Role(principal.Role)
			httpx.JSON(w, http.StatusOK, map[string]any{
				"userId":      principal.UserID,
				"email":       principal.Email,
				"role":        role,
				"permissions": p.Table.PermissionsOf(role),
			})
		})

	return r
}
