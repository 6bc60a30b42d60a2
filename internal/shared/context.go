package shared

import "context"

// Principal describes the authenticated caller attached to a request after
// token verification. Role is the raw role claim; interpretation of the
// value belongs to the authz package.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

type principalContextKey struct{}

// ContextWithPrincipal stores the authenticated principal in context.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext extracts the authenticated principal from context.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalContextKey{}).(*Principal)
	return p
}
