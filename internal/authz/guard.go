package authz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fundlift/fundlift/internal/graph"
	"github.com/fundlift/fundlift/internal/shared"
)

// ErrNoPrincipal is returned when a protected operation is invoked without
// an authenticated principal or without a role claim.
var ErrNoPrincipal = errors.New("authz: no authenticated principal")

// DeniedError reports an authenticated caller that does not satisfy the
// operation's policy. It carries the required roles or the exact missing
// permission subset so clients can explain the denial precisely.
type DeniedError struct {
	RequiredRoles      []Role
	MissingPermissions []Permission
}

func (e *DeniedError) Error() string {
	if len(e.RequiredRoles) > 0 {
		names := make([]string, len(e.RequiredRoles))
		for i, r := range e.RequiredRoles {
			names[i] = string(r)
		}
		return "authz: requires one of the following roles: " + strings.Join(names, ", ")
	}
	names := make([]string, len(e.MissingPermissions))
	for i, p := range e.MissingPermissions {
		names[i] = string(p)
	}
	return "authz: missing required permissions: " + strings.Join(names, ", ")
}

// Guard evaluates access policies against the authenticated caller.
type Guard struct {
	table *Table
}

// NewGuard constructs a guard over the given role/permission table.
func NewGuard(table *Table) (*Guard, error) {
	if table == nil {
		return nil, fmt.Errorf("authz: guard requires a permission table")
	}
	return &Guard{table: table}, nil
}

// Authorize applies the policy to the caller found in ctx. An empty policy
// allows unconditionally. Role and permission requirements are independent
// gates; both must pass when both are declared. The guard never mutates
// the request or the policy.
func (g *Guard) Authorize(ctx context.Context, policy Policy) error {
	if policy.Empty() {
		return nil
	}

	principal := resolvePrincipal(ctx)
	if principal == nil || principal.Role == "" {
		return ErrNoPrincipal
	}
	role := Role(principal.Role)

	if len(policy.Roles) > 0 {
		held := false
		for _, r := range policy.Roles {
			if r == role {
				held = true
				break
			}
		}
		if !held {
			return &DeniedError{RequiredRoles: policy.Roles}
		}
	}

	if len(policy.Permissions) > 0 {
		var missing []Permission
		for _, p := range policy.Permissions {
			if !g.table.HasPermission(role, p) {
				missing = append(missing, p)
			}
		}
		if len(missing) > 0 {
			return &DeniedError{MissingPermissions: missing}
		}
	}

	return nil
}

// resolvePrincipal normalizes the two request shapes to a single principal
// lookup. Plain requests carry the principal directly in the context; graph
// operations carry it inside the graph request context. This is the only
// place that branches on the context shape.
func resolvePrincipal(ctx context.Context) *shared.Principal {
	if p := shared.PrincipalFromContext(ctx); p != nil {
		return p
	}
	if rc := graph.FromContext(ctx); rc != nil {
		return rc.Principal
	}
	return nil
}
