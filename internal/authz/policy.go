package authz

// Policy declares what an operation requires from its caller. Roles are a
// disjunction: the caller must hold at least one. Permissions are a
// conjunction: the caller's role must hold all of them. An empty policy
// allows every caller.
type Policy struct {
	Roles       []Role
	Permissions []Permission
}

// Empty reports whether the policy places no requirement on the caller.
func (p Policy) Empty() bool {
	return len(p.Roles) == 0 && len(p.Permissions) == 0
}

// RequireRoles builds a policy demanding one of the given roles.
func RequireRoles(roles ...Role) Policy {
	return Policy{Roles: roles}
}

// RequirePermissions builds a policy demanding all given permissions.
func RequirePermissions(perms ...Permission) Policy {
	return Policy{Permissions: perms}
}

// PolicySet maps operation identifiers to their access policies. Operations
// register their requirements here once at startup; the guard resolves the
// policy by direct lookup instead of runtime introspection.
type PolicySet map[string]Policy

// Lookup returns the policy for an operation. Unregistered operations get
// the empty policy and are unrestricted.
func (s PolicySet) Lookup(operation string) Policy {
	return s[operation]
}
