package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundlift/fundlift/internal/graph"
	"github.com/fundlift/fundlift/internal/shared"
)

func newGuard(t *testing.T) *Guard {
	t.Helper()
	guard, err := NewGuard(DefaultTable())
	require.NoError(t, err)
	return guard
}

func plainCtx(role Role) context.Context {
	return shared.ContextWithPrincipal(context.Background(), &shared.Principal{
		UserID: "42", Email: "user@test.local", Role: string(role),
	})
}

func graphCtx(role Role) context.Context {
	return graph.WithRequestContext(context.Background(), &graph.RequestContext{
		Operation: "approveCampaign",
		Args:      map[string]any{"campaignId": "c-1"},
		Principal: &shared.Principal{UserID: "42", Email: "user@test.local", Role: string(role)},
	})
}

func TestEmptyPolicyAllowsAnyone(t *testing.T) {
	guard := newGuard(t)
	assert.NoError(t, guard.Authorize(context.Background(), Policy{}))
}

func TestMissingPrincipalIsRejected(t *testing.T) {
	guard := newGuard(t)
	err := guard.Authorize(context.Background(), RequireRoles(RoleAdmin))
	assert.ErrorIs(t, err, ErrNoPrincipal)
}

func TestMissingRoleClaimIsRejected(t *testing.T) {
	guard := newGuard(t)
	ctx := shared.ContextWithPrincipal(context.Background(), &shared.Principal{UserID: "42"})
	err := guard.Authorize(ctx, RequireRoles(RoleAdmin))
	assert.ErrorIs(t, err, ErrNoPrincipal)
}

func TestRoleGateReportsRequiredRoles(t *testing.T) {
	guard := newGuard(t)
	policy := RequireRoles(RoleModerator, RoleAdmin)

	err := guard.Authorize(plainCtx(RoleSupporter), policy)
	var denied *DeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, []Role{RoleModerator, RoleAdmin}, denied.RequiredRoles)
	assert.Contains(t, denied.Error(), "moderator, admin")

	assert.NoError(t, guard.Authorize(plainCtx(RoleAdmin), policy))
}

func TestPermissionGateReportsExactMissingSubset(t *testing.T) {
	guard := newGuard(t)
	policy := RequirePermissions(PermCommentsModerate, PermUsersManage)

	// Creators can write comments but hold neither moderation grant.
	err := guard.Authorize(plainCtx(RoleCreator), policy)
	var denied *DeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, []Permission{PermCommentsModerate, PermUsersManage}, denied.MissingPermissions)

	// A role holding only part of the conjunction is told exactly what is
	// missing, not just "denied".
	table, err2 := NewTable(map[Role][]Permission{
		RoleSupporter: {PermCommentsModerate},
		RoleCreator:   {PermCampaignsView},
		RoleModerator: {PermCommentsModerate},
		RoleAdmin:     {PermCommentsModerate, PermUsersManage},
	})
	require.NoError(t, err2)
	partialGuard, err2 := NewGuard(table)
	require.NoError(t, err2)

	err = partialGuard.Authorize(plainCtx(RoleSupporter), policy)
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, []Permission{PermUsersManage}, denied.MissingPermissions)
	assert.Contains(t, denied.Error(), "users.manage")
	assert.NotContains(t, denied.Error(), "comments.moderate")
}

func TestBothGatesMustPass(t *testing.T) {
	guard := newGuard(t)
	policy := Policy{
		Roles:       []Role{RoleModerator, RoleAdmin},
		Permissions: []Permission{PermCampaignsContribute},
	}

	// Moderator passes the role gate but does not hold the contribute
	// permission.
	err := guard.Authorize(plainCtx(RoleModerator), policy)
	var denied *DeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, []Permission{PermCampaignsContribute}, denied.MissingPermissions)

	assert.NoError(t, guard.Authorize(plainCtx(RoleAdmin), policy))
}

func TestGraphContextShapeIsNormalized(t *testing.T) {
	guard := newGuard(t)
	policy := RequireRoles(RoleModerator, RoleAdmin)

	assert.NoError(t, guard.Authorize(graphCtx(RoleModerator), policy))

	err := guard.Authorize(graphCtx(RoleSupporter), policy)
	var denied *DeniedError
	assert.True(t, errors.As(err, &denied))

	// Graph context without a principal still rejects.
	anon := graph.WithRequestContext(context.Background(), &graph.RequestContext{Operation: "hello"})
	assert.ErrorIs(t, guard.Authorize(anon, policy), ErrNoPrincipal)
}

func TestUnknownRoleGrantsNothing(t *testing.T) {
	guard := newGuard(t)
	err := guard.Authorize(plainCtx(Role("intern")), RequirePermissions(PermCampaignsView))
	var denied *DeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, []Permission{PermCampaignsView}, denied.MissingPermissions)
}
