package authz

import (
	"fmt"
	"sort"
)

// Table maps each role to the set of permissions it holds. Immutable after
// construction; build one at startup and share it by reference.
type Table struct {
	grants map[Role]map[Permission]struct{}
}

// NewTable validates and freezes a role to permission mapping. Every known
// role must have a non-empty grant set; a hole in the table is a
// configuration defect and refuses to start.
func NewTable(grants map[Role][]Permission) (*Table, error) {
	frozen := make(map[Role]map[Permission]struct{}, len(grants))
	for role, perms := range grants {
		set := make(map[Permission]struct{}, len(perms))
		for _, p := range perms {
			set[p] = struct{}{}
		}
		frozen[role] = set
	}
	for _, role := range Roles() {
		if len(frozen[role]) == 0 {
			return nil, fmt.Errorf("authz: role %q has no permissions", role)
		}
	}
	return &Table{grants: frozen}, nil
}

// DefaultTable returns the platform's role to permission mapping. Changing
// a grant here changes what every holder of the role can do; review with
// care.
func DefaultTable() *Table {
	table, err := NewTable(map[Role][]Permission{
		RoleSupporter: {
			PermCampaignsView,
			PermCampaignsContribute,
			PermCommentsRead,
			PermCommentsWrite,
			PermNotificationsManage,
		},
		RoleCreator: {
			PermCampaignsView,
			PermCampaignsCreate,
			PermCampaignsUpdateOwn,
			PermCampaignsDeleteOwn,
			PermCommentsRead,
			PermCommentsWrite,
			PermNotificationsManage,
		},
		RoleModerator: {
			PermCampaignsView,
			PermCampaignsApprove,
			PermCampaignsReject,
			PermCommentsRead,
			PermCommentsWrite,
			PermCommentsModerate,
			PermUsersManage,
			PermRolesManage,
			PermPlatformSettings,
		},
		RoleAdmin: {
			PermCampaignsView,
			PermCampaignsCreate,
			PermCampaignsUpdateOwn,
			PermCampaignsDeleteOwn,
			PermCampaignsUpdateAny,
			PermCampaignsDeleteAny,
			PermCampaignsApprove,
			PermCampaignsReject,
			PermCampaignsContribute,
			PermCommentsRead,
			PermCommentsWrite,
			PermCommentsModerate,
			PermUsersManage,
			PermRolesManage,
			PermPlatformSettings,
			PermNotificationsManage,
		},
	})
	if err != nil {
		panic(err)
	}
	return table
}

// PermissionsOf returns the permissions granted to a role, sorted for
// stable output. Unknown roles get the empty set, never an error: a role
// the table does not know grants nothing.
func (t *Table) PermissionsOf(role Role) []Permission {
	set := t.grants[role]
	perms := make([]Permission, 0, len(set))
	for p := range set {
		perms = append(perms, p)
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i] < perms[j] })
	return perms
}

// HasPermission reports whether the role holds the permission.
func (t *Table) HasPermission(role Role, perm Permission) bool {
	_, ok := t.grants[role][perm]
	return ok
}
