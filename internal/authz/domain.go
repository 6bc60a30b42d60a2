// Package authz implements role and permission based authorization for the
// platform. Roles are coarse identity categories carried in the identity
// token; permissions are the fine-grained capabilities each role holds. The
// role to permission mapping is hand-authored policy data and the single
// source of truth for authorization decisions.
package authz

// Role is a coarse-grained identity category.
type Role string

const (
	// RoleSupporter contributes to campaigns, reads and writes comments.
	RoleSupporter Role = "supporter"
	// RoleCreator owns campaigns and manages their own content.
	RoleCreator Role = "creator"
	// RoleModerator reviews campaigns and moderates platform content.
	RoleModerator Role = "moderator"
	// RoleAdmin has full access to platform management.
	RoleAdmin Role = "admin"
)

// Roles lists every role known to the platform.
func Roles() []Role {
	return []Role{RoleSupporter, RoleCreator, RoleModerator, RoleAdmin}
}

// Permission is an atomic capability a role may hold.
type Permission string

// Platform permissions.
const (
	PermCampaignsView       Permission = "campaigns.view"
	PermCampaignsCreate     Permission = "campaigns.create"
	PermCampaignsUpdateOwn  Permission = "campaigns.update_own"
	PermCampaignsDeleteOwn  Permission = "campaigns.delete_own"
	PermCampaignsUpdateAny  Permission = "campaigns.update_any"
	PermCampaignsDeleteAny  Permission = "campaigns.delete_any"
	PermCampaignsApprove    Permission = "campaigns.approve"
	PermCampaignsReject     Permission = "campaigns.reject"
	PermCampaignsContribute Permission = "campaigns.contribute"

	PermCommentsRead     Permission = "comments.read"
	PermCommentsWrite    Permission = "comments.write"
	PermCommentsModerate Permission = "comments.moderate"

	PermUsersManage         Permission = "users.manage"
	PermRolesManage         Permission = "roles.manage"
	PermPlatformSettings    Permission = "platform.settings"
	PermNotificationsManage Permission = "notifications.manage"
)
