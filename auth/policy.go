package auth

import (
	"github.com/google/uuid"

	"github.com/taskboard/backend/models"
)

// Resource identifies a route group for policy lookups.
type Resource string

const (
	ResourceRoles           Resource = "roles"
	ResourceUsers           Resource = "users"
	ResourceProjects        Resource = "projects"
	ResourceProjectMembers  Resource = "project_members"
	ResourceTaskItems       Resource = "task_items"
	ResourceTaskAssignments Resource = "task_assignments"
	ResourceTags            Resource = "tags"
	ResourceTaskTags        Resource = "task_tags"
	ResourceUserProfiles    Resource = "user_profiles"
)

// Action is the kind of operation being attempted on a resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// anyAuthenticated marks an action open to every authenticated caller
// regardless of role.
var anyAuthenticated = []string(nil)

// policy is the single role-gating table for the whole API. Ownership rules
// that depend on the target row (project membership, profile self-access)
// are layered on top via the predicates below.
var policy = map[Resource]map[Action][]string{
	ResourceRoles: {
		ActionRead:   {models.RoleSuperAdmin},
		ActionCreate: {models.RoleSuperAdmin},
		ActionUpdate: {models.RoleSuperAdmin},
		ActionDelete: {models.RoleSuperAdmin},
	},
	ResourceUsers: {
		ActionRead:   anyAuthenticated,
		ActionCreate: {models.RoleAdmin, models.RoleSuperAdmin},
		ActionUpdate: {models.RoleAdmin, models.RoleSuperAdmin},
		ActionDelete: {models.RoleAdmin, models.RoleSuperAdmin},
	},
	ResourceProjects: {
		ActionRead:   anyAuthenticated,
		ActionCreate: {models.RoleManager, models.RoleAdmin, models.RoleSuperAdmin},
		ActionUpdate: {models.RoleManager, models.RoleAdmin, models.RoleSuperAdmin},
		ActionDelete: {models.RoleAdmin, models.RoleSuperAdmin},
	},
	ResourceProjectMembers: {
		ActionRead:   anyAuthenticated,
		ActionCreate: {models.RoleManager, models.RoleSuperAdmin},
		ActionUpdate: {models.RoleManager, models.RoleSuperAdmin},
		ActionDelete: {models.RoleManager, models.RoleSuperAdmin},
	},
	ResourceTaskItems: {
		ActionRead:   anyAuthenticated,
		ActionCreate: {models.RoleManager, models.RoleSuperAdmin},
		ActionUpdate: {models.RoleManager, models.RoleSuperAdmin},
		ActionDelete: {models.RoleManager, models.RoleSuperAdmin},
	},
	ResourceTaskAssignments: {
		ActionRead:   anyAuthenticated,
		ActionCreate: {models.RoleManager, models.RoleSuperAdmin},
		ActionUpdate: {models.RoleManager, models.RoleSuperAdmin},
		ActionDelete: {models.RoleManager, models.RoleSuperAdmin},
	},
	ResourceTags: {
		ActionRead:   anyAuthenticated,
		ActionCreate: anyAuthenticated,
		ActionUpdate: anyAuthenticated,
		ActionDelete: anyAuthenticated,
	},
	ResourceTaskTags: {
		ActionRead:   anyAuthenticated,
		ActionCreate: {models.RoleManager, models.RoleSuperAdmin},
		ActionUpdate: {models.RoleManager, models.RoleSuperAdmin},
		ActionDelete: {models.RoleManager, models.RoleSuperAdmin},
	},
	ResourceUserProfiles: {
		ActionRead:   anyAuthenticated,
		ActionCreate: anyAuthenticated,
		ActionUpdate: anyAuthenticated,
		ActionDelete: anyAuthenticated,
	},
}

// Allowed reports whether a caller holding role may perform action on
// resource. An action listed as anyAuthenticated admits every role.
func Allowed(role string, resource Resource, action Action) bool {
	actions, ok := policy[resource]
	if !ok {
		return false
	}
	roles, ok := actions[action]
	if !ok {
		return false
	}
	if roles == nil {
		return true
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// CanViewProject applies the membership ownership rule: Developer callers
// only see projects they are members of.
func CanViewProject(role string, isMember bool) bool {
	return role != models.RoleDeveloper || isMember
}

// MustOwnProject reports whether the role is restricted to acting on
// projects it owns (Managers are; Admin and SuperAdmin are not).
func MustOwnProject(role string) bool {
	return role == models.RoleManager
}

// CanActOnProfile applies the profile ownership rule: SuperAdmin or the
// profile's own user.
func CanActOnProfile(role string, callerID, targetUserID uuid.UUID) bool {
	return role == models.RoleSuperAdmin || callerID == targetUserID
}

// IsProtectedRole reports whether the role id is the seeded SuperAdmin role,
// which may not be deleted, renamed, or assigned through update endpoints.
func IsProtectedRole(roleID uuid.UUID) bool {
	return roleID == models.RoleSuperAdminID
}
