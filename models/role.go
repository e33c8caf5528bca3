package models

import "github.com/google/uuid"

// Role names form the four authorization tiers, from most to least
// privileged.
const (
	RoleSuperAdmin = "SuperAdmin"
	RoleAdmin      = "Admin"
	RoleManager    = "Manager"
	RoleDeveloper  = "Developer"
)

// Seeded role and bootstrap-user identifiers. These are stable across
// deployments; the SuperAdmin protections compare against RoleSuperAdminID
// rather than re-deriving the role by name on every request.
var (
	RoleSuperAdminID = uuid.MustParse("10000000-0000-0000-0000-000000000000")
	RoleAdminID      = uuid.MustParse("10000000-0000-0000-0000-000000000001")
	RoleManagerID    = uuid.MustParse("10000000-0000-0000-0000-000000000002")
	RoleDeveloperID  = uuid.MustParse("10000000-0000-0000-0000-000000000003")

	BootstrapSuperAdminID = uuid.MustParse("20000000-0000-0000-0000-000000000000")
)

// Role is a named authorization tier
type Role struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Name string    `json:"name" gorm:"type:varchar(50);not null"`

	Users []User `json:"users,omitempty" gorm:"foreignKey:RoleID;references:ID"`
}
