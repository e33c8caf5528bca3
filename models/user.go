package models

import "github.com/google/uuid"

// User is an account that can authenticate and act on the board
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Email        string    `json:"email" gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"type:text;not null"`
	RoleID       uuid.UUID `json:"role_id" gorm:"type:uuid;not null;index"`

	Role               Role             `json:"role,omitempty" gorm:"foreignKey:RoleID;references:ID;constraint:OnDelete:RESTRICT"`
	Profile            *UserProfile     `json:"profile,omitempty" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	OwnedProjects      []Project        `json:"owned_projects,omitempty" gorm:"foreignKey:OwnerID;references:ID"`
	ProjectMemberships []ProjectMember  `json:"project_memberships,omitempty" gorm:"foreignKey:UserID;references:ID"`
	AssignedTasks      []TaskItem       `json:"assigned_tasks,omitempty" gorm:"foreignKey:AssignedToUserID;references:ID"`
	TaskAssignments    []TaskAssignment `json:"task_assignments,omitempty" gorm:"foreignKey:AssignedToUserID;references:ID"`
}
