package models

import "github.com/google/uuid"

// ProjectMember links a user to a project. The composite primary key keeps
// the pair unique; membership grants restricted roles visibility into the
// project.
type ProjectMember struct {
	ProjectID uuid.UUID `json:"project_id" gorm:"type:uuid;primaryKey;not null"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey;not null"`

	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}
