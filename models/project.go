package models

import "github.com/google/uuid"

// Project groups task items under a single owner
type Project struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string    `json:"name" gorm:"type:varchar(200);not null"`
	Description string    `json:"description" gorm:"type:text"`
	OwnerID     uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index"`

	Owner   User            `json:"owner,omitempty" gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:RESTRICT"`
	Members []ProjectMember `json:"members,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Tasks   []TaskItem      `json:"tasks,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}
