package models

import "github.com/google/uuid"

// Tag is a label that can be attached to task items
type Tag struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Name     string    `json:"name" gorm:"type:varchar(100);not null;index"`
	ColorHex string    `json:"color_hex" gorm:"type:varchar(7);default:#000000"`

	TaskTags []TaskTag `json:"task_tags,omitempty" gorm:"foreignKey:TagID;references:ID;constraint:OnDelete:CASCADE"`
}
