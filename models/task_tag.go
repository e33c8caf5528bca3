package models

import "github.com/google/uuid"

// TaskTag joins task items and tags. The composite primary key rejects
// attaching the same tag to the same task twice.
type TaskTag struct {
	TaskItemID uuid.UUID `json:"task_item_id" gorm:"type:uuid;primaryKey;not null"`
	TagID      uuid.UUID `json:"tag_id" gorm:"type:uuid;primaryKey;not null"`

	TaskItem TaskItem `json:"task_item,omitempty" gorm:"foreignKey:TaskItemID;references:ID;constraint:OnDelete:CASCADE"`
	Tag      Tag      `json:"tag,omitempty" gorm:"foreignKey:TagID;references:ID;constraint:OnDelete:CASCADE"`
}
