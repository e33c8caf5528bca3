package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskAssignment is an append-only record of who assigned a task to whom
type TaskAssignment struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;not null"`
	TaskItemID       uuid.UUID `json:"task_item_id" gorm:"type:uuid;not null;index"`
	AssignedToUserID uuid.UUID `json:"assigned_to_user_id" gorm:"type:uuid;not null"`
	AssignedByUserID uuid.UUID `json:"assigned_by_user_id" gorm:"type:uuid;not null"`
	AssignedAt       time.Time `json:"assigned_at" gorm:"not null"`
	Comment          *string   `json:"comment,omitempty" gorm:"type:text"`

	TaskItem       TaskItem `json:"task_item,omitempty" gorm:"foreignKey:TaskItemID;references:ID;constraint:OnDelete:CASCADE"`
	AssignedToUser User     `json:"assigned_to_user,omitempty" gorm:"foreignKey:AssignedToUserID;references:ID;constraint:OnDelete:RESTRICT"`
	AssignedByUser User     `json:"assigned_by_user,omitempty" gorm:"foreignKey:AssignedByUserID;references:ID;constraint:OnDelete:RESTRICT"`
}
