package models

import "github.com/google/uuid"

type TaskStatus string

const (
	StatusNew        TaskStatus = "New"
	StatusTodo       TaskStatus = "Todo"
	StatusInProgress TaskStatus = "InProgress"
	StatusDone       TaskStatus = "Done"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

// Valid reports whether s is one of the closed set of task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusNew, StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Valid reports whether p is one of the closed set of task priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// TaskItem is a unit of work inside a project, optionally assigned to a user
type TaskItem struct {
	ID               uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Title            string       `json:"title" gorm:"type:varchar(300);not null"`
	Description      string       `json:"description" gorm:"type:text"`
	ProjectID        uuid.UUID    `json:"project_id" gorm:"type:uuid;not null;index"`
	AssignedToUserID *uuid.UUID   `json:"assigned_to_user_id,omitempty" gorm:"type:uuid;index"`
	Status           TaskStatus   `json:"status" gorm:"type:varchar(20);not null;index;default:New"`
	Priority         TaskPriority `json:"priority" gorm:"type:varchar(20);not null;default:Medium"`

	Project        Project          `json:"project,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	AssignedToUser *User            `json:"assigned_to_user,omitempty" gorm:"foreignKey:AssignedToUserID;references:ID;constraint:OnDelete:RESTRICT"`
	Assignments    []TaskAssignment `json:"assignments,omitempty" gorm:"foreignKey:TaskItemID;references:ID;constraint:OnDelete:CASCADE"`
	TaskTags       []TaskTag        `json:"task_tags,omitempty" gorm:"foreignKey:TaskItemID;references:ID;constraint:OnDelete:CASCADE"`
}
