package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/taskboard/backend/models"
)

type TaskAssignmentRepo struct {
	db *gorm.DB
}

func NewTaskAssignmentRepo(db *gorm.DB) *TaskAssignmentRepo {
	return &TaskAssignmentRepo{db}
}

// FindAll returns all task assignments from the database
func (r *TaskAssignmentRepo) FindAll() ([]*models.TaskAssignment, error) {
	var assignments []*models.TaskAssignment
	err := r.db.Find(&assignments).Error
	return assignments, err
}

// FindByID returns an assignment by its ID, or nil when absent
func (r *TaskAssignmentRepo) FindByID(id uuid.UUID) (*models.TaskAssignment, error) {
	var assignment models.TaskAssignment
	err := r.db.First(&assignment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Record inserts an assignment and repoints the task at the new assignee
// in a single transaction, so the history row and the task's
// assigned_to_user_id never diverge.
func (r *TaskAssignmentRepo) Record(assignment *models.TaskAssignment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(assignment).Error; err != nil {
			return err
		}
		return tx.Model(&models.TaskItem{}).
			Where("id = ?", assignment.TaskItemID).
			Update("assigned_to_user_id", assignment.AssignedToUserID).Error
	})
}

// Update updates an existing assignment in the database
func (r *TaskAssignmentRepo) Update(assignment *models.TaskAssignment) error {
	return r.db.Omit(clause.Associations).Save(assignment).Error
}

// Delete removes an assignment from the database by id
func (r *TaskAssignmentRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.TaskAssignment{}, "id = ?", id).Error
}
