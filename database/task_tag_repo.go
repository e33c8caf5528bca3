package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskboard/backend/models"
)

type TaskTagRepo struct {
	db *gorm.DB
}

func NewTaskTagRepo(db *gorm.DB) *TaskTagRepo {
	return &TaskTagRepo{db}
}

// FindAll returns all task-tag links from the database
func (r *TaskTagRepo) FindAll() ([]*models.TaskTag, error) {
	var taskTags []*models.TaskTag
	err := r.db.Find(&taskTags).Error
	return taskTags, err
}

// FindByKey returns a link by its composite key, or nil when absent
func (r *TaskTagRepo) FindByKey(taskItemID, tagID uuid.UUID) (*models.TaskTag, error) {
	var taskTag models.TaskTag
	err := r.db.First(&taskTag, "task_item_id = ? AND tag_id = ?", taskItemID, tagID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &taskTag, nil
}

// Exists reports whether the task already carries the tag
func (r *TaskTagRepo) Exists(taskItemID, tagID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.TaskTag{}).
		Where("task_item_id = ? AND tag_id = ?", taskItemID, tagID).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a new task-tag link into the database
func (r *TaskTagRepo) Add(taskTag *models.TaskTag) error {
	return r.db.Create(taskTag).Error
}

// Rekey moves a link to a new (taskItemID, tagID) pair. Composite primary
// keys cannot be updated in place, so the old row is deleted and the new
// one inserted inside a single transaction.
func (r *TaskTagRepo) Rekey(oldTaskItemID, oldTagID uuid.UUID, updated *models.TaskTag) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.TaskTag{}, "task_item_id = ? AND tag_id = ?", oldTaskItemID, oldTagID).Error; err != nil {
			return err
		}
		return tx.Create(updated).Error
	})
}

// Delete removes a task-tag link from the database by its composite key
func (r *TaskTagRepo) Delete(taskItemID, tagID uuid.UUID) error {
	return r.db.Delete(&models.TaskTag{}, "task_item_id = ? AND tag_id = ?", taskItemID, tagID).Error
}
