package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/taskboard/backend/models"
)

type TaskItemRepo struct {
	db *gorm.DB
}

func NewTaskItemRepo(db *gorm.DB) *TaskItemRepo {
	return &TaskItemRepo{db}
}

// FindAll returns all task items from the database
func (r *TaskItemRepo) FindAll() ([]*models.TaskItem, error) {
	var tasks []*models.TaskItem
	err := r.db.Find(&tasks).Error
	return tasks, err
}

// FindAllVisibleTo returns the task items in projects the given user is a
// member of. Used to scope listings for Developer-role callers.
func (r *TaskItemRepo) FindAllVisibleTo(userID uuid.UUID) ([]*models.TaskItem, error) {
	var tasks []*models.TaskItem
	memberOf := r.db.Model(&models.ProjectMember{}).
		Select("project_id").
		Where("user_id = ?", userID)
	err := r.db.Where("project_id IN (?)", memberOf).Find(&tasks).Error
	return tasks, err
}

// FindByID returns a task item by its ID, or nil when absent
func (r *TaskItemRepo) FindByID(id uuid.UUID) (*models.TaskItem, error) {
	var task models.TaskItem
	err := r.db.First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Exists reports whether a task item with the given ID is present
func (r *TaskItemRepo) Exists(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.TaskItem{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Add inserts a new task item into the database
func (r *TaskItemRepo) Add(task *models.TaskItem) error {
	return r.db.Create(task).Error
}

// Update updates an existing task item in the database
func (r *TaskItemRepo) Update(task *models.TaskItem) error {
	return r.db.Omit(clause.Associations).Save(task).Error
}

// Delete removes a task item from the database by id
func (r *TaskItemRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.TaskItem{}, "id = ?", id).Error
}
