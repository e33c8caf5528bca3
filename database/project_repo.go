package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/taskboard/backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns all projects with owner and members eager-loaded
func (r *ProjectRepo) FindAll() ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Preload("Owner").Preload("Members").Find(&projects).Error
	return projects, err
}

// FindAllForMember returns the projects the given user is a member of.
// Used to scope listings for Developer-role callers.
func (r *ProjectRepo) FindAllForMember(userID uuid.UUID) ([]*models.Project, error) {
	var projects []*models.Project
	memberOf := r.db.Model(&models.ProjectMember{}).
		Select("project_id").
		Where("user_id = ?", userID)
	err := r.db.Preload("Owner").Preload("Members").
		Where("id IN (?)", memberOf).
		Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID, or nil when absent
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.Preload("Owner").Preload("Members").First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Exists reports whether a project with the given ID is present
func (r *ProjectRepo) Exists(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// Update updates an existing project in the database
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Omit(clause.Associations).Save(project).Error
}

// Delete removes a project from the database by id
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}
