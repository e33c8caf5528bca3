package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskboard/backend/models"
)

type ProjectMemberRepo struct {
	db *gorm.DB
}

func NewProjectMemberRepo(db *gorm.DB) *ProjectMemberRepo {
	return &ProjectMemberRepo{db}
}

// FindAll returns all project memberships
func (r *ProjectMemberRepo) FindAll() ([]*models.ProjectMember, error) {
	var members []*models.ProjectMember
	err := r.db.Find(&members).Error
	return members, err
}

// FindAllVisibleTo returns the memberships of projects the given user
// belongs to. Used to scope listings for Developer-role callers.
func (r *ProjectMemberRepo) FindAllVisibleTo(userID uuid.UUID) ([]*models.ProjectMember, error) {
	var members []*models.ProjectMember
	memberOf := r.db.Model(&models.ProjectMember{}).
		Select("project_id").
		Where("user_id = ?", userID)
	err := r.db.Where("project_id IN (?)", memberOf).Find(&members).Error
	return members, err
}

// FindByKey returns a membership by its composite key, or nil when absent
func (r *ProjectMemberRepo) FindByKey(projectID, userID uuid.UUID) (*models.ProjectMember, error) {
	var member models.ProjectMember
	err := r.db.First(&member, "project_id = ? AND user_id = ?", projectID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// IsMember reports whether the user belongs to the project
func (r *ProjectMemberRepo) IsMember(projectID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a new membership into the database
func (r *ProjectMemberRepo) Add(member *models.ProjectMember) error {
	return r.db.Create(member).Error
}

// Delete removes a membership from the database by its composite key
func (r *ProjectMemberRepo) Delete(projectID, userID uuid.UUID) error {
	return r.db.Delete(&models.ProjectMember{}, "project_id = ? AND user_id = ?", projectID, userID).Error
}
