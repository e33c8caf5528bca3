package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/taskboard/backend/models"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// FindAll returns all tags from the database
func (r *TagRepo) FindAll() ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.Find(&tags).Error
	return tags, err
}

// FindByID returns a tag by its ID, or nil when absent
func (r *TagRepo) FindByID(id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.First(&tag, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Exists reports whether a tag with the given ID is present
func (r *TagRepo) Exists(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Tag{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Add inserts a new tag into the database
func (r *TagRepo) Add(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

// Update updates an existing tag in the database
func (r *TagRepo) Update(tag *models.Tag) error {
	return r.db.Omit(clause.Associations).Save(tag).Error
}

// Delete removes a tag from the database by id
func (r *TagRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Tag{}, "id = ?", id).Error
}
