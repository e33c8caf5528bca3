package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/taskboard/backend/models"
)

type UserProfileRepo struct {
	db *gorm.DB
}

func NewUserProfileRepo(db *gorm.DB) *UserProfileRepo {
	return &UserProfileRepo{db}
}

// profileSortColumns whitelists the columns exposed for sorting.
var profileSortColumns = map[string]string{
	"fullname": "full_name",
	"phone":    "phone",
	"address":  "address",
}

// FindPage returns one page of profiles plus the total row count. sortBy is
// matched against the whitelist above; anything else falls back to full
// name ascending.
func (r *UserProfileRepo) FindPage(page, pageSize int, sortBy, sortOrder string) ([]*models.UserProfile, int64, error) {
	var total int64
	if err := r.db.Model(&models.UserProfile{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := profileSortColumns[sortBy]
	if !ok {
		column = "full_name"
	}
	direction := "asc"
	if sortOrder == "desc" {
		direction = "desc"
	}

	var profiles []*models.UserProfile
	err := r.db.
		Order(column + " " + direction).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&profiles).Error
	return profiles, total, err
}

// FindByUserID returns the profile owned by the given user, or nil when absent
func (r *UserProfileRepo) FindByUserID(userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.db.First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Exists reports whether the user already has a profile
func (r *UserProfileRepo) Exists(userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.UserProfile{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}

// Add inserts a new profile into the database
func (r *UserProfileRepo) Add(profile *models.UserProfile) error {
	return r.db.Create(profile).Error
}

// Update updates an existing profile in the database
func (r *UserProfileRepo) Update(profile *models.UserProfile) error {
	return r.db.Omit(clause.Associations).Save(profile).Error
}

// Delete removes a profile from the database by its user id
func (r *UserProfileRepo) Delete(userID uuid.UUID) error {
	return r.db.Delete(&models.UserProfile{}, "user_id = ?", userID).Error
}
