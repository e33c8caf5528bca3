package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/taskboard/backend/models"
)

type RoleRepo struct {
	db *gorm.DB
}

func NewRoleRepo(db *gorm.DB) *RoleRepo {
	return &RoleRepo{db}
}

// FindAll returns all roles from the database
func (r *RoleRepo) FindAll() ([]*models.Role, error) {
	var roles []*models.Role
	err := r.db.Find(&roles).Error
	return roles, err
}

// FindByID returns a role by its ID, or nil when absent
func (r *RoleRepo) FindByID(id uuid.UUID) (*models.Role, error) {
	var role models.Role
	err := r.db.First(&role, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// Exists reports whether a role with the given ID is present
func (r *RoleRepo) Exists(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Role{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Add inserts a new role into the database
func (r *RoleRepo) Add(role *models.Role) error {
	return r.db.Create(role).Error
}

// Update updates an existing role in the database
func (r *RoleRepo) Update(role *models.Role) error {
	return r.db.Omit(clause.Associations).Save(role).Error
}

// Delete removes a role from the database by id
func (r *RoleRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Role{}, "id = ?", id).Error
}
