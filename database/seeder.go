package database

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/taskboard/backend/auth"
	"github.com/taskboard/backend/models"
)

const bootstrapEmail = "superadmin@taskboard.com"
const bootstrapPassword = "SuperAdmin@123"

// Seed inserts the four fixed roles and the bootstrap SuperAdmin account.
// It runs after migration and is a no-op whenever any role row already
// exists, so repeated startups never duplicate the seed data.
func Seed(db *gorm.DB) error {
	var roleCount int64
	if err := db.Model(&models.Role{}).Count(&roleCount).Error; err != nil {
		return err
	}
	if roleCount > 0 {
		return nil
	}

	roles := []models.Role{
		{ID: models.RoleSuperAdminID, Name: models.RoleSuperAdmin},
		{ID: models.RoleAdminID, Name: models.RoleAdmin},
		{ID: models.RoleManagerID, Name: models.RoleManager},
		{ID: models.RoleDeveloperID, Name: models.RoleDeveloper},
	}
	if err := db.Create(&roles).Error; err != nil {
		return err
	}

	hash, err := auth.HashPassword(bootstrapPassword)
	if err != nil {
		return err
	}

	superAdmin := models.User{
		ID:           models.BootstrapSuperAdminID,
		Email:        bootstrapEmail,
		PasswordHash: hash,
		RoleID:       models.RoleSuperAdminID,
	}
	if err := db.Create(&superAdmin).Error; err != nil {
		return err
	}

	log.Info().Str("email", bootstrapEmail).Msg("Seeded roles and bootstrap SuperAdmin")
	return nil
}
