package database

import (
	"gorm.io/gorm"

	"github.com/taskboard/backend/models"
)

type Database struct {
	roleRepo           *RoleRepo
	userRepo           *UserRepo
	userProfileRepo    *UserProfileRepo
	projectRepo        *ProjectRepo
	projectMemberRepo  *ProjectMemberRepo
	taskItemRepo       *TaskItemRepo
	taskAssignmentRepo *TaskAssignmentRepo
	tagRepo            *TagRepo
	taskTagRepo        *TaskTagRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		roleRepo:           NewRoleRepo(db),
		userRepo:           NewUserRepo(db),
		userProfileRepo:    NewUserProfileRepo(db),
		projectRepo:        NewProjectRepo(db),
		projectMemberRepo:  NewProjectMemberRepo(db),
		taskItemRepo:       NewTaskItemRepo(db),
		taskAssignmentRepo: NewTaskAssignmentRepo(db),
		tagRepo:            NewTagRepo(db),
		taskTagRepo:        NewTaskTagRepo(db),
	}
}

// Migrate applies the schema for every entity table, including the two
// composite-primary-key join tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.UserProfile{},
		&models.Project{},
		&models.ProjectMember{},
		&models.TaskItem{},
		&models.TaskAssignment{},
		&models.Tag{},
		&models.TaskTag{},
	)
}

// Accessor methods for each repository

func (d Database) RoleRepo() *RoleRepo {
	return d.roleRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) UserProfileRepo() *UserProfileRepo {
	return d.userProfileRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ProjectMemberRepo() *ProjectMemberRepo {
	return d.projectMemberRepo
}

func (d Database) TaskItemRepo() *TaskItemRepo {
	return d.taskItemRepo
}

func (d Database) TaskAssignmentRepo() *TaskAssignmentRepo {
	return d.taskAssignmentRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) TaskTagRepo() *TaskTagRepo {
	return d.taskTagRepo
}
