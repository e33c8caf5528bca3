package database

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/backend/models"
)

func TestTaskAssignmentRepoRecord(t *testing.T) {
	db := newTestDB(t)
	projectRepo := NewProjectRepo(db)
	taskRepo := NewTaskItemRepo(db)
	userRepo := NewUserRepo(db)
	assignmentRepo := NewTaskAssignmentRepo(db)

	project := addTestProject(t, projectRepo, "Apollo", models.BootstrapSuperAdminID)
	assignee := addTestUser(t, userRepo, "dev@taskboard.com", models.RoleDeveloperID)
	task := &models.TaskItem{
		ID:        uuid.New(),
		Title:     "Design heat shield",
		ProjectID: project.ID,
		Status:    models.StatusNew,
		Priority:  models.PriorityMedium,
	}
	require.NoError(t, taskRepo.Add(task))

	assignment := &models.TaskAssignment{
		ID:               uuid.New(),
		TaskItemID:       task.ID,
		AssignedToUserID: assignee.ID,
		AssignedByUserID: models.BootstrapSuperAdminID,
		AssignedAt:       time.Now().UTC(),
	}
	require.NoError(t, assignmentRepo.Record(assignment))

	// both the history row and the task pointer land together
	stored, err := assignmentRepo.FindByID(assignment.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, assignee.ID, stored.AssignedToUserID)

	reloaded, err := taskRepo.FindByID(task.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	require.NotNil(t, reloaded.AssignedToUserID)
	assert.Equal(t, assignee.ID, *reloaded.AssignedToUserID)
}

func TestTaskAssignmentRepoRecordRollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	projectRepo := NewProjectRepo(db)
	taskRepo := NewTaskItemRepo(db)
	assignmentRepo := NewTaskAssignmentRepo(db)

	project := addTestProject(t, projectRepo, "Apollo", models.BootstrapSuperAdminID)
	task := &models.TaskItem{
		ID:        uuid.New(),
		Title:     "Design heat shield",
		ProjectID: project.ID,
		Status:    models.StatusNew,
		Priority:  models.PriorityMedium,
	}
	require.NoError(t, taskRepo.Add(task))

	// assignee violates the foreign key, so nothing may be written
	err := assignmentRepo.Record(&models.TaskAssignment{
		ID:               uuid.New(),
		TaskItemID:       task.ID,
		AssignedToUserID: uuid.New(),
		AssignedByUserID: models.BootstrapSuperAdminID,
		AssignedAt:       time.Now().UTC(),
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.TaskAssignment{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	reloaded, err := taskRepo.FindByID(task.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Nil(t, reloaded.AssignedToUserID)
}
