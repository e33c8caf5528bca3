package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/backend/models"
)

func TestCreateAssignmentRecordsCallerAndTimestamp(t *testing.T) {
	api := newTestAPI(t)
	dev, _ := api.seedUser(t, "dev@taskboard.com", "DevPass12345!", models.RoleDeveloperID)
	mgr, mgrToken := api.seedUser(t, "mgr@taskboard.com", "MgrPass12345!", models.RoleManagerID)
	project := api.createProject(t, mgrToken, "Apollo", mgr.ID)
	task := api.createTask(t, mgrToken, project.ID, "Design heat shield")

	comment := "knows thermal systems"
	rec := api.do(t, http.MethodPost, "/api/TaskAssignments", mgrToken, CreateTaskAssignmentRequest{
		TaskItemID:       task.ID,
		AssignedToUserID: dev.ID,
		Comment:          &comment,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[TaskAssignmentDTO](t, rec)

	assert.Equal(t, task.ID, created.TaskItemID)
	assert.Equal(t, dev.ID, created.AssignedToUserID)
	assert.Equal(t, mgr.ID, created.AssignedByUserID)
	assert.False(t, created.AssignedAt.IsZero())
	require.NotNil(t, created.Comment)
	assert.Equal(t, comment, *created.Comment)
	assert.Equal(t, "/api/TaskAssignments/"+created.ID.String(), rec.Header().Get("Location"))

	// the task now points at the assignee
	rec = api.do(t, http.MethodGet, "/api/TaskItems/"+task.ID.String(), mgrToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decodeBody[TaskItemDTO](t, rec)
	require.NotNil(t, fetched.AssignedToUserID)
	assert.Equal(t, dev.ID, *fetched.AssignedToUserID)
}

func TestCreateAssignmentValidatesReferences(t *testing.T) {
	api := newTestAPI(t)
	dev, _ := api.seedUser(t, "dev@taskboard.com", "DevPass12345!", models.RoleDeveloperID)
	superToken := api.superAdminToken(t)
	project := api.createProject(t, superToken, "Apollo", models.BootstrapSuperAdminID)
	task := api.createTask(t, superToken, project.ID, "Design heat shield")

	rec := api.do(t, http.MethodPost, "/api/TaskAssignments", superToken, CreateTaskAssignmentRequest{
		TaskItemID:       uuid.New(),
		AssignedToUserID: dev.ID,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/TaskAssignments", superToken, CreateTaskAssignmentRequest{
		TaskItemID:       task.ID,
		AssignedToUserID: uuid.New(),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeveloperCannotCreateAssignment(t *testing.T) {
	api := newTestAPI(t)
	dev, devToken := api.seedUser(t, "dev@taskboard.com", "DevPass12345!", models.RoleDeveloperID)
	superToken := api.superAdminToken(t)
	project := api.createProject(t, superToken, "Apollo", models.BootstrapSuperAdminID)
	task := api.createTask(t, superToken, project.ID, "Design heat shield")

	rec := api.do(t, http.MethodPost, "/api/TaskAssignments", devToken, CreateTaskAssignmentRequest{
		TaskItemID:       task.ID,
		AssignedToUserID: dev.ID,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateAssignmentAmendsComment(t *testing.T) {
	api := newTestAPI(t)
	dev, _ := api.seedUser(t, "dev@taskboard.com", "DevPass12345!", models.RoleDeveloperID)
	superToken := api.superAdminToken(t)
	project := api.createProject(t, superToken, "Apollo", models.BootstrapSuperAdminID)
	task := api.createTask(t, superToken, project.ID, "Design heat shield")

	rec := api.do(t, http.MethodPost, "/api/TaskAssignments", superToken, CreateTaskAssignmentRequest{
		TaskItemID:       task.ID,
		AssignedToUserID: dev.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[TaskAssignmentDTO](t, rec)

	note := "reassigned after sprint review"
	rec = api.do(t, http.MethodPut, "/api/TaskAssignments/"+created.ID.String(), superToken, UpdateTaskAssignmentRequest{
		Comment: &note,
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/TaskAssignments/"+created.ID.String(), superToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decodeBody[TaskAssignmentDTO](t, rec)
	require.NotNil(t, fetched.Comment)
	assert.Equal(t, note, *fetched.Comment)
}

func TestDeleteAssignmentThenGetReturnsNotFound(t *testing.T) {
	api := newTestAPI(t)
	dev, _ := api.seedUser(t, "dev@taskboard.com", "DevPass12345!", models.RoleDeveloperID)
	superToken := api.superAdminToken(t)
	project := api.createProject(t, superToken, "Apollo", models.BootstrapSuperAdminID)
	task := api.createTask(t, superToken, project.ID, "Design heat shield")

	rec := api.do(t, http.MethodPost, "/api/TaskAssignments", superToken, CreateTaskAssignmentRequest{
		TaskItemID:       task.ID,
		AssignedToUserID: dev.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[TaskAssignmentDTO](t, rec)

	rec = api.do(t, http.MethodDelete, "/api/TaskAssignments/"+created.ID.String(), superToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/TaskAssignments/"+created.ID.String(), superToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
