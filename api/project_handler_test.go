package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/backend/models"
)

func (a *testAPI) createProject(t *testing.T, token, name string, ownerID uuid.UUID) ProjectDTO {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/Projects", token, CreateProjectRequest{
		Name:    name,
		OwnerID: ownerID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeBody[ProjectDTO](t, rec)
}

func (a *testAPI) addMember(t *testing.T, token string, projectID, userID uuid.UUID) {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/ProjectMembers", token, CreateProjectMemberRequest{
		ProjectID: projectID,
		UserID:    userID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestDeveloperCannotCreateProject(t *testing.T) {
	api := newTestAPI(t)
	dev, devToken := api.seedUser(t, "dev@taskboard.com", "DevPass12345!", models.RoleDeveloperID)

	rec := api.do(t, http.MethodPost, "/api/Projects", devToken, CreateProjectRequest{
		Name:    "Skunkworks",
		OwnerID: dev.ID,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateProjectRejectsUnknownOwner(t *testing.T) {
	api := newTestAPI(t)
	superToken := api.superAdminToken(t)

	rec := api.do(t, http.MethodPost, "/api/Projects", superToken, CreateProjectRequest{
		Name:    "Orphan",
		OwnerID: uuid.New(),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// no row may have been written
	rec = api.do(t, http.MethodGet, "/api/Projects", superToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	projects := decodeBody[[]ProjectDTO](t, rec)
	assert.Empty(t, projects)
}

func TestManagerOwnsProjectsTheyCreate(t *testing.T) {
	api := newTestAPI(t)
	mgr, mgrToken := api.seedUser(t, "mgr@taskboard.com", "MgrPass12345!", models.RoleManagerID)
	other, _ := api.seedUser(t, "other@taskboard.com", "OthPass12345!", models.RoleManagerID)

	// a Manager cannot hand ownership to someone else on create
	rec := api.do(t, http.MethodPost, "/api/Projects", mgrToken, CreateProjectRequest{
		Name:    "Apollo",
		OwnerID: other.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[ProjectDTO](t, rec)
	assert.Equal(t, mgr.ID, created.OwnerID)
}

func TestManagerCannotUpdateForeignProject(t *testing.T) {
	api := newTestAPI(t)
	_, mgrToken := api.seedUser(t, "mgr@taskboard.com", "MgrPass12345!", models.RoleManagerID)
	superToken := api.superAdminToken(t)

	foreign := api.createProject(t, superToken, "Foreign", models.BootstrapSuperAdminID)

	rec := api.do(t, http.MethodPut, "/api/Projects/"+foreign.ID.String(), mgrToken, UpdateProjectRequest{
		Name: "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeveloperProjectListingIsScopedToMembership(t *testing.T) {
	api := newTestAPI(t)
	dev, devToken := api.seedUser(t, "dev@taskboard.com", "DevPass12345!", models.RoleDeveloperID)
	superToken := api.superAdminToken(t)

	visible := api.createProject(t, superToken, "Visible", models.BootstrapSuperAdminID)
	hidden := api.createProject(t, superToken, "Hidden", models.BootstrapSuperAdminID)
	api.addMember(t, superToken, visible.ID, dev.ID)

	rec := api.do(t, http.MethodGet, "/api/Projects", devToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	projects := decodeBody[[]ProjectDTO](t, rec)
	require.Len(t, projects, 1)
	assert.Equal(t, visible.ID, projects[0].ID)

	// direct reads of the hidden project are rejected, not hidden as 404
	rec = api.do(t, http.MethodGet, "/api/Projects/"+hidden.ID.String(), devToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/Projects/"+visible.ID.String(), devToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProjectUpdateAndPatchStatusCodes(t *testing.T) {
	api := newTestAPI(t)
	superToken := api.superAdminToken(t)
	project := api.createProject(t, superToken, "Apollo", models.BootstrapSuperAdminID)

	rec := api.do(t, http.MethodPut, "/api/Projects/"+project.ID.String(), superToken, UpdateProjectRequest{
		Name: "Apollo 11",
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodPatch, "/api/Projects/"+project.ID.String(), superToken, UpdateProjectRequest{
		Description: "Lunar landing",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	patched := decodeBody[ProjectDTO](t, rec)
	assert.Equal(t, "Apollo 11", patched.Name)
	assert.Equal(t, "Lunar landing", patched.Description)
}

func TestManagerCannotDeleteProject(t *testing.T) {
	api := newTestAPI(t)
	mgr, mgrToken := api.seedUser(t, "mgr@taskboard.com", "MgrPass12345!", models.RoleManagerID)
	own := api.createProject(t, mgrToken, "Mine", mgr.ID)

	rec := api.do(t, http.MethodDelete, "/api/Projects/"+own.ID.String(), mgrToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
