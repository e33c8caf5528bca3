package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/backend/models"
)

func TestAddMemberTwiceIsRejected(t *testing.T) {
	api := newTestAPI(t)
	dev, _ := api.seedUser(t, "dev@taskboard.com", "DevPass12345!", models.RoleDeveloperID)
	superToken := api.superAdminToken(t)
	project := api.createProject(t, superToken, "Apollo", models.BootstrapSuperAdminID)

	api.addMember(t, superToken, project.ID, dev.ID)

	rec := api.do(t, http.MethodPost, "/api/ProjectMembers", superToken, CreateProjectMemberRequest{
		ProjectID: project.ID,
		UserID:    dev.ID,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// the membership table is unchanged
	rec = api.do(t, http.MethodGet, "/api/ProjectMembers", superToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	members := decodeBody[[]ProjectMemberDTO](t, rec)
	assert.Len(t, members, 1)
}

func TestAddMemberValidatesReferences(t *testing.T) {
	api := newTestAPI(t)
	dev, _ := api.seedUser(t, "dev@taskboard.com", "DevPass12345!", models.RoleDeveloperID)
	superToken := api.superAdminToken(t)
	project := api.createProject(t, superToken, "Apollo", models.BootstrapSuperAdminID)

	rec := api.do(t, http.MethodPost, "/api/ProjectMembers", superToken, CreateProjectMemberRequest{
		ProjectID: project.ID,
		UserID:    models.RoleSuperAdminID, // not a user id
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/ProjectMembers", superToken, CreateProjectMemberRequest{
		ProjectID: dev.ID, // not a project id
		UserID:    dev.ID,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminCannotManageMembers(t *testing.T) {
	api := newTestAPI(t)
	dev, _ := api.seedUser(t, "dev@taskboard.com", "DevPass12345!", models.RoleDeveloperID)
	_, adminToken := api.seedUser(t, "admin@taskboard.com", "AdmPass12345!", models.RoleAdminID)
	superToken := api.superAdminToken(t)
	project := api.createProject(t, superToken, "Apollo", models.BootstrapSuperAdminID)

	rec := api.do(t, http.MethodPost, "/api/ProjectMembers", adminToken, CreateProjectMemberRequest{
		ProjectID: project.ID,
		UserID:    dev.ID,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMemberCompositeKeyRoutes(t *testing.T) {
	api := newTestAPI(t)
	dev, _ := api.seedUser(t, "dev@taskboard.com", "DevPass12345!", models.RoleDeveloperID)
	superToken := api.superAdminToken(t)
	project := api.createProject(t, superToken, "Apollo", models.BootstrapSuperAdminID)
	api.addMember(t, superToken, project.ID, dev.ID)

	path := "/api/ProjectMembers/" + project.ID.String() + "/" + dev.ID.String()

	rec := api.do(t, http.MethodGet, path, superToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	member := decodeBody[ProjectMemberDTO](t, rec)
	assert.Equal(t, project.ID, member.ProjectID)
	assert.Equal(t, dev.ID, member.UserID)

	rec = api.do(t, http.MethodDelete, path, superToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodGet, path, superToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodDelete, path, superToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateMemberByCompositeKey(t *testing.T) {
	api := newTestAPI(t)
	dev, _ := api.seedUser(t, "dev@taskboard.com", "DevPass12345!", models.RoleDeveloperID)
	_, adminToken := api.seedUser(t, "admin@taskboard.com", "AdmPass12345!", models.RoleAdminID)
	superToken := api.superAdminToken(t)
	project := api.createProject(t, superToken, "Apollo", models.BootstrapSuperAdminID)
	api.addMember(t, superToken, project.ID, dev.ID)

	path := "/api/ProjectMembers/" + project.ID.String() + "/" + dev.ID.String()

	rec := api.do(t, http.MethodPut, path, superToken, struct{}{})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Admins are excluded from membership management
	rec = api.do(t, http.MethodPut, path, adminToken, struct{}{})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	absent := "/api/ProjectMembers/" + project.ID.String() + "/" + models.BootstrapSuperAdminID.String()
	rec = api.do(t, http.MethodPut, absent, superToken, struct{}{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeveloperMemberListingIsScoped(t *testing.T) {
	api := newTestAPI(t)
	dev, devToken := api.seedUser(t, "dev@taskboard.com", "DevPass12345!", models.RoleDeveloperID)
	other, _ := api.seedUser(t, "other@taskboard.com", "OthPass12345!", models.RoleDeveloperID)
	superToken := api.superAdminToken(t)

	mine := api.createProject(t, superToken, "Mine", models.BootstrapSuperAdminID)
	theirs := api.createProject(t, superToken, "Theirs", models.BootstrapSuperAdminID)
	api.addMember(t, superToken, mine.ID, dev.ID)
	api.addMember(t, superToken, theirs.ID, other.ID)

	rec := api.do(t, http.MethodGet, "/api/ProjectMembers", devToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	members := decodeBody[[]ProjectMemberDTO](t, rec)
	require.Len(t, members, 1)
	assert.Equal(t, mine.ID, members[0].ProjectID)
}
