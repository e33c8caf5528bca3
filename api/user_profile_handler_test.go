package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/backend/models"
)

func (a *testAPI) createProfile(t *testing.T, token string, userID uuid.UUID, fullName string) UserProfileDTO {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/UserProfiles", token, CreateUserProfileRequest{
		UserID:   userID,
		FullName: fullName,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeBody[UserProfileDTO](t, rec)
}

func TestProfileListingIsSuperAdminOnly(t *testing.T) {
	api := newTestAPI(t)
	_, adminToken := api.seedUser(t, "admin@taskboard.com", "AdmPass12345!", models.RoleAdminID)
	superToken := api.superAdminToken(t)

	rec := api.do(t, http.MethodGet, "/api/UserProfiles", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/UserProfiles", superToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProfileListingPaginatesAndSorts(t *testing.T) {
	api := newTestAPI(t)
	superToken := api.superAdminToken(t)

	for i := 0; i < 5; i++ {
		user, _ := api.seedUser(t, fmt.Sprintf("user%02d@taskboard.com", i), "UserPass12345!", models.RoleDeveloperID)
		api.createProfile(t, superToken, user.ID, fmt.Sprintf("User %02d", i))
	}

	rec := api.do(t, http.MethodGet, "/api/UserProfiles?page=2&pageSize=2&sortBy=fullname&sortOrder=asc", superToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decodeBody[ProfilePage](t, rec)

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.PageSize)
	assert.Equal(t, 3, page.TotalPages)
	assert.EqualValues(t, 5, page.TotalItems)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "User 02", page.Items[0].FullName)
	assert.Equal(t, "User 03", page.Items[1].FullName)
}

func TestProfileListingRejectsBadPaging(t *testing.T) {
	api := newTestAPI(t)
	superToken := api.superAdminToken(t)

	rec := api.do(t, http.MethodGet, "/api/UserProfiles?page=0", superToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/UserProfiles?pageSize=abc", superToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserManagesOwnProfileOnly(t *testing.T) {
	api := newTestAPI(t)
	dev, devToken := api.seedUser(t, "dev@taskboard.com", "DevPass12345!", models.RoleDeveloperID)
	other, _ := api.seedUser(t, "other@taskboard.com", "OthPass12345!", models.RoleDeveloperID)

	created := api.createProfile(t, devToken, dev.ID, "Dev One")
	assert.Equal(t, dev.ID, created.UserID)

	// creating a profile for someone else is rejected
	rec := api.do(t, http.MethodPost, "/api/UserProfiles", devToken, CreateUserProfileRequest{
		UserID:   other.ID,
		FullName: "Not Mine",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// reading someone else's profile is rejected too
	rec = api.do(t, http.MethodGet, "/api/UserProfiles/"+other.ID.String(), devToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/UserProfiles/"+dev.ID.String(), devToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decodeBody[UserProfileDTO](t, rec)
	assert.Equal(t, "Dev One", fetched.FullName)
}

func TestSuperAdminManagesAnyProfile(t *testing.T) {
	api := newTestAPI(t)
	dev, _ := api.seedUser(t, "dev@taskboard.com", "DevPass12345!", models.RoleDeveloperID)
	superToken := api.superAdminToken(t)

	api.createProfile(t, superToken, dev.ID, "Dev One")

	rec := api.do(t, http.MethodPatch, "/api/UserProfiles/"+dev.ID.String(), superToken, UpdateUserProfileRequest{
		Phone: "+1-555-0100",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	patched := decodeBody[UserProfileDTO](t, rec)
	assert.Equal(t, "+1-555-0100", patched.Phone)
	assert.Equal(t, "Dev One", patched.FullName)
}

func TestCreateProfileTwiceIsRejected(t *testing.T) {
	api := newTestAPI(t)
	dev, devToken := api.seedUser(t, "dev@taskboard.com", "DevPass12345!", models.RoleDeveloperID)

	api.createProfile(t, devToken, dev.ID, "Dev One")

	rec := api.do(t, http.MethodPost, "/api/UserProfiles", devToken, CreateUserProfileRequest{
		UserID:   dev.ID,
		FullName: "Dev Again",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileUpdateAndDeleteLifecycle(t *testing.T) {
	api := newTestAPI(t)
	dev, devToken := api.seedUser(t, "dev@taskboard.com", "DevPass12345!", models.RoleDeveloperID)

	api.createProfile(t, devToken, dev.ID, "Dev One")
	path := "/api/UserProfiles/" + dev.ID.String()

	rec := api.do(t, http.MethodPut, path, devToken, UpdateUserProfileRequest{
		FullName: "Dev Renamed",
		Address:  "1 Launchpad Way",
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodGet, path, devToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decodeBody[UserProfileDTO](t, rec)
	assert.Equal(t, "Dev Renamed", fetched.FullName)
	assert.Equal(t, "1 Launchpad Way", fetched.Address)

	rec = api.do(t, http.MethodDelete, path, devToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodGet, path, devToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
