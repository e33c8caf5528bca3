package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/backend/models"
)

func TestRegisterLoginAndFetchUser(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Email:    "alice@taskboard.com",
		Password: "CorrectHorse1!",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[UserDTO](t, rec)
	assert.Equal(t, "alice@taskboard.com", created.Email)
	assert.Equal(t, models.RoleDeveloperID, created.RoleID)
	assert.Equal(t, "/api/Users/"+created.ID.String(), rec.Header().Get("Location"))

	rec = api.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{
		Email:    "alice@taskboard.com",
		Password: "CorrectHorse1!",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	login := decodeBody[LoginResponse](t, rec)
	require.NotEmpty(t, login.Token)

	rec = api.do(t, http.MethodGet, "/api/Users/"+created.ID.String(), login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decodeBody[UserDTO](t, rec)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "alice@taskboard.com", fetched.Email)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	api := newTestAPI(t)

	first := api.do(t, http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Email:    "alice@taskboard.com",
		Password: "CorrectHorse1!",
	})
	require.Equal(t, http.StatusCreated, first.Code)

	second := api.do(t, http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Email:    "alice@taskboard.com",
		Password: "AnotherPass22!",
	})
	assert.Equal(t, http.StatusBadRequest, second.Code)
}

func TestRegisterRejectsSuperAdminRoleForAnonymous(t *testing.T) {
	api := newTestAPI(t)

	roleID := models.RoleSuperAdminID
	rec := api.do(t, http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Email:    "mallory@taskboard.com",
		Password: "Sneaky12345!",
		RoleID:   &roleID,
	})
	assert.NotEqual(t, http.StatusCreated, rec.Code)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	api := newTestAPI(t)
	api.seedUser(t, "bob@taskboard.com", "RealPassword1!", models.RoleDeveloperID)

	unknownEmail := api.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{
		Email:    "nobody@taskboard.com",
		Password: "RealPassword1!",
	})
	wrongPassword := api.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{
		Email:    "bob@taskboard.com",
		Password: "WrongPassword1!",
	})

	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, unknownEmail.Body.String(), wrongPassword.Body.String())
}

func TestBootstrapSuperAdminCanLogin(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{
		Email:    "superadmin@taskboard.com",
		Password: "SuperAdmin@123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	login := decodeBody[LoginResponse](t, rec)
	assert.NotEmpty(t, login.Token)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/Users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/Users", "not-a-valid-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
