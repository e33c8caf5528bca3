package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/backend/models"
)

func (a *testAPI) createTag(t *testing.T, token, name, colorHex string) TagDTO {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/Tags", token, TagRequest{Name: name, ColorHex: colorHex})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeBody[TagDTO](t, rec)
}

func TestAnyAuthenticatedUserManagesTags(t *testing.T) {
	api := newTestAPI(t)
	_, devToken := api.seedUser(t, "dev@taskboard.com", "DevPass12345!", models.RoleDeveloperID)

	created := api.createTag(t, devToken, "urgent", "#ff0000")
	assert.Equal(t, "urgent", created.Name)
	assert.Equal(t, "#ff0000", created.ColorHex)

	rec := api.do(t, http.MethodPut, "/api/Tags/"+created.ID.String(), devToken, TagRequest{Name: "blocker"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/Tags/"+created.ID.String(), devToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decodeBody[TagDTO](t, rec)
	assert.Equal(t, "blocker", fetched.Name)
	assert.Equal(t, "#ff0000", fetched.ColorHex)

	rec = api.do(t, http.MethodDelete, "/api/Tags/"+created.ID.String(), devToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/Tags/"+created.ID.String(), devToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateTagDefaultsColor(t *testing.T) {
	api := newTestAPI(t)
	_, devToken := api.seedUser(t, "dev@taskboard.com", "DevPass12345!", models.RoleDeveloperID)

	created := api.createTag(t, devToken, "plain", "")
	assert.Equal(t, "#000000", created.ColorHex)
}

func TestCreateTagRejectsBadColor(t *testing.T) {
	api := newTestAPI(t)
	_, devToken := api.seedUser(t, "dev@taskboard.com", "DevPass12345!", models.RoleDeveloperID)

	rec := api.do(t, http.MethodPost, "/api/Tags", devToken, TagRequest{Name: "bad", ColorHex: "red"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/Tags", devToken, TagRequest{Name: "bad", ColorHex: "#ff00"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
