package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/taskboard/backend/auth"
	"github.com/taskboard/backend/database"
	"github.com/taskboard/backend/models"
)

// testAPI bundles a router over a seeded throwaway database with the token
// service the router itself runs, so tests can mint valid bearer tokens.
type testAPI struct {
	router http.Handler
	db     database.Database
	gormDB *gorm.DB
	tokens auth.TokenService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "taskboard_test.db")
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, gormDB.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, database.Migrate(gormDB))
	require.NoError(t, database.Seed(gormDB))

	db := database.New(gormDB)

	// Same defaults newRouter falls back to with an empty config
	tokens := auth.NewTokenService("dev-only-signing-key", "taskboard", "taskboard-api", 180)

	return &testAPI{
		router: newRouter(db, withConfig(map[string]string{})),
		db:     db,
		gormDB: gormDB,
		tokens: tokens,
	}
}

// seedUser inserts a user with the given role and returns it along with a
// valid bearer token.
func (a *testAPI) seedUser(t *testing.T, email, password string, roleID uuid.UUID) (*models.User, string) {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		RoleID:       roleID,
	}
	require.NoError(t, a.db.UserRepo().Add(user))

	loaded, err := a.db.UserRepo().FindByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	token, err := a.tokens.Generate(loaded.ID, loaded.Email, loaded.Role.Name)
	require.NoError(t, err)

	return loaded, token
}

func (a *testAPI) superAdminToken(t *testing.T) string {
	t.Helper()
	token, err := a.tokens.Generate(models.BootstrapSuperAdminID, "superadmin@taskboard.com", models.RoleSuperAdmin)
	require.NoError(t, err)
	return token
}

// do issues a request against the router. A non-empty token is attached as
// a bearer credential; a non-nil body is JSON-encoded.
func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
