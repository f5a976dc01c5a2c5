package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleanstreetapp/cleanstreet/app/models"
	"github.com/cleanstreetapp/cleanstreet/app/repository"
	"github.com/cleanstreetapp/cleanstreet/internal/pkg/database"
	"github.com/cleanstreetapp/cleanstreet/internal/pkg/token"
)

func newTestApp(t *testing.T) (*fiber.App, *repository.Repositories) {
	t.Helper()
	db := database.SetupTestDatabase()
	repository.InitializeFactory(db)

	app := fiber.New()
	InstallRouter(app, nil)
	return app, repository.GetGlobalRepositories()
}

func signup(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	payload, _ := json.Marshal(map[string]string{
		"firstName": "Route",
		"lastName":  "Tester",
		"email":     email,
		"password":  "secret123",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	require.NotEmpty(t, body["token"])
	return body["token"]
}

func TestPublicRoutesNeedNoToken(t *testing.T) {
	app, _ := newTestApp(t)

	for _, path := range []string{
		"/api/complaints",
		"/api/dashboard/stats",
		"/api/dashboard/complaints-over-time",
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
	}
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSignupTokenOpensProtectedRoutes(t *testing.T) {
	app, _ := newTestApp(t)
	bearer := signup(t, app, "route@example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	req.Header.Set("Authorization", "Bearer "+bearer)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestStaleTokenForDeletedUser(t *testing.T) {
	app, repos := newTestApp(t)
	bearer := signup(t, app, "ghost@example.com")

	user, err := repos.User.GetByEmail("ghost@example.com")
	require.NoError(t, err)
	require.NoError(t, database.GetDB().Unscoped().Delete(&models.User{}, user.ID).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	req.Header.Set("Authorization", "Bearer "+bearer)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	app, repos := newTestApp(t)
	bearer := signup(t, app, "citizen@example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+bearer)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Promote the account; the role check reads the database, not the token.
	user, err := repos.User.GetByEmail("citizen@example.com")
	require.NoError(t, err)
	user.Role = models.ROLE_ADMIN
	require.NoError(t, repos.User.Update(user))

	adminToken, err := token.Generate(user.ID, user.Role)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
