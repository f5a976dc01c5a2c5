package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleanstreetapp/cleanstreet/app/models"
)

func newProfileApp(user *models.User) *fiber.App {
	app := fiber.New()
	app.Get("/user/profile", asUser(user), HandleGetProfile)
	app.Put("/user/profile", asUser(user), HandleUpdateProfile)
	app.Get("/user/complaints", asUser(user), HandleMyComplaints)
	return app
}

func TestGetProfileHidesPassword(t *testing.T) {
	repos := setupControllerTest(t)
	user := newTestUser(t, repos, "priya@example.com", models.ROLE_USER)
	app := newProfileApp(user)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/user/profile", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "priya@example.com", body["email"])
	assert.NotContains(t, body, "password")
}

func TestUpdateProfile(t *testing.T) {
	repos := setupControllerTest(t)
	user := newTestUser(t, repos, "priya@example.com", models.ROLE_USER)
	app := newProfileApp(user)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/user/profile", map[string]string{
		"location": "Pune",
		"bio":      "Neighborhood watch volunteer",
	}), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	stored, err := repos.User.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pune", stored.Location)
	assert.Equal(t, "Neighborhood watch volunteer", stored.Bio)
	assert.Equal(t, "Priya", stored.FirstName, "omitted fields keep their value")
}

func TestUpdateProfilePassword(t *testing.T) {
	repos := setupControllerTest(t)
	user := newTestUser(t, repos, "priya@example.com", models.ROLE_USER)
	app := newProfileApp(user)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/user/profile", map[string]string{
		"password": "short",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodPut, "/user/profile", map[string]string{
		"password": "brand-new-pass",
	}), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	stored, err := repos.User.GetByID(user.ID)
	require.NoError(t, err)
	assert.True(t, stored.CheckPassword("brand-new-pass"))
}

func TestMyComplaintsOnlyOwn(t *testing.T) {
	repos := setupControllerTest(t)
	mine := newTestUser(t, repos, "mine@example.com", models.ROLE_USER)
	other := newTestUser(t, repos, "other@example.com", models.ROLE_USER)

	for _, u := range []*models.User{mine, other} {
		app := fiber.New()
		app.Post("/complaints", asUser(u), HandleCreateComplaint)
		resp, err := app.Test(jsonRequest(http.MethodPost, "/complaints", newComplaintBody()), -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	app := newProfileApp(mine)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/user/complaints", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var complaints []models.Complaint
	decodeJSON(t, resp, &complaints)
	require.Len(t, complaints, 1)
	assert.Equal(t, mine.ID, complaints[0].UserID)
}
