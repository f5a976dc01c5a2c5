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

func TestDashboardStats(t *testing.T) {
	repos := setupControllerTest(t)
	InitializeDashboardController()
	user := newTestUser(t, repos, "reporter@example.com", models.ROLE_USER)

	app := fiber.New()
	app.Post("/complaints", asUser(user), HandleCreateComplaint)
	app.Get("/dashboard/stats", HandleDashboardStats)
	app.Get("/dashboard/complaints-over-time", HandleComplaintsOverTime)

	for i := 0; i < 3; i++ {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/complaints", newComplaintBody()), -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var counts models.StatusCounts
	decodeJSON(t, resp, &counts)
	assert.Equal(t, int64(3), counts.Total)
	assert.Equal(t, int64(3), counts.Received)
	assert.Zero(t, counts.Resolved)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/dashboard/complaints-over-time", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var series []models.DailyStats
	decodeJSON(t, resp, &series)
	require.Len(t, series, 1, "all three complaints landed on today")
	assert.Equal(t, 3, series[0].Count)
}
