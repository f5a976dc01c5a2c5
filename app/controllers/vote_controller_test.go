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

func TestVoteOncePerUserPerComplaint(t *testing.T) {
	repos := setupControllerTest(t)
	reporter := newTestUser(t, repos, "reporter@example.com", models.ROLE_USER)
	voter := newTestUser(t, repos, "voter@example.com", models.ROLE_USER)

	reporterApp := fiber.New()
	reporterApp.Post("/complaints", asUser(reporter), HandleCreateComplaint)
	resp, err := reporterApp.Test(jsonRequest(http.MethodPost, "/complaints", newComplaintBody()), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	voterApp := fiber.New()
	voterApp.Post("/complaints/:id/like", asUser(voter), HandleUpvote)
	voterApp.Post("/complaints/:id/dislike", asUser(voter), HandleDownvote)

	resp, err = voterApp.Test(httptest.NewRequest(http.MethodPost, "/complaints/1/like", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Second attempt conflicts, whichever direction it takes.
	resp, err = voterApp.Test(httptest.NewRequest(http.MethodPost, "/complaints/1/like", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, err = voterApp.Test(httptest.NewRequest(http.MethodPost, "/complaints/1/dislike", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	count, err := repos.Vote.CountByComplaint(1, models.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "exactly one vote row for the pair")
}

func TestVoteUnknownComplaint(t *testing.T) {
	repos := setupControllerTest(t)
	voter := newTestUser(t, repos, "voter@example.com", models.ROLE_USER)

	app := fiber.New()
	app.Post("/complaints/:id/like", asUser(voter), HandleUpvote)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/complaints/77/like", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestVoteSecondUserAllowed(t *testing.T) {
	repos := setupControllerTest(t)
	reporter := newTestUser(t, repos, "reporter@example.com", models.ROLE_USER)
	first := newTestUser(t, repos, "first@example.com", models.ROLE_USER)
	second := newTestUser(t, repos, "second@example.com", models.ROLE_USER)

	reporterApp := fiber.New()
	reporterApp.Post("/complaints", asUser(reporter), HandleCreateComplaint)
	resp, err := reporterApp.Test(jsonRequest(http.MethodPost, "/complaints", newComplaintBody()), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	for _, voter := range []*models.User{first, second} {
		app := fiber.New()
		app.Post("/complaints/:id/like", asUser(voter), HandleUpvote)
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/complaints/1/like", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	count, err := repos.Vote.CountByComplaint(1, models.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
