package router

import (
	"github.com/gofiber/fiber/v2"
)

type Router interface {
	InstallRouter(app *fiber.App)
}

// InstallRouter registers all API routes. limiterStorage backs the rate
// limiter and may be nil, in which case the limiter keeps counters in
// memory (tests, single-instance deployments).
func InstallRouter(app *fiber.App, limiterStorage fiber.Storage) {
	setup(app, NewApiRouter(limiterStorage))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
