package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/cleanstreetapp/cleanstreet/app/controllers"
	"github.com/cleanstreetapp/cleanstreet/internal/pkg/middleware"
)

type ApiRouter struct {
	limiterStorage fiber.Storage
}

func NewApiRouter(limiterStorage fiber.Storage) *ApiRouter {
	return &ApiRouter{limiterStorage: limiterStorage}
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	// Controllers bind to the global repositories once, up front.
	controllers.InitializeDashboardController()
	controllers.InitializeAdminController()

	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		Storage:    h.limiterStorage,
	}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "CleanStreet API is running",
		})
	})

	auth := api.Group("/auth")
	auth.Post("/signup", controllers.HandleSignup)
	auth.Post("/login", controllers.HandleLogin)

	user := api.Group("/user", middleware.RequireAuth())
	user.Get("/profile", controllers.HandleGetProfile)
	user.Put("/profile", controllers.HandleUpdateProfile)
	user.Get("/complaints", controllers.HandleMyComplaints)

	api.Get("/complaints", controllers.HandleListComplaints)
	api.Get("/complaints/:id", controllers.HandleGetComplaint)
	api.Post("/complaints", middleware.RequireAuth(), controllers.HandleCreateComplaint)
	api.Put("/complaints/:id", middleware.RequireAuth(), controllers.HandleUpdateComplaint)
	api.Delete("/complaints/:id", middleware.RequireAuth(), controllers.HandleDeleteComplaint)

	api.Get("/complaints/:id/comments", controllers.HandleListComments)
	api.Post("/complaints/:id/comments", middleware.RequireAuth(), controllers.HandleAddComment)

	api.Post("/complaints/:id/like", middleware.RequireAuth(), controllers.HandleUpvote)
	api.Post("/complaints/:id/dislike", middleware.RequireAuth(), controllers.HandleDownvote)

	// Multipart submission path used by the report form (photo upload).
	api.Post("/complaint/submit", middleware.RequireAuth(), controllers.HandleSubmitComplaintForm)

	dashboard := api.Group("/dashboard")
	dashboard.Get("/stats", controllers.HandleDashboardStats)
	dashboard.Get("/complaints-over-time", controllers.HandleComplaintsOverTime)

	admin := api.Group("/admin", middleware.RequireAuth(), middleware.RequireAdmin())
	ac := controllers.GetAdminController()
	admin.Get("/dashboard", ac.HandleDashboard)
	admin.Get("/users", ac.HandleUsers)
	admin.Patch("/complaints/:id/status", ac.HandleUpdateComplaintStatus)
}
