package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/cleanstreetapp/cleanstreet/app/repository"
	"github.com/cleanstreetapp/cleanstreet/internal/pkg/statistics"
)

var statsService *statistics.Service

// InitializeDashboardController wires the statistics service to the global
// repositories. Called once during router installation.
func InitializeDashboardController() {
	statsService = statistics.NewService(repository.GetGlobalRepositories())
}

// HandleDashboardStats returns total and per-status complaint counts
func HandleDashboardStats(c *fiber.Ctx) error {
	counts, err := statsService.CountsByStatus()
	if err != nil {
		log.Printf("dashboard: failed to compute status counts: %v", err)
		return serverError(c, "Failed to compute statistics")
	}
	return c.JSON(counts)
}

// HandleComplaintsOverTime returns the per-day complaint counts in
// ascending date order
func HandleComplaintsOverTime(c *fiber.Ctx) error {
	series, err := statsService.TimeSeries()
	if err != nil {
		log.Printf("dashboard: failed to compute time series: %v", err)
		return serverError(c, "Failed to compute statistics")
	}
	return c.JSON(series)
}
