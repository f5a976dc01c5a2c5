package controllers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/cleanstreetapp/cleanstreet/app/models"
	"github.com/cleanstreetapp/cleanstreet/app/repository"
	"github.com/cleanstreetapp/cleanstreet/internal/pkg/statistics"
)

// AdminController handles admin-only HTTP requests using the repository
// pattern
type AdminController struct {
	repos *repository.Repositories
	stats *statistics.Service
}

var adminController *AdminController

// InitializeAdminController creates the admin controller with the global
// repositories. Called once during router installation.
func InitializeAdminController() {
	repos := repository.GetGlobalRepositories()
	adminController = &AdminController{
		repos: repos,
		stats: statistics.NewService(repos),
	}
}

// GetAdminController returns the initialized admin controller
func GetAdminController() *AdminController {
	if adminController == nil {
		panic("Admin controller not initialized. Call InitializeAdminController first.")
	}
	return adminController
}

// HandleDashboard returns the composed admin dashboard envelope
func (ac *AdminController) HandleDashboard(c *fiber.Ctx) error {
	dashboard, err := ac.stats.AdminDashboard()
	if err != nil {
		log.Printf("admin: failed to compose dashboard: %v", err)
		return serverError(c, "Failed to compose dashboard")
	}
	return c.JSON(dashboard)
}

// HandleUsers lists user accounts with pagination
func (ac *AdminController) HandleUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage := 20
	offset := (page - 1) * perPage

	total, err := ac.repos.User.Count()
	if err != nil {
		log.Printf("admin: failed to count users: %v", err)
		return serverError(c, "Failed to fetch users")
	}

	users, err := ac.repos.User.List(offset, perPage)
	if err != nil {
		log.Printf("admin: failed to list users: %v", err)
		return serverError(c, "Failed to fetch users")
	}

	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}

	return c.JSON(fiber.Map{
		"users":      users,
		"total":      total,
		"page":       page,
		"totalPages": totalPages,
	})
}

type statusUpdateRequest struct {
	Status     string  `json:"status"`
	AssignedTo *string `json:"assigned_to"`
}

// HandleUpdateComplaintStatus sets a complaint's status (any of the three
// values, including reopening a resolved complaint) and optionally its
// assignee
func (ac *AdminController) HandleUpdateComplaintStatus(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return notFoundError(c, "Complaint not found")
	}

	var req statusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return validationError(c, "Malformed request body")
	}
	if !models.IsValidStatus(req.Status) {
		return validationError(c, "Status must be one of: received, in_review, resolved")
	}

	complaint, err := ac.repos.Complaint.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError(c, "Complaint not found")
		}
		log.Printf("admin: failed to get complaint %d: %v", id, err)
		return serverError(c, "Failed to fetch complaint")
	}

	complaint.Status = req.Status
	if req.AssignedTo != nil && *req.AssignedTo != "" {
		complaint.AssignedTo = *req.AssignedTo
	}

	if err := ac.repos.Complaint.Update(complaint); err != nil {
		log.Printf("admin: failed to update complaint %d: %v", id, err)
		return serverError(c, "Failed to update complaint")
	}
	statistics.InvalidateCounts()

	return c.JSON(complaint)
}
