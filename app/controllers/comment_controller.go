package controllers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/cleanstreetapp/cleanstreet/app/models"
	"github.com/cleanstreetapp/cleanstreet/app/repository"
	"github.com/cleanstreetapp/cleanstreet/internal/pkg/usercontext"
)

// commentRequest is the canonical comment shape; older clients that sent
// "comment" or "text" must migrate.
type commentRequest struct {
	Content string `json:"content"`
}

// HandleAddComment appends a comment to a complaint
func HandleAddComment(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return notFoundError(c, "Complaint not found")
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return validationError(c, "Malformed request body")
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return validationError(c, "Missing comment content")
	}

	repos := repository.GetGlobalRepositories()
	if _, err := repos.Complaint.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError(c, "Complaint not found")
		}
		log.Printf("comment: failed to get complaint %d: %v", id, err)
		return serverError(c, "Failed to fetch complaint")
	}

	uctx := usercontext.GetUserContext(c)
	comment := &models.Comment{
		UserID:      uctx.UserID,
		ComplaintID: id,
		Content:     content,
	}
	if err := repos.Comment.Create(comment); err != nil {
		log.Printf("comment: failed to create: %v", err)
		return serverError(c, "Failed to add comment")
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// HandleListComments lists the comments on a complaint, newest first, with
// author display names
func HandleListComments(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return notFoundError(c, "Complaint not found")
	}

	repos := repository.GetGlobalRepositories()
	if _, err := repos.Complaint.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError(c, "Complaint not found")
		}
		log.Printf("comment: failed to get complaint %d: %v", id, err)
		return serverError(c, "Failed to fetch complaint")
	}

	comments, err := repos.Comment.ListByComplaint(id)
	if err != nil {
		log.Printf("comment: failed to list for complaint %d: %v", id, err)
		return serverError(c, "Failed to fetch comments")
	}

	out := make([]fiber.Map, len(comments))
	for i, cm := range comments {
		out[i] = fiber.Map{
			"id":         cm.ID,
			"content":    cm.Content,
			"author":     cm.User.DisplayName(),
			"created_at": cm.CreatedAt,
		}
	}

	return c.JSON(out)
}
