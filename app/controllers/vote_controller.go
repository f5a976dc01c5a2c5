package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/cleanstreetapp/cleanstreet/app/models"
	"github.com/cleanstreetapp/cleanstreet/app/repository"
	"github.com/cleanstreetapp/cleanstreet/internal/pkg/usercontext"
)

// HandleUpvote records an upvote on a complaint
func HandleUpvote(c *fiber.Ctx) error {
	return castVote(c, models.VoteUp)
}

// HandleDownvote records a downvote on a complaint
func HandleDownvote(c *fiber.Ctx) error {
	return castVote(c, models.VoteDown)
}

// castVote enforces one vote per (user, complaint) pair. The existence
// pre-check gives a friendly answer in the common case; the unique index on
// the votes table settles any race between concurrent attempts.
func castVote(c *fiber.Ctx, voteType string) error {
	id, ok := parseIDParam(c)
	if !ok {
		return notFoundError(c, "Complaint not found")
	}

	repos := repository.GetGlobalRepositories()
	if _, err := repos.Complaint.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError(c, "Complaint not found")
		}
		log.Printf("vote: failed to get complaint %d: %v", id, err)
		return serverError(c, "Failed to fetch complaint")
	}

	uctx := usercontext.GetUserContext(c)
	voted, err := repos.Vote.HasVoted(uctx.UserID, id)
	if err != nil {
		log.Printf("vote: failed to check existing vote: %v", err)
		return serverError(c, "Failed to record vote")
	}
	if voted {
		return conflictError(c, "Already voted")
	}

	vote := &models.Vote{
		UserID:      uctx.UserID,
		ComplaintID: id,
		VoteType:    voteType,
	}
	if err := repos.Vote.Create(vote); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return conflictError(c, "Already voted")
		}
		log.Printf("vote: failed to create: %v", err)
		return serverError(c, "Failed to record vote")
	}

	return c.JSON(fiber.Map{"message": "Vote recorded"})
}
