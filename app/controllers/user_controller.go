package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/cleanstreetapp/cleanstreet/app/repository"
	"github.com/cleanstreetapp/cleanstreet/internal/pkg/usercontext"
)

// profileRequest is the owner-editable slice of a user record. Role and
// email stay out of reach of this endpoint.
type profileRequest struct {
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	Location     *string `json:"location"`
	Website      *string `json:"website"`
	Bio          *string `json:"bio"`
	ProfileImage *string `json:"profileImage"`
	Password     *string `json:"password"`
}

// HandleGetProfile returns the authenticated user's record
func HandleGetProfile(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(uctx.UserID)
	if err != nil {
		return notFoundError(c, "User not found")
	}

	return c.JSON(user)
}

// HandleUpdateProfile updates the caller's profile fields
func HandleUpdateProfile(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return validationError(c, "Malformed request body")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByID(uctx.UserID)
	if err != nil {
		return notFoundError(c, "User not found")
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.Website != nil {
		user.Website = *req.Website
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.ProfileImage != nil {
		user.ProfileImage = *req.ProfileImage
	}
	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) < 6 {
			return validationError(c, "Password must be at least 6 characters")
		}
		if err := user.SetPassword(*req.Password); err != nil {
			log.Printf("profile: failed to hash password: %v", err)
			return serverError(c, "Failed to update password")
		}
	}

	if err := user.Validate(); err != nil {
		return validationError(c, "Invalid profile data")
	}

	if err := repo.Update(user); err != nil {
		log.Printf("profile: failed to update user %d: %v", user.ID, err)
		return serverError(c, "Failed to update profile")
	}

	return c.JSON(user)
}

// HandleMyComplaints lists the caller's own complaints, newest first
func HandleMyComplaints(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	complaints, err := repository.GetGlobalFactory().GetComplaintRepository().
		List(repository.ComplaintFilter{UserID: uctx.UserID})
	if err != nil {
		log.Printf("profile: failed to list complaints for user %d: %v", uctx.UserID, err)
		return serverError(c, "Failed to fetch complaints")
	}

	return c.JSON(complaints)
}
