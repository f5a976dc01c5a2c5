package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/cleanstreetapp/cleanstreet/app/models"
	"github.com/cleanstreetapp/cleanstreet/app/repository"
	"github.com/cleanstreetapp/cleanstreet/internal/pkg/token"
)

type signupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleSignup registers a new citizen account and returns a bearer token
func HandleSignup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return validationError(c, "Malformed request body")
	}

	user, err := models.CreateUser(req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		return validationError(c, "Email and a password of at least 6 characters are required")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	if _, err := repo.GetByEmail(user.Email); err == nil {
		return conflictError(c, "User already exists")
	}

	if err := repo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return conflictError(c, "User already exists")
		}
		log.Printf("signup: failed to create user: %v", err)
		return serverError(c, "Failed to create user")
	}

	t, err := token.Generate(user.ID, user.Role)
	if err != nil {
		log.Printf("signup: failed to sign token: %v", err)
		return serverError(c, "Failed to create token")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":   t,
		"message": "User registered successfully",
	})
}

// HandleLogin verifies credentials and returns a bearer token with the
// user's public identity
func HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return validationError(c, "Malformed request body")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByEmail(req.Email)
	if err != nil || !user.CheckPassword(req.Password) {
		// Same answer for unknown email and wrong password.
		return validationError(c, "Invalid credentials")
	}

	t, err := token.Generate(user.ID, user.Role)
	if err != nil {
		log.Printf("login: failed to sign token: %v", err)
		return serverError(c, "Failed to create token")
	}

	return c.JSON(fiber.Map{
		"token": t,
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.DisplayName(),
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
