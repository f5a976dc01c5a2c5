package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// jsonError writes the API error envelope shared by every endpoint
func jsonError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": message,
	})
}

func validationError(c *fiber.Ctx, message string) error {
	return jsonError(c, fiber.StatusBadRequest, "validation_error", message)
}

func notFoundError(c *fiber.Ctx, message string) error {
	return jsonError(c, fiber.StatusNotFound, "not_found", message)
}

func forbiddenError(c *fiber.Ctx, message string) error {
	return jsonError(c, fiber.StatusForbidden, "forbidden", message)
}

func conflictError(c *fiber.Ctx, message string) error {
	return jsonError(c, fiber.StatusConflict, "conflict", message)
}

func serverError(c *fiber.Ctx, message string) error {
	return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", message)
}

// parseIDParam reads the :id route parameter. A malformed identifier is
// indistinguishable from an unknown one at the API surface, so callers
// answer both with a 404.
func parseIDParam(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
