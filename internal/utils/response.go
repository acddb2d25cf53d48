package utils

import "github.com/gofiber/fiber/v2"

// Success sends a JSON response with success true and the given payload
// fields merged in.
func Success(c *fiber.Ctx, data fiber.Map) error {
	payload := fiber.Map{"success": true}
	for k, v := range data {
		payload[k] = v
	}
	return c.Status(fiber.StatusOK).JSON(payload)
}

// Fail sends a JSON error response with the machine-readable reason and an
// optional human-readable message.
func Fail(c *fiber.Ctx, status int, reason, message string) error {
	payload := fiber.Map{"success": false, "error": reason}
	if message != "" {
		payload["message"] = message
	}
	return c.Status(status).JSON(payload)
}

// BadRequest sends a 400 failure.
func BadRequest(c *fiber.Ctx, reason, message string) error {
	return Fail(c, fiber.StatusBadRequest, reason, message)
}

// Unauthorized sends a 401 failure.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Fail(c, fiber.StatusUnauthorized, "unauthorized", message)
}
