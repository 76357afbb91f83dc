package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// APIResponse is the uniform envelope wrapped around every response body,
// success and failure alike.
type APIResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	Timestamp  time.Time   `json:"timestamp"`
	Path       string      `json:"path"`
	StatusCode int         `json:"statusCode"`
}

func Success(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(APIResponse{
		Success:    true,
		Message:    message,
		Data:       data,
		Timestamp:  time.Now(),
		Path:       c.Path(),
		StatusCode: status,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(APIResponse{
		Success:    false,
		Message:    message,
		Timestamp:  time.Now(),
		Path:       c.Path(),
		StatusCode: status,
	})
}

// ValidationError carries a field-to-message map for malformed input.
func ValidationError(c *fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(APIResponse{
		Success:    false,
		Message:    "Validation failed",
		Data:       fields,
		Timestamp:  time.Now(),
		Path:       c.Path(),
		StatusCode: fiber.StatusBadRequest,
	})
}
