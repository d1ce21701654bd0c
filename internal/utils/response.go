package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/visionfolio/internal/models"
	"github.com/localnerve/visionfolio/internal/types"
)

// ErrorResponse sends the standard error envelope
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// InputErrorResponse sends a 400 for a malformed or incomplete request body
func InputErrorResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusBadRequest, types.ErrorTypeInput)
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status":    fiber.StatusNotFound,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}

// MutationSuccessResponse reports a store mutation along with the content
// version it produced and the notifications now live
func MutationSuccessResponse(c *fiber.Ctx, version uint64, notifications []models.Notification) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":       "Success",
		"ok":            true,
		"version":       version,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
		"notifications": notifications,
	})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Type      string `json:"type,omitempty"`
}

// SuccessResponseStruct defines the schema for mutation success responses
type SuccessResponseStruct struct {
	Message       string                `json:"message"`
	Ok            bool                  `json:"ok"`
	Version       uint64                `json:"version"`
	Timestamp     string                `json:"timestamp"`
	Notifications []models.Notification `json:"notifications"`
}
