package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/visionfolio/internal/services"
)

// HealthHandler serves the health endpoint
type HealthHandler struct {
	Inputs services.HealthInputs
}

// GetHealth handles GET /health
// @Summary Service health
// @Description 200 while healthy or degraded, 503 when unhealthy
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	result := services.HealthCheck(c.UserContext(), h.Inputs)
	status := fiber.StatusOK
	if result.Status == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
