package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/visionfolio/internal/middleware"
	"github.com/localnerve/visionfolio/internal/types"
	"github.com/localnerve/visionfolio/internal/utils"
)

// Handlers groups the route handlers mounted under /api
type Handlers struct {
	Portfolio       *PortfolioHandler
	Admin           *AdminHandler
	Health          *HealthHandler
	AdminPassphrase string
}

// Register mounts every route on app
func Register(app *fiber.App, h Handlers) {
	if h.Health != nil {
		app.Get("/health", h.Health.GetHealth)
	}

	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	api.Get("/portfolio", h.Portfolio.GetPortfolio)
	api.Get("/projects", h.Portfolio.GetProjects)
	api.Get("/projects/tags", h.Portfolio.GetTags)
	api.Get("/skills", h.Portfolio.GetSkills)
	api.Get("/testimonials", h.Portfolio.GetTestimonials)
	api.Post("/contact", h.Portfolio.PostContact)
	api.Post("/chat", h.Portfolio.PostChat)

	admin := api.Group("/admin", middleware.AuthAdmin(h.AdminPassphrase))
	a := h.Admin

	admin.Get("/content", a.GetContent)
	admin.Put("/profile", a.PutProfile)
	admin.Get("/settings", a.GetSettings)
	admin.Put("/settings", a.PutSettings)

	admin.Post("/projects", a.PostProject)
	admin.Put("/projects/:id", a.PutProject)
	admin.Delete("/projects/:id", a.DeleteProject)

	admin.Post("/skills", a.PostSkill)
	admin.Put("/skills/:id", a.PutSkill)
	admin.Delete("/skills/:id", a.DeleteSkill)

	admin.Post("/testimonials", a.PostTestimonial)
	admin.Put("/testimonials/:id", a.PutTestimonial)
	admin.Delete("/testimonials/:id", a.DeleteTestimonial)

	admin.Post("/meetings", a.PostMeeting)
	admin.Put("/meetings/:id", a.PutMeeting)
	admin.Delete("/meetings/:id", a.DeleteMeeting)

	admin.Get("/messages", a.GetMessages)
	admin.Post("/messages/read", a.PostMessageRead)
	admin.Post("/mail", a.PostMail)
	admin.Post("/reset", a.PostReset)
	admin.Post("/locale", a.PostLocale)

	admin.Get("/board", a.GetBoard)
	admin.Get("/overview", a.GetOverview)
	admin.Get("/notifications", a.GetNotifications)
	admin.Delete("/notifications/:id", a.DeleteNotification)
}

// NotFound is the terminal 404 handler
func NotFound(c *fiber.Ctx) error {
	return utils.NotFoundResponse(c, "[404] Resource Not Found")
}

// ErrorHandler handles errors globally
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := types.ErrorTypeUnknown

	var fe *fiber.Error
	var ce *types.CustomError
	switch {
	case errors.As(err, &ce):
		code = ce.Code
		message = ce.Message
		errorType = ce.Type
	case errors.As(err, &fe):
		code = fe.Code
		message = fe.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
