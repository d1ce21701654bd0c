// portfolio.go
//
// Portfolio content service with an embedded admin API
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of visionfolio.
// visionfolio is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// visionfolio is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with visionfolio.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/visionfolio/internal/services"
	"github.com/localnerve/visionfolio/internal/utils"
)

// PortfolioHandler serves the public site
type PortfolioHandler struct {
	Store     *services.Store
	Assistant *services.Assistant
}

// GetPortfolio handles GET /api/portfolio
// @Summary Get the public portfolio
// @Description Profile, projects, skills, testimonials and the tag list in one response
// @Tags Portfolio
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /portfolio [get]
func (h *PortfolioHandler) GetPortfolio(c *fiber.Ctx) error {
	content := h.Store.Snapshot()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"siteName":     content.Settings.SiteName,
		"locale":       h.Store.Locale(),
		"profile":      content.Profile,
		"projects":     content.Projects,
		"tags":         services.TagUniverse(content.Projects),
		"skills":       services.GroupSkills(content.Skills),
		"testimonials": content.Testimonials,
	})
}

// GetProjects handles GET /api/projects?tag=...
// @Summary List projects
// @Description List projects, optionally only those carrying a tag. "All" matches every project.
// @Tags Portfolio
// @Produce json
// @Param tag query string false "Tag filter"
// @Success 200 {array} models.Project
// @Router /projects [get]
func (h *PortfolioHandler) GetProjects(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(orEmpty(services.FilterByTag(h.Store.Projects(), c.Query("tag"))))
}

// GetTags handles GET /api/projects/tags
// @Summary List project tags
// @Description "All" followed by every distinct project tag, sorted
// @Tags Portfolio
// @Produce json
// @Success 200 {array} string
// @Router /projects/tags [get]
func (h *PortfolioHandler) GetTags(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(services.TagUniverse(h.Store.Projects()))
}

// GetSkills handles GET /api/skills?canonical=true
// @Summary List skills grouped by category
// @Description canonical=true groups under the three fixed categories and drops the rest
// @Tags Portfolio
// @Produce json
// @Param canonical query bool false "Use the fixed category order"
// @Success 200 {array} services.SkillGroup
// @Router /skills [get]
func (h *PortfolioHandler) GetSkills(c *fiber.Ctx) error {
	skills := h.Store.Skills()
	if c.QueryBool("canonical") {
		return c.Status(fiber.StatusOK).JSON(services.GroupSkillsCanonical(skills))
	}
	return c.Status(fiber.StatusOK).JSON(orEmpty(services.GroupSkills(skills)))
}

// GetTestimonials handles GET /api/testimonials
// @Summary List testimonials
// @Tags Portfolio
// @Produce json
// @Success 200 {array} models.Testimonial
// @Router /testimonials [get]
func (h *PortfolioHandler) GetTestimonials(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(orEmpty(h.Store.Testimonials()))
}

// PostContact handles POST /api/contact
// @Summary Send an inquiry
// @Description Files a message in the admin inbox
// @Tags Portfolio
// @Accept json
// @Produce json
// @Param body body object true "from, subject, body"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /contact [post]
func (h *PortfolioHandler) PostContact(c *fiber.Ctx) error {
	var body struct {
		From    string `json:"from"`
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.InputErrorResponse(c, "Invalid input")
	}
	if strings.TrimSpace(body.From) == "" || strings.TrimSpace(body.Body) == "" {
		return utils.InputErrorResponse(c, "from and body are required")
	}

	msg := h.Store.ReceiveMessage(body.From, body.Subject, body.Body)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok": true,
		"id": msg.ID,
	})
}

// PostChat handles POST /api/chat
// @Summary Ask the portfolio assistant
// @Description Always answers; failures come back as a fixed apology
// @Tags Portfolio
// @Accept json
// @Produce json
// @Param body body object true "message"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /chat [post]
func (h *PortfolioHandler) PostChat(c *fiber.Ctx) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.InputErrorResponse(c, "Invalid input")
	}
	if strings.TrimSpace(body.Message) == "" {
		return utils.InputErrorResponse(c, "message is required")
	}

	reply := h.Assistant.Reply(c.UserContext(), body.Message)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"role": "model",
		"text": reply,
	})
}
