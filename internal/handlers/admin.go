// admin.go
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
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/visionfolio/internal/models"
	"github.com/localnerve/visionfolio/internal/seed"
	"github.com/localnerve/visionfolio/internal/services"
	"github.com/localnerve/visionfolio/internal/types"
	"github.com/localnerve/visionfolio/internal/utils"
)

// AdminHandler handles the passphrase-guarded admin routes
type AdminHandler struct {
	Store *services.Store
	Now   func() time.Time
}

func (h *AdminHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *AdminHandler) mutated(c *fiber.Ctx) error {
	return utils.MutationSuccessResponse(c, h.Store.Version(), h.Store.Notifications())
}

// GetContent handles GET /api/admin/content
// @Summary Get all content
// @Tags Admin
// @Produce json
// @Security AdminPassphrase
// @Success 200 {object} map[string]interface{}
// @Router /admin/content [get]
func (h *AdminHandler) GetContent(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"locale":  h.Store.Locale(),
		"version": h.Store.Version(),
		"content": h.Store.Snapshot(),
	})
}

// PutProfile handles PUT /api/admin/profile
// @Summary Replace the profile
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminPassphrase
// @Param body body models.Profile true "Profile"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /admin/profile [put]
func (h *AdminHandler) PutProfile(c *fiber.Ctx) error {
	var profile models.Profile
	if err := c.BodyParser(&profile); err != nil {
		return utils.InputErrorResponse(c, "Invalid input")
	}
	if strings.TrimSpace(profile.Name) == "" {
		return utils.InputErrorResponse(c, "name is required")
	}

	h.Store.UpdateProfile(profile)
	return h.mutated(c)
}

// GetSettings handles GET /api/admin/settings
// @Summary Get settings
// @Tags Admin
// @Produce json
// @Security AdminPassphrase
// @Success 200 {object} models.Settings
// @Router /admin/settings [get]
func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.Store.Settings())
}

// PutSettings handles PUT /api/admin/settings
// @Summary Replace settings
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminPassphrase
// @Param body body models.Settings true "Settings"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /admin/settings [put]
func (h *AdminHandler) PutSettings(c *fiber.Ctx) error {
	var settings models.Settings
	if err := c.BodyParser(&settings); err != nil {
		return utils.InputErrorResponse(c, "Invalid input")
	}

	h.Store.UpdateSettings(settings)
	return h.mutated(c)
}

// PostProject handles POST /api/admin/projects
// @Summary Add a project
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminPassphrase
// @Param body body object true "Project"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /admin/projects [post]
func (h *AdminHandler) PostProject(c *fiber.Ctx) error {
	var in projectInput
	if err := c.BodyParser(&in); err != nil {
		return utils.InputErrorResponse(c, "Invalid input")
	}
	p, err := in.toProject()
	if err != nil {
		return utils.InputErrorResponse(c, err.Error())
	}
	if p.ID == "" {
		p.ID = newID()
	}

	h.Store.AddProject(p)
	return h.mutated(c)
}

// PutProject handles PUT /api/admin/projects/:id
// @Summary Update a project
// @Description Replaces the first project with this id. Unknown ids change nothing.
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminPassphrase
// @Param id path string true "Project ID"
// @Param body body object true "Project"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /admin/projects/{id} [put]
func (h *AdminHandler) PutProject(c *fiber.Ctx) error {
	var in projectInput
	if err := c.BodyParser(&in); err != nil {
		return utils.InputErrorResponse(c, "Invalid input")
	}
	in.ID = paramID(c)
	p, err := in.toProject()
	if err != nil {
		return utils.InputErrorResponse(c, err.Error())
	}

	h.Store.UpdateProject(p)
	return h.mutated(c)
}

// DeleteProject handles DELETE /api/admin/projects/:id
// @Summary Delete a project
// @Description Removes every project with this id. Unknown ids change nothing.
// @Tags Admin
// @Produce json
// @Security AdminPassphrase
// @Param id path string true "Project ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /admin/projects/{id} [delete]
func (h *AdminHandler) DeleteProject(c *fiber.Ctx) error {
	h.Store.DeleteProject(paramID(c))
	return h.mutated(c)
}

// PostSkill handles POST /api/admin/skills
// @Summary Add a skill
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminPassphrase
// @Param body body models.Skill true "Skill"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /admin/skills [post]
func (h *AdminHandler) PostSkill(c *fiber.Ctx) error {
	var skill models.Skill
	if err := c.BodyParser(&skill); err != nil {
		return utils.InputErrorResponse(c, "Invalid input")
	}
	if strings.TrimSpace(skill.Name) == "" {
		return utils.InputErrorResponse(c, "name is required")
	}
	if skill.ID == "" {
		skill.ID = newID()
	}

	h.Store.AddSkill(skill)
	return h.mutated(c)
}

// PutSkill handles PUT /api/admin/skills/:id
// @Summary Update a skill
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminPassphrase
// @Param id path string true "Skill ID"
// @Param body body models.Skill true "Skill"
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /admin/skills/{id} [put]
func (h *AdminHandler) PutSkill(c *fiber.Ctx) error {
	var skill models.Skill
	if err := c.BodyParser(&skill); err != nil {
		return utils.InputErrorResponse(c, "Invalid input")
	}
	skill.ID = paramID(c)

	h.Store.UpdateSkill(skill)
	return h.mutated(c)
}

// DeleteSkill handles DELETE /api/admin/skills/:id
// @Summary Delete a skill
// @Tags Admin
// @Produce json
// @Security AdminPassphrase
// @Param id path string true "Skill ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /admin/skills/{id} [delete]
func (h *AdminHandler) DeleteSkill(c *fiber.Ctx) error {
	h.Store.DeleteSkill(paramID(c))
	return h.mutated(c)
}

// PostTestimonial handles POST /api/admin/testimonials
// @Summary Add a testimonial
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminPassphrase
// @Param body body models.Testimonial true "Testimonial"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /admin/testimonials [post]
func (h *AdminHandler) PostTestimonial(c *fiber.Ctx) error {
	var t models.Testimonial
	if err := c.BodyParser(&t); err != nil {
		return utils.InputErrorResponse(c, "Invalid input")
	}
	if strings.TrimSpace(t.Name) == "" || strings.TrimSpace(t.Content) == "" {
		return utils.InputErrorResponse(c, "name and content are required")
	}
	if t.ID == "" {
		t.ID = newID()
	}

	h.Store.AddTestimonial(t)
	return h.mutated(c)
}

// PutTestimonial handles PUT /api/admin/testimonials/:id
// @Summary Update a testimonial
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminPassphrase
// @Param id path string true "Testimonial ID"
// @Param body body models.Testimonial true "Testimonial"
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /admin/testimonials/{id} [put]
func (h *AdminHandler) PutTestimonial(c *fiber.Ctx) error {
	var t models.Testimonial
	if err := c.BodyParser(&t); err != nil {
		return utils.InputErrorResponse(c, "Invalid input")
	}
	t.ID = paramID(c)

	h.Store.UpdateTestimonial(t)
	return h.mutated(c)
}

// DeleteTestimonial handles DELETE /api/admin/testimonials/:id
// @Summary Delete a testimonial
// @Tags Admin
// @Produce json
// @Security AdminPassphrase
// @Param id path string true "Testimonial ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /admin/testimonials/{id} [delete]
func (h *AdminHandler) DeleteTestimonial(c *fiber.Ctx) error {
	h.Store.DeleteTestimonial(paramID(c))
	return h.mutated(c)
}

// PostMeeting handles POST /api/admin/meetings
// @Summary Schedule a meeting
// @Description attendees may be a list or one comma delimited line
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminPassphrase
// @Param body body object true "Meeting"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /admin/meetings [post]
func (h *AdminHandler) PostMeeting(c *fiber.Ctx) error {
	var in meetingInput
	if err := c.BodyParser(&in); err != nil {
		return utils.InputErrorResponse(c, "Invalid input")
	}
	m, err := in.toMeeting()
	if err != nil {
		return utils.InputErrorResponse(c, err.Error())
	}
	if m.ID == "" {
		m.ID = newID()
	}

	h.Store.AddMeeting(m)
	return h.mutated(c)
}

// PutMeeting handles PUT /api/admin/meetings/:id
// @Summary Update a meeting
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminPassphrase
// @Param id path string true "Meeting ID"
// @Param body body object true "Meeting"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /admin/meetings/{id} [put]
func (h *AdminHandler) PutMeeting(c *fiber.Ctx) error {
	var in meetingInput
	if err := c.BodyParser(&in); err != nil {
		return utils.InputErrorResponse(c, "Invalid input")
	}
	in.ID = paramID(c)
	m, err := in.toMeeting()
	if err != nil {
		return utils.InputErrorResponse(c, err.Error())
	}

	h.Store.UpdateMeeting(m)
	return h.mutated(c)
}

// DeleteMeeting handles DELETE /api/admin/meetings/:id
// @Summary Cancel a meeting
// @Tags Admin
// @Produce json
// @Security AdminPassphrase
// @Param id path string true "Meeting ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /admin/meetings/{id} [delete]
func (h *AdminHandler) DeleteMeeting(c *fiber.Ctx) error {
	h.Store.DeleteMeeting(paramID(c))
	return h.mutated(c)
}

// GetMessages handles GET /api/admin/messages
// @Summary List inbox messages
// @Tags Admin
// @Produce json
// @Security AdminPassphrase
// @Success 200 {array} models.Message
// @Router /admin/messages [get]
func (h *AdminHandler) GetMessages(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(orEmpty(h.Store.Messages()))
}

// PostMessageRead handles POST /api/admin/messages/read
// @Summary Mark a message read
// @Description Idempotent and silent, no notification is pushed
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminPassphrase
// @Param body body object true "id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /admin/messages/read [post]
func (h *AdminHandler) PostMessageRead(c *fiber.Ctx) error {
	var body struct {
		ID types.FlexInt64 `json:"id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.InputErrorResponse(c, "Invalid input")
	}

	h.Store.MarkMessageRead(body.ID.Int64())
	return h.mutated(c)
}

// PostMail handles POST /api/admin/mail
// @Summary Send an email through the configured SMTP settings
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminPassphrase
// @Param body body object true "to, subject, body"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Router /admin/mail [post]
func (h *AdminHandler) PostMail(c *fiber.Ctx) error {
	var body struct {
		To      string `json:"to"`
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.InputErrorResponse(c, "Invalid input")
	}
	if strings.TrimSpace(body.To) == "" {
		return utils.InputErrorResponse(c, "to is required")
	}

	res := h.Store.SendEmail(c.UserContext(), body.To, body.Subject, body.Body)
	if !res.OK() {
		if errors.Is(res.Err, services.ErrMailCredentials) {
			return utils.ErrorResponse(c, "SMTP credentials missing", fiber.StatusUnprocessableEntity, types.ErrorTypeMailCredentials)
		}
		return utils.ErrorResponse(c, res.Err.Error(), fiber.StatusBadGateway, types.ErrorTypeMailDelivery)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok":            true,
		"to":            res.To,
		"host":          res.Host,
		"sentAt":        res.SentAt.UTC().Format(time.RFC3339),
		"notifications": h.Store.Notifications(),
	})
}

// PostReset handles POST /api/admin/reset
// @Summary Reset all content to the locale defaults
// @Description Irreversible; the body must carry confirm=true
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminPassphrase
// @Param body body object true "confirm"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /admin/reset [post]
func (h *AdminHandler) PostReset(c *fiber.Ctx) error {
	var body struct {
		Confirm bool `json:"confirm"`
	}
	if err := c.BodyParser(&body); err != nil || !body.Confirm {
		return utils.InputErrorResponse(c, "Reset discards every edit; send {\"confirm\": true} to proceed")
	}

	h.Store.ResetToDefaults()
	return h.mutated(c)
}

// PostLocale handles POST /api/admin/locale
// @Summary Switch the content locale
// @Description reseed=true replaces profile, projects, skills and testimonials with the locale defaults
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminPassphrase
// @Param body body object true "locale, reseed"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /admin/locale [post]
func (h *AdminHandler) PostLocale(c *fiber.Ctx) error {
	var body struct {
		Locale string `json:"locale"`
		Reseed bool   `json:"reseed"`
	}
	if err := c.BodyParser(&body); err != nil || body.Locale == "" {
		return utils.InputErrorResponse(c, "Invalid input")
	}

	if err := h.Store.SwitchLocale(body.Locale, body.Reseed); err != nil {
		if errors.Is(err, seed.ErrUnknownLocale) {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, types.ErrorTypeLocale)
		}
		return err
	}
	return h.mutated(c)
}

// GetBoard handles GET /api/admin/board?statuses=...
// @Summary Kanban board
// @Description One column per requested status (all five by default); empty columns are included
// @Tags Admin
// @Produce json
// @Security AdminPassphrase
// @Param statuses query string false "Comma-separated statuses"
// @Success 200 {array} services.StatusBucket
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /admin/board [get]
func (h *AdminHandler) GetBoard(c *fiber.Ctx) error {
	statuses, err := parseStatuses(c)
	if err != nil {
		return utils.InputErrorResponse(c, err.Error())
	}
	return c.Status(fiber.StatusOK).JSON(services.PartitionByStatus(h.Store.Projects(), statuses...))
}

// GetOverview handles GET /api/admin/overview
// @Summary Dashboard summary
// @Tags Admin
// @Produce json
// @Security AdminPassphrase
// @Success 200 {object} services.Overview
// @Router /admin/overview [get]
func (h *AdminHandler) GetOverview(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(services.BuildOverview(h.Store.Snapshot(), h.now()))
}

// GetNotifications handles GET /api/admin/notifications
// @Summary Live notifications
// @Tags Admin
// @Produce json
// @Security AdminPassphrase
// @Success 200 {array} models.Notification
// @Router /admin/notifications [get]
func (h *AdminHandler) GetNotifications(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(orEmpty(h.Store.Notifications()))
}

// DeleteNotification handles DELETE /api/admin/notifications/:id
// @Summary Dismiss a notification
// @Tags Admin
// @Security AdminPassphrase
// @Param id path string true "Notification ID"
// @Success 204
// @Router /admin/notifications/{id} [delete]
func (h *AdminHandler) DeleteNotification(c *fiber.Ctx) error {
	h.Store.DismissNotification(paramID(c))
	return c.SendStatus(fiber.StatusNoContent)
}
