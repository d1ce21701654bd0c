// common.go
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
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"github.com/localnerve/visionfolio/internal/models"
	"github.com/localnerve/visionfolio/internal/types"
)

// parseStatuses extracts board statuses from query parameters, supporting
// both repeated 'statuses' keys and comma-separated values. Order of first
// appearance is kept; duplicates are dropped.
func parseStatuses(c *fiber.Ctx) ([]models.ProjectStatus, error) {
	seen := make(map[models.ProjectStatus]struct{})
	var statuses []models.ProjectStatus

	for _, value := range c.Context().QueryArgs().PeekMulti("statuses") {
		for _, v := range strings.Split(string(value), ",") {
			st := models.ProjectStatus(strings.TrimSpace(v))
			if st == "" {
				continue
			}
			if !st.Valid() {
				return nil, fmt.Errorf("unknown status %q", st)
			}
			if _, dup := seen[st]; !dup {
				seen[st] = struct{}{}
				statuses = append(statuses, st)
			}
		}
	}

	return statuses, nil
}

// paramID copies the :id route param. Fiber reuses the buffer behind
// c.Params once the request ends, and ids are kept by the store.
func paramID(c *fiber.Ctx) string {
	return fiberutils.CopyString(c.Params("id"))
}

// newID returns a fresh id for an entity created without one
func newID() string {
	return uuid.NewString()
}

// projectInput is the admin form for a project
type projectInput struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Tags        types.FlexStrings `json:"tags"`
	ImageURL    string            `json:"imageUrl"`
	Gallery     []string          `json:"gallery"`
	Link        string            `json:"link"`
	SourceURL   string            `json:"sourceUrl"`
	Status      string            `json:"status"`
	Priority    string            `json:"priority"`
	DueDate     string            `json:"dueDate"`
	Budget      float64           `json:"budget"`
	ClientName  string            `json:"clientName"`
}

// toProject validates the form and fills the admin panel's defaults
func (in projectInput) toProject() (models.Project, error) {
	p := models.Project{
		ID:          in.ID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Tags:        in.Tags.Slice(),
		ImageURL:    in.ImageURL,
		Link:        in.Link,
		SourceURL:   in.SourceURL,
		Status:      models.ProjectStatus(in.Status),
		Priority:    models.Priority(in.Priority),
		DueDate:     strings.TrimSpace(in.DueDate),
		Budget:      in.Budget,
		ClientName:  in.ClientName,
	}
	if len(in.Gallery) > 0 {
		p.Gallery = in.Gallery
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Status == "" {
		p.Status = models.StatusIdea
	}
	if p.Priority == "" {
		p.Priority = models.PriorityMedium
	}

	switch {
	case p.Title == "":
		return p, fmt.Errorf("title is required")
	case !p.Status.Valid():
		return p, fmt.Errorf("unknown status %q", p.Status)
	case !p.Priority.Valid():
		return p, fmt.Errorf("unknown priority %q", p.Priority)
	case p.Budget < 0:
		return p, fmt.Errorf("budget must not be negative")
	}
	if p.DueDate != "" {
		if _, err := time.Parse(time.DateOnly, p.DueDate); err != nil {
			return p, fmt.Errorf("dueDate must be YYYY-MM-DD")
		}
	}
	return p, nil
}

// meetingInput is the admin form for a meeting. Attendees may arrive as one
// delimited line; they are split here and stored as a list.
type meetingInput struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Date      string            `json:"date"`
	Time      string            `json:"time"`
	Attendees types.FlexStrings `json:"attendees"`
	Link      string            `json:"link"`
}

func (in meetingInput) toMeeting() (models.Meeting, error) {
	m := models.Meeting{
		ID:        in.ID,
		Title:     strings.TrimSpace(in.Title),
		Date:      in.Date,
		Time:      in.Time,
		Attendees: in.Attendees.Slice(),
		Link:      in.Link,
	}
	if m.Attendees == nil {
		m.Attendees = []string{}
	}
	if m.Title == "" || m.Date == "" {
		return m, fmt.Errorf("title and date are required")
	}
	return m, nil
}

// orEmpty keeps JSON list responses from rendering as null
func orEmpty[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
