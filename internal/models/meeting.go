package models

import "strings"

// Meeting is a scheduled call
type Meeting struct {
	ID        string   `json:"id" yaml:"id"`
	Title     string   `json:"title" yaml:"title"`
	Date      string   `json:"date" yaml:"date"`
	Time      string   `json:"time" yaml:"time"`
	Attendees []string `json:"attendees" yaml:"attendees"`
	Link      string   `json:"link,omitempty" yaml:"link,omitempty"`
}

// EntityID implements Entity
func (m Meeting) EntityID() string { return m.ID }

// SplitAttendees parses a comma delimited attendee line as typed into a form.
// Blank entries are dropped.
func SplitAttendees(line string) []string {
	parts := strings.Split(line, ",")
	attendees := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			attendees = append(attendees, p)
		}
	}
	return attendees
}

// JoinAttendees renders attendees for display
func JoinAttendees(attendees []string) string {
	return strings.Join(attendees, ", ")
}
