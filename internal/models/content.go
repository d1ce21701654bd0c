package models

import "slices"

// Content is a full copy of every entity the content store holds
type Content struct {
	Profile      Profile       `json:"profile" yaml:"profile"`
	Projects     []Project     `json:"projects" yaml:"projects"`
	Skills       []Skill       `json:"skills" yaml:"skills"`
	Testimonials []Testimonial `json:"testimonials" yaml:"testimonials"`
	Messages     []Message     `json:"messages" yaml:"messages"`
	Meetings     []Meeting     `json:"meetings" yaml:"meetings"`
	Settings     Settings      `json:"settings" yaml:"settings"`
}

// Clone returns a deep copy so callers never share backing arrays with the store
func (c Content) Clone() Content {
	out := c
	if c.Projects != nil {
		out.Projects = make([]Project, len(c.Projects))
		for i, p := range c.Projects {
			p.Tags = slices.Clone(p.Tags)
			p.Gallery = slices.Clone(p.Gallery)
			out.Projects[i] = p
		}
	}
	out.Skills = slices.Clone(c.Skills)
	out.Testimonials = slices.Clone(c.Testimonials)
	out.Messages = slices.Clone(c.Messages)
	if c.Meetings != nil {
		out.Meetings = make([]Meeting, len(c.Meetings))
		for i, m := range c.Meetings {
			m.Attendees = slices.Clone(m.Attendees)
			out.Meetings[i] = m
		}
	}
	return out
}
