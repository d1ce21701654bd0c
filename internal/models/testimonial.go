package models

// Testimonial is a quote from a client or colleague
type Testimonial struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Role    string `json:"role" yaml:"role"`
	Company string `json:"company" yaml:"company"`
	Content string `json:"content" yaml:"content"`
	Avatar  string `json:"avatar" yaml:"avatar"`
}

// EntityID implements Entity
func (t Testimonial) EntityID() string { return t.ID }
