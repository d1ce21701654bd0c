package models

// Canonical skill categories, in display order
const (
	CategoryLanguages  = "Languages"
	CategoryFrameworks = "Frameworks & Libraries"
	CategoryTools      = "Tools & Platforms"
)

// CanonicalCategories is the fixed display order used by the strict grouping
var CanonicalCategories = []string{CategoryLanguages, CategoryFrameworks, CategoryTools}

// Skill is a named competency grouped under a free-text category
type Skill struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
}

// EntityID implements Entity
func (s Skill) EntityID() string { return s.ID }
