package models

// ProjectStatus is the workflow stage of a project
type ProjectStatus string

const (
	StatusIdea       ProjectStatus = "idea"
	StatusTodo       ProjectStatus = "todo"
	StatusInProgress ProjectStatus = "in-progress"
	StatusReview     ProjectStatus = "review"
	StatusDone       ProjectStatus = "done"
)

// AllStatuses lists every workflow stage in board order
var AllStatuses = []ProjectStatus{StatusIdea, StatusTodo, StatusInProgress, StatusReview, StatusDone}

// Valid reports whether s is a known status
func (s ProjectStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Active reports whether work on the project is underway
func (s ProjectStatus) Active() bool {
	return s == StatusInProgress || s == StatusReview
}

// Priority ranks a project against the others
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is a known priority
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Project is a portfolio entry that doubles as a tracked piece of client work
type Project struct {
	ID          string        `json:"id" yaml:"id"`
	Title       string        `json:"title" yaml:"title"`
	Description string        `json:"description" yaml:"description"`
	Tags        []string      `json:"tags" yaml:"tags"`
	ImageURL    string        `json:"imageUrl" yaml:"imageUrl"`
	Gallery     []string      `json:"gallery,omitempty" yaml:"gallery,omitempty"`
	Link        string        `json:"link,omitempty" yaml:"link,omitempty"`
	SourceURL   string        `json:"sourceUrl,omitempty" yaml:"sourceUrl,omitempty"`
	Status      ProjectStatus `json:"status" yaml:"status"`
	Priority    Priority      `json:"priority" yaml:"priority"`
	DueDate     string        `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	Budget      float64       `json:"budget" yaml:"budget"`
	ClientName  string        `json:"clientName,omitempty" yaml:"clientName,omitempty"`
}

// EntityID implements Entity
func (p Project) EntityID() string { return p.ID }

// HasTag reports whether the project carries tag
func (p Project) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
