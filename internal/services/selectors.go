package services

import (
	"sort"
	"time"

	"github.com/localnerve/visionfolio/internal/models"
)

// AllTag is the tag filter sentinel that matches every project
const AllTag = "All"

// DefaultDeadlineLimit is how many upcoming deadlines the dashboard shows
const DefaultDeadlineLimit = 3

// FilterByTag returns the projects carrying tag, in their original order.
// AllTag or an empty tag returns projects unchanged.
func FilterByTag(projects []models.Project, tag string) []models.Project {
	if tag == "" || tag == AllTag {
		return projects
	}
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}

// TagUniverse returns AllTag followed by every distinct tag, sorted
func TagUniverse(projects []models.Project) []string {
	seen := make(map[string]struct{})
	for _, p := range projects {
		for _, t := range p.Tags {
			seen[t] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return append([]string{AllTag}, tags...)
}

// SkillGroup is one category and its skills
type SkillGroup struct {
	Category string         `json:"category"`
	Skills   []models.Skill `json:"skills"`
}

// GroupSkills groups skills by category in first-seen category order
func GroupSkills(skills []models.Skill) []SkillGroup {
	index := make(map[string]int)
	var groups []SkillGroup
	for _, s := range skills {
		i, ok := index[s.Category]
		if !ok {
			i = len(groups)
			index[s.Category] = i
			groups = append(groups, SkillGroup{Category: s.Category})
		}
		groups[i].Skills = append(groups[i].Skills, s)
	}
	return groups
}

// GroupSkillsCanonical groups skills under the three canonical categories in
// fixed order. Skills with any other category are dropped. Empty categories
// are still returned.
func GroupSkillsCanonical(skills []models.Skill) []SkillGroup {
	groups := make([]SkillGroup, len(models.CanonicalCategories))
	index := make(map[string]int, len(models.CanonicalCategories))
	for i, c := range models.CanonicalCategories {
		groups[i] = SkillGroup{Category: c, Skills: []models.Skill{}}
		index[c] = i
	}
	for _, s := range skills {
		if i, ok := index[s.Category]; ok {
			groups[i].Skills = append(groups[i].Skills, s)
		}
	}
	return groups
}

// StatusBucket is one Kanban column
type StatusBucket struct {
	Status   models.ProjectStatus `json:"status"`
	Projects []models.Project     `json:"projects"`
}

// PartitionByStatus returns one bucket per requested status, in the order
// given. No statuses means all five. Projects whose status was not requested
// are left out.
func PartitionByStatus(projects []models.Project, statuses ...models.ProjectStatus) []StatusBucket {
	if len(statuses) == 0 {
		statuses = models.AllStatuses
	}
	buckets := make([]StatusBucket, len(statuses))
	for i, st := range statuses {
		buckets[i] = StatusBucket{Status: st, Projects: []models.Project{}}
	}
	for _, p := range projects {
		for i := range buckets {
			if buckets[i].Status == p.Status {
				buckets[i].Projects = append(buckets[i].Projects, p)
				break
			}
		}
	}
	return buckets
}

// Deadline pairs a project with its parsed due date
type Deadline struct {
	Project models.Project `json:"project"`
	Due     time.Time      `json:"due"`
}

// UpcomingDeadlines returns projects due strictly after now, soonest first,
// at most limit of them. Missing or unparseable due dates are skipped.
func UpcomingDeadlines(projects []models.Project, now time.Time, limit int) []Deadline {
	var out []Deadline
	for _, p := range projects {
		if p.DueDate == "" {
			continue
		}
		due, err := time.Parse(time.DateOnly, p.DueDate)
		if err != nil || !due.After(now) {
			continue
		}
		out = append(out, Deadline{Project: p, Due: due})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Due.Before(out[j].Due) })
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Overview is the admin dashboard summary
type Overview struct {
	PipelineValue  float64                      `json:"pipelineValue"`
	PendingRevenue float64                      `json:"pendingRevenue"`
	ActiveProjects int                          `json:"activeProjects"`
	Completed      int                          `json:"completedProjects"`
	UnreadMessages int                          `json:"unreadMessages"`
	StatusCounts   map[models.ProjectStatus]int `json:"statusCounts"`
	Deadlines      []Deadline                   `json:"deadlines"`
}

// BuildOverview summarizes content as of now
func BuildOverview(c models.Content, now time.Time) Overview {
	o := Overview{
		StatusCounts: make(map[models.ProjectStatus]int, len(models.AllStatuses)),
		Deadlines:    UpcomingDeadlines(c.Projects, now, DefaultDeadlineLimit),
	}
	for _, st := range models.AllStatuses {
		o.StatusCounts[st] = 0
	}
	for _, p := range c.Projects {
		o.PipelineValue += p.Budget
		o.StatusCounts[p.Status]++
		if p.Status.Active() {
			o.ActiveProjects++
			o.PendingRevenue += p.Budget
		}
		if p.Status == models.StatusDone {
			o.Completed++
		}
	}
	for _, m := range c.Messages {
		if !m.Read {
			o.UnreadMessages++
		}
	}
	if o.Deadlines == nil {
		o.Deadlines = []Deadline{}
	}
	return o
}
