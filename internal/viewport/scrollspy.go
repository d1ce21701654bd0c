package viewport

import "context"

const (
	// DefaultOffset is added to the scroll position before matching sections
	DefaultOffset = 150
	// DefaultTopThreshold is the scroll position under which the first
	// section is always active
	DefaultTopThreshold = 50
)

// Section is a named vertical extent of the page, in pixels
type Section struct {
	Name   string  `json:"name"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Contains reports whether y falls within the section
func (s Section) Contains(y float64) bool {
	return y >= s.Top && y < s.Top+s.Height
}

// Layout reports section extents as currently measured. It is consulted on
// every update so relayouts are picked up.
type Layout interface {
	Sections() []Section
}

// SectionList is a fixed Layout
type SectionList []Section

// Sections implements Layout
func (l SectionList) Sections() []Section { return l }

// ScrollSpy tracks which section is in view
type ScrollSpy struct {
	layout       Layout
	offset       float64
	topThreshold float64
	active       *Value[string]
}

// ScrollSpyOption configures a ScrollSpy
type ScrollSpyOption func(*ScrollSpy)

// WithOffset overrides DefaultOffset
func WithOffset(offset float64) ScrollSpyOption {
	return func(s *ScrollSpy) { s.offset = offset }
}

// WithTopThreshold overrides DefaultTopThreshold
func WithTopThreshold(threshold float64) ScrollSpyOption {
	return func(s *ScrollSpy) { s.topThreshold = threshold }
}

// NewScrollSpy returns a ScrollSpy with no active section
func NewScrollSpy(layout Layout, opts ...ScrollSpyOption) *ScrollSpy {
	s := &ScrollSpy{
		layout:       layout,
		offset:       DefaultOffset,
		topThreshold: DefaultTopThreshold,
		active:       NewValue(""),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Update recomputes the active section for scrollY and returns it. Near the
// top the first section wins regardless of extents. A position that matches
// no section keeps the previous answer.
func (s *ScrollSpy) Update(scrollY float64) string {
	sections := s.layout.Sections()
	if len(sections) == 0 {
		return s.active.Get()
	}

	if scrollY < s.topThreshold {
		s.active.Set(sections[0].Name)
		return sections[0].Name
	}

	pos := scrollY + s.offset
	for _, sec := range sections {
		if sec.Contains(pos) {
			s.active.Set(sec.Name)
			return sec.Name
		}
	}
	return s.active.Get()
}

// Active returns the current section name, empty before the first match
func (s *ScrollSpy) Active() string {
	return s.active.Get()
}

// Watch streams active section changes until ctx ends
func (s *ScrollSpy) Watch(ctx context.Context) <-chan string {
	return s.active.Watch(ctx)
}

// Run computes once for initialY and then for every scroll position
// received. It returns nil when events is closed and ctx.Err() on teardown.
func (s *ScrollSpy) Run(ctx context.Context, initialY float64, events <-chan float64) error {
	s.Update(initialY)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case y, ok := <-events:
			if !ok {
				return nil
			}
			s.Update(y)
		}
	}
}
