package viewport

import "context"

// Point is a pointer position in viewport coordinates
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PointerTracker keeps the most recent pointer position
type PointerTracker struct {
	pos *Value[Point]
}

// NewPointerTracker starts at the origin
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{pos: NewValue(Point{})}
}

// Move records p
func (t *PointerTracker) Move(p Point) {
	t.pos.Set(p)
}

// Position returns the last recorded point
func (t *PointerTracker) Position() Point {
	return t.pos.Get()
}

// Watch streams position changes until ctx ends
func (t *PointerTracker) Watch(ctx context.Context) <-chan Point {
	return t.pos.Watch(ctx)
}

// Run records every movement event. It returns nil when events is closed
// and ctx.Err() on teardown.
func (t *PointerTracker) Run(ctx context.Context, events <-chan Point) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case p, ok := <-events:
			if !ok {
				return nil
			}
			t.Move(p)
		}
	}
}
