// Package notify holds transient, auto-expiring user-facing notifications.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/visionfolio/internal/models"
)

// DefaultTTL is how long a notification stays visible unless dismissed
const DefaultTTL = 4 * time.Second

// Timer is a scheduled callback that can be cancelled
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d has elapsed
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Queue keeps notifications in push order and removes each one after its TTL
type Queue struct {
	mu        sync.Mutex
	ttl       time.Duration
	scheduler Scheduler
	now       func() time.Time
	entries   []models.Notification
	timers    map[string]Timer
}

// Option configures a Queue
type Option func(*Queue)

// WithScheduler replaces the wall-clock scheduler
func WithScheduler(s Scheduler) Option {
	return func(q *Queue) { q.scheduler = s }
}

// WithClock replaces time.Now for CreatedAt stamps
func WithClock(now func() time.Time) Option {
	return func(q *Queue) { q.now = now }
}

// NewQueue creates a queue. A non-positive ttl falls back to DefaultTTL.
func NewQueue(ttl time.Duration, opts ...Option) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	q := &Queue{
		ttl:       ttl,
		scheduler: realScheduler{},
		now:       time.Now,
		timers:    make(map[string]Timer),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// TTL returns the configured lifetime
func (q *Queue) TTL() time.Duration {
	return q.ttl
}

// Push appends a notification and schedules its removal
func (q *Queue) Push(kind models.NotificationKind, message string) models.Notification {
	n := models.Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: q.now(),
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.entries = append(q.entries, n)
	q.timers[n.ID] = q.scheduler.AfterFunc(q.ttl, func() {
		q.expire(n.ID)
	})
	return n
}

// Dismiss removes a notification now. Unknown ids are ignored.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if timer, ok := q.timers[id]; ok {
		timer.Stop()
	}
	q.removeLocked(id)
}

// List returns the live notifications, oldest first
func (q *Queue) List() []models.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]models.Notification, len(q.entries))
	copy(out, q.entries)
	return out
}

// Len returns the number of live notifications
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Close stops every pending expiry and drops all entries
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, timer := range q.timers {
		timer.Stop()
	}
	q.timers = make(map[string]Timer)
	q.entries = nil
}

func (q *Queue) expire(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.removeLocked(id)
}

func (q *Queue) removeLocked(id string) {
	delete(q.timers, id)
	for i, n := range q.entries {
		if n.ID == id {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return
		}
	}
}
