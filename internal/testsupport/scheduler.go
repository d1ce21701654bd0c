package testsupport

import (
	"sync"
	"time"

	"github.com/localnerve/visionfolio/internal/notify"
)

// ManualScheduler fires callbacks only when Advance is called
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	pending []*manualTimer
}

type manualTimer struct {
	mu      sync.Mutex
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	wasActive := !t.stopped && !t.fired
	t.stopped = true
	return wasActive
}

// AfterFunc implements notify.Scheduler
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) notify.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{at: s.now + d, f: f}
	s.pending = append(s.pending, t)
	return t
}

// Advance moves the clock forward and runs every callback now due
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due []*manualTimer
	for _, t := range s.pending {
		t.mu.Lock()
		if !t.stopped && !t.fired && t.at <= s.now {
			t.fired = true
			due = append(due, t)
		}
		t.mu.Unlock()
	}
	s.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

// Pending counts callbacks that are neither fired nor stopped
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.pending {
		t.mu.Lock()
		if !t.stopped && !t.fired {
			n++
		}
		t.mu.Unlock()
	}
	return n
}
