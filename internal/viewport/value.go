// Package viewport derives small reactive values from a front-end's scroll
// and pointer event streams.
package viewport

import (
	"context"
	"sync"
)

// Value holds the latest derived value and fans changes out to watchers.
// Watchers only ever see the newest value; a slow watcher misses
// intermediate ones.
type Value[T comparable] struct {
	mu       sync.RWMutex
	current  T
	watchers map[chan T]struct{}
}

// NewValue returns a Value starting at initial
func NewValue[T comparable](initial T) *Value[T] {
	return &Value[T]{
		current:  initial,
		watchers: make(map[chan T]struct{}),
	}
}

// Get returns the current value
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Set stores x and reports whether it differed from the current value.
// Watchers are only notified on change.
func (v *Value[T]) Set(x T) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if x == v.current {
		return false
	}
	v.current = x
	for ch := range v.watchers {
		select {
		case <-ch:
		default:
		}
		ch <- x
	}
	return true
}

// Watch returns a channel that receives every change until ctx ends, when
// it is closed
func (v *Value[T]) Watch(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	v.mu.Lock()
	v.watchers[ch] = struct{}{}
	v.mu.Unlock()

	go func() {
		<-ctx.Done()
		v.mu.Lock()
		delete(v.watchers, ch)
		close(ch)
		v.mu.Unlock()
	}()

	return ch
}
