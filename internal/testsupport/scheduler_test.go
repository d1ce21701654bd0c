package testsupport_test

import (
	"testing"
	"time"

	"github.com/localnerve/visionfolio/internal/testsupport"
	"github.com/stretchr/testify/assert"
)

func TestManualScheduler(t *testing.T) {
	s := &testsupport.ManualScheduler{}
	var fired []string

	s.AfterFunc(time.Second, func() { fired = append(fired, "a") })
	b := s.AfterFunc(2*time.Second, func() { fired = append(fired, "b") })
	s.AfterFunc(3*time.Second, func() { fired = append(fired, "c") })
	assert.Equal(t, 3, s.Pending())

	s.Advance(999 * time.Millisecond)
	assert.Empty(t, fired)

	s.Advance(time.Millisecond)
	assert.Equal(t, []string{"a"}, fired)

	assert.True(t, b.Stop())
	assert.False(t, b.Stop())
	assert.Equal(t, 1, s.Pending())

	s.Advance(time.Hour)
	assert.Equal(t, []string{"a", "c"}, fired)
	assert.Zero(t, s.Pending())

	s.Advance(time.Hour)
	assert.Equal(t, []string{"a", "c"}, fired)
}
