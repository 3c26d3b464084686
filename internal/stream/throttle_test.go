package stream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestThrottleWindow(t *testing.T) {
	now := time.Unix(0, 0)
	th := NewThrottleWithClock(300*time.Millisecond, func() time.Time { return now })

	assert.True(t, th.Allow(false), "first update passes")
	assert.False(t, th.Allow(false), "same instant is inside the window")

	now = now.Add(100 * time.Millisecond)
	assert.False(t, th.Allow(false))

	now = now.Add(250 * time.Millisecond)
	assert.True(t, th.Allow(false), "window elapsed")
}

func TestThrottleForceBypassesWindow(t *testing.T) {
	now := time.Unix(0, 0)
	th := NewThrottleWithClock(300*time.Millisecond, func() time.Time { return now })

	assert.True(t, th.Allow(false))
	assert.True(t, th.Allow(true), "a completed module is emitted immediately")

	// The forced emit resets the window.
	now = now.Add(100 * time.Millisecond)
	assert.False(t, th.Allow(false))
}
