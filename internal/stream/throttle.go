package stream

import "time"

// Throttle rate-limits UI-visible progress updates. At most one Allow per
// interval passes, except forced calls (a module just completed) which pass
// immediately and reset the window.
type Throttle struct {
	interval time.Duration
	now      func() time.Time
	last     time.Time
}

func NewThrottle(interval time.Duration) *Throttle {
	return NewThrottleWithClock(interval, time.Now)
}

// NewThrottleWithClock injects the clock so the window logic is testable
// without sleeping.
func NewThrottleWithClock(interval time.Duration, clock func() time.Time) *Throttle {
	return &Throttle{interval: interval, now: clock}
}

func (t *Throttle) Allow(force bool) bool {
	n := t.now()
	if !force && !t.last.IsZero() && n.Sub(t.last) < t.interval {
		return false
	}
	t.last = n
	return true
}
