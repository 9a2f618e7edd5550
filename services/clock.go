package services

import (
	"sync"
	"time"
)

// Clock stamps created_at/updated_at.
type Clock interface {
	Now() time.Time
}

// MonotonicClock returns UTC times truncated to microseconds (the finest
// precision the SQL backends keep) and never hands out the same instant twice.
type MonotonicClock struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

// NewMonotonicClock wraps now; nil means time.Now.
func NewMonotonicClock(now func() time.Time) *MonotonicClock {
	if now == nil {
		now = time.Now
	}
	return &MonotonicClock{now: now}
}

func (c *MonotonicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now().UTC().Truncate(time.Microsecond)
	if !t.After(c.last) {
		t = c.last.Add(time.Microsecond)
	}
	c.last = t
	return t
}

// Observe raises the floor for the next Now to t. Stores that stamp rows with
// their own clock report those stamps here so an update never predates them.
func (c *MonotonicClock) Observe(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t = t.UTC().Truncate(time.Microsecond); t.After(c.last) {
		c.last = t
	}
}

// timeObserver is implemented by clocks that track stamps set elsewhere.
type timeObserver interface {
	Observe(t time.Time)
}
