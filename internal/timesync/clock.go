package timesync

import (
	"sync"
	"time"
)

// SystemClock reports milliseconds elapsed since it was created.
type SystemClock struct {
	start time.Time
}

// NewSystemClock returns a clock anchored at the current instant.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Now implements domain.Clock.
func (c *SystemClock) Now() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}

// ManualClock is a hand-driven clock for simulations and tests. The zero
// value starts at time zero.
type ManualClock struct {
	mu  sync.Mutex
	now uint32
}

// Now implements domain.Clock.
func (c *ManualClock) Now() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d milliseconds.
func (c *ManualClock) Advance(d uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d
}

// Set jumps the clock to an absolute time.
func (c *ManualClock) Set(t uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
