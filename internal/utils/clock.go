package utils

import (
	"sync"
	"time"
)

// Clock is the time source every state machine reads "now" from.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// OffsetClock follows a base clock shifted by an offset that only grows.
// It backs the dev time-travel endpoint and the tests.
type OffsetClock struct {
	mu     sync.RWMutex
	base   Clock
	offset time.Duration
}

func NewOffsetClock(base Clock) *OffsetClock {
	return &OffsetClock{base: base}
}

func (c *OffsetClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.base.Now().Add(c.offset)
}

// Advance moves the clock forward; negative durations are ignored.
func (c *OffsetClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.offset += d
	c.mu.Unlock()
}

func (c *OffsetClock) Offset() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.offset
}

// FixedClock always reports the same instant until moved.
type FixedClock struct {
	mu  sync.RWMutex
	now time.Time
}

func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

func (c *FixedClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

func (c *FixedClock) Set(now time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}
