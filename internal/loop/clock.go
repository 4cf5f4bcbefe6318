package loop

import (
	"runtime"
	"sync"
	"time"
)

// Clock is the time source of a Loop.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time        { return time.Now() }
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// FakeClock is a manually driven clock for tests and headless runs.
// Sleep advances virtual time instead of blocking.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock creates a fake clock starting at start.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Sleep advances the clock by d and yields the processor.
func (c *FakeClock) Sleep(d time.Duration) {
	c.Advance(d)
	runtime.Gosched()
}

// Advance moves the clock forward by d. Negative durations are ignored.
func (c *FakeClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
