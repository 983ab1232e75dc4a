// Package testutil provides deterministic clocks and record builders
// shared by tests across the module.
package testutil

import (
	"sync"
	"time"
)

// FixedClock is a settable clock for tests. Relative-date operators
// evaluated against a FixedClock always see the same "now", which makes
// period boundaries reproducible.
//
// Thread-safety: all methods are safe for concurrent use via internal
// mutex.
type FixedClock struct {
	mu   sync.Mutex
	now  time.Time
	zone *time.Location
}

// NewFixedClock creates a clock pinned to the given instant and zone.
// A nil zone means UTC.
func NewFixedClock(now time.Time, zone *time.Location) *FixedClock {
	if zone == nil {
		zone = time.UTC
	}
	return &FixedClock{now: now, zone: zone}
}

// Now returns the pinned instant.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Zone returns the pinned zone.
func (c *FixedClock) Zone() *time.Location {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zone
}

// Set repins the clock, for tests that advance time mid-scenario.
func (c *FixedClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
