package engine

import "time"

// Clock supplies the environment's current instant and the zone used for
// relative-date computation. Implemented by WallClock (production) and
// testutil.FixedClock (tests).
type Clock interface {
	// Now returns the current instant.
	Now() time.Time

	// Zone returns the configured timezone.
	Zone() *time.Location
}

// WallClock reads the host clock with a zone resolved once at
// construction.
//
// When no zone is configured the host's local zone is used. That
// fallback is an explicit default, resolved here rather than read
// ambiently at each evaluation, so every query in a store's lifetime
// sees the same zone.
type WallClock struct {
	zone *time.Location
}

// NewWallClock creates a clock for the named zone. An empty name selects
// the host-local zone.
func NewWallClock(zoneName string) (*WallClock, error) {
	if zoneName == "" {
		return &WallClock{zone: time.Local}, nil
	}
	loc, err := time.LoadLocation(zoneName)
	if err != nil {
		return nil, err
	}
	return &WallClock{zone: loc}, nil
}

// Now returns the current instant.
func (c *WallClock) Now() time.Time {
	return time.Now()
}

// Zone returns the resolved timezone.
func (c *WallClock) Zone() *time.Location {
	return c.zone
}
