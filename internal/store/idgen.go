package store

import (
	"sync"

	"github.com/google/uuid"
)

// IDGenerator supplies identifiers for created records. Implemented by
// UUIDv7Generator (production) and SequenceGenerator (tests).
type IDGenerator interface {
	NewID() uuid.UUID
}

// UUIDv7Generator generates time-sortable UUIDv7 identifiers, so
// creation order is recoverable from the identifiers themselves.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// NewID creates a new UUIDv7.
//
// Panics if generation fails, which requires the random source to be
// broken.
func (UUIDv7Generator) NewID() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

// SequenceGenerator returns predetermined identifiers in order, for
// deterministic fixtures and golden comparisons.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequenceGenerator struct {
	mu  sync.Mutex
	ids []uuid.UUID
	idx int
}

// NewSequenceGenerator creates a generator that hands out ids in order.
// It panics once the sequence is exhausted, a fail-fast for fixtures
// that create more records than they declared.
func NewSequenceGenerator(ids ...uuid.UUID) *SequenceGenerator {
	return &SequenceGenerator{ids: ids}
}

// NewID returns the next predetermined identifier.
func (g *SequenceGenerator) NewID() uuid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.ids) {
		panic("SequenceGenerator: all identifiers exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
