package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/roach88/mimic/internal/record"
)

// Metadata resolves entity metadata for write-time normalization and
// entity-name validation.
type Metadata interface {
	Entity(logicalName string) (*record.EntityMeta, error)
}

// Store is an in-memory record store partitioned by entity type.
//
// Each partition carries its own lock, so queries over one entity never
// contend with writes to another. Within a partition, any number of
// readers proceed concurrently; a writer excludes them briefly while it
// swaps a record in or out.
//
// Records put in and handed out are deep copies. Nothing a caller does
// to a record after the call changes stored state.
type Store struct {
	meta Metadata
	ids  IDGenerator

	mu         sync.RWMutex
	partitions map[string]*partition
}

type partition struct {
	mu    sync.RWMutex
	order []uuid.UUID
	recs  map[uuid.UUID]*record.Record
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithIDGenerator replaces the identifier generator. Tests pass a
// sequence generator for reproducible record identifiers.
func WithIDGenerator(g IDGenerator) StoreOption {
	return func(s *Store) {
		s.ids = g
	}
}

// New creates an empty store over the given metadata.
func New(meta Metadata, opts ...StoreOption) *Store {
	s := &Store{
		meta:       meta,
		ids:        UUIDv7Generator{},
		partitions: make(map[string]*partition),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create adds a record and returns its identifier, generating one when
// the record carries none. Fails with UnknownEntity for a logical name
// without metadata, and with an error when the identifier is already
// taken.
func (s *Store) Create(rec *record.Record) (uuid.UUID, error) {
	meta, err := s.meta.Entity(rec.LogicalName)
	if err != nil {
		return uuid.UUID{}, err
	}

	stored := rec.Clone()
	if stored.ID == (uuid.UUID{}) {
		stored.ID = s.ids.NewID()
	}
	normalizeRecord(meta, stored)

	p := s.partition(rec.LogicalName)
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.recs[stored.ID]; exists {
		return uuid.UUID{}, &DuplicateError{LogicalName: rec.LogicalName, ID: stored.ID}
	}
	p.recs[stored.ID] = stored
	p.order = append(p.order, stored.ID)
	return stored.ID, nil
}

// Update replaces an existing record. The record's identifier selects
// the target; a miss is an error.
func (s *Store) Update(rec *record.Record) error {
	meta, err := s.meta.Entity(rec.LogicalName)
	if err != nil {
		return err
	}

	stored := rec.Clone()
	normalizeRecord(meta, stored)

	p := s.partition(rec.LogicalName)
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.recs[stored.ID]; !exists {
		return notFound(rec.LogicalName, stored.ID)
	}
	p.recs[stored.ID] = stored
	return nil
}

// Upsert creates the record when its identifier is unknown and replaces
// it otherwise. Records without an identifier are always created.
func (s *Store) Upsert(rec *record.Record) (uuid.UUID, error) {
	meta, err := s.meta.Entity(rec.LogicalName)
	if err != nil {
		return uuid.UUID{}, err
	}

	stored := rec.Clone()
	if stored.ID == (uuid.UUID{}) {
		stored.ID = s.ids.NewID()
	}
	normalizeRecord(meta, stored)

	p := s.partition(rec.LogicalName)
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.recs[stored.ID]; !exists {
		p.order = append(p.order, stored.ID)
	}
	p.recs[stored.ID] = stored
	return stored.ID, nil
}

// Delete removes a record. A miss is an error.
func (s *Store) Delete(logicalName string, id uuid.UUID) error {
	if _, err := s.meta.Entity(logicalName); err != nil {
		return err
	}

	p := s.partition(logicalName)
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.recs[id]; !exists {
		return notFound(logicalName, id)
	}
	delete(p.recs, id)
	for i, ordered := range p.order {
		if ordered == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns a copy of one record.
func (s *Store) Get(logicalName string, id uuid.UUID) (*record.Record, error) {
	if _, err := s.meta.Entity(logicalName); err != nil {
		return nil, err
	}

	p := s.partition(logicalName)
	p.mu.RLock()
	defer p.mu.RUnlock()
	rec, exists := p.recs[id]
	if !exists {
		return nil, notFound(logicalName, id)
	}
	return rec.Clone(), nil
}

// GetAll returns copies of every record of the entity in creation
// order. It satisfies the query engine's record source contract.
func (s *Store) GetAll(logicalName string) ([]*record.Record, error) {
	if _, err := s.meta.Entity(logicalName); err != nil {
		return nil, err
	}

	p := s.partition(logicalName)
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*record.Record, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.recs[id].Clone())
	}
	return out, nil
}

// Len reports how many records of the entity exist.
func (s *Store) Len(logicalName string) (int, error) {
	if _, err := s.meta.Entity(logicalName); err != nil {
		return 0, err
	}
	p := s.partition(logicalName)
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.order), nil
}

// entityNames returns every entity with a partition, sorted lazily by
// the caller when order matters.
func (s *Store) entityNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.partitions))
	for name := range s.partitions {
		names = append(names, name)
	}
	return names
}

func (s *Store) partition(logicalName string) *partition {
	s.mu.RLock()
	p, ok := s.partitions[logicalName]
	s.mu.RUnlock()
	if ok {
		return p
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.partitions[logicalName]; ok {
		return p
	}
	p = &partition{recs: make(map[uuid.UUID]*record.Record)}
	s.partitions[logicalName] = p
	return p
}

func notFound(logicalName string, id uuid.UUID) error {
	return &NotFoundError{LogicalName: logicalName, ID: id}
}
