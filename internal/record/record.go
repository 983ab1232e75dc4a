package record

import (
	"github.com/google/uuid"
)

// Record is one row of the simulated store: a logical name, a 128-bit
// identifier, and an insertion-ordered attribute map.
//
// The query engine only reads Records; the store owns them. Mutating
// methods exist for fixture construction and the store's write path.
type Record struct {
	// LogicalName identifies the record's entity type.
	LogicalName string

	// ID uniquely identifies the record within its entity type.
	ID uuid.UUID

	attrs map[string]Value
	order []string
}

// New creates an empty record of the given entity type.
func New(logicalName string) *Record {
	return &Record{
		LogicalName: logicalName,
		attrs:       make(map[string]Value),
		order:       []string{},
	}
}

// NewWithID creates an empty record with a preassigned identifier.
func NewWithID(logicalName string, id uuid.UUID) *Record {
	r := New(logicalName)
	r.ID = id
	return r
}

// Set stores an attribute value, preserving first-set ordering. Setting
// an attribute that already exists overwrites the value in place without
// moving it.
func (r *Record) Set(name string, v Value) *Record {
	if _, exists := r.attrs[name]; !exists {
		r.order = append(r.order, name)
	}
	r.attrs[name] = v
	return r
}

// Get returns the attribute value and whether the attribute is present.
// A present Null returns (Null{}, true); an absent attribute returns
// (nil, false).
func (r *Record) Get(name string) (Value, bool) {
	v, ok := r.attrs[name]
	return v, ok
}

// Has reports whether the attribute was ever set (including to Null).
func (r *Record) Has(name string) bool {
	_, ok := r.attrs[name]
	return ok
}

// Remove deletes an attribute, returning it to the absent state.
func (r *Record) Remove(name string) {
	if _, ok := r.attrs[name]; !ok {
		return
	}
	delete(r.attrs, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Attributes returns attribute names in insertion order. The returned
// slice is a copy; callers may mutate it freely.
func (r *Record) Attributes() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of present attributes.
func (r *Record) Len() int {
	return len(r.attrs)
}

// Clone returns a deep-enough copy: attribute values are immutable value
// types, so copying the map and order slice yields an independent record.
func (r *Record) Clone() *Record {
	c := &Record{
		LogicalName: r.LogicalName,
		ID:          r.ID,
		attrs:       make(map[string]Value, len(r.attrs)),
		order:       make([]string, len(r.order)),
	}
	for k, v := range r.attrs {
		c.attrs[k] = v
	}
	copy(c.order, r.order)
	return c
}
