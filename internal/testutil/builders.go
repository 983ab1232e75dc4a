package testutil

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/mimic/internal/record"
)

// UUID returns a deterministic identifier for fixtures: the UUID whose
// last byte is n.
func UUID(n byte) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-0000000000%02x", n))
}

// RecordBuilder assembles a record fixture fluently. Attribute order
// follows call order, matching the store's insertion-order guarantee.
type RecordBuilder struct {
	rec *record.Record
}

// NewRecord starts a builder for the given entity with a random ID.
func NewRecord(entity string) *RecordBuilder {
	return &RecordBuilder{rec: record.New(entity)}
}

// NewRecordWithID starts a builder with a fixed ID.
func NewRecordWithID(entity string, id uuid.UUID) *RecordBuilder {
	return &RecordBuilder{rec: record.NewWithID(entity, id)}
}

// Str sets a string attribute.
func (b *RecordBuilder) Str(name, v string) *RecordBuilder {
	b.rec.Set(name, record.String(v))
	return b
}

// Int sets an integer attribute.
func (b *RecordBuilder) Int(name string, v int64) *RecordBuilder {
	b.rec.Set(name, record.Int(v))
	return b
}

// Dec sets a decimal attribute.
func (b *RecordBuilder) Dec(name string, v float64) *RecordBuilder {
	b.rec.Set(name, record.Decimal(v))
	return b
}

// Money sets a money attribute.
func (b *RecordBuilder) Money(name string, v float64) *RecordBuilder {
	b.rec.Set(name, record.Money(v))
	return b
}

// Bool sets a boolean attribute.
func (b *RecordBuilder) Bool(name string, v bool) *RecordBuilder {
	b.rec.Set(name, record.Bool(v))
	return b
}

// Option sets an option-set attribute.
func (b *RecordBuilder) Option(name string, v int32) *RecordBuilder {
	b.rec.Set(name, record.Option(v))
	return b
}

// Date sets an absolute date/time attribute.
func (b *RecordBuilder) Date(name string, t time.Time) *RecordBuilder {
	b.rec.Set(name, record.DateTime{Time: t, Kind: record.KindAbsolute})
	return b
}

// WallDate sets a timezone-unspecified date/time attribute.
func (b *RecordBuilder) WallDate(name string, t time.Time) *RecordBuilder {
	b.rec.Set(name, record.DateTime{Time: t, Kind: record.KindUnspecified})
	return b
}

// Ref sets a reference attribute.
func (b *RecordBuilder) Ref(name, entity string, id uuid.UUID) *RecordBuilder {
	b.rec.Set(name, record.Reference{LogicalName: entity, ID: id})
	return b
}

// Null sets an explicit null attribute.
func (b *RecordBuilder) Null(name string) *RecordBuilder {
	b.rec.Set(name, record.Null{})
	return b
}

// Build returns the assembled record.
func (b *RecordBuilder) Build() *record.Record {
	return b.rec
}
