package record

import (
	"time"

	"github.com/google/uuid"
)

// Value is a sealed interface representing the closed set of attribute
// value types the simulated platform supports. Only the types in this
// package implement it.
//
// The marker method pattern prevents external implementations and enables
// exhaustive type switches in the condition evaluator.
type Value interface {
	attributeValue() // Sealed - only these types implement it
}

// Null represents a present-but-null attribute value.
//
// Setting an attribute to Null is not the same as never setting it: the
// attribute participates in projection and serialization, while an absent
// attribute does not. Both satisfy the null-check operator.
type Null struct{}

func (Null) attributeValue() {}

// String is a text attribute value.
type String string

func (String) attributeValue() {}

// Int is a whole-number attribute value. Always int64.
type Int int64

func (Int) attributeValue() {}

// Decimal is a fractional numeric attribute value.
type Decimal float64

func (Decimal) attributeValue() {}

// Bool is a two-state attribute value.
type Bool bool

func (Bool) attributeValue() {}

// Option is an option-set attribute value holding the option code.
type Option int32

func (Option) attributeValue() {}

// Money is a currency attribute value holding the amount only. The
// simulated store is single-currency; no currency code is tracked.
type Money float64

func (Money) attributeValue() {}

// DateTimeKind tags how a DateTime's instant relates to timezones.
type DateTimeKind int

const (
	// KindAbsolute marks a value that denotes a specific instant and is
	// converted between zones freely.
	KindAbsolute DateTimeKind = iota

	// KindUnspecified marks a value whose date and time fields are to be
	// read verbatim, never zone-converted. Produced by the DateOnly and
	// TimeZoneIndependent attribute behaviors.
	KindUnspecified
)

// String returns the kind name for diagnostics and serialization.
func (k DateTimeKind) String() string {
	switch k {
	case KindAbsolute:
		return "absolute"
	case KindUnspecified:
		return "unspecified"
	default:
		return "unknown"
	}
}

// DateTime is a date/time attribute value: an instant plus the tag that
// says whether the instant is absolute or a verbatim wall reading.
type DateTime struct {
	Time time.Time
	Kind DateTimeKind
}

func (DateTime) attributeValue() {}

// NewDateTime creates an absolute DateTime in UTC.
func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t.UTC(), Kind: KindAbsolute}
}

// Reference is a pointer to another record: the target's logical name and
// identifier, plus an optional display name carried for convenience.
type Reference struct {
	LogicalName string
	ID          uuid.UUID
	Name        string
}

func (Reference) attributeValue() {}

// IsNull reports whether v is absent (nil) or an explicit Null.
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Null)
	return ok
}
