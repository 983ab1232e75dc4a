package record

// AttributeType tags the primitive type of an attribute as declared in
// entity metadata. The condition evaluator uses it to reject operators
// applied to incompatible attribute types instead of coercing.
type AttributeType string

const (
	TypeString    AttributeType = "string"
	TypeInteger   AttributeType = "integer"
	TypeDecimal   AttributeType = "decimal"
	TypeBoolean   AttributeType = "boolean"
	TypeDateTime  AttributeType = "datetime"
	TypeReference AttributeType = "reference"
	TypeOption    AttributeType = "option"
	TypeMoney     AttributeType = "money"
	TypeUniqueID  AttributeType = "uniqueid"
)

// Numeric reports whether the type participates in numeric comparison.
func (t AttributeType) Numeric() bool {
	switch t {
	case TypeInteger, TypeDecimal, TypeMoney, TypeOption:
		return true
	default:
		return false
	}
}

// DateBehavior is the per-attribute policy governing how date/time values
// are normalized on write and projected on read.
type DateBehavior string

const (
	// BehaviorAbsolute keeps the value as an absolute instant. Values
	// round-trip unchanged. This is the default when metadata declares no
	// behavior.
	BehaviorAbsolute DateBehavior = "absolute"

	// BehaviorDateOnly zeroes time-of-day on both write and read and tags
	// the value timezone-unspecified.
	BehaviorDateOnly DateBehavior = "dateonly"

	// BehaviorTimeZoneIndependent preserves time-of-day verbatim, tags
	// the value timezone-unspecified, and never converts it regardless of
	// the configured zone.
	BehaviorTimeZoneIndependent DateBehavior = "tzindependent"
)

// AttributeMeta describes one attribute of an entity.
type AttributeMeta struct {
	// LogicalName is the attribute's name as it appears in queries.
	LogicalName string

	// Type is the attribute's primitive type tag.
	Type AttributeType

	// Behavior applies to TypeDateTime attributes only. Zero value means
	// BehaviorAbsolute.
	Behavior DateBehavior
}

// DateBehaviorOrDefault resolves the zero value to BehaviorAbsolute.
func (a AttributeMeta) DateBehaviorOrDefault() DateBehavior {
	if a.Behavior == "" {
		return BehaviorAbsolute
	}
	return a.Behavior
}

// Relationship describes a one-to-many link between two entities, used to
// resolve link-entity joins.
type Relationship struct {
	// SchemaName identifies the relationship.
	SchemaName string

	// Referenced is the "one" side entity and its key attribute.
	Referenced          string
	ReferencedAttribute string

	// Referencing is the "many" side entity and its lookup attribute.
	Referencing          string
	ReferencingAttribute string
}

// EntityMeta describes one entity type: its attributes and the
// relationships it participates in.
type EntityMeta struct {
	// LogicalName identifies the entity type.
	LogicalName string

	// PrimaryID is the name of the unique-identifier attribute.
	PrimaryID string

	// Attributes maps attribute logical name to its metadata.
	Attributes map[string]AttributeMeta

	// Relationships lists relationships where this entity is the
	// referenced ("one") side.
	Relationships []Relationship
}

// Attribute looks up attribute metadata by logical name.
func (e *EntityMeta) Attribute(name string) (AttributeMeta, bool) {
	a, ok := e.Attributes[name]
	return a, ok
}
