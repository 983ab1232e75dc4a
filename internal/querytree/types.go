package querytree

import "github.com/roach88/mimic/internal/record"

// LogicalOperator combines the members of a Filter.
type LogicalOperator string

const (
	// And requires every condition and child filter to match.
	And LogicalOperator = "and"

	// Or requires at least one condition or child filter to match.
	Or LogicalOperator = "or"
)

// JoinType selects the row semantics of a link-entity.
type JoinType string

const (
	// JoinInner drops parents without a matching joined row and fans out
	// one output row per match.
	JoinInner JoinType = "inner"

	// JoinOuter preserves every parent exactly once, with joined
	// attributes absent when no match exists.
	JoinOuter JoinType = "outer"
)

// Condition is one attribute/operator/values test.
type Condition struct {
	// Attribute is the logical name of the attribute under test. For
	// conditions inside a link-entity it names an attribute of the
	// linked entity.
	Attribute string

	// Operator is the test to apply.
	Operator Operator

	// Values holds the literal arguments. Length must satisfy the
	// operator's arity; Validate enforces this.
	Values []record.Value
}

// Filter is a node in the criteria tree: a logical combinator over
// conditions and child filters.
//
// An empty Filter (no conditions, no children) matches every record.
type Filter struct {
	Logical    LogicalOperator
	Conditions []Condition
	Filters    []*Filter
}

// Empty reports whether the filter constrains nothing.
func (f *Filter) Empty() bool {
	return f == nil || (len(f.Conditions) == 0 && len(f.Filters) == 0)
}

// ColumnSet is the requested projection: all columns or an explicit,
// ordered list.
type ColumnSet struct {
	All     bool
	Columns []string
}

// AllColumns returns the wildcard projection.
func AllColumns() ColumnSet {
	return ColumnSet{All: true}
}

// Columns returns an explicit projection preserving the given order.
func Columns(names ...string) ColumnSet {
	return ColumnSet{Columns: names}
}

// Order is one result-ordering directive. Records with the attribute
// absent sort after all present values.
type Order struct {
	Attribute  string
	Descending bool
}

// LinkEntity joins the parent entity to a related entity.
type LinkEntity struct {
	// Name is the logical name of the linked entity.
	Name string

	// From is the joining attribute on the linked entity; To is the
	// joining attribute on the parent.
	From string
	To   string

	// Alias prefixes projected attributes of the linked entity
	// ("alias.attribute"). Empty alias uses the entity name.
	Alias string

	// Join selects inner or outer semantics.
	Join JoinType

	// Columns is the linked entity's projection.
	Columns ColumnSet

	// Filter is evaluated against the joined record.
	Filter *Filter

	// Links nests further link-entities under this one.
	Links []LinkEntity
}

// EffectiveAlias returns Alias, falling back to the entity name.
func (l LinkEntity) EffectiveAlias() string {
	if l.Alias != "" {
		return l.Alias
	}
	return l.Name
}

// Query is the root of a structured query: one entity, a projection, a
// criteria tree, joins, ordering and an optional row limit.
type Query struct {
	// Entity is the root entity's logical name.
	Entity string

	// Columns is the root projection.
	Columns ColumnSet

	// Filter is the root criteria tree. Nil behaves as an empty filter.
	Filter *Filter

	// Links lists link-entity joins off the root.
	Links []LinkEntity

	// Orders applies result ordering, first directive most significant.
	Orders []Order

	// Top limits the result to the first N rows after ordering.
	// Zero means no limit.
	Top int
}
