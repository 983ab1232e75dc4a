package querytree

import (
	"fmt"
	"strconv"

	"github.com/roach88/mimic/internal/record"
)

// Validate checks the structural invariants of a query before
// evaluation:
//
//  1. Every operator is from the fixed vocabulary.
//  2. Every condition's value count satisfies its operator's arity.
//  3. Count-argument operators carry a single integer literal.
//  4. Logical operators and join types hold defined values.
//
// Validate is a pure function; it never mutates the query. The engine
// calls it once per invocation so evaluation can assume a well-formed
// tree.
func Validate(q *Query) error {
	if q == nil {
		return fmt.Errorf("nil query")
	}
	if q.Entity == "" {
		return fmt.Errorf("query has no root entity")
	}
	if q.Top < 0 {
		return fmt.Errorf("negative top: %d", q.Top)
	}
	if err := validateFilter(q.Filter, q.Entity); err != nil {
		return err
	}
	for _, link := range q.Links {
		if err := validateLink(link); err != nil {
			return err
		}
	}
	return nil
}

func validateFilter(f *Filter, entity string) error {
	if f == nil {
		return nil
	}
	switch f.Logical {
	case And, Or:
	case "":
		// Zero value reads as And to keep hand-built trees terse.
	default:
		return fmt.Errorf("entity %s: unknown logical operator %q", entity, f.Logical)
	}
	for _, c := range f.Conditions {
		if err := validateCondition(c, entity); err != nil {
			return err
		}
	}
	for _, child := range f.Filters {
		if err := validateFilter(child, entity); err != nil {
			return err
		}
	}
	return nil
}

func validateCondition(c Condition, entity string) error {
	if c.Attribute == "" {
		return fmt.Errorf("entity %s: condition has no attribute", entity)
	}
	if !c.Operator.Known() {
		return fmt.Errorf("entity %s, attribute %s: unknown operator %q", entity, c.Attribute, c.Operator)
	}

	n := len(c.Values)
	switch c.Operator.Arity() {
	case ArityNone:
		if n != 0 {
			return arityError(entity, c, "no values")
		}
	case ArityOne:
		if n != 1 {
			return arityError(entity, c, "exactly one value")
		}
	case ArityTwo:
		if n != 2 {
			return arityError(entity, c, "exactly two values")
		}
	case ArityAtLeastOne:
		if n < 1 {
			return arityError(entity, c, "at least one value")
		}
	}

	if c.Operator.TakesCount() {
		// Markup delivers the count as a string literal; programmatic
		// callers pass Int. Both must denote a whole number.
		switch v := c.Values[0].(type) {
		case record.Int:
		case record.String:
			if _, err := strconv.Atoi(string(v)); err != nil {
				return fmt.Errorf("entity %s, attribute %s: operator %s requires an integer count, got %q",
					entity, c.Attribute, c.Operator, string(v))
			}
		default:
			return fmt.Errorf("entity %s, attribute %s: operator %s requires an integer count, got %T",
				entity, c.Attribute, c.Operator, c.Values[0])
		}
	}
	return nil
}

func arityError(entity string, c Condition, want string) error {
	return fmt.Errorf("entity %s, attribute %s: operator %s requires %s, got %d",
		entity, c.Attribute, c.Operator, want, len(c.Values))
}

func validateLink(l LinkEntity) error {
	if l.Name == "" {
		return fmt.Errorf("link-entity has no name")
	}
	if l.From == "" || l.To == "" {
		return fmt.Errorf("link-entity %s: both from and to attributes are required", l.Name)
	}
	switch l.Join {
	case JoinInner, JoinOuter:
	case "":
		// Zero value reads as inner, matching the markup default.
	default:
		return fmt.Errorf("link-entity %s: unknown join type %q", l.Name, l.Join)
	}
	if err := validateFilter(l.Filter, l.Name); err != nil {
		return err
	}
	for _, nested := range l.Links {
		if err := validateLink(nested); err != nil {
			return err
		}
	}
	return nil
}
