package engine

import (
	"strings"

	"github.com/roach88/mimic/internal/querytree"
	"github.com/roach88/mimic/internal/record"
)

// evalFilter recursively evaluates a criteria tree against one record.
//
// An empty filter (no conditions, no children) matches every record.
// That is defined behavior, not an omission: a query without criteria
// returns the whole candidate set.
func (ec *evalContext) evalFilter(rec *record.Record, entity string, f *querytree.Filter) (bool, error) {
	if f.Empty() {
		return true, nil
	}

	logical := f.Logical
	if logical == "" {
		logical = querytree.And
	}

	for _, c := range f.Conditions {
		ok, err := ec.evalCondition(rec, entity, c)
		if err != nil {
			return false, err
		}
		if logical == querytree.And && !ok {
			return false, nil
		}
		if logical == querytree.Or && ok {
			return true, nil
		}
	}
	for _, child := range f.Filters {
		ok, err := ec.evalFilter(rec, entity, child)
		if err != nil {
			return false, err
		}
		if logical == querytree.And && !ok {
			return false, nil
		}
		if logical == querytree.Or && ok {
			return true, nil
		}
	}

	// And exhausted without a miss; Or exhausted without a hit.
	return logical == querytree.And, nil
}

// joinRow is one set of aliased attributes contributed by link-entity
// expansion, ordered for deterministic projection.
type joinRow struct {
	names  []string
	values []record.Value
}

func (j joinRow) add(name string, v record.Value) joinRow {
	j.names = append(j.names[:len(j.names):len(j.names)], name)
	j.values = append(j.values[:len(j.values):len(j.values)], v)
	return j
}

func (j joinRow) concat(other joinRow) joinRow {
	out := joinRow{
		names:  make([]string, 0, len(j.names)+len(other.names)),
		values: make([]record.Value, 0, len(j.values)+len(other.values)),
	}
	out.names = append(append(out.names, j.names...), other.names...)
	out.values = append(append(out.values, j.values...), other.values...)
	return out
}

// expandLinks folds every link-entity off base into combined join rows.
// An inner join with no matches anywhere yields zero rows, dropping the
// parent; fan-out multiplies rows per matching joined record.
func (e *Engine) expandLinks(ec *evalContext, base *record.Record, baseEntity string, links []querytree.LinkEntity) ([]joinRow, error) {
	rows := []joinRow{{}}
	for _, link := range links {
		expanded, err := e.joinLink(ec, base, baseEntity, link)
		if err != nil {
			return nil, err
		}
		var next []joinRow
		for _, row := range rows {
			for _, frag := range expanded {
				next = append(next, row.concat(frag))
			}
		}
		rows = next
		if len(rows) == 0 {
			break
		}
	}
	return rows, nil
}

// joinLink resolves one link-entity against base and returns the join
// rows it contributes. Outer joins with no match contribute a single
// empty row so the parent survives with joined attributes absent.
func (e *Engine) joinLink(ec *evalContext, base *record.Record, baseEntity string, link querytree.LinkEntity) ([]joinRow, error) {
	if _, err := e.meta.Entity(link.Name); err != nil {
		return nil, err
	}

	key, keyPresent, err := e.joinValue(base, baseEntity, link.To)
	if err != nil {
		return nil, err
	}

	var rows []joinRow
	if keyPresent {
		candidates, err := e.source.GetAll(link.Name)
		if err != nil {
			return nil, err
		}
		for _, cand := range candidates {
			candKey, present, err := e.joinValue(cand, link.Name, link.From)
			if err != nil {
				return nil, err
			}
			if !present || !joinKeysMatch(key, candKey) {
				continue
			}
			ok, err := ec.evalFilter(cand, link.Name, link.Filter)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}

			frag, err := e.projectLink(cand, link)
			if err != nil {
				return nil, err
			}

			// Nested links expand against the joined record, multiplying
			// this candidate's contribution.
			nested, err := e.expandLinks(ec, cand, link.Name, link.Links)
			if err != nil {
				return nil, err
			}
			for _, n := range nested {
				rows = append(rows, frag.concat(n))
			}
		}
	}

	if len(rows) == 0 {
		switch link.Join {
		case querytree.JoinOuter:
			return []joinRow{{}}, nil
		default:
			return nil, nil
		}
	}
	return rows, nil
}

// projectLink builds the aliased attribute fragment a matching joined
// record contributes.
func (e *Engine) projectLink(cand *record.Record, link querytree.LinkEntity) (joinRow, error) {
	alias := link.EffectiveAlias()
	var frag joinRow

	if link.Columns.All {
		for _, name := range cand.Attributes() {
			v, _ := cand.Get(name)
			frag = frag.add(alias+"."+name, v)
		}
		return frag, nil
	}

	for _, name := range link.Columns.Columns {
		if _, err := e.meta.Attribute(link.Name, name); err != nil {
			return joinRow{}, err
		}
		if v, ok := cand.Get(name); ok {
			frag = frag.add(alias+"."+name, v)
		}
	}
	return frag, nil
}

// joinValue resolves a joining attribute on a record. The entity's
// primary-identifier attribute resolves to the record's ID even when no
// attribute of that name was set.
func (e *Engine) joinValue(rec *record.Record, entity, attr string) (record.Value, bool, error) {
	meta, err := e.meta.Entity(entity)
	if err != nil {
		return nil, false, err
	}
	if v, ok := rec.Get(attr); ok {
		if record.IsNull(v) {
			return nil, false, nil
		}
		return v, true, nil
	}
	if attr == meta.PrimaryID {
		return record.Reference{LogicalName: entity, ID: rec.ID}, true, nil
	}
	if _, ok := meta.Attribute(attr); !ok {
		return nil, false, NewUnknownAttributeError(entity, attr)
	}
	return nil, false, nil
}

// joinKeysMatch compares two joining values loosely: identifiers match
// identifiers regardless of representation, numbers match numbers, and
// strings compare case-insensitively.
func joinKeysMatch(a, b record.Value) bool {
	if aid, ok := valueAsID(a); ok {
		if bid, ok := valueAsID(b); ok {
			return aid == bid
		}
	}
	if an, ok := valueAsNumber(a); ok {
		if bn, ok := valueAsNumber(b); ok {
			return an == bn
		}
	}
	if as, ok := a.(record.String); ok {
		if bs, ok := b.(record.String); ok {
			return strings.EqualFold(string(as), string(bs))
		}
	}
	return false
}
