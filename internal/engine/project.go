package engine

import (
	"sort"
	"strings"

	"github.com/roach88/mimic/internal/querytree"
	"github.com/roach88/mimic/internal/record"
)

// structuralAttributes lists attributes that carry embedded definition
// payloads and are returned whether or not the column set names them.
// The platform treats these as part of the record's structure rather
// than ordinary data.
var structuralAttributes = map[string]string{
	"slarecord":   "slaitems",
	"routingrule": "ruleitems",
}

// materialize builds one output record from a matched base record and
// the join row contributed by link expansion.
func (e *Engine) materialize(base *record.Record, entity string, cols querytree.ColumnSet, row joinRow) (*record.Record, error) {
	out := record.NewWithID(entity, base.ID)

	if cols.All {
		for _, name := range base.Attributes() {
			v, _ := base.Get(name)
			out.Set(name, v)
		}
	} else {
		for _, name := range cols.Columns {
			if _, err := e.meta.Attribute(entity, name); err != nil {
				return nil, err
			}
			if v, ok := base.Get(name); ok {
				out.Set(name, v)
			}
		}
	}

	if structural, ok := structuralAttributes[entity]; ok && !out.Has(structural) {
		if v, ok := base.Get(structural); ok {
			out.Set(structural, v)
		}
	}

	for i, name := range row.names {
		out.Set(name, row.values[i])
	}
	return out, nil
}

// sortRecords orders results by the query's order clauses. Records
// lacking an ordering attribute sort after records that have it, for
// ascending and descending alike. The sort is stable so insertion order
// breaks ties.
func (ec *evalContext) sortRecords(records []*record.Record, orders []querytree.Order) {
	if len(orders) == 0 {
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		for _, o := range orders {
			av, aok := records[i].Get(o.Attribute)
			bv, bok := records[j].Get(o.Attribute)
			aok = aok && !record.IsNull(av)
			bok = bok && !record.IsNull(bv)
			if !aok && !bok {
				continue
			}
			if !aok {
				return false
			}
			if !bok {
				return true
			}
			cmp := ec.compareValues(av, bv)
			if cmp == 0 {
				continue
			}
			if o.Descending {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

// compareValues imposes a total order within a value type. Mixed-type
// pairs compare equal, leaving their relative order to stability.
func (ec *evalContext) compareValues(a, b record.Value) int {
	if an, ok := valueAsNumber(a); ok {
		if bn, ok := valueAsNumber(b); ok {
			switch {
			case an < bn:
				return -1
			case an > bn:
				return 1
			default:
				return 0
			}
		}
	}
	if as, ok := a.(record.String); ok {
		if bs, ok := b.(record.String); ok {
			return strings.Compare(strings.ToLower(string(as)), strings.ToLower(string(bs)))
		}
	}
	if ad, ok := a.(record.DateTime); ok {
		if bd, ok := b.(record.DateTime); ok {
			ai, bi := ec.comparableInstant(ad), ec.comparableInstant(bd)
			switch {
			case ai.Before(bi):
				return -1
			case ai.After(bi):
				return 1
			default:
				return 0
			}
		}
	}
	if ab, ok := a.(record.Bool); ok {
		if bb, ok := b.(record.Bool); ok {
			switch {
			case !bool(ab) && bool(bb):
				return -1
			case bool(ab) && !bool(bb):
				return 1
			default:
				return 0
			}
		}
	}
	if aid, ok := valueAsID(a); ok {
		if bid, ok := valueAsID(b); ok {
			return strings.Compare(aid.String(), bid.String())
		}
	}
	return 0
}
