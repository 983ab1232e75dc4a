package fetchxml

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/roach88/mimic/internal/querytree"
	"github.com/roach88/mimic/internal/record"
)

// operatorNames maps markup operator names onto the fixed vocabulary.
// Names match querytree's operator strings, plus the historical aliases
// the platform accepts.
var operatorNames = map[string]querytree.Operator{}

func init() {
	for _, op := range []querytree.Operator{
		querytree.OpEqual, querytree.OpNotEqual,
		querytree.OpLess, querytree.OpLessEqual,
		querytree.OpGreater, querytree.OpGreaterEqual,
		querytree.OpLike, querytree.OpNotLike,
		querytree.OpBeginsWith, querytree.OpNotBeginWith,
		querytree.OpEndsWith, querytree.OpNotEndWith,
		querytree.OpIn, querytree.OpNotIn,
		querytree.OpBetween, querytree.OpNotBetween,
		querytree.OpNull, querytree.OpNotNull,
		querytree.OpOn, querytree.OpOnOrBefore, querytree.OpOnOrAfter,
		querytree.OpToday, querytree.OpYesterday, querytree.OpTomorrow,
		querytree.OpThisWeek, querytree.OpLastWeek, querytree.OpNextWeek,
		querytree.OpThisMonth, querytree.OpLastMonth, querytree.OpNextMonth,
		querytree.OpThisYear, querytree.OpLastYear, querytree.OpNextYear,
		querytree.OpThisFiscalYear, querytree.OpLastFiscalYear, querytree.OpNextFiscalYear,
		querytree.OpLastXDays, querytree.OpNextXDays,
		querytree.OpLastXHours, querytree.OpNextXHours,
		querytree.OpLastXMonths, querytree.OpNextXMonths,
		querytree.OpLastXYears, querytree.OpNextXYears,
		querytree.OpOlderThanXMonths,
	} {
		operatorNames[string(op)] = op
	}
	// Historical alias the platform's SDK emits.
	operatorNames["neq"] = querytree.OpNotEqual
}

// Markup structs mirror the grammar exactly. Element and attribute names
// are part of the compatibility contract; do not rename.

type xmlFetch struct {
	XMLName xml.Name   `xml:"fetch"`
	Top     string     `xml:"top,attr"`
	Entity  *xmlEntity `xml:"entity"`
}

type xmlEntity struct {
	Name          string         `xml:"name,attr"`
	AllAttributes *xmlEmpty      `xml:"all-attributes"`
	Attributes    []xmlAttribute `xml:"attribute"`
	Orders        []xmlOrder     `xml:"order"`
	Filters       []xmlFilter    `xml:"filter"`
	Links         []xmlLink      `xml:"link-entity"`
}

type xmlEmpty struct{}

type xmlAttribute struct {
	Name string `xml:"name,attr"`
}

type xmlOrder struct {
	Attribute  string `xml:"attribute,attr"`
	Descending bool   `xml:"descending,attr"`
}

type xmlFilter struct {
	Type       string         `xml:"type,attr"`
	Conditions []xmlCondition `xml:"condition"`
	Filters    []xmlFilter    `xml:"filter"`
}

type xmlCondition struct {
	Attribute string     `xml:"attribute,attr"`
	Operator  string     `xml:"operator,attr"`
	Value     *string    `xml:"value,attr"`
	Values    []xmlValue `xml:"value"`
}

type xmlValue struct {
	Text string `xml:",chardata"`
}

type xmlLink struct {
	Name          string         `xml:"name,attr"`
	From          string         `xml:"from,attr"`
	To            string         `xml:"to,attr"`
	Alias         string         `xml:"alias,attr"`
	LinkType      string         `xml:"link-type,attr"`
	AllAttributes *xmlEmpty      `xml:"all-attributes"`
	Attributes    []xmlAttribute `xml:"attribute"`
	Filters       []xmlFilter    `xml:"filter"`
	Links         []xmlLink      `xml:"link-entity"`
}

// Translate parses FetchXML markup into a structured query.
//
// Literal condition values stay as string literals; the engine coerces
// them against attribute metadata at evaluation time, the same way the
// real platform interprets markup values.
func Translate(markup string) (*querytree.Query, error) {
	var doc xmlFetch
	dec := xml.NewDecoder(strings.NewReader(markup))
	if err := dec.Decode(&doc); err != nil {
		return nil, &ParseError{Message: "malformed markup", Err: err}
	}
	if doc.Entity == nil {
		return nil, parseErrorf("fetch element has no entity")
	}
	if doc.Entity.Name == "" {
		return nil, parseErrorf("entity element has no name attribute")
	}

	q := &querytree.Query{Entity: doc.Entity.Name}

	if doc.Top != "" {
		top, err := strconv.Atoi(doc.Top)
		if err != nil || top < 0 {
			return nil, parseErrorf("invalid top attribute %q", doc.Top)
		}
		q.Top = top
	}

	q.Columns = translateColumns(doc.Entity.AllAttributes, doc.Entity.Attributes)

	filter, err := translateFilters(doc.Entity.Filters)
	if err != nil {
		return nil, err
	}
	q.Filter = filter

	for _, o := range doc.Entity.Orders {
		if o.Attribute == "" {
			return nil, parseErrorf("order element has no attribute")
		}
		q.Orders = append(q.Orders, querytree.Order{Attribute: o.Attribute, Descending: o.Descending})
	}

	for _, l := range doc.Entity.Links {
		link, err := translateLink(l)
		if err != nil {
			return nil, err
		}
		q.Links = append(q.Links, link)
	}

	if err := querytree.Validate(q); err != nil {
		return nil, &ParseError{Message: "invalid query", Err: err}
	}
	return q, nil
}

func translateColumns(all *xmlEmpty, attrs []xmlAttribute) querytree.ColumnSet {
	if all != nil {
		return querytree.AllColumns()
	}
	names := make([]string, 0, len(attrs))
	for _, a := range attrs {
		names = append(names, a.Name)
	}
	// Markup document order is preserved so projection is deterministic.
	return querytree.ColumnSet{Columns: names}
}

// translateFilters handles the filter elements directly under an entity.
// The grammar allows one; multiple sibling filters combine under an
// implicit and, matching platform behavior.
func translateFilters(filters []xmlFilter) (*querytree.Filter, error) {
	switch len(filters) {
	case 0:
		return nil, nil
	case 1:
		return translateFilter(filters[0])
	default:
		parent := &querytree.Filter{Logical: querytree.And}
		for _, f := range filters {
			child, err := translateFilter(f)
			if err != nil {
				return nil, err
			}
			parent.Filters = append(parent.Filters, child)
		}
		return parent, nil
	}
}

func translateFilter(f xmlFilter) (*querytree.Filter, error) {
	out := &querytree.Filter{}
	switch f.Type {
	case "", "and":
		out.Logical = querytree.And
	case "or":
		out.Logical = querytree.Or
	default:
		return nil, parseErrorf("unknown filter type %q", f.Type)
	}

	for _, c := range f.Conditions {
		cond, err := translateCondition(c)
		if err != nil {
			return nil, err
		}
		out.Conditions = append(out.Conditions, cond)
	}
	for _, child := range f.Filters {
		sub, err := translateFilter(child)
		if err != nil {
			return nil, err
		}
		out.Filters = append(out.Filters, sub)
	}
	return out, nil
}

func translateCondition(c xmlCondition) (querytree.Condition, error) {
	if c.Attribute == "" {
		return querytree.Condition{}, parseErrorf("condition element has no attribute")
	}
	if c.Operator == "" {
		return querytree.Condition{}, parseErrorf("condition on %q has no operator", c.Attribute)
	}

	op, ok := operatorNames[c.Operator]
	if !ok {
		// Names the grammar defines but this simulator has not implemented
		// (hierarchy and caller-relative operators) land here too.
		// ParseError is reserved for broken markup.
		return querytree.Condition{}, &UnsupportedOperatorError{Name: c.Operator}
	}

	if c.Value != nil && len(c.Values) > 0 {
		return querytree.Condition{}, parseErrorf(
			"condition on %q has both a value attribute and value elements", c.Attribute)
	}

	var values []record.Value
	if c.Value != nil {
		values = []record.Value{record.String(*c.Value)}
	}
	for _, v := range c.Values {
		values = append(values, record.String(v.Text))
	}

	return querytree.Condition{Attribute: c.Attribute, Operator: op, Values: values}, nil
}

func translateLink(l xmlLink) (querytree.LinkEntity, error) {
	if l.Name == "" {
		return querytree.LinkEntity{}, parseErrorf("link-entity element has no name")
	}
	if l.From == "" || l.To == "" {
		return querytree.LinkEntity{}, parseErrorf("link-entity %q requires from and to attributes", l.Name)
	}

	link := querytree.LinkEntity{
		Name:    l.Name,
		From:    l.From,
		To:      l.To,
		Alias:   l.Alias,
		Columns: translateColumns(l.AllAttributes, l.Attributes),
	}

	switch l.LinkType {
	case "", "inner":
		link.Join = querytree.JoinInner
	case "outer":
		link.Join = querytree.JoinOuter
	default:
		return querytree.LinkEntity{}, parseErrorf("link-entity %q has unknown link-type %q", l.Name, l.LinkType)
	}

	filter, err := translateFilters(l.Filters)
	if err != nil {
		return querytree.LinkEntity{}, err
	}
	link.Filter = filter

	for _, nested := range l.Links {
		sub, err := translateLink(nested)
		if err != nil {
			return querytree.LinkEntity{}, err
		}
		link.Links = append(link.Links, sub)
	}
	return link, nil
}
