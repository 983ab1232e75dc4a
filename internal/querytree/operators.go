package querytree

// Operator identifies one filter-condition operator from the fixed
// vocabulary. The string values are the exact names used by the markup
// grammar; they are part of the compatibility contract.
type Operator string

const (
	OpEqual        Operator = "eq"
	OpNotEqual     Operator = "ne"
	OpLess         Operator = "lt"
	OpLessEqual    Operator = "le"
	OpGreater      Operator = "gt"
	OpGreaterEqual Operator = "ge"

	OpLike          Operator = "like"
	OpNotLike       Operator = "not-like"
	OpBeginsWith    Operator = "begins-with"
	OpNotBeginWith  Operator = "not-begin-with"
	OpEndsWith      Operator = "ends-with"
	OpNotEndWith    Operator = "not-end-with"

	OpIn         Operator = "in"
	OpNotIn      Operator = "not-in"
	OpBetween    Operator = "between"
	OpNotBetween Operator = "not-between"

	OpNull    Operator = "null"
	OpNotNull Operator = "not-null"

	OpOn         Operator = "on"
	OpOnOrBefore Operator = "on-or-before"
	OpOnOrAfter  Operator = "on-or-after"

	OpToday     Operator = "today"
	OpYesterday Operator = "yesterday"
	OpTomorrow  Operator = "tomorrow"

	OpThisWeek  Operator = "this-week"
	OpLastWeek  Operator = "last-week"
	OpNextWeek  Operator = "next-week"
	OpThisMonth Operator = "this-month"
	OpLastMonth Operator = "last-month"
	OpNextMonth Operator = "next-month"
	OpThisYear  Operator = "this-year"
	OpLastYear  Operator = "last-year"
	OpNextYear  Operator = "next-year"

	OpThisFiscalYear Operator = "this-fiscal-year"
	OpLastFiscalYear Operator = "last-fiscal-year"
	OpNextFiscalYear Operator = "next-fiscal-year"

	OpLastXDays   Operator = "last-x-days"
	OpNextXDays   Operator = "next-x-days"
	OpLastXHours  Operator = "last-x-hours"
	OpNextXHours  Operator = "next-x-hours"
	OpLastXMonths Operator = "last-x-months"
	OpNextXMonths Operator = "next-x-months"
	OpLastXYears  Operator = "last-x-years"
	OpNextXYears  Operator = "next-x-years"

	OpOlderThanXMonths Operator = "olderthan-x-months"
)

// Arity describes how many literal values an operator takes.
type Arity int

const (
	// ArityNone means the operator takes no values (null, today, ...).
	ArityNone Arity = iota

	// ArityOne means exactly one value.
	ArityOne

	// ArityTwo means exactly two values (between).
	ArityTwo

	// ArityAtLeastOne means one or more values (in).
	ArityAtLeastOne
)

// opInfo carries the static classification of one operator.
type opInfo struct {
	arity Arity

	// text marks operators routed through case-insensitive text
	// comparison or pattern matching.
	text bool

	// dateRange marks operators the date/time resolver turns into an
	// inclusive instant range.
	dateRange bool

	// countArg marks date-range operators whose single value is an
	// integer count (last-x-days etc.) rather than a date literal.
	countArg bool

	// ordered marks operators requiring an ordered comparison of the
	// attribute's declared type (numeric or date).
	ordered bool
}

var operators = map[Operator]opInfo{
	OpEqual:        {arity: ArityOne},
	OpNotEqual:     {arity: ArityOne},
	OpLess:         {arity: ArityOne, ordered: true},
	OpLessEqual:    {arity: ArityOne, ordered: true},
	OpGreater:      {arity: ArityOne, ordered: true},
	OpGreaterEqual: {arity: ArityOne, ordered: true},

	OpLike:         {arity: ArityOne, text: true},
	OpNotLike:      {arity: ArityOne, text: true},
	OpBeginsWith:   {arity: ArityOne, text: true},
	OpNotBeginWith: {arity: ArityOne, text: true},
	OpEndsWith:     {arity: ArityOne, text: true},
	OpNotEndWith:   {arity: ArityOne, text: true},

	OpIn:         {arity: ArityAtLeastOne},
	OpNotIn:      {arity: ArityAtLeastOne},
	OpBetween:    {arity: ArityTwo, ordered: true},
	OpNotBetween: {arity: ArityTwo, ordered: true},

	OpNull:    {arity: ArityNone},
	OpNotNull: {arity: ArityNone},

	OpOn:         {arity: ArityOne, dateRange: true},
	OpOnOrBefore: {arity: ArityOne, dateRange: true},
	OpOnOrAfter:  {arity: ArityOne, dateRange: true},

	OpToday:     {arity: ArityNone, dateRange: true},
	OpYesterday: {arity: ArityNone, dateRange: true},
	OpTomorrow:  {arity: ArityNone, dateRange: true},

	OpThisWeek:  {arity: ArityNone, dateRange: true},
	OpLastWeek:  {arity: ArityNone, dateRange: true},
	OpNextWeek:  {arity: ArityNone, dateRange: true},
	OpThisMonth: {arity: ArityNone, dateRange: true},
	OpLastMonth: {arity: ArityNone, dateRange: true},
	OpNextMonth: {arity: ArityNone, dateRange: true},
	OpThisYear:  {arity: ArityNone, dateRange: true},
	OpLastYear:  {arity: ArityNone, dateRange: true},
	OpNextYear:  {arity: ArityNone, dateRange: true},

	OpThisFiscalYear: {arity: ArityNone, dateRange: true},
	OpLastFiscalYear: {arity: ArityNone, dateRange: true},
	OpNextFiscalYear: {arity: ArityNone, dateRange: true},

	OpLastXDays:   {arity: ArityOne, dateRange: true, countArg: true},
	OpNextXDays:   {arity: ArityOne, dateRange: true, countArg: true},
	OpLastXHours:  {arity: ArityOne, dateRange: true, countArg: true},
	OpNextXHours:  {arity: ArityOne, dateRange: true, countArg: true},
	OpLastXMonths: {arity: ArityOne, dateRange: true, countArg: true},
	OpNextXMonths: {arity: ArityOne, dateRange: true, countArg: true},
	OpLastXYears:  {arity: ArityOne, dateRange: true, countArg: true},
	OpNextXYears:  {arity: ArityOne, dateRange: true, countArg: true},

	OpOlderThanXMonths: {arity: ArityOne, dateRange: true, countArg: true},
}

// Known reports whether op is part of the fixed vocabulary.
func (op Operator) Known() bool {
	_, ok := operators[op]
	return ok
}

// Arity returns the operator's literal-value arity. Unknown operators
// report ArityNone; callers must check Known first.
func (op Operator) Arity() Arity {
	return operators[op].arity
}

// IsText reports whether the operator compares or pattern-matches text.
func (op Operator) IsText() bool {
	return operators[op].text
}

// IsDateRange reports whether the operator resolves to an inclusive
// instant range (relative-date and on-* operators).
func (op Operator) IsDateRange() bool {
	return operators[op].dateRange
}

// TakesCount reports whether the operator's single value is an integer
// count (the x in last-x-days).
func (op Operator) TakesCount() bool {
	return operators[op].countArg
}

// IsOrdered reports whether the operator needs an ordered comparison of
// the attribute's declared type.
func (op Operator) IsOrdered() bool {
	return operators[op].ordered
}

// Negated reports whether the operator is the negative member of a
// positive/negative pair. The evaluator computes the positive form and
// flips the result, so negation is always whole-match.
func (op Operator) Negated() bool {
	switch op {
	case OpNotEqual, OpNotLike, OpNotBeginWith, OpNotEndWith, OpNotIn, OpNotBetween, OpNotNull:
		return true
	default:
		return false
	}
}
