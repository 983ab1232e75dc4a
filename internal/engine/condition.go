package engine

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/mimic/internal/querytree"
	"github.com/roach88/mimic/internal/record"
)

// evalContext carries the per-evaluation environment: the instant and
// zone relative-date operators resolve against, fiscal settings, the
// metadata provider, and a cache of compiled wildcard patterns so a
// pattern compiles once per query rather than once per record.
type evalContext struct {
	now         time.Time
	loc         *time.Location
	fiscalStart time.Month
	meta        MetadataProvider
	patterns    map[string]*regexp.Regexp
}

// evalCondition evaluates one condition against one record.
//
// An absent (or present-null) attribute satisfies only the null
// operator: every other operator, including the negated forms, is false.
// Negated operators otherwise evaluate their positive form and flip the
// whole-match result.
func (ec *evalContext) evalCondition(rec *record.Record, entity string, c querytree.Condition) (bool, error) {
	meta, err := ec.meta.Attribute(entity, c.Attribute)
	if err != nil {
		return false, err
	}

	if !c.Operator.Known() {
		return false, NewUnsupportedOperatorError(string(c.Operator))
	}

	value, _ := rec.Get(c.Attribute)
	if record.IsNull(value) {
		switch c.Operator {
		case querytree.OpNull:
			return true, nil
		default:
			return false, nil
		}
	}

	switch c.Operator {
	case querytree.OpNull:
		return false, nil
	case querytree.OpNotNull:
		return true, nil
	}

	if c.Operator.IsText() {
		return ec.evalText(rec, entity, meta, c, value)
	}

	if meta.Type == record.TypeDateTime {
		return ec.evalDateTime(entity, meta, c, value)
	}

	if c.Operator.IsDateRange() {
		return false, NewTypeMismatchError(entity, c.Attribute, string(c.Operator), string(meta.Type))
	}

	switch c.Operator {
	case querytree.OpEqual, querytree.OpNotEqual:
		eq, err := ec.valueEquals(entity, meta, c, value, c.Values[0])
		if err != nil {
			return false, err
		}
		return eq != c.Operator.Negated(), nil

	case querytree.OpIn, querytree.OpNotIn:
		found := false
		for _, lit := range c.Values {
			eq, err := ec.valueEquals(entity, meta, c, value, lit)
			if err != nil {
				return false, err
			}
			if eq {
				found = true
				break
			}
		}
		return found != c.Operator.Negated(), nil

	case querytree.OpLess, querytree.OpLessEqual, querytree.OpGreater, querytree.OpGreaterEqual:
		if !meta.Type.Numeric() {
			return false, NewTypeMismatchError(entity, c.Attribute, string(c.Operator), string(meta.Type))
		}
		av, lit, err := ec.numericPair(entity, meta, c, value, c.Values[0])
		if err != nil {
			return false, err
		}
		switch c.Operator {
		case querytree.OpLess:
			return av < lit, nil
		case querytree.OpLessEqual:
			return av <= lit, nil
		case querytree.OpGreater:
			return av > lit, nil
		default:
			return av >= lit, nil
		}

	case querytree.OpBetween, querytree.OpNotBetween:
		if !meta.Type.Numeric() {
			return false, NewTypeMismatchError(entity, c.Attribute, string(c.Operator), string(meta.Type))
		}
		av, lo, err := ec.numericPair(entity, meta, c, value, c.Values[0])
		if err != nil {
			return false, err
		}
		_, hi, err := ec.numericPair(entity, meta, c, value, c.Values[1])
		if err != nil {
			return false, err
		}
		in := av >= lo && av <= hi
		return in != c.Operator.Negated(), nil
	}

	return false, NewUnsupportedOperatorError(string(c.Operator))
}

// evalText handles the pattern and substring operators. They apply to
// string attributes only; any other declared type is a mismatch.
func (ec *evalContext) evalText(rec *record.Record, entity string, meta record.AttributeMeta, c querytree.Condition, value record.Value) (bool, error) {
	if meta.Type != record.TypeString {
		return false, NewTypeMismatchError(entity, c.Attribute, string(c.Operator), string(meta.Type))
	}
	sv, ok := value.(record.String)
	if !ok {
		return false, NewTypeMismatchError(entity, c.Attribute, string(c.Operator), string(meta.Type))
	}
	lit, err := literalString(entity, meta, c)
	if err != nil {
		return false, err
	}

	subject := strings.ToLower(string(sv))
	needle := strings.ToLower(lit)

	var matched bool
	switch c.Operator {
	case querytree.OpLike, querytree.OpNotLike:
		re, err := ec.pattern(lit)
		if err != nil {
			return false, err
		}
		matched = re.MatchString(string(sv))
	case querytree.OpBeginsWith, querytree.OpNotBeginWith:
		matched = strings.HasPrefix(subject, needle)
	case querytree.OpEndsWith, querytree.OpNotEndWith:
		matched = strings.HasSuffix(subject, needle)
	default:
		return false, NewUnsupportedOperatorError(string(c.Operator))
	}

	return matched != c.Operator.Negated(), nil
}

// evalDateTime handles every operator over a date/time attribute.
// Timezone-unspecified values are read as wall time in the configured
// zone when compared against ranges computed in that zone.
func (ec *evalContext) evalDateTime(entity string, meta record.AttributeMeta, c querytree.Condition, value record.Value) (bool, error) {
	dv, ok := value.(record.DateTime)
	if !ok {
		return false, NewTypeMismatchError(entity, c.Attribute, string(c.Operator), string(meta.Type))
	}
	instant := ec.comparableInstant(dv)

	if c.Operator.IsDateRange() || c.Operator == querytree.OpBetween || c.Operator == querytree.OpNotBetween {
		r, err := ResolveDateRange(c.Operator, c.Values, ec.now, ec.loc, ec.fiscalStart)
		if err != nil {
			return false, &EvalError{
				Code: ErrCodeTypeMismatch, Entity: entity, Attribute: c.Attribute,
				Operator: string(c.Operator), Message: err.Error(),
			}
		}
		return r.Contains(instant) != c.Operator.Negated(), nil
	}

	switch c.Operator {
	case querytree.OpEqual, querytree.OpNotEqual, querytree.OpIn, querytree.OpNotIn,
		querytree.OpLess, querytree.OpLessEqual, querytree.OpGreater, querytree.OpGreaterEqual:
	default:
		return false, NewTypeMismatchError(entity, c.Attribute, string(c.Operator), string(meta.Type))
	}

	literals := make([]time.Time, 0, len(c.Values))
	for _, v := range c.Values {
		d, err := parseDateValue(v, ec.loc)
		if err != nil {
			return false, &EvalError{
				Code: ErrCodeTypeMismatch, Entity: entity, Attribute: c.Attribute,
				Operator: string(c.Operator), Message: err.Error(),
			}
		}
		literals = append(literals, d.instant(ec.loc))
	}

	switch c.Operator {
	case querytree.OpEqual, querytree.OpNotEqual:
		return instant.Equal(literals[0]) != c.Operator.Negated(), nil
	case querytree.OpIn, querytree.OpNotIn:
		found := false
		for _, l := range literals {
			if instant.Equal(l) {
				found = true
				break
			}
		}
		return found != c.Operator.Negated(), nil
	case querytree.OpLess:
		return instant.Before(literals[0]), nil
	case querytree.OpLessEqual:
		return !instant.After(literals[0]), nil
	case querytree.OpGreater:
		return instant.After(literals[0]), nil
	default: // OpGreaterEqual
		return !instant.Before(literals[0]), nil
	}
}

// comparableInstant converts an attribute value to an absolute instant
// for range checks. Absolute values compare as-is; unspecified values
// have their wall fields interpreted in the configured zone.
func (ec *evalContext) comparableInstant(dv record.DateTime) time.Time {
	if dv.Kind == record.KindAbsolute {
		return dv.Time
	}
	t := dv.Time
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), ec.loc)
}

// valueEquals compares an attribute value against one literal under the
// attribute's declared type. String comparison is case-insensitive
// ordinal; reference attributes compare the referenced identifier.
func (ec *evalContext) valueEquals(entity string, meta record.AttributeMeta, c querytree.Condition, value, lit record.Value) (bool, error) {
	switch meta.Type {
	case record.TypeString:
		sv, ok := value.(record.String)
		if !ok {
			return false, NewTypeMismatchError(entity, c.Attribute, string(c.Operator), string(meta.Type))
		}
		ls, err := literalAsString(lit)
		if err != nil {
			return false, NewTypeMismatchError(entity, c.Attribute, string(c.Operator), string(meta.Type))
		}
		return strings.EqualFold(string(sv), ls), nil

	case record.TypeInteger, record.TypeDecimal, record.TypeMoney, record.TypeOption:
		av, lv, err := ec.numericPair(entity, meta, c, value, lit)
		if err != nil {
			return false, err
		}
		return av == lv, nil

	case record.TypeBoolean:
		bv, ok := value.(record.Bool)
		if !ok {
			return false, NewTypeMismatchError(entity, c.Attribute, string(c.Operator), string(meta.Type))
		}
		lb, ok := literalAsBool(lit)
		if !ok {
			return false, NewTypeMismatchError(entity, c.Attribute, string(c.Operator), string(meta.Type))
		}
		return bool(bv) == lb, nil

	case record.TypeReference, record.TypeUniqueID:
		id, ok := valueAsID(value)
		if !ok {
			return false, NewTypeMismatchError(entity, c.Attribute, string(c.Operator), string(meta.Type))
		}
		lid, ok := literalAsID(lit)
		if !ok {
			return false, NewTypeMismatchError(entity, c.Attribute, string(c.Operator), string(meta.Type))
		}
		return id == lid, nil

	default:
		return false, NewTypeMismatchError(entity, c.Attribute, string(c.Operator), string(meta.Type))
	}
}

// numericPair converts the attribute value and one literal to a common
// numeric form.
func (ec *evalContext) numericPair(entity string, meta record.AttributeMeta, c querytree.Condition, value, lit record.Value) (float64, float64, error) {
	av, ok := valueAsNumber(value)
	if !ok {
		return 0, 0, NewTypeMismatchError(entity, c.Attribute, string(c.Operator), string(meta.Type))
	}
	lv, ok := literalAsNumber(lit)
	if !ok {
		return 0, 0, NewTypeMismatchError(entity, c.Attribute, string(c.Operator), string(meta.Type))
	}
	return av, lv, nil
}

func (ec *evalContext) pattern(p string) (*regexp.Regexp, error) {
	if re, ok := ec.patterns[p]; ok {
		return re, nil
	}
	re, err := compilePattern(p)
	if err != nil {
		return nil, err
	}
	ec.patterns[p] = re
	return re, nil
}

func literalString(entity string, meta record.AttributeMeta, c querytree.Condition) (string, error) {
	s, err := literalAsString(c.Values[0])
	if err != nil {
		return "", NewTypeMismatchError(entity, c.Attribute, string(c.Operator), string(meta.Type))
	}
	return s, nil
}

func literalAsString(v record.Value) (string, error) {
	switch val := v.(type) {
	case record.String:
		return string(val), nil
	default:
		return "", &EvalError{Code: ErrCodeTypeMismatch, Message: "literal is not a string"}
	}
}

func valueAsNumber(v record.Value) (float64, bool) {
	switch val := v.(type) {
	case record.Int:
		return float64(val), true
	case record.Decimal:
		return float64(val), true
	case record.Money:
		return float64(val), true
	case record.Option:
		return float64(val), true
	default:
		return 0, false
	}
}

func literalAsNumber(v record.Value) (float64, bool) {
	if f, ok := valueAsNumber(v); ok {
		return f, true
	}
	if s, ok := v.(record.String); ok {
		f, err := strconv.ParseFloat(string(s), 64)
		if err == nil {
			return f, true
		}
	}
	return 0, false
}

func literalAsBool(v record.Value) (bool, bool) {
	switch val := v.(type) {
	case record.Bool:
		return bool(val), true
	case record.String:
		switch strings.ToLower(string(val)) {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		}
	case record.Int:
		switch val {
		case 0:
			return false, true
		case 1:
			return true, true
		}
	}
	return false, false
}

func valueAsID(v record.Value) (uuid.UUID, bool) {
	switch val := v.(type) {
	case record.Reference:
		return val.ID, true
	case record.String:
		id, err := uuid.Parse(string(val))
		if err == nil {
			return id, true
		}
	}
	return uuid.UUID{}, false
}

func literalAsID(v record.Value) (uuid.UUID, bool) {
	return valueAsID(v)
}
