package engine

import (
	"fmt"
	"strconv"
	"time"

	"github.com/roach88/mimic/internal/querytree"
	"github.com/roach88/mimic/internal/record"
)

// DateRange is an inclusive instant range. Either bound may be open.
type DateRange struct {
	Start    time.Time
	End      time.Time
	HasStart bool
	HasEnd   bool
}

// Contains reports whether t lies within the range, inclusive of both
// present bounds.
func (r DateRange) Contains(t time.Time) bool {
	if r.HasStart && t.Before(r.Start) {
		return false
	}
	if r.HasEnd && t.After(r.End) {
		return false
	}
	return true
}

// dayPrecision is the sub-second granularity the simulated platform
// stores. Period end boundaries land on the last representable instant
// of the final day (23:59:59.999) rather than the next midnight.
const dayPrecision = time.Millisecond

// ResolveDateRange maps a date-range operator plus the environment
// (current instant, configured zone, fiscal-year start month) to an
// inclusive instant range.
//
// Boundaries are computed in loc and carried back as instants. Relative
// periods are day-granular: "this month" ends at the last instant of the
// month's final day, so a record timestamped 23:59 on that day is
// included. ResolveDateRange is a pure function of its arguments.
func ResolveDateRange(
	op querytree.Operator,
	values []record.Value,
	now time.Time,
	loc *time.Location,
	fiscalStart time.Month,
) (DateRange, error) {
	local := now.In(loc)
	today := startOfDay(local)

	switch op {
	case querytree.OpToday:
		return daySpan(today, today), nil
	case querytree.OpYesterday:
		d := today.AddDate(0, 0, -1)
		return daySpan(d, d), nil
	case querytree.OpTomorrow:
		d := today.AddDate(0, 0, 1)
		return daySpan(d, d), nil

	case querytree.OpThisWeek:
		start := startOfWeek(today)
		return daySpan(start, start.AddDate(0, 0, 6)), nil
	case querytree.OpLastWeek:
		start := startOfWeek(today).AddDate(0, 0, -7)
		return daySpan(start, start.AddDate(0, 0, 6)), nil
	case querytree.OpNextWeek:
		start := startOfWeek(today).AddDate(0, 0, 7)
		return daySpan(start, start.AddDate(0, 0, 6)), nil

	case querytree.OpThisMonth:
		return monthSpan(local, 0), nil
	case querytree.OpLastMonth:
		return monthSpan(local, -1), nil
	case querytree.OpNextMonth:
		return monthSpan(local, 1), nil

	case querytree.OpThisYear:
		return yearSpan(local, 0), nil
	case querytree.OpLastYear:
		return yearSpan(local, -1), nil
	case querytree.OpNextYear:
		return yearSpan(local, 1), nil

	case querytree.OpThisFiscalYear:
		return fiscalSpan(local, fiscalStart, 0), nil
	case querytree.OpLastFiscalYear:
		return fiscalSpan(local, fiscalStart, -1), nil
	case querytree.OpNextFiscalYear:
		return fiscalSpan(local, fiscalStart, 1), nil

	case querytree.OpLastXDays:
		x, err := countValue(op, values)
		if err != nil {
			return DateRange{}, err
		}
		return daySpan(today.AddDate(0, 0, -x), today), nil
	case querytree.OpNextXDays:
		x, err := countValue(op, values)
		if err != nil {
			return DateRange{}, err
		}
		return daySpan(today, today.AddDate(0, 0, x)), nil

	case querytree.OpLastXHours:
		x, err := countValue(op, values)
		if err != nil {
			return DateRange{}, err
		}
		return DateRange{Start: local.Add(-time.Duration(x) * time.Hour), End: local, HasStart: true, HasEnd: true}, nil
	case querytree.OpNextXHours:
		x, err := countValue(op, values)
		if err != nil {
			return DateRange{}, err
		}
		return DateRange{Start: local, End: local.Add(time.Duration(x) * time.Hour), HasStart: true, HasEnd: true}, nil

	case querytree.OpLastXMonths:
		x, err := countValue(op, values)
		if err != nil {
			return DateRange{}, err
		}
		return daySpan(today.AddDate(0, -x, 0), today), nil
	case querytree.OpNextXMonths:
		x, err := countValue(op, values)
		if err != nil {
			return DateRange{}, err
		}
		return daySpan(today, today.AddDate(0, x, 0)), nil

	case querytree.OpLastXYears:
		x, err := countValue(op, values)
		if err != nil {
			return DateRange{}, err
		}
		return daySpan(today.AddDate(-x, 0, 0), today), nil
	case querytree.OpNextXYears:
		x, err := countValue(op, values)
		if err != nil {
			return DateRange{}, err
		}
		return daySpan(today, today.AddDate(x, 0, 0)), nil

	case querytree.OpOlderThanXMonths:
		x, err := countValue(op, values)
		if err != nil {
			return DateRange{}, err
		}
		return DateRange{End: local.AddDate(0, -x, 0), HasEnd: true}, nil

	case querytree.OpOn:
		d, err := dateLiteral(op, values, loc)
		if err != nil {
			return DateRange{}, err
		}
		day := startOfDay(d.wall)
		return daySpan(day, day), nil
	case querytree.OpOnOrBefore:
		d, err := dateLiteral(op, values, loc)
		if err != nil {
			return DateRange{}, err
		}
		return DateRange{End: endOfDay(startOfDay(d.wall)), HasEnd: true}, nil
	case querytree.OpOnOrAfter:
		d, err := dateLiteral(op, values, loc)
		if err != nil {
			return DateRange{}, err
		}
		return DateRange{Start: startOfDay(d.wall), HasStart: true}, nil

	case querytree.OpBetween, querytree.OpNotBetween:
		if len(values) != 2 {
			return DateRange{}, fmt.Errorf("%s requires two values", op)
		}
		lo, err := parseDateValue(values[0], loc)
		if err != nil {
			return DateRange{}, err
		}
		hi, err := parseDateValue(values[1], loc)
		if err != nil {
			return DateRange{}, err
		}
		r := DateRange{Start: lo.instant(loc), HasStart: true, HasEnd: true}
		if hi.dateOnly {
			// A date-only upper literal spans its whole day.
			r.End = endOfDay(startOfDay(hi.wall))
		} else {
			r.End = hi.instant(loc)
		}
		return r, nil
	}

	return DateRange{}, fmt.Errorf("operator %s does not resolve to a date range", op)
}

func daySpan(first, last time.Time) DateRange {
	return DateRange{Start: first, End: endOfDay(last), HasStart: true, HasEnd: true}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay returns the last stored instant of the given day.
func endOfDay(day time.Time) time.Time {
	return startOfDay(day).AddDate(0, 0, 1).Add(-dayPrecision)
}

// startOfWeek returns the Sunday beginning the week containing day,
// matching the platform's week boundaries.
func startOfWeek(day time.Time) time.Time {
	return day.AddDate(0, 0, -int(day.Weekday()))
}

func monthSpan(local time.Time, offset int) DateRange {
	first := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, local.Location()).AddDate(0, offset, 0)
	return daySpan(first, first.AddDate(0, 1, -1))
}

func yearSpan(local time.Time, offset int) DateRange {
	first := time.Date(local.Year()+offset, time.January, 1, 0, 0, 0, 0, local.Location())
	return daySpan(first, first.AddDate(1, 0, -1))
}

// fiscalSpan resolves the fiscal year containing local, shifted by
// offset years. Fiscal year Y with start month M spans [Y-M-01,
// (Y+1)-M-01), expressed here as an inclusive day span.
func fiscalSpan(local time.Time, fiscalStart time.Month, offset int) DateRange {
	year := local.Year()
	if local.Month() < fiscalStart {
		year--
	}
	first := time.Date(year+offset, fiscalStart, 1, 0, 0, 0, 0, local.Location())
	return daySpan(first, first.AddDate(1, 0, -1))
}

func countValue(op querytree.Operator, values []record.Value) (int, error) {
	if len(values) != 1 {
		return 0, fmt.Errorf("%s requires one count value", op)
	}
	switch v := values[0].(type) {
	case record.Int:
		return int(v), nil
	case record.String:
		n, err := strconv.Atoi(string(v))
		if err != nil {
			return 0, fmt.Errorf("%s: count %q is not an integer", op, string(v))
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%s: count must be an integer, got %T", op, values[0])
	}
}

// dateValue is a parsed date literal: the wall-clock reading plus
// whether the literal carried a time-of-day and a zone offset.
type dateValue struct {
	wall     time.Time
	dateOnly bool
	hasZone  bool
}

// instant converts the literal to an absolute instant, interpreting
// zone-less literals in loc.
func (d dateValue) instant(loc *time.Location) time.Time {
	if d.hasZone {
		return d.wall
	}
	return time.Date(d.wall.Year(), d.wall.Month(), d.wall.Day(),
		d.wall.Hour(), d.wall.Minute(), d.wall.Second(), d.wall.Nanosecond(), loc)
}

func dateLiteral(op querytree.Operator, values []record.Value, loc *time.Location) (dateValue, error) {
	if len(values) != 1 {
		return dateValue{}, fmt.Errorf("%s requires one date value", op)
	}
	d, err := parseDateValue(values[0], loc)
	if err != nil {
		return dateValue{}, fmt.Errorf("%s: %w", op, err)
	}
	// Day-granular operators work on the literal's local day.
	d.wall = d.instant(loc).In(loc)
	return d, nil
}

// dateLayouts are the accepted literal forms, most specific first. The
// first entry is the date-only form.
var dateLayouts = []struct {
	layout   string
	dateOnly bool
	hasZone  bool
}{
	{time.RFC3339Nano, false, true},
	{time.RFC3339, false, true},
	{"2006-01-02T15:04:05", false, false},
	{"2006-01-02T15:04", false, false},
	{"2006-01-02 15:04:05", false, false},
	{"2006-01-02", true, false},
}

// parseDateValue interprets a condition literal as a date. String
// literals accept the markup forms; DateTime literals pass through, with
// timezone-unspecified values read as loc wall time.
func parseDateValue(v record.Value, loc *time.Location) (dateValue, error) {
	switch val := v.(type) {
	case record.DateTime:
		if val.Kind == record.KindAbsolute {
			return dateValue{wall: val.Time, hasZone: true}, nil
		}
		wall := val.Time
		dateOnly := wall.Hour() == 0 && wall.Minute() == 0 && wall.Second() == 0 && wall.Nanosecond() == 0
		return dateValue{wall: wall, dateOnly: dateOnly}, nil
	case record.String:
		for _, l := range dateLayouts {
			var t time.Time
			var err error
			if l.hasZone {
				t, err = time.Parse(l.layout, string(val))
			} else {
				t, err = time.ParseInLocation(l.layout, string(val), loc)
			}
			if err == nil {
				return dateValue{wall: t, dateOnly: l.dateOnly, hasZone: l.hasZone}, nil
			}
		}
		return dateValue{}, fmt.Errorf("cannot parse %q as a date", string(val))
	default:
		return dateValue{}, fmt.Errorf("cannot use %T as a date", v)
	}
}
