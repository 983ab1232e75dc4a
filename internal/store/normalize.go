package store

import (
	"time"

	"github.com/roach88/mimic/internal/record"
)

// normalizeRecord applies each date/time attribute's declared behavior
// in place. Attributes without metadata, and metadata without a
// date/time type, pass through untouched; structural payload attributes
// ride along unchanged.
func normalizeRecord(meta *record.EntityMeta, rec *record.Record) {
	for _, name := range rec.Attributes() {
		am, ok := meta.Attribute(name)
		if !ok || am.Type != record.TypeDateTime {
			continue
		}
		v, _ := rec.Get(name)
		dv, ok := v.(record.DateTime)
		if !ok {
			continue
		}
		rec.Set(name, normalizeDateTime(am.DateBehaviorOrDefault(), dv))
	}
}

// normalizeDateTime maps a written date/time value to its stored form.
//
// Absolute keeps the instant as written. DateOnly zeroes time-of-day
// and drops the zone: the stored value is the written wall date, tagged
// timezone-unspecified. TimeZoneIndependent keeps the written wall
// reading verbatim under the same tag, so 14:30 stays 14:30 no matter
// which zone the store is configured for.
func normalizeDateTime(behavior record.DateBehavior, v record.DateTime) record.DateTime {
	switch behavior {
	case record.BehaviorDateOnly:
		t := v.Time
		return record.DateTime{
			Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
			Kind: record.KindUnspecified,
		}
	case record.BehaviorTimeZoneIndependent:
		t := v.Time
		return record.DateTime{
			Time: time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC),
			Kind: record.KindUnspecified,
		}
	default:
		return record.DateTime{Time: v.Time, Kind: record.KindAbsolute}
	}
}
