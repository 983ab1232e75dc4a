package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// Canonical produces a byte-stable JSON rendering of records and values
// for golden-file comparison and CLI output.
//
// Stability rules:
//   - Record attributes serialize in insertion order, matching the
//     deterministic projection order queries produce.
//   - Map keys serialize sorted.
//   - Strings are NFC normalized and never HTML-escaped.
//   - Floats use the shortest round-trip decimal form.
//   - DateTime values render the Kind tag explicitly, so a DateOnly or
//     TimeZoneIndependent value is visibly distinct from an absolute one.
func Canonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCanonical(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case Null:
		buf.WriteString("null")
	case String:
		return writeCanonicalString(buf, string(val))
	case Int:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
	case Decimal:
		buf.WriteString(strconv.FormatFloat(float64(val), 'g', -1, 64))
	case Money:
		buf.WriteString(`{"amount":`)
		buf.WriteString(strconv.FormatFloat(float64(val), 'g', -1, 64))
		buf.WriteByte('}')
	case Bool:
		buf.WriteString(strconv.FormatBool(bool(val)))
	case Option:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
	case DateTime:
		return writeCanonicalDateTime(buf, val)
	case Reference:
		buf.WriteString(`{"id":`)
		if err := writeCanonicalString(buf, val.ID.String()); err != nil {
			return err
		}
		buf.WriteString(`,"logical_name":`)
		if err := writeCanonicalString(buf, val.LogicalName); err != nil {
			return err
		}
		if val.Name != "" {
			buf.WriteString(`,"name":`)
			if err := writeCanonicalString(buf, val.Name); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case *Record:
		return writeCanonicalRecord(buf, val)
	case Record:
		return writeCanonicalRecord(buf, &val)
	case string:
		return writeCanonicalString(buf, val)
	case int:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
	case int64:
		buf.WriteString(strconv.FormatInt(val, 10))
	case bool:
		buf.WriteString(strconv.FormatBool(val))
	case []any:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, elem); err != nil {
				return fmt.Errorf("array[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	case []*Record:
		buf.WriteByte('[')
		for i, rec := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonicalRecord(buf, rec); err != nil {
				return fmt.Errorf("record[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonicalString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeCanonical(buf, val[k]); err != nil {
				return fmt.Errorf("object[%q]: %w", k, err)
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
	return nil
}

func writeCanonicalRecord(buf *bytes.Buffer, r *Record) error {
	buf.WriteString(`{"logical_name":`)
	if err := writeCanonicalString(buf, r.LogicalName); err != nil {
		return err
	}
	buf.WriteString(`,"id":`)
	if err := writeCanonicalString(buf, r.ID.String()); err != nil {
		return err
	}
	buf.WriteString(`,"attributes":{`)
	for i, name := range r.Attributes() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeCanonicalString(buf, name); err != nil {
			return err
		}
		buf.WriteByte(':')
		v, _ := r.Get(name)
		if err := writeCanonical(buf, v); err != nil {
			return fmt.Errorf("attribute %q: %w", name, err)
		}
	}
	buf.WriteString("}}")
	return nil
}

// writeCanonicalDateTime renders the instant and kind tag. Absolute
// values render in UTC with a Z suffix; unspecified values render their
// wall fields with no offset at all.
func writeCanonicalDateTime(buf *bytes.Buffer, dt DateTime) error {
	var stamp string
	if dt.Kind == KindAbsolute {
		stamp = dt.Time.UTC().Format("2006-01-02T15:04:05.000Z")
	} else {
		stamp = dt.Time.Format("2006-01-02T15:04:05.000")
	}
	buf.WriteString(`{"value":`)
	if err := writeCanonicalString(buf, stamp); err != nil {
		return err
	}
	buf.WriteString(`,"kind":`)
	if err := writeCanonicalString(buf, dt.Kind.String()); err != nil {
		return err
	}
	buf.WriteByte('}')
	return nil
}

// writeCanonicalString writes an NFC-normalized JSON string without HTML
// escaping. Normalizing at the serialization boundary keeps snapshots
// stable when fixtures mix composed and decomposed Unicode forms.
func writeCanonicalString(buf *bytes.Buffer, s string) error {
	normalized := norm.NFC.String(s)

	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return err
	}
	out := tmp.Bytes()
	// json.Encoder appends a trailing newline.
	if n := len(out); n > 0 && out[n-1] == '\n' {
		out = out[:n-1]
	}
	buf.Write(out)
	return nil
}
