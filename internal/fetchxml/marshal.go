package fetchxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/mimic/internal/querytree"
	"github.com/roach88/mimic/internal/record"
)

// Marshal serializes a structured query back to FetchXML markup.
//
// Translate is a left-inverse of Marshal for the supported grammar:
// translating the output yields an equivalent tree. Single-value
// conditions use the value attribute form; multi-value conditions use
// value child elements, matching what the platform's own serializer
// emits.
func Marshal(q *querytree.Query) ([]byte, error) {
	if err := querytree.Validate(q); err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	w := &markupWriter{}
	w.open("fetch", attrsIf("top", topValue(q.Top))...)
	w.open("entity", "name", q.Entity)
	w.columns(q.Columns)
	for _, o := range q.Orders {
		attrs := []string{"attribute", o.Attribute}
		if o.Descending {
			attrs = append(attrs, "descending", "true")
		}
		w.selfClose("order", attrs...)
	}
	if err := w.filter(q.Filter); err != nil {
		return nil, err
	}
	for _, l := range q.Links {
		if err := w.link(l); err != nil {
			return nil, err
		}
	}
	w.close("entity")
	w.close("fetch")
	return w.bytes(), nil
}

func topValue(top int) string {
	if top == 0 {
		return ""
	}
	return strconv.Itoa(top)
}

func attrsIf(name, value string) []string {
	if value == "" {
		return nil
	}
	return []string{name, value}
}

// markupWriter builds indented markup. Attribute pairs arrive as
// alternating name/value strings so element emission stays one-liners.
type markupWriter struct {
	buf   bytes.Buffer
	depth int
}

func (w *markupWriter) indent() {
	for i := 0; i < w.depth; i++ {
		w.buf.WriteString("  ")
	}
}

func (w *markupWriter) writeAttrs(attrs []string) {
	for i := 0; i+1 < len(attrs); i += 2 {
		w.buf.WriteByte(' ')
		w.buf.WriteString(attrs[i])
		w.buf.WriteString(`="`)
		w.buf.WriteString(escapeAttr(attrs[i+1]))
		w.buf.WriteByte('"')
	}
}

func (w *markupWriter) open(name string, attrs ...string) {
	w.indent()
	w.buf.WriteByte('<')
	w.buf.WriteString(name)
	w.writeAttrs(attrs)
	w.buf.WriteString(">\n")
	w.depth++
}

func (w *markupWriter) close(name string) {
	w.depth--
	w.indent()
	w.buf.WriteString("</")
	w.buf.WriteString(name)
	w.buf.WriteString(">\n")
}

func (w *markupWriter) selfClose(name string, attrs ...string) {
	w.indent()
	w.buf.WriteByte('<')
	w.buf.WriteString(name)
	w.writeAttrs(attrs)
	w.buf.WriteString(" />\n")
}

func (w *markupWriter) bytes() []byte {
	return w.buf.Bytes()
}

func (w *markupWriter) columns(cols querytree.ColumnSet) {
	if cols.All {
		w.selfClose("all-attributes")
		return
	}
	for _, name := range cols.Columns {
		w.selfClose("attribute", "name", name)
	}
}

func (w *markupWriter) filter(f *querytree.Filter) error {
	if f == nil {
		return nil
	}
	logical := string(f.Logical)
	if logical == "" {
		logical = string(querytree.And)
	}
	w.open("filter", "type", logical)
	for _, c := range f.Conditions {
		if err := w.condition(c); err != nil {
			return err
		}
	}
	for _, child := range f.Filters {
		if err := w.filter(child); err != nil {
			return err
		}
	}
	w.close("filter")
	return nil
}

func (w *markupWriter) condition(c querytree.Condition) error {
	attrs := []string{"attribute", c.Attribute, "operator", string(c.Operator)}

	switch len(c.Values) {
	case 0:
		w.selfClose("condition", attrs...)
	case 1:
		lit, err := formatLiteral(c.Values[0])
		if err != nil {
			return err
		}
		w.selfClose("condition", append(attrs, "value", lit)...)
	default:
		w.open("condition", attrs...)
		for _, v := range c.Values {
			lit, err := formatLiteral(v)
			if err != nil {
				return err
			}
			w.indent()
			w.buf.WriteString("<value>")
			w.buf.WriteString(escapeText(lit))
			w.buf.WriteString("</value>\n")
		}
		w.close("condition")
	}
	return nil
}

func (w *markupWriter) link(l querytree.LinkEntity) error {
	attrs := []string{"name", l.Name, "from", l.From, "to", l.To}
	if l.Alias != "" {
		attrs = append(attrs, "alias", l.Alias)
	}
	join := l.Join
	if join == "" {
		join = querytree.JoinInner
	}
	attrs = append(attrs, "link-type", string(join))

	w.open("link-entity", attrs...)
	w.columns(l.Columns)
	if err := w.filter(l.Filter); err != nil {
		return err
	}
	for _, nested := range l.Links {
		if err := w.link(nested); err != nil {
			return err
		}
	}
	w.close("link-entity")
	return nil
}

// formatLiteral renders a condition value the way markup carries it.
func formatLiteral(v record.Value) (string, error) {
	switch val := v.(type) {
	case record.String:
		return string(val), nil
	case record.Int:
		return strconv.FormatInt(int64(val), 10), nil
	case record.Decimal:
		return strconv.FormatFloat(float64(val), 'g', -1, 64), nil
	case record.Money:
		return strconv.FormatFloat(float64(val), 'g', -1, 64), nil
	case record.Bool:
		return strconv.FormatBool(bool(val)), nil
	case record.Option:
		return strconv.FormatInt(int64(val), 10), nil
	case record.DateTime:
		if val.Kind == record.KindAbsolute {
			return val.Time.UTC().Format("2006-01-02T15:04:05Z"), nil
		}
		return val.Time.Format("2006-01-02T15:04:05"), nil
	case record.Reference:
		return val.ID.String(), nil
	default:
		return "", fmt.Errorf("marshal: unsupported literal type %T", v)
	}
}

func escapeAttr(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	// EscapeText also escapes newlines and tabs, which is fine inside an
	// attribute value.
	return buf.String()
}

func escapeText(s string) string {
	var buf strings.Builder
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
