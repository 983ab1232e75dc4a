package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/roach88/mimic/internal/record"
)

// LoadScenario reads and validates one scenario file. Relative metadata
// paths resolve against the scenario file's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if s.Metadata != "" {
		s.Metadata = filepath.Join(filepath.Dir(path), s.Metadata)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

// LoadScenarios reads every *.yaml scenario under dir, sorted by file
// name for deterministic test ordering.
func LoadScenarios(dir string) ([]*Scenario, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	scenarios := make([]*Scenario, 0, len(matches))
	for _, path := range matches {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// Validate checks the scenario's structural requirements.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Now == "" {
		return fmt.Errorf("now is required; scenarios must pin the clock")
	}
	if (s.Metadata == "") == (s.MetadataSource == "") {
		return fmt.Errorf("exactly one of metadata or metadata_source is required")
	}
	if s.FiscalStartMonth < 0 || s.FiscalStartMonth > 12 {
		return fmt.Errorf("fiscal_start_month %d out of range 1-12", s.FiscalStartMonth)
	}
	for i, f := range s.Fixtures {
		if f.Entity == "" {
			return fmt.Errorf("fixtures[%d]: entity is required", i)
		}
		if f.ID != "" {
			if _, err := uuid.Parse(f.ID); err != nil {
				return fmt.Errorf("fixtures[%d]: bad id %q: %w", i, f.ID, err)
			}
		}
	}
	for i, q := range s.Queries {
		if q.Name == "" {
			return fmt.Errorf("queries[%d]: name is required", i)
		}
		if q.Fetch == "" {
			return fmt.Errorf("queries[%d]: fetch is required", i)
		}
	}
	return nil
}

// fixtureValue converts one YAML attribute value to a record value.
// Plain scalars map by YAML type; single-key maps select an explicit
// value type.
func fixtureValue(v any) (record.Value, error) {
	switch val := v.(type) {
	case nil:
		return record.Null{}, nil
	case string:
		return record.String(val), nil
	case int:
		return record.Int(val), nil
	case int64:
		return record.Int(val), nil
	case float64:
		return record.Decimal(val), nil
	case bool:
		return record.Bool(val), nil
	case map[string]any:
		return typedFixtureValue(val)
	default:
		return nil, fmt.Errorf("unsupported fixture value %T", v)
	}
}

func typedFixtureValue(m map[string]any) (record.Value, error) {
	if len(m) != 1 {
		return nil, fmt.Errorf("typed fixture value must have exactly one type key, got %v", m)
	}

	if _, ok := m["null"]; ok {
		return record.Null{}, nil
	}
	if raw, ok := m["string"]; ok {
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("string value is %T", raw)
		}
		return record.String(s), nil
	}
	if raw, ok := m["int"]; ok {
		n, err := asInt64(raw)
		if err != nil {
			return nil, err
		}
		return record.Int(n), nil
	}
	if raw, ok := m["decimal"]; ok {
		f, err := asFloat64(raw)
		if err != nil {
			return nil, err
		}
		return record.Decimal(f), nil
	}
	if raw, ok := m["money"]; ok {
		f, err := asFloat64(raw)
		if err != nil {
			return nil, err
		}
		return record.Money(f), nil
	}
	if raw, ok := m["option"]; ok {
		n, err := asInt64(raw)
		if err != nil {
			return nil, err
		}
		return record.Option(int32(n)), nil
	}
	if raw, ok := m["bool"]; ok {
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("bool value is %T", raw)
		}
		return record.Bool(b), nil
	}
	if raw, ok := m["date"]; ok {
		dt, err := fixtureDate(raw, record.KindAbsolute)
		if err != nil {
			return nil, err
		}
		return dt, nil
	}
	if raw, ok := m["walldate"]; ok {
		dt, err := fixtureDate(raw, record.KindUnspecified)
		if err != nil {
			return nil, err
		}
		return dt, nil
	}
	if raw, ok := m["ref"]; ok {
		return fixtureReference(raw)
	}
	return nil, fmt.Errorf("unknown fixture value type in %v", m)
}

func fixtureReference(raw any) (record.Value, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("ref value is %T, want a map", raw)
	}
	entity, _ := m["entity"].(string)
	idStr, _ := m["id"].(string)
	if entity == "" || idStr == "" {
		return nil, fmt.Errorf("ref requires entity and id, got %v", m)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("ref id %q: %w", idStr, err)
	}
	ref := record.Reference{LogicalName: entity, ID: id}
	if name, ok := m["name"].(string); ok {
		ref.Name = name
	}
	return ref, nil
}

var fixtureDateLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func fixtureDate(raw any, kind record.DateTimeKind) (record.Value, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("date value is %T, want a string", raw)
	}
	for _, layout := range fixtureDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return record.DateTime{Time: t, Kind: kind}, nil
		}
	}
	return nil, fmt.Errorf("cannot parse date %q", s)
}

func asInt64(raw any) (int64, error) {
	switch n := raw.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	default:
		return 0, fmt.Errorf("integer value is %T", raw)
	}
}

func asFloat64(raw any) (float64, error) {
	switch n := raw.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("numeric value is %T", raw)
	}
}
