package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mimic/internal/record"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadScenario(t *testing.T) {
	path := writeScenario(t, `
name: sample
description: loads
metadata_source: |
  entity: account: {
    primary_id: "accountid"
    attributes: {
      accountid: {type: "uniqueid"}
      name:      {type: "string"}
    }
  }
now: "2024-03-15T10:30:00Z"
timezone: UTC
fixtures:
  - entity: account
    attributes:
      name: Acme
queries:
  - name: all
    fetch: |
      <fetch><entity name="account"><all-attributes /></entity></fetch>
    expect:
      count: 1
`)
	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "sample", s.Name)
	require.Len(t, s.Fixtures, 1)
	require.Len(t, s.Queries, 1)
	require.NotNil(t, s.Queries[0].Expect)
	require.NotNil(t, s.Queries[0].Expect.Count)
	assert.Equal(t, 1, *s.Queries[0].Expect.Count)
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing name", "now: \"2024-01-01T00:00:00Z\"\nmetadata_source: \"entity: {}\""},
		{"missing now", "name: x\nmetadata_source: \"entity: {}\""},
		{"no metadata", "name: x\nnow: \"2024-01-01T00:00:00Z\""},
		{"both metadata forms", "name: x\nnow: \"2024-01-01T00:00:00Z\"\nmetadata: a.cue\nmetadata_source: \"entity: {}\""},
		{"bad fixture id", `
name: x
now: "2024-01-01T00:00:00Z"
metadata_source: "entity: {}"
fixtures:
  - entity: account
    id: not-a-uuid
`},
		{"query without fetch", `
name: x
now: "2024-01-01T00:00:00Z"
metadata_source: "entity: {}"
queries:
  - name: q
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestFixtureValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want record.Value
	}{
		{"plain string", "Acme", record.String("Acme")},
		{"plain int", 42, record.Int(42)},
		{"plain float", 1.5, record.Decimal(1.5)},
		{"plain bool", true, record.Bool(true)},
		{"nil", nil, record.Null{}},
		{"typed null", map[string]any{"null": true}, record.Null{}},
		{"typed money", map[string]any{"money": 100.5}, record.Money(100.5)},
		{"typed option", map[string]any{"option": 2}, record.Option(2)},
		{"typed int", map[string]any{"int": 7}, record.Int(7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fixtureValue(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFixtureValue_Dates(t *testing.T) {
	v, err := fixtureValue(map[string]any{"date": "2024-03-01T09:00:00Z"})
	require.NoError(t, err)
	dt := v.(record.DateTime)
	assert.Equal(t, record.KindAbsolute, dt.Kind)
	assert.Equal(t, 9, dt.Time.Hour())

	v, err = fixtureValue(map[string]any{"walldate": "2024-03-01"})
	require.NoError(t, err)
	dt = v.(record.DateTime)
	assert.Equal(t, record.KindUnspecified, dt.Kind)
	assert.Equal(t, 0, dt.Time.Hour())
}

func TestFixtureValue_Reference(t *testing.T) {
	v, err := fixtureValue(map[string]any{"ref": map[string]any{
		"entity": "account",
		"id":     "aaaaaaaa-0000-0000-0000-000000000001",
	}})
	require.NoError(t, err)
	ref := v.(record.Reference)
	assert.Equal(t, "account", ref.LogicalName)
	assert.Equal(t, "aaaaaaaa-0000-0000-0000-000000000001", ref.ID.String())
}

func TestFixtureValue_Errors(t *testing.T) {
	for _, in := range []any{
		map[string]any{"guid": "x"},
		map[string]any{"int": "seven"},
		map[string]any{"date": "sometime"},
		map[string]any{"ref": map[string]any{"entity": "account"}},
		map[string]any{"string": "a", "int": 1},
	} {
		_, err := fixtureValue(in)
		assert.Error(t, err, "input %v", in)
	}
}
