package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mimic/internal/record"
)

const accountCUE = `
entity: account: {
	primary_id: "accountid"
	attributes: {
		accountid: {type: "uniqueid"}
		name:      {type: "string"}
		revenue:   {type: "money"}
	}
}
`

func intp(n int) *int { return &n }

func baseScenario() *Scenario {
	return &Scenario{
		Name:           "base",
		MetadataSource: accountCUE,
		Now:            "2024-03-15T10:30:00Z",
		Fixtures: []Fixture{
			{Entity: "account", Attributes: map[string]any{"name": "Acme", "revenue": map[string]any{"money": 1000.0}}},
			{Entity: "account", Attributes: map[string]any{"name": "Globex", "revenue": map[string]any{"money": 250.0}}},
		},
	}
}

func TestRun_Expectations(t *testing.T) {
	s := baseScenario()
	s.Queries = []QueryStep{
		{
			Name: "all accounts",
			Fetch: `<fetch><entity name="account"><all-attributes /></entity></fetch>`,
			Expect: &Expectation{Count: intp(2)},
		},
		{
			Name: "rich accounts",
			Fetch: `<fetch><entity name="account"><attribute name="name" />
				<filter><condition attribute="revenue" operator="gt" value="500" /></filter>
				</entity></fetch>`,
			Expect: &Expectation{Count: intp(1), IDs: []string{"00000000-0000-4000-8000-000000000001"}},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.Queries, 2)
	assert.Empty(t, result.Queries[0].Error)
	require.Len(t, result.Queries[1].Records, 1)
	got, ok := result.Queries[1].Records[0].Get("name")
	require.True(t, ok)
	assert.Equal(t, record.String("Acme"), got)
}

func TestRun_SequenceIDs(t *testing.T) {
	s := baseScenario()
	s.Queries = []QueryStep{{
		Name:  "ordered",
		Fetch: `<fetch><entity name="account"><attribute name="name" /></entity></fetch>`,
		Expect: &Expectation{IDs: []string{
			"00000000-0000-4000-8000-000000000001",
			"00000000-0000-4000-8000-000000000002",
		}},
	}}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_ExplicitFixtureID(t *testing.T) {
	s := baseScenario()
	s.Fixtures[0].ID = "aaaaaaaa-0000-0000-0000-000000000099"
	s.Queries = []QueryStep{{
		Name: "by name",
		Fetch: `<fetch><entity name="account"><attribute name="name" />
			<filter><condition attribute="name" operator="eq" value="Acme" /></filter>
			</entity></fetch>`,
		Expect: &Expectation{IDs: []string{"aaaaaaaa-0000-0000-0000-000000000099"}},
	}}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_ExpectationFailures(t *testing.T) {
	s := baseScenario()
	s.Queries = []QueryStep{
		{
			Name:   "wrong count",
			Fetch:  `<fetch><entity name="account"><all-attributes /></entity></fetch>`,
			Expect: &Expectation{Count: intp(5)},
		},
		{
			Name:   "wanted error",
			Fetch:  `<fetch><entity name="account"><all-attributes /></entity></fetch>`,
			Expect: &Expectation{Error: "PARSE_ERROR"},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Len(t, result.Errors, 2)
}

func TestRun_ErrorCodes(t *testing.T) {
	s := baseScenario()
	s.Queries = []QueryStep{
		{
			Name:   "malformed",
			Fetch:  `<fetch><entity name="account">`,
			Expect: &Expectation{Error: "PARSE_ERROR"},
		},
		{
			Name: "unsupported",
			Fetch: `<fetch><entity name="account">
				<filter><condition attribute="accountid" operator="under" value="x" /></filter>
				</entity></fetch>`,
			Expect: &Expectation{Error: "UNSUPPORTED_OPERATOR"},
		},
		{
			Name:   "unknown entity",
			Fetch:  `<fetch><entity name="nonesuch"><all-attributes /></entity></fetch>`,
			Expect: &Expectation{Error: "UNKNOWN_ENTITY"},
		},
		{
			Name: "unknown attribute",
			Fetch: `<fetch><entity name="account">
				<filter><condition attribute="mystery" operator="eq" value="1" /></filter>
				</entity></fetch>`,
			Expect: &Expectation{Error: "UNKNOWN_ATTRIBUTE"},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	for i, q := range result.Queries {
		assert.NotEmpty(t, q.Error, "query %d", i)
		assert.Nil(t, q.Records, "query %d", i)
	}
}

func TestRun_UnexpectedError(t *testing.T) {
	s := baseScenario()
	s.Queries = []QueryStep{{
		Name:   "broken",
		Fetch:  `<fetch>`,
		Expect: &Expectation{Count: intp(0)},
	}}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "unexpected error")
}

func TestRun_BadScenario(t *testing.T) {
	t.Run("bad metadata", func(t *testing.T) {
		s := baseScenario()
		s.MetadataSource = `entity: account: {attributes: {}}`
		_, err := Run(s)
		assert.Error(t, err)
	})
	t.Run("bad now", func(t *testing.T) {
		s := baseScenario()
		s.Now = "yesterday"
		_, err := Run(s)
		assert.Error(t, err)
	})
	t.Run("bad timezone", func(t *testing.T) {
		s := baseScenario()
		s.Timezone = "Mars/Olympus"
		_, err := Run(s)
		assert.Error(t, err)
	})
	t.Run("bad fixture value", func(t *testing.T) {
		s := baseScenario()
		s.Fixtures[0].Attributes["name"] = map[string]any{"guid": "x"}
		_, err := Run(s)
		assert.Error(t, err)
	})
}

func TestFixtureIDs(t *testing.T) {
	g := &fixtureIDs{}
	assert.Equal(t, "00000000-0000-4000-8000-000000000001", g.NewID().String())
	assert.Equal(t, "00000000-0000-4000-8000-000000000002", g.NewID().String())
}
