package fetchxml

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mimic/internal/querytree"
	"github.com/roach88/mimic/internal/record"
)

// markupQuery builds the query used by the marshal tests. Literal values
// use string form, matching what Translate itself produces, so the
// round-trip comparison is exact.
func markupQuery() *querytree.Query {
	return &querytree.Query{
		Entity:  "account",
		Top:     50,
		Columns: querytree.Columns("name", "revenue"),
		Orders:  []querytree.Order{{Attribute: "name"}},
		Filter: &querytree.Filter{
			Logical: querytree.And,
			Conditions: []querytree.Condition{
				{Attribute: "statuscode", Operator: querytree.OpIn,
					Values: []record.Value{record.String("1"), record.String("2")}},
			},
			Filters: []*querytree.Filter{
				{Logical: querytree.Or, Conditions: []querytree.Condition{
					{Attribute: "name", Operator: querytree.OpLike,
						Values: []record.Value{record.String("A%")}},
					{Attribute: "city", Operator: querytree.OpEqual,
						Values: []record.Value{record.String("Oslo")}},
				}},
			},
		},
		Links: []querytree.LinkEntity{
			{
				Name: "contact", From: "parentcustomerid", To: "accountid",
				Alias: "c", Join: querytree.JoinOuter,
				Columns: querytree.Columns("fullname"),
			},
		},
	}
}

func TestMarshal_Golden(t *testing.T) {
	data, err := Marshal(markupQuery())
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "marshal_query", data)
}

func TestMarshal_TranslateIsLeftInverse(t *testing.T) {
	q := markupQuery()

	data, err := Marshal(q)
	require.NoError(t, err)

	back, err := Translate(string(data))
	require.NoError(t, err)
	assert.Equal(t, q, back)
}

func TestMarshal_TypedLiteralsNormalizeToStrings(t *testing.T) {
	q := &querytree.Query{
		Entity:  "account",
		Columns: querytree.AllColumns(),
		Filter: &querytree.Filter{Logical: querytree.And, Conditions: []querytree.Condition{
			{Attribute: "employees", Operator: querytree.OpEqual,
				Values: []record.Value{record.Int(42)}},
		}},
	}

	data, err := Marshal(q)
	require.NoError(t, err)

	back, err := Translate(string(data))
	require.NoError(t, err)

	// Markup carries literals as text; the typed Int comes back as a
	// string literal with identical meaning under metadata coercion.
	assert.Equal(t, []record.Value{record.String("42")}, back.Filter.Conditions[0].Values)
}

func TestMarshal_EscapesMarkupCharacters(t *testing.T) {
	q := &querytree.Query{
		Entity:  "account",
		Columns: querytree.AllColumns(),
		Filter: &querytree.Filter{Logical: querytree.And, Conditions: []querytree.Condition{
			{Attribute: "name", Operator: querytree.OpEqual,
				Values: []record.Value{record.String(`Smith & Jones <Ltd>`)}},
		}},
	}

	data, err := Marshal(q)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Smith &amp; Jones &lt;Ltd&gt;")

	back, err := Translate(string(data))
	require.NoError(t, err)
	assert.Equal(t, record.String(`Smith & Jones <Ltd>`), back.Filter.Conditions[0].Values[0])
}

func TestMarshal_InvalidQuery(t *testing.T) {
	_, err := Marshal(&querytree.Query{})
	assert.Error(t, err)
}
