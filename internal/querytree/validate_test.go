package querytree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mimic/internal/record"
)

func validQuery() *Query {
	return &Query{
		Entity:  "account",
		Columns: AllColumns(),
		Filter: &Filter{
			Logical: And,
			Conditions: []Condition{
				{Attribute: "name", Operator: OpEqual, Values: []record.Value{record.String("Acme")}},
			},
		},
	}
}

func TestValidate_WellFormed(t *testing.T) {
	require.NoError(t, Validate(validQuery()))
}

func TestValidate_NilQuery(t *testing.T) {
	assert.Error(t, Validate(nil))
}

func TestValidate_MissingEntity(t *testing.T) {
	q := validQuery()
	q.Entity = ""
	assert.Error(t, Validate(q))
}

func TestValidate_NilFilterIsValid(t *testing.T) {
	q := validQuery()
	q.Filter = nil
	assert.NoError(t, Validate(q))
}

func TestValidate_OperatorArity(t *testing.T) {
	tests := []struct {
		name    string
		cond    Condition
		wantErr bool
	}{
		{
			name: "between with two values",
			cond: Condition{Attribute: "revenue", Operator: OpBetween,
				Values: []record.Value{record.Int(1), record.Int(10)}},
		},
		{
			name: "between with one value",
			cond: Condition{Attribute: "revenue", Operator: OpBetween,
				Values: []record.Value{record.Int(1)}},
			wantErr: true,
		},
		{
			name: "in with no values",
			cond: Condition{Attribute: "status", Operator: OpIn, Values: nil},
			wantErr: true,
		},
		{
			name: "in with three values",
			cond: Condition{Attribute: "status", Operator: OpIn,
				Values: []record.Value{record.Int(1), record.Int(2), record.Int(3)}},
		},
		{
			name: "null with a value",
			cond: Condition{Attribute: "email", Operator: OpNull,
				Values: []record.Value{record.String("x")}},
			wantErr: true,
		},
		{
			name: "null without values",
			cond: Condition{Attribute: "email", Operator: OpNull},
		},
		{
			name: "this-month without values",
			cond: Condition{Attribute: "createdon", Operator: OpThisMonth},
		},
		{
			name: "eq without values",
			cond: Condition{Attribute: "name", Operator: OpEqual},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := validQuery()
			q.Filter = &Filter{Logical: And, Conditions: []Condition{tc.cond}}
			err := Validate(q)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_UnknownOperator(t *testing.T) {
	q := validQuery()
	q.Filter.Conditions[0].Operator = "almost-eq"
	err := Validate(q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "almost-eq")
}

func TestValidate_CountOperatorRequiresInt(t *testing.T) {
	q := validQuery()
	q.Filter.Conditions = []Condition{
		{Attribute: "createdon", Operator: OpLastXDays, Values: []record.Value{record.String("soon")}},
	}
	assert.Error(t, Validate(q))

	// Markup literals arrive as strings; a numeric string is acceptable.
	q.Filter.Conditions[0].Values = []record.Value{record.String("7")}
	assert.NoError(t, Validate(q))

	q.Filter.Conditions[0].Values = []record.Value{record.Int(7)}
	assert.NoError(t, Validate(q))

	q.Filter.Conditions[0].Values = []record.Value{record.Bool(true)}
	assert.Error(t, Validate(q))
}

func TestValidate_LinkEntity(t *testing.T) {
	q := validQuery()
	q.Links = []LinkEntity{{Name: "contact", From: "parentcustomerid", To: "accountid", Join: JoinOuter}}
	assert.NoError(t, Validate(q))

	q.Links[0].From = ""
	assert.Error(t, Validate(q))

	q.Links[0].From = "parentcustomerid"
	q.Links[0].Join = "cross"
	assert.Error(t, Validate(q))
}

func TestValidate_NestedFilters(t *testing.T) {
	q := validQuery()
	q.Filter.Filters = []*Filter{
		{Logical: Or, Conditions: []Condition{
			{Attribute: "city", Operator: OpEqual, Values: []record.Value{record.String("Oslo")}},
			{Attribute: "city", Operator: "sideways", Values: []record.Value{record.String("Bergen")}},
		}},
	}
	assert.Error(t, Validate(q))
}

func TestFilter_Empty(t *testing.T) {
	var f *Filter
	assert.True(t, f.Empty())
	assert.True(t, (&Filter{Logical: And}).Empty())
	assert.False(t, (&Filter{Conditions: []Condition{{Attribute: "a", Operator: OpNull}}}).Empty())
	assert.False(t, (&Filter{Filters: []*Filter{{}}}).Empty())
}

func TestOperator_Classification(t *testing.T) {
	assert.True(t, OpLike.IsText())
	assert.True(t, OpNotLike.IsText())
	assert.False(t, OpEqual.IsText())

	assert.True(t, OpThisMonth.IsDateRange())
	assert.True(t, OpOn.IsDateRange())
	assert.False(t, OpBetween.IsDateRange())

	assert.True(t, OpLastXDays.TakesCount())
	assert.False(t, OpToday.TakesCount())

	assert.True(t, OpNotLike.Negated())
	assert.True(t, OpNotIn.Negated())
	assert.False(t, OpLike.Negated())

	assert.True(t, OpLess.IsOrdered())
	assert.True(t, OpBetween.IsOrdered())
	assert.False(t, OpEqual.IsOrdered())
}

func TestLinkEntity_EffectiveAlias(t *testing.T) {
	l := LinkEntity{Name: "contact"}
	assert.Equal(t, "contact", l.EffectiveAlias())
	l.Alias = "primary"
	assert.Equal(t, "primary", l.EffectiveAlias())
}
