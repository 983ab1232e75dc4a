package record

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_SetPreservesInsertionOrder(t *testing.T) {
	r := New("account")
	r.Set("name", String("Acme"))
	r.Set("revenue", Money(1500.50))
	r.Set("employees", Int(42))

	assert.Equal(t, []string{"name", "revenue", "employees"}, r.Attributes())
}

func TestRecord_OverwriteKeepsPosition(t *testing.T) {
	r := New("account")
	r.Set("name", String("Acme"))
	r.Set("city", String("Oslo"))
	r.Set("name", String("Acme Ltd"))

	assert.Equal(t, []string{"name", "city"}, r.Attributes())

	v, ok := r.Get("name")
	require.True(t, ok)
	assert.Equal(t, String("Acme Ltd"), v)
}

func TestRecord_AbsentVersusNull(t *testing.T) {
	r := New("contact")
	r.Set("email", Null{})

	// Present null.
	v, ok := r.Get("email")
	assert.True(t, ok)
	assert.Equal(t, Null{}, v)
	assert.True(t, IsNull(v))

	// Truly absent.
	v, ok = r.Get("phone")
	assert.False(t, ok)
	assert.Nil(t, v)
	assert.True(t, IsNull(v))
}

func TestRecord_Remove(t *testing.T) {
	r := New("contact")
	r.Set("first", String("a"))
	r.Set("second", String("b"))
	r.Set("third", String("c"))

	r.Remove("second")

	assert.Equal(t, []string{"first", "third"}, r.Attributes())
	assert.False(t, r.Has("second"))

	// Removing an absent attribute is a no-op.
	r.Remove("second")
	assert.Equal(t, 2, r.Len())
}

func TestRecord_CloneIsIndependent(t *testing.T) {
	id := uuid.New()
	r := NewWithID("account", id)
	r.Set("name", String("Acme"))

	c := r.Clone()
	c.Set("name", String("Other"))
	c.Set("extra", Bool(true))

	v, _ := r.Get("name")
	assert.Equal(t, String("Acme"), v)
	assert.False(t, r.Has("extra"))
	assert.Equal(t, id, c.ID)
}

func TestAttributeType_Numeric(t *testing.T) {
	assert.True(t, TypeInteger.Numeric())
	assert.True(t, TypeDecimal.Numeric())
	assert.True(t, TypeMoney.Numeric())
	assert.True(t, TypeOption.Numeric())
	assert.False(t, TypeString.Numeric())
	assert.False(t, TypeDateTime.Numeric())
	assert.False(t, TypeReference.Numeric())
}

func TestAttributeMeta_DateBehaviorOrDefault(t *testing.T) {
	unset := AttributeMeta{LogicalName: "createdon", Type: TypeDateTime}
	assert.Equal(t, BehaviorAbsolute, unset.DateBehaviorOrDefault())

	dateOnly := AttributeMeta{LogicalName: "birthdate", Type: TypeDateTime, Behavior: BehaviorDateOnly}
	assert.Equal(t, BehaviorDateOnly, dateOnly.DateBehaviorOrDefault())
}
