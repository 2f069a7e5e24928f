package golang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenArithmetic_Decimal(t *testing.T) {
	out := emit(t, "arithmetic", "Range")

	assert.Contains(t, out, "func (r Range) Add(other Range) Range { return r.withKey(r.value.Add(other.value)) }")
	assert.Contains(t, out, "func (r Range) Div(other Range) Range { return r.withKey(r.value.Div(other.value)) }")
	assert.Contains(t, out, `func (r Range) DivChecked(other Range) (Range, error) { if other.value.IsZero() { return Range{}, &vogen.ArithmeticError{ A: r.value, B: other.value, Err: vogen.ErrDivideByZero, Op: "div", } } return r.withKey(r.value.Div(other.value)), nil }`)
	assert.Contains(t, out, "func (r Range) AddChecked(other Range) (Range, error) { return r.withKey(r.value.Add(other.value)), nil }")
	assert.Contains(t, out, "func (r Range) withKey(k decimal.Decimal) Range { r.value = k return r }")
	assert.NotContains(t, out, "AddKey")
}

func TestGenArithmetic_Integer(t *testing.T) {
	out := emit(t, "arithmetic", "Quantity")

	assert.Contains(t, out, "func (q Quantity) Add(other Quantity) Quantity { return q.withKey(q.value + other.value) }")
	assert.Contains(t, out, "func (q Quantity) MulKey(k int32) Quantity { return q.withKey(q.value * k) }")
	assert.Contains(t, out, "func (q Quantity) SubChecked(other Quantity) (Quantity, error) { k, err := vogen.SubChecked(q.value, other.value) if err != nil { return Quantity{}, err } return q.withKey(k), nil }")
}
