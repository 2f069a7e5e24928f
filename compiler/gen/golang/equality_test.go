package golang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenEquality_Keyed(t *testing.T) {
	out := emit(t, "equality", "ProductCategory")

	assert.Contains(t, out, "func (pc *ProductCategory) Equal(other *ProductCategory) bool { if pc == nil || other == nil { return pc == other } return vogen.OrdinalIgnoreCase.Equal(pc.key, other.key) }")
	assert.Contains(t, out, "func (pc *ProductCategory) HashCode() uint64 { if pc == nil { return 0 } return vogen.HashKey(vogen.OrdinalIgnoreCase, pc.key) }")
	assert.NotContains(t, out, "EqualKey")
}

func TestGenEquality_KeyOverloads(t *testing.T) {
	out := emit(t, "equality", "Quantity")

	assert.Contains(t, out, "func (q Quantity) Equal(other Quantity) bool { return vogen.DefaultComparer[int32]().Equal(q.value, other.value) }")
	assert.Contains(t, out, "func (q Quantity) EqualKey(k int32) bool { return vogen.DefaultComparer[int32]().Equal(q.value, k) }")
}

func TestGenEquality_Memberwise(t *testing.T) {
	out := emit(t, "equality", "Money")

	assert.Contains(t, out, "func (m Money) Equal(other Money) bool { return vogen.CmpComparer[decimal.Decimal]().Equal(m.amount, other.amount) && vogen.EqualPtr(vogen.Ordinal, m.currency, other.currency) }")
	assert.Contains(t, out, "return vogen.CombineHash( vogen.HashKey(vogen.CmpComparer[decimal.Decimal](), m.amount), vogen.HashPtr(vogen.Ordinal, m.currency), )")
}

func TestGenEquality_Union(t *testing.T) {
	out := emit(t, "equality", "Result")

	assert.Contains(t, out, "func EqualResult(a, b Result) bool { switch x := a.(type) { case ResultSuccess: y, ok := b.(ResultSuccess) return ok && x.Equal(y)")
	assert.Contains(t, out, "return a == nil && b == nil }")
	assert.Contains(t, out, "case ResultFailure: return vogen.CombineHash(1, x.HashCode())")
	assert.Contains(t, out, "func (s ResultSuccess) Equal(other ResultSuccess) bool { return vogen.Ordinal.Equal(s.value, other.value) }")
	assert.Contains(t, out, "func (ResultPending) Equal(ResultPending) bool { return true }")
	assert.Contains(t, out, "func (ResultPending) HashCode() uint64 { return 0 }")
}
