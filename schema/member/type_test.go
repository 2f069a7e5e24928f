package member_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/vogen/schema/member"
)

func TestType_Predicates(t *testing.T) {
	tests := []struct {
		typ        member.Type
		numeric    bool
		integer    bool
		signed     bool
		orderable  bool
		comparable bool
	}{
		{member.TypeString, false, false, false, true, true},
		{member.TypeBool, false, false, false, false, true},
		{member.TypeInt64, true, true, true, true, true},
		{member.TypeUint8, true, true, false, true, true},
		{member.TypeFloat64, true, false, false, true, true},
		{member.TypeDecimal, true, false, false, true, false},
		{member.TypeTime, false, false, false, true, false},
		{member.TypeUUID, false, false, false, true, true},
		{member.TypeBytes, false, false, false, false, false},
		{member.TypeOther, false, false, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			assert.True(t, tt.typ.Valid())
			assert.Equal(t, tt.numeric, tt.typ.Numeric(), "Numeric")
			assert.Equal(t, tt.integer, tt.typ.Integer(), "Integer")
			assert.Equal(t, tt.signed, tt.typ.Signed(), "Signed")
			assert.Equal(t, tt.orderable, tt.typ.Orderable(), "Orderable")
			assert.Equal(t, tt.comparable, tt.typ.Comparable(), "Comparable")
		})
	}
	assert.False(t, member.TypeInvalid.Valid())
	assert.Equal(t, "invalid", member.Type(200).String())
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in       string
		typ      member.Type
		ident    string
		pkgPath  string
		nillable bool
		str      string
	}{
		{"string", member.TypeString, "", "", false, "string"},
		{"int64", member.TypeInt64, "", "", false, "int64"},
		{"*int", member.TypeInt, "", "", true, "*int"},
		{"decimal", member.TypeDecimal, "Decimal", member.DecimalPkg, false, "decimal.Decimal"},
		{"decimal.Decimal", member.TypeDecimal, "Decimal", member.DecimalPkg, false, "decimal.Decimal"},
		{"time", member.TypeTime, "Time", "time", false, "time.Time"},
		{"uuid", member.TypeUUID, "UUID", member.UUIDPkg, false, "uuid.UUID"},
		{"[]byte", member.TypeBytes, "", "", false, "[]byte"},
		{"Color", member.TypeOther, "Color", "", false, "Color"},
		{"example.com/shop/money.Money", member.TypeOther, "Money", "example.com/shop/money", false, "money.Money"},
		{" *example.com/x.Y ", member.TypeOther, "Y", "example.com/x", true, "*x.Y"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			info, err := member.ParseType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.typ, info.Type)
			assert.Equal(t, tt.ident, info.Ident)
			assert.Equal(t, tt.pkgPath, info.PkgPath)
			assert.Equal(t, tt.nillable, info.Nillable)
			assert.Equal(t, tt.str, info.String())
		})
	}
}

func TestParseType_Invalid(t *testing.T) {
	for _, in := range []string{"", "*", "map[string]int", ".Money", "example.com/x.", "two words"} {
		t.Run(in, func(t *testing.T) {
			_, err := member.ParseType(in)
			assert.Error(t, err)
		})
	}
	assert.Panics(t, func() { member.MustParseType("") })
}

func TestTypeInfo_Local(t *testing.T) {
	assert.True(t, member.MustParseType("Color").Local())
	assert.False(t, member.MustParseType("example.com/x.Color").Local())
	assert.False(t, member.MustParseType("string").Local())
}
