// Package member describes the types a declared member can hold.
//
// A member type is either one of the builtin kinds below or a reference to
// another named type, local or qualified by its import path:
//
//	member.ParseType("string")              // TypeString
//	member.ParseType("decimal")             // TypeDecimal, github.com/shopspring/decimal
//	member.ParseType("*time")               // nillable TypeTime
//	member.ParseType("Color")               // TypeOther, local reference
//	member.ParseType("example.com/x.Money") // TypeOther, qualified reference
package member

import (
	"go/token"
	"strings"

	"github.com/cockroachdb/errors"
)

// A Type represents a member type.
type Type uint8

// List of member types.
const (
	TypeInvalid Type = iota
	TypeBool
	TypeString
	TypeInt
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeUint
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint64
	TypeFloat32
	TypeFloat64
	TypeDecimal
	TypeTime
	TypeUUID
	TypeBytes
	TypeOther
	endTypes
)

// Import paths of the non-builtin member types.
const (
	DecimalPkg = "github.com/shopspring/decimal"
	UUIDPkg    = "github.com/google/uuid"
	TimePkg    = "time"
)

var (
	typeNames = [...]string{
		TypeInvalid: "invalid",
		TypeBool:    "bool",
		TypeString:  "string",
		TypeInt:     "int",
		TypeInt8:    "int8",
		TypeInt16:   "int16",
		TypeInt32:   "int32",
		TypeInt64:   "int64",
		TypeUint:    "uint",
		TypeUint8:   "uint8",
		TypeUint16:  "uint16",
		TypeUint32:  "uint32",
		TypeUint64:  "uint64",
		TypeFloat32: "float32",
		TypeFloat64: "float64",
		TypeDecimal: "decimal.Decimal",
		TypeTime:    "time.Time",
		TypeUUID:    "uuid.UUID",
		TypeBytes:   "[]byte",
		TypeOther:   "other",
	}
	// aliases accepted by ParseType besides the type names.
	aliases = map[string]Type{
		"decimal": TypeDecimal,
		"time":    TypeTime,
		"uuid":    TypeUUID,
		"bytes":   TypeBytes,
		"byte":    TypeUint8,
		"rune":    TypeInt32,
	}
)

// String returns the string representation of a type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Valid reports if the given type if known type.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// Integer reports if the given type is an integer type.
func (t Type) Integer() bool {
	return t >= TypeInt && t <= TypeUint64
}

// Signed reports if the given type is a signed integer type.
func (t Type) Signed() bool {
	return t >= TypeInt && t <= TypeInt64
}

// Float reports if the given type is a float type.
func (t Type) Float() bool {
	return t == TypeFloat32 || t == TypeFloat64
}

// Numeric reports if the given type is a numeric type.
func (t Type) Numeric() bool {
	return t.Integer() || t.Float() || t == TypeDecimal
}

// Orderable reports if values of the type have a total order.
func (t Type) Orderable() bool {
	switch {
	case t == TypeString, t.Numeric(), t == TypeTime, t == TypeUUID:
		return true
	default:
		return false
	}
}

// Comparable reports if the == operator implements value equality for the
// type. Decimal and time values have an Equal method instead, and byte slices
// cannot be compared at all.
func (t Type) Comparable() bool {
	switch t {
	case TypeInvalid, TypeDecimal, TypeTime, TypeBytes:
		return false
	default:
		return true
	}
}

// Builtin reports if the type is predeclared in Go.
func (t Type) Builtin() bool {
	return t >= TypeBool && t <= TypeFloat64
}

// TypeInfo holds the information regarding member type.
type TypeInfo struct {
	Type     Type
	Ident    string // Type name, without package qualifier.
	PkgPath  string // Import path, empty for builtin and local types.
	Nillable bool   // Held as a pointer.
}

// String returns the Go representation of the type, qualified with the
// package name.
func (t TypeInfo) String() string {
	var s string
	switch {
	case t.Type == TypeOther && t.PkgPath != "":
		s = t.PkgName() + "." + t.Ident
	case t.Type == TypeOther:
		s = t.Ident
	default:
		s = t.Type.String()
	}
	if t.Nillable {
		s = "*" + s
	}
	return s
}

// PkgName returns the package name of the type.
func (t TypeInfo) PkgName() string {
	if t.PkgPath == "" {
		return ""
	}
	return t.PkgPath[strings.LastIndexByte(t.PkgPath, '/')+1:]
}

// Local reports if the type references a named type of the declaring package.
func (t TypeInfo) Local() bool {
	return t.Type == TypeOther && t.PkgPath == ""
}

// ParseType parses a member type expression.
func ParseType(s string) (*TypeInfo, error) {
	expr := strings.TrimSpace(s)
	info := &TypeInfo{}
	if strings.HasPrefix(expr, "*") {
		info.Nillable = true
		expr = strings.TrimSpace(expr[1:])
	}
	if expr == "" {
		return nil, errors.Newf("member: empty type expression %q", s)
	}
	if t, ok := lookup(expr); ok {
		info.Type = t
		switch t {
		case TypeDecimal:
			info.Ident, info.PkgPath = "Decimal", DecimalPkg
		case TypeTime:
			info.Ident, info.PkgPath = "Time", TimePkg
		case TypeUUID:
			info.Ident, info.PkgPath = "UUID", UUIDPkg
		}
		return info, nil
	}
	info.Type = TypeOther
	if i := strings.LastIndexByte(expr, '.'); i >= 0 {
		info.PkgPath, info.Ident = expr[:i], expr[i+1:]
		if info.PkgPath == "" || strings.ContainsAny(info.PkgPath, " \t") {
			return nil, errors.Newf("member: invalid package path in %q", s)
		}
	} else {
		info.Ident = expr
	}
	if !token.IsIdentifier(info.Ident) {
		return nil, errors.Newf("member: invalid type name %q", s)
	}
	return info, nil
}

// MustParseType is like ParseType but panics on error.
func MustParseType(s string) *TypeInfo {
	info, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return info
}

func lookup(s string) (Type, bool) {
	if t, ok := aliases[s]; ok {
		return t, true
	}
	for t := TypeBool; t < TypeOther; t++ {
		if typeNames[t] == s {
			return t, true
		}
	}
	return TypeInvalid, false
}
