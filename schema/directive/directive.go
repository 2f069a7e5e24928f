// Package directive parses the options of a vogen directive into a typed
// configuration record.
//
// Every recognized option has a documented default. Unknown option names and
// unrecognized values never fail parsing; they are returned as issues so the
// validator can report them with the declaration position:
//
//	opts, issues := directive.Parse(map[string]any{
//	    "kind":     "enum",
//	    "comparer": "ordinal-ignore-case",
//	})
package directive

import (
	"fmt"
	"go/token"
	"slices"
	"sort"
	"strings"

	"github.com/syssam/vogen"
)

// Option keys recognized in a directive.
const (
	KeyKind                 = "kind"
	KeyKeyMemberName        = "keyMemberName"
	KeyComparer             = "comparer"
	KeyEqualityComparer     = "equalityComparer"
	KeyOperators            = "operators"
	KeySwitchMapGeneration  = "switchMapGeneration"
	KeyValidationErrorType  = "validationErrorType"
	KeySkipStringConversion = "skipStringConversion"
	KeyIsExtensible         = "isExtensible"
	KeyBaseType             = "baseType"
)

// Keys lists the recognized option keys.
var Keys = []string{
	KeyKind,
	KeyKeyMemberName,
	KeyComparer,
	KeyEqualityComparer,
	KeyOperators,
	KeySwitchMapGeneration,
	KeyValidationErrorType,
	KeySkipStringConversion,
	KeyIsExtensible,
	KeyBaseType,
}

// Builtin comparer names.
const (
	ComparerDefault           = "default"
	ComparerOrdinal           = "ordinal"
	ComparerOrdinalIgnoreCase = "ordinal-ignore-case"
)

// DefaultKeyMemberName is the key member assumed for enumerations.
const DefaultKeyMemberName = "key"

// IssueKind classifies an issue found while parsing options.
type IssueKind uint8

// Issue kinds.
const (
	IssueUnknownOption IssueKind = iota + 1
	IssueInvalidValue
)

// Issue describes an option that could not be interpreted.
type Issue struct {
	Kind    IssueKind
	Option  string
	Value   any
	Message string
}

// String implements the fmt.Stringer interface.
func (i Issue) String() string {
	if i.Kind == IssueUnknownOption {
		return fmt.Sprintf("unknown option %q", i.Option)
	}
	return fmt.Sprintf("invalid value %v for option %q: %s", i.Value, i.Option, i.Message)
}

// Options is the typed record of a directive.
type Options struct {
	// Kind is the declared kind. KindInvalid when missing or unrecognized,
	// in which case RawKind holds the declared spelling.
	Kind    vogen.Kind
	RawKind string

	KeyMemberName        string
	Comparer             string
	EqualityComparer     string
	Operators            Operators
	SwitchMap            SwitchMap
	ValidationErrorType  string
	SkipStringConversion bool
	IsExtensible         bool
	BaseType             string

	set map[string]bool
}

// IsSet reports whether the option was given explicitly.
func (o *Options) IsSet(key string) bool {
	return o.set[key]
}

// Defaults returns the options of a directive with no explicit values.
func Defaults() *Options {
	return &Options{
		Comparer: ComparerDefault,
		Operators: Operators{
			Equality: ModeDefault,
		},
		SwitchMap: SwitchMap{Mode: DispatchDefault},
		set:       make(map[string]bool),
	}
}

// Parse parses raw directive options. Parse never fails: every unknown key
// or unrecognized value is reported as an issue and the default is kept.
// Issues are sorted by option name.
func Parse(raw map[string]any) (*Options, []Issue) {
	o := Defaults()
	var issues []Issue
	invalid := func(key string, v any, msg string) {
		issues = append(issues, Issue{Kind: IssueInvalidValue, Option: key, Value: v, Message: msg})
	}
	for key, v := range raw {
		if !slices.Contains(Keys, key) {
			issues = append(issues, Issue{Kind: IssueUnknownOption, Option: key, Value: v})
			continue
		}
		switch key {
		case KeyKind:
			s, ok := v.(string)
			if !ok {
				invalid(key, v, "expect a string")
				continue
			}
			o.RawKind = s
			o.Kind, _ = vogen.ParseKind(s)
		case KeyKeyMemberName, KeyBaseType, KeyValidationErrorType:
			s, ok := v.(string)
			if !ok || strings.TrimSpace(s) == "" {
				invalid(key, v, "expect a non-empty string")
				continue
			}
			switch key {
			case KeyKeyMemberName:
				o.KeyMemberName = s
			case KeyBaseType:
				o.BaseType = s
			default:
				o.ValidationErrorType = s
			}
		case KeyComparer, KeyEqualityComparer:
			s, ok := v.(string)
			if !ok || !validComparer(s) {
				invalid(key, v, "expect default, ordinal, ordinal-ignore-case or a qualified Go identifier")
				continue
			}
			if key == KeyComparer {
				o.Comparer = s
			} else {
				o.EqualityComparer = s
			}
		case KeyOperators:
			ops, msg := parseOperators(v)
			if msg != "" {
				invalid(key, v, msg)
				continue
			}
			o.Operators = ops
		case KeySwitchMapGeneration:
			sm, msg := parseSwitchMap(v)
			if msg != "" {
				invalid(key, v, msg)
				continue
			}
			o.SwitchMap = sm
		case KeySkipStringConversion, KeyIsExtensible:
			b, ok := v.(bool)
			if !ok {
				invalid(key, v, "expect a boolean")
				continue
			}
			if key == KeyIsExtensible {
				o.IsExtensible = b
			} else {
				o.SkipStringConversion = b
			}
		}
		o.set[key] = true
	}
	sort.Slice(issues, func(i, j int) bool { return issues[i].Option < issues[j].Option })
	return o, issues
}

// BuiltinComparer reports if name is one of the builtin comparers.
func BuiltinComparer(name string) bool {
	switch name {
	case ComparerDefault, ComparerOrdinal, ComparerOrdinalIgnoreCase:
		return true
	default:
		return false
	}
}

// StringComparer reports if name is a comparer defined only for strings.
func StringComparer(name string) bool {
	return name == ComparerOrdinal || name == ComparerOrdinalIgnoreCase
}

// SplitQualified splits a possibly qualified Go identifier such as
// "example.com/pkg.Name" into its import path and name.
func SplitQualified(s string) (pkgPath, name string, ok bool) {
	i := strings.LastIndexByte(s, '.')
	if i >= 0 {
		pkgPath, name = s[:i], s[i+1:]
		if pkgPath == "" || strings.ContainsAny(pkgPath, " \t\n") {
			return "", "", false
		}
	} else {
		name = s
	}
	return pkgPath, name, token.IsIdentifier(name)
}

func validComparer(s string) bool {
	if BuiltinComparer(s) {
		return true
	}
	_, _, ok := SplitQualified(s)
	return ok
}
