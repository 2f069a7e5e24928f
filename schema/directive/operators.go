package directive

import (
	"fmt"
	"slices"
)

// Mode controls the generation of one operator family.
type Mode uint8

// Operator generation modes.
const (
	ModeNone Mode = iota
	ModeDefault
	// ModeChecked adds overflow-checked variants.
	ModeChecked
	// ModeAll adds overflow-checked variants and overloads accepting
	// the bare key value.
	ModeAll
)

var modeNames = [...]string{
	ModeNone:    "none",
	ModeDefault: "default",
	ModeChecked: "checked",
	ModeAll:     "all",
}

// String returns the directive spelling of the mode.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "invalid"
}

// Enabled reports whether the family is generated at all.
func (m Mode) Enabled() bool { return m != ModeNone }

// Checked reports whether overflow-checked variants are generated.
func (m Mode) Checked() bool { return m == ModeChecked || m == ModeAll }

// KeyOverloads reports whether overloads accepting the key are generated.
func (m Mode) KeyOverloads() bool { return m == ModeAll }

// ParseMode parses the directive spelling of a mode.
func ParseMode(s string) (Mode, bool) {
	i := slices.Index(modeNames[:], s)
	if i < 0 {
		return ModeNone, false
	}
	return Mode(i), true
}

// Operators configures the operator families of a type.
type Operators struct {
	Equality   Mode
	Ordering   Mode
	Arithmetic Mode
	// Scalar is set when the families were configured with a single mode;
	// arithmetic then applies only where the key is numeric.
	Scalar bool
}

func parseOperators(v any) (Operators, string) {
	switch v := v.(type) {
	case string:
		m, ok := ParseMode(v)
		if !ok {
			return Operators{}, "expect none, default, checked or all"
		}
		return Operators{Equality: m, Ordering: m, Arithmetic: m, Scalar: true}, ""
	case map[string]any:
		ops := Operators{Equality: ModeDefault}
		for family, raw := range v {
			s, ok := raw.(string)
			if !ok {
				return Operators{}, fmt.Sprintf("expect a mode for %q", family)
			}
			m, ok := ParseMode(s)
			if !ok {
				return Operators{}, fmt.Sprintf("unknown mode %q for %q", s, family)
			}
			switch family {
			case "equality":
				ops.Equality = m
			case "ordering":
				ops.Ordering = m
			case "arithmetic":
				ops.Arithmetic = m
			default:
				return Operators{}, fmt.Sprintf("unknown operator family %q", family)
			}
		}
		return ops, ""
	default:
		return Operators{}, "expect a mode or a map of operator families"
	}
}

// DispatchMode controls switch/map generation.
type DispatchMode uint8

// Dispatch generation modes.
const (
	DispatchNone DispatchMode = iota
	DispatchDefault
	// DispatchPartial adds partial forms taking the handled cases and a
	// mandatory default.
	DispatchPartial
)

var dispatchNames = [...]string{
	DispatchNone:    "none",
	DispatchDefault: "default",
	DispatchPartial: "partial-overloads",
}

// String returns the directive spelling of the mode.
func (m DispatchMode) String() string {
	if int(m) < len(dispatchNames) {
		return dispatchNames[m]
	}
	return "invalid"
}

// SwitchMap configures switch/map dispatch generation.
type SwitchMap struct {
	Mode DispatchMode
	// Cases restricts the partial forms to the named cases.
	// Empty means every case.
	Cases []string
}

func parseDispatchMode(s string) (DispatchMode, bool) {
	i := slices.Index(dispatchNames[:], s)
	if i < 0 {
		return DispatchNone, false
	}
	return DispatchMode(i), true
}

func parseSwitchMap(v any) (SwitchMap, string) {
	switch v := v.(type) {
	case string:
		m, ok := parseDispatchMode(v)
		if !ok {
			return SwitchMap{}, "expect none, default or partial-overloads"
		}
		return SwitchMap{Mode: m}, ""
	case map[string]any:
		sm := SwitchMap{Mode: DispatchDefault}
		for k, raw := range v {
			switch k {
			case "mode":
				s, _ := raw.(string)
				m, ok := parseDispatchMode(s)
				if !ok {
					return SwitchMap{}, fmt.Sprintf("unknown dispatch mode %v", raw)
				}
				sm.Mode = m
			case "cases":
				list, ok := raw.([]any)
				if !ok {
					return SwitchMap{}, "expect a list of case names"
				}
				for _, c := range list {
					s, ok := c.(string)
					if !ok || s == "" {
						return SwitchMap{}, fmt.Sprintf("invalid case name %v", c)
					}
					sm.Cases = append(sm.Cases, s)
				}
			default:
				return SwitchMap{}, fmt.Sprintf("unknown key %q", k)
			}
		}
		return sm, ""
	default:
		return SwitchMap{}, "expect a mode or a map with mode and cases"
	}
}
