package gen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/syssam/vogen/compiler/load"
)

// Severity of a diagnostic.
type Severity uint8

// Severities, in increasing order.
const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

// String implements the fmt.Stringer interface.
func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", s)
	}
}

// Code is a stable diagnostic code. Codes are grouped by phase:
// VG1xxx collection, VG2xxx build, VG3xxx validation, VG4xxx emission.
type Code string

// Phases of the pipeline, as named by the class of a code.
const (
	PhaseCollection = "collection"
	PhaseBuild      = "build"
	PhaseValidation = "validation"
	PhaseEmission   = "emission"
)

// Phase returns the pipeline phase reporting the code. Unknown codes belong
// to validation.
func (c Code) Phase() string {
	switch {
	case strings.HasPrefix(string(c), "VG1"):
		return PhaseCollection
	case strings.HasPrefix(string(c), "VG2"):
		return PhaseBuild
	case strings.HasPrefix(string(c), "VG4"):
		return PhaseEmission
	default:
		return PhaseValidation
	}
}

// Collection codes.
const (
	CodeMalformedDirective Code = load.CodeMalformedDirective
	CodeDuplicateDirective Code = load.CodeDuplicateDirective
	CodeInvalidDeclaration Code = load.CodeInvalidDeclaration
)

// Build codes.
const (
	CodeUnknownKind       Code = "VG2001"
	CodeKeyMemberNotFound Code = "VG2002"
	CodeDuplicateMember   Code = "VG2003"
	CodeUnknownBase       Code = "VG2004"
	CodeBaseNotExtensible Code = "VG2005"
	CodeKeyRedefined      Code = "VG2006"
	CodeDuplicateType     Code = "VG2007"
	CodeCycle             Code = "VG2008"
	CodeDependencyFailed  Code = "VG2009"
	CodeInvalidMemberType Code = "VG2010"
	CodeNullableKey       Code = "VG2011"
	CodeInvalidItem       Code = "VG2012"
)

// Validation codes.
const (
	CodeMissingKey         Code = "VG3001"
	CodeArithmeticKey      Code = "VG3002"
	CodeComparerMismatch   Code = "VG3003"
	CodeBaseKeyMismatch    Code = "VG3004"
	CodeEmptyUnion         Code = "VG3005"
	CodeUnknownCase        Code = "VG3006"
	CodeUnknownOption      Code = "VG3007"
	CodeInvalidOption      Code = "VG3008"
	CodeInvalidErrorType   Code = "VG3009"
	CodeBaseOnNonEnum      Code = "VG3010"
	CodeItemCollision      Code = "VG3011"
	CodeCheckedFloat       Code = "VG3012"
	CodeUnorderableMembers Code = "VG3013"
	CodeReservedMember     Code = "VG3014"
	CodeArithmeticKind     Code = "VG3015"
	CodeKeyNotComparable   Code = "VG3016"
)

// Emission codes.
const (
	CodeConcernFailed Code = "VG4001"
	CodeRenderFailed  Code = "VG4002"
)

// Diagnostic is a message about a candidate. It carries no behavior.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Pos      load.Position
	// Type is the qualified name of the candidate.
	Type string
	// Concern is set for emission diagnostics.
	Concern string
}

// String implements the fmt.Stringer interface.
func (d Diagnostic) String() string {
	s := fmt.Sprintf("%s: %s %s: %s", d.Pos, d.Severity, d.Code, d.Message)
	if d.Concern != "" {
		s += " (" + d.Concern + ")"
	}
	return s
}

// Errorf returns an error-level diagnostic.
func Errorf(code Code, pos load.Position, typ, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SevError, Code: code, Pos: pos, Type: typ, Message: fmt.Sprintf(format, args...)}
}

// Warnf returns a warning-level diagnostic.
func Warnf(code Code, pos load.Position, typ, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SevWarning, Code: code, Pos: pos, Type: typ, Message: fmt.Sprintf(format, args...)}
}

// Diagnostics is a list of diagnostics.
type Diagnostics []Diagnostic

// HasErrors reports whether the list holds an error-level diagnostic.
func (ds Diagnostics) HasErrors() bool {
	for i := range ds {
		if ds[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// Errors returns the error-level diagnostics.
func (ds Diagnostics) Errors() Diagnostics {
	var errs Diagnostics
	for _, d := range ds {
		if d.Severity >= SevError {
			errs = append(errs, d)
		}
	}
	return errs
}

// Sort sorts diagnostics by file, line, column, severity (desc), code, type
// and message, for a stable output order.
func (ds Diagnostics) Sort() {
	sort.SliceStable(ds, func(i, j int) bool {
		di, dj := ds[i], ds[j]
		if di.Pos.File != dj.Pos.File {
			return di.Pos.File < dj.Pos.File
		}
		if di.Pos.Line != dj.Pos.Line {
			return di.Pos.Line < dj.Pos.Line
		}
		if di.Pos.Column != dj.Pos.Column {
			return di.Pos.Column < dj.Pos.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		if di.Type != dj.Type {
			return di.Type < dj.Type
		}
		if di.Concern != dj.Concern {
			return di.Concern < dj.Concern
		}
		return di.Message < dj.Message
	})
}

// Dedup removes repeated diagnostics, keeping the first one.
func (ds Diagnostics) Dedup() Diagnostics {
	seen := make(map[Diagnostic]bool, len(ds))
	out := ds[:0]
	for _, d := range ds {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

// Err returns the error-level diagnostics as one error, or nil. Each
// diagnostic becomes the error of its phase: a *BuildError for build
// codes, a *GenerationError for emission codes and a *ValidationError
// otherwise.
func (ds Diagnostics) Err() error {
	var errs *multierror.Error
	for _, d := range ds {
		if d.Severity < SevError {
			continue
		}
		errs = multierror.Append(errs, d.err())
	}
	return errs.ErrorOrNil()
}

func (d Diagnostic) err() error {
	msg := fmt.Sprintf("%s: %s", d.Pos, d.Message)
	switch d.Code.Phase() {
	case PhaseBuild:
		return &BuildError{Code: d.Code, Type: d.Type, Message: msg}
	case PhaseEmission:
		return &GenerationError{Code: d.Code, Concern: d.Concern, Type: d.Type, Message: msg}
	default:
		return &ValidationError{Type: d.Type, Code: d.Code, Message: msg}
	}
}
