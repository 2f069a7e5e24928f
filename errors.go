package vogen

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Standard sentinel errors returned by generated code.
var (
	// ErrValidation is matched by every validation error produced by a generated factory.
	ErrValidation = errors.New("vogen: validation failed")

	// ErrUnknownCase is returned by generated dispatch functions when the value
	// is not one of the declared cases (e.g. an invalid enumeration item).
	ErrUnknownCase = errors.New("vogen: unknown case")

	// ErrDuplicateKey is returned when an item is registered twice with the same key.
	ErrDuplicateKey = errors.New("vogen: duplicate item key")

	// ErrOverflow is returned by overflow-checked arithmetic.
	ErrOverflow = errors.New("vogen: arithmetic overflow")

	// ErrDivideByZero is returned by checked division with a zero divisor.
	ErrDivideByZero = errors.New("vogen: division by zero")
)

// ValidationErrorType is implemented by the error types generated factories
// report. The default is *ValidationError; a type can override it with the
// validationErrorType directive option.
type ValidationErrorType interface {
	error
	// SetValidationError populates the error with the failing type and a message.
	SetValidationError(typeName, message string)
}

// ValidationError is the default validation error of generated factories.
type ValidationError struct {
	Type    string // Generated type name
	Message string
}

// Error returns the error string.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("vogen: validation failed")
	if e.Type != "" {
		b.WriteString(" for ")
		b.WriteString(e.Type)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// SetValidationError implements ValidationErrorType.
func (e *ValidationError) SetValidationError(typeName, message string) {
	e.Type = typeName
	e.Message = message
}

// NewValidationError allocates a validation error of type E and populates it.
// Generated factories call it with the configured error type:
//
//	return vogen.NewValidationError[vogen.ValidationError]("Range", "lower exceeds upper")
func NewValidationError[E any, P interface {
	*E
	ValidationErrorType
}](typeName, message string) error {
	p := P(new(E))
	p.SetValidationError(typeName, message)
	return p
}

// NewValidationErrorf is like NewValidationError with a formatted message.
func NewValidationErrorf[E any, P interface {
	*E
	ValidationErrorType
}](typeName, format string, args ...any) error {
	return NewValidationError[E, P](typeName, fmt.Sprintf(format, args...))
}

// IsValidationError returns true if the error is a validation error of any
// registered validation error type.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var e ValidationErrorType
	return errors.As(err, &e) || errors.Is(err, ErrValidation)
}

// UnknownCaseError is returned when dispatching over a value that matches none
// of the declared cases.
type UnknownCaseError struct {
	Type  string // Generated type name
	Value any    // Offending value or key
}

// Error returns the error string.
func (e *UnknownCaseError) Error() string {
	return fmt.Sprintf("vogen: %s has no case for %v", e.Type, e.Value)
}

// Is reports whether the target matches ErrUnknownCase.
func (e *UnknownCaseError) Is(target error) bool {
	return target == ErrUnknownCase
}

// NewUnknownCaseError returns a new UnknownCaseError.
func NewUnknownCaseError(typeName string, value any) *UnknownCaseError {
	return &UnknownCaseError{Type: typeName, Value: value}
}

// IsUnknownCase returns true if the error is an UnknownCaseError.
func IsUnknownCase(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownCaseError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownCase)
}

// ArithmeticError wraps an overflow or division failure with its operands.
type ArithmeticError struct {
	Op   string // "add", "sub", "mul" or "div"
	A, B any
	Err  error
}

// Error returns the error string.
func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("vogen: %s(%v, %v): %v", e.Op, e.A, e.B, e.Err)
}

// Unwrap returns the underlying error.
func (e *ArithmeticError) Unwrap() error {
	return e.Err
}
