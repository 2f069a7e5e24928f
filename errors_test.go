package vogen_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/vogen"
)

type rangeError struct {
	typ, msg string
}

func (e *rangeError) Error() string { return "range: " + e.typ + ": " + e.msg }

func (e *rangeError) SetValidationError(typeName, message string) {
	e.typ, e.msg = typeName, message
}

func TestValidationError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := vogen.NewValidationError[vogen.ValidationError]("Range", "lower exceeds upper")
		assert.Equal(t, "vogen: validation failed for Range: lower exceeds upper", err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := vogen.NewValidationErrorf[vogen.ValidationError]("Amount", "negative value %d", -1)
		assert.True(t, errors.Is(err, vogen.ErrValidation))
		var verr *vogen.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "Amount", verr.Type)
		assert.Equal(t, "negative value -1", verr.Message)
	})

	t.Run("CustomType", func(t *testing.T) {
		err := vogen.NewValidationError[rangeError]("Range", "empty")
		assert.Equal(t, "range: Range: empty", err.Error())
		var rerr *rangeError
		require.True(t, errors.As(err, &rerr))
		assert.True(t, vogen.IsValidationError(err))
		assert.False(t, errors.Is(err, vogen.ErrValidation))
	})

	t.Run("IsValidationError", func(t *testing.T) {
		err := vogen.NewValidationError[vogen.ValidationError]("Range", "empty")
		assert.True(t, vogen.IsValidationError(fmt.Errorf("wrap: %w", err)))
		assert.True(t, vogen.IsValidationError(vogen.ErrValidation))
		assert.False(t, vogen.IsValidationError(errors.New("other")))
		assert.False(t, vogen.IsValidationError(nil))
	})
}

func TestUnknownCaseError(t *testing.T) {
	err := vogen.NewUnknownCaseError("ProductCategory", "Meat")
	assert.Equal(t, "vogen: ProductCategory has no case for Meat", err.Error())
	assert.True(t, errors.Is(err, vogen.ErrUnknownCase))
	assert.True(t, vogen.IsUnknownCase(fmt.Errorf("dispatch: %w", err)))
	assert.True(t, vogen.IsUnknownCase(vogen.ErrUnknownCase))
	assert.False(t, vogen.IsUnknownCase(vogen.ErrOverflow))
	assert.False(t, vogen.IsUnknownCase(nil))
}
