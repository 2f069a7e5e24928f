package vogen_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/vogen"
)

func TestAddChecked(t *testing.T) {
	v, err := vogen.AddChecked[int64](2, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)

	_, err = vogen.AddChecked[int64](math.MaxInt64, 1)
	assert.True(t, errors.Is(err, vogen.ErrOverflow))
	_, err = vogen.AddChecked[int8](math.MinInt8, -1)
	assert.True(t, errors.Is(err, vogen.ErrOverflow))
	_, err = vogen.AddChecked[uint8](200, 100)
	assert.True(t, errors.Is(err, vogen.ErrOverflow))

	u, err := vogen.AddChecked[uint8](200, 55)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), u)
}

func TestSubChecked(t *testing.T) {
	v, err := vogen.SubChecked[int32](-5, 5)
	require.NoError(t, err)
	assert.Equal(t, int32(-10), v)

	_, err = vogen.SubChecked[int32](math.MinInt32, 1)
	assert.True(t, errors.Is(err, vogen.ErrOverflow))
	_, err = vogen.SubChecked[int32](math.MaxInt32, -1)
	assert.True(t, errors.Is(err, vogen.ErrOverflow))
	_, err = vogen.SubChecked[uint](1, 2)
	assert.True(t, errors.Is(err, vogen.ErrOverflow))
}

func TestMulChecked(t *testing.T) {
	v, err := vogen.MulChecked[int16](-7, 6)
	require.NoError(t, err)
	assert.Equal(t, int16(-42), v)

	v, err = vogen.MulChecked[int16](0, math.MaxInt16)
	require.NoError(t, err)
	assert.Zero(t, v)

	_, err = vogen.MulChecked[int16](300, 300)
	assert.True(t, errors.Is(err, vogen.ErrOverflow))
	_, err = vogen.MulChecked[int64](math.MinInt64, -1)
	assert.True(t, errors.Is(err, vogen.ErrOverflow))
	_, err = vogen.MulChecked[int64](-1, math.MinInt64)
	assert.True(t, errors.Is(err, vogen.ErrOverflow))
	_, err = vogen.MulChecked[uint32](1<<16, 1<<16)
	assert.True(t, errors.Is(err, vogen.ErrOverflow))

	v64, err := vogen.MulChecked[int64](math.MaxInt64, -1)
	require.NoError(t, err)
	assert.Equal(t, int64(-math.MaxInt64), v64)
}

func TestDivChecked(t *testing.T) {
	v, err := vogen.DivChecked[int](7, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = vogen.DivChecked[int](1, 0)
	assert.True(t, errors.Is(err, vogen.ErrDivideByZero))
	_, err = vogen.DivChecked[int8](math.MinInt8, -1)
	assert.True(t, errors.Is(err, vogen.ErrOverflow))

	var aerr *vogen.ArithmeticError
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, "div", aerr.Op)
}
