package types

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/colcache/errs"
)

func TestNewDecimal(t *testing.T) {
	d := NewDecimal(1234567, 15, 3)
	require.Equal(t, "1234.567", d.String())
	require.Equal(t, DecimalOf(15, 3), d.Type())

	u, ok := d.UnscaledLong()
	require.True(t, ok)
	require.Equal(t, int64(1234567), u)
	require.Equal(t, 7, d.Digits())
	require.NoError(t, d.Validate())

	zero := NewDecimal(0, 15, 10)
	require.Equal(t, "0.0000000000", zero.String())
	require.Equal(t, 1, zero.Digits())
}

func TestNewDecimalFromBig(t *testing.T) {
	unscaled, ok := new(big.Int).SetString("12345678901234567890123", 10)
	require.True(t, ok)

	d := NewDecimalFromBig(unscaled, 30, 5)
	require.Equal(t, "123456789012345678.90123", d.String())
	require.Equal(t, 0, d.Unscaled().Cmp(unscaled))
	require.Equal(t, 23, d.Digits())

	_, fits := d.UnscaledLong()
	require.False(t, fits)
	require.NoError(t, d.Validate())
}

func TestParseDecimal(t *testing.T) {
	d, err := ParseDecimal("12.345", 10, 2)
	require.NoError(t, err)
	require.Equal(t, "12.35", d.String())

	d, err = ParseDecimal("-0.5", 3, 1)
	require.NoError(t, err)
	u, ok := d.UnscaledLong()
	require.True(t, ok)
	require.Equal(t, int64(-5), u)

	_, err = ParseDecimal("abc", 10, 2)
	require.ErrorIs(t, err, errs.ErrTypeMismatch)

	_, err = ParseDecimal("123456", 4, 0)
	require.ErrorIs(t, err, errs.ErrTypeMismatch)

	_, err = ParseDecimal("1", 2, 3)
	require.ErrorIs(t, err, errs.ErrInvalidDataType)
}

func TestDecimal_Validate(t *testing.T) {
	tooPrecise, err := ParseDecimal("1.5", 5, 1)
	require.NoError(t, err)
	tooPrecise.Scale = 0
	require.ErrorIs(t, tooPrecise.Validate(), errs.ErrTypeMismatch)

	_, ok := tooPrecise.UnscaledLong()
	require.False(t, ok)

	require.ErrorIs(t, NewDecimal(100, 2, 0).Validate(), errs.ErrTypeMismatch)
	require.NoError(t, NewDecimal(99, 2, 0).Validate())
}

func TestDecimal_Equal(t *testing.T) {
	a := NewDecimal(150, 5, 2)
	b, err := ParseDecimal("1.50", 5, 2)
	require.NoError(t, err)
	require.True(t, a.Equal(b))

	require.False(t, a.Equal(NewDecimal(150, 6, 2)))
	require.False(t, a.Equal(NewDecimal(151, 5, 2)))
}
