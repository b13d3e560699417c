package types

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/arloliu/colcache/errs"
)

// Decimal is a fixed-point decimal value tagged with the precision and scale
// of the column it belongs to.
//
// The numeric value is held by a shopspring decimal; constructors round it to
// Scale fractional digits so that Unscaled is always exact.
type Decimal struct {
	Value     decimal.Decimal `json:"value"`
	Precision int             `json:"precision"`
	Scale     int             `json:"scale"`
}

// NewDecimal builds a decimal from its unscaled integer value, i.e. the value
// is unscaled * 10^-scale.
func NewDecimal(unscaled int64, precision, scale int) Decimal {
	return Decimal{
		Value:     decimal.New(unscaled, -int32(scale)), //nolint:gosec
		Precision: precision,
		Scale:     scale,
	}
}

// NewDecimalFromBig builds a decimal from an arbitrary size unscaled value.
func NewDecimalFromBig(unscaled *big.Int, precision, scale int) Decimal {
	return Decimal{
		Value:     decimal.NewFromBigInt(unscaled, -int32(scale)), //nolint:gosec
		Precision: precision,
		Scale:     scale,
	}
}

// ParseDecimal parses s and rounds it to scale fractional digits.
//
// Returns an error wrapping errs.ErrTypeMismatch if s is not a number or if the
// rounded value has more than precision digits.
func ParseDecimal(s string, precision, scale int) (Decimal, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("%w: parse decimal %q: %v", errs.ErrTypeMismatch, s, err)
	}

	d := Decimal{
		Value:     v.Round(int32(scale)), //nolint:gosec
		Precision: precision,
		Scale:     scale,
	}
	if err := d.Validate(); err != nil {
		return Decimal{}, err
	}

	return d, nil
}

// Type returns the descriptor matching the decimal's precision and scale.
func (d Decimal) Type() DecimalType {
	return DecimalType{Precision: d.Precision, Scale: d.Scale}
}

// Unscaled returns the value multiplied by 10^Scale, truncated to an integer.
func (d Decimal) Unscaled() *big.Int {
	return d.Value.Shift(int32(d.Scale)).BigInt() //nolint:gosec
}

// UnscaledLong returns the unscaled value as an int64.
// The second result is false if the value has more fractional digits than
// Scale or if the unscaled value overflows int64.
func (d Decimal) UnscaledLong() (int64, bool) {
	shifted := d.Value.Shift(int32(d.Scale)) //nolint:gosec
	if !shifted.IsInteger() {
		return 0, false
	}

	u := shifted.BigInt()
	if !u.IsInt64() {
		return 0, false
	}

	return u.Int64(), true
}

// Digits returns the number of decimal digits of the unscaled value.
func (d Decimal) Digits() int {
	u := d.Unscaled()
	if u.Sign() == 0 {
		return 1
	}

	return len(new(big.Int).Abs(u).String())
}

// Validate checks the descriptor and that the value fits in Precision digits
// at Scale.
func (d Decimal) Validate() error {
	if err := d.Type().Validate(); err != nil {
		return err
	}

	shifted := d.Value.Shift(int32(d.Scale)) //nolint:gosec
	if !shifted.IsInteger() {
		return fmt.Errorf("%w: %s has more than %d fractional digits", errs.ErrTypeMismatch, d.Value, d.Scale)
	}
	if digits := d.Digits(); d.Precision > 0 && digits > d.Precision {
		return fmt.Errorf("%w: %s needs %d digits, precision is %d", errs.ErrTypeMismatch, d.Value, digits, d.Precision)
	}

	return nil
}

// Equal reports whether both decimals have the same precision, scale and
// numeric value.
func (d Decimal) Equal(other Decimal) bool {
	return d.Precision == other.Precision &&
		d.Scale == other.Scale &&
		d.Value.Equal(other.Value)
}

// String formats the value with exactly Scale fractional digits.
func (d Decimal) String() string {
	return d.Value.StringFixed(int32(d.Scale)) //nolint:gosec
}
