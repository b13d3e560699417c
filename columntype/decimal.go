package columntype

import (
	"fmt"

	"github.com/arloliu/colcache/buffer"
	"github.com/arloliu/colcache/errs"
	"github.com/arloliu/colcache/types"
)

// fixedDecimal stores a decimal as its int64 unscaled value. Precision and
// scale come from the column's data type.
type fixedDecimal struct {
	dataType types.DecimalType
}

// NewFixedDecimal returns the 8-byte codec for decimals of dt.
//
// Returns errs.ErrInvalidDataType if dt is malformed or its precision exceeds
// types.MaxLongDigits.
func NewFixedDecimal(dt types.DecimalType) (Typed[types.Decimal], error) {
	if err := dt.Validate(); err != nil {
		return nil, err
	}
	if !dt.FitsInLong() {
		return nil, fmt.Errorf("%w: %s does not fit in %d digits", errs.ErrInvalidDataType, dt, types.MaxLongDigits)
	}

	return newColumn[types.Decimal](dt, KindNative, DecimalSize, fixedDecimal{dataType: dt}), nil
}

func (f fixedDecimal) size(types.Decimal) (int, error) {
	return DecimalSize, nil
}

func (f fixedDecimal) write(v types.Decimal, buf *buffer.Buffer) error {
	unscaled, err := f.unscaled(v)
	if err != nil {
		return err
	}

	return putInt64(buf, unscaled)
}

func (f fixedDecimal) read(buf *buffer.Buffer) (types.Decimal, error) {
	unscaled, err := getInt64(buf)
	if err != nil {
		return types.Decimal{}, err
	}

	return types.NewDecimal(unscaled, f.dataType.Precision, f.dataType.Scale), nil
}

func (f fixedDecimal) unscaled(v types.Decimal) (int64, error) {
	if v.Precision != f.dataType.Precision || v.Scale != f.dataType.Scale {
		return 0, fmt.Errorf("%w: %s value in %s column", errs.ErrTypeMismatch, v.Type(), f.dataType)
	}
	if err := v.Validate(); err != nil {
		return 0, err
	}

	unscaled, ok := v.UnscaledLong()
	if !ok {
		return 0, fmt.Errorf("%w: %s unscaled value overflows int64", errs.ErrTypeMismatch, v)
	}

	return unscaled, nil
}
