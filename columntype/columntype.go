package columntype

import (
	"fmt"

	"github.com/arloliu/colcache/buffer"
	"github.com/arloliu/colcache/errs"
	"github.com/arloliu/colcache/row"
	"github.com/arloliu/colcache/types"
)

// Kind classifies a column type by its encoding strategy.
type Kind uint8

const (
	KindNative   Kind = 0x1 // KindNative is a fixed-width codec.
	KindVariable Kind = 0x2 // KindVariable is a length-prefixed codec for strings and bytes.
	KindGeneric  Kind = 0x3 // KindGeneric is the serde-backed fallback codec.
)

func (k Kind) String() string {
	switch k {
	case KindNative:
		return "Native"
	case KindVariable:
		return "Variable"
	case KindGeneric:
		return "Generic"
	default:
		return "Unknown"
	}
}

// ColumnType is the type-erased codec contract used by dynamic dispatch.
type ColumnType interface {
	// DataType returns the logical type served by the codec.
	DataType() types.DataType

	// Kind returns the encoding strategy of the codec.
	Kind() Kind

	// DefaultSize returns the nominal per-value footprint in bytes.
	// For fixed-width codecs it equals every ActualSize; for the others it is
	// only an estimate for pre-sizing buffers.
	DefaultSize() int

	// ActualSize returns the exact number of bytes that appending the value
	// at ordinal of r would write now.
	ActualSize(r row.Row, ordinal int) (int, error)

	// AppendValue writes v at the buffer cursor.
	// It fails with errs.ErrTypeMismatch if v is not of the codec's Go type.
	AppendValue(v any, buf *buffer.Buffer) error

	// ExtractValue reads one value at the buffer cursor.
	ExtractValue(buf *buffer.Buffer) (any, error)

	// AppendFrom appends the value at ordinal of r.
	AppendFrom(r row.Row, ordinal int, buf *buffer.Buffer) error

	// ExtractTo extracts one value and stores it at ordinal of r.
	ExtractTo(buf *buffer.Buffer, r row.Row, ordinal int) error

	// String returns a short description, e.g. "Native(int)".
	String() string
}

// Typed is a ColumnType whose values are Go values of type T.
//
// Append writes exactly Size(v) bytes and advances the cursor by that amount;
// Extract reads the same layout back and advances the cursor by the same
// amount. A failed Append or Extract reports an error; the caller must
// reposition the buffer before reusing it.
type Typed[T any] interface {
	ColumnType

	// Size returns the number of bytes Append would write for v.
	Size(v T) (int, error)

	// Append writes v at the buffer cursor.
	Append(v T, buf *buffer.Buffer) error

	// Extract reads a value at the buffer cursor.
	Extract(buf *buffer.Buffer) (T, error)

	// GetField returns the field at ordinal of r.
	GetField(r row.Row, ordinal int) (T, error)

	// SetField stores v at ordinal of r.
	SetField(r row.Row, ordinal int, v T) error
}

// codec is the binary layout of one Go value type.
//
// write must check the buffer for the full encoded size before writing its
// first byte.
type codec[T any] interface {
	size(v T) (int, error)
	write(v T, buf *buffer.Buffer) error
	read(buf *buffer.Buffer) (T, error)
}

// column implements Typed on top of a codec.
type column[T any] struct {
	dataType    types.DataType
	kind        Kind
	defaultSize int
	codec       codec[T]
}

var _ Typed[int32] = (*column[int32])(nil)

func newColumn[T any](dataType types.DataType, kind Kind, defaultSize int, c codec[T]) *column[T] {
	return &column[T]{
		dataType:    dataType,
		kind:        kind,
		defaultSize: defaultSize,
		codec:       c,
	}
}

func (c *column[T]) DataType() types.DataType {
	return c.dataType
}

func (c *column[T]) Kind() Kind {
	return c.kind
}

func (c *column[T]) DefaultSize() int {
	return c.defaultSize
}

func (c *column[T]) String() string {
	return fmt.Sprintf("%s(%s)", c.kind, c.dataType)
}

func (c *column[T]) Size(v T) (int, error) {
	return c.codec.size(v)
}

func (c *column[T]) Append(v T, buf *buffer.Buffer) error {
	if err := c.codec.write(v, buf); err != nil {
		return fmt.Errorf("append %s: %w", c.dataType, err)
	}

	return nil
}

func (c *column[T]) Extract(buf *buffer.Buffer) (T, error) {
	v, err := c.codec.read(buf)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("extract %s: %w", c.dataType, err)
	}

	return v, nil
}

func (c *column[T]) GetField(r row.Row, ordinal int) (T, error) {
	return row.GetAs[T](r, ordinal)
}

func (c *column[T]) SetField(r row.Row, ordinal int, v T) error {
	return row.SetAs(r, ordinal, v)
}

func (c *column[T]) ActualSize(r row.Row, ordinal int) (int, error) {
	v, err := c.GetField(r, ordinal)
	if err != nil {
		return 0, err
	}

	return c.codec.size(v)
}

func (c *column[T]) AppendValue(v any, buf *buffer.Buffer) error {
	if v == nil {
		return fmt.Errorf("append %s: %w", c.dataType, errs.ErrNullValue)
	}

	typed, ok := v.(T)
	if !ok {
		var zero T
		return fmt.Errorf("append %s: %w: got %T, want %T", c.dataType, errs.ErrTypeMismatch, v, zero)
	}

	return c.Append(typed, buf)
}

func (c *column[T]) ExtractValue(buf *buffer.Buffer) (any, error) {
	v, err := c.Extract(buf)
	if err != nil {
		return nil, err
	}

	return v, nil
}

func (c *column[T]) AppendFrom(r row.Row, ordinal int, buf *buffer.Buffer) error {
	v, err := c.GetField(r, ordinal)
	if err != nil {
		return err
	}

	return c.Append(v, buf)
}

func (c *column[T]) ExtractTo(buf *buffer.Buffer, r row.Row, ordinal int) error {
	v, err := c.Extract(buf)
	if err != nil {
		return err
	}

	return c.SetField(r, ordinal, v)
}
