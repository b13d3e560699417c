package columntype

import (
	"fmt"
	"math"
	"time"

	"github.com/arloliu/colcache/buffer"
	"github.com/arloliu/colcache/errs"
	"github.com/arloliu/colcache/types"
)

// Fixed sizes in bytes of the native column types.
const (
	BooleanSize   = 1
	ByteSize      = 1
	ShortSize     = 2
	IntSize       = 4
	LongSize      = 8
	FloatSize     = 4
	DoubleSize    = 8
	DateSize      = 4
	TimestampSize = 8
	DecimalSize   = 8
)

// fixed is a codec whose values always occupy width bytes.
type fixed[T any] struct {
	width int
	put   func(buf *buffer.Buffer, v T) error
	get   func(buf *buffer.Buffer) (T, error)
}

func (f fixed[T]) size(T) (int, error) {
	return f.width, nil
}

func (f fixed[T]) write(v T, buf *buffer.Buffer) error {
	return f.put(buf, v)
}

func (f fixed[T]) read(buf *buffer.Buffer) (T, error) {
	return f.get(buf)
}

func newNative[T any](dataType types.DataType, width int, put func(*buffer.Buffer, T) error, get func(*buffer.Buffer) (T, error)) Typed[T] {
	return newColumn[T](dataType, KindNative, width, fixed[T]{width: width, put: put, get: get})
}

// Native column types.
var (
	Boolean   = newNative(types.Boolean, BooleanSize, putBool, getBool)
	Byte      = newNative(types.Byte, ByteSize, putInt8, getInt8)
	Short     = newNative(types.Short, ShortSize, putInt16, getInt16)
	Int       = newNative(types.Integer, IntSize, putInt32, getInt32)
	Long      = newNative(types.Long, LongSize, putInt64, getInt64)
	Float     = newNative(types.Float, FloatSize, putFloat32, getFloat32)
	Double    = newNative(types.Double, DoubleSize, putFloat64, getFloat64)
	Date      = newNative(types.Date, DateSize, putDate, getDate)
	Timestamp = newNative(types.Timestamp, TimestampSize, putTimestamp, getTimestamp)
)

func putBool(buf *buffer.Buffer, v bool) error {
	var b uint8
	if v {
		b = 1
	}

	return buf.PutUint8(b)
}

func getBool(buf *buffer.Buffer) (bool, error) {
	b, err := buf.Uint8()
	if err != nil {
		return false, err
	}

	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: boolean byte 0x%02x", errs.ErrCorruptPayload, b)
	}
}

func putInt8(buf *buffer.Buffer, v int8) error {
	return buf.PutUint8(uint8(v)) //nolint:gosec
}

func getInt8(buf *buffer.Buffer) (int8, error) {
	v, err := buf.Uint8()
	return int8(v), err //nolint:gosec
}

func putInt16(buf *buffer.Buffer, v int16) error {
	return buf.PutUint16(uint16(v)) //nolint:gosec
}

func getInt16(buf *buffer.Buffer) (int16, error) {
	v, err := buf.Uint16()
	return int16(v), err //nolint:gosec
}

func putInt32(buf *buffer.Buffer, v int32) error {
	return buf.PutUint32(uint32(v)) //nolint:gosec
}

func getInt32(buf *buffer.Buffer) (int32, error) {
	v, err := buf.Uint32()
	return int32(v), err //nolint:gosec
}

func putInt64(buf *buffer.Buffer, v int64) error {
	return buf.PutUint64(uint64(v)) //nolint:gosec
}

func getInt64(buf *buffer.Buffer) (int64, error) {
	v, err := buf.Uint64()
	return int64(v), err //nolint:gosec
}

func putFloat32(buf *buffer.Buffer, v float32) error {
	return buf.PutUint32(math.Float32bits(v))
}

func getFloat32(buf *buffer.Buffer) (float32, error) {
	v, err := buf.Uint32()
	return math.Float32frombits(v), err
}

func putFloat64(buf *buffer.Buffer, v float64) error {
	return buf.PutUint64(math.Float64bits(v))
}

func getFloat64(buf *buffer.Buffer) (float64, error) {
	v, err := buf.Uint64()
	return math.Float64frombits(v), err
}

func putDate(buf *buffer.Buffer, v types.DateValue) error {
	return putInt32(buf, int32(v))
}

func getDate(buf *buffer.Buffer) (types.DateValue, error) {
	v, err := getInt32(buf)
	return types.DateValue(v), err
}

// Timestamps are truncated to microseconds; decoded values are in UTC.
func putTimestamp(buf *buffer.Buffer, v time.Time) error {
	return putInt64(buf, v.UnixMicro())
}

func getTimestamp(buf *buffer.Buffer) (time.Time, error) {
	v, err := getInt64(buf)
	if err != nil {
		return time.Time{}, err
	}

	return time.UnixMicro(v).UTC(), nil
}
