package serde

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"time"

	"github.com/arloliu/colcache/errs"
	"github.com/arloliu/colcache/types"
)

// Serializer ids from ReservedIDStart up are used by builtin serializers.
const (
	ReservedIDStart uint16 = 0xFF00
	timeID          uint16 = 0xFF01
)

// builtinSamples lists the types NewRegistry registers for the reflective path.
func builtinSamples() []any {
	return []any{
		false, int(0), int8(0), int16(0), int32(0), int64(0),
		uint(0), uint8(0), uint16(0), uint32(0), uint64(0),
		float32(0), float64(0), "", []byte(nil),
		[]string(nil), []int64(nil), []float64(nil),
		map[string]string(nil), map[string]int64(nil),
		time.Duration(0), (*big.Int)(nil),
		types.Decimal{}, types.DateValue(0),
	}
}

// encodeTime writes the instant and its location:
// [varint unix seconds][uvarint nanoseconds][varint zone offset][location name].
func encodeTime(t time.Time) ([]byte, error) {
	name := t.Location().String()
	_, offset := t.Zone()

	out := make([]byte, 0, 3*binary.MaxVarintLen64+len(name))
	out = binary.AppendVarint(out, t.Unix())
	out = binary.AppendUvarint(out, uint64(t.Nanosecond()))
	out = binary.AppendVarint(out, int64(offset))

	return append(out, name...), nil
}

func decodeTime(b []byte) (time.Time, error) {
	sec, n := binary.Varint(b)
	if n <= 0 {
		return time.Time{}, fmt.Errorf("%w: time seconds", errs.ErrCorruptPayload)
	}
	b = b[n:]

	nsec, n := binary.Uvarint(b)
	if n <= 0 || nsec >= uint64(time.Second) {
		return time.Time{}, fmt.Errorf("%w: time nanoseconds", errs.ErrCorruptPayload)
	}
	b = b[n:]

	offset, n := binary.Varint(b)
	if n <= 0 {
		return time.Time{}, fmt.Errorf("%w: time zone offset", errs.ErrCorruptPayload)
	}
	name := string(b[n:])

	t := time.Unix(sec, int64(nsec)) //nolint:gosec

	return t.In(location(name, int(offset), t)), nil
}

// location resolves a location name back to a location with the same offset at t.
func location(name string, offset int, t time.Time) *time.Location {
	switch name {
	case "UTC":
		return time.UTC
	case "Local":
		return time.Local
	}

	if loc, err := time.LoadLocation(name); err == nil {
		if _, off := t.In(loc).Zone(); off == offset {
			return loc
		}
	}

	return time.FixedZone(name, offset)
}
