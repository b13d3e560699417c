package columntype

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/colcache/row"
	"github.com/arloliu/colcache/serde"
)

// point is a user class used to exercise the generic column type.
type point struct {
	X int64
	Y int64
}

func encodePoint(p point) ([]byte, error) {
	out := binary.AppendVarint(nil, p.X)
	return binary.AppendVarint(out, p.Y), nil
}

func decodePoint(b []byte) (point, error) {
	x, n := binary.Varint(b)
	if n <= 0 {
		return point{}, errors.New("bad x")
	}
	y, m := binary.Varint(b[n:])
	if m <= 0 || n+m != len(b) {
		return point{}, errors.New("bad y")
	}

	return point{X: x, Y: y}, nil
}

func newTestRegistry(tb testing.TB) *serde.Registry {
	tb.Helper()

	reg := serde.NewRegistry()
	require.NoError(tb, serde.Register[map[int]string](reg))
	require.NoError(tb, serde.Register[point](reg))

	return reg
}

func rowOf(values ...any) *row.Generic {
	return row.Of(values...)
}
