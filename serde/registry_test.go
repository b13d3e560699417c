package serde

import (
	"encoding/binary"
	"errors"
	"math/big"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/colcache/errs"
	"github.com/arloliu/colcache/types"
)

type point struct {
	X int32
	Y int32
}

func encodePoint(p point) ([]byte, error) {
	out := make([]byte, 8)
	binary.LittleEndian.PutUint32(out, uint32(p.X)) //nolint:gosec
	binary.LittleEndian.PutUint32(out[4:], uint32(p.Y)) //nolint:gosec

	return out, nil
}

func decodePoint(b []byte) (point, error) {
	if len(b) != 8 {
		return point{}, errors.New("point payload must be 8 bytes")
	}

	return point{
		X: int32(binary.LittleEndian.Uint32(b)),     //nolint:gosec
		Y: int32(binary.LittleEndian.Uint32(b[4:])), //nolint:gosec
	}, nil
}

func TestRegistry_ReflectiveRoundTrip(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, Register[map[int]string](reg))
	require.NoError(t, Register[point](reg))

	tests := []struct {
		name  string
		value any
	}{
		{name: "map", value: map[int]string{1: "a"}},
		{name: "struct", value: point{X: 3, Y: -4}},
		{name: "string", value: "hello"},
		{name: "int64", value: int64(-12)},
		{name: "bytes", value: []byte{0, 1, 2}},
		{name: "string slice", value: []string{"a", "b"}},
		{name: "date", value: types.DateValue(19000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := reg.Marshal(tt.value)
			require.NoError(t, err)
			require.Equal(t, byte(tagReflective), data[0])

			got, err := reg.Unmarshal(data)
			require.NoError(t, err)
			require.Equal(t, tt.value, got)
		})
	}
}

func TestRegistry_DecimalAndTime(t *testing.T) {
	reg := NewRegistry()

	dec, err := types.ParseDecimal("12345678901234567890.12", 22, 2)
	require.NoError(t, err)
	data, err := reg.Marshal(dec)
	require.NoError(t, err)
	got, err := reg.Unmarshal(data)
	require.NoError(t, err)
	require.True(t, dec.Equal(got.(types.Decimal)))

	ts := time.Date(2024, 5, 6, 7, 8, 9, 1000, time.UTC)
	data, err = reg.Marshal(ts)
	require.NoError(t, err)
	got, err = reg.Unmarshal(data)
	require.NoError(t, err)
	require.True(t, ts.Equal(got.(time.Time)))

	n := new(big.Int).Lsh(big.NewInt(1), 100)
	data, err = reg.Marshal(n)
	require.NoError(t, err)
	got, err = reg.Unmarshal(data)
	require.NoError(t, err)
	require.Zero(t, n.Cmp(got.(*big.Int)))
}

func TestRegistry_Nil(t *testing.T) {
	reg := NewRegistry()

	data, err := reg.Marshal(nil)
	require.NoError(t, err)
	require.Equal(t, []byte{tagNil}, data)

	got, err := reg.Unmarshal(data)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestRegistry_CustomSerializerShrinksPayload(t *testing.T) {
	reflective := NewRegistry()
	require.NoError(t, Register[point](reflective))

	custom := NewRegistry()
	require.NoError(t, RegisterSerializer(custom, 100, encodePoint, decodePoint))

	p := point{X: 100, Y: 200}

	reflectiveBytes, err := reflective.Marshal(p)
	require.NoError(t, err)
	customBytes, err := custom.Marshal(p)
	require.NoError(t, err)

	require.Less(t, len(customBytes), len(reflectiveBytes))
	require.Len(t, customBytes, 1+2+8)
	require.Equal(t, byte(tagCustom), customBytes[0])

	for _, tc := range []struct {
		reg  *Registry
		data []byte
	}{{reflective, reflectiveBytes}, {custom, customBytes}} {
		got, err := tc.reg.Unmarshal(tc.data)
		require.NoError(t, err)
		require.Equal(t, p, got)
	}
}

func TestRegistry_Unregistered(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Marshal(point{})
	require.ErrorIs(t, err, errs.ErrUnregisteredType)

	other := NewRegistry()
	require.NoError(t, Register[point](other))
	data, err := other.Marshal(point{X: 1})
	require.NoError(t, err)

	_, err = reg.Unmarshal(data)
	require.ErrorIs(t, err, errs.ErrUnregisteredType)
}

func TestRegistry_UnsupportedKinds(t *testing.T) {
	reg := NewRegistry()

	require.ErrorIs(t, reg.RegisterType(make(chan int)), errs.ErrUnregisteredType)
	require.ErrorIs(t, reg.RegisterType(func() {}), errs.ErrUnregisteredType)
	require.ErrorIs(t, reg.RegisterType(nil), errs.ErrUnregisteredType)
}

func TestRegistry_CorruptPayload(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "unknown tag", data: []byte{0x7F}},
		{name: "nil with trailing bytes", data: []byte{tagNil, 1}},
		{name: "name length past end", data: []byte{tagReflective, 50, 'a'}},
		{name: "bad json", data: append([]byte{tagReflective, 6}, []byte("string{")...)},
		{name: "missing id", data: []byte{tagCustom, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Unmarshal(tt.data)
			require.ErrorIs(t, err, errs.ErrCorruptPayload)
		})
	}
}

func TestRegisterSerializer_LateRegistration(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, Register[point](reg))

	_, err := reg.Marshal(point{})
	require.NoError(t, err)

	err = RegisterSerializer(reg, 1, encodePoint, decodePoint)
	require.ErrorIs(t, err, errs.ErrLateRegistration)
}

func TestRegisterSerializer_Duplicates(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, RegisterSerializer(reg, 7, encodePoint, decodePoint))

	err := RegisterSerializer(reg, 7, func(s string) ([]byte, error) { return []byte(s), nil },
		func(b []byte) (string, error) { return string(b), nil })
	require.ErrorIs(t, err, errs.ErrDuplicateSerializer)

	err = RegisterSerializer(reg, 8, encodePoint, decodePoint)
	require.ErrorIs(t, err, errs.ErrDuplicateSerializer)
}

func TestRegisterSerializer_NilFuncs(t *testing.T) {
	reg := NewRegistry()

	err := RegisterSerializer[point](reg, 1, nil, decodePoint)
	require.ErrorIs(t, err, errs.ErrUnregisteredType)
}

func TestRegisterSerializer_ErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	reg := NewRegistry()
	require.NoError(t, RegisterSerializer(reg, 9,
		func(point) ([]byte, error) { return nil, boom },
		func([]byte) (point, error) { return point{}, boom }))

	_, err := reg.Marshal(point{})
	require.ErrorIs(t, err, boom)

	_, err = reg.Unmarshal([]byte{tagCustom, 9, 0})
	require.ErrorIs(t, err, boom)
}

func TestRegistry_IsRegistered(t *testing.T) {
	reg := NewEmptyRegistry()
	require.False(t, reg.IsRegistered(reflect.TypeFor[string]()))

	require.NoError(t, reg.RegisterType("x"))
	require.True(t, reg.IsRegistered(reflect.TypeFor[string]()))
	require.NoError(t, reg.RegisterType("again"), "registering twice is a no-op")
}

func TestDefault(t *testing.T) {
	require.Same(t, Default(), Default())
	require.True(t, Default().IsRegistered(reflect.TypeFor[map[string]string]()))
	require.True(t, Default().IsRegistered(reflect.TypeFor[time.Time]()))
}

func TestRegistry_Concurrent(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, Register[map[int]string](reg))

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 50 {
				v := map[int]string{i: "v", j: "w"}
				data, err := reg.Marshal(v)
				if err != nil {
					t.Error(err)
					return
				}
				got, err := reg.Unmarshal(data)
				if err != nil || !reflect.DeepEqual(v, got) {
					t.Errorf("round trip mismatch: %v != %v (%v)", v, got, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
