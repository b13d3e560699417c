// Package serde is the object serialization service behind the generic
// column type.
//
// A Registry turns arbitrary Go values into byte sequences and back. Each Go
// type must be known to the registry before it is marshalled, either through
// the reflective marshaller (Register, backed by goccy/go-json) or through a
// dedicated serializer (RegisterSerializer) that usually produces a much
// shorter payload:
//
//	reg := serde.NewRegistry()
//	_ = serde.Register[map[int]string](reg)
//	_ = serde.RegisterSerializer(reg, 100, encodePoint, decodePoint)
//
//	data, _ := reg.Marshal(map[int]string{1: "a"})
//	v, _ := reg.Unmarshal(data) // map[int]string{1: "a"}
//
// The reflective path only accepts types whose JSON form decodes back to an
// identical value: interface-typed elements, unexported or `json:"-"` fields,
// channels, functions and complex numbers are rejected with
// errs.ErrUnregisteredType. Such types need a dedicated serializer. Types
// implementing json or text (un)marshalling, like *big.Int, are accepted as is.
//
// NewRegistry pre-registers the scalar kinds, []byte, string/int64/float64
// slices and maps, time.Duration, *big.Int, types.Decimal and types.DateValue.
// time.Time uses a builtin dedicated serializer that keeps the instant and its
// location. Serializer ids from ReservedIDStart up belong to builtins.
//
// # Payload layout
//
// Marshalled values are only meant to live inside in-memory column buffers:
//
//	nil:        [0x00]
//	reflective: [0x01][uvarint name length][type name][JSON document]
//	custom:     [0x02][uint16 serializer id, little-endian][serializer payload]
//
// # Thread Safety
//
// A Registry is safe for concurrent use. Registrations of a type must happen
// before the first Marshal or Unmarshal of that type; dedicated serializers
// registered afterwards are rejected with errs.ErrLateRegistration.
package serde
