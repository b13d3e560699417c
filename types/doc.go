// Package types defines the logical data types understood by the column codecs
// and the Go value representations that travel through them.
//
// DataType is a closed sum type: only the descriptors declared in this package
// implement it, so a type switch over DataType can be exhaustive. Each
// descriptor maps to exactly one Go value representation:
//
//	Boolean   -> bool
//	Byte      -> int8
//	Short     -> int16
//	Integer   -> int32
//	Long      -> int64
//	Float     -> float32
//	Double    -> float64
//	String    -> string
//	Binary    -> []byte
//	Date      -> types.DateValue (days since 1970-01-01)
//	Timestamp -> time.Time (microsecond precision)
//	Decimal   -> types.Decimal
//	Object, Array, Map -> any (encoded through the serialization registry)
//
// Descriptors are plain comparable values and may be used as map keys.
package types
