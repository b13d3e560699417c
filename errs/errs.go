// Package errs defines the sentinel errors shared by the colcache packages.
//
// Errors returned by codecs, buffers, rows and the serialization registry wrap
// one of these sentinels, so callers can classify failures with errors.Is:
//
//	if errors.Is(err, errs.ErrBufferOverflow) {
//	    // grow the buffer and append again
//	}
package errs

import "errors"

// Boundary violations.
var (
	// ErrBufferOverflow is returned when a write would pass the buffer capacity.
	ErrBufferOverflow = errors.New("buffer overflow")
	// ErrBufferUnderflow is returned when a read would pass the buffer limit,
	// including a length prefix that declares more bytes than remain.
	ErrBufferUnderflow = errors.New("buffer underflow")
	// ErrInvalidPosition is returned when the cursor is moved outside [0, limit].
	ErrInvalidPosition = errors.New("invalid buffer position")
)

// Type errors.
var (
	// ErrTypeMismatch is returned when a value does not match the Go
	// representation expected by a column type.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrNullValue is returned when a codec is asked to encode a null field.
	ErrNullValue = errors.New("null value")
	// ErrFieldIndex is returned for a row ordinal outside [0, NumFields).
	ErrFieldIndex = errors.New("field index out of range")
	// ErrInvalidDataType is returned for malformed data type descriptors,
	// e.g. a decimal whose scale exceeds its precision.
	ErrInvalidDataType = errors.New("invalid data type")
)

// Dispatch errors.
var (
	// ErrDispatchMiss is returned when no column type can serve a descriptor.
	ErrDispatchMiss = errors.New("no column type for data type")
)

// Serialization errors.
var (
	// ErrUnregisteredType is returned when marshalling or unmarshalling a type
	// that is unknown to the serialization registry.
	ErrUnregisteredType = errors.New("unregistered type")
	// ErrCorruptPayload is returned when marshalled bytes cannot be decoded.
	ErrCorruptPayload = errors.New("corrupt payload")
	// ErrDuplicateSerializer is returned when a serializer id or type is registered twice.
	ErrDuplicateSerializer = errors.New("duplicate serializer")
	// ErrLateRegistration is returned when a serializer is registered for a type
	// that has already been marshalled or unmarshalled by the registry.
	ErrLateRegistration = errors.New("serializer registered after first use")
)

// Batch errors.
var (
	// ErrChecksumMismatch is returned when a column chunk fails checksum verification.
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrSchemaMismatch is returned when a row's arity does not match the batch schema.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrBatchExhausted is returned when reading past the last row of a batch.
	ErrBatchExhausted = errors.New("batch exhausted")
)
