// Package colcache encodes row-oriented records into compact per-column
// buffers for in-memory caching.
//
// Every logical data type maps to a column type that appends values to a
// buffer and extracts them back with an exact, reproducible byte layout:
//
//   - boolean, byte, short, int, long, float, double, date, timestamp:
//     fixed-width native codecs
//   - string, binary: 4-byte length prefix followed by the payload
//   - decimal(p,s) with p <= 18: unscaled value as an 8-byte long
//   - decimal(p,s) with p > 18, object, array, map: length-prefixed payload
//     produced by a serialization registry
//
// # Basic Usage
//
// Encoding a single value:
//
//	ct, _ := colcache.Resolve(types.Long)
//	buf := buffer.New(ct.DefaultSize(), nil)
//	_ = ct.AppendValue(int64(42), buf)
//
//	buf.Flip()
//	v, _ := ct.ExtractValue(buf) // int64(42)
//
// Caching a batch of rows:
//
//	schema, _ := colcache.NewSchema(
//	    columnar.Field{Name: "id", DataType: types.Long},
//	    columnar.Field{Name: "city", DataType: types.String},
//	)
//	builder, _ := colcache.NewDefaultBatchBuilder(schema)
//	defer builder.Release()
//
//	_ = builder.AppendRow(row.Of(int64(1), "Taipei"))
//	_ = builder.AppendRow(row.Of(int64(2), nil))
//	batch, _ := builder.Build()
//
//	reader, _ := colcache.NewBatchReader(batch)
//	for r, err := range reader.Rows() {
//	    ...
//	}
//
// # Custom Types
//
// Values of user types are encoded through a serde.Registry. Types are
// registered for the reflective JSON path with serde.Register, or given a
// dedicated binary serializer with serde.RegisterSerializer before they are
// first used:
//
//	reg := serde.NewRegistry()
//	_ = serde.RegisterSerializer(reg, 100, encodePoint, decodePoint)
//
//	builder, _ := colcache.NewBatchBuilder(schema, columnar.WithSerde(reg))
package colcache

import (
	"github.com/arloliu/colcache/columnar"
	"github.com/arloliu/colcache/columntype"
	"github.com/arloliu/colcache/format"
	"github.com/arloliu/colcache/types"
)

var defaultBuilderOptions = []columnar.BuilderOption{
	columnar.WithCompression(format.CompressionZstd),
	columnar.WithLittleEndian(),
}

// Resolve returns the column type for dt using the default resolver.
//
// The default resolver serializes generic values with serde.Default().
//
// Parameters:
//   - dt: Data type descriptor
//
// Returns:
//   - columntype.ColumnType: Shared, stateless column type
//   - error: errs.ErrDispatchMiss or errs.ErrInvalidDataType
func Resolve(dt types.DataType) (columntype.ColumnType, error) {
	return columntype.Resolve(dt)
}

// ResolveAs returns the typed column type for dt using the default resolver.
//
// Returns errs.ErrTypeMismatch if the column type does not hold values of T.
//
// Example:
//
//	longs, err := colcache.ResolveAs[int64](types.Long)
func ResolveAs[T any](dt types.DataType) (columntype.Typed[T], error) {
	return columntype.ResolveAs[T](columntype.DefaultResolver(), dt)
}

// NewSchema creates a batch schema from fields.
func NewSchema(fields ...columnar.Field) (*columnar.Schema, error) {
	return columnar.NewSchema(fields...)
}

// NewBatchBuilder creates a batch builder with the given options.
//
// Without options the builder keeps column chunks uncompressed, encodes them
// little-endian and resolves column types with the default resolver.
//
// Available options:
//   - columnar.WithCompression(format.CompressionNone|Zstd|S2|LZ4)
//   - columnar.WithLittleEndian() / columnar.WithBigEndian()
//   - columnar.WithResolver(resolver) / columnar.WithSerde(registry)
//   - columnar.WithInitialRows(n)
//   - columnar.WithLogger(logger)
func NewBatchBuilder(schema *columnar.Schema, opts ...columnar.BuilderOption) (*columnar.BatchBuilder, error) {
	return columnar.NewBatchBuilder(schema, opts...)
}

// NewDefaultBatchBuilder creates a batch builder with recommended settings:
//   - Zstd compression of every column chunk
//   - Little-endian byte order
//   - Default resolver backed by serde.Default()
func NewDefaultBatchBuilder(schema *columnar.Schema) (*columnar.BatchBuilder, error) {
	return columnar.NewBatchBuilder(schema, defaultBuilderOptions...)
}

// NewBatchReader verifies and decompresses batch for reading.
func NewBatchReader(batch *columnar.Batch, opts ...columnar.ReaderOption) (*columnar.BatchReader, error) {
	return columnar.NewBatchReader(batch, opts...)
}
