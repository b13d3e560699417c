// Package columnar transposes rows into compressed per-column chunks and back.
//
// A BatchBuilder resolves one column type per schema field and appends each
// non-null field of every row to that column's buffer, so the values of a
// column are stored contiguously. Nulls are not encoded in the value stream;
// each column records the row positions that were null.
//
// Build compresses every column buffer with the configured codec and protects
// the stored bytes with an xxHash64 checksum:
//
//	schema, _ := columnar.NewSchema(
//	    columnar.Field{Name: "id", DataType: types.Long},
//	    columnar.Field{Name: "name", DataType: types.String},
//	)
//	builder, _ := columnar.NewBatchBuilder(schema,
//	    columnar.WithCompression(format.CompressionZstd),
//	)
//	defer builder.Release()
//
//	_ = builder.AppendRow(row.Of(int64(1), "alice"))
//	batch, _ := builder.Build()
//
// A BatchReader verifies and decompresses the chunks of a batch and extracts
// values either row by row with Next, or column by column with Column.
package columnar
