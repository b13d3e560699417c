package columnar

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/arloliu/colcache/buffer"
	"github.com/arloliu/colcache/columntype"
	"github.com/arloliu/colcache/compress"
	"github.com/arloliu/colcache/errs"
	"github.com/arloliu/colcache/internal/hash"
	"github.com/arloliu/colcache/internal/options"
	"github.com/arloliu/colcache/row"
)

// BatchBuilder accumulates rows into per-column buffers.
//
// A BatchBuilder is not safe for concurrent use.
type BatchBuilder struct {
	config  *BuilderConfig
	schema  *Schema
	codec   compress.Codec
	columns []columntype.ColumnType
	buffers []*buffer.Buffer
	nulls   [][]int
	marks   []int // buffer positions at the start of the current row
	rows    int
}

// NewBatchBuilder creates a builder for rows matching schema.
//
// The column type of every field is resolved once, here, so a descriptor
// that no column type can serve fails before any row is appended.
//
// Parameters:
//   - schema: Fields of the rows to append
//   - opts: Optional configuration (compression, byte order, resolver, logger)
//
// Returns:
//   - *BatchBuilder: Empty builder
//   - error: Invalid option or unresolvable field type
func NewBatchBuilder(schema *Schema, opts ...BuilderOption) (*BatchBuilder, error) {
	if schema == nil {
		return nil, fmt.Errorf("%w: nil schema", errs.ErrSchemaMismatch)
	}

	cfg := newBuilderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(cfg.compression, "column")
	if err != nil {
		return nil, err
	}

	resolver, err := cfg.columnResolver()
	if err != nil {
		return nil, err
	}

	b := &BatchBuilder{
		config:  cfg,
		schema:  schema,
		codec:   codec,
		columns: make([]columntype.ColumnType, schema.Len()),
		buffers: make([]*buffer.Buffer, schema.Len()),
		nulls:   make([][]int, schema.Len()),
		marks:   make([]int, schema.Len()),
	}
	for i, f := range schema.fields {
		ct, err := resolver.Resolve(f.DataType)
		if err != nil {
			b.Release()
			return nil, fmt.Errorf("column %q: %w", f.Name, err)
		}
		b.columns[i] = ct
		b.buffers[i] = buffer.Get(ct.DefaultSize()*cfg.initialRows, cfg.engine)
	}

	return b, nil
}

// Schema returns the schema of the builder.
func (b *BatchBuilder) Schema() *Schema {
	return b.schema
}

// NumRows returns the number of rows appended since the last Build.
func (b *BatchBuilder) NumRows() int {
	return b.rows
}

// AppendRow appends every field of r to its column.
//
// Each value is sized with ActualSize and the column buffer is grown before
// the value is written. If any field fails, every column is rolled back to
// its state before the call and the row is not added.
func (b *BatchBuilder) AppendRow(r row.Row) error {
	if r == nil {
		return fmt.Errorf("%w: nil row", errs.ErrSchemaMismatch)
	}
	if r.NumFields() != b.schema.Len() {
		return fmt.Errorf("%w: row has %d fields, schema has %d", errs.ErrSchemaMismatch, r.NumFields(), b.schema.Len())
	}
	if b.buffers == nil {
		return fmt.Errorf("%w: builder released", errs.ErrSchemaMismatch)
	}

	for i, buf := range b.buffers {
		b.marks[i] = buf.Position()
	}

	for i, ct := range b.columns {
		if r.IsNullAt(i) {
			b.nulls[i] = append(b.nulls[i], b.rows)
			continue
		}

		if err := b.appendField(ct, r, i); err != nil {
			b.rollback(i)
			return fmt.Errorf("column %q row %d: %w", b.schema.fields[i].Name, b.rows, err)
		}
	}
	b.rows++

	return nil
}

func (b *BatchBuilder) appendField(ct columntype.ColumnType, r row.Row, ordinal int) error {
	size, err := ct.ActualSize(r, ordinal)
	if err != nil {
		return err
	}

	buf := b.buffers[ordinal]
	if err := buf.Grow(size); err != nil {
		return err
	}

	return ct.AppendFrom(r, ordinal, buf)
}

// rollback restores columns [0, failed] to the marks taken by AppendRow.
func (b *BatchBuilder) rollback(failed int) {
	for i := 0; i <= failed; i++ {
		_ = b.buffers[i].SetPosition(b.marks[i])
		if n := len(b.nulls[i]); n > 0 && b.nulls[i][n-1] == b.rows {
			b.nulls[i] = b.nulls[i][:n-1]
		}
	}
}

// Build compresses the accumulated columns into a batch and resets the
// builder, so the next AppendRow starts a new batch.
//
// Returns:
//   - *Batch: Batch owning its chunk data
//   - error: Compression failure
func (b *BatchBuilder) Build() (*Batch, error) {
	if b.buffers == nil {
		return nil, fmt.Errorf("%w: builder released", errs.ErrSchemaMismatch)
	}

	batch := &Batch{
		schema:  b.schema,
		numRows: b.rows,
		engine:  b.config.engine,
		chunks:  make([]ColumnChunk, len(b.columns)),
	}

	for i, ct := range b.columns {
		field := b.schema.fields[i]
		raw := b.buffers[i].Written()

		data, err := b.codec.Compress(raw)
		if err != nil {
			return nil, fmt.Errorf("compress column %q: %w", field.Name, err)
		}
		if len(data) > 0 && &data[0] == &raw[0] {
			// codec returned the buffer itself
			data = slices.Clone(data)
		}

		batch.chunks[i] = ColumnChunk{
			Field:         field,
			Compression:   b.config.compression,
			Checksum:      hash.Checksum(data),
			NullPositions: slices.Clone(b.nulls[i]),
			Data:          data,
			RawSize:       len(raw),
			columnType:    ct,
		}

		stats := compress.Stats{
			Algorithm:      b.config.compression,
			OriginalSize:   int64(len(raw)),
			CompressedSize: int64(len(data)),
		}
		b.config.logger.Debug("built column chunk",
			zap.String("column", field.Name),
			zap.Stringer("data_type", field.DataType),
			zap.Stringer("compression", stats.Algorithm),
			zap.Int("raw_size", len(raw)),
			zap.Int("stored_size", len(data)),
			zap.Float64("ratio", stats.Ratio()),
			zap.Int("nulls", len(b.nulls[i])),
		)
	}

	b.config.logger.Debug("built batch",
		zap.Int("rows", batch.numRows),
		zap.Int("columns", len(batch.chunks)),
		zap.Int64("raw_size", batch.RawSizeInBytes()),
		zap.Int64("stored_size", batch.SizeInBytes()),
	)

	b.Reset()

	return batch, nil
}

// Reset discards the accumulated rows and keeps the column buffers.
func (b *BatchBuilder) Reset() {
	for i, buf := range b.buffers {
		buf.Reset()
		b.nulls[i] = b.nulls[i][:0]
	}
	b.rows = 0
}

// Release returns the column buffers to the buffer pool. The builder must not
// be used afterwards, except that Release may be called again.
func (b *BatchBuilder) Release() {
	for _, buf := range b.buffers {
		buffer.Put(buf)
	}
	b.buffers = nil
	b.rows = 0
}
