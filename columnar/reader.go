package columnar

import (
	"fmt"
	"iter"

	"go.uber.org/zap"

	"github.com/arloliu/colcache/buffer"
	"github.com/arloliu/colcache/compress"
	"github.com/arloliu/colcache/errs"
	"github.com/arloliu/colcache/internal/hash"
	"github.com/arloliu/colcache/internal/options"
	"github.com/arloliu/colcache/row"
)

type readerConfig struct {
	verify bool
	logger *zap.Logger
}

// ReaderOption is a functional option for configuring BatchReader.
type ReaderOption = options.Option[*readerConfig]

// WithoutChecksum skips checksum verification of the column chunks.
func WithoutChecksum() ReaderOption {
	return options.NoError(func(c *readerConfig) {
		c.verify = false
	})
}

// WithReaderLogger sets the logger used to report opened batches.
func WithReaderLogger(logger *zap.Logger) ReaderOption {
	return options.NoError(func(c *readerConfig) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// BatchReader extracts the rows of a batch.
//
// A BatchReader is not safe for concurrent use; open one reader per goroutine.
type BatchReader struct {
	batch   *Batch
	columns [][]byte // decompressed value streams
	buffers []*buffer.Buffer
	nullIdx []int // next unread entry of each column's NullPositions
	row     int
}

// NewBatchReader verifies and decompresses every chunk of batch.
//
// Returns errs.ErrChecksumMismatch if a chunk's data does not match its
// checksum, and errs.ErrCorruptPayload if a chunk does not decompress to its
// recorded raw size.
func NewBatchReader(batch *Batch, opts ...ReaderOption) (*BatchReader, error) {
	if batch == nil {
		return nil, fmt.Errorf("%w: nil batch", errs.ErrSchemaMismatch)
	}

	cfg := &readerConfig{verify: true, logger: zap.NewNop()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	r := &BatchReader{
		batch:   batch,
		columns: make([][]byte, len(batch.chunks)),
		buffers: make([]*buffer.Buffer, len(batch.chunks)),
		nullIdx: make([]int, len(batch.chunks)),
	}
	for i := range batch.chunks {
		raw, err := openChunk(&batch.chunks[i], cfg.verify)
		if err != nil {
			return nil, err
		}
		r.columns[i] = raw
		r.buffers[i] = buffer.Wrap(raw, batch.engine)
	}

	cfg.logger.Debug("opened batch",
		zap.Int("rows", batch.numRows),
		zap.Int("columns", len(batch.chunks)),
		zap.Bool("verified", cfg.verify),
	)

	return r, nil
}

func openChunk(chunk *ColumnChunk, verify bool) ([]byte, error) {
	name := chunk.Field.Name
	if verify {
		if sum := hash.Checksum(chunk.Data); sum != chunk.Checksum {
			return nil, fmt.Errorf("column %q: %w: got %016x, want %016x", name, errs.ErrChecksumMismatch, sum, chunk.Checksum)
		}
	}

	codec, err := compress.GetCodec(chunk.Compression)
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", name, err)
	}

	raw, err := codec.Decompress(chunk.Data)
	if err != nil {
		return nil, fmt.Errorf("column %q: %w: %w", name, errs.ErrCorruptPayload, err)
	}
	if len(raw) != chunk.RawSize {
		return nil, fmt.Errorf("column %q: %w: decompressed %d bytes, want %d", name, errs.ErrCorruptPayload, len(raw), chunk.RawSize)
	}

	return raw, nil
}

// Batch returns the batch being read.
func (r *BatchReader) Batch() *Batch {
	return r.batch
}

// Remaining returns the number of rows Next has not returned yet.
func (r *BatchReader) Remaining() int {
	return r.batch.numRows - r.row
}

// Next extracts the next row into dst. Null fields are set with SetNullAt.
//
// Returns errs.ErrBatchExhausted after the last row and errs.ErrSchemaMismatch
// if dst does not have one field per column.
func (r *BatchReader) Next(dst row.Row) error {
	if r.row >= r.batch.numRows {
		return errs.ErrBatchExhausted
	}
	if dst == nil || dst.NumFields() != len(r.buffers) {
		return fmt.Errorf("%w: destination row does not have %d fields", errs.ErrSchemaMismatch, len(r.buffers))
	}

	for i := range r.buffers {
		chunk := &r.batch.chunks[i]
		if nulls := chunk.NullPositions; r.nullIdx[i] < len(nulls) && nulls[r.nullIdx[i]] == r.row {
			r.nullIdx[i]++
			if err := dst.SetNullAt(i); err != nil {
				return err
			}

			continue
		}

		if err := chunk.columnType.ExtractTo(r.buffers[i], dst, i); err != nil {
			return fmt.Errorf("column %q row %d: %w", chunk.Field.Name, r.row, err)
		}
	}
	r.row++

	return nil
}

// Rows returns an iterator over the remaining rows. Each row is a new
// row.Generic. Iteration stops after the first error.
func (r *BatchReader) Rows() iter.Seq2[*row.Generic, error] {
	return func(yield func(*row.Generic, error) bool) {
		for r.Remaining() > 0 {
			dst := row.New(len(r.buffers))
			if err := r.Next(dst); err != nil {
				yield(nil, err)
				return
			}
			if !yield(dst, nil) {
				return
			}
		}
	}
}

// Column returns an iterator over every value of column i, independent of
// the Next cursor. Null rows yield a nil value. Iteration stops after the
// first error.
func (r *BatchReader) Column(i int) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		if i < 0 || i >= len(r.columns) {
			yield(nil, fmt.Errorf("%w: column %d of %d", errs.ErrFieldIndex, i, len(r.columns)))
			return
		}

		chunk := &r.batch.chunks[i]
		buf := buffer.Wrap(r.columns[i], r.batch.engine)
		nulls := chunk.NullPositions
		next := 0
		for rowIdx := range r.batch.numRows {
			if next < len(nulls) && nulls[next] == rowIdx {
				next++
				if !yield(nil, nil) {
					return
				}

				continue
			}

			v, err := chunk.columnType.ExtractValue(buf)
			if err != nil {
				yield(nil, fmt.Errorf("column %q row %d: %w", chunk.Field.Name, rowIdx, err))
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

// Rewind moves the Next cursor back to the first row.
func (r *BatchReader) Rewind() {
	for i, buf := range r.buffers {
		buf.Rewind()
		r.nullIdx[i] = 0
	}
	r.row = 0
}
