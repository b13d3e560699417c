package columnar

import (
	"slices"

	"github.com/arloliu/colcache/columntype"
	"github.com/arloliu/colcache/endian"
	"github.com/arloliu/colcache/format"
	"github.com/arloliu/colcache/internal/hash"
)

// ColumnChunk is the stored form of one column of a batch.
type ColumnChunk struct {
	// Field is the schema field the chunk belongs to.
	Field Field
	// Compression is the codec Data was compressed with.
	Compression format.CompressionType
	// Checksum is the xxHash64 of Data.
	Checksum uint64
	// NullPositions lists, in ascending order, the rows whose field was null.
	NullPositions []int
	// Data is the compressed value stream. Null rows have no bytes in it.
	Data []byte
	// RawSize is the length of the value stream before compression.
	RawSize int

	columnType columntype.ColumnType
}

// ColumnType returns the column type the chunk was encoded with.
func (c *ColumnChunk) ColumnType() columntype.ColumnType {
	return c.columnType
}

// NullCount returns the number of null rows in the chunk.
func (c *ColumnChunk) NullCount() int {
	return len(c.NullPositions)
}

// IsNull reports whether the field at row is null.
func (c *ColumnChunk) IsNull(row int) bool {
	_, found := slices.BinarySearch(c.NullPositions, row)
	return found
}

// Batch is an immutable set of rows stored as compressed column chunks.
type Batch struct {
	schema  *Schema
	numRows int
	engine  endian.EndianEngine
	chunks  []ColumnChunk
}

// Schema returns the schema of the batch.
func (b *Batch) Schema() *Schema {
	return b.schema
}

// NumRows returns the number of rows in the batch.
func (b *Batch) NumRows() int {
	return b.numRows
}

// NumColumns returns the number of column chunks, one per schema field.
func (b *Batch) NumColumns() int {
	return len(b.chunks)
}

// ByteOrder returns the byte order the column buffers were encoded with.
func (b *Batch) ByteOrder() endian.EndianEngine {
	return b.engine
}

// Chunk returns the chunk of column i. The chunk shares its slices with the
// batch and must not be modified.
func (b *Batch) Chunk(i int) *ColumnChunk {
	return &b.chunks[i]
}

// SizeInBytes returns the memory held by the stored chunks: the compressed
// data plus the null position lists.
func (b *Batch) SizeInBytes() int64 {
	var size int64
	for i := range b.chunks {
		size += int64(len(b.chunks[i].Data))
		size += int64(len(b.chunks[i].NullPositions)) * 8
	}

	return size
}

// RawSizeInBytes returns the total size of the value streams before
// compression.
func (b *Batch) RawSizeInBytes() int64 {
	var size int64
	for i := range b.chunks {
		size += int64(b.chunks[i].RawSize)
	}

	return size
}

// Checksum returns the xxHash64 over the data of every chunk in column order.
func (b *Batch) Checksum() uint64 {
	parts := make([][]byte, len(b.chunks))
	for i := range b.chunks {
		parts[i] = b.chunks[i].Data
	}

	return hash.Checksums(parts...)
}
