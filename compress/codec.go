package compress

import (
	"fmt"

	"github.com/arloliu/colcache/format"
)

// MaxChunkSize is the largest decompressed chunk any codec will produce.
// Payloads claiming more are rejected with errs.ErrCorruptPayload.
const MaxChunkSize = 128 << 20

// Compressor compresses an encoded column chunk.
type Compressor interface {
	// Compress returns the compressed form of data.
	//
	// The input slice is not modified. Unless documented otherwise the result
	// is newly allocated and owned by the caller.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a column chunk compressed by the matching Compressor.
type Decompressor interface {
	// Decompress returns the original bytes of data.
	//
	// Returns an error if data is corrupted or was produced by another algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of one compression algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// Stats describes the effect of compressing one column chunk.
type Stats struct {
	// Algorithm identifies the compression algorithm used.
	Algorithm format.CompressionType
	// OriginalSize is the encoded chunk size before compression.
	OriginalSize int64
	// CompressedSize is the chunk size after compression.
	CompressedSize int64
}

// Ratio returns CompressedSize / OriginalSize, or 0 for an empty chunk.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the saved space as a percentage of the original size.
func (s Stats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return (1.0 - s.Ratio()) * 100.0
}

// CreateCodec creates a new codec for compressionType.
//
// Parameters:
//   - compressionType: Compression algorithm
//   - target: Description of the data being compressed, used in error messages
//
// Returns:
//   - Codec: Codec for the algorithm
//   - error: Invalid compression type error
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the shared built-in codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
