package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/colcache/errs"
)

// S2Compressor compresses chunks with S2, a faster Snappy extension.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates an S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses data as an S2 block.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decodes an S2 block.
//
// The decoded length stored in the block header is checked against
// MaxChunkSize before the output is allocated.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("%w: s2 header: %w", errs.ErrCorruptPayload, err)
	}
	if n > MaxChunkSize {
		return nil, fmt.Errorf("%w: s2 block claims %d bytes, limit %d", errs.ErrCorruptPayload, n, MaxChunkSize)
	}

	decoded, err := s2.Decode(make([]byte, n), data)
	if err != nil {
		return nil, fmt.Errorf("%w: s2: %w", errs.ErrCorruptPayload, err)
	}

	return decoded, nil
}
