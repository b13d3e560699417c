//go:build cgo_zstd

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"

	"github.com/arloliu/colcache/errs"
)

const zstdCgoLevel = 3

// Compress compresses data into one zstd frame using libzstd.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, zstdCgoLevel), nil
}

// Decompress decodes zstd frames using libzstd.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decompressed, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %w", errs.ErrCorruptPayload, err)
	}
	if len(decompressed) > MaxChunkSize {
		return nil, fmt.Errorf("%w: zstd frame decodes to %d bytes, limit %d", errs.ErrCorruptPayload, len(decompressed), MaxChunkSize)
	}

	return decompressed, nil
}
