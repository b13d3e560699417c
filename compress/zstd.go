package compress

// ZstdCompressor compresses chunks with Zstandard.
//
// The pure Go implementation from klauspost/compress is used by default;
// building with the cgo_zstd tag switches to the libzstd binding from
// valyala/gozstd. Both produce standard zstd frames and can read each other's
// output.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd codec with the default level.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
