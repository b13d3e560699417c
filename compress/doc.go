// Package compress provides the codecs applied to encoded column chunks.
//
// Column types lay values out contiguously, so a chunk of one column usually
// compresses well: fixed-width integers share their high bytes, and string
// columns repeat prefixes. Compression runs after encoding and before a chunk
// is cached; decompression runs before the chunk is scanned.
//
// Supported algorithms (see format.CompressionType):
//   - None: the encoded bytes are kept as they are
//   - Zstd: best ratio, moderate speed (klauspost/compress, or valyala/gozstd
//     when built with the cgo_zstd tag)
//   - S2: balanced ratio and speed (klauspost/compress/s2)
//   - LZ4: fastest decompression (pierrec/lz4 block format)
//
// Usage:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	compressed, err := codec.Compress(chunk)
//	...
//	chunk, err = codec.Decompress(compressed)
//
// All codecs returned by this package are safe for concurrent use.
package compress
