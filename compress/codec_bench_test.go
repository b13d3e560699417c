package compress

import (
	"testing"

	"github.com/arloliu/colcache/format"
)

func BenchmarkCompress(b *testing.B) {
	data := longColumn(8192)
	for _, ct := range format.CompressionTypes {
		codec, _ := GetCodec(ct)
		b.Run(ct.String(), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for b.Loop() {
				_, _ = codec.Compress(data)
			}
		})
	}
}

func BenchmarkDecompress(b *testing.B) {
	data := longColumn(8192)
	for _, ct := range format.CompressionTypes {
		codec, _ := GetCodec(ct)
		compressed, _ := codec.Compress(data)
		b.Run(ct.String(), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for b.Loop() {
				_, _ = codec.Decompress(compressed)
			}
		})
	}
}
