package compress

import (
	"bytes"
	"encoding/binary"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/colcache/errs"
	"github.com/arloliu/colcache/format"
)

// longColumn returns n little-endian int64 values with a small stride, the
// layout of an encoded long column.
func longColumn(n int) []byte {
	data := make([]byte, 0, n*8)
	for i := range n {
		data = binary.LittleEndian.AppendUint64(data, uint64(1_700_000_000+i*10))
	}

	return data
}

// stringColumn returns n length-prefixed strings sharing a prefix.
func stringColumn(n int) []byte {
	var buf bytes.Buffer
	for i := range n {
		s := []byte("region-us-east-" + string(rune('a'+i%26)))
		buf.Write(binary.LittleEndian.AppendUint32(nil, uint32(len(s))))
		buf.Write(s)
	}

	return buf.Bytes()
}

func TestStats(t *testing.T) {
	s := Stats{Algorithm: format.CompressionZstd, OriginalSize: 1000, CompressedSize: 250}
	require.InDelta(t, 0.25, s.Ratio(), 1e-9)
	require.InDelta(t, 75.0, s.SpaceSavings(), 1e-9)

	empty := Stats{}
	require.Zero(t, empty.Ratio())
	require.Zero(t, empty.SpaceSavings())
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range format.CompressionTypes {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := CreateCodec(ct, "column")
			require.NoError(t, err)
			require.NotNil(t, codec)
		})
	}

	_, err := CreateCodec(format.CompressionType(0xEE), "column")
	require.ErrorContains(t, err, "invalid column compression")
}

func TestGetCodec(t *testing.T) {
	codec, err := GetCodec(format.CompressionLZ4)
	require.NoError(t, err)
	require.IsType(t, LZ4Compressor{}, codec)

	_, err = GetCodec(format.CompressionType(0))
	require.Error(t, err)
}

func TestCodecs_RoundTrip(t *testing.T) {
	inputs := map[string][]byte{
		"single byte":  {0x01},
		"long column":  longColumn(2048),
		"string chunk": stringColumn(500),
		"zeros":        make([]byte, 64*1024),
		"short text":   []byte("hello"),
	}

	for _, ct := range format.CompressionTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		for name, input := range inputs {
			t.Run(ct.String()+"/"+name, func(t *testing.T) {
				original := bytes.Clone(input)

				compressed, err := codec.Compress(input)
				require.NoError(t, err)
				require.Equal(t, original, input, "input must not be modified")

				restored, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.Equal(t, original, restored)
			})
		}
	}
}

func TestCodecs_Empty(t *testing.T) {
	for _, ct := range format.CompressionTypes {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Empty(t, compressed)

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, restored)
		})
	}
}

func TestCodecs_ShrinkRepetitiveChunks(t *testing.T) {
	data := longColumn(4096)
	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(data)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(data))
		})
	}
}

func TestCodecs_InvalidData(t *testing.T) {
	garbage := []byte{0xFF, 0xFE, 0xFD, 0xFC, 0xFB, 0xFA, 0x00, 0x01}
	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			_, err = codec.Decompress(garbage)
			require.Error(t, err)
		})
	}
}

func TestS2_RejectsOversizedHeader(t *testing.T) {
	tests := []struct {
		name string
		size uint64
	}{
		{"just above limit", MaxChunkSize + 1},
		{"four gigabytes", 1<<32 - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := binary.AppendUvarint(nil, tt.size)
			block = append(block, 0x00, 0x01, 0x02)

			_, err := NewS2Compressor().Decompress(block)
			require.ErrorIs(t, err, errs.ErrCorruptPayload)
		})
	}
}

func TestS2_DecodesChunkAtHeaderSize(t *testing.T) {
	data := stringColumn(512)
	codec := NewS2Compressor()

	compressed, err := codec.Compress(data)
	require.NoError(t, err)

	restored, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, data, restored)
	require.Len(t, restored, len(data))

	_, err = codec.Decompress(compressed[:len(compressed)-1])
	require.ErrorIs(t, err, errs.ErrCorruptPayload)
}

func TestLZ4_Incompressible(t *testing.T) {
	data := make([]byte, 300)
	for i := range data {
		data[i] = byte(i*131 + i*i*7)
	}

	codec := NewLZ4Compressor()
	compressed, err := codec.Compress(data)
	require.NoError(t, err)

	restored, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, data, restored)
}

func TestLiteralBlock(t *testing.T) {
	for _, n := range []int{1, 14, 15, 16, 269, 270, 1000} {
		data := bytes.Repeat([]byte{0xAB}, n)
		block := literalBlock(data)

		restored, err := NewLZ4Compressor().Decompress(block)
		require.NoError(t, err, "n=%d", n)
		require.Equal(t, data, restored, "n=%d", n)
	}
}

func TestCodecs_ConcurrentUsage(t *testing.T) {
	data := stringColumn(256)
	for _, ct := range format.CompressionTypes {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			var wg sync.WaitGroup
			errCh := make(chan error, 16)
			for range 16 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for range 20 {
						compressed, err := codec.Compress(data)
						if err != nil {
							errCh <- err
							return
						}
						restored, err := codec.Decompress(compressed)
						if err != nil {
							errCh <- err
							return
						}
						if !bytes.Equal(data, restored) {
							errCh <- errors.New("round-trip mismatch")
							return
						}
					}
				}()
			}
			wg.Wait()
			close(errCh)

			for err := range errCh {
				require.NoError(t, err)
			}
		})
	}
}
