package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressionType_String(t *testing.T) {
	tests := []struct {
		c    CompressionType
		want string
	}{
		{CompressionNone, "None"},
		{CompressionZstd, "Zstd"},
		{CompressionS2, "S2"},
		{CompressionLZ4, "LZ4"},
		{CompressionType(0), "Unknown"},
		{CompressionType(0xFF), "Unknown"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, tt.c.String())
	}
}

func TestCompressionType_IsValid(t *testing.T) {
	for _, c := range CompressionTypes {
		require.True(t, c.IsValid(), c.String())
	}
	require.False(t, CompressionType(0).IsValid())
	require.False(t, CompressionType(5).IsValid())
}
