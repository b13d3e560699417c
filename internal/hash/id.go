// Package hash wraps xxHash64 for column chunk checksums and identifiers.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Checksum computes the xxHash64 of a byte slice.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Checksums computes the xxHash64 of the concatenation of parts without
// copying them into one slice.
func Checksums(parts ...[]byte) uint64 {
	d := xxhash.New()
	for _, p := range parts {
		_, _ = d.Write(p)
	}

	return d.Sum64()
}
