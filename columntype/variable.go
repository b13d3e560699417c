package columntype

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/arloliu/colcache/buffer"
	"github.com/arloliu/colcache/errs"
	"github.com/arloliu/colcache/types"
)

const (
	// LengthPrefixSize is the size of the uint32 length that precedes every
	// variable-width payload.
	LengthPrefixSize = 4

	// StringDefaultSize is the buffer pre-sizing estimate for string values.
	StringDefaultSize = 8
	// BinaryDefaultSize is the buffer pre-sizing estimate for binary values.
	BinaryDefaultSize = 16

	// MaxPayloadLength is the largest payload a length prefix can describe.
	MaxPayloadLength = math.MaxUint32
)

// Variable-width column types.
var (
	String Typed[string] = newColumn[string](types.String, KindVariable, StringDefaultSize, stringCodec{})
	Binary Typed[[]byte] = newColumn[[]byte](types.Binary, KindVariable, BinaryDefaultSize, binaryCodec{})
)

type stringCodec struct{}

func (stringCodec) size(v string) (int, error) {
	if err := checkPayload(len(v)); err != nil {
		return 0, err
	}

	return LengthPrefixSize + len(v), nil
}

func (c stringCodec) write(v string, buf *buffer.Buffer) error {
	if !utf8.ValidString(v) {
		return fmt.Errorf("%w: string is not valid UTF-8", errs.ErrTypeMismatch)
	}

	n, err := c.size(v)
	if err != nil {
		return err
	}
	if err := buf.Reserve(n); err != nil {
		return err
	}
	if err := buf.PutUint32(uint32(len(v))); err != nil { //nolint:gosec
		return err
	}

	return buf.PutString(v)
}

func (stringCodec) read(buf *buffer.Buffer) (string, error) {
	payload, err := readPayload(buf)
	if err != nil {
		return "", err
	}

	return string(payload), nil
}

type binaryCodec struct{}

func (binaryCodec) size(v []byte) (int, error) {
	if err := checkPayload(len(v)); err != nil {
		return 0, err
	}

	return LengthPrefixSize + len(v), nil
}

func (binaryCodec) write(v []byte, buf *buffer.Buffer) error {
	return writeFramed(v, buf)
}

func (binaryCodec) read(buf *buffer.Buffer) ([]byte, error) {
	payload, err := readPayload(buf)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(payload))
	copy(out, payload)

	return out, nil
}

func checkPayload(n int) error {
	if uint64(n) > MaxPayloadLength {
		return fmt.Errorf("%w: payload of %d bytes exceeds length prefix range", errs.ErrTypeMismatch, n)
	}

	return nil
}

// writeFramed writes the length prefix followed by payload, checking the
// room for both before writing anything.
func writeFramed(payload []byte, buf *buffer.Buffer) error {
	if err := checkPayload(len(payload)); err != nil {
		return err
	}
	if err := buf.Reserve(LengthPrefixSize + len(payload)); err != nil {
		return err
	}
	if err := buf.PutUint32(uint32(len(payload))); err != nil { //nolint:gosec
		return err
	}

	return buf.PutBytes(payload)
}

// readPayload reads a length prefix and returns the payload it describes.
// The returned slice aliases the buffer.
func readPayload(buf *buffer.Buffer) ([]byte, error) {
	start := buf.Position()

	n, err := buf.Uint32()
	if err != nil {
		return nil, err
	}
	if uint64(n) > uint64(buf.Remaining()) {
		return nil, fmt.Errorf("%w: length prefix %d at position %d exceeds %d remaining bytes",
			errs.ErrBufferUnderflow, n, start, buf.Remaining())
	}

	return buf.Next(int(n))
}
