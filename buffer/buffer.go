// Package buffer provides the cursor-based byte buffer that column codecs
// append to and extract from.
//
// A Buffer is a fixed region of bytes with a position and a limit:
//
//	0 <= position <= limit <= capacity
//
// Every Put and Get call checks the bytes it needs against the limit before
// touching the data, so a failed call leaves the buffer unchanged and reports
// errs.ErrBufferOverflow (writes) or errs.ErrBufferUnderflow (reads). The
// cursor only moves forward; Rewind, Flip, Reset and SetPosition are the only
// ways to move it back.
//
// A Buffer is not safe for concurrent use.
package buffer

import (
	"fmt"

	"github.com/arloliu/colcache/endian"
	"github.com/arloliu/colcache/errs"
)

// Buffer is a linear byte region with an advancing read/write cursor.
type Buffer struct {
	data   []byte // len(data) is the capacity
	pos    int
	limit  int
	engine endian.EndianEngine
}

// New creates an empty buffer able to hold capacity bytes.
//
// Parameters:
//   - capacity: Number of bytes the buffer can hold
//   - engine: Byte order for multi-byte values (little-endian if nil)
//
// Returns:
//   - *Buffer: Buffer with position 0 and limit equal to capacity
func New(capacity int, engine endian.EndianEngine) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	if engine == nil {
		engine = endian.GetLittleEndianEngine()
	}

	return &Buffer{
		data:   make([]byte, capacity),
		limit:  capacity,
		engine: engine,
	}
}

// Wrap creates a buffer over existing bytes, ready for reading from the start.
//
// The buffer shares data with the caller; writes through the buffer modify data.
func Wrap(data []byte, engine endian.EndianEngine) *Buffer {
	if engine == nil {
		engine = endian.GetLittleEndianEngine()
	}

	return &Buffer{
		data:   data,
		limit:  len(data),
		engine: engine,
	}
}

// Engine returns the byte order of the buffer.
func (b *Buffer) Engine() endian.EndianEngine {
	return b.engine
}

// Capacity returns the total number of bytes the buffer can hold.
func (b *Buffer) Capacity() int {
	return len(b.data)
}

// Position returns the cursor position.
func (b *Buffer) Position() int {
	return b.pos
}

// Limit returns the first index that must not be read or written.
func (b *Buffer) Limit() int {
	return b.limit
}

// Remaining returns the number of bytes between the cursor and the limit.
func (b *Buffer) Remaining() int {
	return b.limit - b.pos
}

// SetPosition moves the cursor to pos, which must lie in [0, Limit()].
func (b *Buffer) SetPosition(pos int) error {
	if pos < 0 || pos > b.limit {
		return fmt.Errorf("%w: %d outside [0, %d]", errs.ErrInvalidPosition, pos, b.limit)
	}
	b.pos = pos

	return nil
}

// Rewind moves the cursor back to 0, keeping the limit.
func (b *Buffer) Rewind() {
	b.pos = 0
}

// Flip switches from writing to reading: the limit becomes the current
// position and the cursor moves back to 0.
func (b *Buffer) Flip() {
	b.limit = b.pos
	b.pos = 0
}

// Reset clears the buffer for writing: position 0, limit equal to capacity.
// The bytes are not zeroed.
func (b *Buffer) Reset() {
	b.pos = 0
	b.limit = len(b.data)
}

// Bytes returns the bytes up to the limit. The slice aliases the buffer.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.limit]
}

// Written returns the bytes up to the cursor. The slice aliases the buffer.
func (b *Buffer) Written() []byte {
	return b.data[:b.pos]
}

// Grow ensures at least n bytes can be written after the cursor, reallocating
// the backing array if needed. It is only valid while the limit equals the
// capacity, i.e. in write mode; otherwise it returns errs.ErrBufferOverflow.
//
// Growth strategy:
//   - Small buffers (<64KiB) grow by DefaultSize
//   - Larger buffers grow by 25% of their capacity
//   - Growth is never less than the bytes requested
func (b *Buffer) Grow(n int) error {
	if b.Remaining() >= n {
		return nil
	}
	if b.limit != len(b.data) {
		return fmt.Errorf("%w: cannot grow a buffer in read mode", errs.ErrBufferOverflow)
	}

	growBy := DefaultSize
	if len(b.data) > 4*DefaultSize {
		growBy = len(b.data) / 4
	}
	if need := n - b.Remaining(); growBy < need {
		growBy = need
	}

	grown := make([]byte, len(b.data)+growBy)
	copy(grown, b.data[:b.pos])
	b.data = grown
	b.limit = len(grown)

	return nil
}

// Reserve checks that n more bytes fit before the limit, without writing.
func (b *Buffer) Reserve(n int) error {
	if n < 0 || b.limit-b.pos < n {
		return fmt.Errorf("%w: need %d bytes at position %d, limit %d", errs.ErrBufferOverflow, n, b.pos, b.limit)
	}

	return nil
}

func (b *Buffer) require(n int) error {
	if n < 0 || b.limit-b.pos < n {
		return fmt.Errorf("%w: need %d bytes at position %d, limit %d", errs.ErrBufferUnderflow, n, b.pos, b.limit)
	}

	return nil
}

// PutUint8 writes one byte.
func (b *Buffer) PutUint8(v uint8) error {
	if err := b.Reserve(1); err != nil {
		return err
	}
	b.data[b.pos] = v
	b.pos++

	return nil
}

// PutUint16 writes a 16-bit value in the buffer's byte order.
func (b *Buffer) PutUint16(v uint16) error {
	if err := b.Reserve(2); err != nil {
		return err
	}
	b.engine.PutUint16(b.data[b.pos:], v)
	b.pos += 2

	return nil
}

// PutUint32 writes a 32-bit value in the buffer's byte order.
func (b *Buffer) PutUint32(v uint32) error {
	if err := b.Reserve(4); err != nil {
		return err
	}
	b.engine.PutUint32(b.data[b.pos:], v)
	b.pos += 4

	return nil
}

// PutUint64 writes a 64-bit value in the buffer's byte order.
func (b *Buffer) PutUint64(v uint64) error {
	if err := b.Reserve(8); err != nil {
		return err
	}
	b.engine.PutUint64(b.data[b.pos:], v)
	b.pos += 8

	return nil
}

// PutBytes writes p verbatim.
func (b *Buffer) PutBytes(p []byte) error {
	if err := b.Reserve(len(p)); err != nil {
		return err
	}
	b.pos += copy(b.data[b.pos:], p)

	return nil
}

// PutString writes the bytes of s verbatim.
func (b *Buffer) PutString(s string) error {
	if err := b.Reserve(len(s)); err != nil {
		return err
	}
	b.pos += copy(b.data[b.pos:], s)

	return nil
}

// Uint8 reads one byte.
func (b *Buffer) Uint8() (uint8, error) {
	if err := b.require(1); err != nil {
		return 0, err
	}
	v := b.data[b.pos]
	b.pos++

	return v, nil
}

// Uint16 reads a 16-bit value in the buffer's byte order.
func (b *Buffer) Uint16() (uint16, error) {
	if err := b.require(2); err != nil {
		return 0, err
	}
	v := b.engine.Uint16(b.data[b.pos:])
	b.pos += 2

	return v, nil
}

// Uint32 reads a 32-bit value in the buffer's byte order.
func (b *Buffer) Uint32() (uint32, error) {
	if err := b.require(4); err != nil {
		return 0, err
	}
	v := b.engine.Uint32(b.data[b.pos:])
	b.pos += 4

	return v, nil
}

// Uint64 reads a 64-bit value in the buffer's byte order.
func (b *Buffer) Uint64() (uint64, error) {
	if err := b.require(8); err != nil {
		return 0, err
	}
	v := b.engine.Uint64(b.data[b.pos:])
	b.pos += 8

	return v, nil
}

// Next returns the next n bytes and advances the cursor past them.
// The returned slice aliases the buffer.
func (b *Buffer) Next(n int) ([]byte, error) {
	if err := b.require(n); err != nil {
		return nil, err
	}
	p := b.data[b.pos : b.pos+n : b.pos+n]
	b.pos += n

	return p, nil
}

// ReadBytes returns a copy of the next n bytes and advances the cursor past them.
func (b *Buffer) ReadBytes(n int) ([]byte, error) {
	p, err := b.Next(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, p)

	return out, nil
}
