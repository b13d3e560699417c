package buffer

import (
	"sync"

	"github.com/arloliu/colcache/endian"
)

const (
	DefaultSize  = 1024 * 16   // 16KiB
	MaxThreshold = 1024 * 1024 // 1MiB
)

// Pool recycles buffers to reduce allocations when building column batches.
//
// Buffers whose capacity exceeds the pool's threshold are dropped on Put so
// one oversized column does not pin memory for the lifetime of the process.
type Pool struct {
	pool         sync.Pool
	defaultSize  int
	maxThreshold int
}

// NewPool creates a pool whose fresh buffers hold defaultSize bytes.
// A maxThreshold <= 0 disables the size check on Put.
func NewPool(defaultSize int, maxThreshold int) *Pool {
	p := &Pool{defaultSize: defaultSize, maxThreshold: maxThreshold}
	p.pool.New = func() any {
		return New(defaultSize, nil)
	}

	return p
}

// Get returns a reset buffer with at least minCapacity bytes and the given
// byte order (little-endian if nil).
func (p *Pool) Get(minCapacity int, engine endian.EndianEngine) *Buffer {
	b, _ := p.pool.Get().(*Buffer)
	if b == nil || b.Capacity() < minCapacity {
		b = New(max(minCapacity, p.defaultSize), engine)
	}

	b.Reset()
	if engine != nil {
		b.engine = engine
	} else {
		b.engine = endian.GetLittleEndianEngine()
	}

	return b
}

// Put returns b to the pool. The caller must not use b afterwards.
func (p *Pool) Put(b *Buffer) {
	if b == nil {
		return
	}
	if p.maxThreshold > 0 && b.Capacity() > p.maxThreshold {
		return
	}

	b.Reset()
	p.pool.Put(b)
}

var defaultPool = NewPool(DefaultSize, MaxThreshold)

// Get retrieves a buffer from the default pool.
func Get(minCapacity int, engine endian.EndianEngine) *Buffer {
	return defaultPool.Get(minCapacity, engine)
}

// Put returns a buffer to the default pool.
func Put(b *Buffer) {
	defaultPool.Put(b)
}
