// Package buffer provides a growable byte buffer used by the encoder's
// output path, and a pool for reusing buffers across Encoder instances.
package buffer

import "sync"

// Default and threshold sizes for pooled buffers, sized for general-purpose
// value trees rather than any fixed payload shape.
const (
	DefaultSize   = 1024 * 4   // 4KiB
	MaxThreshold  = 1024 * 256 // 256KiB, buffers larger than this are discarded rather than pooled
	growThreshold = 4 * DefaultSize
)

// Buffer is a growable []byte wrapper that never shrinks during a single
// encode pass. An Encoder keeps its Buffer across pack() calls (Reset
// retains the capacity); Pool recycles the scratch Buffers the encoder
// uses for Set payloads.
type Buffer struct {
	B []byte
}

// New creates a new Buffer with the given initial capacity.
func New(initialCapacity int) *Buffer {
	if initialCapacity < 0 {
		initialCapacity = 0
	}

	return &Buffer{B: make([]byte, 0, initialCapacity)}
}

// Bytes returns the underlying byte slice.
func (b *Buffer) Bytes() []byte {
	return b.B
}

// Len returns the current length of the buffer.
func (b *Buffer) Len() int {
	return len(b.B)
}

// Cap returns the current capacity of the buffer.
func (b *Buffer) Cap() int {
	return cap(b.B)
}

// Reset clears the buffer's length but retains its allocated capacity.
func (b *Buffer) Reset() {
	b.B = b.B[:0]
}

// Truncate sets the buffer's length back to n, discarding bytes written
// after offset n.
func (b *Buffer) Truncate(n int) {
	b.B = b.B[:n]
}

// Grow ensures the buffer can accept at least requiredBytes more bytes
// without reallocating.
//
// Growth strategy: small buffers grow by DefaultSize (4KiB) at a time to avoid
// frequent reallocation; past growThreshold, growth is 25% of current
// capacity to bound memory overhead on large payloads.
func (b *Buffer) Grow(requiredBytes int) {
	available := cap(b.B) - len(b.B)
	if available >= requiredBytes {
		return
	}

	growBy := DefaultSize
	if cap(b.B) > growThreshold {
		growBy = cap(b.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(b.B), len(b.B)+growBy)
	copy(newBuf, b.B)
	b.B = newBuf
}

// Extend extends the buffer's length by n bytes if capacity allows,
// returning false without mutating the buffer otherwise.
func (b *Buffer) Extend(n int) bool {
	curLen := len(b.B)
	if cap(b.B)-curLen < n {
		return false
	}
	b.B = b.B[:curLen+n]

	return true
}

// ExtendOrGrow extends the buffer by n bytes, growing the backing array
// first if necessary.
func (b *Buffer) ExtendOrGrow(n int) {
	if b.Extend(n) {
		return
	}

	start := len(b.B)
	b.Grow(n)
	b.B = b.B[:start+n]
}

// Append appends data to the buffer, growing it as needed, and returns the
// offset at which data begins.
func (b *Buffer) Append(data []byte) int {
	start := len(b.B)
	b.B = append(b.B, data...)

	return start
}

// AppendByte appends a single byte, growing the buffer as needed.
func (b *Buffer) AppendByte(c byte) {
	b.B = append(b.B, c)
}

// Pool pools Buffers to minimize allocations across successive pack() calls.
type Pool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewPool creates a Pool whose buffers default to defaultSize and are
// discarded (not retained) once they grow past maxThreshold.
func NewPool(defaultSize, maxThreshold int) *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any { return New(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a reset Buffer from the pool.
func (p *Pool) Get() *Buffer {
	buf, _ := p.pool.Get().(*Buffer)

	return buf
}

// Put returns buf to the pool, discarding it instead if it has grown
// beyond the pool's maxThreshold to avoid unbounded memory retention.
func (p *Pool) Put(buf *Buffer) {
	if buf == nil {
		return
	}

	if p.maxThreshold > 0 && cap(buf.B) > p.maxThreshold {
		return
	}

	buf.Reset()
	p.pool.Put(buf)
}

// Default is the package-level buffer pool used by codec.Encoder.
var Default = NewPool(DefaultSize, MaxThreshold)
