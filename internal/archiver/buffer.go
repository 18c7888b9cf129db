package archiver

// Buffer holds the contents of one input file. Release must be called once
// the data has been copied into the payload.
type Buffer struct {
	Data []byte
	pool *BufferPool
}

// Release puts the buffer back into the pool it came from.
func (b *Buffer) Release() {
	pool := b.pool
	if pool == nil {
		return
	}
	b.pool = nil

	if cap(b.Data) > pool.maxSize {
		b.Data = nil
		return
	}

	select {
	case pool.ch <- &Buffer{Data: b.Data[:0], pool: pool}:
	default:
	}
	b.Data = nil
}

// BufferPool implements a limited set of reusable buffers.
type BufferPool struct {
	ch      chan *Buffer
	maxSize int
}

// NewBufferPool initializes a new buffer pool. The pool stores at most max
// items. Buffers larger than maxSize are dropped on release.
func NewBufferPool(max int, maxSize int) *BufferPool {
	b := &BufferPool{
		ch:      make(chan *Buffer, max),
		maxSize: maxSize,
	}
	return b
}

// Get returns a buffer with len(Data) == size, reusing a pooled one when it
// is large enough.
func (pool *BufferPool) Get(size int) *Buffer {
	select {
	case buf := <-pool.ch:
		if cap(buf.Data) >= size {
			buf.Data = buf.Data[:size]
			buf.pool = pool
			return buf
		}
		// keep the small buffer for the next caller
		select {
		case pool.ch <- buf:
		default:
		}
	default:
	}

	return &Buffer{
		Data: make([]byte, size),
		pool: pool,
	}
}
