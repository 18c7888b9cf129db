package archiver

// Payload is the concatenation of all entry contents, bounded by a fixed
// capacity.
type Payload struct {
	buf   []byte
	limit int
}

// NewPayload returns an empty payload which accepts at most limit bytes.
func NewPayload(limit int) *Payload {
	initial := limit
	if initial > 1<<20 {
		initial = 1 << 20
	}
	return &Payload{
		buf:   make([]byte, 0, initial),
		limit: limit,
	}
}

// Fits reports whether n more bytes can be appended.
func (p *Payload) Fits(n int64) bool {
	return n >= 0 && int64(len(p.buf))+n <= int64(p.limit)
}

// Append adds data for the entry name and returns its offset.
func (p *Payload) Append(name string, data []byte) (int, error) {
	if !p.Fits(int64(len(data))) {
		return 0, &CapacityError{Name: name, Size: int64(len(p.buf)) + int64(len(data)), Limit: p.limit}
	}

	off := len(p.buf)
	p.buf = append(p.buf, data...)
	return off, nil
}

// Len returns the number of bytes in the payload.
func (p *Payload) Len() int {
	return len(p.buf)
}

// Bytes returns the payload. The slice is valid until Release is called.
func (p *Payload) Bytes() []byte {
	return p.buf
}

// Release drops the payload buffer.
func (p *Payload) Release() {
	p.buf = nil
}
