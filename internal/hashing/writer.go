package hashing

import (
	"hash"
	"io"
)

// Writer hashes all data passed through it and counts the bytes that were
// accepted by the underlying writer.
type Writer struct {
	w io.Writer
	h hash.Hash
	n int64
}

// NewWriter wraps the writer w and feeds all data written to the hash h.
func NewWriter(w io.Writer, h hash.Hash) *Writer {
	return &Writer{
		h: h,
		w: io.MultiWriter(w, h),
	}
}

// Write wraps the write method of the underlying writer.
func (h *Writer) Write(p []byte) (int, error) {
	n, err := h.w.Write(p)
	h.n += int64(n)
	return n, err
}

// Sum returns the hash of all data written so far.
func (h *Writer) Sum(d []byte) []byte {
	return h.h.Sum(d)
}

// Count returns the number of bytes written so far.
func (h *Writer) Count() int64 {
	return h.n
}
