package codec

import (
	"fmt"

	"github.com/ugsgame/Pak7z/internal/errors"
)

// Status is the result code of a compression call, numbered like the
// reference LZMA library.
type Status int

const (
	StatusOK        Status = 0
	StatusMem       Status = 2
	StatusParam     Status = 5
	StatusOutputEOF Status = 7
	StatusFail      Status = 11
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusMem:
		return "out of memory"
	case StatusParam:
		return "bad parameter"
	case StatusOutputEOF:
		return "output buffer too small"
	case StatusFail:
		return "encoder failure"
	}
	return fmt.Sprintf("status %d", int(s))
}

// ErrOutputOverflow is returned when the compressed stream does not fit into
// the reserved output capacity.
var ErrOutputOverflow = errors.New("compressed data exceeds output bound")

// Error is returned by Compress when the encoder reports a non-zero status.
type Error struct {
	Status Status
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("compress error %d (%v): %v", int(e.Status), e.Status, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
