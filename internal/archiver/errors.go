package archiver

import (
	"fmt"

	"github.com/ugsgame/Pak7z/internal/errors"
)

var (
	// ErrCapacity is returned when the payload would exceed its capacity.
	ErrCapacity = errors.New("payload capacity exceeded")

	// ErrTooManyFiles is returned when the list names more files than an
	// archive can hold.
	ErrTooManyFiles = errors.New("too many files")

	// ErrSizeMismatch is reported when fewer bytes than expected reached the
	// output file.
	ErrSizeMismatch = errors.New("pack size mismatch")
)

// CapacityError describes the entry that did not fit into the payload.
type CapacityError struct {
	Name  string
	Size  int64 // payload size including the entry
	Limit int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%v: payload would grow to %d bytes, exceeds %d KiB", e.Name, e.Size, e.Limit/1024)
}

func (e *CapacityError) Unwrap() error {
	return ErrCapacity
}

// ReadError is reported when an input file is missing or cannot be read
// completely.
type ReadError struct {
	Name string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %v: %v", e.Name, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// SizeMismatchError is reported when the output does not have the expected
// size.
type SizeMismatchError struct {
	Expected, Written int64
	Err               error
}

func (e *SizeMismatchError) Error() string {
	msg := fmt.Sprintf("%v: expected %d bytes, wrote %d", ErrSizeMismatch, e.Expected, e.Written)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SizeMismatchError) Is(target error) bool {
	return target == ErrSizeMismatch
}

func (e *SizeMismatchError) Unwrap() error {
	return e.Err
}
