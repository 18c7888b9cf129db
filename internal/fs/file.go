// Package fs wraps the os functions pak7z uses to touch the file system.
package fs

import (
	"io"
	"os"
)

// Stat returns a FileInfo structure describing the named file.
// If there is an error, it will be of type *PathError.
func Stat(name string) (os.FileInfo, error) {
	return os.Stat(fixpath(name))
}

// Open opens a file for reading.
func Open(name string) (File, error) {
	return os.Open(fixpath(name))
}

// OpenFile is the generalized open call; most users will use Open
// or Create instead.  It opens the named file with specified flag
// (O_RDONLY etc.) and perm, (0666 etc.) if applicable.  If successful,
// methods on the returned File can be used for I/O.
// If there is an error, it will be of type *PathError.
func OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(fixpath(name), flag, perm)
}

// ReadFull reads exactly len(buf) bytes from f. A file that turns out to be
// shorter returns io.ErrUnexpectedEOF together with the bytes read.
func ReadFull(f File, buf []byte) (int, error) {
	n, err := io.ReadFull(f, buf)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return n, err
}
