package fs

import (
	"io"
	"os"
)

// File is an open input file.
type File interface {
	io.Reader
	io.Closer

	Stat() (os.FileInfo, error)
	Name() string
}
