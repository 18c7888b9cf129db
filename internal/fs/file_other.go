//go:build !unix

package fs

import (
	"os"
	"path/filepath"
)

func fixpath(name string) string {
	return filepath.Clean(name)
}

// Chmod changes the mode of the named file to mode.
func Chmod(name string, mode os.FileMode) error {
	return os.Chmod(fixpath(name), mode)
}

// IsNotSupported always returns false on this platform.
func IsNotSupported(_ error) bool {
	return false
}

// IsTransient always returns false on this platform.
func IsTransient(_ error) bool {
	return false
}
