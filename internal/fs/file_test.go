package fs

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFull(t *testing.T) {
	name := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(name, []byte("12345"), 0600))

	f, err := Open(name)
	require.NoError(t, err)
	defer f.Close()

	buf := make([]byte, 5)
	n, err := ReadFull(f, buf)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "12345", string(buf))

	// nothing left: the file is shorter than requested
	n, err = ReadFull(f, buf)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestChmod(t *testing.T) {
	name := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(name, nil, 0644))
	require.NoError(t, Chmod(name, 0600))

	fi, err := Stat(name)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), fi.Mode().Perm())
}
