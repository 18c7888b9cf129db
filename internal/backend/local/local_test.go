package local

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.pak")
	require.NoError(t, os.WriteFile(name, []byte("old contents that are longer"), 0600))

	f, err := Create(NewConfig(name))
	require.NoError(t, err)

	_, err = f.Write([]byte("new"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data), "file is truncated")
}

func TestCreateMissingDir(t *testing.T) {
	cfg := NewConfig(filepath.Join(t.TempDir(), "missing", "out.pak"))
	cfg.RetryInterval = 0

	_, err := Create(cfg)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCreateEmptyPath(t *testing.T) {
	_, err := Create(Config{})
	assert.Error(t, err)
}

func TestCreateMode(t *testing.T) {
	// t.TempDir is only accessible by the owner
	name := filepath.Join(t.TempDir(), "out.pak")
	require.NoError(t, os.WriteFile(name, nil, 0644))

	f, err := Create(NewConfig(name))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	fi, err := os.Stat(name)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), fi.Mode().Perm())
}
