package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugsgame/Pak7z/internal/archiver"
	"github.com/ugsgame/Pak7z/internal/errors"
)

func TestParseSize(t *testing.T) {
	var tests = []struct {
		input string
		want  int64
	}{
		{"0", 0},
		{"1024", 1024},
		{"100b", 100},
		{"512K", 512 << 10},
		{"512k", 512 << 10},
		{"16M", 16 << 20},
		{" 2G ", 2 << 30},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got, err := parseSize(test.input)
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}

	for _, input := range []string{"", "M", "-1", "12x", "1.5M", "9999999999999999999G"} {
		_, err := parseSize(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestArchiverOptions(t *testing.T) {
	opts := PackOptions{Capacity: "1K", Estimator: "entropy", FormatVersion: 3, Root: "/data"}
	aopts, err := opts.archiverOptions()
	require.NoError(t, err)
	assert.Equal(t, 1024, aopts.Capacity)
	assert.Equal(t, "/data", aopts.Root)
	assert.Equal(t, uint8(3), aopts.FormatVersion)
	assert.NotNil(t, aopts.Estimator)

	for _, opts := range []PackOptions{
		{Capacity: "foo", Estimator: "none", FormatVersion: 3},
		{Capacity: "0", Estimator: "none", FormatVersion: 3},
		{Capacity: "4G", Estimator: "none", FormatVersion: 3},
		{Capacity: "1M", Estimator: "gzip", FormatVersion: 3},
		{Capacity: "1M", Estimator: "none", FormatVersion: 0},
	} {
		_, err := opts.archiverOptions()
		assert.True(t, errors.IsFatal(err), "options %+v: %v", opts, err)
	}
}

func writeList(t testing.TB, dir string, files map[string]string, list string) string {
	t.Helper()

	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0644))
	}

	fn := filepath.Join(dir, "list.txt")
	require.NoError(t, os.WriteFile(fn, []byte(list), 0644))
	return fn
}

func TestRunPack(t *testing.T) {
	dir := t.TempDir()
	list := writeList(t, dir, map[string]string{
		"a.txt": "0123456789",
		"b.txt": "hello",
	}, "a.txt\n#comment\n\nb.txt/3\n")
	output := filepath.Join(dir, "out.pak")

	opts := PackOptions{Capacity: "1M", Root: dir, Estimator: "entropy", FormatVersion: 3}
	var buf bytes.Buffer
	require.NoError(t, runPack(opts, output, list, &buf))

	fi, err := os.Stat(output)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "[1]: `a.txt' ...")
	assert.Contains(t, out, "[2]: `b.txt' ...")
	assert.Contains(t, out, "/3\n")
	assert.Contains(t, out, "Packed: `"+output+"'")
	assert.Contains(t, out, "Data:       15 ->")
	assert.Greater(t, fi.Size(), int64(12))
}

func TestRunPackErrors(t *testing.T) {
	dir := t.TempDir()
	opts := PackOptions{Capacity: "8", Root: dir, Estimator: "none", FormatVersion: 3}

	err := runPack(opts, filepath.Join(dir, "out.pak"), filepath.Join(dir, "missing.txt"), &bytes.Buffer{})
	require.True(t, errors.IsFatal(err), "wrong error %v", err)
	assert.Contains(t, err.Error(), "open list file")
	assert.Equal(t, 1, exitCode(err))

	list := writeList(t, dir, map[string]string{"big.bin": "0123456789"}, "big.bin\n")
	err = runPack(opts, filepath.Join(dir, "out.pak"), list, &bytes.Buffer{})
	require.True(t, errors.IsFatal(err), "wrong error %v", err)
	assert.Equal(t, 1, exitCode(err))
	_, err = os.Stat(filepath.Join(dir, "out.pak"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunPackBestEffort(t *testing.T) {
	dir := t.TempDir()
	list := writeList(t, dir, map[string]string{"a.txt": "aaa"}, "a.txt\nmissing.txt\n")
	output := filepath.Join(dir, "out.pak")

	opts := PackOptions{Capacity: "1M", Root: dir, Estimator: "none", FormatVersion: 3, Quiet: true}
	err := runPack(opts, output, list, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))

	opts.BestEffort = true
	var buf bytes.Buffer
	err = runPack(opts, output, list, &buf)
	require.True(t, errors.Is(err, ErrIncomplete), "wrong error %v", err)
	assert.Equal(t, 3, exitCode(err))
	assert.Empty(t, buf.String())

	_, err = os.Stat(output)
	assert.NoError(t, err)
}

func TestRunPackCollision(t *testing.T) {
	dir := t.TempDir()
	list := writeList(t, dir, map[string]string{
		"c042038.dat": "x",
		"c068179.dat": "y",
	}, "c042038.dat\nc068179.dat\n")

	opts := PackOptions{Capacity: "1M", Root: dir, Estimator: "none", FormatVersion: 3, Quiet: true}
	var buf bytes.Buffer
	require.NoError(t, runPack(opts, filepath.Join(dir, "out.pak"), list, &buf))
	assert.Equal(t, "1=2/hash1: 0xc968e080, c042038.dat - c068179.dat\n", buf.String())
}

func TestRunHash(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runHash(&buf, []string{"a.txt", "A.TXT"}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "775db9f0 8fb0a0bc a.txt", lines[0])
	assert.Equal(t, "775db9f0 8fb0a0bc A.TXT", lines[1])
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 1, exitCode(errors.New("x")))
	assert.Equal(t, 1, exitCode(errors.Wrap(archiver.ErrCapacity, "pack")))
	assert.Equal(t, 3, exitCode(errors.Wrap(ErrIncomplete, "2 problems")))
}
