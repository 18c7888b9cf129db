package codec

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZstdEstimator(t *testing.T) {
	e := NewZstdEstimator(zstd.SpeedDefault)
	require.NoError(t, e.Err())

	assert.Equal(t, uint32(0), e.Estimate(nil))

	text := bytes.Repeat([]byte("compressible "), 1000)
	est := e.Estimate(text)
	assert.NotZero(t, est)
	assert.Less(t, est, uint32(len(text)/10))

	// the scratch buffer is reused between calls
	assert.Equal(t, est, e.Estimate(text))
}

func TestEntropyEstimator(t *testing.T) {
	assert.Equal(t, uint32(0), EntropyEstimator.Estimate(nil))
	assert.Equal(t, uint32(0), EntropyEstimator.Estimate(make([]byte, 1000)))

	// two equally likely symbols need one bit each
	data := bytes.Repeat([]byte{'a', 'b'}, 800)
	assert.Equal(t, uint32(200), EntropyEstimator.Estimate(data))

	random := make([]byte, 4096)
	rand.New(rand.NewSource(1)).Read(random)
	assert.Greater(t, EntropyEstimator.Estimate(random), uint32(3900))
}

func TestParseEstimator(t *testing.T) {
	for _, name := range []string{"", "zstd", "entropy", "none"} {
		e, err := ParseEstimator(name)
		require.NoError(t, err, name)
		assert.NotNil(t, e)
	}

	e, err := ParseEstimator("none")
	require.NoError(t, err)
	assert.Equal(t, uint32(0), e.Estimate([]byte("data")))

	_, err = ParseEstimator("lz4")
	assert.Error(t, err)
}
