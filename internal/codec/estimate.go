package codec

import (
	"sync"

	"github.com/klauspost/compress"
	"github.com/klauspost/compress/zstd"

	"github.com/ugsgame/Pak7z/internal/errors"
)

// Estimator guesses the compressed size of a single entry. The guess is
// stored in the entry's index record and summed in the statistics; the
// entries themselves are compressed as part of the payload blob.
type Estimator interface {
	Estimate(data []byte) uint32
}

// EstimatorFunc adapts a function to the Estimator interface.
type EstimatorFunc func(data []byte) uint32

// Estimate calls f(data).
func (f EstimatorFunc) Estimate(data []byte) uint32 {
	return f(data)
}

// NoEstimate always estimates zero.
var NoEstimate = EstimatorFunc(func([]byte) uint32 { return 0 })

// EntropyEstimator estimates the size of an order-0 entropy coding of the
// data.
var EntropyEstimator = EstimatorFunc(func(data []byte) uint32 {
	return uint32((compress.ShannonEntropyBits(data) + 7) / 8)
})

// ZstdEstimator compresses each entry with zstd and reports the size. It is
// not safe for concurrent use.
type ZstdEstimator struct {
	level zstd.EncoderLevel

	allocEnc sync.Once
	enc      *zstd.Encoder
	encErr   error
	buf      []byte
}

// NewZstdEstimator returns an estimator using the given zstd level.
func NewZstdEstimator(level zstd.EncoderLevel) *ZstdEstimator {
	return &ZstdEstimator{level: level}
}

func (e *ZstdEstimator) encoder() (*zstd.Encoder, error) {
	e.allocEnc.Do(func() {
		opts := []zstd.EOption{
			zstd.WithEncoderLevel(e.level),
			// Checksums only add bytes to the estimate.
			zstd.WithEncoderCRC(false),
			// Match the LZMA dictionary size.
			zstd.WithWindowSize(DefaultDictSize),
			zstd.WithEncoderConcurrency(1),
		}

		e.enc, e.encErr = zstd.NewWriter(nil, opts...)
		if e.encErr != nil {
			e.encErr = errors.Wrap(e.encErr, "zstd.NewWriter")
		}
	})
	return e.enc, e.encErr
}

// Estimate returns the zstd compressed size of data, or zero if the encoder
// could not be created.
func (e *ZstdEstimator) Estimate(data []byte) uint32 {
	if len(data) == 0 {
		return 0
	}

	enc, err := e.encoder()
	if err != nil {
		return 0
	}

	e.buf = enc.EncodeAll(data, e.buf[:0])
	return uint32(len(e.buf))
}

// Err returns the error from creating the encoder, if any.
func (e *ZstdEstimator) Err() error {
	_, err := e.encoder()
	return err
}

// ParseEstimator returns the estimator for name: "zstd", "entropy" or "none".
func ParseEstimator(name string) (Estimator, error) {
	switch name {
	case "zstd", "":
		return NewZstdEstimator(zstd.SpeedBestCompression), nil
	case "entropy":
		return EntropyEstimator, nil
	case "none":
		return NoEstimate, nil
	}
	return nil, errors.Errorf("unknown estimator %q", name)
}
