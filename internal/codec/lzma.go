// Package codec compresses the archive's metadata and payload blobs.
//
// Every blob is a raw LZMA stream followed by the five LZMA property bytes
// (property code and little-endian dictionary size). The uncompressed size
// is not part of the stream; readers take it from the archive header.
package codec

import (
	"bytes"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/ulikunitz/xz/lzma"

	"github.com/ugsgame/Pak7z/internal/errors"
)

// PropsSize is the number of property bytes appended to every stream.
const PropsSize = 5

// DefaultDictSize is the dictionary size used for both blobs.
const DefaultDictSize = 1 << 20

// Params are the encoder parameters. They are validated against the ranges
// of the reference LZMA encoder.
type Params struct {
	DictSize  uint32
	Level     int // 0..9
	LC        int // literal context bits, 0..8
	LP        int // literal position bits, 0..4
	PB        int // position bits, 0..4
	FastBytes int // match finder depth, 5..273
	Threads   int // 1 or 2
}

// DefaultParams returns the fixed parameter set used for every archive.
func DefaultParams() Params {
	return Params{
		DictSize:  DefaultDictSize,
		Level:     5,
		LC:        3,
		LP:        0,
		PB:        2,
		FastBytes: 32,
		Threads:   1,
	}
}

// Validate checks that all parameters are in range.
func (p Params) Validate() error {
	switch {
	case p.DictSize < lzma.MinDictCap:
		return errors.Errorf("dictionary size %d below minimum %d", p.DictSize, lzma.MinDictCap)
	case p.Level < 0 || p.Level > 9:
		return errors.Errorf("level %d out of range", p.Level)
	case p.LC < 0 || p.LC > 8:
		return errors.Errorf("lc %d out of range", p.LC)
	case p.LP < 0 || p.LP > 4:
		return errors.Errorf("lp %d out of range", p.LP)
	case p.PB < 0 || p.PB > 4:
		return errors.Errorf("pb %d out of range", p.PB)
	case p.FastBytes < 5 || p.FastBytes > 273:
		return errors.Errorf("fast bytes %d out of range", p.FastBytes)
	case p.Threads < 1 || p.Threads > 2:
		return errors.Errorf("threads %d out of range", p.Threads)
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("level %d dict %d lc %d lp %d pb %d fb %d threads %d",
		p.Level, p.DictSize, p.LC, p.LP, p.PB, p.FastBytes, p.Threads)
}

// BinaryTreeLevel is the lowest level compressed with the binary tree
// match finder.
const BinaryTreeLevel = 9

// matcher picks the match finder for the level. The binary tree finder of
// the encoder takes minutes on a full 16 MiB payload for a few percent of
// output, so it is reserved for the top level.
func (p Params) matcher() lzma.MatchAlgorithm {
	if p.Level >= BinaryTreeLevel {
		return lzma.BinaryTree
	}
	return lzma.HashTable4
}

// Bound returns the output capacity reserved for compressing n bytes, which
// covers incompressible input.
func Bound(n int) int {
	return (n*21+19)/20 + 1<<16
}

// Blob is one compressed stream and its property trailer.
type Blob struct {
	Data  []byte
	Props [PropsSize]byte
}

// Len returns the stored size of the blob including the property bytes.
func (b Blob) Len() int {
	return len(b.Data) + PropsSize
}

// Compressor compresses a complete buffer in one call.
type Compressor interface {
	Compress(raw []byte) (Blob, error)
}

// LZMA is the Compressor for archive blobs.
type LZMA struct {
	params Params
}

// NewLZMA returns an LZMA compressor for p.
func NewLZMA(p Params) (*LZMA, error) {
	if err := p.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid codec parameters")
	}
	return &LZMA{params: p}, nil
}

// Compress compresses raw. On error the returned Blob holds whatever the
// encoder produced, which lets callers decide whether to keep going.
// FastBytes and Threads are validated but the encoder has no equivalent knob.
func (c *LZMA) Compress(raw []byte) (Blob, error) {
	bound := Bound(len(raw))
	buf := bytes.NewBuffer(make([]byte, 0, lzma.HeaderLen+bound))

	cfg := lzma.WriterConfig{
		Properties: &lzma.Properties{
			LC: c.params.LC,
			LP: c.params.LP,
			PB: c.params.PB,
		},
		DictCap:      int(c.params.DictSize),
		Matcher:      c.params.matcher(),
		SizeInHeader: true,
		Size:         int64(len(raw)),
		EOSMarker:    false,
	}

	var blob Blob

	wr, err := cfg.NewWriter(buf)
	if err != nil {
		return blob, &Error{Status: StatusParam, Err: errors.Wrap(err, "NewWriter")}
	}

	_, werr := wr.Write(raw)
	cerr := wr.Close()

	out := buf.Bytes()
	if len(out) >= lzma.HeaderLen {
		copy(blob.Props[:], out[:PropsSize])
		blob.Data = out[lzma.HeaderLen:]
	}

	switch {
	case werr != nil:
		return blob, &Error{Status: StatusFail, Err: errors.Wrap(werr, "Write")}
	case cerr != nil:
		return blob, &Error{Status: StatusFail, Err: errors.Wrap(cerr, "Close")}
	}

	if len(blob.Data) > bound {
		blob.Data = blob.Data[:bound]
		return blob, &Error{Status: StatusOutputEOF, Err: ErrOutputOverflow}
	}

	log.Debugf("compressed %d -> %d bytes (%v)", len(raw), blob.Len(), c.params)
	return blob, nil
}
