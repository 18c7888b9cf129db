// Package pack implements the on-disk layout of an archive.
//
// An archive is a 12 byte header followed by the compressed index blob and
// the compressed payload blob, each ending in its codec property bytes. All
// integers are little endian. The first header word is bit packed:
//
//	bits  0..11  file count
//	bits 12..15  format version
//	bits 16..31  compressed index size
//
// The remaining two words are the payload size before and after compression.
// There is no magic number and no checksum.
package pack

import (
	"encoding/binary"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/ugsgame/Pak7z/internal/codec"
	"github.com/ugsgame/Pak7z/internal/errors"
)

const (
	// HeaderSize is the encoded size of a Header.
	HeaderSize = 12

	// MaxFiles is the largest file count the header can hold.
	MaxFiles = 1<<12 - 1
	// MaxVersion is the largest format version the header can hold.
	MaxVersion = 1<<4 - 1
	// MaxIndexSize is the largest compressed index the header can describe.
	MaxIndexSize = 1<<16 - 1

	// DefaultVersion is the format version written by default.
	DefaultVersion = 3
)

const (
	fileCountBits = 12
	versionBits   = 4

	fileCountShift = 0
	versionShift   = fileCountShift + fileCountBits
	indexSizeShift = versionShift + versionBits
)

var (
	// ErrFieldOverflow is returned when a header value does not fit its field.
	ErrFieldOverflow = errors.New("header field overflow")

	// ErrIndexTooLarge is returned when the compressed index does not fit
	// the 16 bit size field.
	ErrIndexTooLarge = errors.New("compressed index too large")
)

// Header is the fixed-size archive header.
type Header struct {
	FileCount             uint16
	FormatVersion         uint8
	CompressedIndexSize   uint16
	OriginalPayloadSize   uint32
	CompressedPayloadSize uint32
}

// NewHeader describes an archive with the given blobs.
func NewHeader(fileCount int, version uint8, payloadSize int, index, payload codec.Blob) (Header, error) {
	if fileCount < 0 || fileCount > MaxFiles {
		return Header{}, errors.Wrapf(ErrFieldOverflow, "file count %d", fileCount)
	}
	if version > MaxVersion {
		return Header{}, errors.Wrapf(ErrFieldOverflow, "version %d", version)
	}
	if index.Len() > MaxIndexSize {
		return Header{}, errors.Wrapf(ErrIndexTooLarge, "%d bytes, limit %d", index.Len(), MaxIndexSize)
	}
	if uint64(payloadSize) > 1<<32-1 || uint64(payload.Len()) > 1<<32-1 {
		return Header{}, errors.Wrapf(ErrFieldOverflow, "payload size %d/%d", payloadSize, payload.Len())
	}

	return Header{
		FileCount:             uint16(fileCount),
		FormatVersion:         version,
		CompressedIndexSize:   uint16(index.Len()),
		OriginalPayloadSize:   uint32(payloadSize),
		CompressedPayloadSize: uint32(payload.Len()),
	}, nil
}

// ArchiveSize returns the total number of bytes of an archive with header h.
func (h Header) ArchiveSize() int64 {
	return HeaderSize + int64(h.CompressedIndexSize) + int64(h.CompressedPayloadSize)
}

// MarshalBinary encodes the header.
func (h Header) MarshalBinary() ([]byte, error) {
	if h.FileCount > MaxFiles {
		return nil, errors.Wrapf(ErrFieldOverflow, "file count %d", h.FileCount)
	}
	if h.FormatVersion > MaxVersion {
		return nil, errors.Wrapf(ErrFieldOverflow, "version %d", h.FormatVersion)
	}

	word := uint32(h.FileCount)<<fileCountShift |
		uint32(h.FormatVersion)<<versionShift |
		uint32(h.CompressedIndexSize)<<indexSizeShift

	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:], word)
	binary.LittleEndian.PutUint32(buf[4:], h.OriginalPayloadSize)
	binary.LittleEndian.PutUint32(buf[8:], h.CompressedPayloadSize)
	return buf, nil
}

// UnmarshalBinary decodes a header.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) != HeaderSize {
		return errors.Errorf("invalid header length %d", len(data))
	}

	word := binary.LittleEndian.Uint32(data[0:])
	h.FileCount = uint16(word >> fileCountShift & (1<<fileCountBits - 1))
	h.FormatVersion = uint8(word >> versionShift & (1<<versionBits - 1))
	h.CompressedIndexSize = uint16(word >> indexSizeShift)
	h.OriginalPayloadSize = binary.LittleEndian.Uint32(data[4:])
	h.CompressedPayloadSize = binary.LittleEndian.Uint32(data[8:])
	return nil
}

// Write serializes the archive to wr: header, index blob, payload blob. Every
// part is written with a single Write call. It returns the number of bytes
// wr accepted.
func Write(wr io.Writer, h Header, index, payload codec.Blob) (int64, error) {
	if int(h.CompressedIndexSize) != index.Len() || int64(h.CompressedPayloadSize) != int64(payload.Len()) {
		return 0, errors.Errorf("header sizes %d/%d do not match blobs %d/%d",
			h.CompressedIndexSize, h.CompressedPayloadSize, index.Len(), payload.Len())
	}

	hdr, err := h.MarshalBinary()
	if err != nil {
		return 0, err
	}

	var written int64
	for _, part := range [][]byte{hdr, index.Data, index.Props[:], payload.Data, payload.Props[:]} {
		n, err := wr.Write(part)
		written += int64(n)
		if err != nil {
			return written, errors.Wrap(err, "Write")
		}
	}

	log.Debugf("wrote archive: %d files, %d bytes", h.FileCount, written)
	return written, nil
}
