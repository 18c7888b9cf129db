package pack

import (
	"encoding/binary"

	"github.com/ugsgame/Pak7z/internal/errors"
)

// RecordSize is the encoded size of a Record.
const RecordSize = 24

// Record is the index entry of one packed file.
type Record struct {
	Hash1         uint32
	Hash2         uint32
	Offset        uint32 // position in the uncompressed payload
	Size          uint32 // uncompressed size
	EstimatedSize uint32 // compressed size estimate, informational
	Flag          uint32 // reserved, always zero
}

// AppendBinary appends the encoded record to buf.
func (r Record) AppendBinary(buf []byte) []byte {
	var b [RecordSize]byte
	binary.LittleEndian.PutUint32(b[0:], r.Hash1)
	binary.LittleEndian.PutUint32(b[4:], r.Hash2)
	binary.LittleEndian.PutUint32(b[8:], r.Offset)
	binary.LittleEndian.PutUint32(b[12:], r.Size)
	binary.LittleEndian.PutUint32(b[16:], r.EstimatedSize)
	binary.LittleEndian.PutUint32(b[20:], r.Flag)
	return append(buf, b[:]...)
}

// UnmarshalBinary decodes a record.
func (r *Record) UnmarshalBinary(data []byte) error {
	if len(data) != RecordSize {
		return errors.Errorf("invalid record length %d", len(data))
	}

	r.Hash1 = binary.LittleEndian.Uint32(data[0:])
	r.Hash2 = binary.LittleEndian.Uint32(data[4:])
	r.Offset = binary.LittleEndian.Uint32(data[8:])
	r.Size = binary.LittleEndian.Uint32(data[12:])
	r.EstimatedSize = binary.LittleEndian.Uint32(data[16:])
	r.Flag = binary.LittleEndian.Uint32(data[20:])
	return nil
}

// ParseRecords decodes a raw index blob.
func ParseRecords(data []byte) ([]Record, error) {
	if len(data)%RecordSize != 0 {
		return nil, errors.Errorf("index length %d is not a multiple of %d", len(data), RecordSize)
	}

	records := make([]Record, len(data)/RecordSize)
	for i := range records {
		if err := records[i].UnmarshalBinary(data[i*RecordSize : (i+1)*RecordSize]); err != nil {
			return nil, err
		}
	}
	return records, nil
}
