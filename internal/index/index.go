// Package index builds the metadata table of an archive and checks it for
// fingerprint collisions.
package index

import (
	log "github.com/sirupsen/logrus"

	"github.com/ugsgame/Pak7z/internal/errors"
	"github.com/ugsgame/Pak7z/internal/pack"
)

// Index holds one record per packed file in list order.
type Index struct {
	records []pack.Record
	names   []string
	next    uint64
}

// New returns an empty index with room for n entries.
func New(n int) *Index {
	return &Index{
		records: make([]pack.Record, 0, n),
		names:   make([]string, 0, n),
	}
}

// Add appends a record for a file of size bytes stored directly after the
// previous one. It returns the record.
func (idx *Index) Add(name string, hash1, hash2 uint32, size uint32, estimate uint32) (pack.Record, error) {
	if idx.next+uint64(size) > 1<<32-1 {
		return pack.Record{}, errors.Errorf("payload offset overflow at %v", name)
	}

	r := pack.Record{
		Hash1:         hash1,
		Hash2:         hash2,
		Offset:        uint32(idx.next),
		Size:          size,
		EstimatedSize: estimate,
	}
	idx.next += uint64(size)

	idx.records = append(idx.records, r)
	idx.names = append(idx.names, name)

	log.Debugf("index: %v at offset %d, %d bytes", name, r.Offset, r.Size)
	return r, nil
}

// Len returns the number of records.
func (idx *Index) Len() int {
	return len(idx.records)
}

// PayloadSize returns the sum of all record sizes.
func (idx *Index) PayloadSize() uint64 {
	return idx.next
}

// EstimatedSize returns the sum of all size estimates.
func (idx *Index) EstimatedSize() uint64 {
	var sum uint64
	for _, r := range idx.records {
		sum += uint64(r.EstimatedSize)
	}
	return sum
}

// Bytes returns the raw index blob: all records back to back.
func (idx *Index) Bytes() []byte {
	buf := make([]byte, 0, len(idx.records)*pack.RecordSize)
	for _, r := range idx.records {
		buf = r.AppendBinary(buf)
	}
	return buf
}
