package hashing

import (
	"encoding/hex"

	"github.com/minio/sha256-simd"

	"github.com/ugsgame/Pak7z/internal/errors"
)

// IDSize is the size of an ID in bytes.
const IDSize = sha256.Size

// ID identifies an archive by the SHA-256 of its bytes. It is informational
// only and never stored in the archive.
type ID [IDSize]byte

// Sum returns the ID of data.
func Sum(data []byte) ID {
	return sha256.Sum256(data)
}

// IDFromHash returns the ID for a digest produced by a sha256 hash.
func IDFromHash(hash []byte) (ID, error) {
	var id ID
	if len(hash) != IDSize {
		return id, errors.Errorf("invalid digest length %d", len(hash))
	}
	copy(id[:], hash)
	return id, nil
}

const shortStr = 4

// Str returns the shortened string version of id.
func (id ID) Str() string {
	if id.IsNull() {
		return "[null]"
	}
	return hex.EncodeToString(id[:shortStr])
}

func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// IsNull returns true iff id only consists of null bytes.
func (id ID) IsNull() bool {
	return id == ID{}
}
