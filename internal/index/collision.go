package index

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// HashField names the fingerprint two records share.
type HashField int

const (
	Hash1 HashField = 1
	Hash2 HashField = 2
)

func (f HashField) String() string {
	return fmt.Sprintf("hash%d", int(f))
}

// Collision is a pair of records sharing a fingerprint. I is always less
// than J; both are zero based.
type Collision struct {
	I, J         int
	NameI, NameJ string
	Field        HashField
	Hash         uint32
}

func (c Collision) String() string {
	return fmt.Sprintf("%d=%d/%v: 0x%x, %s - %s", c.I+1, c.J+1, c.Field, c.Hash, c.NameI, c.NameJ)
}

// Collisions compares every pair of records and returns each shared hash1
// or hash2, ordered by I, then J, with hash1 before hash2. The scan is
// quadratic, which is fine for the at most 4095 entries an archive holds.
func (idx *Index) Collisions() []Collision {
	var res []Collision
	for i := range idx.records {
		for j := i + 1; j < len(idx.records); j++ {
			a, b := idx.records[i], idx.records[j]
			if a.Hash1 == b.Hash1 {
				res = append(res, idx.collision(i, j, Hash1, a.Hash1))
			}
			if a.Hash2 == b.Hash2 {
				res = append(res, idx.collision(i, j, Hash2, a.Hash2))
			}
		}
	}

	if len(res) > 0 {
		log.Warnf("index has %d hash collisions", len(res))
	}
	return res
}

func (idx *Index) collision(i, j int, f HashField, h uint32) Collision {
	c := Collision{
		I:     i,
		J:     j,
		NameI: idx.names[i],
		NameJ: idx.names[j],
		Field: f,
		Hash:  h,
	}
	log.Warnf("hash collision: %v", c)
	return c
}
