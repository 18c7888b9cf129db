package hashing

import "fmt"

// Selectors for the two independent fingerprints of a name.
const (
	SelectorHash1 uint32 = 1
	SelectorHash2 uint32 = 2

	maxSelector = TableSize/0x100 - 1
)

const (
	accumulatorSeed1 uint32 = 0x7FED7FED
	accumulatorSeed2 uint32 = 0xEEEEEEEE
)

// HashString returns the fingerprint of name in the row given by selector.
// ASCII letters are folded to upper case; every other byte is used as is.
// It panics if selector is out of range.
func (t Table) HashString(name string, selector uint32) uint32 {
	if selector > maxSelector {
		panic(fmt.Sprintf("hash selector %d out of range", selector))
	}

	seed1, seed2 := accumulatorSeed1, accumulatorSeed2
	for i := 0; i < len(name); i++ {
		c := uint32(upperASCII(name[i]))
		seed1 = t.slots[selector<<8|c] ^ (seed1 + seed2)
		seed2 = c + seed1 + seed2 + (seed2 << 5) + 3
	}

	return seed1
}

// Pair returns both fingerprints of name.
func (t Table) Pair(name string) (hash1, hash2 uint32) {
	return t.HashString(name, SelectorHash1), t.HashString(name, SelectorHash2)
}

// HashString hashes name with the default table.
func HashString(name string, selector uint32) uint32 {
	return DefaultTable().HashString(name, selector)
}

func upperASCII(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
