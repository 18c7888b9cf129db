// Package hashing derives the name fingerprints stored in archive index
// records and provides hashing wrappers for readers and writers.
//
// Names are fingerprinted with a fixed pseudo-random lookup table. The table
// and therefore every fingerprint is identical on all platforms, which lets
// archives packed on different machines be compared by hash.
package hashing

import "sync"

const (
	// TableSize is the number of slots in a Table: five selector rows of 256
	// entries each.
	TableSize = 0x500

	tableSeed    = 0x00100001
	tableModulus = 0x2AAAAB
)

// Table is the lookup table used by HashString. A Table is a read-only
// handle: copies share the same slots and there is no way to modify them.
// The zero Table is not usable; obtain one from NewTable or DefaultTable.
type Table struct {
	slots *[TableSize]uint32
}

// NewTable builds the lookup table. Each slot takes two steps of a linear
// congruential generator, the first step supplying the upper 16 bits and the
// second the lower 16 bits.
func NewTable() Table {
	var slots [TableSize]uint32

	seed := uint32(tableSeed)
	next := func() uint32 {
		seed = (seed*125 + 3) % tableModulus
		return seed
	}

	for row := 0; row < 0x100; row++ {
		for i, slot := 0, row; i < 5; i, slot = i+1, slot+0x100 {
			hi := (next() & 0xFFFF) << 16
			lo := next() & 0xFFFF
			slots[slot] = hi | lo
		}
	}

	return Table{slots: &slots}
}

// At returns slot i. It panics if i is out of range.
func (t Table) At(i int) uint32 {
	return t.slots[i]
}

var (
	defaultTableOnce sync.Once
	defaultTable     Table
)

// DefaultTable returns the process-wide table, building it on first use.
func DefaultTable() Table {
	defaultTableOnce.Do(func() {
		defaultTable = NewTable()
	})
	return defaultTable
}
