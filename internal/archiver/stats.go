package archiver

import (
	"github.com/ugsgame/Pak7z/internal/hashing"
	"github.com/ugsgame/Pak7z/internal/index"
	"github.com/ugsgame/Pak7z/internal/pack"
)

// EntryStats describes one packed entry.
type EntryStats struct {
	Name     string
	Level    int
	Offset   uint32
	Size     uint32
	Estimate uint32
	Hash1    uint32
	Hash2    uint32
	Failed   bool // packed as empty after a read error
}

// Warning is a soft failure the pipeline continued after.
type Warning struct {
	Item string
	Err  error
}

// Stats summarizes one run of Pack.
type Stats struct {
	Output  string
	Header  pack.Header
	Entries []EntryStats

	IndexSize             int
	CompressedIndexSize   int
	PayloadSize           int
	CompressedPayloadSize int
	EstimatedSize         uint64

	// Expected is the archive size the header describes, Written what
	// actually reached the output file.
	Expected int64
	Written  int64
	ID       hashing.ID

	Collisions []index.Collision
	Warnings   []Warning
}

// Complete reports whether the archive was written without soft failures.
func (s *Stats) Complete() bool {
	return len(s.Warnings) == 0 && s.Written == s.Expected
}
