package main

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ugsgame/Pak7z/internal/archiver"
	"github.com/ugsgame/Pak7z/internal/listfile"
)

var numbers = message.NewPrinter(language.English)

// grouped formats n with thousands separators, right-aligned to width.
func grouped(n uint64, width int) string {
	return fmt.Sprintf("%*s", width, numbers.Sprintf("%d", n))
}

func ratio(z, o uint64) float64 {
	if o == 0 {
		return 0
	}
	return float64(z) * 100 / float64(o)
}

// formatRatio prints a percentage, padded so that single digit values line
// up with larger ones.
func formatRatio(r float64) string {
	pad := ""
	if r < 10 {
		pad = " "
	}
	return fmt.Sprintf("[%s%.1f%%]", pad, r)
}

func digits(n int) int {
	d := 1
	for ; n > 9; n /= 10 {
		d++
	}
	return d
}

func printEntries(wr io.Writer, entries []archiver.EntryStats) {
	longest := 0
	for _, e := range entries {
		if len(e.Name) > longest {
			longest = len(e.Name)
		}
	}
	width := digits(len(entries))

	for i, e := range entries {
		line := fmt.Sprintf("[%0*d]: `%s' %s", width, i+1, e.Name, strings.Repeat(".", 3+longest-len(e.Name)))
		line += fmt.Sprintf(" %s -> %s %s",
			grouped(uint64(e.Size), 7), grouped(uint64(e.Estimate), 7),
			formatRatio(ratio(uint64(e.Estimate), uint64(e.Size))))
		if e.Level != listfile.NoHint {
			line += fmt.Sprintf(" /%d", e.Level)
		}
		if e.Failed {
			line += " (unreadable)"
		}
		fmt.Fprintln(wr, line)
	}
}

func printCollisions(wr io.Writer, stats *archiver.Stats) {
	for _, c := range stats.Collisions {
		fmt.Fprintln(wr, c.String())
	}
}

// printStats writes the per-entry table and the totals of a packing run.
func printStats(wr io.Writer, stats *archiver.Stats) {
	printEntries(wr, stats.Entries)

	fmt.Fprintf(wr, "\n\tHeader: %s -> %s Bytes\n",
		grouped(uint64(stats.IndexSize), 8), grouped(uint64(stats.CompressedIndexSize), 8))
	fmt.Fprintf(wr, "\t  Data: %s -> %s Bytes [ESTIMATED: %s]\n",
		grouped(uint64(stats.PayloadSize), 8), grouped(uint64(stats.CompressedPayloadSize), 8),
		grouped(stats.EstimatedSize, 0))

	printCollisions(wr, stats)

	if stats.Written != stats.Expected {
		fmt.Fprintf(wr, "\n>>> Pack error! %d wrote: %d\n\n", stats.Expected, stats.Written)
		return
	}

	// the ratio is taken against the payload alone
	total := uint64(stats.PayloadSize)
	fmt.Fprintf(wr, "\tOutput: %s -> %s Bytes [%.1f%%].\n\n",
		grouped(total, 8), grouped(uint64(stats.Written), 8), ratio(uint64(stats.Written), total))
	fmt.Fprintf(wr, ">>>\tPacked: `%s' %.1f KB.\n", stats.Output, float64(stats.Written)/1024)
	fmt.Fprintf(wr, "\tID: %s\n\n", stats.ID)
}
