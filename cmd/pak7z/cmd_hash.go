package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ugsgame/Pak7z/internal/hashing"
)

var cmdHash = &cobra.Command{
	Use:   "hash NAME...",
	Short: "Print the hash pair of archive entry names",
	Long: `
The "hash" command prints hash1 and hash2 for every NAME, as they would be
stored in an archive index. Letters a-z are hashed as upper case.
`,
	Args:              cobra.MinimumNArgs(1),
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHash(cmd.OutOrStdout(), args)
	},
}

func init() {
	cmdRoot.AddCommand(cmdHash)
}

func runHash(wr io.Writer, names []string) error {
	t := hashing.DefaultTable()
	for _, name := range names {
		h1, h2 := t.Pair(name)
		if _, err := fmt.Fprintf(wr, "%08x %08x %s\n", h1, h2, name); err != nil {
			return err
		}
	}
	return nil
}
