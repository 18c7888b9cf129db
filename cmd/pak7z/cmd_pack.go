package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ugsgame/Pak7z/internal/archiver"
	"github.com/ugsgame/Pak7z/internal/codec"
	"github.com/ugsgame/Pak7z/internal/errors"
	"github.com/ugsgame/Pak7z/internal/listfile"
	"github.com/ugsgame/Pak7z/internal/pack"
)

var cmdPack = &cobra.Command{
	Use:   "pack [flags] OUTPUT LIST",
	Short: "Pack the files named in LIST into the archive OUTPUT",
	Long: `
The "pack" command reads the list file LIST and packs every file it names, in
order, into the archive OUTPUT. Lines starting with # and blank lines are
ignored; a trailing "/N" sets a compression level hint for the entry.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was a fatal error (no archive created).
Exit status is 3 if some data could not be read or compressed in best effort
mode (incomplete archive created).
`,
	Args:              cobra.ExactArgs(2),
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPack(packOptions, args[0], args[1], cmd.OutOrStdout())
	},
}

// ErrIncomplete is returned when an archive was written after soft failures.
var ErrIncomplete = errors.New("archive is incomplete")

// PackOptions bundles all options for the pack command.
type PackOptions struct {
	Capacity      string
	BestEffort    bool
	Root          string
	Estimator     string
	FormatVersion uint8
	Quiet         bool
}

var packOptions PackOptions

func init() {
	cmdRoot.AddCommand(cmdPack)

	capacity := os.Getenv("PAK7Z_CAPACITY")
	if capacity == "" {
		capacity = "16M"
	}
	bestEffort := os.Getenv("PAK7Z_BEST_EFFORT") == "1"

	f := cmdPack.Flags()
	f.StringVar(&packOptions.Capacity, "capacity", capacity, "maximum uncompressed payload `size` (K/M/G suffixes allowed) (default: $PAK7Z_CAPACITY)")
	f.BoolVar(&packOptions.BestEffort, "best-effort", bestEffort, "pack unreadable files as empty entries and continue after codec errors (default: $PAK7Z_BEST_EFFORT)")
	f.StringVar(&packOptions.Root, "root", "", "open relative list entries in `dir` instead of the working directory")
	f.StringVar(&packOptions.Estimator, "estimator", "zstd", "per-entry size estimator: zstd, entropy or none")
	f.Uint8Var(&packOptions.FormatVersion, "format-version", pack.DefaultVersion, fmt.Sprintf("format version `n` written to the header (1..%d)", pack.MaxVersion))
	f.BoolVarP(&packOptions.Quiet, "quiet", "q", false, "do not print statistics")
}

// parseSize parses a size like "16M", "512k" or "1048576" in bytes.
func parseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty size")
	}

	mult := int64(1)
	switch s[len(s)-1] {
	case 'k', 'K':
		mult = 1 << 10
	case 'm', 'M':
		mult = 1 << 20
	case 'g', 'G':
		mult = 1 << 30
	case 'b', 'B':
	default:
		mult = 0
	}
	if mult != 0 {
		s = s[:len(s)-1]
	} else {
		mult = 1
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "ParseInt")
	}
	if n < 0 {
		return 0, errors.Errorf("negative size %d", n)
	}
	if n > (1<<63-1)/mult {
		return 0, errors.Errorf("size %v overflows", s)
	}
	return n * mult, nil
}

func (opts PackOptions) archiverOptions() (archiver.Options, error) {
	capacity, err := parseSize(opts.Capacity)
	if err != nil {
		return archiver.Options{}, errors.Fatalf("invalid capacity %q: %v", opts.Capacity, err)
	}
	if capacity <= 0 || capacity > archiver.MaxCapacity {
		return archiver.Options{}, errors.Fatalf("capacity %d out of range (1..%d)", capacity, int64(archiver.MaxCapacity))
	}

	est, err := codec.ParseEstimator(opts.Estimator)
	if err != nil {
		return archiver.Options{}, errors.Fatalf("%v", err)
	}

	if opts.FormatVersion == 0 {
		return archiver.Options{}, errors.Fatal("format version 0 is reserved")
	}

	return archiver.Options{
		Capacity:      int(capacity),
		Root:          opts.Root,
		FormatVersion: opts.FormatVersion,
		Estimator:     est,
	}, nil
}

func runPack(opts PackOptions, output, list string, stdout io.Writer) error {
	aopts, err := opts.archiverOptions()
	if err != nil {
		return err
	}

	entries, err := listfile.ParseFile(list)
	if err != nil {
		return errors.Fatalf("open list file %v failed: %v", list, err)
	}

	c, err := codec.NewLZMA(codec.DefaultParams())
	if err != nil {
		return err
	}

	arch, err := archiver.New(c, aopts)
	if err != nil {
		return errors.Fatalf("%v", err)
	}
	if opts.BestEffort {
		arch.Error = archiver.BestEffort
	}
	if z, ok := aopts.Estimator.(*codec.ZstdEstimator); ok {
		if err := z.Err(); err != nil {
			log.Warnf("size estimates disabled: %v", err)
		}
	}

	stats, err := arch.Pack(entries, output)
	if errors.Is(err, archiver.ErrCapacity) || errors.Is(err, archiver.ErrTooManyFiles) {
		return errors.Fatalf("%v", err)
	}
	if err != nil {
		return err
	}

	if !opts.Quiet {
		printStats(stdout, stats)
	} else {
		printCollisions(stdout, stats)
	}

	if !stats.Complete() {
		return errors.Wrapf(ErrIncomplete, "%d problems", len(stats.Warnings))
	}
	return nil
}
