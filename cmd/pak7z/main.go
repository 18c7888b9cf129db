package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ugsgame/Pak7z/internal/errors"
)

var version = "1.3.0"

// GlobalOptions holds options shared by all commands.
type GlobalOptions struct {
	Verbose bool
	Debug   bool
}

var globalOptions GlobalOptions

// cmdRoot is the base command when no other command has been specified.
var cmdRoot = &cobra.Command{
	Use:   "pak7z",
	Short: "Pack files into an LZMA compressed archive",
	Long: `
pak7z packs the files named in a list file into a single archive. The
contents of all files and the index describing them are compressed with LZMA
independently.
`,
	Version:           version,
	SilenceErrors:     true,
	SilenceUsage:      true,
	DisableAutoGenTag: true,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(globalOptions)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	f := cmdRoot.PersistentFlags()
	f.BoolVarP(&globalOptions.Verbose, "verbose", "v", false, "be verbose")
	f.BoolVar(&globalOptions.Debug, "debug", false, "print debug messages")
}

func setupLogging(opts GlobalOptions) {
	formatter := &log.TextFormatter{DisableTimestamp: true}
	level := log.WarnLevel
	if opts.Verbose {
		level = log.InfoLevel
	}
	if opts.Debug {
		level = log.DebugLevel
		formatter.DisableTimestamp = false
		formatter.FullTimestamp = true
	}

	log.SetOutput(os.Stderr)
	log.SetFormatter(formatter)
	log.SetLevel(level)
}

// exitCode maps the error returned by a command to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrIncomplete):
		return 3
	}
	return 1
}

func main() {
	err := cmdRoot.Execute()
	switch {
	case err == nil:
	case errors.Is(err, ErrIncomplete):
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	case errors.IsFatal(err), !globalOptions.Debug:
		fmt.Fprintln(os.Stderr, err)
	default:
		fmt.Fprintf(os.Stderr, "%+v\n", err)
	}
	os.Exit(exitCode(err))
}
