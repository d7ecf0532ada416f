package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bft-labs/httprequest/pkg/httprequest"
	"github.com/bft-labs/httprequest/pkg/log"
)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// newRootCmd returns a command that accepts any arguments, including
// --help and --version, and fails on every invocation.
func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "httprequest",
		Short:              "HTTP request library (not an executable)",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return httprequest.ErrLibraryUsage
		},
	}
}

// run executes the root command with args and reports a failure on stderr.
// It returns the process exit status.
func run(args []string, stderr io.Writer) int {
	logger := log.NewZerologAdapter(stderr, zerolog.InfoLevel).Logger()

	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stderr)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		logger.Error().
			Err(err).
			Str("version", fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH)).
			Msg("httprequest")
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}
