// Command rdiff computes and applies remote-differential deltas: it builds
// block signatures for a base file, encodes a target file against such a
// signature into a compact delta, and applies a delta back against its base
// to reconstruct the target.
package main

import (
	"github.com/spf13/cobra"

	"github.com/yrgoldteeth/librsync/pkg/logging"
)

var rootCommand = &cobra.Command{
	Use:           "rdiff",
	Short:         "rdiff computes and applies remote-differential deltas",
	Run:           mainify(rootMain),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var rootConfiguration struct {
	// logLevel is the name of the logging level to use for the invocation.
	logLevel string
}

func rootMain(command *cobra.Command, arguments []string) error {
	command.Help()
	return nil
}

func init() {
	flags := rootCommand.PersistentFlags()
	flags.StringVar(&rootConfiguration.logLevel, "log-level", "info", "set the logging level (disabled, error, warn, info, debug, trace)")

	cobra.EnableCommandSorting = false

	rootCommand.AddCommand(
		signatureCommand,
		deltaCommand,
		patchCommand,
		versionCommand,
	)
}

func applyLogLevel() {
	if level, ok := logging.NameToLevel(rootConfiguration.logLevel); ok {
		logging.SetLevel(level)
	} else {
		warning("unknown log level " + rootConfiguration.logLevel + "; defaulting to info")
		logging.SetLevel(logging.LevelInfo)
	}
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		fail(err)
	}
}
