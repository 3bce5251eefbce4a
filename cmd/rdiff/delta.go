package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/yrgoldteeth/librsync/pkg/encoder"
	"github.com/yrgoldteeth/librsync/pkg/identifier"
)

var deltaCommand = &cobra.Command{
	Use:   "delta <signature> <target> <delta-out>",
	Short: "Compute a delta between a base signature and a target file",
	Args:  cobra.ExactArgs(3),
	Run:   mainify(deltaMain),
}

var deltaConfiguration struct {
	// configPath is the path to an optional configuration file.
	configPath string
}

func init() {
	flags := deltaCommand.Flags()
	flags.StringVar(&deltaConfiguration.configPath, "config", "", "path to an rdiff configuration file")
}

func deltaMain(command *cobra.Command, arguments []string) error {
	applyLogLevel()

	cfg, err := loadConfiguration(deltaConfiguration.configPath)
	if err != nil {
		return err
	}

	hasher, err := cfg.Hasher()
	if err != nil {
		return fmt.Errorf("unable to resolve strong hash: %w", err)
	}

	jobID, err := identifier.New(identifier.PrefixEncode)
	if err != nil {
		return fmt.Errorf("unable to allocate job identifier: %w", err)
	}

	sigFile, err := os.Open(arguments[0])
	if err != nil {
		return fmt.Errorf("unable to open base signature: %w", err)
	}
	defer sigFile.Close()

	target, err := os.Open(arguments[1])
	if err != nil {
		return fmt.Errorf("unable to open target file: %w", err)
	}
	defer target.Close()

	out, err := os.Create(arguments[2])
	if err != nil {
		return fmt.Errorf("unable to create delta file: %w", err)
	}
	defer out.Close()

	config := encoder.DefaultConfig()
	config.StrongHasher = hasher

	stats, err := encoder.Encode(context.Background(), target, sigFile, out, config)
	if err != nil {
		return fmt.Errorf("encode failed: %w", err)
	}

	fmt.Printf(
		"[%s] wrote delta: %s literal (%d commands), %s copied (%d commands), %s embedded signature\n",
		jobID,
		humanize.Bytes(stats.LiteralBytes), stats.LiteralCommands,
		humanize.Bytes(stats.CopyBytes), stats.CopyCommands,
		humanize.Bytes(stats.SignatureBytes),
	)
	return nil
}
