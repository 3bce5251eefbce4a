package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yrgoldteeth/librsync/pkg/config"
	"github.com/yrgoldteeth/librsync/pkg/identifier"
	"github.com/yrgoldteeth/librsync/pkg/logging"
	"github.com/yrgoldteeth/librsync/pkg/signature"
)

var signatureCommand = &cobra.Command{
	Use:   "signature <base> <signature-out>",
	Short: "Compute the block signature of a base file",
	Args:  cobra.ExactArgs(2),
	Run:   mainify(signatureMain),
}

var signatureConfiguration struct {
	// blockSize overrides the configured default block size.
	blockSize int
	// configPath is the path to an optional configuration file.
	configPath string
}

func init() {
	flags := signatureCommand.Flags()
	flags.IntVar(&signatureConfiguration.blockSize, "block-size", 0, "signature block size in bytes (0 uses the configured default)")
	flags.StringVar(&signatureConfiguration.configPath, "config", "", "path to an rdiff configuration file")
}

func signatureMain(command *cobra.Command, arguments []string) error {
	applyLogLevel()
	logger := logging.RootLogger.Sublogger("signature")

	cfg, err := loadConfiguration(signatureConfiguration.configPath)
	if err != nil {
		return err
	}

	blockSize := signatureConfiguration.blockSize
	if blockSize == 0 {
		blockSize = cfg.BlockSize
	}

	hasher, err := cfg.Hasher()
	if err != nil {
		return fmt.Errorf("unable to resolve strong hash: %w", err)
	}

	jobID, err := identifier.New(identifier.PrefixSignature)
	if err != nil {
		return fmt.Errorf("unable to allocate job identifier: %w", err)
	}
	logger.Infof("[%s] computing signature for %s (block size %d)", jobID, arguments[0], blockSize)

	base, err := os.Open(arguments[0])
	if err != nil {
		return fmt.Errorf("unable to open base file: %w", err)
	}
	defer base.Close()

	built, err := signature.Build(base, blockSize, hasher)
	if err != nil {
		return fmt.Errorf("unable to compute signature: %w", err)
	}

	out, err := os.Create(arguments[1])
	if err != nil {
		return fmt.Errorf("unable to create signature file: %w", err)
	}
	defer out.Close()

	if err := built.WriteTo(out); err != nil {
		return fmt.Errorf("unable to write signature: %w", err)
	}

	logger.Infof("[%s] wrote signature with %d blocks", jobID, len(built.Hashes))
	return nil
}

func loadConfiguration(path string) (*config.Configuration, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
