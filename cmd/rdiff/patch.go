package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/yrgoldteeth/librsync/pkg/identifier"
	"github.com/yrgoldteeth/librsync/pkg/patcher"
)

var patchCommand = &cobra.Command{
	Use:   "patch <base> <delta> <target-out>",
	Short: "Apply a delta against a base file to reconstruct its target",
	Args:  cobra.ExactArgs(3),
	Run:   mainify(patchMain),
}

func patchMain(command *cobra.Command, arguments []string) error {
	applyLogLevel()

	jobID, err := identifier.New(identifier.PrefixPatch)
	if err != nil {
		return fmt.Errorf("unable to allocate job identifier: %w", err)
	}

	base, err := os.Open(arguments[0])
	if err != nil {
		return fmt.Errorf("unable to open base file: %w", err)
	}
	defer base.Close()

	delta, err := os.Open(arguments[1])
	if err != nil {
		return fmt.Errorf("unable to open delta file: %w", err)
	}
	defer delta.Close()

	out, err := os.Create(arguments[2])
	if err != nil {
		return fmt.Errorf("unable to create target file: %w", err)
	}
	defer out.Close()

	result, err := patcher.Patch(out, base, delta)
	if err != nil {
		return fmt.Errorf("patch failed: %w", err)
	}

	message := fmt.Sprintf("[%s] reconstructed %s", jobID, arguments[2])
	if len(result.EmbeddedSignature) > 0 {
		message += fmt.Sprintf(" (embedded signature: %d bytes)", len(result.EmbeddedSignature))
	}
	if isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Println(message)
	} else {
		fmt.Fprintln(os.Stdout, message)
	}
	return nil
}
