package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// warning prints a warning message to standard error.
func warning(message string) {
	fmt.Fprintln(color.Error, color.YellowString("Warning:"), message)
}

// fail prints an error message to standard error and terminates the process
// with a non-zero exit code.
func fail(err error) {
	fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
	os.Exit(1)
}

// mainify wraps a RunE-style entry point (one returning an error) so that
// cobra.Command.Run can call it while still letting the entry point use
// defer-based cleanup, which wouldn't run if the entry point called os.Exit
// itself.
func mainify(entry func(*cobra.Command, []string) error) func(*cobra.Command, []string) {
	return func(command *cobra.Command, arguments []string) {
		if err := entry(command, arguments); err != nil {
			fail(err)
		}
	}
}
