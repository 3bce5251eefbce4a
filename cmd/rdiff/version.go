package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// rdiffVersion is the semantic version of the rdiff command line tool. It is
// bumped by hand alongside tagged releases.
const rdiffVersion = "0.1.0"

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Print the rdiff version",
	Args:  cobra.NoArgs,
	Run:   mainify(versionMain),
}

func versionMain(command *cobra.Command, arguments []string) error {
	fmt.Println(rdiffVersion)
	return nil
}
