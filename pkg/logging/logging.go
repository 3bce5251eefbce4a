package logging

import (
	"log"
	"os"
)

func init() {
	// Set the global logger to use standard error so that stdout remains
	// available for delta/signature stream output.
	log.SetOutput(os.Stderr)
	log.SetFlags(0)
}
