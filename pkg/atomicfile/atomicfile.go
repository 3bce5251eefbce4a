// Package atomicfile provides a crash-safe file write primitive: data is
// written to a temporary file in the destination directory and then swapped
// into place with a rename, so a reader never observes a partially written
// file.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// temporaryNamePrefix is the file name prefix used for intermediate
// temporary files.
const temporaryNamePrefix = ".librsync-atomic-write"

// WriteFile writes data to path in an atomic fashion by using an
// intermediate temporary file that is swapped into place using a rename
// operation.
func WriteFile(path string, data []byte, permissions os.FileMode) error {
	temporary, err := os.CreateTemp(filepath.Dir(path), temporaryNamePrefix)
	if err != nil {
		return fmt.Errorf("unable to create temporary file: %w", err)
	}
	temporaryName := temporary.Name()

	if _, err = temporary.Write(data); err != nil {
		temporary.Close()
		os.Remove(temporaryName)
		return fmt.Errorf("unable to write data to temporary file: %w", err)
	}

	if err = temporary.Close(); err != nil {
		os.Remove(temporaryName)
		return fmt.Errorf("unable to close temporary file: %w", err)
	}

	if err = os.Chmod(temporaryName, permissions); err != nil {
		os.Remove(temporaryName)
		return fmt.Errorf("unable to change file permissions: %w", err)
	}

	if err = os.Rename(temporaryName, path); err != nil {
		os.Remove(temporaryName)
		return fmt.Errorf("unable to rename file: %w", err)
	}

	return nil
}
