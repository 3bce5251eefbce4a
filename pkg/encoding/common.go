package encoding

import (
	"fmt"
	"os"

	"github.com/yrgoldteeth/librsync/pkg/atomicfile"
)

// LoadAndUnmarshal provides the underlying loading and unmarshaling
// functionality for the encoding package. It reads the data at the specified
// path and then invokes the specified unmarshaling callback (usually a
// closure) to decode the data.
func LoadAndUnmarshal(path string, unmarshal func([]byte) error) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return fmt.Errorf("unable to load file: %w", err)
	}
	if err := unmarshal(data); err != nil {
		return fmt.Errorf("unable to unmarshal data: %w", err)
	}
	return nil
}

// MarshalAndSave provides the underlying marshaling and saving functionality
// for the encoding package. It invokes the specified marshaling callback
// (usually a closure) and writes the result atomically to the specified
// path, with read/write permissions for the owner only.
func MarshalAndSave(path string, marshal func() ([]byte, error)) error {
	data, err := marshal()
	if err != nil {
		return fmt.Errorf("unable to marshal message: %w", err)
	}
	if err := atomicfile.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("unable to write message data: %w", err)
	}
	return nil
}
