package random

import (
	"crypto/rand"
	"fmt"
)

// CollisionResistantLength is the number of random bytes used when
// generating identifiers that must be collision-resistant (see the
// identifier package).
const CollisionResistantLength = 32

// New returns a byte slice of the specified length with cryptographically
// random contents.
func New(length int) ([]byte, error) {
	result := make([]byte, length)
	if _, err := rand.Read(result); err != nil {
		return nil, fmt.Errorf("unable to read random data: %w", err)
	}
	return result, nil
}
