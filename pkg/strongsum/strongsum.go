// Package strongsum computes the content-addressing strong hash used to
// confirm a weak-checksum match before it is trusted. The weak checksum is
// cheap but collision-prone; the strong hash is expensive but, for any
// reasonable digest size, collision-resistant enough to trust unconditionally
// once it matches.
package strongsum

import (
	"hash"

	"golang.org/x/crypto/blake2b"
)

// Hasher computes the strong hash for a block of data. It wraps a
// constructor for the underlying hash.Hash rather than a single instance so
// that a Hasher value can be shared and used to create independent digest
// computations.
type Hasher struct {
	newHash func() hash.Hash
	size    int
}

// New wraps an arbitrary hash.Hash constructor as a Hasher.
func New(newHash func() hash.Hash) Hasher {
	return Hasher{newHash: newHash, size: newHash().Size()}
}

// Default returns the default strong hash, BLAKE2b-256. It is preferred over
// the classic librsync choice of MD4/MD5 because it has no known practical
// collision weaknesses and is fast on modern hardware without requiring
// specialized instructions.
func Default() Hasher {
	return New(func() hash.Hash {
		h, err := blake2b.New256(nil)
		if err != nil {
			// blake2b.New256 only fails for an over-length key, and we never
			// supply one.
			panic(err)
		}
		return h
	})
}

// Size returns the digest size, in bytes, produced by this Hasher.
func (h Hasher) Size() int {
	return h.size
}

// Sum computes the strong hash of data and returns a newly allocated digest.
func (h Hasher) Sum(data []byte) []byte {
	digest := h.newHash()
	digest.Write(data)
	return digest.Sum(nil)
}
