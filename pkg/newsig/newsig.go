// Package newsig implements the embedded new-signature emitter: as the
// encoder scans the target (new) file it opportunistically computes block
// signatures for the new data, so that a later diff against this target
// doesn't require a separate signature pass over it.
package newsig

import (
	"github.com/yrgoldteeth/librsync/pkg/signature"
	"github.com/yrgoldteeth/librsync/pkg/strongsum"
)

// Emitter accumulates new-file block signature records as the encoder scans
// forward, firing exactly when the current scan window is aligned to a
// block boundary in the new file.
type Emitter struct {
	blockSize int
	hasher    strongsum.Hasher
	records   []signature.BlockHash
}

// New creates an Emitter for the given block size and strong hasher. These
// must match the block size and hasher the encoder is using so that the
// emitted signature is immediately usable as a base signature for a future
// encode of this same target.
func New(blockSize int, hasher strongsum.Hasher) *Emitter {
	return &Emitter{blockSize: blockSize, hasher: hasher}
}

// MaybeEmit is called once per scan iteration with the absolute position of
// the start of the current window, its already-computed weak checksum, and
// its contents. It records a new signature block if and only if absPos is a
// non-negative multiple of the block size and the window is non-empty.
func (e *Emitter) MaybeEmit(absPos int64, weak uint32, window []byte) {
	if len(window) == 0 {
		return
	}
	if absPos < 0 || absPos%int64(e.blockSize) != 0 {
		return
	}
	e.records = append(e.records, signature.BlockHash{
		Weak:   weak,
		Strong: e.hasher.Sum(window),
	})
}

// Count returns the number of records accumulated since the last Drain.
func (e *Emitter) Count() int {
	return len(e.records)
}

// Drain returns the accumulated records as a Built signature, ready to be
// serialized with its WriteTo method, and clears the emitter's internal
// state.
func (e *Emitter) Drain() *signature.Built {
	built := &signature.Built{
		BlockSize: e.blockSize,
		Hashes:    e.records,
	}
	e.records = nil
	return built
}
