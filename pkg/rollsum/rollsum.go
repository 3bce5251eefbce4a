// Package rollsum implements the rolling weak checksum used to find
// candidate matching blocks in a streaming diff. The algorithm is the one
// described on page 55 of the rsync thesis: two 16-bit accumulators, s1 and
// s2, combined into a 32-bit checksum. Unlike a plain sum, the checksum can
// be updated in O(1) as a byte window slides forward one position at a time,
// without rescanning the window.
package rollsum

// CharOffset is added to every byte value before it is folded into the
// checksum accumulators. This is the traditional rsync/librsync bias; it
// has no effect on collision behavior but matches the wire-compatible
// definition of the checksum.
const CharOffset uint16 = 31

// State holds the rolling checksum accumulators for a single window. It must
// be seeded with Seed before Weak is meaningful, and reset with Reset
// whenever the window jumps to a non-adjacent position.
type State struct {
	s1, s2 uint16
	seeded bool
}

// Seeded reports whether the state currently holds a valid checksum, i.e.
// whether it was seeded (directly or via a completed roll) since the last
// Reset.
func (s *State) Seeded() bool {
	return s.seeded
}

// Reset clears the state, forcing the next window to be established with
// Seed rather than an incremental roll. This must be called after every
// non-adjacent window jump (a COPY match), since the rolling update formulas
// are only valid for a window that slides forward one byte at a time.
func (s *State) Reset() {
	s.s1, s.s2 = 0, 0
	s.seeded = false
}

// Seed computes the checksum from scratch over data, which must have length
// at most blockSize. blockSize (not len(data)) is used as the per-byte
// weight so that a short final block's checksum remains comparable to
// full-size blocks computed the same way during signature construction.
func (s *State) Seed(data []byte, blockSize int) {
	var s1, s2 uint16
	b := uint16(blockSize)
	for i, c := range data {
		v := uint16(c) + CharOffset
		s1 += v
		s2 += (b - uint16(i)) * v
	}
	s.s1, s.s2 = s1, s2
	s.seeded = true
}

// RollOut removes the contribution of a byte that is leaving the window from
// the front. It is the first half of advancing the window by one byte; the
// caller completes the roll on the next iteration by calling RollIn once the
// new trailing byte of the window is known.
func (s *State) RollOut(out byte, blockSize int) {
	v := uint16(out) + CharOffset
	s.s1 -= v
	s.s2 -= uint16(blockSize) * v
}

// RollIn adds the contribution of the byte that has just entered the window
// at the back, completing a roll started by RollOut.
func (s *State) RollIn(in byte) {
	v := uint16(in) + CharOffset
	s.s1 += v
	s.s2 += s.s1
	s.seeded = true
}

// Weak returns the current 32-bit weak checksum, combining both
// accumulators. It is only meaningful once the state has been seeded.
func (s *State) Weak() uint32 {
	return uint32(s.s2)<<16 | uint32(s.s1)
}
