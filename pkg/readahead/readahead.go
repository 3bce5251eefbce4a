// Package readahead implements the fixed-capacity lookahead buffer the
// encoder scans over: a single growing-then-sliding window into the target
// stream that avoids re-reading or unbounded buffering.
package readahead

import (
	"io"

	"github.com/yrgoldteeth/librsync/pkg/wire"
)

// Buffer holds a window of unconsumed target bytes. Bytes in [0, cursor) have
// already been scanned and emitted as either a literal or part of a copy;
// bytes in [cursor, amount) have been read from the source but not yet
// consumed; bytes in
// [amount, len(buf)) are free capacity available to Fill.
type Buffer struct {
	buf    []byte
	amount int
	cursor int
	abspos int64
}

// NewBuffer allocates a buffer with the given capacity. Capacity must be at
// least twice the configured block size so that a full block is always
// available to scan without an intervening slide, per the invariant that a
// slide only happens when the scan loop runs dry.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{buf: make([]byte, capacity)}
}

// Fill attempts a single read into the buffer's free capacity, returning the
// number of bytes added. A return of zero means the source is exhausted;
// io.EOF itself is never returned, since the encoder distinguishes "no more
// data" from "no more data, and also I/O is broken" purely by the byte
// count, matching io.Reader's own convention that EOF may arrive alongside a
// final non-empty read.
func (b *Buffer) Fill(source wire.ByteSource) (int, error) {
	n, err := source.Read(b.buf[b.amount:])
	if n > 0 {
		b.amount += n
	}
	if err != nil {
		if err == io.EOF {
			return n, nil
		}
		return n, err
	}
	return n, nil
}

// Slide discards the already-consumed prefix [0, cursor) by copying the
// remaining bytes to the front of the buffer, freeing capacity for the next
// Fill. The absolute position tracked by AbsPos is unaffected by the copy.
func (b *Buffer) Slide() {
	remaining := b.amount - b.cursor
	copy(b.buf[:remaining], b.buf[b.cursor:b.amount])
	b.abspos += int64(b.cursor)
	b.amount = remaining
	b.cursor = 0
}

// Window returns the next n bytes starting at the cursor. The caller must
// ensure n bytes are actually available (Amount()-Cursor() >= n).
func (b *Buffer) Window(n int) []byte {
	return b.buf[b.cursor : b.cursor+n]
}

// Byte returns the single byte at the cursor. The caller must ensure at
// least one byte is available.
func (b *Buffer) Byte() byte {
	return b.buf[b.cursor]
}

// Advance moves the cursor forward by n bytes, marking them consumed.
func (b *Buffer) Advance(n int) {
	b.cursor += n
}

// Amount returns the number of valid bytes currently held, including the
// already-consumed prefix.
func (b *Buffer) Amount() int {
	return b.amount
}

// Cursor returns the offset of the first unconsumed byte within the buffer.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// Capacity returns the total byte capacity of the buffer.
func (b *Buffer) Capacity() int {
	return len(b.buf)
}

// AbsPos returns the absolute position, in the original target stream, of
// the first unconsumed byte.
func (b *Buffer) AbsPos() int64 {
	return b.abspos + int64(b.cursor)
}
