// Package literal implements the literal-byte accumulator the encoder uses
// to coalesce consecutive unmatched bytes into a single LITERAL command
// instead of emitting one command per byte.
package literal

// Buffer accumulates bytes that did not participate in a block match. It is
// flushed as a single command whenever a match is found or the stream ends.
type Buffer struct {
	data []byte
}

// Append adds a single byte to the buffer.
func (b *Buffer) Append(c byte) {
	b.data = append(b.data, c)
}

// AppendSlice adds a slice of bytes to the buffer.
func (b *Buffer) AppendSlice(data []byte) {
	b.data = append(b.data, data...)
}

// Len returns the number of buffered bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the buffered bytes. The returned slice is only valid until
// the next call to Reset.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Reset empties the buffer, retaining its backing array so that repeated
// short literal runs don't force reallocation.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}
