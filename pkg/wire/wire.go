// Package wire defines the byte-level I/O primitives and framing constants
// shared by the signature, command, and encoder packages.
package wire

import (
	"encoding/binary"
	"errors"
	"io"
)

// ByteSource is the minimal read capability required by the encoder's input
// streams (the base-file signature and the new-file target). Any io.Reader
// satisfies it, whether backed by a file, an in-memory buffer, or a network
// connection.
type ByteSource = io.Reader

// ByteSink is the minimal write capability required by the encoder's output
// stream. Any io.Writer satisfies it.
type ByteSink = io.Writer

// Framing magic numbers. They appear at fixed offsets described in the
// signature and command stream formats and let a reader fail fast on a
// stream produced by an incompatible version rather than silently
// misinterpreting its contents.
const (
	// SigMagic begins every signature stream, immediately followed by the
	// 4-byte block length.
	SigMagic uint32 = 0x48535347 // "HSSG"
	// LtMagic begins every delta (command) stream.
	LtMagic uint32 = 0x484c5401 // "HLT" + version 1
)

// ErrEndOfStream indicates that a read failed because the underlying source
// was cleanly exhausted before any bytes of the next field were consumed.
// Callers use this to distinguish "nothing more to read" from a truncated
// field (io.ErrUnexpectedEOF, surfaced directly).
var ErrEndOfStream = errors.New("wire: end of stream")

// GetUint32 reads a big-endian uint32 from source. If source is exhausted
// before any byte is read, it returns ErrEndOfStream. If source is exhausted
// after some but not all of the four bytes are read, it returns
// io.ErrUnexpectedEOF.
func GetUint32(source ByteSource) (uint32, error) {
	var buf [4]byte
	n, err := io.ReadFull(source, buf[:])
	if n == 0 && err == io.EOF {
		return 0, ErrEndOfStream
	}
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

// PutUint32 writes v to sink as a big-endian uint32.
func PutUint32(sink ByteSink, v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	_, err := sink.Write(buf[:])
	return err
}

// GetUint64 reads a big-endian uint64 from source.
func GetUint64(source ByteSource) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(source, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

// PutUint64 writes v to sink as a big-endian uint64.
func PutUint64(sink ByteSink, v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	_, err := sink.Write(buf[:])
	return err
}

// ReadExact reads exactly len(buf) bytes from source, distinguishing a clean
// end-of-stream (zero bytes read) from a truncated read (some bytes read,
// then exhaustion) the same way GetUint32 does.
func ReadExact(source ByteSource, buf []byte) error {
	n, err := io.ReadFull(source, buf)
	if n == 0 && err == io.EOF {
		return ErrEndOfStream
	}
	return err
}
