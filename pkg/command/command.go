// Package command implements the delta command stream: the four opaque
// command kinds (LITERAL, COPY, SIGNATURE, EOF) that make up the encoder's
// output, their wire encoding, and the running statistics kept alongside
// them.
package command

import (
	"fmt"

	"github.com/yrgoldteeth/librsync/pkg/wire"
)

// Kind identifies the type of a command record.
type Kind byte

const (
	// KindLiteral carries a run of bytes copied verbatim from the target.
	KindLiteral Kind = iota + 1
	// KindCopy references a byte range from the base file.
	KindCopy
	// KindSignature carries a block of embedded new-file signature records.
	KindSignature
	// KindEOF marks the end of the command stream.
	KindEOF
)

// String returns a human-readable name for the command kind.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "LITERAL"
	case KindCopy:
		return "COPY"
	case KindSignature:
		return "SIGNATURE"
	case KindEOF:
		return "EOF"
	default:
		return fmt.Sprintf("Kind(%d)", byte(k))
	}
}

// Stats tallies the commands and bytes emitted over the lifetime of an
// Emitter, letting a caller report compression ratio and command counts
// without re-scanning the output stream.
type Stats struct {
	LiteralCommands   uint64
	LiteralBytes      uint64
	CopyCommands      uint64
	CopyBytes         uint64
	SignatureCommands uint64
	SignatureBytes    uint64
}

// Emitter writes framed commands to a sink and keeps Stats up to date. It
// writes the stream's leading magic number as soon as it is constructed.
type Emitter struct {
	sink  wire.ByteSink
	Stats Stats
}

// NewEmitter wraps sink in an Emitter, immediately writing the LtMagic
// header.
func NewEmitter(sink wire.ByteSink) (*Emitter, error) {
	if err := wire.PutUint32(sink, wire.LtMagic); err != nil {
		return nil, fmt.Errorf("unable to write stream header: %w", err)
	}
	return &Emitter{sink: sink}, nil
}

// EmitLiteral writes a LITERAL command carrying data verbatim.
func (e *Emitter) EmitLiteral(data []byte) error {
	if err := e.writeKind(KindLiteral); err != nil {
		return err
	}
	if err := wire.PutUint32(e.sink, uint32(len(data))); err != nil {
		return err
	}
	if len(data) > 0 {
		if _, err := e.sink.Write(data); err != nil {
			return err
		}
	}
	e.Stats.LiteralCommands++
	e.Stats.LiteralBytes += uint64(len(data))
	return nil
}

// EmitCopy writes a COPY command referencing length bytes of the base file
// starting at offset.
func (e *Emitter) EmitCopy(offset, length uint64) error {
	if err := e.writeKind(KindCopy); err != nil {
		return err
	}
	if err := wire.PutUint64(e.sink, offset); err != nil {
		return err
	}
	if err := wire.PutUint64(e.sink, length); err != nil {
		return err
	}
	e.Stats.CopyCommands++
	e.Stats.CopyBytes += length
	return nil
}

// EmitSignature writes a SIGNATURE command carrying a block of serialized
// new-file signature records (weak checksum followed by strong hash, for
// each record, with no inner framing).
func (e *Emitter) EmitSignature(payload []byte) error {
	if err := e.writeKind(KindSignature); err != nil {
		return err
	}
	if err := wire.PutUint32(e.sink, uint32(len(payload))); err != nil {
		return err
	}
	if len(payload) > 0 {
		if _, err := e.sink.Write(payload); err != nil {
			return err
		}
	}
	e.Stats.SignatureCommands++
	e.Stats.SignatureBytes += uint64(len(payload))
	return nil
}

// EmitEOF writes the terminating EOF command.
func (e *Emitter) EmitEOF() error {
	return e.writeKind(KindEOF)
}

func (e *Emitter) writeKind(k Kind) error {
	_, err := e.sink.Write([]byte{byte(k)})
	return err
}
