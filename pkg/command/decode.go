package command

import (
	"errors"
	"fmt"

	"github.com/yrgoldteeth/librsync/pkg/wire"
)

// ErrUnsupportedVersion indicates the stream did not begin with the expected
// magic number.
var ErrUnsupportedVersion = errors.New("command: unsupported version or not a delta stream")

// ErrTruncated indicates the stream ended in the middle of a command.
var ErrTruncated = errors.New("command: truncated record")

// ErrMalformed indicates a command carried an internally inconsistent or
// unrecognized kind byte.
var ErrMalformed = errors.New("command: malformed record")

// Literal is a decoded LITERAL command.
type Literal struct{ Data []byte }

// Copy is a decoded COPY command.
type Copy struct{ Offset, Length uint64 }

// Signature is a decoded SIGNATURE command.
type Signature struct{ Payload []byte }

// Decoder reads commands from a framed delta stream produced by Emitter. It
// validates the stream header on construction.
type Decoder struct {
	source wire.ByteSource
}

// NewDecoder wraps source in a Decoder, validating the LtMagic header.
func NewDecoder(source wire.ByteSource) (*Decoder, error) {
	magic, err := wire.GetUint32(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	if magic != wire.LtMagic {
		return nil, ErrUnsupportedVersion
	}
	return &Decoder{source: source}, nil
}

// Next reads the next command from the stream. It returns exactly one of
// *Literal, *Copy, or *Signature, or (nil, io.EOF)-shaped behavior via a
// true done flag once the KindEOF marker has been consumed.
func (d *Decoder) Next() (value any, done bool, err error) {
	var kindBuf [1]byte
	if err := wire.ReadExact(d.source, kindBuf[:]); err != nil {
		return nil, false, fmt.Errorf("%w: reading command kind: %v", ErrTruncated, err)
	}

	switch Kind(kindBuf[0]) {
	case KindEOF:
		return nil, true, nil
	case KindLiteral:
		length, err := wire.GetUint32(d.source)
		if err != nil {
			return nil, false, fmt.Errorf("%w: reading literal length: %v", ErrTruncated, err)
		}
		data := make([]byte, length)
		if length > 0 {
			if err := wire.ReadExact(d.source, data); err != nil {
				return nil, false, fmt.Errorf("%w: reading literal payload: %v", ErrTruncated, err)
			}
		}
		return &Literal{Data: data}, false, nil
	case KindCopy:
		offset, err := wire.GetUint64(d.source)
		if err != nil {
			return nil, false, fmt.Errorf("%w: reading copy offset: %v", ErrTruncated, err)
		}
		length, err := wire.GetUint64(d.source)
		if err != nil {
			return nil, false, fmt.Errorf("%w: reading copy length: %v", ErrTruncated, err)
		}
		return &Copy{Offset: offset, Length: length}, false, nil
	case KindSignature:
		length, err := wire.GetUint32(d.source)
		if err != nil {
			return nil, false, fmt.Errorf("%w: reading signature length: %v", ErrTruncated, err)
		}
		payload := make([]byte, length)
		if length > 0 {
			if err := wire.ReadExact(d.source, payload); err != nil {
				return nil, false, fmt.Errorf("%w: reading signature payload: %v", ErrTruncated, err)
			}
		}
		return &Signature{Payload: payload}, false, nil
	default:
		return nil, false, fmt.Errorf("%w: unrecognized command kind %d", ErrMalformed, kindBuf[0])
	}
}
