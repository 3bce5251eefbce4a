// Package patcher applies a delta command stream produced by pkg/encoder
// against the original base file to reconstruct the target. The wire-level
// signature and delta formats in this module specify only the producer
// (encoder) side; this package supplies the matching consumer so that an
// encode can be verified end-to-end, in the spirit of mutagen's own
// Engine.Patch.
package patcher

import (
	"errors"
	"fmt"
	"io"

	"github.com/yrgoldteeth/librsync/pkg/command"
	"github.com/yrgoldteeth/librsync/pkg/wire"
)

// ErrUnexpectedSignature indicates a SIGNATURE command was found before the
// end of the delta stream, at a position other than immediately preceding
// EOF. The encoder always flushes the embedded new-file signature exactly
// once, right before EOF; a conforming delta never does otherwise.
var ErrUnexpectedSignature = errors.New("patcher: unexpected signature command mid-stream")

// Result reports what a Patch call observed on the delta stream, in
// addition to writing the reconstructed target to the destination.
type Result struct {
	// EmbeddedSignature is the payload of the trailing SIGNATURE command,
	// verbatim, if present.
	EmbeddedSignature []byte
}

// Patch reads a delta stream from delta, reconstructing the original target
// by copying ranges from base (which must support seeking, since COPY
// commands reference arbitrary offsets) and writing literal bytes directly,
// and writes the result to destination.
func Patch(destination io.Writer, base io.ReadSeeker, delta wire.ByteSource) (Result, error) {
	decoder, err := command.NewDecoder(delta)
	if err != nil {
		return Result{}, fmt.Errorf("unable to read delta header: %w", err)
	}

	var result Result
	seenSignature := false

	for {
		value, done, err := decoder.Next()
		if err != nil {
			return result, fmt.Errorf("unable to read command: %w", err)
		}
		if done {
			return result, nil
		}

		if seenSignature {
			return result, ErrUnexpectedSignature
		}

		switch v := value.(type) {
		case *command.Literal:
			if len(v.Data) > 0 {
				if _, err := destination.Write(v.Data); err != nil {
					return result, fmt.Errorf("unable to write literal data: %w", err)
				}
			}
		case *command.Copy:
			if _, err := base.Seek(int64(v.Offset), io.SeekStart); err != nil {
				return result, fmt.Errorf("unable to seek base to offset %d: %w", v.Offset, err)
			}
			if err := copyExactly(destination, base, v.Length); err != nil {
				return result, fmt.Errorf("unable to copy %d bytes from base offset %d: %w", v.Length, v.Offset, err)
			}
		case *command.Signature:
			seenSignature = true
			result.EmbeddedSignature = v.Payload
		}
	}
}

// copyExactly copies exactly n bytes from src to dst, failing if src runs
// out early.
func copyExactly(dst io.Writer, src io.Reader, n uint64) error {
	_, err := io.CopyN(dst, src, int64(n))
	return err
}
