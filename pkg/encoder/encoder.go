// Package encoder implements the streaming, single-pass delta encoder: it
// consumes a base-file signature and a target stream and produces a command
// stream describing how to reconstruct the target from the base plus a small
// set of literal bytes, while opportunistically emitting a signature for the
// target itself.
package encoder

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/yrgoldteeth/librsync/pkg/command"
	"github.com/yrgoldteeth/librsync/pkg/literal"
	"github.com/yrgoldteeth/librsync/pkg/logging"
	"github.com/yrgoldteeth/librsync/pkg/newsig"
	"github.com/yrgoldteeth/librsync/pkg/readahead"
	"github.com/yrgoldteeth/librsync/pkg/rollsum"
	"github.com/yrgoldteeth/librsync/pkg/signature"
	"github.com/yrgoldteeth/librsync/pkg/strongsum"
	"github.com/yrgoldteeth/librsync/pkg/wire"
)

// Config controls the behavior of Encode. The zero value is not valid; use
// DefaultConfig and override individual fields as needed.
type Config struct {
	// StrongHasher computes the strong hash used both to confirm weak
	// matches against the base signature and to build new-file signature
	// records. It must match the hasher that built the base signature.
	StrongHasher strongsum.Hasher
	// Logger receives a Trace-level event for each block match and
	// Debug-level events when the base signature is loaded and when the
	// encode completes. It may be nil.
	Logger *logging.Logger
}

// DefaultConfig returns a Config using the package default strong hash and
// the root logger's "encoder" sublogger.
func DefaultConfig() Config {
	return Config{
		StrongHasher: strongsum.Default(),
		Logger:       logging.RootLogger.Sublogger("encoder"),
	}
}

// Encode performs a single-pass streaming encode of target against the
// signature read from baseSignature, writing the resulting command stream to
// sink. It returns the statistics accumulated over the run.
//
// The base signature is consumed and held entirely in memory for the
// duration of the call; there is no explicit release step beyond letting the
// returned function return, since its only resource is heap memory reclaimed
// by the garbage collector once the call exits.
func Encode(ctx context.Context, target wire.ByteSource, baseSignature wire.ByteSource, sink wire.ByteSink, config Config) (command.Stats, error) {
	logger := config.Logger

	index, err := signature.Load(baseSignature, config.StrongHasher.Size())
	if err != nil {
		return command.Stats{}, wrap(classifySignatureError(err), err)
	}
	logger.Debugf("loaded base signature: %d blocks, block size %d", len(index.Hashes), index.BlockSize)

	emitter, err := command.NewEmitter(sink)
	if err != nil {
		return command.Stats{}, wrap(KindSinkIOError, err)
	}

	blockSize := index.BlockSize
	buf := readahead.NewBuffer(2 * blockSize)
	var rs rollsum.State
	var lit literal.Buffer
	sig := newsig.New(blockSize, config.StrongHasher)

	atEOF := false

	for {
		select {
		case <-ctx.Done():
			return emitter.Stats, wrap(KindCancelled, ctx.Err())
		default:
		}

		if !atEOF {
			n, ferr := buf.Fill(target)
			if ferr != nil {
				return emitter.Stats, wrap(KindSourceIOError, fmt.Errorf("reading target: %w", ferr))
			}
			if n == 0 {
				atEOF = true
			}
		}

		for {
			var scanOK bool
			if atEOF {
				scanOK = buf.Cursor() < buf.Amount()
			} else {
				scanOK = buf.Cursor()+blockSize <= buf.Amount()
			}
			if !scanOK {
				break
			}

			thisLen := blockSize
			if remaining := buf.Amount() - buf.Cursor(); remaining < thisLen {
				thisLen = remaining
			}
			window := buf.Window(thisLen)
			absPos := buf.AbsPos()

			if !rs.Seeded() || thisLen != blockSize {
				// A short window (only possible at EOF) never slides forward
				// one byte at a time the way a full block does: its length
				// shrinks by one on every subsequent miss, so the previous
				// iteration's roll-out premise no longer holds and the
				// checksum must be recomputed from scratch over exactly this
				// window.
				rs.Seed(window, blockSize)
			} else {
				rs.RollIn(window[thisLen-1])
			}
			weak := rs.Weak()

			sig.MaybeEmit(absPos, weak, window)

			if blockIndex, ok := index.FindMatch(weak, window, config.StrongHasher); ok {
				logger.Tracef("match at abspos=%d len=%d -> block %d", absPos, thisLen, blockIndex)
				if lit.Len() > 0 {
					if err := emitter.EmitLiteral(lit.Bytes()); err != nil {
						return emitter.Stats, wrap(KindSinkIOError, err)
					}
					lit.Reset()
				}
				if err := emitter.EmitCopy(uint64(blockIndex)*uint64(blockSize), uint64(thisLen)); err != nil {
					return emitter.Stats, wrap(KindSinkIOError, err)
				}
				buf.Advance(thisLen)
				rs.Reset()
			} else {
				lit.Append(buf.Byte())
				rs.RollOut(buf.Byte(), blockSize)
				buf.Advance(1)
			}
		}

		if atEOF {
			break
		}
		buf.Slide()
	}

	if lit.Len() > 0 {
		if err := emitter.EmitLiteral(lit.Bytes()); err != nil {
			return emitter.Stats, wrap(KindSinkIOError, err)
		}
		lit.Reset()
	}

	var sigPayload []byte
	built := sig.Drain()
	for _, h := range built.Hashes {
		sigPayload = appendSigRecord(sigPayload, h.Weak, h.Strong)
	}
	if err := emitter.EmitSignature(sigPayload); err != nil {
		return emitter.Stats, wrap(KindSinkIOError, err)
	}

	if err := emitter.EmitEOF(); err != nil {
		return emitter.Stats, wrap(KindSinkIOError, err)
	}

	logger.Debugf("encode complete: %+v", emitter.Stats)
	return emitter.Stats, nil
}

func classifySignatureError(err error) Kind {
	switch {
	case errors.Is(err, signature.ErrUnsupportedVersion):
		return KindUnsupportedVersion
	case errors.Is(err, signature.ErrMalformedSignature):
		return KindMalformedSignature
	case errors.Is(err, signature.ErrTruncated):
		return KindTruncatedInput
	default:
		return KindSourceIOError
	}
}

func appendSigRecord(payload []byte, weak uint32, strong []byte) []byte {
	payload = binary.BigEndian.AppendUint32(payload, weak)
	payload = append(payload, strong...)
	return payload
}
