// Package rdiff is a convenience facade over the signature, encoder, and
// patcher packages for callers that just want to compute or apply a delta
// without assembling the pieces themselves.
package rdiff

import (
	"context"
	"fmt"
	"io"

	"github.com/yrgoldteeth/librsync/pkg/command"
	"github.com/yrgoldteeth/librsync/pkg/config"
	"github.com/yrgoldteeth/librsync/pkg/encoder"
	"github.com/yrgoldteeth/librsync/pkg/patcher"
	"github.com/yrgoldteeth/librsync/pkg/signature"
	"github.com/yrgoldteeth/librsync/pkg/strongsum"
	"github.com/yrgoldteeth/librsync/pkg/wire"
)

// Signature computes the block signature of base using the given
// configuration and writes it, in wire format, to sink.
func Signature(base wire.ByteSource, sink wire.ByteSink, cfg *config.Configuration) error {
	if cfg == nil {
		cfg = config.Default()
	}
	hasher, err := cfg.Hasher()
	if err != nil {
		return fmt.Errorf("rdiff: %w", err)
	}

	built, err := signature.Build(base, cfg.BlockSize, hasher)
	if err != nil {
		return fmt.Errorf("rdiff: %w", err)
	}
	if err := built.WriteTo(sink); err != nil {
		return fmt.Errorf("rdiff: %w", err)
	}
	return nil
}

// Delta encodes target against the signature read from baseSignature,
// writing the resulting command stream to sink. It is a thin wrapper around
// encoder.Encode using a hasher resolved from cfg.
func Delta(ctx context.Context, target, baseSignature wire.ByteSource, sink wire.ByteSink, cfg *config.Configuration) (command.Stats, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	hasher, err := cfg.Hasher()
	if err != nil {
		return command.Stats{}, fmt.Errorf("rdiff: %w", err)
	}

	encConfig := encoder.DefaultConfig()
	encConfig.StrongHasher = hasher

	return encoder.Encode(ctx, target, baseSignature, sink, encConfig)
}

// Patch reconstructs a target from base and a delta stream, writing the
// result to destination. It is a thin wrapper around patcher.Patch.
func Patch(destination io.Writer, base io.ReadSeeker, delta wire.ByteSource) (patcher.Result, error) {
	return patcher.Patch(destination, base, delta)
}

// DefaultStrongHash is the strong hash algorithm Signature and Delta use
// when the caller supplies a nil or zero-value configuration.
func DefaultStrongHash() strongsum.Hasher {
	return strongsum.Default()
}
