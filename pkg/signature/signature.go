// Package signature implements the base-file block signature: its wire
// format, the index used to probe it during encoding, and a helper to
// construct one from a base stream.
package signature

import (
	"errors"
	"fmt"

	"github.com/yrgoldteeth/librsync/pkg/rollsum"
	"github.com/yrgoldteeth/librsync/pkg/strongsum"
	"github.com/yrgoldteeth/librsync/pkg/wire"
)

// Sentinel errors describing why a signature stream could not be loaded.
// The encoder package classifies these into its own error kinds; callers
// that only care about signature loading can match against these directly.
var (
	// ErrUnsupportedVersion indicates the stream did not begin with the
	// expected magic number.
	ErrUnsupportedVersion = errors.New("signature: unsupported version or not a signature stream")
	// ErrMalformedSignature indicates the stream's header was structurally
	// invalid (for example, a non-positive block size).
	ErrMalformedSignature = errors.New("signature: malformed header")
	// ErrTruncated indicates the stream ended in the middle of a record.
	ErrTruncated = errors.New("signature: truncated record")
)

// BlockHash is a single signature record: the weak and strong checksums of
// one block of the base file, implicitly numbered by its position in the
// stream (the first record is block 0).
type BlockHash struct {
	Weak   uint32
	Strong []byte
}

// Index is a base-file signature loaded into memory and organized for fast
// weak-checksum probing during encoding. It is a plain value owned by
// whichever call loaded it; there is no separate release step; letting it go
// out of scope is sufficient; its only resource is the Go heap.
type Index struct {
	BlockSize int
	StrongLen int
	Hashes    []BlockHash

	byWeak map[uint32][]int
}

// Load reads a complete signature stream from source: the magic number, the
// block size, and every (weak, strong) record until the stream is
// exhausted. strongLen is the expected length, in bytes, of each strong
// hash; it is determined by whatever Hasher the caller intends to use for
// match confirmation and must match the Hasher that built the signature.
func Load(source wire.ByteSource, strongLen int) (*Index, error) {
	magic, err := wire.GetUint32(source)
	if err != nil {
		if errors.Is(err, wire.ErrEndOfStream) {
			return nil, fmt.Errorf("%w: empty stream", ErrUnsupportedVersion)
		}
		return nil, fmt.Errorf("%w: reading magic: %v", ErrTruncated, err)
	}
	if magic != wire.SigMagic {
		return nil, ErrUnsupportedVersion
	}

	rawBlockSize, err := wire.GetUint32(source)
	if err != nil {
		return nil, fmt.Errorf("%w: reading block size: %v", ErrTruncated, err)
	}
	blockSize := int(int32(rawBlockSize))
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: non-positive block size %d", ErrMalformedSignature, blockSize)
	}

	index := &Index{
		BlockSize: blockSize,
		StrongLen: strongLen,
		byWeak:    make(map[uint32][]int),
	}

	for {
		weak, err := wire.GetUint32(source)
		if err != nil {
			if errors.Is(err, wire.ErrEndOfStream) {
				break
			}
			return nil, fmt.Errorf("%w: reading weak checksum: %v", ErrTruncated, err)
		}

		strong := make([]byte, strongLen)
		if err := wire.ReadExact(source, strong); err != nil {
			return nil, fmt.Errorf("%w: reading strong checksum: %v", ErrTruncated, err)
		}

		index.Hashes = append(index.Hashes, BlockHash{Weak: weak, Strong: strong})
		position := len(index.Hashes) - 1
		index.byWeak[weak] = append(index.byWeak[weak], position)
	}

	return index, nil
}

// FindMatch searches for a block whose weak checksum equals weak and whose
// strong hash (computed lazily, only if a weak match exists) equals the
// strong hash of data. Among multiple weak collisions it returns the lowest
// block index, matching the deterministic tie-break used when the signature
// was scanned in order. The returned index is zero-based; the corresponding
// base-file byte offset is index*BlockSize.
func (idx *Index) FindMatch(weak uint32, data []byte, hasher strongsum.Hasher) (int, bool) {
	candidates := idx.byWeak[weak]
	if len(candidates) == 0 {
		return 0, false
	}

	strong := hasher.Sum(data)
	best := -1
	for _, candidate := range candidates {
		if bytesEqual(idx.Hashes[candidate].Strong, strong) {
			if best == -1 || candidate < best {
				best = candidate
			}
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Built is an in-memory signature ready to be serialized with WriteTo. It is
// produced by Build, a supplementary helper (the wire-level consumer
// contract does not itself specify how a signature is constructed) used by
// the signature subcommand and by tests that need round-trip fixtures.
type Built struct {
	BlockSize int
	Hashes    []BlockHash
}

// Build scans base in fixed-size blocks of blockSize bytes (the final block
// may be shorter) and computes the weak and strong checksum of each,
// producing a signature that FindMatch can later probe against. The weak
// checksum of a short final block is computed with blockSize as the rolling
// weight, matching the convention the encoder's readahead scan uses so that
// short blocks remain comparable.
func Build(base wire.ByteSource, blockSize int, hasher strongsum.Hasher) (*Built, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: non-positive block size %d", ErrMalformedSignature, blockSize)
	}

	built := &Built{BlockSize: blockSize}
	buf := make([]byte, blockSize)

	for {
		n, err := readFull(base, buf)
		if n > 0 {
			var rs rollsum.State
			rs.Seed(buf[:n], blockSize)
			built.Hashes = append(built.Hashes, BlockHash{
				Weak:   rs.Weak(),
				Strong: hasher.Sum(buf[:n]),
			})
		}
		if err != nil || n < blockSize {
			break
		}
	}

	return built, nil
}

// readFull reads until buf is full, the reader returns an error, or the
// reader returns zero bytes without an error. Unlike io.ReadFull, which
// treats a short final read as an error, it returns the bytes read together
// with the reader's own error (io.EOF once nothing more is available).
func readFull(source wire.ByteSource, buf []byte) (int, error) {
	var total int
	for total < len(buf) {
		n, err := source.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			// A reader that returns (0, nil) makes no progress; treat
			// repeated zero-length reads as exhaustion to avoid looping
			// forever, mirroring bufio.Reader's defensive behavior.
			return total, nil
		}
	}
	return total, nil
}

// WriteTo serializes the signature in the wire format consumed by Load:
// magic, block size, then each (weak, strong) record in order.
func (b *Built) WriteTo(sink wire.ByteSink) error {
	if err := wire.PutUint32(sink, wire.SigMagic); err != nil {
		return err
	}
	if err := wire.PutUint32(sink, uint32(int32(b.BlockSize))); err != nil {
		return err
	}
	for _, h := range b.Hashes {
		if err := wire.PutUint32(sink, h.Weak); err != nil {
			return err
		}
		if _, err := sink.Write(h.Strong); err != nil {
			return err
		}
	}
	return nil
}
