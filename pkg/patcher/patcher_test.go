package patcher

import (
	"bytes"
	"context"
	"math/rand"
	"testing"

	"github.com/yrgoldteeth/librsync/pkg/encoder"
	"github.com/yrgoldteeth/librsync/pkg/signature"
	"github.com/yrgoldteeth/librsync/pkg/strongsum"
)

// roundTrip encodes target against base with the given block size and then
// patches it back, returning the reconstructed bytes.
func roundTrip(t *testing.T, base, target []byte, blockSize int) []byte {
	t.Helper()

	hasher := strongsum.Default()
	built, err := signature.Build(bytes.NewReader(base), blockSize, hasher)
	if err != nil {
		t.Fatalf("unable to build signature: %v", err)
	}
	var sigBytes bytes.Buffer
	if err := built.WriteTo(&sigBytes); err != nil {
		t.Fatalf("unable to serialize signature: %v", err)
	}

	var delta bytes.Buffer
	if _, err := encoder.Encode(context.Background(), bytes.NewReader(target), bytes.NewReader(sigBytes.Bytes()), &delta, encoder.DefaultConfig()); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	var reconstructed bytes.Buffer
	if _, err := Patch(&reconstructed, bytes.NewReader(base), bytes.NewReader(delta.Bytes())); err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	return reconstructed.Bytes()
}

func mustMatch(t *testing.T, target, reconstructed []byte) {
	t.Helper()
	if !bytes.Equal(target, reconstructed) {
		t.Fatalf("reconstructed target does not match original:\n  want %q (%d bytes)\n  got  %q (%d bytes)",
			truncate(target), len(target), truncate(reconstructed), len(reconstructed))
	}
}

func truncate(b []byte) []byte {
	if len(b) > 64 {
		return b[:64]
	}
	return b
}

func TestRoundTripIdentical(t *testing.T) {
	base := bytes.Repeat([]byte("0123456789abcdef"), 8)
	mustMatch(t, base, roundTrip(t, base, base, 16))
}

func TestRoundTripEmptyTarget(t *testing.T) {
	base := []byte("some base content")
	mustMatch(t, nil, roundTrip(t, base, nil, 4))
}

func TestRoundTripCompletelyDifferent(t *testing.T) {
	base := bytes.Repeat([]byte("AAAA"), 16)
	target := bytes.Repeat([]byte("zzzz"), 16)
	mustMatch(t, target, roundTrip(t, base, target, 4))
}

func TestRoundTripPrepend(t *testing.T) {
	base := bytes.Repeat([]byte("0123456789abcdef"), 4)
	target := append([]byte("NEW-PREFIX-DATA!"), base...)
	mustMatch(t, target, roundTrip(t, base, target, 16))
}

func TestRoundTripAppend(t *testing.T) {
	base := bytes.Repeat([]byte("0123456789abcdef"), 4)
	target := append(append([]byte{}, base...), []byte("NEW-SUFFIX-DATA!")...)
	mustMatch(t, target, roundTrip(t, base, target, 16))
}

func TestRoundTripSingleByteMutation(t *testing.T) {
	base := bytes.Repeat([]byte("0123456789abcdef"), 8)
	target := append([]byte{}, base...)
	target[40] = 'X'
	mustMatch(t, target, roundTrip(t, base, target, 16))
}

func TestRoundTripTruncation(t *testing.T) {
	base := bytes.Repeat([]byte("0123456789abcdef"), 8)
	target := base[:50]
	mustMatch(t, target, roundTrip(t, base, target, 16))
}

func TestRoundTripRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		base := randomBytes(rng, 50+rng.Intn(400))
		target := mutate(rng, base)
		blockSize := 4 + rng.Intn(12)
		mustMatch(t, target, roundTrip(t, base, target, blockSize))
	}
}

func randomBytes(rng *rand.Rand, n int) []byte {
	b := make([]byte, n)
	rng.Read(b)
	return b
}

// mutate produces a target related to base by a random mix of byte flips,
// insertions, and truncation, exercising the kind of partial overlap real
// diffs see.
func mutate(rng *rand.Rand, base []byte) []byte {
	out := append([]byte{}, base...)

	mutations := rng.Intn(5)
	for i := 0; i < mutations; i++ {
		if len(out) == 0 {
			break
		}
		switch rng.Intn(3) {
		case 0: // flip a byte
			out[rng.Intn(len(out))] = byte(rng.Intn(256))
		case 1: // insert random bytes
			pos := rng.Intn(len(out) + 1)
			insert := randomBytes(rng, 1+rng.Intn(8))
			out = append(out[:pos:pos], append(insert, out[pos:]...)...)
		case 2: // truncate a suffix
			cut := rng.Intn(len(out) + 1)
			out = out[:cut]
		}
	}

	return out
}
