package rdiff

import (
	"bytes"
	"context"
	"testing"

	"github.com/yrgoldteeth/librsync/pkg/config"
)

func TestSignatureDeltaPatchRoundTrip(t *testing.T) {
	base := bytes.Repeat([]byte("0123456789abcdef"), 8)
	target := append([]byte("NEW-PREFIX-"), base...)

	cfg := config.Default()
	cfg.BlockSize = 16

	var sig bytes.Buffer
	if err := Signature(bytes.NewReader(base), &sig, cfg); err != nil {
		t.Fatalf("signature failed: %v", err)
	}

	var delta bytes.Buffer
	stats, err := Delta(context.Background(), bytes.NewReader(target), bytes.NewReader(sig.Bytes()), &delta, cfg)
	if err != nil {
		t.Fatalf("delta failed: %v", err)
	}
	if stats.CopyCommands == 0 {
		t.Error("expected at least one copy command reusing base content")
	}

	var reconstructed bytes.Buffer
	if _, err := Patch(&reconstructed, bytes.NewReader(base), bytes.NewReader(delta.Bytes())); err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	if !bytes.Equal(reconstructed.Bytes(), target) {
		t.Fatalf("reconstructed target does not match original: got %q, want %q", reconstructed.Bytes(), target)
	}
}

func TestSignatureUsesDefaultConfigWhenNil(t *testing.T) {
	base := bytes.Repeat([]byte("x"), 100)
	var sig bytes.Buffer
	if err := Signature(bytes.NewReader(base), &sig, nil); err != nil {
		t.Fatalf("signature failed: %v", err)
	}
	if sig.Len() == 0 {
		t.Error("expected non-empty signature output")
	}
}

func TestDeltaRejectsUnknownStrongHash(t *testing.T) {
	cfg := config.Default()
	cfg.StrongHash = "made-up-hash"

	var sig bytes.Buffer
	if err := Signature(bytes.NewReader([]byte("data")), &sig, config.Default()); err != nil {
		t.Fatalf("signature failed: %v", err)
	}

	var delta bytes.Buffer
	_, err := Delta(context.Background(), bytes.NewReader([]byte("data")), bytes.NewReader(sig.Bytes()), &delta, cfg)
	if err == nil {
		t.Error("expected an error for an unknown strong hash")
	}
}
