package strongsum

import (
	"bytes"
	"crypto/sha256"
	"testing"
)

func TestDefaultDeterministic(t *testing.T) {
	h := Default()
	a := h.Sum([]byte("the quick brown fox"))
	b := h.Sum([]byte("the quick brown fox"))
	if !bytes.Equal(a, b) {
		t.Error("identical input produced different digests")
	}
	if len(a) != h.Size() {
		t.Errorf("digest length %d != reported size %d", len(a), h.Size())
	}
}

func TestDefaultDistinguishesInput(t *testing.T) {
	h := Default()
	a := h.Sum([]byte("block one"))
	b := h.Sum([]byte("block two"))
	if bytes.Equal(a, b) {
		t.Error("distinct inputs produced identical digests")
	}
}

func TestNewWrapsArbitraryHash(t *testing.T) {
	h := New(sha256.New)
	if h.Size() != sha256.Size {
		t.Errorf("expected size %d, got %d", sha256.Size, h.Size())
	}
	sum := sha256.Sum256([]byte("data"))
	if !bytes.Equal(h.Sum([]byte("data")), sum[:]) {
		t.Error("wrapped hasher did not match direct sha256 computation")
	}
}
