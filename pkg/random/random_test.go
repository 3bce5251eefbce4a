package random

import (
	"bytes"
	"testing"
)

// TestNew tests New.
func TestNew(t *testing.T) {
	if data, err := New(CollisionResistantLength); err != nil {
		t.Fatal("unable to create random data:", err)
	} else if len(data) != CollisionResistantLength {
		t.Error("random data did not have expected length:", len(data), "!=", CollisionResistantLength)
	}
}

// TestNewDistinct verifies that successive calls don't return identical
// buffers (a cheap sanity check that we're actually reading from the CSPRNG).
func TestNewDistinct(t *testing.T) {
	a, err := New(CollisionResistantLength)
	if err != nil {
		t.Fatal("unable to create random data:", err)
	}
	b, err := New(CollisionResistantLength)
	if err != nil {
		t.Fatal("unable to create random data:", err)
	}
	if bytes.Equal(a, b) {
		t.Error("two independent random buffers were identical")
	}
}
