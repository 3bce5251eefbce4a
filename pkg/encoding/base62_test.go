package encoding

import (
	"bytes"
	"testing"
)

func TestBase62RoundTrip(t *testing.T) {
	original := []byte{0, 1, 2, 3, 255, 254, 253, 10, 20, 30}
	encoded := EncodeBase62(original)
	decoded, err := DecodeBase62(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(original, decoded) {
		t.Errorf("round trip mismatch: %v != %v", original, decoded)
	}
}

func TestBase62UsesExpectedAlphabet(t *testing.T) {
	encoded := EncodeBase62([]byte{0, 0, 0})
	for _, r := range encoded {
		if !bytes.ContainsRune([]byte(Base62Alphabet), r) {
			t.Errorf("encoded output contains character outside alphabet: %q", r)
		}
	}
}
