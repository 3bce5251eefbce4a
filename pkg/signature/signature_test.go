package signature

import (
	"bytes"
	"testing"

	"github.com/yrgoldteeth/librsync/pkg/strongsum"
)

func TestBuildLoadRoundTrip(t *testing.T) {
	hasher := strongsum.Default()
	base := []byte("0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ!?") // 64 bytes, block 16, four distinct blocks

	built, err := Build(bytes.NewReader(base), 16, hasher)
	if err != nil {
		t.Fatal(err)
	}
	if len(built.Hashes) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(built.Hashes))
	}

	var wireBytes bytes.Buffer
	if err := built.WriteTo(&wireBytes); err != nil {
		t.Fatal(err)
	}

	idx, err := Load(&wireBytes, hasher.Size())
	if err != nil {
		t.Fatal(err)
	}
	if idx.BlockSize != 16 {
		t.Errorf("expected block size 16, got %d", idx.BlockSize)
	}
	if len(idx.Hashes) != 4 {
		t.Fatalf("expected 4 loaded blocks, got %d", len(idx.Hashes))
	}

	for i, h := range idx.Hashes {
		blockStart := i * 16
		match, ok := idx.FindMatch(h.Weak, base[blockStart:blockStart+16], hasher)
		if !ok {
			t.Errorf("block %d: expected a match", i)
		}
		if match != i {
			t.Errorf("block %d: matched index %d instead", i, match)
		}
	}
}

func TestFindMatchNoCandidates(t *testing.T) {
	idx := &Index{BlockSize: 4, StrongLen: 32, byWeak: map[uint32][]int{}}
	if _, ok := idx.FindMatch(12345, []byte("abcd"), strongsum.Default()); ok {
		t.Error("expected no match against an empty index")
	}
}

func TestFindMatchLowestIndexTieBreak(t *testing.T) {
	hasher := strongsum.Default()
	data := []byte("tie-break-block!")
	strong := hasher.Sum(data)

	idx := &Index{
		BlockSize: len(data),
		StrongLen: hasher.Size(),
		Hashes: []BlockHash{
			{Weak: 7, Strong: strong},
			{Weak: 7, Strong: strong},
		},
		byWeak: map[uint32][]int{7: {0, 1}},
	}

	match, ok := idx.FindMatch(7, data, hasher)
	if !ok || match != 0 {
		t.Errorf("expected lowest-index match 0, got %d (ok=%v)", match, ok)
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0, 0, 0, 0})
	if _, err := Load(&buf, 32); err != ErrUnsupportedVersion {
		t.Errorf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestLoadRejectsNonPositiveBlockSize(t *testing.T) {
	var buf bytes.Buffer
	// Build rejects a zero block size outright, so construct the header
	// directly to exercise Load's own check.
	writeHeader(&buf, 0)
	if _, err := Load(&buf, 32); err == nil {
		t.Error("expected error for non-positive block size")
	}
}

func TestLoadRejectsTruncatedRecord(t *testing.T) {
	var buf bytes.Buffer
	writeHeader(&buf, 16)
	buf.Write([]byte{0, 0, 0, 1}) // weak checksum with no following strong hash
	if _, err := Load(&buf, 32); err == nil {
		t.Error("expected error for truncated record")
	}
}

func writeHeader(buf *bytes.Buffer, blockSize int32) {
	built := &Built{BlockSize: int(blockSize)}
	built.WriteTo(buf)
}
