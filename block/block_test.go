package block

import (
	"bytes"
	"fmt"
	"testing"
)

func keyOf(i int) []byte  { return []byte(fmt.Sprintf("key_%03d", i)) }
func valueOf(i int) []byte { return []byte(fmt.Sprintf("val_%010d", i)) }

func buildBlockOfSize(n int) *Block {
	b := NewBuilder(10000)
	for i := 0; i < n; i++ {
		if !b.Add(keyOf(i), valueOf(i)) {
			panic("unexpected overflow")
		}
	}
	return b.Build()
}

func TestBlockEncodeDecodeEmpty(t *testing.T) {
	blk := buildBlockOfSize(0)
	decoded := Decode(blk.Encode())

	if len(decoded.offsets) != 0 {
		t.Fatalf("expected empty offsets, got %v", decoded.offsets)
	}
	if len(decoded.data) != 0 {
		t.Fatalf("expected empty data, got %v", decoded.data)
	}
}

func TestBlockEncodeDecodeOne(t *testing.T) {
	blk := buildBlockOfSize(1)
	decoded := Decode(blk.Encode())

	if !bytes.Equal(blk.data, decoded.data) {
		t.Fatalf("data mismatch")
	}
	if !uint16SlicesEqual(blk.offsets, decoded.offsets) {
		t.Fatalf("offsets mismatch: %v vs %v", blk.offsets, decoded.offsets)
	}
}

func TestBlockEncodeDecodeRoundTrip(t *testing.T) {
	blk := buildBlockOfSize(100)
	decoded := Decode(blk.Encode())

	if !bytes.Equal(blk.data, decoded.data) {
		t.Fatalf("data mismatch")
	}
	if !uint16SlicesEqual(blk.offsets, decoded.offsets) {
		t.Fatalf("offsets mismatch")
	}
}

// Decode must tolerate an oversized buffer that still ends with the
// block's offsets and count — here, padding inserted between the last
// entry and the offsets table.
func TestBlockDecodeToleratesOversizedBuffer(t *testing.T) {
	blk := buildBlockOfSize(10)
	encoded := blk.Encode()
	dataLen := len(blk.data)
	padded := append(append([]byte{}, encoded[:dataLen]...), []byte("padding that is not part of this block")...)
	padded = append(padded, encoded[dataLen:]...)

	decoded := Decode(padded)
	if !bytes.Equal(blk.data, decoded.data) {
		t.Fatalf("data mismatch with oversized buffer")
	}
}

func uint16SlicesEqual(a, b []uint16) bool {
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
