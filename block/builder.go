package block

import "encoding/binary"

// Builder packs a stream of sorted (key, value) entries into one Block,
// refusing additions once the configured size budget would be exceeded.
// A Builder is single-owner: it is not safe for concurrent use.
type Builder struct {
	data      []byte
	offsets   []uint16
	blockSize int
	currSize  int
}

// NewBuilder returns a Builder with a target size budget of blockSize
// bytes for the encoded block (data + offsets + trailing count).
func NewBuilder(blockSize int) *Builder {
	return &Builder{
		blockSize: blockSize,
		currSize:  2, // reserve the trailing u16 entry count
	}
}

// Add appends (key, value) to the block if doing so would not exceed the
// size budget. It reports whether the entry was added; on false, the
// builder is left unchanged.
func (b *Builder) Add(key, value []byte) bool {
	cost := 6 + len(key) + len(value) // 2 key_len + 2 val_len + 2 offset
	if b.currSize+cost > b.blockSize {
		return false
	}

	b.offsets = append(b.offsets, uint16(len(b.data)))
	b.data = binary.BigEndian.AppendUint16(b.data, uint16(len(key)))
	b.data = append(b.data, key...)
	b.data = binary.BigEndian.AppendUint16(b.data, uint16(len(value)))
	b.data = append(b.data, value...)
	b.currSize += cost

	return true
}

// IsEmpty reports whether the builder has accumulated no entries.
func (b *Builder) IsEmpty() bool { return len(b.offsets) == 0 }

// Build consumes the builder and returns the accumulated Block. The
// builder must not be used after calling Build.
func (b *Builder) Build() *Block {
	return &Block{data: b.data, offsets: b.offsets}
}
