// Package block implements the smallest addressable unit of sorted
// key/value entries in the storage engine: an immutable Block together
// with its binary encoding and its forward/search iterator.
//
// # Encoding
//
//	+------------------------------------------------+------------------+-------+
//	| entry 0 | entry 1 | ... | entry N-1             | offsets (u16 x N) | count |
//	+------------------------------------------------+------------------+-------+
//
// Each entry is `u16 key_len | key | u16 value_len | value`, all integers
// big-endian. `offsets[i]` is the byte offset of entry i within the data
// section; `count` is the number of entries, written last so a decoder can
// slice the buffer in reverse without knowing the entry count up front.
package block

import "encoding/binary"

// Block is an immutable, self-describing, sorted run of (key, value)
// entries. The zero value is not useful; construct one with BlockBuilder
// or Decode.
type Block struct {
	data    []byte
	offsets []uint16
}

// Data returns the block's raw entry bytes. The returned slice must not be
// modified.
func (b *Block) Data() []byte { return b.data }

// Offsets returns the block's offset table. The returned slice must not be
// modified.
func (b *Block) Offsets() []uint16 { return b.offsets }

// NumEntries reports how many entries the block holds.
func (b *Block) NumEntries() int { return len(b.offsets) }

// Encode serializes the block to its on-disk representation: data,
// followed by the offsets table, followed by a u16 entry count.
func (b *Block) Encode() []byte {
	buf := make([]byte, 0, len(b.data)+2*len(b.offsets)+2)
	buf = append(buf, b.data...)
	for _, off := range b.offsets {
		buf = binary.BigEndian.AppendUint16(buf, off)
	}
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(b.offsets)))
	return buf
}

// Decode parses a Block out of a byte slice. buf must end with the block's
// offsets table and entry count, but need not be tightly sized before that:
// Decode computes the exact length of the data section from the last offset
// entry, so bytes between the last entry and the offsets table are not
// taken as data.
func Decode(buf []byte) *Block {
	idx := len(buf) - 2
	count := int(binary.BigEndian.Uint16(buf[idx:]))

	if count == 0 {
		return &Block{data: nil, offsets: nil}
	}

	idx -= count * 2
	offsets := make([]uint16, count)
	for i := 0; i < count; i++ {
		offsets[i] = binary.BigEndian.Uint16(buf[idx : idx+2])
		idx += 2
	}

	dataLen := int(offsets[count-1])
	keyLen := int(binary.BigEndian.Uint16(buf[dataLen : dataLen+2]))
	dataLen += 2 + keyLen
	valLen := int(binary.BigEndian.Uint16(buf[dataLen : dataLen+2]))
	dataLen += 2 + valLen

	data := make([]byte, dataLen)
	copy(data, buf[:dataLen])

	return &Block{data: data, offsets: offsets}
}
