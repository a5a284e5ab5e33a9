package block

import (
	"bytes"
	"encoding/binary"
)

// Iterator is a forward-scan, binary-search cursor over one Block. It
// holds copies of the current entry's key and value so callers receive
// stable slices that survive later calls to Next. An Iterator is
// single-owner: it is not safe for concurrent use, though two Iterators
// may independently scan the same immutable Block from different
// goroutines.
type Iterator struct {
	block *Block
	key   []byte
	value []byte
	idx   int
}

// NewIterator returns an iterator over block, positioned before the first
// entry. Call SeekToFirst or SeekToKey before reading.
func NewIterator(block *Block) *Iterator {
	return &Iterator{block: block}
}

// CreateAndSeekToFirst returns an iterator positioned at block's first
// entry.
func CreateAndSeekToFirst(block *Block) *Iterator {
	it := NewIterator(block)
	it.SeekToFirst()
	return it
}

// CreateAndSeekToKey returns an iterator positioned at the first entry in
// block whose key is >= key.
func CreateAndSeekToKey(block *Block, key []byte) *Iterator {
	it := CreateAndSeekToFirst(block)
	it.SeekToKey(key)
	return it
}

// Key returns the current entry's key. Valid only while IsValid is true.
func (it *Iterator) Key() []byte { return it.key }

// Value returns the current entry's value. Valid only while IsValid is true.
func (it *Iterator) Value() []byte { return it.value }

// IsValid reports whether the iterator is positioned on an entry.
func (it *Iterator) IsValid() bool { return it.idx < len(it.block.offsets) }

// SeekToFirst positions the iterator at the block's first entry, if any.
func (it *Iterator) SeekToFirst() {
	if len(it.block.offsets) > 0 {
		it.setEntryIdx(0)
	}
}

// SeekToKey positions the iterator at the first entry with key >= key,
// using binary search over the offset table. Requires a non-empty block.
// If key exceeds every key in the block, the iterator lands on the last
// entry; SSTable-level callers re-check the resulting key and advance to
// the next block if needed.
func (it *Iterator) SeekToKey(key []byte) {
	l, r := 0, len(it.block.offsets)-1
	for l < r {
		m := (l + r) / 2
		if bytes.Compare(it.entryKeyAt(m), key) < 0 {
			l = m + 1
		} else {
			r = m
		}
	}
	it.setEntryIdx(l)
}

// Next advances to the next entry. The iterator may become invalid.
func (it *Iterator) Next() {
	it.idx++
	if it.idx < len(it.block.offsets) {
		it.setEntryIdx(it.idx)
	}
}

func (it *Iterator) entryKeyAt(idx int) []byte {
	off := int(it.block.offsets[idx])
	keyLen := int(binary.BigEndian.Uint16(it.block.data[off : off+2]))
	off += 2
	return it.block.data[off : off+keyLen]
}

func (it *Iterator) setEntryIdx(idx int) {
	off := int(it.block.offsets[idx])

	keyLen := int(binary.BigEndian.Uint16(it.block.data[off : off+2]))
	off += 2
	it.key = append([]byte(nil), it.block.data[off:off+keyLen]...)
	off += keyLen

	valLen := int(binary.BigEndian.Uint16(it.block.data[off : off+2]))
	off += 2
	it.value = append([]byte(nil), it.block.data[off:off+valLen]...)

	it.idx = idx
}
