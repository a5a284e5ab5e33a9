package sstable

import (
	"bytes"

	"github.com/flashlsm/flashlsm/block"
	flashiter "github.com/flashlsm/flashlsm/iterator"
)

var _ flashiter.StorageIterator = (*Iterator)(nil)

// Iterator scans an SSTable's entries in key order, crossing block
// boundaries transparently.
type Iterator struct {
	table     *SSTable
	blockIter *block.Iterator
	blockIdx  int
}

// CreateAndSeekToFirst returns an iterator positioned at table's smallest
// key.
func CreateAndSeekToFirst(table *SSTable) (*Iterator, error) {
	it := &Iterator{table: table}
	if err := it.SeekToFirst(); err != nil {
		return nil, err
	}
	return it, nil
}

// SeekToFirst repositions the iterator at table's smallest key.
func (it *Iterator) SeekToFirst() error {
	if it.table.NumBlocks() == 0 {
		it.blockIter = nil
		it.blockIdx = 0
		return nil
	}

	blk, err := it.table.readBlockMaybeCached(0)
	if err != nil {
		return err
	}
	it.blockIter = block.CreateAndSeekToFirst(blk)
	it.blockIdx = 0
	return nil
}

// CreateAndSeekToKey returns an iterator positioned at the first entry
// whose key is >= key, or exhausted if no such entry exists.
func CreateAndSeekToKey(table *SSTable, key []byte) (*Iterator, error) {
	it := &Iterator{table: table}
	if err := it.SeekToKey(key); err != nil {
		return nil, err
	}
	return it, nil
}

// SeekToKey repositions the iterator at the first entry whose key is >=
// key. FindBlockIdx only guarantees that the target block is the last one
// whose FirstKey <= key; if key falls strictly between that block's last
// entry and the next block's FirstKey, the block-local seek lands on the
// last entry with a key still below the target, so this advances block by
// block (re-seeking to first, since a later block's FirstKey is
// necessarily > key) until it lands on a qualifying entry or the table is
// exhausted.
func (it *Iterator) SeekToKey(key []byte) error {
	if it.table.NumBlocks() == 0 {
		it.blockIter = nil
		it.blockIdx = 0
		return nil
	}

	idx := it.table.FindBlockIdx(key)
	blk, err := it.table.readBlockMaybeCached(idx)
	if err != nil {
		return err
	}
	bi := block.CreateAndSeekToKey(blk, key)

	for !bi.IsValid() || bytes.Compare(bi.Key(), key) < 0 {
		idx++
		if idx >= it.table.NumBlocks() {
			it.blockIdx = idx
			it.blockIter = nil
			return nil
		}
		blk, err = it.table.readBlockMaybeCached(idx)
		if err != nil {
			return err
		}
		bi = block.CreateAndSeekToFirst(blk)
	}

	it.blockIdx = idx
	it.blockIter = bi
	return nil
}

// Key returns the current entry's key. Valid only while IsValid is true.
func (it *Iterator) Key() []byte { return it.blockIter.Key() }

// Value returns the current entry's value. Valid only while IsValid is true.
func (it *Iterator) Value() []byte { return it.blockIter.Value() }

// IsValid reports whether the iterator has a current entry.
func (it *Iterator) IsValid() bool { return it.blockIter != nil && it.blockIter.IsValid() }

// Next advances to the next entry, crossing into the following block when
// the current one is exhausted.
func (it *Iterator) Next() error {
	if it.blockIter == nil {
		return nil
	}

	it.blockIter.Next()
	if it.blockIter.IsValid() {
		return nil
	}

	for {
		it.blockIdx++
		if it.blockIdx >= it.table.NumBlocks() {
			it.blockIter = nil
			return nil
		}

		blk, err := it.table.readBlockMaybeCached(it.blockIdx)
		if err != nil {
			return err
		}
		it.blockIter = block.CreateAndSeekToFirst(blk)
		if it.blockIter.IsValid() {
			return nil
		}
	}
}
