package memtable

import (
	"bytes"

	flashiter "github.com/flashlsm/flashlsm/iterator"
)

var _ flashiter.StorageIterator = (*Iterator)(nil)

// Iterator is a forward range scan over a MemTable. It keeps a shared
// handle to the underlying map plus a cursor node; holding the node
// pointer keeps the rest of the skip list it's linked into reachable for
// as long as the Iterator lives, so no separate lifetime management is
// needed.
//
// Concurrent mutation during iteration is permitted: each key is visited
// at most once in sorted order, but the set of keys observed when writes
// race with the scan is implementation-defined — no snapshot isolation is
// provided.
type Iterator struct {
	m     *orderedMap
	curr  *skipListNode
	upper Bound
}

// Key returns the current entry's key. Valid only while IsValid is true.
func (it *Iterator) Key() []byte {
	if it.curr == nil {
		return nil
	}
	return it.curr.key
}

// Value returns the current entry's value. Valid only while IsValid is true.
func (it *Iterator) Value() []byte {
	if it.curr == nil {
		return nil
	}
	return it.curr.value
}

// IsValid reports whether the iterator is positioned on an entry within
// its upper bound.
func (it *Iterator) IsValid() bool {
	if it.curr == nil {
		return false
	}
	switch it.upper.Kind {
	case Included:
		return bytes.Compare(it.curr.key, it.upper.Key) <= 0
	case Excluded:
		return bytes.Compare(it.curr.key, it.upper.Key) < 0
	default:
		return true
	}
}

// Next advances to the next entry. Never returns a non-nil error; the
// return type exists to satisfy StorageIterator.
func (it *Iterator) Next() error {
	if it.curr == nil {
		return nil
	}
	it.curr = it.m.next(it.curr)
	return nil
}
