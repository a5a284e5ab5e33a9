// Package memtable implements the in-memory, mutable write buffer: a
// concurrent ordered map with range scans, flushable into an SSTable.
package memtable

import (
	"sync/atomic"

	"github.com/flashlsm/flashlsm/sstable"
)

// MemTable is a concurrent ordered key/value store. Put and Get are safe
// to call from any goroutine. estimatedSize accumulates the size of every
// insert ever made — including overwrites — and is never decremented;
// tracking the true live size would mean diffing old and new value
// lengths on every overwrite for a counter that only exists to decide
// when to flush, so it stays a monotonic upper-bound heuristic rather
// than exact accounting.
type MemTable struct {
	m             *orderedMap
	estimatedSize atomic.Int64
}

// New returns an empty MemTable.
func New() *MemTable {
	return &MemTable{m: newOrderedMap()}
}

// Put inserts key, or replaces its value if key is already present.
func (t *MemTable) Put(key, value []byte) {
	t.m.Put(key, value)
	t.estimatedSize.Add(int64(len(key) + len(value)))
}

// Get returns the value stored under key, if present.
func (t *MemTable) Get(key []byte) ([]byte, bool) {
	return t.m.Get(key)
}

// EstimatedSize returns the monotonically increasing sum of key+value
// bytes ever inserted. Do not treat this as the table's true memory
// footprint — it is not corrected for overwrites.
func (t *MemTable) EstimatedSize() int64 {
	return t.estimatedSize.Load()
}

// Scan returns a forward iterator over the range between lower and upper,
// each endpoint inclusive, exclusive or open as its Bound's Kind says,
// positioned at the first matching entry.
func (t *MemTable) Scan(lower, upper Bound) *Iterator {
	return &Iterator{m: t.m, curr: t.m.seekFirst(lower), upper: upper}
}

// Flush forwards every entry, in sorted order, to builder.
func (t *MemTable) Flush(builder *sstable.Builder) {
	it := t.Scan(Bound{Kind: Unbounded}, Bound{Kind: Unbounded})
	for it.IsValid() {
		builder.Add(it.Key(), it.Value())
		if err := it.Next(); err != nil {
			break
		}
	}
}
