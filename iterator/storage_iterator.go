// Package iterator defines the uniform StorageIterator contract shared by
// every sorted-key source in the engine (Block, SSTable, MemTable) and the
// MergeIterator that reconciles several of them into one sorted stream.
package iterator

// StorageIterator is the common contract for forward, single-pass,
// sorted-key iteration over any source. Key and Value may only be called
// while IsValid reports true. Next advances at most one logical position
// and may leave the iterator invalid.
type StorageIterator interface {
	Key() []byte
	Value() []byte
	IsValid() bool
	Next() error
}
