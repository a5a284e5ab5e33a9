package iterator

import (
	"bytes"
	"container/heap"
)

// MergeIterator is a k-way merge over a set of StorageIterators with
// per-source priority given by position in the input slice: a lower index
// wins ties. It is implemented over a min-heap ordered by (key ascending,
// source index ascending) — see heapEntries below.
type MergeIterator struct {
	entries heapEntries
	current *heapEntry
}

type heapEntry struct {
	sourceIdx int
	iter      StorageIterator
}

// heapEntries implements container/heap.Interface. container/heap is a
// min-heap over Less, so Less orders by key with bytes.Compare as-is and
// breaks ties by the smaller source index; the heap's root is then the
// highest-priority least key.
type heapEntries []*heapEntry

func (h heapEntries) Len() int { return len(h) }

func (h heapEntries) Less(i, j int) bool {
	cmp := bytes.Compare(h[i].iter.Key(), h[j].iter.Key())
	if cmp != 0 {
		return cmp < 0
	}
	return h[i].sourceIdx < h[j].sourceIdx
}

func (h heapEntries) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *heapEntries) Push(x any) {
	*h = append(*h, x.(*heapEntry))
}

func (h *heapEntries) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// Create builds a MergeIterator over iters. Initially-invalid iterators are
// dropped; if every iterator is invalid (or iters is empty), the resulting
// MergeIterator is invalid from the start.
func Create(iters []StorageIterator) *MergeIterator {
	entries := make(heapEntries, 0, len(iters))
	for idx, it := range iters {
		if it.IsValid() {
			entries = append(entries, &heapEntry{sourceIdx: idx, iter: it})
		}
	}
	heap.Init(&entries)

	m := &MergeIterator{entries: entries}
	if len(entries) > 0 {
		m.current = heap.Pop(&m.entries).(*heapEntry)
	}
	return m
}

// Key returns the current entry's key. Valid only while IsValid is true.
func (m *MergeIterator) Key() []byte { return m.current.iter.Key() }

// Value returns the current entry's value. Valid only while IsValid is true.
func (m *MergeIterator) Value() []byte { return m.current.iter.Value() }

// IsValid reports whether the merge iterator has a current entry.
func (m *MergeIterator) IsValid() bool { return m.current != nil }

// Next discards any lower-priority duplicates of the current key, then
// advances the current source and pops the new highest-priority entry.
func (m *MergeIterator) Next() error {
	currentKey := append([]byte(nil), m.current.iter.Key()...)

	for m.entries.Len() > 0 && bytes.Equal(m.entries[0].iter.Key(), currentKey) {
		dup := heap.Pop(&m.entries).(*heapEntry)
		if err := dup.iter.Next(); err != nil {
			return err
		}
		if dup.iter.IsValid() {
			heap.Push(&m.entries, dup)
		}
	}

	if err := m.current.iter.Next(); err != nil {
		return err
	}
	if m.current.iter.IsValid() {
		heap.Push(&m.entries, m.current)
	}

	if m.entries.Len() > 0 {
		m.current = heap.Pop(&m.entries).(*heapEntry)
	} else {
		m.current = nil
	}

	return nil
}
