package memtable

import (
	"bytes"
	"fmt"
	"sync"
	"testing"
)

func keyOf(i int) []byte   { return []byte(fmt.Sprintf("key_%05d", i)) }
func valueOf(i int) []byte { return []byte(fmt.Sprintf("val_%010d", i)) }

func TestPutGet(t *testing.T) {
	m := New()
	for i := 0; i < 100; i++ {
		m.Put(keyOf(i), valueOf(i))
	}
	for i := 0; i < 100; i++ {
		v, ok := m.Get(keyOf(i))
		if !ok {
			t.Fatalf("missing key %d", i)
		}
		if !bytes.Equal(v, valueOf(i)) {
			t.Fatalf("key %d: got %q want %q", i, v, valueOf(i))
		}
	}
	if _, ok := m.Get([]byte("missing")); ok {
		t.Fatal("expected miss for an absent key")
	}
}

// TestOverwrite checks that after put(k, v1); put(k, v2), get(k) returns
// v2 — including after many other keys have been overwritten too.
func TestOverwrite(t *testing.T) {
	m := New()
	for i := 0; i < 100; i++ {
		m.Put(keyOf(i), valueOf(i))
	}
	for i := 0; i < 50; i++ {
		m.Put(keyOf(i), valueOf(i+1000))
	}
	for i := 0; i < 100; i++ {
		v, ok := m.Get(keyOf(i))
		if !ok {
			t.Fatalf("missing key %d", i)
		}
		want := valueOf(i)
		if i < 50 {
			want = valueOf(i + 1000)
		}
		if !bytes.Equal(v, want) {
			t.Fatalf("key %d: got %q want %q", i, v, want)
		}
	}
}

func TestEstimatedSizeIsMonotonicAcrossOverwrites(t *testing.T) {
	m := New()
	m.Put(keyOf(0), valueOf(0))
	after1 := m.EstimatedSize()
	m.Put(keyOf(0), valueOf(0))
	after2 := m.EstimatedSize()
	if after2 <= after1 {
		t.Fatalf("expected estimated size to grow even on overwrite: %d then %d", after1, after2)
	}
}

// TestScanRange puts keys 0..99, then scans
// [Included(key_00012), Excluded(key_00046)); it must yield exactly keys
// 12..45 in order, honoring the inclusive lower and exclusive upper bound.
func TestScanRange(t *testing.T) {
	m := New()
	for i := 0; i < 100; i++ {
		m.Put(keyOf(i), valueOf(i))
	}

	it := m.Scan(
		Bound{Kind: Included, Key: keyOf(12)},
		Bound{Kind: Excluded, Key: keyOf(46)},
	)

	for i := 12; i < 46; i++ {
		if !it.IsValid() {
			t.Fatalf("expected valid at key %d", i)
		}
		if !bytes.Equal(it.Key(), keyOf(i)) {
			t.Fatalf("got key %q want %q", it.Key(), keyOf(i))
		}
		if !bytes.Equal(it.Value(), valueOf(i)) {
			t.Fatalf("got value %q want %q", it.Value(), valueOf(i))
		}
		if err := it.Next(); err != nil {
			t.Fatal(err)
		}
	}
	if it.IsValid() {
		t.Fatalf("expected exhausted past key_00045, got key %q", it.Key())
	}
}

func TestScanUnboundedCoversEverything(t *testing.T) {
	m := New()
	for i := 0; i < 50; i++ {
		m.Put(keyOf(i), valueOf(i))
	}
	it := m.Scan(Bound{Kind: Unbounded}, Bound{Kind: Unbounded})
	count := 0
	for it.IsValid() {
		count++
		if err := it.Next(); err != nil {
			t.Fatal(err)
		}
	}
	if count != 50 {
		t.Fatalf("expected 50 entries, got %d", count)
	}
}

func TestScanIncludedUpperBound(t *testing.T) {
	m := New()
	for i := 0; i < 10; i++ {
		m.Put(keyOf(i), valueOf(i))
	}
	it := m.Scan(Bound{Kind: Unbounded}, Bound{Kind: Included, Key: keyOf(5)})
	count := 0
	for it.IsValid() {
		count++
		if err := it.Next(); err != nil {
			t.Fatal(err)
		}
	}
	if count != 6 {
		t.Fatalf("expected 6 entries (0..5 inclusive), got %d", count)
	}
}

func TestConcurrentPutAndGet(t *testing.T) {
	m := New()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				m.Put(keyOf(offset*200+i), valueOf(offset*200+i))
			}
		}(w)
	}
	wg.Wait()

	for i := 0; i < 1600; i++ {
		v, ok := m.Get(keyOf(i))
		if !ok {
			t.Fatalf("missing key %d after concurrent inserts", i)
		}
		if !bytes.Equal(v, valueOf(i)) {
			t.Fatalf("key %d: got %q want %q", i, v, valueOf(i))
		}
	}
}
