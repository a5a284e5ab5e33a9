package memtable

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/flashlsm/flashlsm/sstable"
)

func TestFlushProducesSSTableWithAllEntriesInOrder(t *testing.T) {
	m := New()
	for i := 0; i < 300; i++ {
		m.Put(keyOf(i), valueOf(i))
	}

	builder := sstable.NewBuilder(128)
	m.Flush(builder)

	path := filepath.Join(t.TempDir(), "flushed.sst")
	table, err := builder.Build(1, nil, path)
	if err != nil {
		t.Fatal(err)
	}

	it, err := sstable.CreateAndSeekToFirst(table)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 300; i++ {
		if !it.IsValid() {
			t.Fatalf("expected valid at entry %d", i)
		}
		if !bytes.Equal(it.Key(), keyOf(i)) {
			t.Fatalf("entry %d: got key %q want %q", i, it.Key(), keyOf(i))
		}
		if !bytes.Equal(it.Value(), valueOf(i)) {
			t.Fatalf("entry %d: got value %q want %q", i, it.Value(), valueOf(i))
		}
		if err := it.Next(); err != nil {
			t.Fatal(err)
		}
	}
	if it.IsValid() {
		t.Fatal("expected exhausted after the last entry")
	}
}
