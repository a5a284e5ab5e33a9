package sstable

import (
	"encoding/binary"
	"fmt"

	"github.com/flashlsm/flashlsm/block"
	"github.com/flashlsm/flashlsm/cache"
)

// Builder accumulates sorted key/value pairs into size-bounded blocks and
// produces an immutable SSTable file on Build.
//
// Keys must be added in strictly ascending order; Builder does not sort or
// deduplicate them.
type Builder struct {
	meta         []BlockMeta
	maxBlockSize int
	currBlock    *block.Builder
	currFirstKey []byte
	data         []byte
}

// NewBuilder returns a Builder whose blocks are packed to at most
// blockSize bytes each.
func NewBuilder(blockSize int) *Builder {
	return &Builder{
		maxBlockSize: blockSize,
		currBlock:    block.NewBuilder(blockSize),
	}
}

// Add appends one entry. If it doesn't fit in the block currently being
// packed, the in-progress block is flushed and a new one started. Panics
// with ErrEntryTooLarge if the entry cannot fit even in a freshly started
// block — a configuration error (block size too small), not a runtime
// condition callers are expected to recover from.
func (b *Builder) Add(key, value []byte) {
	wasEmpty := b.currBlock.IsEmpty()
	if b.currBlock.Add(key, value) {
		if wasEmpty {
			b.currFirstKey = append([]byte(nil), key...)
		}
		return
	}

	b.flushCurrBlock()

	if !b.currBlock.Add(key, value) {
		panic(fmt.Errorf("%w: %d bytes in a block size of %d", ErrEntryTooLarge, 6+len(key)+len(value), b.maxBlockSize))
	}
	b.currFirstKey = append([]byte(nil), key...)
}

// flushCurrBlock finalizes the in-progress block, if it holds any entries,
// and resets the builder to start a fresh one. The offset is captured
// before the block's bytes are appended, so BlockMeta.Offset always points
// at the block it describes rather than the one about to start; an empty
// in-progress block produces no BlockMeta at all, so every meta entry
// corresponds to a real block in the file.
func (b *Builder) flushCurrBlock() {
	if !b.currBlock.IsEmpty() {
		offset := uint32(len(b.data))
		b.data = append(b.data, b.currBlock.Build().Encode()...)
		b.meta = append(b.meta, BlockMeta{Offset: offset, FirstKey: b.currFirstKey})
	}
	b.currBlock = block.NewBuilder(b.maxBlockSize)
	b.currFirstKey = nil
}

// EstimatedSize reports the number of bytes written to the in-memory
// buffer so far, including already-flushed blocks but not the pending
// in-progress one.
func (b *Builder) EstimatedSize() int { return len(b.data) }

// Build flushes any in-progress block, appends the meta section and
// trailing meta-offset, writes the result to path, and opens it as an
// SSTable.
func (b *Builder) Build(id uint64, c cache.BlockCache, path string) (*SSTable, error) {
	b.flushCurrBlock()

	metaOffset := uint64(len(b.data))
	b.data = encodeBlockMeta(b.meta, b.data)
	b.data = binary.BigEndian.AppendUint64(b.data, metaOffset)

	if err := CreateFile(path, b.data); err != nil {
		return nil, err
	}

	file, err := OpenFile(path)
	if err != nil {
		return nil, err
	}

	return &SSTable{
		id:              id,
		file:            file,
		blockMetas:      b.meta,
		blockMetaOffset: metaOffset,
		cache:           c,
	}, nil
}
