// Package sstable implements the immutable, on-disk sorted-string-table
// format: a sequence of size-bounded blocks, a block-meta section, and a
// trailing u64 meta offset. The layout carries no checksums, no bloom
// filter, and no compressed blocks — a deliberately minimal on-disk format.
package sstable

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/flashlsm/flashlsm/block"
	"github.com/flashlsm/flashlsm/cache"
)

// ErrNoBlockCache is returned by ReadBlockCached when the SSTable was
// opened without a cache.
var ErrNoBlockCache = errors.New("sstable: no block cache attached")

// ErrEntryTooLarge is wrapped into the panic value (an error) when a single
// entry cannot fit in an empty block of the configured size; callers
// should treat this as a misconfiguration, not a runtime condition to
// recover from (see Builder.Add).
var ErrEntryTooLarge = errors.New("sstable: entry too large for block size")

// SSTable is an opened, immutable sorted run on disk.
type SSTable struct {
	id              uint64
	file            *FileObject
	blockMetas      []BlockMeta
	blockMetaOffset uint64
	cache           cache.BlockCache
}

// Open reads the trailer and block-meta section of an existing SSTable
// file: only the final 8 bytes (the meta offset) and the meta section
// itself are read up front, not the whole file; block bodies are read
// lazily by ReadBlock.
func Open(id uint64, c cache.BlockCache, file *FileObject) (*SSTable, error) {
	fileLen := file.Size()
	if fileLen < 8 {
		return nil, fmt.Errorf("sstable: file of %d bytes too small to contain a trailer", fileLen)
	}

	trailer, err := file.Read(fileLen-8, 8)
	if err != nil {
		return nil, err
	}
	metaOffset := binary.BigEndian.Uint64(trailer)
	if metaOffset > fileLen-8 {
		return nil, fmt.Errorf("sstable: meta offset %d exceeds file length %d", metaOffset, fileLen)
	}

	metaBytes, err := file.Read(metaOffset, fileLen-8-metaOffset)
	if err != nil {
		return nil, err
	}

	return &SSTable{
		id:              id,
		file:            file,
		blockMetas:      decodeBlockMeta(metaBytes),
		blockMetaOffset: metaOffset,
		cache:           c,
	}, nil
}

// ID returns the table's identifier, used as the first half of cache keys.
func (s *SSTable) ID() uint64 { return s.id }

// NumBlocks reports how many blocks the table holds.
func (s *SSTable) NumBlocks() int { return len(s.blockMetas) }

// FirstKey returns the smallest key in the table, or nil if the table holds
// no blocks.
func (s *SSTable) FirstKey() []byte {
	if len(s.blockMetas) == 0 {
		return nil
	}
	return s.blockMetas[0].FirstKey
}

// ReadBlock reads and decodes block idx directly from disk, bypassing any
// cache.
func (s *SSTable) ReadBlock(idx int) (*block.Block, error) {
	if idx < 0 || idx >= len(s.blockMetas) {
		return nil, fmt.Errorf("sstable: block index %d out of range [0,%d)", idx, len(s.blockMetas))
	}

	start := uint64(s.blockMetas[idx].Offset)
	var end uint64
	if idx+1 < len(s.blockMetas) {
		end = uint64(s.blockMetas[idx+1].Offset)
	} else {
		end = s.blockMetaOffset
	}

	data, err := s.file.Read(start, end-start)
	if err != nil {
		return nil, err
	}
	return block.Decode(data), nil
}

// ReadBlockCached reads block idx through the attached BlockCache, reading
// from disk only on a miss. Returns ErrNoBlockCache if the table was
// opened without one.
func (s *SSTable) ReadBlockCached(idx int) (*block.Block, error) {
	if s.cache == nil {
		return nil, ErrNoBlockCache
	}

	key := cache.Key{SSTID: s.id, BlockIdx: uint64(idx)}
	if blk, ok := s.cache.Get(key); ok {
		return blk, nil
	}

	blk, err := s.ReadBlock(idx)
	if err != nil {
		return nil, err
	}
	s.cache.Insert(key, blk)
	return blk, nil
}

// readBlockMaybeCached routes through the cache when one is attached,
// falling back to a direct read otherwise. SSTableIterator always reads
// through this so a table opened without a cache still works.
func (s *SSTable) readBlockMaybeCached(idx int) (*block.Block, error) {
	if s.cache != nil {
		return s.ReadBlockCached(idx)
	}
	return s.ReadBlock(idx)
}

// FindBlockIdx returns the index of the last block whose FirstKey is <=
// key — the only block that can possibly contain key, since blocks are
// stored in ascending key order with no overlap. Callers passing a key
// smaller than every FirstKey get block 0 back (the caller is expected to
// detect the miss once it inspects the block's contents).
func (s *SSTable) FindBlockIdx(key []byte) int {
	if len(s.blockMetas) == 0 {
		return 0
	}

	lo, hi := 0, len(s.blockMetas)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if bytes.Compare(key, s.blockMetas[mid].FirstKey) >= 0 {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
