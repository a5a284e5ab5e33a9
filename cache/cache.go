// Package cache provides the block cache contract consumed by SSTable
// reads: a bounded, thread-safe mapping from (sst_id, block_idx) to a
// shared Block handle, amortizing disk reads across repeated lookups of
// the same block.
package cache

import (
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/flashlsm/flashlsm/block"
)

// ErrInvalidSize is returned by NewLRU when asked for a non-positive
// capacity.
var ErrInvalidSize = errors.New("cache: size must be positive")

// Key identifies one block within one SSTable.
type Key struct {
	SSTID    uint64
	BlockIdx uint64
}

// BlockCache is the bounded, thread-safe (sst_id, block_idx) -> *Block
// contract. Eviction policy is unspecified by the contract itself; LRU is
// the provided implementation.
type BlockCache interface {
	Get(key Key) (*block.Block, bool)
	Insert(key Key, blk *block.Block)
}

// LRU is a BlockCache backed by a fixed-capacity LRU. It is safe for
// concurrent use by multiple goroutines.
type LRU struct {
	inner *lru.Cache[Key, *block.Block]
}

// NewLRU returns an LRU-evicting BlockCache that holds at most size
// blocks.
func NewLRU(size int) (*LRU, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	inner, err := lru.New[Key, *block.Block](size)
	if err != nil {
		return nil, err
	}
	return &LRU{inner: inner}, nil
}

// Get returns the cached block for key, if present.
func (c *LRU) Get(key Key) (*block.Block, bool) {
	return c.inner.Get(key)
}

// Insert installs blk under key, possibly evicting the least-recently-used
// entry.
func (c *LRU) Insert(key Key, blk *block.Block) {
	c.inner.Add(key, blk)
}

// Len reports the number of entries currently cached.
func (c *LRU) Len() int {
	return c.inner.Len()
}
