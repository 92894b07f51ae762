package miner

import (
	"github.com/DATxChain-Protocol/DATx/consensus"
	"github.com/DATxChain-Protocol/DATx/core"
	"github.com/DATxChain-Protocol/DATx/core/types"
	lru "github.com/hashicorp/golang-lru"
	set "gopkg.in/fatih/set.v0"
)

// maxCandidateUncles bounds the candidate-uncle cache. The teacher kept
// candidate uncles in a plain map with no bound at all; this cap, and the
// LRU eviction behind it, are new wiring this port adds.
const maxCandidateUncles = 42

// CandidateUncleCache is the bounded, LRU-evicted pool of uncle blocks
// observed from the network but not yet (or no longer) eligible for
// inclusion. It is fed by uncle notifications and consumed by
// UncleSelector.Prepare.
type CandidateUncleCache struct {
	cache *lru.Cache
}

// NewCandidateUncleCache builds an empty cache bounded at 42 entries.
func NewCandidateUncleCache() *CandidateUncleCache {
	c, _ := lru.New(maxCandidateUncles)
	return &CandidateUncleCache{cache: c}
}

// Insert adds or LRU-bumps hash -> uncle.
func (c *CandidateUncleCache) Insert(hash types.Hash, uncle *types.Block) {
	c.cache.Add(hash, uncle)
}

// Remove evicts hash, if present.
func (c *CandidateUncleCache) Remove(hash types.Hash) {
	c.cache.Remove(hash)
}

// Len returns the current number of candidates.
func (c *CandidateUncleCache) Len() int {
	return c.cache.Len()
}

// candidates returns the cached (hash, block) pairs in cache order
// (oldest-inserted/accessed first), the order UncleSelector.Prepare walks
// in.
func (c *CandidateUncleCache) candidates() []struct {
	hash  types.Hash
	block *types.Block
} {
	keys := c.cache.Keys()
	out := make([]struct {
		hash  types.Hash
		block *types.Block
	}, 0, len(keys))
	for _, k := range keys {
		v, ok := c.cache.Peek(k)
		if !ok {
			continue
		}
		out = append(out, struct {
			hash  types.Hash
			block *types.Block
		}{hash: k.(types.Hash), block: v.(*types.Block)})
	}
	return out
}

// UncleSelector is stateless: it only reads the tip, the epoch and the
// candidate cache, and never mutates anything itself. The caller is
// responsible for evicting the hashes it reports as bad.
type UncleSelector struct{}

// Prepare walks back from tip up to maxUnclesAge ancestors to build the
// exclusion set (the tip itself, every ancestor's parent, and every uncle
// already embedded in an ancestor), then selects up to maxUnclesNum
// eligible candidates from cache, in cache order. It returns the selected
// uncles and the hashes that are permanently ineligible and must be
// evicted from the candidate cache by the caller.
func (UncleSelector) Prepare(
	tip *types.Header,
	currentEpoch *consensus.EpochExt,
	cache *CandidateUncleCache,
	provider core.ChainProvider,
	maxUnclesAge uint64,
	maxUnclesNum int,
) (selected []*types.UncleBlock, bad []types.Hash) {
	excluded := set.New()
	blockHash := tip.Hash
	excluded.Add(blockHash)

	for depth := uint64(0); depth < maxUnclesAge; depth++ {
		block, ok := provider.Block(blockHash)
		if !ok {
			break
		}
		excluded.Add(block.Header.ParentHash)
		for _, uncle := range block.Uncles {
			excluded.Add(uncle.Header.Hash)
		}
		blockHash = block.Header.ParentHash
	}

	currentNumber := tip.Number + 1
	included := set.New()
	selected = make([]*types.UncleBlock, 0, maxUnclesNum)

	for _, cand := range cache.candidates() {
		if len(selected) == maxUnclesNum {
			break
		}

		if !currentEpoch.SameParameters(cand.block.Header.Difficulty, cand.block.Header.Epoch) {
			bad = append(bad, cand.hash)
			continue
		}

		depth := int64(currentNumber) - int64(cand.block.Header.Number)
		if depth > int64(maxUnclesAge) || depth < 1 ||
			included.Has(cand.hash) || excluded.Has(cand.hash) {
			bad = append(bad, cand.hash)
			continue
		}

		selected = append(selected, &types.UncleBlock{
			Header:    cand.block.Header,
			Proposals: cand.block.Proposals,
		})
		included.Add(cand.hash)
	}

	return selected, bad
}
