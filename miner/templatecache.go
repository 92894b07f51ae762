package miner

import (
	"github.com/DATxChain-Protocol/DATx/core/types"
	lru "github.com/hashicorp/golang-lru"
)

// templateCacheSize bounds the template cache. Like the candidate-uncle
// cache, this is new LRU wiring: the teacher never memoized sealing work
// at all, since it sealed continuously rather than serving polled
// requests.
const templateCacheSize = 10

// blockTemplateTimeoutMillis is how long a cached template may still be
// served after the mempool watermark has moved since the entry was built.
// While the watermark has not moved, the entry does not expire by age.
const blockTemplateTimeoutMillis = 3000

// templateCacheKey is the consensus-derived envelope a template was built
// for: requests that clamp to the same envelope can share a cache entry.
type templateCacheKey struct {
	cyclesLimit uint64
	bytesLimit  uint64
	version     uint32
}

// templateCacheEntry records a built template alongside the watermarks it
// was built against.
type templateCacheEntry struct {
	time            uint64
	unclesUpdatedAt uint64
	txsUpdatedAt    uint64
	template        *types.BlockTemplate
}

// isOutdated reports whether this entry can no longer be served as-is. An
// entry is outdated if the candidate-uncle watermark has moved, or the
// mempool watermark has moved and the entry is older than the timeout, or
// the entry was built for a different block number than the one currently
// being requested.
func (e *templateCacheEntry) isOutdated(lastUnclesUpdatedAt, lastTxsUpdatedAt, currentTime uint64, number string) bool {
	if lastUnclesUpdatedAt != e.unclesUpdatedAt {
		return true
	}
	if lastTxsUpdatedAt != e.txsUpdatedAt {
		elapsed := currentTime - e.time
		if currentTime < e.time {
			elapsed = 0
		}
		if elapsed > blockTemplateTimeoutMillis {
			return true
		}
	}
	return number != e.template.Number
}

// templateCache is the bounded, LRU-evicted map from envelope to the last
// template built for it.
type templateCache struct {
	cache *lru.Cache
}

func newTemplateCache() *templateCache {
	c, _ := lru.New(templateCacheSize)
	return &templateCache{cache: c}
}

func (tc *templateCache) get(key templateCacheKey) (*templateCacheEntry, bool) {
	v, ok := tc.cache.Get(key)
	if !ok {
		return nil, false
	}
	return v.(*templateCacheEntry), true
}

func (tc *templateCache) insert(key templateCacheKey, entry *templateCacheEntry) {
	tc.cache.Add(key, entry)
}
