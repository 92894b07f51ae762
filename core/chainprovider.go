// Package core declares the external collaborators the assembler core
// consumes: the persistent chain store, and the live chain-state view
// guarded by the chain's own lock. Both are implemented elsewhere (the
// synchronizer, the persistent store, the tx-pool) and are referenced here
// only by interface, per the core's scope boundary.
package core

import (
	"sync"

	"github.com/DATxChain-Protocol/DATx/consensus"
	"github.com/DATxChain-Protocol/DATx/core/types"
)

// ChainProvider is the read-only handle onto the persistent chain store
// and chain-wide configuration. Methods on it may be called without
// holding the chain-state lock: the assembler core calls several of them
// (GetTransaction, via the fee calculator) after releasing that lock, by
// design (see ChainState below).
type ChainProvider interface {
	// Block returns the full block for hash, or ok=false if unknown.
	Block(hash types.Hash) (block *types.Block, ok bool)

	// GetTransaction returns a previously committed transaction and the
	// hash of the block it was confirmed in, or ok=false if unknown.
	GetTransaction(hash types.Hash) (tx *types.Transaction, blockHash types.Hash, ok bool)

	// NextEpochExt computes the epoch that follows lastEpoch given header
	// as the new tip, or ok=false if lastEpoch is still active.
	NextEpochExt(lastEpoch *consensus.EpochExt, header *types.Header) (next *consensus.EpochExt, ok bool)

	// Consensus returns the chain's fixed consensus parameters.
	Consensus() *consensus.Params
}

// ChainState is the live, mutable view of the chain tip and pending work.
// Every method on it must be called while holding the chain-state lock;
// the assembler core's contract is to acquire that lock exactly once per
// build, read everything below, and release it before doing anything else
// (§4.4 of the design).
type ChainState interface {
	// ChainState embeds the lock guarding its own tip/proposal/mempool
	// view. The assembler core locks it exactly once per build and
	// unlocks it again before doing anything slow (§4.4).
	sync.Locker

	TipHeader() *types.Header
	TipNumber() uint64
	CurrentEpochExt() *consensus.EpochExt
	GetProposals(limit uint64) []types.ProposalShortId
	GetStagingTxs(bytesBudget, cyclesBudget uint64) []*types.PoolEntry
	GetLastTxsUpdatedAt() uint64
}
