package miner

import (
	"sync"

	"github.com/DATxChain-Protocol/DATx/consensus"
	"github.com/DATxChain-Protocol/DATx/core/types"
)

// fakeProvider is a minimal in-memory core.ChainProvider, standing in for
// the persistent chain store the full node would otherwise supply.
type fakeProvider struct {
	blocks    map[types.Hash]*types.Block
	txs       map[types.Hash]txRecord
	params    *consensus.Params
	nextEpoch func(last *consensus.EpochExt, header *types.Header) (*consensus.EpochExt, bool)
}

type txRecord struct {
	tx        *types.Transaction
	blockHash types.Hash
}

func newFakeProvider(params *consensus.Params) *fakeProvider {
	return &fakeProvider{
		blocks: make(map[types.Hash]*types.Block),
		txs:    make(map[types.Hash]txRecord),
		params: params,
	}
}

func (p *fakeProvider) Block(hash types.Hash) (*types.Block, bool) {
	b, ok := p.blocks[hash]
	return b, ok
}

func (p *fakeProvider) GetTransaction(hash types.Hash) (*types.Transaction, types.Hash, bool) {
	rec, ok := p.txs[hash]
	if !ok {
		return nil, types.Hash{}, false
	}
	return rec.tx, rec.blockHash, true
}

func (p *fakeProvider) NextEpochExt(lastEpoch *consensus.EpochExt, header *types.Header) (*consensus.EpochExt, bool) {
	if p.nextEpoch != nil {
		return p.nextEpoch(lastEpoch, header)
	}
	return nil, false
}

func (p *fakeProvider) Consensus() *consensus.Params {
	return p.params
}

func (p *fakeProvider) addBlock(b *types.Block) {
	p.blocks[b.Header.Hash] = b
	for _, tx := range b.Transactions {
		p.txs[tx.Hash()] = txRecord{tx: tx, blockHash: b.Header.Hash}
	}
}

// fakePowEngine reports a fixed proof size for every header.
type fakePowEngine struct {
	proofSize int
}

func (e fakePowEngine) ProofSize() int { return e.proofSize }

// fakeChainState is a minimal in-memory core.ChainState, standing in for
// the live tip/mempool view the full node's chain object would otherwise
// supply under its own lock.
type fakeChainState struct {
	mu sync.Mutex

	tip              *types.Header
	epoch            *consensus.EpochExt
	proposals        []types.ProposalShortId
	pending          []*types.PoolEntry
	lastTxsUpdatedAt uint64
}

func (s *fakeChainState) Lock()   { s.mu.Lock() }
func (s *fakeChainState) Unlock() { s.mu.Unlock() }

func (s *fakeChainState) TipHeader() *types.Header             { return s.tip }
func (s *fakeChainState) TipNumber() uint64                    { return s.tip.Number }
func (s *fakeChainState) CurrentEpochExt() *consensus.EpochExt { return s.epoch }

func (s *fakeChainState) GetProposals(limit uint64) []types.ProposalShortId {
	if uint64(len(s.proposals)) > limit {
		return s.proposals[:limit]
	}
	return s.proposals
}

func (s *fakeChainState) GetStagingTxs(bytesBudget, cyclesBudget uint64) []*types.PoolEntry {
	return s.pending
}

func (s *fakeChainState) GetLastTxsUpdatedAt() uint64 {
	return s.lastTxsUpdatedAt
}

// flatReward is a BlockRewardFunc that pays the same amount regardless of
// block number, sufficient for every test scenario in this package.
func flatReward(amount types.Capacity) consensus.BlockRewardFunc {
	return func(number uint64) (types.Capacity, error) {
		return amount, nil
	}
}
