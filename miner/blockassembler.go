package miner

import (
	"sync/atomic"
	"time"

	"github.com/DATxChain-Protocol/DATx/consensus"
	"github.com/DATxChain-Protocol/DATx/core"
	"github.com/DATxChain-Protocol/DATx/core/types"
	"github.com/DATxChain-Protocol/DATx/log"
	"github.com/pkg/errors"
)

// nowMs is wall-clock time in milliseconds, the unit every timestamp and
// watermark in this package is carried in.
func nowMs() uint64 {
	return uint64(time.Now().UnixNano() / int64(time.Millisecond))
}

// currentTimeMs samples current_time = max(wall_clock_ms, tip.timestamp+1).
// Build takes it once at its start, after the mempool snapshot has already
// been taken, and once more after cellbase construction; the later sample
// wins. No sample is taken before the mempool snapshot.
func currentTimeMs(tip *types.Header) uint64 {
	floor := tip.Timestamp + 1
	if wall := nowMs(); wall > floor {
		return wall
	}
	return floor
}

// TemplateBuilder turns a tip, epoch, uncle selection and mempool snapshot
// into a finished BlockTemplate. It is the direct descendant of the
// teacher's createNewWork/commitTransactions pair, re-targeted at the
// cell model: checked Capacity accounting instead of a running gas pool,
// and a single cellbase output instead of a coinbase-plus-uncle-reward
// split.
type TemplateBuilder struct {
	config BlockAssemblerConfig
}

// NewTemplateBuilder builds a TemplateBuilder that pays cellbase outputs
// to config's lock script.
func NewTemplateBuilder(config BlockAssemblerConfig) *TemplateBuilder {
	return &TemplateBuilder{config: config}
}

// Budget computes the fixed portion of a block's byte budget (header,
// uncles, proposals) and the remaining budget available to the mempool
// snapshot. It fails with ErrConfiguration if bytesLimit cannot even hold
// the fixed portion.
func (b *TemplateBuilder) Budget(
	proofSize int,
	uncles []*types.UncleBlock,
	proposals []types.ProposalShortId,
	bytesLimit uint64,
) (occupied uint64, budget uint64, err error) {
	occupied = uint64(types.HeaderSerializedSize(proofSize))
	for _, u := range uncles {
		occupied += uint64(u.SerializedSize(proofSize))
	}
	occupied += uint64(len(proposals)) * uint64(types.ProposalShortIdSize)

	if bytesLimit <= occupied {
		return occupied, 0, errors.WithStack(ErrConfiguration)
	}
	return occupied, bytesLimit - occupied, nil
}

// Build assembles the finished template. txs must already fit the budget
// Budget computed: this builder does not re-filter the mempool snapshot,
// matching §4.3's "the template builder does not re-filter" contract.
func (b *TemplateBuilder) Build(
	tip *types.Header,
	epoch *consensus.EpochExt,
	provider core.ChainProvider,
	txs []*types.PoolEntry,
	uncles []*types.UncleBlock,
	proposals []types.ProposalShortId,
	bytesLimit uint64,
	cyclesLimit uint64,
	version uint32,
	unclesCountLimit uint32,
	workID string,
) (*types.BlockTemplate, error) {
	number := tip.Number + 1
	currentTime := currentTimeMs(tip)

	fc := NewFeeCalculator(txs, provider)
	feeSum := types.ZeroCapacity
	txTemplates := make([]types.TransactionTemplate, 0, len(txs))
	for _, pe := range txs {
		fee, err := fc.Calculate(pe.Transaction)
		if err != nil {
			return nil, err
		}
		feeSum, err = feeSum.AddChecked(fee)
		if err != nil {
			return nil, errors.Wrap(ErrArithmetic, err.Error())
		}
		txTemplates = append(txTemplates, types.TransactionTemplate{
			Hash:     pe.Transaction.Hash(),
			Required: false,
			Cycles:   types.OptionalCyclesString(pe.Cycles),
			Data:     pe.Transaction,
		})
	}

	reward, err := epoch.BlockReward(number)
	if err != nil {
		return nil, err
	}
	cellbaseCapacity, err := reward.AddChecked(feeSum)
	if err != nil {
		return nil, errors.Wrap(ErrArithmetic, err.Error())
	}

	lockScript := types.NewScript(b.config.CodeHash, b.config.Args)
	cellbaseTx := types.NewTransaction(
		[]types.CellInput{types.NewCellbaseInput(number)},
		[]types.CellOutput{{Capacity: cellbaseCapacity, Lock: lockScript}},
	)

	// Cellbase construction may take non-trivial time; re-sample and
	// keep the later value.
	if resampled := currentTimeMs(tip); resampled > currentTime {
		currentTime = resampled
	}

	uncleTemplates := make([]types.UncleTemplate, 0, len(uncles))
	for _, u := range uncles {
		uncleTemplates = append(uncleTemplates, types.UncleTemplate{
			Hash:      u.Header.Hash,
			Required:  false,
			Proposals: u.Proposals,
			Header:    u.Header,
		})
	}

	return &types.BlockTemplate{
		Version:          version,
		Difficulty:       epoch.Difficulty,
		CurrentTime:      types.FormatUint64(currentTime),
		Number:           types.FormatUint64(number),
		Epoch:            types.FormatUint64(epoch.Number),
		ParentHash:       tip.Hash,
		CyclesLimit:      types.FormatUint64(cyclesLimit),
		BytesLimit:       types.FormatUint64(bytesLimit),
		UnclesCountLimit: unclesCountLimit,
		Uncles:           uncleTemplates,
		Transactions:     txTemplates,
		Proposals:        proposals,
		Cellbase: types.CellbaseTemplate{
			Hash: cellbaseTx.Hash(),
			Data: cellbaseTx,
		},
		WorkID: workID,
	}, nil
}

func clampU64(requested *uint64, max uint64) uint64 {
	if requested == nil || *requested > max {
		return max
	}
	return *requested
}

func clampU32(requested *uint32, max uint32) uint32 {
	if requested == nil || *requested > max {
		return max
	}
	return *requested
}

// templateRequest is what crosses the request channel: clamp-candidate
// parameters plus the slot the worker replies on.
type templateRequest struct {
	bytesLimit     *uint64
	proposalsLimit *uint64
	maxVersion     *uint32
	reply          chan templateResult
}

type templateResult struct {
	template *types.BlockTemplate
	err      error
}

// AssemblerService is the long-lived, single-writer actor owning the
// candidate-uncle cache, the template cache and the work-id counter. Its
// shape is the teacher's worker goroutine (recv chan *Result / quitCh /
// stopper) generalized from continuous sealing into the clamped
// request/reply + uncle-notification model this core implements.
type AssemblerService struct {
	provider core.ChainProvider
	state    core.ChainState
	config   BlockAssemblerConfig

	selector UncleSelector
	builder  *TemplateBuilder

	uncleCache *CandidateUncleCache
	templates  *templateCache

	workID              uint64 // atomic
	lastUnclesUpdatedAt uint64 // atomic, ms

	uncleNotifications <-chan *types.Block
	reqCh              chan templateRequest
	signalCh           chan struct{}
	doneCh             chan struct{}
}

// NewAssemblerService builds the service and starts its worker goroutine.
// uncleNotifications is the externally produced channel of observed
// candidate uncles (§6, "subscribe_new_uncle").
func NewAssemblerService(
	config BlockAssemblerConfig,
	provider core.ChainProvider,
	state core.ChainState,
	uncleNotifications <-chan *types.Block,
) *AssemblerService {
	s := &AssemblerService{
		provider:            provider,
		state:               state,
		config:              config,
		builder:             NewTemplateBuilder(config),
		uncleCache:          NewCandidateUncleCache(),
		templates:           newTemplateCache(),
		lastUnclesUpdatedAt: nowMs(),
		uncleNotifications:  uncleNotifications,
		reqCh:               make(chan templateRequest),
		signalCh:            make(chan struct{}, 1),
		doneCh:              make(chan struct{}),
	}
	go s.run()
	return s
}

// Stop requests the worker to exit. It does not block until the worker
// has actually exited; callers that need that guarantee should select on
// the Done channel.
func (s *AssemblerService) Stop() {
	select {
	case s.signalCh <- struct{}{}:
	default:
	}
}

// Done returns a channel closed once the worker has exited.
func (s *AssemblerService) Done() <-chan struct{} {
	return s.doneCh
}

// GetBlockTemplate is the one inbound operation this core exposes (§6). It
// blocks until the worker replies or the service has been torn down.
func (s *AssemblerService) GetBlockTemplate(bytesLimit, proposalsLimit *uint64, maxVersion *uint32) (*types.BlockTemplate, error) {
	reply := make(chan templateResult, 1)
	req := templateRequest{bytesLimit: bytesLimit, proposalsLimit: proposalsLimit, maxVersion: maxVersion, reply: reply}

	select {
	case s.reqCh <- req:
	case <-s.doneCh:
		return nil, errors.WithStack(ErrChannelClosed)
	}

	select {
	case res := <-reply:
		return res.template, res.err
	case <-s.doneCh:
		return nil, errors.WithStack(ErrChannelClosed)
	}
}

func (s *AssemblerService) run() {
	defer close(s.doneCh)
	for {
		select {
		case <-s.signalCh:
			log.Debug("assembler worker stopping")
			return
		case uncle, ok := <-s.uncleNotifications:
			if !ok {
				log.Error("uncle notification channel closed, stopping assembler worker")
				return
			}
			if uncle != nil {
				s.ingestUncle(uncle)
			}
		case req := <-s.reqCh:
			tmpl, err := s.handleRequest(req)
			req.reply <- templateResult{template: tmpl, err: err}
		}
	}
}

// ingestUncle inserts or LRU-bumps a candidate and advances the uncles
// watermark. It is the only place the candidate-uncle cache is mutated
// outside of a build's eviction pass.
func (s *AssemblerService) ingestUncle(uncle *types.Block) {
	s.uncleCache.Insert(uncle.Header.Hash, uncle)
	atomic.StoreUint64(&s.lastUnclesUpdatedAt, nowMs())
	log.Debug("ingested candidate uncle", "hash", uncle.Header.Hash.Hex(), "number", uncle.Header.Number)
}

func (s *AssemblerService) nextWorkID() string {
	return types.FormatUint64(atomic.AddUint64(&s.workID, 1))
}

// handleRequest is the entire body of one worker iteration for a template
// request: clamp, check cache freshness, and either serve the cached
// template or build and cache a fresh one.
func (s *AssemblerService) handleRequest(req templateRequest) (*types.BlockTemplate, error) {
	params := s.provider.Consensus()

	bytesLimit := clampU64(req.bytesLimit, params.MaxBlockBytes)
	proposalsLimit := clampU64(req.proposalsLimit, params.MaxBlockProposalsLimit)
	version := clampU32(req.maxVersion, params.BlockVersion)
	cyclesLimit := params.MaxBlockCycles

	lastUnclesUpdatedAt := atomic.LoadUint64(&s.lastUnclesUpdatedAt)

	s.state.Lock()
	txsUpdatedAt := s.state.GetLastTxsUpdatedAt()
	tip := s.state.TipHeader()
	lastEpoch := s.state.CurrentEpochExt()

	// The block being built is tip.Number+1, which may start a new epoch
	// with different difficulty/reward than the tip's own, already-settled
	// epoch; NextEpochExt computes that rollover the way the original's
	// get_block_template does (current_epoch = next_epoch_ext(last_epoch,
	// header).unwrap_or(last_epoch)).
	epoch := lastEpoch
	if next, ok := s.provider.NextEpochExt(lastEpoch, tip); ok {
		epoch = next
	}

	key := templateCacheKey{cyclesLimit: cyclesLimit, bytesLimit: bytesLimit, version: version}
	numberStr := types.FormatUint64(tip.Number + 1)
	now := nowMs()

	if entry, ok := s.templates.get(key); ok && !entry.isOutdated(lastUnclesUpdatedAt, txsUpdatedAt, now, numberStr) {
		s.state.Unlock()
		return entry.template.Clone(), nil
	}

	proposals := s.state.GetProposals(proposalsLimit)

	selectedUncles, badUncles := s.selector.Prepare(
		tip, epoch, s.uncleCache, s.provider, params.MaxUnclesAge, params.MaxUnclesNum,
	)

	proofSize := params.Pow.ProofSize()
	_, budget, err := s.builder.Budget(proofSize, selectedUncles, proposals, bytesLimit)
	if err != nil {
		s.state.Unlock()
		return nil, err
	}

	txs := s.state.GetStagingTxs(budget, cyclesLimit)
	s.state.Unlock()

	template, err := s.builder.Build(
		tip, epoch, s.provider, txs, selectedUncles, proposals,
		bytesLimit, cyclesLimit, version, uint32(params.MaxUnclesNum), s.nextWorkID(),
	)
	if err != nil {
		return nil, err
	}

	for _, h := range badUncles {
		s.uncleCache.Remove(h)
	}
	if len(badUncles) > 0 {
		log.Debug("evicted stale candidate uncles", "count", len(badUncles))
	}

	s.templates.insert(key, &templateCacheEntry{
		time:            now,
		unclesUpdatedAt: lastUnclesUpdatedAt,
		txsUpdatedAt:    txsUpdatedAt,
		template:        template,
	})

	return template.Clone(), nil
}
