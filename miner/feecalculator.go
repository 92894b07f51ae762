package miner

import (
	"github.com/DATxChain-Protocol/DATx/core"
	"github.com/DATxChain-Protocol/DATx/core/types"
	"github.com/pkg/errors"
)

// FeeCalculator computes the fee of a single transaction against one
// in-progress template build. It is scoped to exactly one build: mempool
// order and content change between builds, so nothing here is cached
// across calls to NewFeeCalculator.
type FeeCalculator struct {
	txs      []*types.PoolEntry
	provider core.ChainProvider
	txIndex  map[types.Hash]int
}

// NewFeeCalculator indexes txs by hash so later lookups of an
// in-template previous output are O(1), the way the teacher's worker
// indexes pending transactions by sender before iterating a priority
// queue.
func NewFeeCalculator(txs []*types.PoolEntry, provider core.ChainProvider) *FeeCalculator {
	idx := make(map[types.Hash]int, len(txs))
	for i, pe := range txs {
		idx[pe.Transaction.Hash()] = i
	}
	return &FeeCalculator{txs: txs, provider: provider, txIndex: idx}
}

// capacityOf resolves the capacity of the cell out-point, preferring an
// earlier transaction in this same template build over the persistent
// store: a transaction may legitimately spend an output produced earlier
// in the same block being assembled.
func (fc *FeeCalculator) capacityOf(op types.OutPoint) (types.Capacity, bool) {
	if !op.IsCell() {
		return 0, false
	}
	cell := op.Cell
	if i, ok := fc.txIndex[cell.TxHash]; ok {
		outs := fc.txs[i].Transaction.Outputs
		if int(cell.Index) >= len(outs) {
			return 0, false
		}
		return outs[cell.Index].Capacity, true
	}
	tx, _, ok := fc.provider.GetTransaction(cell.TxHash)
	if !ok || int(cell.Index) >= len(tx.Outputs) {
		return 0, false
	}
	return tx.Outputs[cell.Index].Capacity, true
}

// Calculate returns the fee of tx: the sum of its resolved input
// capacities minus the sum of its output capacities. It fails with
// ErrInvalidInput if any input cannot be resolved, ErrArithmetic if any
// checked addition overflows, and ErrInvalidOutput if outputs exceed
// inputs.
func (fc *FeeCalculator) Calculate(tx *types.Transaction) (types.Capacity, error) {
	inputTotal := types.ZeroCapacity
	for _, in := range tx.Inputs {
		capacity, ok := fc.capacityOf(in.PreviousOutput)
		if !ok {
			return 0, errors.WithStack(ErrInvalidInput)
		}
		var err error
		inputTotal, err = inputTotal.AddChecked(capacity)
		if err != nil {
			return 0, errors.Wrap(ErrArithmetic, err.Error())
		}
	}

	outputTotal := types.ZeroCapacity
	for _, out := range tx.Outputs {
		var err error
		outputTotal, err = outputTotal.AddChecked(out.Capacity)
		if err != nil {
			return 0, errors.Wrap(ErrArithmetic, err.Error())
		}
	}

	if outputTotal > inputTotal {
		return 0, errors.WithStack(ErrInvalidOutput)
	}
	fee, err := inputTotal.SubChecked(outputTotal)
	if err != nil {
		return 0, errors.Wrap(ErrArithmetic, err.Error())
	}
	return fee, nil
}
