// Package consensus holds the chain-wide parameters the assembler core
// consumes but never mutates: the active epoch's reward schedule and the
// fixed consensus limits on block bytes, cycles and uncles.
package consensus

import (
	"math/big"

	"github.com/DATxChain-Protocol/DATx/core/types"
	"github.com/pkg/errors"
)

// BlockRewardFunc computes the block subsidy for a block at the given
// number, given the epoch it falls in. It is a function rather than a
// constant because the reward can vary by the block's position within the
// epoch (e.g. a tail adjustment on the epoch's last block).
type BlockRewardFunc func(number uint64) (types.Capacity, error)

// EpochExt describes the currently active epoch: a contiguous run of
// blocks sharing difficulty and reward parameters.
type EpochExt struct {
	Number     uint64
	Difficulty *big.Int
	Length     uint64
	rewardFunc BlockRewardFunc
}

// NewEpochExt builds an EpochExt from its static parameters and reward
// function.
func NewEpochExt(number uint64, difficulty *big.Int, length uint64, reward BlockRewardFunc) *EpochExt {
	return &EpochExt{Number: number, Difficulty: difficulty, Length: length, rewardFunc: reward}
}

// BlockReward returns the subsidy owed to the cellbase of the block at the
// given number under this epoch's schedule.
func (e *EpochExt) BlockReward(number uint64) (types.Capacity, error) {
	if e.rewardFunc == nil {
		return 0, errors.New("epoch has no reward schedule configured")
	}
	return e.rewardFunc(number)
}

// SameParameters reports whether difficulty and epochNumber match this
// epoch's difficulty and number — the test the uncle selector applies to
// every candidate. If either difficulty is nil, only the numbers are compared.
func (e *EpochExt) SameParameters(difficulty *big.Int, epochNumber uint64) bool {
	if e.Difficulty == nil || difficulty == nil {
		return e.Number == epochNumber
	}
	return e.Difficulty.Cmp(difficulty) == 0 && e.Number == epochNumber
}
