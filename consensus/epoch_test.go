package consensus

import (
	"math/big"
	"testing"

	"github.com/DATxChain-Protocol/DATx/core/types"
)

func TestEpochExtBlockReward(t *testing.T) {
	e := NewEpochExt(0, big.NewInt(100), 1000, func(number uint64) (types.Capacity, error) {
		return types.Capacity(number * 10), nil
	})

	reward, err := e.BlockReward(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reward != 50 {
		t.Fatalf("expected reward 50, got %d", reward)
	}
}

func TestEpochExtBlockRewardRequiresSchedule(t *testing.T) {
	e := NewEpochExt(0, big.NewInt(100), 1000, nil)
	if _, err := e.BlockReward(1); err == nil {
		t.Fatal("expected error for an epoch with no reward schedule")
	}
}

func TestEpochExtSameParameters(t *testing.T) {
	e := NewEpochExt(3, big.NewInt(150), 1000, nil)

	if !e.SameParameters(big.NewInt(150), 3) {
		t.Fatal("expected matching difficulty and epoch number to be SameParameters")
	}
	if e.SameParameters(big.NewInt(151), 3) {
		t.Fatal("expected mismatched difficulty to not be SameParameters")
	}
	if e.SameParameters(big.NewInt(150), 4) {
		t.Fatal("expected mismatched epoch number to not be SameParameters")
	}
}
