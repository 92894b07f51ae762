package types

import "github.com/pkg/errors"

// ErrCapacityOverflow is returned by checked Capacity arithmetic when an
// addition would overflow a uint64, or a subtraction would underflow below
// zero. Capacity has no concept of a negative value, so both directions of
// the checked operations surface the same error kind; callers that need to
// distinguish addition from subtraction failures wrap this with context.
var ErrCapacityOverflow = errors.New("capacity arithmetic overflow")

// Capacity is the chain's native value unit, held by every cell output.
// All arithmetic on it must be checked: the spec treats overflow, and any
// subtraction that would go negative, as a hard error rather than wrapping
// or saturating.
type Capacity uint64

// ZeroCapacity is the additive identity.
const ZeroCapacity Capacity = 0

// AddChecked returns c+other, or ErrCapacityOverflow if the sum would wrap
// a uint64.
func (c Capacity) AddChecked(other Capacity) (Capacity, error) {
	sum := c + other
	if sum < c {
		return 0, ErrCapacityOverflow
	}
	return sum, nil
}

// SubChecked returns c-other, or ErrCapacityOverflow if other exceeds c.
func (c Capacity) SubChecked(other Capacity) (Capacity, error) {
	if other > c {
		return 0, ErrCapacityOverflow
	}
	return c - other, nil
}

// SumCapacitiesChecked folds AddChecked over cs, starting from zero.
func SumCapacitiesChecked(cs ...Capacity) (Capacity, error) {
	total := ZeroCapacity
	var err error
	for _, c := range cs {
		total, err = total.AddChecked(c)
		if err != nil {
			return 0, err
		}
	}
	return total, nil
}
