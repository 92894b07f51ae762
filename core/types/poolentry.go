package types

// PoolEntry is a validated transaction as handed to the assembler by the
// mempool, together with the measurements the spec needs to budget a
// template: its execution cycle count (absent if not yet measured) and its
// serialized size.
type PoolEntry struct {
	Transaction *Transaction
	Cycles      *uint64
	Size        uint64
}
