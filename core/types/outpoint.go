package types

// CellOutPoint identifies one output of a previously built transaction:
// the transaction's hash and the zero-based index of the output within it.
type CellOutPoint struct {
	TxHash Hash
	Index  uint32
}

// OutPoint is a reference to either a prior cell (an input that spends an
// output and carries capacity) or a header-only dependency (a reference to
// a block header with no capacity attached). Only the Cell variant is
// resolvable by the fee calculator.
type OutPoint struct {
	Cell      *CellOutPoint
	BlockHash *Hash
}

// NewCellOutPoint builds an OutPoint referencing a cell.
func NewCellOutPoint(txHash Hash, index uint32) OutPoint {
	return OutPoint{Cell: &CellOutPoint{TxHash: txHash, Index: index}}
}

// NewHeaderOutPoint builds a header-only dependency OutPoint, carrying no
// capacity.
func NewHeaderOutPoint(blockHash Hash) OutPoint {
	return OutPoint{BlockHash: &blockHash}
}

// IsCell reports whether this OutPoint names a spendable cell.
func (o OutPoint) IsCell() bool {
	return o.Cell != nil
}
