package types

import (
	"math/big"
	"strconv"
)

// UncleTemplate is the miner-facing projection of an UncleBlock.
type UncleTemplate struct {
	Hash      Hash
	Required  bool
	Proposals []ProposalShortId
	Header    Header
}

// TransactionTemplate is the miner-facing projection of a pooled
// transaction selected into the template.
type TransactionTemplate struct {
	Hash     Hash
	Required bool
	Cycles   *string
	Depends  []uint32
	Data     *Transaction
}

// CellbaseTemplate is the miner-facing projection of the cellbase.
type CellbaseTemplate struct {
	Hash   Hash
	Cycles *string
	Data   *Transaction
}

// BlockTemplate is the complete, cacheable description of the next block a
// miner should attempt to mine. Numeric fields that may exceed 2^53 are
// carried as decimal strings, since the miner-facing protocol is JSON and
// JSON numbers lose precision above that threshold.
type BlockTemplate struct {
	Version          uint32
	Difficulty       *big.Int
	CurrentTime      string
	Number           string
	Epoch            string
	ParentHash       Hash
	CyclesLimit      string
	BytesLimit       string
	UnclesCountLimit uint32

	Uncles       []UncleTemplate
	Transactions []TransactionTemplate
	Proposals    []ProposalShortId
	Cellbase     CellbaseTemplate
	WorkID       string
}

// Clone returns a deep-enough copy of the template: callers receive their
// own slice headers so a cache hit can be safely handed to multiple
// concurrent requesters without one mutating another's view.
func (t *BlockTemplate) Clone() *BlockTemplate {
	cp := *t
	cp.Uncles = append([]UncleTemplate(nil), t.Uncles...)
	cp.Transactions = append([]TransactionTemplate(nil), t.Transactions...)
	cp.Proposals = append([]ProposalShortId(nil), t.Proposals...)
	if t.Difficulty != nil {
		cp.Difficulty = new(big.Int).Set(t.Difficulty)
	}
	return &cp
}

// FormatUint64 renders a uint64 as the decimal string the wire template
// format expects.
func FormatUint64(v uint64) string {
	return strconv.FormatUint(v, 10)
}

// OptionalCyclesString renders an optional cycle count as *string, nil when
// absent.
func OptionalCyclesString(cycles *uint64) *string {
	if cycles == nil {
		return nil
	}
	s := FormatUint64(*cycles)
	return &s
}
