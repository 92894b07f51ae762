package types

import "math/big"

// headerFixedOverhead is the portion of a serialized header that does not
// depend on the consensus engine's proof size: version, number, epoch,
// timestamp, difficulty, and the three root hashes.
const headerFixedOverhead = 4 + 8 + 8 + 8 + 32 + 32 + 32 + 32

// Header carries the metadata of a block, independent of its body.
type Header struct {
	Version          uint32
	Number           uint64
	Hash             Hash
	ParentHash       Hash
	Timestamp        uint64 // milliseconds
	Epoch            uint64
	Difficulty       *big.Int
	TransactionsRoot Hash
}

// HeaderSerializedSize returns the fixed on-wire size of a header given the
// active consensus engine's proof size, mirroring the teacher's
// Header::serialized_size(proof_size) used when budgeting block bytes.
func HeaderSerializedSize(proofSize int) int {
	return headerFixedOverhead + proofSize
}
