package consensus

// PowEngine exposes the one property the assembler core needs from the
// proof-of-work engine: the size, in bytes, of a solved proof, used to
// compute a header's serialized size. Everything else about mining
// (finding a nonce, verifying a solution) is this core's explicit
// non-goal and lives entirely behind this interface's implementor.
type PowEngine interface {
	ProofSize() int
}

// Params holds the fixed consensus limits the assembler core must respect
// when building a template. They are read-only from this core's
// perspective; the full node's chain-spec loader is responsible for
// populating them.
type Params struct {
	MaxBlockBytes          uint64
	MaxBlockProposalsLimit uint64
	BlockVersion           uint32
	MaxBlockCycles         uint64
	MaxUnclesNum           int
	MaxUnclesAge           uint64
	Pow                    PowEngine
}
