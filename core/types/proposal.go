package types

// ProposalShortIdSize is the serialized size, in bytes, of a truncated
// transaction identifier used to pre-announce upcoming transactions.
const ProposalShortIdSize = 10

// ProposalShortId is a truncated transaction id embedded in a block to
// pre-announce a transaction the block's author intends to include soon.
type ProposalShortId [ProposalShortIdSize]byte

// ProposalShortIdFromHash truncates a transaction hash into a short id.
func ProposalShortIdFromHash(h Hash) ProposalShortId {
	var id ProposalShortId
	copy(id[:], h[:ProposalShortIdSize])
	return id
}
