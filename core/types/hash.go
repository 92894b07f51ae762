package types

import (
	"encoding/hex"
	"strings"
)

// HashLength is the number of bytes in a Hash.
const HashLength = 32

// Hash is a fixed-size content hash, used for transaction ids, header
// hashes and uncle hashes alike. It is comparable and usable directly as
// a map/LRU key, mirroring how the teacher's common.Hash is used as a
// map key throughout worker.go's ancestor/family bookkeeping.
type Hash [HashLength]byte

// Hex returns the 0x-prefixed hex encoding of the hash.
func (h Hash) Hex() string {
	return "0x" + hex.EncodeToString(h[:])
}

func (h Hash) String() string {
	return h.Hex()
}

// IsZero reports whether the hash is the zero value.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// BytesToHash right-aligns b into a Hash, truncating from the left if b
// is longer than HashLength.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
	return h
}

// HashFromHex parses a 0x-prefixed or bare hex string into a Hash.
func HashFromHex(s string) (Hash, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return Hash{}, err
	}
	return BytesToHash(b), nil
}
