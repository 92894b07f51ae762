package types

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
)

// CellInput is a transaction input: a reference to the cell it spends.
// The one exception is the synthetic cellbase input, which carries the
// new block's number instead of a real previous output.
type CellInput struct {
	PreviousOutput OutPoint
	BlockNumber    uint64 // only meaningful for the cellbase input
	IsCellbase     bool
}

// NewCellbaseInput builds the single synthetic input of a cellbase
// transaction. Encoding the block number into it is what gives cellbase
// transactions for different heights distinct hashes, exactly as the
// teacher's coinbase construction varies its output by block number.
func NewCellbaseInput(blockNumber uint64) CellInput {
	return CellInput{IsCellbase: true, BlockNumber: blockNumber}
}

// CellOutput is a transaction output: the capacity it locks, an optional
// data payload, a mandatory lock script and an optional type script.
type CellOutput struct {
	Capacity Capacity
	Data     []byte
	Lock     *Script
	Type     *Script
}

// SerializedSize approximates the on-wire size of the output.
func (o *CellOutput) SerializedSize() int {
	return 8 + len(o.Data) + o.Lock.SerializedSize() + o.Type.SerializedSize()
}

// Transaction is an ordered list of inputs and outputs. Transactions are
// content-addressed: two transactions with identical inputs and outputs
// hash identically.
type Transaction struct {
	Inputs  []CellInput
	Outputs []CellOutput

	hash     Hash
	hashedOK bool
}

// NewTransaction builds a transaction from its inputs and outputs.
func NewTransaction(inputs []CellInput, outputs []CellOutput) *Transaction {
	return &Transaction{Inputs: inputs, Outputs: outputs}
}

// Hash returns the transaction's content hash, computing and memoizing it
// on first use.
func (tx *Transaction) Hash() Hash {
	if tx.hashedOK {
		return tx.hash
	}
	var buf bytes.Buffer
	for _, in := range tx.Inputs {
		if in.IsCellbase {
			buf.WriteByte(1)
			var n [8]byte
			binary.BigEndian.PutUint64(n[:], in.BlockNumber)
			buf.Write(n[:])
			continue
		}
		buf.WriteByte(0)
		buf.Write(in.PreviousOutput.Cell.TxHash[:])
		var idx [4]byte
		binary.BigEndian.PutUint32(idx[:], in.PreviousOutput.Cell.Index)
		buf.Write(idx[:])
	}
	for _, out := range tx.Outputs {
		var capBuf [8]byte
		binary.BigEndian.PutUint64(capBuf[:], uint64(out.Capacity))
		buf.Write(capBuf[:])
		buf.Write(out.Data)
		if out.Lock != nil {
			buf.Write(out.Lock.CodeHash[:])
			for _, a := range out.Lock.Args {
				buf.Write(a)
			}
		}
	}
	sum := sha256.Sum256(buf.Bytes())
	tx.hash = Hash(sum)
	tx.hashedOK = true
	return tx.hash
}

// SerializedSize approximates the on-wire size of the transaction.
func (tx *Transaction) SerializedSize() int {
	size := 0
	for range tx.Inputs {
		size += 44 // previous out-point (32+4) + 8 bytes book-keeping
	}
	for _, out := range tx.Outputs {
		size += out.SerializedSize()
	}
	return size
}

// IsCellbase reports whether tx is a cellbase transaction: exactly one
// synthetic cellbase input.
func (tx *Transaction) IsCellbase() bool {
	return len(tx.Inputs) == 1 && tx.Inputs[0].IsCellbase
}
