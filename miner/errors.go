package miner

import "github.com/pkg/errors"

// Sentinel error kinds a caller can match with errors.Cause(err) == Err...
// after unwrapping the github.com/pkg/errors context this package attaches.
var (
	// ErrInvalidInput is returned when a transaction input's previous
	// output cannot be resolved, either in the in-template prefix or the
	// persistent store.
	ErrInvalidInput = errors.New("invalid input: previous output capacity not found")

	// ErrInvalidOutput is returned when a transaction's outputs sum to
	// more than its inputs.
	ErrInvalidOutput = errors.New("invalid output: outputs exceed inputs")

	// ErrArithmetic is returned when a checked Capacity add or subtract
	// would overflow or underflow.
	ErrArithmetic = errors.New("capacity arithmetic overflow")

	// ErrConfiguration is returned when bytes_limit is too small to hold
	// even the header, uncles and proposals of an otherwise-empty block.
	ErrConfiguration = errors.New("block size limit is too small")

	// ErrChannelClosed is returned when an internal channel the worker
	// depends on is closed out from under it; it is fatal to the worker.
	ErrChannelClosed = errors.New("internal channel closed")
)
