package cipher

import "errors"

// The finite set of failure classes every operation in this package and its
// consumers reports through. Success is a nil error. Callers match with
// errors.Is; engines wrap these with context via fmt.Errorf and %w.
var (
	// ErrBadParam indicates malformed or inconsistent arguments: a nil
	// descriptor or engine state, a key or IV of the wrong length, or an
	// output that would exceed the destination capacity.
	ErrBadParam = errors.New("cipher: bad parameter")

	// ErrNoSuchOp indicates an optional operation the engine behind this
	// instance does not implement.
	ErrNoSuchOp = errors.New("cipher: unsupported operation")

	// ErrCantCheck indicates the conformance harness cannot run at all,
	// e.g. a descriptor with no known-answer test vectors.
	ErrCantCheck = errors.New("cipher: cannot perform validation")

	// ErrAlgoFail indicates a known-answer or invertibility mismatch, or an
	// AEAD authentication failure surfaced during decryption.
	ErrAlgoFail = errors.New("cipher: algorithm failure")
)
