// Package cipher defines the contracts for interchangeable symmetric-cipher
// implementations (stream ciphers and AEAD ciphers) and the dispatch layer a
// secure-transport consumer calls instead of touching an engine directly.
//
// A Type is an immutable capability table describing one algorithm family; a
// Cipher is one live, keyed use of a Type. Optional operations (tag retrieval,
// additional authenticated data) are discovered by capability query and
// surface as ErrNoSuchOp when absent, never as a nil dereference.
package cipher
