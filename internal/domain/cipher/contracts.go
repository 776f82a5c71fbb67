package cipher

// Stream is the mandatory contract every cipher engine must satisfy. An
// engine is the opaque per-instance state a Type's constructor returns; it is
// exclusively owned by one Cipher and is never shared between callers.
type Stream interface {
	// Init keys (or re-keys) the engine. It must be callable any number of
	// times across the engine's life without reallocation, e.g. once for an
	// encrypt pass and again for the matching decrypt pass.
	Init(key []byte) error

	// SetIV sets the initialization vector for the given direction. Init
	// must have been called first.
	SetIV(iv []byte, direction Direction) error

	// Encrypt transforms src into dst and returns the number of bytes
	// written, which may differ from len(src) for padding algorithms.
	// len(dst) is a capacity the engine must not exceed, failing with
	// ErrBadParam instead of overflowing. dst and src may alias fully.
	Encrypt(dst, src []byte) (int, error)

	// Decrypt is the symmetric contract to Encrypt. For AEAD engines that
	// verify the tag inline, an authentication failure is reported as an
	// ErrAlgoFail-class error through the same channel as all other errors.
	Decrypt(dst, src []byte) (int, error)

	// Close releases the engine's own state. It must be called exactly once
	// per successfully constructed engine; the engine must not be used
	// afterwards.
	Close() error
}

// AEAD is the optional capability pair for engines with a detachable
// authentication tag and additional-authenticated-data support. The dispatch
// layer discovers it by type assertion; engines without it surface
// ErrNoSuchOp through Cipher.SetAAD and Cipher.Tag.
type AEAD interface {
	// SetAAD supplies additional authenticated data for the next Encrypt or
	// Decrypt call.
	SetAAD(aad []byte) error

	// Tag writes the authentication tag produced by the preceding Encrypt
	// into buf and returns its length. The tag length must be re-queried on
	// every call; it is not guaranteed stable across key sizes.
	Tag(buf []byte) (int, error)
}

// ConformanceService validates a cipher descriptor against its built-in
// known-answer vectors and a randomized invertibility suite.
type ConformanceService interface {
	// SelfTest runs every known-answer vector of t in order, then the
	// randomized round-trip trials. It returns nil only if everything
	// passed; the first failure aborts the remaining work.
	SelfTest(t *Type) error
}

// BenchmarkService measures sustained cipher throughput.
type BenchmarkService interface {
	// BitsPerSecond estimates how many bits per second c can encrypt (plus
	// tag, when supported) for payloads of bufSize bytes over the given
	// number of trials. c must already be constructed and keyed by the
	// caller. It returns the sentinel 0, never an error, when any step
	// fails or the run is too fast to time.
	BitsPerSecond(c *Cipher, bufSize, trials int) uint64
}
