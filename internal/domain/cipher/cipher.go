package cipher

// Cipher is one live use of a Type's algorithm, e.g. bound to one packet
// stream direction. It holds the descriptor back-reference, the algorithm
// identifier copied from the descriptor, the negotiated key length, and the
// engine state it exclusively owns. The descriptor is shared and read-only;
// the engine state belongs to this instance alone, so concurrent calls
// against the same Cipher must be serialized by the caller.
type Cipher struct {
	typ       *Type
	algorithm Algorithm
	keyLen    int
	state     Stream
}

// New constructs a Cipher by delegating to the descriptor's constructor. It
// fails with ErrBadParam if the descriptor is nil or declares no constructor.
func New(t *Type, keyLen, tagLen int) (*Cipher, error) {
	if t == nil || t.New == nil {
		return nil, ErrBadParam
	}

	state, err := t.New(keyLen, tagLen)
	if err != nil {
		return nil, err
	}

	return &Cipher{
		typ:       t,
		algorithm: t.Algorithm,
		keyLen:    keyLen,
		state:     state,
	}, nil
}

// valid reports whether the instance may be dispatched to at all. An instance
// missing either its descriptor or its engine state must fail with
// ErrBadParam rather than dereferencing.
func (c *Cipher) valid() bool {
	return c != nil && c.typ != nil && c.state != nil
}

// Close releases the instance's own state via the descriptor's destructor.
// It must be called exactly once per successfully constructed instance; the
// shared descriptor is never released.
func (c *Cipher) Close() error {
	if !c.valid() {
		return ErrBadParam
	}
	return c.state.Close()
}

// Init keys (or re-keys) the instance. It may be called multiple times across
// the instance's life, e.g. an encrypt pass then a decrypt pass.
func (c *Cipher) Init(key []byte) error {
	if !c.valid() {
		return ErrBadParam
	}
	return c.state.Init(key)
}

// SetIV sets the initialization vector for the given direction.
func (c *Cipher) SetIV(iv []byte, direction Direction) error {
	if !c.valid() {
		return ErrBadParam
	}
	return c.state.SetIV(iv, direction)
}

// SetAAD supplies additional authenticated data for the next Encrypt or
// Decrypt call. Engines without AEAD support surface ErrNoSuchOp.
func (c *Cipher) SetAAD(aad []byte) error {
	if !c.valid() {
		return ErrBadParam
	}
	a, ok := c.state.(AEAD)
	if !ok {
		return ErrNoSuchOp
	}
	return a.SetAAD(aad)
}

// Encrypt transforms src into dst, returning the number of bytes written.
// len(dst) is the capacity the engine must not exceed; dst and src may alias.
func (c *Cipher) Encrypt(dst, src []byte) (int, error) {
	if !c.valid() {
		return 0, ErrBadParam
	}
	return c.state.Encrypt(dst, src)
}

// Decrypt is the symmetric contract to Encrypt. For AEAD engines the inline
// tag verification failure is an ErrAlgoFail-class error.
func (c *Cipher) Decrypt(dst, src []byte) (int, error) {
	if !c.valid() {
		return 0, ErrBadParam
	}
	return c.state.Decrypt(dst, src)
}

// Tag writes the authentication tag produced by the preceding Encrypt into
// buf and returns its length. Engines without a detachable tag surface
// ErrNoSuchOp.
func (c *Cipher) Tag(buf []byte) (int, error) {
	if !c.valid() {
		return 0, ErrBadParam
	}
	a, ok := c.state.(AEAD)
	if !ok {
		return 0, ErrNoSuchOp
	}
	return a.Tag(buf)
}

// Output zeroes buf[:n] and then XORs the instance's en/decryption stream
// into it in place: the keystream convenience for stream ciphers, where
// encryption is keystream XOR. For block and AEAD modes it is simply Encrypt
// over a zero buffer.
func (c *Cipher) Output(buf []byte, n int) (int, error) {
	if !c.valid() {
		return 0, ErrBadParam
	}
	if n < 0 || n > len(buf) {
		return 0, ErrBadParam
	}
	for i := range buf[:n] {
		buf[i] = 0
	}
	return c.state.Encrypt(buf[:n], buf[:n])
}

// KeyLength returns the negotiated key length in bytes. Pure accessor: the
// instance is assumed valid by this point in the call chain.
func (c *Cipher) KeyLength() int {
	return c.keyLen
}

// Algorithm returns the identifier copied from the descriptor.
func (c *Cipher) Algorithm() Algorithm {
	return c.algorithm
}

// Type returns the shared, read-only descriptor.
func (c *Cipher) Type() *Type {
	return c.typ
}

// SupportsAEAD reports whether the engine implements the optional AEAD
// capability pair, without invoking anything.
func (c *Cipher) SupportsAEAD() bool {
	if !c.valid() {
		return false
	}
	_, ok := c.state.(AEAD)
	return ok
}
