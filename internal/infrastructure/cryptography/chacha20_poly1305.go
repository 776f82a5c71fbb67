package cryptography

import (
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	cipherDomain "github.com/transportsec/cipher-suite/internal/domain/cipher"
)

// chaCha20Poly1305 implements the Stream and AEAD contracts over the RFC 8439
// construction from golang.org/x/crypto. Key, nonce and tag geometry are all
// fixed by the RFC.
type chaCha20Poly1305 struct {
	aead  cipher.AEAD
	iv    []byte
	aad   []byte
	tag   []byte
	buf   []byte
	ivSet bool
}

func newChaCha20Poly1305(keyLen, tagLen int) (cipherDomain.Stream, error) {
	if keyLen != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("ChaCha20-Poly1305 key length %d not supported: %w", keyLen, cipherDomain.ErrBadParam)
	}
	if tagLen != 0 && tagLen != chacha20poly1305.Overhead {
		return nil, fmt.Errorf("ChaCha20-Poly1305 tag length %d not supported: %w", tagLen, cipherDomain.ErrBadParam)
	}
	return &chaCha20Poly1305{
		iv: make([]byte, chacha20poly1305.NonceSize),
	}, nil
}

func (c *chaCha20Poly1305) Init(key []byte) error {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return fmt.Errorf("failed to initialize ChaCha20-Poly1305: %w", cipherDomain.ErrBadParam)
	}
	c.aead = aead
	c.aad = c.aad[:0]
	c.tag = c.tag[:0]
	c.ivSet = false
	return nil
}

func (c *chaCha20Poly1305) SetIV(iv []byte, _ cipherDomain.Direction) error {
	if c.aead == nil {
		return fmt.Errorf("ChaCha20-Poly1305 not initialized: %w", cipherDomain.ErrBadParam)
	}
	if len(iv) != chacha20poly1305.NonceSize {
		return fmt.Errorf("ChaCha20-Poly1305 nonce length %d, want %d: %w",
			len(iv), chacha20poly1305.NonceSize, cipherDomain.ErrBadParam)
	}
	copy(c.iv, iv)
	c.ivSet = true
	return nil
}

func (c *chaCha20Poly1305) SetAAD(aad []byte) error {
	if c.aead == nil {
		return fmt.Errorf("ChaCha20-Poly1305 not initialized: %w", cipherDomain.ErrBadParam)
	}
	c.aad = append(c.aad[:0], aad...)
	return nil
}

func (c *chaCha20Poly1305) Encrypt(dst, src []byte) (int, error) {
	if c.aead == nil || !c.ivSet {
		return 0, fmt.Errorf("ChaCha20-Poly1305 encrypt before init/set-iv: %w", cipherDomain.ErrBadParam)
	}
	if len(src) > len(dst) {
		return 0, fmt.Errorf("ChaCha20-Poly1305 output exceeds destination capacity: %w", cipherDomain.ErrBadParam)
	}

	out := c.aead.Seal(c.buf[:0], c.iv, src, c.aad)
	c.buf = out[:0]

	n := len(src)
	copy(dst, out[:n])
	c.tag = append(c.tag[:0], out[n:]...)
	c.aad = c.aad[:0]
	return n, nil
}

// Decrypt opens src and invalidates any tag still pending from a prior
// Encrypt.
func (c *chaCha20Poly1305) Decrypt(dst, src []byte) (int, error) {
	if c.aead == nil || !c.ivSet {
		return 0, fmt.Errorf("ChaCha20-Poly1305 decrypt before init/set-iv: %w", cipherDomain.ErrBadParam)
	}
	c.tag = c.tag[:0]
	if len(src) < chacha20poly1305.Overhead {
		return 0, fmt.Errorf("ChaCha20-Poly1305 ciphertext shorter than tag: %w", cipherDomain.ErrBadParam)
	}
	if len(src)-chacha20poly1305.Overhead > len(dst) {
		return 0, fmt.Errorf("ChaCha20-Poly1305 output exceeds destination capacity: %w", cipherDomain.ErrBadParam)
	}

	out, err := c.aead.Open(c.buf[:0], c.iv, src, c.aad)
	if err != nil {
		c.aad = c.aad[:0]
		return 0, fmt.Errorf("ChaCha20-Poly1305 authentication failed: %w", cipherDomain.ErrAlgoFail)
	}
	c.buf = out[:0]

	copy(dst, out)
	c.aad = c.aad[:0]
	return len(out), nil
}

func (c *chaCha20Poly1305) Tag(buf []byte) (int, error) {
	if len(c.tag) == 0 {
		return 0, fmt.Errorf("ChaCha20-Poly1305 has no pending tag: %w", cipherDomain.ErrBadParam)
	}
	if len(buf) < len(c.tag) {
		return 0, fmt.Errorf("ChaCha20-Poly1305 tag exceeds destination capacity: %w", cipherDomain.ErrBadParam)
	}
	return copy(buf, c.tag), nil
}

func (c *chaCha20Poly1305) Close() error {
	c.aead = nil
	for i := range c.iv {
		c.iv[i] = 0
	}
	c.aad = nil
	c.tag = nil
	c.buf = nil
	c.ivSet = false
	return nil
}

// ChaCha20Poly1305 is the RFC 8439 AEAD descriptor. The built-in vector is
// the RFC 8439 section 2.8.2 "sunscreen" known answer.
var ChaCha20Poly1305 = &cipherDomain.Type{
	Name:      "chacha20-poly1305",
	Algorithm: cipherDomain.AlgorithmChaCha20Poly1305,
	MinKeyLen: cipherDomain.ChaCha20Poly1305KeySize,
	MaxKeyLen: cipherDomain.ChaCha20Poly1305KeySize,
	IVLen:     chacha20poly1305.NonceSize,
	MaxTagLen: chacha20poly1305.Overhead,
	New:       newChaCha20Poly1305,
	TestCases: []cipherDomain.TestCase{
		{
			Key: mustHex("808182838485868788898a8b8c8d8e8f" +
				"909192939495969798999a9b9c9d9e9f"),
			IV:  mustHex("070000004041424344454647"),
			AAD: mustHex("50515253c0c1c2c3c4c5c6c7"),
			Plaintext: []byte("Ladies and Gentlemen of the class of '99: " +
				"If I could offer you only one tip for the future, " +
				"sunscreen would be it."),
			Ciphertext: mustHex("d31a8d34648e60db7b86afbc53ef7ec2" +
				"a4aded51296e08fea9e2b5a736ee62d6" +
				"3dbea45e8ca9671282fafb69da92728b" +
				"1a71de0a9e060b2905d6a5b67ecd3b36" +
				"92ddbd7f2d778b8c9803aee328091b58" +
				"fab324e4fad675945585808b4831d7bc" +
				"3ff4def08e4b7a9de576d26586cec64b" +
				"6116" +
				"1ae10b594f09e26a7e902ecbd0600691"),
			TagLen: chacha20poly1305.Overhead,
		},
	},
}
