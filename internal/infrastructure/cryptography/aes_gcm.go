package cryptography

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	cipherDomain "github.com/transportsec/cipher-suite/internal/domain/cipher"
)

// GCM geometry shared by both AES-GCM key sizes.
const (
	gcmIVLen     = 12
	gcmTagLen    = 16
	gcmMinTagLen = 12
)

// aesGCM implements the Stream and AEAD contracts over the standard library
// GCM mode. The tag produced by the last Encrypt is held detached so callers
// retrieve it via Tag and append it themselves.
type aesGCM struct {
	keyLen int
	tagLen int
	aead   cipher.AEAD
	iv     []byte
	dir    cipherDomain.Direction
	aad    []byte
	tag    []byte
	buf    []byte
	ivSet  bool
}

func newAESGCM(expectedKeyLen, keyLen, tagLen int) (cipherDomain.Stream, error) {
	if keyLen != expectedKeyLen {
		return nil, fmt.Errorf("AES-GCM key length %d not supported: %w", keyLen, cipherDomain.ErrBadParam)
	}
	if tagLen == 0 {
		tagLen = gcmTagLen
	}
	if tagLen < gcmMinTagLen || tagLen > gcmTagLen {
		return nil, fmt.Errorf("AES-GCM tag length %d not supported: %w", tagLen, cipherDomain.ErrBadParam)
	}
	return &aesGCM{
		keyLen: keyLen,
		tagLen: tagLen,
		iv:     make([]byte, gcmIVLen),
	}, nil
}

// Init builds the AEAD for the given key. Re-initialization with a fresh or
// identical key resets the IV, AAD and pending tag state.
func (g *aesGCM) Init(key []byte) error {
	if len(key) != g.keyLen {
		return fmt.Errorf("AES-GCM init with %d-byte key, want %d: %w", len(key), g.keyLen, cipherDomain.ErrBadParam)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return fmt.Errorf("failed to initialize AES block cipher: %w", err)
	}
	aead, err := cipher.NewGCMWithTagSize(block, g.tagLen)
	if err != nil {
		return fmt.Errorf("failed to initialize GCM mode: %w", err)
	}

	g.aead = aead
	g.aad = g.aad[:0]
	g.tag = g.tag[:0]
	g.ivSet = false
	return nil
}

// SetIV records the 12-byte nonce. GCM derives the same effective nonce for
// both directions; the direction is kept only for contract symmetry.
func (g *aesGCM) SetIV(iv []byte, direction cipherDomain.Direction) error {
	if g.aead == nil {
		return fmt.Errorf("AES-GCM not initialized: %w", cipherDomain.ErrBadParam)
	}
	if len(iv) != gcmIVLen {
		return fmt.Errorf("AES-GCM IV length %d, want %d: %w", len(iv), gcmIVLen, cipherDomain.ErrBadParam)
	}
	copy(g.iv, iv)
	g.dir = direction
	g.ivSet = true
	return nil
}

// SetAAD replaces the additional authenticated data bound to the next
// Encrypt or Decrypt call.
func (g *aesGCM) SetAAD(aad []byte) error {
	if g.aead == nil {
		return fmt.Errorf("AES-GCM not initialized: %w", cipherDomain.ErrBadParam)
	}
	g.aad = append(g.aad[:0], aad...)
	return nil
}

// Encrypt seals src into dst and detaches the tag for a later Tag call. The
// bound AAD is consumed by the call.
func (g *aesGCM) Encrypt(dst, src []byte) (int, error) {
	if g.aead == nil || !g.ivSet {
		return 0, fmt.Errorf("AES-GCM encrypt before init/set-iv: %w", cipherDomain.ErrBadParam)
	}
	if len(src) > len(dst) {
		return 0, fmt.Errorf("AES-GCM output exceeds destination capacity: %w", cipherDomain.ErrBadParam)
	}

	out := g.aead.Seal(g.buf[:0], g.iv, src, g.aad)
	g.buf = out[:0]

	n := len(src)
	copy(dst, out[:n])
	g.tag = append(g.tag[:0], out[n:]...)
	g.aad = g.aad[:0]
	return n, nil
}

// Decrypt opens src, whose trailing tagLen bytes are the authentication tag.
// A tag mismatch is an ErrAlgoFail-class error. Any tag still pending from a
// prior Encrypt is invalidated.
func (g *aesGCM) Decrypt(dst, src []byte) (int, error) {
	if g.aead == nil || !g.ivSet {
		return 0, fmt.Errorf("AES-GCM decrypt before init/set-iv: %w", cipherDomain.ErrBadParam)
	}
	g.tag = g.tag[:0]
	if len(src) < g.tagLen {
		return 0, fmt.Errorf("AES-GCM ciphertext shorter than tag: %w", cipherDomain.ErrBadParam)
	}
	if len(src)-g.tagLen > len(dst) {
		return 0, fmt.Errorf("AES-GCM output exceeds destination capacity: %w", cipherDomain.ErrBadParam)
	}

	out, err := g.aead.Open(g.buf[:0], g.iv, src, g.aad)
	if err != nil {
		g.aad = g.aad[:0]
		return 0, fmt.Errorf("AES-GCM authentication failed: %w", cipherDomain.ErrAlgoFail)
	}
	g.buf = out[:0]

	copy(dst, out)
	g.aad = g.aad[:0]
	return len(out), nil
}

// Tag writes the tag detached by the preceding Encrypt into buf. The length
// is re-reported on every call rather than assumed stable.
func (g *aesGCM) Tag(buf []byte) (int, error) {
	if len(g.tag) == 0 {
		return 0, fmt.Errorf("AES-GCM has no pending tag: %w", cipherDomain.ErrBadParam)
	}
	if len(buf) < len(g.tag) {
		return 0, fmt.Errorf("AES-GCM tag exceeds destination capacity: %w", cipherDomain.ErrBadParam)
	}
	return copy(buf, g.tag), nil
}

// Close wipes the engine's own state. The shared descriptor is untouched.
func (g *aesGCM) Close() error {
	g.aead = nil
	for i := range g.iv {
		g.iv[i] = 0
	}
	g.aad = nil
	g.tag = nil
	g.buf = nil
	g.ivSet = false
	return nil
}

// AESGCM128 is the AES-128-GCM descriptor. The built-in vectors are the NIST
// GCM revised-spec zero-key known answers (empty and single-block payloads).
var AESGCM128 = &cipherDomain.Type{
	Name:      "aes-gcm-128",
	Algorithm: cipherDomain.AlgorithmAESGCM128,
	MinKeyLen: cipherDomain.AESKeySize128,
	MaxKeyLen: cipherDomain.AESKeySize128,
	IVLen:     gcmIVLen,
	MaxTagLen: gcmTagLen,
	New: func(keyLen, tagLen int) (cipherDomain.Stream, error) {
		return newAESGCM(cipherDomain.AESKeySize128, keyLen, tagLen)
	},
	TestCases: []cipherDomain.TestCase{
		{
			Key:        mustHex("00000000000000000000000000000000"),
			IV:         mustHex("000000000000000000000000"),
			Plaintext:  nil,
			Ciphertext: mustHex("58e2fccefa7e3061367f1d57a4e7455a"),
			TagLen:     gcmTagLen,
		},
		{
			Key:       mustHex("00000000000000000000000000000000"),
			IV:        mustHex("000000000000000000000000"),
			Plaintext: mustHex("00000000000000000000000000000000"),
			Ciphertext: mustHex("0388dace60b6a392f328c2b971b2fe78" +
				"ab6e47d42cec13bdf53a67b21257bddf"),
			TagLen: gcmTagLen,
		},
	},
}

// AESGCM256 is the AES-256-GCM descriptor with the matching zero-key NIST
// known answers.
var AESGCM256 = &cipherDomain.Type{
	Name:      "aes-gcm-256",
	Algorithm: cipherDomain.AlgorithmAESGCM256,
	MinKeyLen: cipherDomain.AESKeySize256,
	MaxKeyLen: cipherDomain.AESKeySize256,
	IVLen:     gcmIVLen,
	MaxTagLen: gcmTagLen,
	New: func(keyLen, tagLen int) (cipherDomain.Stream, error) {
		return newAESGCM(cipherDomain.AESKeySize256, keyLen, tagLen)
	},
	TestCases: []cipherDomain.TestCase{
		{
			Key:        mustHex("0000000000000000000000000000000000000000000000000000000000000000"),
			IV:         mustHex("000000000000000000000000"),
			Plaintext:  nil,
			Ciphertext: mustHex("530f8afbc74536b9a963b4f1c4cb738b"),
			TagLen:     gcmTagLen,
		},
		{
			Key:       mustHex("0000000000000000000000000000000000000000000000000000000000000000"),
			IV:        mustHex("000000000000000000000000"),
			Plaintext: mustHex("00000000000000000000000000000000"),
			Ciphertext: mustHex("cea7403d4d606b6e074ec5d3baf39d18" +
				"d0d1c8a799996bf0265b98b5d48ab919"),
			TagLen: gcmTagLen,
		},
	},
}
