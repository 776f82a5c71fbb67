package cryptography

import (
	"fmt"

	cipherDomain "github.com/transportsec/cipher-suite/internal/domain/cipher"
)

// nullKeyLenMax bounds the key lengths the null descriptor advertises.
const nullKeyLenMax = 64

// nullCipher is the identity transform: encryption and decryption copy the
// input unchanged. It exercises every non-AEAD code path of the dispatch
// layer and the conformance harness without doing any cryptography, the same
// role the null cipher plays in SRTP stacks.
type nullCipher struct {
	keyLen int
	keyed  bool
}

func newNullCipher(keyLen, tagLen int) (cipherDomain.Stream, error) {
	if keyLen < 0 || keyLen > nullKeyLenMax {
		return nil, fmt.Errorf("null cipher key length %d out of range: %w", keyLen, cipherDomain.ErrBadParam)
	}
	if tagLen != 0 {
		return nil, fmt.Errorf("null cipher has no authentication tag: %w", cipherDomain.ErrBadParam)
	}
	return &nullCipher{keyLen: keyLen}, nil
}

func (n *nullCipher) Init(key []byte) error {
	if len(key) != n.keyLen {
		return fmt.Errorf("null cipher init with %d-byte key, want %d: %w", len(key), n.keyLen, cipherDomain.ErrBadParam)
	}
	n.keyed = true
	return nil
}

func (n *nullCipher) SetIV(_ []byte, _ cipherDomain.Direction) error {
	if !n.keyed {
		return fmt.Errorf("null cipher not initialized: %w", cipherDomain.ErrBadParam)
	}
	return nil
}

func (n *nullCipher) Encrypt(dst, src []byte) (int, error) {
	if !n.keyed {
		return 0, fmt.Errorf("null cipher encrypt before init: %w", cipherDomain.ErrBadParam)
	}
	if len(src) > len(dst) {
		return 0, fmt.Errorf("null cipher output exceeds destination capacity: %w", cipherDomain.ErrBadParam)
	}
	copy(dst, src)
	return len(src), nil
}

func (n *nullCipher) Decrypt(dst, src []byte) (int, error) {
	return n.Encrypt(dst, src)
}

func (n *nullCipher) Close() error {
	n.keyed = false
	return nil
}

// Null is the identity-transform descriptor.
var Null = &cipherDomain.Type{
	Name:      "null",
	Algorithm: cipherDomain.AlgorithmGeneric,
	MinKeyLen: 0,
	MaxKeyLen: nullKeyLenMax,
	IVLen:     0,
	MaxTagLen: 0,
	New:       newNullCipher,
	TestCases: []cipherDomain.TestCase{
		{
			Key:        mustHex("000102030405060708090a0b0c0d0e0f"),
			Plaintext:  []byte("identity transform known answer"),
			Ciphertext: []byte("identity transform known answer"),
			TagLen:     0,
		},
	},
}
