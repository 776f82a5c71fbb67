package app

import (
	"fmt"

	"github.com/transportsec/cipher-suite/internal/domain/cipher"
	"github.com/transportsec/cipher-suite/internal/pkg/logger"
	"github.com/transportsec/cipher-suite/internal/pkg/testrand"
)

const (
	// selfTestBufSize is the scratch capacity known-answer vectors must fit
	// in, plaintext and ciphertext (with tag) alike.
	selfTestBufSize = 256

	// numRandTrials is the number of randomized invertibility round trips.
	numRandTrials = 128

	// maxKeyLen bounds the key scratch for randomized trials.
	maxKeyLen = 64

	// randHeadroom is reserved below the scratch capacity when drawing
	// random plaintext lengths, leaving room for IV and tag growth.
	randHeadroom = 64
)

// conformanceService implements the ConformanceService interface: it drives a
// descriptor through its known-answer vectors and a randomized invertibility
// suite using only dispatch-layer operations, without knowing which cipher
// variant it is testing.
type conformanceService struct {
	logger logger.Logger
	rand   testrand.Source
}

// NewConformanceService creates a new conformanceService instance. rand must
// be a test-only source; conformance data never needs real entropy.
func NewConformanceService(logger logger.Logger, rand testrand.Source) (cipher.ConformanceService, error) {
	if rand == nil {
		return nil, fmt.Errorf("random source must not be nil")
	}
	return &conformanceService{
		logger: logger,
		rand:   rand,
	}, nil
}

// SelfTest runs every known-answer vector of t in order, then the randomized
// invertibility trials. The first failure anywhere aborts the remaining work.
func (s *conformanceService) SelfTest(t *cipher.Type) error {
	if t == nil {
		return cipher.ErrBadParam
	}

	s.logger.Info("running self-test for cipher ", t.Name)

	// We need at least one test case to be able to check anything at all.
	if len(t.TestCases) == 0 {
		return fmt.Errorf("cipher %s has no test vectors: %w", t.Name, cipher.ErrCantCheck)
	}

	for i := range t.TestCases {
		if err := s.runKnownAnswer(t, i, &t.TestCases[i]); err != nil {
			return err
		}
	}

	if err := s.runRandomTrials(t); err != nil {
		return err
	}

	s.logger.Info("self-test passed for cipher ", t.Name)
	return nil
}

// runKnownAnswer exercises one vector: an encrypt phase compared against the
// expected ciphertext, then a decrypt phase on the same re-initialized
// instance compared against the plaintext.
func (s *conformanceService) runKnownAnswer(t *cipher.Type, index int, tc *cipher.TestCase) error {
	c, err := cipher.New(t, len(tc.Key), tc.TagLen)
	if err != nil {
		return err
	}

	if err := s.testVectorPhases(c, t, index, tc); err != nil {
		_ = c.Close()
		return err
	}
	return c.Close()
}

func (s *conformanceService) testVectorPhases(c *cipher.Cipher, t *cipher.Type, index int, tc *cipher.TestCase) error {
	if len(tc.Plaintext) > selfTestBufSize || len(tc.Ciphertext) > selfTestBufSize {
		return fmt.Errorf("test case %d exceeds scratch capacity: %w", index, cipher.ErrBadParam)
	}

	buffer := make([]byte, selfTestBufSize)

	// Encrypt phase.
	if err := c.Init(tc.Key); err != nil {
		return err
	}
	copy(buffer, tc.Plaintext)
	if err := c.SetIV(tc.IV, cipher.DirectionEncrypt); err != nil {
		return err
	}
	if t.Algorithm.AEAD() {
		if err := c.SetAAD(tc.AAD); err != nil {
			return err
		}
	}
	n, err := c.Encrypt(buffer, buffer[:len(tc.Plaintext)])
	if err != nil {
		return err
	}
	if t.Algorithm.AEAD() {
		// Tag length is re-read on every call, never cached.
		tagLen, err := c.Tag(buffer[n:])
		if err != nil {
			return err
		}
		n += tagLen
	}
	if n != len(tc.Ciphertext) {
		return fmt.Errorf("test case %d failed: ciphertext length %d, want %d: %w",
			index, n, len(tc.Ciphertext), cipher.ErrAlgoFail)
	}
	for k := range tc.Ciphertext {
		if buffer[k] != tc.Ciphertext[k] {
			return fmt.Errorf("test case %d failed: ciphertext mismatch at byte %d: %w",
				index, k, cipher.ErrAlgoFail)
		}
	}

	// Decrypt phase: re-initializing with the same key must work without
	// reallocating the instance.
	if err := c.Init(tc.Key); err != nil {
		return err
	}
	copy(buffer, tc.Ciphertext)
	if err := c.SetIV(tc.IV, cipher.DirectionDecrypt); err != nil {
		return err
	}
	if t.Algorithm.AEAD() {
		if err := c.SetAAD(tc.AAD); err != nil {
			return err
		}
	}
	n, err = c.Decrypt(buffer, buffer[:len(tc.Ciphertext)])
	if err != nil {
		return err
	}
	if n != len(tc.Plaintext) {
		return fmt.Errorf("test case %d failed: plaintext length %d, want %d: %w",
			index, n, len(tc.Plaintext), cipher.ErrAlgoFail)
	}
	for k := range tc.Plaintext {
		if buffer[k] != tc.Plaintext[k] {
			return fmt.Errorf("test case %d failed: plaintext mismatch at byte %d: %w",
				index, k, cipher.ErrAlgoFail)
		}
	}

	return nil
}

// runRandomTrials round-trips random plaintexts through encrypt then decrypt
// with the same random key and IV, using the first vector's key and tag
// lengths as construction parameters.
func (s *conformanceService) runRandomTrials(t *cipher.Type) error {
	first := &t.TestCases[0]
	if len(first.Key) > maxKeyLen {
		return fmt.Errorf("cipher %s key length exceeds trial scratch: %w", t.Name, cipher.ErrCantCheck)
	}

	c, err := cipher.New(t, len(first.Key), first.TagLen)
	if err != nil {
		return err
	}

	if err := s.randomTrialLoop(c, t, first); err != nil {
		_ = c.Close()
		return err
	}
	return c.Close()
}

func (s *conformanceService) randomTrialLoop(c *cipher.Cipher, t *cipher.Type, first *cipher.TestCase) error {
	buffer := make([]byte, selfTestBufSize)
	reference := make([]byte, selfTestBufSize)
	key := make([]byte, len(first.Key))
	iv := make([]byte, t.IVLen)

	for j := 0; j < numRandTrials; j++ {
		// Leave headroom below the scratch capacity for IV and tag growth.
		plaintextLen := int(s.rand.Uint32() % uint32(selfTestBufSize-randHeadroom))
		s.rand.Fill(buffer[:plaintextLen])
		copy(reference, buffer[:plaintextLen])

		s.rand.Fill(key)
		s.rand.Fill(iv)

		if err := c.Init(key); err != nil {
			return err
		}
		if err := c.SetIV(iv, cipher.DirectionEncrypt); err != nil {
			return err
		}
		if t.Algorithm.AEAD() {
			if err := c.SetAAD(first.AAD); err != nil {
				return err
			}
		}
		encryptedLen, err := c.Encrypt(buffer, buffer[:plaintextLen])
		if err != nil {
			return err
		}
		if t.Algorithm.AEAD() {
			tagLen, err := c.Tag(buffer[encryptedLen:])
			if err != nil {
				return err
			}
			encryptedLen += tagLen
		}

		// Re-initialize for decryption with the same key and IV.
		if err := c.Init(key); err != nil {
			return err
		}
		if err := c.SetIV(iv, cipher.DirectionDecrypt); err != nil {
			return err
		}
		if t.Algorithm.AEAD() {
			if err := c.SetAAD(first.AAD); err != nil {
				return err
			}
		}
		decryptedLen, err := c.Decrypt(buffer, buffer[:encryptedLen])
		if err != nil {
			return err
		}

		if decryptedLen != plaintextLen {
			return fmt.Errorf("random trial %d failed: recovered length %d, want %d: %w",
				j, decryptedLen, plaintextLen, cipher.ErrAlgoFail)
		}
		for k := 0; k < plaintextLen; k++ {
			if buffer[k] != reference[k] {
				return fmt.Errorf("random trial %d failed: plaintext mismatch at byte %d: %w",
					j, k, cipher.ErrAlgoFail)
			}
		}
	}

	return nil
}
