package cipher

import (
	"errors"
	"fmt"

	"github.com/transportsec/cipher-suite/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
)

// Type is the immutable capability table for one algorithm family. A Type is
// constructed once at process start and shared read-only by every instance of
// that algorithm; it is never mutated afterwards, so concurrent reads need no
// synchronization.
type Type struct {
	// Name is the human-readable descriptor name, e.g. "aes-gcm-128".
	Name string `validate:"required"`

	// Algorithm identifies the family; the conformance harness recognizes
	// AEAD identifiers specially.
	Algorithm Algorithm

	// MinKeyLen and MaxKeyLen bound the accepted key lengths in bytes.
	MinKeyLen int `validate:"keyLengthValidation"`
	MaxKeyLen int `validate:"gtefield=MinKeyLen,keyLengthValidation"`

	// IVLen is the initialization vector length in bytes the engine expects;
	// zero for engines that take no IV.
	IVLen int `validate:"gte=0"`

	// MaxTagLen is the largest authentication tag the engine can produce in
	// bytes; zero for engines without a detachable tag.
	MaxTagLen int `validate:"gte=0"`

	// New constructs the opaque engine state for one instance. keyLen and
	// tagLen are the negotiated key and tag lengths in bytes.
	New func(keyLen, tagLen int) (Stream, error) `validate:"required"`

	// TestCases is the descriptor's built-in known-answer vector list.
	// Insertion order is the conformance harness's execution order. The
	// list may be empty, in which case self-testing reports ErrCantCheck.
	TestCases []TestCase
}

// Validate checks that the descriptor's fields are internally consistent.
func (t *Type) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("keyLengthValidation", validators.KeyLengthValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	err := validate.Struct(t)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// TestCase is one known-answer vector: a fixed key, IV and plaintext with the
// independently verified correct ciphertext. Vectors are read-only inputs
// supplied by the descriptor; the conformance harness never mutates them.
type TestCase struct {
	// Key is the cipher key; its length is the key length the vector is
	// exercised with.
	Key []byte `validate:"required"`

	// IV is the initialization vector or salt. May be empty for engines
	// with IVLen zero.
	IV []byte

	// AAD is the additional authenticated data, if any. Only consulted for
	// AEAD algorithm families.
	AAD []byte

	// Plaintext is the input to the encrypt phase and the expected output
	// of the decrypt phase. May be empty.
	Plaintext []byte

	// Ciphertext is the expected encrypt output, including any appended
	// authentication tag.
	Ciphertext []byte `validate:"required"`

	// TagLen is the expected authentication tag length in bytes; zero for
	// non-AEAD vectors.
	TagLen int `validate:"gte=0"`
}

// Validate checks that the vector carries the fields the harness depends on.
func (tc *TestCase) Validate() error {
	validate := validator.New()

	err := validate.Struct(tc)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	if len(tc.Ciphertext) < tc.TagLen {
		return fmt.Errorf("ciphertext shorter than its own tag: %w", ErrBadParam)
	}

	return nil
}
