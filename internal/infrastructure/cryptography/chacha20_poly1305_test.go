//go:build unit
// +build unit

package cryptography

import (
	"testing"

	cipherDomain "github.com/transportsec/cipher-suite/internal/domain/cipher"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChaCha20Poly1305(t *testing.T) {
	vector := ChaCha20Poly1305.TestCases[0]

	t.Run("KnownAnswer", func(t *testing.T) {
		sealed := sealAEAD(t, ChaCha20Poly1305, vector.Key, vector.IV, vector.AAD, vector.Plaintext)
		assert.Equal(t, vector.Ciphertext, sealed)

		plaintext, err := openAEAD(t, ChaCha20Poly1305, vector.Key, vector.IV, vector.AAD, vector.Ciphertext)
		require.NoError(t, err)
		assert.Equal(t, vector.Plaintext, plaintext)
	})

	t.Run("TamperFailsClosed", func(t *testing.T) {
		_, err := openAEAD(t, ChaCha20Poly1305, vector.Key, vector.IV, vector.AAD,
			flipBit(vector.Ciphertext, len(vector.Ciphertext)-1))
		assert.ErrorIs(t, err, cipherDomain.ErrAlgoFail)

		_, err = openAEAD(t, ChaCha20Poly1305, vector.Key, vector.IV,
			flipBit(vector.AAD, 0), vector.Ciphertext)
		assert.ErrorIs(t, err, cipherDomain.ErrAlgoFail)
	})

	t.Run("NoStaleTagAfterDecrypt", func(t *testing.T) {
		c := setupKeyedCipher(t, ChaCha20Poly1305, vector.Key, ChaCha20Poly1305.MaxTagLen)

		require.NoError(t, c.SetIV(vector.IV, cipherDomain.DirectionEncrypt))
		require.NoError(t, c.SetAAD(vector.AAD))

		sealed := make([]byte, len(vector.Plaintext)+ChaCha20Poly1305.MaxTagLen)
		n, err := c.Encrypt(sealed, vector.Plaintext)
		require.NoError(t, err)
		tagLen, err := c.Tag(sealed[n:])
		require.NoError(t, err)
		sealed = sealed[:n+tagLen]

		// Decrypt on the same instance invalidates the pending encrypt tag.
		require.NoError(t, c.SetIV(vector.IV, cipherDomain.DirectionDecrypt))
		require.NoError(t, c.SetAAD(vector.AAD))
		buf := make([]byte, len(sealed))
		_, err = c.Decrypt(buf, sealed)
		require.NoError(t, err)

		_, err = c.Tag(make([]byte, ChaCha20Poly1305.MaxTagLen))
		assert.ErrorIs(t, err, cipherDomain.ErrBadParam)
	})

	t.Run("RejectsBadGeometry", func(t *testing.T) {
		_, err := cipherDomain.New(ChaCha20Poly1305, 16, 16)
		assert.ErrorIs(t, err, cipherDomain.ErrBadParam)

		_, err = cipherDomain.New(ChaCha20Poly1305, 32, 12)
		assert.ErrorIs(t, err, cipherDomain.ErrBadParam)

		c := setupKeyedCipher(t, ChaCha20Poly1305, vector.Key, ChaCha20Poly1305.MaxTagLen)
		assert.ErrorIs(t, c.SetIV(make([]byte, 16), cipherDomain.DirectionEncrypt), cipherDomain.ErrBadParam)
	})
}
