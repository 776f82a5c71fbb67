//go:build unit
// +build unit

package cryptography

import (
	"bytes"
	"testing"

	cipherDomain "github.com/transportsec/cipher-suite/internal/domain/cipher"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupKeyedCipher constructs and keys an instance of typ through the
// dispatch layer, registering cleanup.
func setupKeyedCipher(t *testing.T, typ *cipherDomain.Type, key []byte, tagLen int) *cipherDomain.Cipher {
	t.Helper()
	c, err := cipherDomain.New(typ, len(key), tagLen)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, c.Close()) })
	require.NoError(t, c.Init(key))
	return c
}

// sealAEAD encrypts plaintext under the given key, IV and AAD and returns
// ciphertext with the tag appended, the way it travels on the wire.
func sealAEAD(t *testing.T, typ *cipherDomain.Type, key, iv, aad, plaintext []byte) []byte {
	t.Helper()
	c := setupKeyedCipher(t, typ, key, typ.MaxTagLen)

	require.NoError(t, c.SetIV(iv, cipherDomain.DirectionEncrypt))
	require.NoError(t, c.SetAAD(aad))

	buf := make([]byte, len(plaintext)+typ.MaxTagLen)
	n, err := c.Encrypt(buf, plaintext)
	require.NoError(t, err)
	require.Equal(t, len(plaintext), n)

	tagLen, err := c.Tag(buf[n:])
	require.NoError(t, err)
	return buf[:n+tagLen]
}

// openAEAD decrypts a ciphertext-plus-tag blob under the given key, IV and
// AAD.
func openAEAD(t *testing.T, typ *cipherDomain.Type, key, iv, aad, sealed []byte) ([]byte, error) {
	t.Helper()
	c := setupKeyedCipher(t, typ, key, typ.MaxTagLen)

	require.NoError(t, c.SetIV(iv, cipherDomain.DirectionDecrypt))
	require.NoError(t, c.SetAAD(aad))

	buf := make([]byte, len(sealed))
	n, err := c.Decrypt(buf, sealed)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

func flipBit(b []byte, i int) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	out[i] ^= 0x01
	return out
}

func TestAESGCM(t *testing.T) {
	t.Run("KnownAnswer", func(t *testing.T) {
		for _, typ := range []*cipherDomain.Type{AESGCM128, AESGCM256} {
			for _, tc := range typ.TestCases {
				sealed := sealAEAD(t, typ, tc.Key, tc.IV, tc.AAD, tc.Plaintext)
				assert.Equal(t, tc.Ciphertext, sealed)

				plaintext, err := openAEAD(t, typ, tc.Key, tc.IV, tc.AAD, tc.Ciphertext)
				require.NoError(t, err)
				// bytes.Equal: the zero-plaintext vectors carry nil while the
				// engine hands back an empty slice.
				assert.True(t, bytes.Equal(tc.Plaintext, plaintext),
					"recovered plaintext %x, want %x", plaintext, tc.Plaintext)
			}
		}
	})

	key := mustHex("000102030405060708090a0b0c0d0e0f")
	iv := mustHex("0f0e0d0c0b0a090807060504")
	aad := []byte{0, 0, 0, 0}
	plaintext := []byte("test")

	t.Run("AuthenticatedRoundTrip", func(t *testing.T) {
		sealed := sealAEAD(t, AESGCM128, key, iv, aad, plaintext)
		require.Len(t, sealed, len(plaintext)+gcmTagLen)

		recovered, err := openAEAD(t, AESGCM128, key, iv, aad, sealed)
		require.NoError(t, err)
		assert.Equal(t, plaintext, recovered)
	})

	// Any single-bit change to key, IV, AAD or the sealed blob must make
	// decryption fail closed with an algorithm failure, never return
	// unauthenticated plaintext.
	t.Run("TamperFailsClosed", func(t *testing.T) {
		sealed := sealAEAD(t, AESGCM128, key, iv, aad, plaintext)

		tampered := map[string]func() ([]byte, error){
			"Key": func() ([]byte, error) {
				return openAEAD(t, AESGCM128, flipBit(key, 0), iv, aad, sealed)
			},
			"IV": func() ([]byte, error) {
				return openAEAD(t, AESGCM128, key, flipBit(iv, 0), aad, sealed)
			},
			"AAD": func() ([]byte, error) {
				return openAEAD(t, AESGCM128, key, iv, flipBit(aad, 0), sealed)
			},
			"Ciphertext": func() ([]byte, error) {
				return openAEAD(t, AESGCM128, key, iv, aad, flipBit(sealed, 0))
			},
			"Tag": func() ([]byte, error) {
				return openAEAD(t, AESGCM128, key, iv, aad, flipBit(sealed, len(sealed)-1))
			},
		}

		for name, open := range tampered {
			t.Run(name, func(t *testing.T) {
				recovered, err := open()
				assert.ErrorIs(t, err, cipherDomain.ErrAlgoFail)
				assert.Nil(t, recovered)
			})
		}
	})

	t.Run("NoStaleTagAfterDecrypt", func(t *testing.T) {
		c := setupKeyedCipher(t, AESGCM128, key, gcmTagLen)

		require.NoError(t, c.SetIV(iv, cipherDomain.DirectionEncrypt))
		require.NoError(t, c.SetAAD(aad))

		sealed := make([]byte, len(plaintext)+gcmTagLen)
		n, err := c.Encrypt(sealed, plaintext)
		require.NoError(t, err)
		tagLen, err := c.Tag(sealed[n:])
		require.NoError(t, err)
		sealed = sealed[:n+tagLen]

		// Decrypt on the same instance invalidates the pending encrypt tag.
		require.NoError(t, c.SetIV(iv, cipherDomain.DirectionDecrypt))
		require.NoError(t, c.SetAAD(aad))
		buf := make([]byte, len(sealed))
		_, err = c.Decrypt(buf, sealed)
		require.NoError(t, err)

		_, err = c.Tag(make([]byte, gcmTagLen))
		assert.ErrorIs(t, err, cipherDomain.ErrBadParam)
	})

	t.Run("SupportsAEAD", func(t *testing.T) {
		c := setupKeyedCipher(t, AESGCM128, key, gcmTagLen)
		assert.True(t, c.SupportsAEAD())
	})

	t.Run("RejectsBadGeometry", func(t *testing.T) {
		_, err := cipherDomain.New(AESGCM128, 24, gcmTagLen)
		assert.ErrorIs(t, err, cipherDomain.ErrBadParam)

		_, err = cipherDomain.New(AESGCM128, 16, 8)
		assert.ErrorIs(t, err, cipherDomain.ErrBadParam)

		// Tag length zero selects the full 16-byte default.
		c, err := cipherDomain.New(AESGCM128, 16, 0)
		require.NoError(t, err)
		require.NoError(t, c.Close())
	})

	t.Run("RejectsBadIVLength", func(t *testing.T) {
		c := setupKeyedCipher(t, AESGCM128, key, gcmTagLen)
		assert.ErrorIs(t, c.SetIV(make([]byte, 8), cipherDomain.DirectionEncrypt), cipherDomain.ErrBadParam)
	})

	t.Run("OrderingPreconditions", func(t *testing.T) {
		c, err := cipherDomain.New(AESGCM128, 16, gcmTagLen)
		require.NoError(t, err)
		t.Cleanup(func() { require.NoError(t, c.Close()) })

		// SetIV and Encrypt before Init must be rejected.
		assert.ErrorIs(t, c.SetIV(iv, cipherDomain.DirectionEncrypt), cipherDomain.ErrBadParam)

		_, err = c.Encrypt(make([]byte, 16), plaintext)
		assert.ErrorIs(t, err, cipherDomain.ErrBadParam)

		// Tag without a preceding Encrypt has nothing to report.
		require.NoError(t, c.Init(key))
		_, err = c.Tag(make([]byte, gcmTagLen))
		assert.ErrorIs(t, err, cipherDomain.ErrBadParam)
	})
}
