package cryptography

import (
	"encoding/hex"
	"fmt"
	"sort"

	cipherDomain "github.com/transportsec/cipher-suite/internal/domain/cipher"
)

// ErrCipherNotSupported occurs when a cipher name is not registered.
var ErrCipherNotSupported = fmt.Errorf("cipher not supported: %w", cipherDomain.ErrBadParam)

// registry maps descriptor names to the process-wide shared descriptors. It
// is populated once at init and read-only afterwards.
var registry = map[string]*cipherDomain.Type{
	Null.Name:             Null,
	AESCTR128.Name:        AESCTR128,
	AESCTR256.Name:        AESCTR256,
	AESGCM128.Name:        AESGCM128,
	AESGCM256.Name:        AESGCM256,
	ChaCha20Poly1305.Name: ChaCha20Poly1305,
}

// List returns the registered cipher names sorted alphabetically.
func List() []string {
	var l []string
	for k := range registry {
		l = append(l, k)
	}
	sort.Strings(l)
	return l
}

// Lookup returns the descriptor registered under name.
func Lookup(name string) (*cipherDomain.Type, error) {
	t, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrCipherNotSupported)
	}
	return t, nil
}

// mustHex decodes compile-time hex test-vector material.
func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(fmt.Sprintf("bad hex constant %q: %v", s, err))
	}
	return b
}
