package cipher

// Algorithm identifies one cipher algorithm family. Instances copy the
// identifier from their descriptor so callers can branch without chasing the
// descriptor pointer.
type Algorithm int

// Supported algorithm identifiers.
const (
	// AlgorithmGeneric marks engines with no special handling, such as the
	// null cipher used to exercise the non-AEAD harness paths.
	AlgorithmGeneric Algorithm = iota
	AlgorithmAESCTR128
	AlgorithmAESCTR256
	AlgorithmAESGCM128
	AlgorithmAESGCM256
	AlgorithmChaCha20Poly1305
)

// AEAD reports whether the algorithm family produces and verifies an
// authentication tag and binds additional authenticated data.
func (a Algorithm) AEAD() bool {
	switch a {
	case AlgorithmAESGCM128, AlgorithmAESGCM256, AlgorithmChaCha20Poly1305:
		return true
	default:
		return false
	}
}

// String returns the canonical human-readable name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmGeneric:
		return "generic"
	case AlgorithmAESCTR128:
		return "AES-CTR-128"
	case AlgorithmAESCTR256:
		return "AES-CTR-256"
	case AlgorithmAESGCM128:
		return "AES-GCM-128"
	case AlgorithmAESGCM256:
		return "AES-GCM-256"
	case AlgorithmChaCha20Poly1305:
		return "ChaCha20-Poly1305"
	default:
		return "unknown"
	}
}

// Direction selects which half of a duplex stream an IV is being set for.
// Some engines derive the effective nonce differently per direction.
type Direction int

// Cipher directions.
const (
	DirectionEncrypt Direction = iota
	DirectionDecrypt
)

// AES key sizes in bytes.
const (
	AESKeySize128 = 16
	AESKeySize192 = 24
	AESKeySize256 = 32
)

// ChaCha20Poly1305KeySize is the only key size RFC 8439 defines, in bytes.
const ChaCha20Poly1305KeySize = 32
