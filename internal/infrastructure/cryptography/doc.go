// Package cryptography provides the concrete cipher engines behind the
// domain cipher contracts: AES-GCM (128/256), AES-CTR (128/256),
// ChaCha20-Poly1305 and the null cipher, each published through an immutable
// descriptor carrying its built-in known-answer test vectors, plus the
// name-based descriptor registry.
package cryptography
