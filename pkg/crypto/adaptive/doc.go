// Package adaptive provides authenticated encryption with automatic
// algorithm selection.
//
// Supported algorithms:
//
//   - AES-256-GCM: preferred where the CPU has AES instructions
//   - ChaCha20-Poly1305: fallback for other architectures
//
// Keys are derived from an operator-supplied secret with HKDF-SHA256, so
// the same secret always yields the same key and sealed values stay
// readable across runs.
//
// Usage:
//
//	c, err := adaptive.FromSecret(secret, "", "snapkeep payload")
//	sealed, err := c.Encrypt(plaintext, aad)
//	plaintext, err := c.Decrypt(sealed, aad)
package adaptive
