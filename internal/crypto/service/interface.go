// Package service provides the cryptographic services behind the record store:
// AEAD ciphers, the key file manager, KMS key wrapping and the field cipher
// that turns single string values into printable tokens.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/budgets/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext (tag appended) and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KeyManager owns the lifecycle of the single field encryption key.
type KeyManager interface {
	// GetKey loads the persisted key, generating and persisting it on first use.
	// Repeated calls return the same key without touching the filesystem again.
	GetKey(ctx context.Context) (cryptoDomain.Key, error)
}

// FieldCipher encrypts and decrypts individual field values.
type FieldCipher interface {
	// Encrypt seals plaintext under a fresh nonce and returns a printable token.
	Encrypt(plaintext string) (string, error)

	// Decrypt opens a token produced by Encrypt. Any decoding or authentication
	// failure is reported as cryptoDomain.ErrDecryptionFailed.
	Decrypt(token string) (string, error)
}
