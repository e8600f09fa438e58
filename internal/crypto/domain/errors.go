package domain

import (
	"github.com/allisson/budgets/internal/errors"
)

// Cryptographic operation error definitions.
var (
	// ErrUnsupportedAlgorithm indicates the requested AEAD algorithm is not supported.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates key material is not exactly KeySize bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrKeyCorrupt indicates the persisted key exists but cannot be used.
	//
	// It is fatal at startup. The key file is never regenerated in this case,
	// because a new key would orphan every stored ciphertext.
	ErrKeyCorrupt = errors.Wrap(errors.ErrCorrupted, "key file corrupt")

	// ErrDecryptionFailed indicates a token could not be decoded or authenticated.
	//
	// This covers a wrong key, a tampered or truncated token, and tokens
	// produced by an incompatible scheme. The specific cause is not disclosed.
	ErrDecryptionFailed = errors.Wrap(errors.ErrCorrupted, "decryption failed")
)
