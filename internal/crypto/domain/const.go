package domain

import "fmt"

// Algorithm represents the AEAD algorithm used for field encryption.
//
// Both supported algorithms use a 256-bit key, a 12-byte nonce and a 16-byte
// authentication tag, so encoded tokens have the same layout for either one.
type Algorithm string

const (
	// AESGCM represents AES-256 in Galois/Counter Mode. It is the default.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents ChaCha20-Poly1305, for hosts without AES-NI.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

const (
	// KeySize is the length in bytes of the field encryption key.
	KeySize = 32
	// NonceSize is the length in bytes of the per-encryption nonce.
	NonceSize = 12
	// TagSize is the length in bytes of the authentication tag.
	TagSize = 16
	// MinTokenSize is the smallest decoded token: an empty plaintext sealed.
	MinTokenSize = NonceSize + TagSize
)

// ParseAlgorithm converts a configuration string into an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case AESGCM, ChaCha20:
		return Algorithm(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, s)
	}
}
