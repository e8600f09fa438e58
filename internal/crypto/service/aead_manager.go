package service

import (
	"fmt"

	cryptoDomain "github.com/allisson/budgets/internal/crypto/domain"
)

// AEADManagerService picks the field cipher implementation named by
// CIPHER_ALGORITHM. Both algorithms produce tokens with the same layout, but a
// token sealed by one cannot be opened by the other.
type AEADManagerService struct{}

// NewAEADManager creates a new AEADManagerService.
func NewAEADManager() *AEADManagerService {
	return &AEADManagerService{}
}

// CreateCipher builds the AEAD for alg over the 32-byte field key.
// The key slice is not retained; callers may zero it once this returns.
func (am *AEADManagerService) CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, fmt.Errorf("%w: field key must be %d bytes, got %d",
			cryptoDomain.ErrInvalidKeySize, cryptoDomain.KeySize, len(key))
	}

	switch alg {
	case cryptoDomain.AESGCM:
		return NewAESGCM(key)
	case cryptoDomain.ChaCha20:
		return NewChaCha20Poly1305(key)
	default:
		return nil, fmt.Errorf("%w: %q", cryptoDomain.ErrUnsupportedAlgorithm, alg)
	}
}
