package service

import (
	"encoding/base64"
	"unicode/utf8"

	cryptoDomain "github.com/allisson/budgets/internal/crypto/domain"
)

// FieldCipherService implements FieldCipher on top of an AEAD cipher.
//
// Token layout, before base64 (standard encoding, padded):
//
//	nonce (12 bytes) | ciphertext (len(plaintext) bytes) | tag (16 bytes)
//
// No associated data is authenticated.
type FieldCipherService struct {
	aead AEAD
}

// NewFieldCipher builds a FieldCipher for key using the given algorithm.
// The key is copied into the underlying cipher and the temporary slice is zeroed.
func NewFieldCipher(aeadManager AEADManager, key cryptoDomain.Key, alg cryptoDomain.Algorithm) (*FieldCipherService, error) {
	raw := key.Bytes()
	defer cryptoDomain.Zero(raw)

	aead, err := aeadManager.CreateCipher(raw, alg)
	if err != nil {
		return nil, err
	}
	return &FieldCipherService{aead: aead}, nil
}

// Encrypt seals plaintext under a fresh nonce and returns the encoded token.
func (f *FieldCipherService) Encrypt(plaintext string) (string, error) {
	ciphertext, nonce, err := f.aead.Encrypt([]byte(plaintext), nil)
	if err != nil {
		return "", err
	}

	blob := make([]byte, 0, len(nonce)+len(ciphertext))
	blob = append(blob, nonce...)
	blob = append(blob, ciphertext...)
	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt decodes and opens a token. Every failure maps to ErrDecryptionFailed.
func (f *FieldCipherService) Decrypt(token string) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}
	if len(blob) < cryptoDomain.MinTokenSize {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	nonce := blob[:cryptoDomain.NonceSize]
	ciphertext := blob[cryptoDomain.NonceSize:]

	plaintext, err := f.aead.Decrypt(ciphertext, nonce, nil)
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}
	if !utf8.Valid(plaintext) {
		return "", cryptoDomain.ErrDecryptionFailed
	}
	return string(plaintext), nil
}
