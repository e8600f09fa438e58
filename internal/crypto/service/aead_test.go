package service

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/budgets/internal/crypto/domain"
)

func newTestKeyBytes(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestAEADCiphers(t *testing.T) {
	constructors := map[string]func([]byte) (AEAD, error){
		"aes-gcm": func(k []byte) (AEAD, error) { return NewAESGCM(k) },
		"chacha20-poly1305": func(k []byte) (AEAD, error) {
			return NewChaCha20Poly1305(k)
		},
	}

	for name, newCipher := range constructors {
		t.Run(name, func(t *testing.T) {
			t.Run("rejects wrong key sizes", func(t *testing.T) {
				for _, size := range []int{0, 16, 24, 64} {
					c, err := newCipher(make([]byte, size))
					assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
					assert.Nil(t, c)
				}
			})

			c, err := newCipher(newTestKeyBytes(t))
			require.NoError(t, err)

			t.Run("round trip", func(t *testing.T) {
				for _, plaintext := range [][]byte{
					[]byte(""),
					[]byte("Milk"),
					[]byte("Hello 世界! 🔐"),
					bytes.Repeat([]byte("a"), 10000),
				} {
					ciphertext, nonce, err := c.Encrypt(plaintext, nil)
					require.NoError(t, err)
					assert.Len(t, nonce, cryptoDomain.NonceSize)
					assert.Len(t, ciphertext, len(plaintext)+cryptoDomain.TagSize)

					decrypted, err := c.Decrypt(ciphertext, nonce, nil)
					require.NoError(t, err)
					assert.True(t, bytes.Equal(plaintext, decrypted))
				}
			})

			t.Run("nonce is unique for each encryption", func(t *testing.T) {
				_, nonce1, err := c.Encrypt([]byte("test"), nil)
				require.NoError(t, err)
				_, nonce2, err := c.Encrypt([]byte("test"), nil)
				require.NoError(t, err)
				assert.NotEqual(t, nonce1, nonce2)
			})

			t.Run("tampered ciphertext fails", func(t *testing.T) {
				ciphertext, nonce, err := c.Encrypt([]byte("Hello"), nil)
				require.NoError(t, err)
				ciphertext[0] ^= 1

				decrypted, err := c.Decrypt(ciphertext, nonce, nil)
				assert.Error(t, err)
				assert.Nil(t, decrypted)
			})

			t.Run("wrong aad fails", func(t *testing.T) {
				ciphertext, nonce, err := c.Encrypt([]byte("Hello"), []byte("a"))
				require.NoError(t, err)

				decrypted, err := c.Decrypt(ciphertext, nonce, []byte("b"))
				assert.Error(t, err)
				assert.Nil(t, decrypted)
			})

			t.Run("short nonce fails without panicking", func(t *testing.T) {
				ciphertext, _, err := c.Encrypt([]byte("Hello"), nil)
				require.NoError(t, err)

				decrypted, err := c.Decrypt(ciphertext, []byte{1, 2, 3}, nil)
				assert.Error(t, err)
				assert.Nil(t, decrypted)
			})
		})
	}
}
