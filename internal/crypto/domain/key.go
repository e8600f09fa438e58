package domain

import (
	"context"
	"fmt"
)

// Key is the 256-bit field encryption key.
//
// It is a value type: copies handed to a cipher cannot be mutated by the
// holder of the original. The String and GoString methods redact the
// material so a key never ends up in logs by accident.
type Key [KeySize]byte

// NewKey copies b into a Key. b must be exactly KeySize bytes.
func NewKey(b []byte) (Key, error) {
	var k Key
	if len(b) != KeySize {
		return k, fmt.Errorf("%w: got %d bytes", ErrInvalidKeySize, len(b))
	}
	copy(k[:], b)
	return k, nil
}

// Bytes returns a fresh copy of the key material. Callers should Zero it after use.
func (k Key) Bytes() []byte {
	b := make([]byte, KeySize)
	copy(b, k[:])
	return b
}

// String implements fmt.Stringer without revealing the key.
func (k Key) String() string { return "Key(REDACTED)" }

// GoString implements fmt.GoStringer without revealing the key.
func (k Key) GoString() string { return k.String() }

// KMSKeeper is the subset of *secrets.Keeper used to wrap the key file.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}
