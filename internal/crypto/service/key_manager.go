package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	cryptoDomain "github.com/allisson/budgets/internal/crypto/domain"
)

// FileKeyManager implements KeyManager with a single key file.
//
// The first call to GetKey either reads the file or, when it does not exist,
// generates a random key and writes it exactly once. The result (key or
// error) is cached for the lifetime of the manager.
//
// When a keeper is configured, the file holds the key wrapped by that keeper
// instead of the raw 32 bytes.
type FileKeyManager struct {
	path   string
	keeper cryptoDomain.KMSKeeper
	logger *slog.Logger

	once      sync.Once
	key       cryptoDomain.Key
	err       error
	generated bool
}

var _ KeyManager = (*FileKeyManager)(nil)

// NewFileKeyManager creates a key manager for the key file at path.
// keeper may be nil, in which case the key is stored unwrapped.
func NewFileKeyManager(path string, keeper cryptoDomain.KMSKeeper, logger *slog.Logger) *FileKeyManager {
	return &FileKeyManager{
		path:   path,
		keeper: keeper,
		logger: logger,
	}
}

// GetKey returns the field encryption key, creating the key file on first use.
// A key file that exists but does not hold a usable key yields ErrKeyCorrupt.
func (m *FileKeyManager) GetKey(ctx context.Context) (cryptoDomain.Key, error) {
	m.once.Do(func() {
		m.key, m.err = m.loadOrGenerate(ctx)
	})
	return m.key, m.err
}

// Generated reports whether the key was created by this manager rather than loaded.
func (m *FileKeyManager) Generated() bool {
	return m.generated
}

func (m *FileKeyManager) loadOrGenerate(ctx context.Context) (cryptoDomain.Key, error) {
	data, err := os.ReadFile(m.path)
	if err == nil {
		return m.decode(ctx, data)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return cryptoDomain.Key{}, fmt.Errorf("failed to read key file: %w", err)
	}
	return m.generate(ctx)
}

func (m *FileKeyManager) decode(ctx context.Context, data []byte) (cryptoDomain.Key, error) {
	raw := data
	if m.keeper != nil {
		unwrapped, err := m.keeper.Decrypt(ctx, data)
		if err != nil {
			return cryptoDomain.Key{}, fmt.Errorf("%w: unable to unwrap key with KMS", cryptoDomain.ErrKeyCorrupt)
		}
		raw = unwrapped
	}
	defer cryptoDomain.Zero(raw)

	if len(raw) != cryptoDomain.KeySize {
		return cryptoDomain.Key{}, fmt.Errorf(
			"%w: expected %d bytes, got %d",
			cryptoDomain.ErrKeyCorrupt,
			cryptoDomain.KeySize,
			len(raw),
		)
	}

	key, err := cryptoDomain.NewKey(raw)
	if err != nil {
		return cryptoDomain.Key{}, fmt.Errorf("%w: %v", cryptoDomain.ErrKeyCorrupt, err)
	}

	m.logger.Debug("loaded encryption key", slog.String("path", m.path))
	return key, nil
}

func (m *FileKeyManager) generate(ctx context.Context) (cryptoDomain.Key, error) {
	raw := make([]byte, cryptoDomain.KeySize)
	defer cryptoDomain.Zero(raw)
	if _, err := rand.Read(raw); err != nil {
		return cryptoDomain.Key{}, fmt.Errorf("failed to generate key: %w", err)
	}

	content := raw
	if m.keeper != nil {
		wrapped, err := m.keeper.Encrypt(ctx, raw)
		if err != nil {
			return cryptoDomain.Key{}, fmt.Errorf("failed to wrap key with KMS: %w", err)
		}
		content = wrapped
	}

	if err := writeKeyFile(m.path, content); err != nil {
		return cryptoDomain.Key{}, err
	}

	key, err := cryptoDomain.NewKey(raw)
	if err != nil {
		return cryptoDomain.Key{}, err
	}

	m.generated = true
	m.logger.Info(
		"generated new encryption key",
		slog.String("path", m.path),
		slog.Bool("kms_wrapped", m.keeper != nil),
	)
	return key, nil
}

// writeKeyFile creates path exclusively with owner-only permissions.
// A partially written file is removed so the next start does not see a corrupt key.
func writeKeyFile(path string, content []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create key directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create key file: %w", err)
	}

	_, writeErr := f.Write(content)
	if writeErr == nil {
		writeErr = f.Sync()
	}
	closeErr := f.Close()

	if writeErr != nil || closeErr != nil {
		_ = os.Remove(path)
		return fmt.Errorf("failed to write key file: %w", errors.Join(writeErr, closeErr))
	}
	return nil
}
