package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	cryptoDomain "github.com/allisson/budgets/internal/crypto/domain"
	cryptoService "github.com/allisson/budgets/internal/crypto/service"
)

// cryptoComponents groups the lazily built cryptographic services.
type cryptoComponents struct {
	kmsService  cryptoService.KMSService
	kmsKeeper   cryptoDomain.KMSKeeper
	keyManager  *cryptoService.FileKeyManager
	aeadManager cryptoService.AEADManager
	fieldCipher cryptoService.FieldCipher

	kmsServiceInit  sync.Once
	keyManagerInit  sync.Once
	aeadManagerInit sync.Once
	fieldCipherInit sync.Once
}

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.crypto.kmsServiceInit.Do(func() {
		c.crypto.kmsService = cryptoService.NewKMSService()
	})
	return c.crypto.kmsService
}

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.crypto.aeadManagerInit.Do(func() {
		c.crypto.aeadManager = cryptoService.NewAEADManager()
	})
	return c.crypto.aeadManager
}

// KeyManager returns the key file manager. When KMS_KEY_URI is set the key
// file is wrapped with the configured KMS key.
func (c *Container) KeyManager(ctx context.Context) (*cryptoService.FileKeyManager, error) {
	var err error
	c.crypto.keyManagerInit.Do(func() {
		c.crypto.keyManager, err = c.initKeyManager(ctx)
		if err != nil {
			c.initErrors["keyManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyManager"]; exists {
		return nil, storedErr
	}
	return c.crypto.keyManager, nil
}

// Key loads or generates the field encryption key.
func (c *Container) Key(ctx context.Context) (cryptoDomain.Key, error) {
	keyManager, err := c.KeyManager(ctx)
	if err != nil {
		return cryptoDomain.Key{}, err
	}
	return keyManager.GetKey(ctx)
}

// FieldCipher returns the field cipher bound to the loaded key.
func (c *Container) FieldCipher(ctx context.Context) (cryptoService.FieldCipher, error) {
	var err error
	c.crypto.fieldCipherInit.Do(func() {
		c.crypto.fieldCipher, err = c.initFieldCipher(ctx)
		if err != nil {
			c.initErrors["fieldCipher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fieldCipher"]; exists {
		return nil, storedErr
	}
	return c.crypto.fieldCipher, nil
}

// initKeyManager opens the optional KMS keeper and creates the key file manager.
func (c *Container) initKeyManager(ctx context.Context) (*cryptoService.FileKeyManager, error) {
	logger := c.Logger()

	var keeper cryptoDomain.KMSKeeper
	if c.config.KMSKeyURI != "" {
		var err error
		keeper, err = c.KMSService().OpenKeeper(ctx, c.config.KMSKeyURI)
		if err != nil {
			return nil, fmt.Errorf("failed to open kms keeper for key manager: %w", err)
		}
		c.crypto.kmsKeeper = keeper
		logger.Debug("key file wrapped with kms")
	}

	return cryptoService.NewFileKeyManager(c.config.KeyFile, keeper, logger), nil
}

// initFieldCipher loads the key and builds the cipher for the configured algorithm.
func (c *Container) initFieldCipher(ctx context.Context) (cryptoService.FieldCipher, error) {
	alg, err := cryptoDomain.ParseAlgorithm(c.config.CipherAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cipher algorithm: %w", err)
	}

	key, err := c.Key(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load encryption key: %w", err)
	}

	fieldCipher, err := cryptoService.NewFieldCipher(c.AEADManager(), key, alg)
	if err != nil {
		return nil, fmt.Errorf("failed to create field cipher: %w", err)
	}

	c.Logger().Debug("field cipher ready", slog.String("algorithm", string(alg)))
	return fieldCipher, nil
}
