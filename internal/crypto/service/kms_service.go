package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/allisson/budgets/internal/crypto/domain"

	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KMSService opens the keeper that wraps the field key file when KMS_KEY_URI is set.
type KMSService interface {
	// OpenKeeper opens a keeper for keyURI (gcpkms://, awskms://,
	// azurekeyvault://, hashivault:// or base64key://).
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}

type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens a *secrets.Keeper for keyURI.
//
// A base64key:// URI carries the wrapping key itself, so the URI is replaced
// by its scheme in any returned error.
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", redactKeyURI(err, keyURI))
	}
	return keeper, nil
}

func redactKeyURI(err error, keyURI string) error {
	if keyURI == "" || !strings.Contains(err.Error(), keyURI) {
		return err
	}
	scheme, _, _ := strings.Cut(keyURI, "://")
	return errors.New(strings.ReplaceAll(err.Error(), keyURI, scheme+"://REDACTED"))
}
