package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	uidDomain "github.com/allisson/uids/internal/uid/domain"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KMSService opens keepers for KMS key URIs.
type KMSService interface {
	// OpenKeeper opens a secrets.Keeper for the configured KMS provider.
	// Returns an error if the KMS provider URI is invalid or connection fails.
	OpenKeeper(ctx context.Context, keyURI string) (uidDomain.KMSKeeper, error)
}

// kmsService implements KMSService using gocloud.dev/secrets.
type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens a secrets.Keeper for the configured KMS provider using the keyURI.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (uidDomain.KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

// SecretSource describes where the shared secret comes from. Exactly one of
// Raw or Ciphertext is expected; Ciphertext needs KMSKeyURI.
type SecretSource struct {
	// Raw is the secret itself.
	Raw string
	// Ciphertext is the base64-encoded, KMS-wrapped secret.
	Ciphertext string
	// KMSKeyURI is the keeper URI used to unwrap Ciphertext.
	KMSKeyURI string
}

// LoadSecret resolves the shared secret. A KMS-wrapped secret wins over a raw one.
func LoadSecret(ctx context.Context, kms KMSService, src SecretSource) ([]byte, error) {
	if src.Ciphertext == "" {
		if src.Raw == "" {
			return nil, uidDomain.ErrSecretNotSet
		}
		return []byte(src.Raw), nil
	}

	if src.KMSKeyURI == "" {
		return nil, fmt.Errorf("KMS key URI is required to unwrap the secret")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(src.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 secret ciphertext: %w", err)
	}

	keeper, err := kms.OpenKeeper(ctx, src.KMSKeyURI)
	if err != nil {
		return nil, err
	}
	defer func() { _ = keeper.Close() }()

	secret, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt secret with KMS: %w", err)
	}
	if len(secret) == 0 {
		return nil, uidDomain.ErrSecretNotSet
	}

	return secret, nil
}
