package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	uidService "github.com/allisson/uids/internal/uid/service"
)

const secretSize = 32

type createSecretOutput struct {
	UIDSecret           string `json:"uid_secret,omitempty"`
	UIDSecretCiphertext string `json:"uid_secret_ciphertext,omitempty"`
	KMSKeyURI           string `json:"kms_key_uri,omitempty"`
}

// RunCreateSecret generates a random shared secret. With kmsKeyURI set the
// secret is wrapped by the keeper and only the ciphertext is printed.
//
// For local development use kmsKeyURI="base64key://<32-byte-base64-key>".
// Changing the secret invalidates every token issued with the previous one.
func RunCreateSecret(
	ctx context.Context,
	kms uidService.KMSService,
	io IOTuple,
	kmsKeyURI string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	raw := make([]byte, secretSize)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate secret: %w", err)
	}
	secret := []byte(base64.RawURLEncoding.EncodeToString(raw))
	defer clear(raw)
	defer clear(secret)

	var output createSecretOutput
	if kmsKeyURI == "" {
		output.UIDSecret = string(secret)
	} else {
		keeper, err := kms.OpenKeeper(ctx, kmsKeyURI)
		if err != nil {
			return err
		}
		defer func() { _ = keeper.Close() }()

		ciphertext, err := keeper.Encrypt(ctx, secret)
		if err != nil {
			return fmt.Errorf("failed to encrypt secret with KMS: %w", err)
		}
		output.UIDSecretCiphertext = base64.StdEncoding.EncodeToString(ciphertext)
		output.KMSKeyURI = kmsKeyURI
	}

	if format == "json" {
		return writeJSON(io.Writer, output)
	}

	if output.UIDSecret != "" {
		_, _ = fmt.Fprintf(io.Writer, "UID_SECRET=%q\n", output.UIDSecret)
		return nil
	}
	_, _ = fmt.Fprintf(io.Writer, "UID_SECRET_CIPHERTEXT=%q\n", output.UIDSecretCiphertext)
	_, _ = fmt.Fprintf(io.Writer, "KMS_KEY_URI=%q\n", output.KMSKeyURI)
	return nil
}
