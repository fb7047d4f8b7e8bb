// Package service implements the token pipeline: key derivation, pooled CBC
// cipher contexts, tag packing, base64url token encoding with checksum, and
// the variant registry.
package service

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	uidDomain "github.com/allisson/uids/internal/uid/domain"
)

// DeriveKey returns the first n bytes of SHA-256(BE64(salt) || secret).
//
// The result is deterministic for a given secret and salt.
func DeriveKey(secret []byte, salt uint64, n int) ([]byte, error) {
	if n <= 0 || n > sha256.Size {
		return nil, fmt.Errorf("%w: %d", uidDomain.ErrInvalidKeyLength, n)
	}

	var saltBytes [8]byte
	binary.BigEndian.PutUint64(saltBytes[:], salt)

	h := sha256.New()
	h.Write(saltBytes[:])
	h.Write(secret)
	digest := h.Sum(nil)

	out := make([]byte, n)
	copy(out, digest[:n])
	uidDomain.Zero(digest)

	return out, nil
}

// DeriveKeyMaterial derives the cipher key and IV for alg from the shared secret.
func DeriveKeyMaterial(secret []byte, alg uidDomain.Algorithm) (*uidDomain.KeyMaterial, error) {
	keySize := alg.KeySize()
	if keySize == 0 {
		return nil, fmt.Errorf("%w: %s", uidDomain.ErrUnsupportedAlgorithm, alg)
	}

	key, err := DeriveKey(secret, uidDomain.KeySalt, keySize)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	iv, err := DeriveKey(secret, uidDomain.IVSalt, uidDomain.BlockSize)
	if err != nil {
		uidDomain.Zero(key)
		return nil, fmt.Errorf("failed to derive iv: %w", err)
	}

	return &uidDomain.KeyMaterial{Key: key, IV: iv}, nil
}
