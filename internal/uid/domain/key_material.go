package domain

import "context"

// KeyMaterial is the cipher key and IV derived from the shared secret.
//
// It is derived once per codec and shared read-only by every cipher context.
type KeyMaterial struct {
	Key []byte
	IV  []byte
}

// Zero clears the key and IV.
func (k *KeyMaterial) Zero() {
	if k == nil {
		return
	}
	Zero(k.Key)
	Zero(k.IV)
}

// Zero securely overwrites a byte slice with zeros to clear sensitive data from memory.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// KMSKeeper is the subset of *secrets.Keeper used to unwrap the shared secret.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// EncodeResult is the per-item outcome of a batch encode.
type EncodeResult struct {
	Token string
	Err   error
}

// DecodeResult is the per-item outcome of a batch decode.
type DecodeResult struct {
	Uid Uid
	Err error
}
