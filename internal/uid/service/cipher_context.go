package service

import (
	"crypto/cipher"
	"crypto/des"
	"fmt"

	"golang.org/x/crypto/blowfish"

	uidDomain "github.com/allisson/uids/internal/uid/domain"
)

// cbcMode is a CBC block mode whose IV can be reset between operations.
// The modes returned by crypto/cipher implement it.
type cbcMode interface {
	cipher.BlockMode
	SetIV(iv []byte)
}

// CipherContext is one configured CBC cipher with a fixed key and IV.
//
// The encrypter and decrypter carry chaining state, so a context must not be
// used by more than one goroutine at a time. Use ContextPool to share contexts.
type CipherContext struct {
	iv        []byte
	encrypter cbcMode
	decrypter cbcMode
}

// NewCipherContext creates a context from already-derived key material.
func NewCipherContext(km *uidDomain.KeyMaterial, alg uidDomain.Algorithm) (*CipherContext, error) {
	if km == nil {
		return nil, fmt.Errorf("key material is nil")
	}
	if len(km.Key) != alg.KeySize() {
		return nil, fmt.Errorf("%w: got %d bytes for %s", uidDomain.ErrInvalidKeyLength, len(km.Key), alg)
	}
	if len(km.IV) != uidDomain.BlockSize {
		return nil, fmt.Errorf("%w: iv must be %d bytes", uidDomain.ErrInvalidKeyLength, uidDomain.BlockSize)
	}

	block, err := newBlock(km.Key, alg)
	if err != nil {
		return nil, err
	}

	encrypter, ok := cipher.NewCBCEncrypter(block, km.IV).(cbcMode)
	if !ok {
		return nil, fmt.Errorf("%w: cbc encrypter does not support iv reset", uidDomain.ErrUnsupportedAlgorithm)
	}
	decrypter, ok := cipher.NewCBCDecrypter(block, km.IV).(cbcMode)
	if !ok {
		return nil, fmt.Errorf("%w: cbc decrypter does not support iv reset", uidDomain.ErrUnsupportedAlgorithm)
	}

	iv := make([]byte, len(km.IV))
	copy(iv, km.IV)

	return &CipherContext{
		iv:        iv,
		encrypter: encrypter,
		decrypter: decrypter,
	}, nil
}

// newBlock creates the raw block cipher for alg.
func newBlock(key []byte, alg uidDomain.Algorithm) (cipher.Block, error) {
	switch alg {
	case uidDomain.TripleDESCBC:
		block, err := des.NewTripleDESCipher(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create 3DES cipher: %w", err)
		}
		return block, nil
	case uidDomain.BlowfishCBC:
		block, err := blowfish.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create Blowfish cipher: %w", err)
		}
		return block, nil
	default:
		return nil, fmt.Errorf("%w: %s", uidDomain.ErrUnsupportedAlgorithm, alg)
	}
}

// Encrypt encrypts plaintext, whose length must be a positive multiple of the block size.
func (c *CipherContext) Encrypt(plaintext []byte) ([]byte, error) {
	if err := checkBlockLength(plaintext); err != nil {
		return nil, err
	}

	c.encrypter.SetIV(c.iv)
	ciphertext := make([]byte, len(plaintext))
	c.encrypter.CryptBlocks(ciphertext, plaintext)

	return ciphertext, nil
}

// Decrypt decrypts ciphertext, whose length must be a positive multiple of the block size.
func (c *CipherContext) Decrypt(ciphertext []byte) ([]byte, error) {
	if err := checkBlockLength(ciphertext); err != nil {
		return nil, err
	}

	c.decrypter.SetIV(c.iv)
	plaintext := make([]byte, len(ciphertext))
	c.decrypter.CryptBlocks(plaintext, ciphertext)

	return plaintext, nil
}

func checkBlockLength(b []byte) error {
	if len(b) == 0 || len(b)%uidDomain.BlockSize != 0 {
		return fmt.Errorf("%w: %d bytes is not a multiple of %d", uidDomain.ErrMalformedToken, len(b), uidDomain.BlockSize)
	}
	return nil
}
