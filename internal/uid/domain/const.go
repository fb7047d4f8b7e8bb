// Package domain defines the core models of the opaque identifier codec: variants,
// identifier types, key material, the provider contract and codec errors.
package domain

import "time"

// Algorithm identifies the 8-byte block cipher used to encrypt packed identifiers.
//
// Both algorithms run in CBC mode without padding. Tokens produced with one
// algorithm cannot be decoded with the other.
type Algorithm string

const (
	// TripleDESCBC is DES-EDE3 in CBC mode. This is the default and the format
	// every existing token was produced with.
	TripleDESCBC Algorithm = "3des-cbc"

	// BlowfishCBC is Blowfish in CBC mode with a 24-byte key.
	BlowfishCBC Algorithm = "blowfish-cbc"
)

// String returns the string representation of the algorithm.
func (a Algorithm) String() string {
	return string(a)
}

// KeySize returns the key length in bytes for the algorithm, or 0 if unsupported.
func (a Algorithm) KeySize() int {
	switch a {
	case TripleDESCBC, BlowfishCBC:
		return 24
	default:
		return 0
	}
}

// Packing and token layout constants.
const (
	// BlockSize is the cipher block size in bytes and the size of one packed word.
	BlockSize = 8

	// TagShift is the bit offset of the variant tag inside the first word.
	TagShift = 60

	// MaxTag is the largest tag that fits in the 4-bit tag field.
	MaxTag = 0xf

	// MaxBlocks is the largest block count whose unpadded base64url body is
	// exactly CharsPerBlock characters per block.
	MaxBlocks = 2

	// PayloadMask keeps the low 60 payload bits of the first word.
	PayloadMask uint64 = 0x0fffffffffffffff

	// CharsPerBlock is the number of unpadded base64url characters one
	// encrypted 8-byte block produces.
	CharsPerBlock = 11

	// ChecksumLength is the number of checksum characters wrapped around the body.
	ChecksumLength = 2
)

// Key derivation salts. Changing either value invalidates every issued token.
const (
	KeySalt uint64 = 1562556012354
	IVSalt  uint64 = 2559135151345
)

// Pool defaults.
const (
	// DefaultConcurrency is the number of cipher contexts kept in the pool.
	DefaultConcurrency = 4

	// DefaultAcquireTimeout bounds how long a caller waits for a free context.
	DefaultAcquireTimeout = 24 * time.Hour
)

// TokenLength returns the full token length for a variant with the given block count.
func TokenLength(blocks int) int {
	return blocks*CharsPerBlock + ChecksumLength
}
