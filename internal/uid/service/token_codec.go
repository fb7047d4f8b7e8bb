package service

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	uidDomain "github.com/allisson/uids/internal/uid/domain"
)

// tokenEncoding is standard base64 with '=' stripped and '+' '/' replaced by '-' '_'.
var tokenEncoding = base64.RawURLEncoding.Strict()

// EncodeToken renders ciphertext as a base64url body wrapped in its checksum:
// checksum[0] + body + checksum[1].
func EncodeToken(ciphertext []byte) string {
	body := tokenEncoding.EncodeToString(ciphertext)
	sum := Checksum(body)

	buf := make([]byte, 0, len(body)+uidDomain.ChecksumLength)
	buf = append(buf, sum[0])
	buf = append(buf, body...)
	buf = append(buf, sum[1])

	return string(buf)
}

// DecodeToken validates the token length and checksum and returns the ciphertext.
//
// The checksum only detects accidental corruption; anyone can recompute it.
func DecodeToken(token string) ([]byte, error) {
	n := len(token)
	if n < uidDomain.TokenLength(1) || (n-uidDomain.ChecksumLength)%uidDomain.CharsPerBlock != 0 {
		return nil, fmt.Errorf("%w: invalid length %d", uidDomain.ErrMalformedToken, n)
	}

	body := token[1 : n-1]
	sum := Checksum(body)
	if token[0] != sum[0] || token[n-1] != sum[1] {
		return nil, uidDomain.ErrChecksumMismatch
	}

	ciphertext, err := tokenEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", uidDomain.ErrMalformedToken, err)
	}

	return ciphertext, nil
}

// Checksum returns the first byte of SHA-256(body) as two lowercase hex characters.
func Checksum(body string) string {
	digest := sha256.Sum256([]byte(body))
	return hex.EncodeToString(digest[:1])
}
