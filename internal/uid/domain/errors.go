package domain

import (
	"github.com/allisson/uids/internal/errors"
)

// Token errors. These are expected on untrusted input and are reported as
// ordinary values; they never indicate a broken codec.
var (
	// ErrMalformedToken indicates the token has the wrong length, contains
	// characters outside the base64url alphabet, or decrypts to a payload no
	// provider accepts.
	ErrMalformedToken = errors.Wrap(errors.ErrInvalidInput, "malformed token")

	// ErrChecksumMismatch indicates the two checksum characters do not match the body.
	ErrChecksumMismatch = errors.Wrap(ErrMalformedToken, "checksum mismatch")

	// ErrUnknownVariant indicates no provider is registered for the variant or tag.
	ErrUnknownVariant = errors.Wrap(errors.ErrInvalidInput, "unknown variant")

	// ErrEncodeRejected indicates the provider declined to encode the identifier,
	// e.g. the value is outside the representable range.
	ErrEncodeRejected = errors.Wrap(errors.ErrInvalidInput, "identifier rejected by provider")

	// ErrNilUid indicates a nil identifier was passed to Encode.
	ErrNilUid = errors.Wrap(errors.ErrInvalidInput, "identifier is nil")

	// ErrInvalidValue indicates a textual identifier value could not be parsed
	// for its variant.
	ErrInvalidValue = errors.Wrap(errors.ErrInvalidInput, "invalid identifier value")
)

// Resource errors.
var (
	// ErrPoolExhausted indicates no cipher context became available within the
	// acquire timeout. Callers may retry.
	ErrPoolExhausted = errors.Wrap(errors.ErrUnavailable, "cipher context pool exhausted")
)

// Configuration errors. These are returned from constructors only.
var (
	// ErrInvalidVariantTag indicates a provider declared a tag outside [0, 15].
	ErrInvalidVariantTag = errors.New("variant tag must be between 0x0 and 0xf")

	// ErrDuplicateVariant indicates two providers declared the same tag.
	ErrDuplicateVariant = errors.New("duplicate variant tag")

	// ErrInvalidBlockCount indicates a provider declared fewer than one block.
	ErrInvalidBlockCount = errors.New("variant block count must be positive")

	// ErrNilProvider indicates a nil provider was passed to the registry.
	ErrNilProvider = errors.New("provider is nil")

	// ErrUnsupportedAlgorithm indicates the configured cipher algorithm is unknown.
	ErrUnsupportedAlgorithm = errors.New("unsupported cipher algorithm")

	// ErrInvalidKeyLength indicates a derived key length outside the digest size.
	ErrInvalidKeyLength = errors.New("invalid derived key length")

	// ErrInvalidConcurrency indicates a pool size below one.
	ErrInvalidConcurrency = errors.New("pool concurrency must be positive")

	// ErrSecretNotSet indicates neither a raw nor a KMS-wrapped secret was configured.
	ErrSecretNotSet = errors.New("shared secret is not set")
)
