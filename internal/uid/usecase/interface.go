// Package usecase provides the identifier codec facade: typed identifiers in,
// opaque tokens out, and back.
package usecase

import (
	"context"

	uidDomain "github.com/allisson/uids/internal/uid/domain"
)

// UidUseCase encodes typed identifiers into tokens and decodes them back.
//
// Expected failures (malformed tokens, unknown variants, rejected identifiers,
// pool exhaustion) are returned as errors wrapping the uid domain errors.
// Nothing panics on untrusted input.
type UidUseCase interface {
	// Encode turns uid into a token.
	Encode(ctx context.Context, uid uidDomain.Uid) (string, error)

	// Decode validates token and returns the typed identifier it carries.
	Decode(ctx context.Context, token string) (uidDomain.Uid, error)

	// EncodeBatch encodes every uid; item failures are reported per item.
	EncodeBatch(ctx context.Context, uids []uidDomain.Uid) ([]uidDomain.EncodeResult, error)

	// DecodeBatch decodes every token; item failures are reported per item.
	DecodeBatch(ctx context.Context, tokens []string) ([]uidDomain.DecodeResult, error)

	// Variants returns the registered variants in registration order.
	Variants() []uidDomain.Variant
}
