package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	uidDomain "github.com/allisson/uids/internal/uid/domain"
	"github.com/allisson/uids/internal/uid/provider"
	uidService "github.com/allisson/uids/internal/uid/service"
)

// Config holds the codec construction parameters.
type Config struct {
	// Secret is the shared secret all key material is derived from.
	Secret []byte
	// Algorithm selects the block cipher. Empty means TripleDESCBC.
	Algorithm uidDomain.Algorithm
	// Concurrency is the number of pooled cipher contexts. Zero means DefaultConcurrency.
	Concurrency int
	// AcquireTimeout bounds the wait for a free context. Zero means DefaultAcquireTimeout.
	AcquireTimeout time.Duration
}

// uidUseCase is stateless apart from the read-only registry and the pool.
type uidUseCase struct {
	registry *uidService.Registry
	pool     *uidService.ContextPool
}

// NewUidUseCase creates the facade from an assembled registry and pool.
func NewUidUseCase(registry *uidService.Registry, pool *uidService.ContextPool) UidUseCase {
	return &uidUseCase{
		registry: registry,
		pool:     pool,
	}
}

// New builds registry, key material and pool from cfg and returns the facade
// with the pool, so callers can observe it. Misconfiguration is reported here
// and never at encode or decode time.
func New(cfg Config, providers ...uidDomain.Provider) (UidUseCase, *uidService.ContextPool, error) {
	if len(cfg.Secret) == 0 {
		return nil, nil, uidDomain.ErrSecretNotSet
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = uidDomain.TripleDESCBC
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = uidDomain.DefaultConcurrency
	}

	registry, err := uidService.NewRegistry(providers...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build variant registry: %w", err)
	}

	km, err := uidService.DeriveKeyMaterial(cfg.Secret, cfg.Algorithm)
	if err != nil {
		return nil, nil, err
	}
	defer km.Zero()

	pool, err := uidService.NewContextPool(km, cfg.Algorithm, cfg.Concurrency, cfg.AcquireTimeout)
	if err != nil {
		return nil, nil, err
	}

	return NewUidUseCase(registry, pool), pool, nil
}

// NewDefault returns a facade with the built-in providers, the default cipher
// and DefaultConcurrency contexts.
func NewDefault(secret []byte) (UidUseCase, error) {
	useCase, _, err := New(Config{Secret: secret}, provider.Defaults()...)
	return useCase, err
}

// Encode looks up the provider, lets it fill the word array, then packs,
// encrypts and renders the token. A provider rejection never touches the pool.
func (u *uidUseCase) Encode(ctx context.Context, uid uidDomain.Uid) (string, error) {
	if uid == nil {
		return "", uidDomain.ErrNilUid
	}

	variant := uid.Variant()
	p, ok := u.registry.ProviderForVariant(variant)
	if !ok {
		return "", fmt.Errorf("%w: %s", uidDomain.ErrUnknownVariant, variant)
	}

	words := make([]uint64, variant.Blocks)
	if !p.Encode(uid, words) {
		return "", fmt.Errorf("%w: variant=%s", uidDomain.ErrEncodeRejected, variant)
	}

	block := uidService.Pack(variant.Tag, words)

	var ciphertext []byte
	err := u.pool.With(ctx, func(c *uidService.CipherContext) error {
		var encErr error
		ciphertext, encErr = c.Encrypt(block)
		return encErr
	})
	if err != nil {
		return "", err
	}

	return uidService.EncodeToken(ciphertext), nil
}

// Decode checks the token shape and checksum before borrowing a context.
func (u *uidUseCase) Decode(ctx context.Context, token string) (uidDomain.Uid, error) {
	ciphertext, err := uidService.DecodeToken(token)
	if err != nil {
		return nil, err
	}

	var block []byte
	err = u.pool.With(ctx, func(c *uidService.CipherContext) error {
		var decErr error
		block, decErr = c.Decrypt(ciphertext)
		return decErr
	})
	if err != nil {
		return nil, err
	}

	tag, words, err := uidService.Unpack(block)
	if err != nil {
		return nil, err
	}

	p, ok := u.registry.ProviderForTag(tag)
	if !ok {
		return nil, fmt.Errorf("%w: tag=%d", uidDomain.ErrUnknownVariant, tag)
	}
	if len(words) != p.Variant().Blocks {
		return nil, fmt.Errorf(
			"%w: variant %s expects %d blocks, got %d",
			uidDomain.ErrMalformedToken,
			p.Variant(),
			p.Variant().Blocks,
			len(words),
		)
	}

	uid, err := p.Decode(words)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", uidDomain.ErrMalformedToken, err)
	}

	return uid, nil
}

// EncodeBatch fans out over at most pool-size goroutines.
func (u *uidUseCase) EncodeBatch(ctx context.Context, uids []uidDomain.Uid) ([]uidDomain.EncodeResult, error) {
	results := make([]uidDomain.EncodeResult, len(uids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.pool.Size())
	for i, uid := range uids {
		g.Go(func() error {
			token, err := u.Encode(gctx, uid)
			results[i] = uidDomain.EncodeResult{Token: token, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// DecodeBatch fans out over at most pool-size goroutines.
func (u *uidUseCase) DecodeBatch(ctx context.Context, tokens []string) ([]uidDomain.DecodeResult, error) {
	results := make([]uidDomain.DecodeResult, len(tokens))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.pool.Size())
	for i, token := range tokens {
		g.Go(func() error {
			uid, err := u.Decode(gctx, token)
			results[i] = uidDomain.DecodeResult{Uid: uid, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

func (u *uidUseCase) Variants() []uidDomain.Variant {
	return u.registry.Variants()
}
