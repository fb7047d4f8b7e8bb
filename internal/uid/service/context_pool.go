package service

import (
	"context"
	"fmt"
	"time"

	uidDomain "github.com/allisson/uids/internal/uid/domain"
)

// ContextPool is a fixed-capacity pool of cipher contexts with blocking borrow
// and unconditional return.
//
// Every context is built from the same key material, which is derived once
// before the pool exists. Acquire blocks while all contexts are in use, which
// bounds the number of cipher operations running at once.
type ContextPool struct {
	contexts       chan *CipherContext
	size           int
	acquireTimeout time.Duration
}

// NewContextPool creates concurrency contexts for alg from km.
// A non-positive acquireTimeout falls back to DefaultAcquireTimeout.
func NewContextPool(
	km *uidDomain.KeyMaterial,
	alg uidDomain.Algorithm,
	concurrency int,
	acquireTimeout time.Duration,
) (*ContextPool, error) {
	if concurrency < 1 {
		return nil, fmt.Errorf("%w: %d", uidDomain.ErrInvalidConcurrency, concurrency)
	}
	if acquireTimeout <= 0 {
		acquireTimeout = uidDomain.DefaultAcquireTimeout
	}

	pool := &ContextPool{
		contexts:       make(chan *CipherContext, concurrency),
		size:           concurrency,
		acquireTimeout: acquireTimeout,
	}

	for i := 0; i < concurrency; i++ {
		c, err := NewCipherContext(km, alg)
		if err != nil {
			return nil, fmt.Errorf("failed to create cipher context %d: %w", i, err)
		}
		pool.contexts <- c
	}

	return pool, nil
}

// Acquire borrows a context, waiting up to the acquire timeout.
// Returns ErrPoolExhausted on timeout or when ctx ends first.
func (p *ContextPool) Acquire(ctx context.Context) (*CipherContext, error) {
	select {
	case c := <-p.contexts:
		return c, nil
	default:
	}

	timer := time.NewTimer(p.acquireTimeout)
	defer timer.Stop()

	select {
	case c := <-p.contexts:
		return c, nil
	case <-timer.C:
		return nil, fmt.Errorf("%w: waited %s", uidDomain.ErrPoolExhausted, p.acquireTimeout)
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", uidDomain.ErrPoolExhausted, ctx.Err())
	}
}

// Release returns a context to the pool. Contexts keep no per-call state, so
// they are reusable even after a failed operation.
func (p *ContextPool) Release(c *CipherContext) {
	if c == nil {
		return
	}
	select {
	case p.contexts <- c:
	default:
		panic("uid: cipher context released into a full pool")
	}
}

// With runs fn with a borrowed context and releases it on every exit path.
func (p *ContextPool) With(ctx context.Context, fn func(c *CipherContext) error) error {
	c, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer p.Release(c)

	return fn(c)
}

// Size returns the pool capacity.
func (p *ContextPool) Size() int {
	return p.size
}

// Available returns the number of idle contexts.
func (p *ContextPool) Available() int {
	return len(p.contexts)
}
