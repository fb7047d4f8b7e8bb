package usecase

import (
	"context"
	"time"

	"github.com/allisson/uids/internal/metrics"
	uidDomain "github.com/allisson/uids/internal/uid/domain"
)

const metricsDomain = "uid"

// uidUseCaseWithMetrics decorates UidUseCase with metrics instrumentation.
type uidUseCaseWithMetrics struct {
	next    UidUseCase
	metrics metrics.BusinessMetrics
}

// NewUidUseCaseWithMetrics wraps a UidUseCase with metrics recording.
func NewUidUseCaseWithMetrics(useCase UidUseCase, m metrics.BusinessMetrics) UidUseCase {
	return &uidUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *uidUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusOf(err)
	u.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	u.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// Encode records metrics for encode operations.
func (u *uidUseCaseWithMetrics) Encode(ctx context.Context, uid uidDomain.Uid) (string, error) {
	start := time.Now()
	token, err := u.next.Encode(ctx, uid)
	u.record(ctx, "encode", start, err)
	return token, err
}

// Decode records metrics for decode operations.
func (u *uidUseCaseWithMetrics) Decode(ctx context.Context, token string) (uidDomain.Uid, error) {
	start := time.Now()
	uid, err := u.next.Decode(ctx, token)
	u.record(ctx, "decode", start, err)
	return uid, err
}

// EncodeBatch records metrics for the batch as a whole. Item failures do not
// mark the batch as failed.
func (u *uidUseCaseWithMetrics) EncodeBatch(
	ctx context.Context,
	uids []uidDomain.Uid,
) ([]uidDomain.EncodeResult, error) {
	start := time.Now()
	results, err := u.next.EncodeBatch(ctx, uids)
	u.record(ctx, "encode_batch", start, err)
	return results, err
}

// DecodeBatch records metrics for the batch as a whole.
func (u *uidUseCaseWithMetrics) DecodeBatch(
	ctx context.Context,
	tokens []string,
) ([]uidDomain.DecodeResult, error) {
	start := time.Now()
	results, err := u.next.DecodeBatch(ctx, tokens)
	u.record(ctx, "decode_batch", start, err)
	return results, err
}

func (u *uidUseCaseWithMetrics) Variants() []uidDomain.Variant {
	return u.next.Variants()
}
