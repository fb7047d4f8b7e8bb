package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PoolStats reports the capacity and idle count of a bounded pool.
type PoolStats interface {
	Size() int
	Available() int
}

// RegisterPoolMetrics exposes pool capacity and idle contexts as a gauge that is
// sampled on every scrape. The returned registration must be unregistered on shutdown.
func RegisterPoolMetrics(
	meterProvider metric.MeterProvider,
	namespace string,
	pool PoolStats,
) (metric.Registration, error) {
	meter := meterProvider.Meter(namespace)

	gauge, err := meter.Int64ObservableGauge(
		fmt.Sprintf("%s_pool_contexts", namespace),
		metric.WithDescription("Cipher contexts in the pool by state"),
		metric.WithUnit("{context}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool gauge: %w", err)
	}

	capacity := metric.WithAttributes(attribute.String("state", "capacity"))
	idle := metric.WithAttributes(attribute.String("state", "idle"))
	inUse := metric.WithAttributes(attribute.String("state", "in_use"))

	registration, err := meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		size, available := int64(pool.Size()), int64(pool.Available())
		o.ObserveInt64(gauge, size, capacity)
		o.ObserveInt64(gauge, available, idle)
		o.ObserveInt64(gauge, size-available, inUse)
		return nil
	}, gauge)
	if err != nil {
		return nil, fmt.Errorf("failed to register pool callback: %w", err)
	}

	return registration, nil
}
