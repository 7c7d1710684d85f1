package observability

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records manager and factory metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordOperation records a manager operation with its duration and
	// error status.
	RecordOperation(ctx context.Context, manager, op string, duration time.Duration, err error)

	// RecordConstruction records a factory construction performed during a
	// manager operation.
	RecordConstruction(ctx context.Context, manager, factoryKey string, duration time.Duration, err error)

	// RecordStoreSize records the size of a manager's backing store after a
	// mutating operation.
	RecordStoreSize(ctx context.Context, manager string, size int64)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	operations       metric.Int64Counter
	operationLatency metric.Float64Histogram
	operationErrors  metric.Int64Counter
	constructions    metric.Int64Counter
	storeSize        metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("basekit")

	operations, err := meter.Int64Counter("basekit.manager.operations",
		metric.WithDescription("Number of manager operations"),
	)
	if err != nil {
		return nil, err
	}

	operationLatency, err := meter.Float64Histogram("basekit.manager.latency_ms",
		metric.WithDescription("Manager operation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	operationErrors, err := meter.Int64Counter("basekit.manager.errors",
		metric.WithDescription("Number of failed manager operations"),
	)
	if err != nil {
		return nil, err
	}

	constructions, err := meter.Int64Counter("basekit.factory.constructions",
		metric.WithDescription("Number of factory constructions"),
	)
	if err != nil {
		return nil, err
	}

	storeSize, err := meter.Int64Histogram("basekit.store.size",
		metric.WithDescription("Backing store size after mutating operations"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		operations:       operations,
		operationLatency: operationLatency,
		operationErrors:  operationErrors,
		constructions:    constructions,
		storeSize:        storeSize,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder backed by the global OTel
// meter provider. Configure the provider before calling this function.
// Falls back to NoopMetrics when instrument creation fails.
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		return NoopMetrics{}
	}
	return m
}

// RecordOperation records a manager operation.
func (m *otelMetrics) RecordOperation(ctx context.Context, manager, op string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("manager", manager),
		attribute.String("operation", op),
		attribute.Bool("success", err == nil),
	)
	m.operations.Add(ctx, 1, attrs)
	m.operationLatency.Record(ctx, float64(duration.Milliseconds()), attrs)
	if err != nil {
		m.operationErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("manager", manager),
			attribute.String("operation", op),
		))
	}
}

// RecordConstruction records a factory construction.
func (m *otelMetrics) RecordConstruction(ctx context.Context, manager, factoryKey string, duration time.Duration, err error) {
	m.constructions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("manager", manager),
		attribute.String("factory_key", factoryKey),
		attribute.Bool("success", err == nil),
	))
}

// RecordStoreSize records the backing store size.
func (m *otelMetrics) RecordStoreSize(ctx context.Context, manager string, size int64) {
	m.storeSize.Record(ctx, size, metric.WithAttributes(
		attribute.String("manager", manager),
	))
}
