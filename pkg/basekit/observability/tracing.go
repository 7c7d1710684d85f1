package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the basekit tracer instance, resolved through the global OTel
// tracer provider.
var tracer = otel.Tracer("basekit")

// SpanManager handles trace span lifecycle for manager operations.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartOperationSpan starts a span for a manager operation
	// (compute, computeIfAbsent, remove).
	StartOperationSpan(ctx context.Context, manager, op, key string) (context.Context, trace.Span)

	// StartConstructionSpan starts a span for a factory construction.
	// It should be a child of the operation span.
	StartConstructionSpan(ctx context.Context, factoryKey string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses the global OTel tracer
// provider. Configure the provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartOperationSpan starts a span for a manager operation.
func (m *otelSpanManager) StartOperationSpan(ctx context.Context, manager, op, key string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "basekit."+op,
		trace.WithAttributes(
			attribute.String("manager", manager),
			attribute.String("key", key),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartConstructionSpan starts a span for a factory construction.
func (m *otelSpanManager) StartConstructionSpan(ctx context.Context, factoryKey string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "basekit.construct",
		trace.WithAttributes(
			attribute.String("factory_key", factoryKey),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
