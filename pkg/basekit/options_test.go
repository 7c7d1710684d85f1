package basekit

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/basementdev/basekit/pkg/basekit/factory"
	"github.com/basementdev/basekit/pkg/basekit/observability"
	"github.com/basementdev/basekit/pkg/basekit/registry"
)

// recordingMetrics captures recorder calls for assertions.
type recordingMetrics struct {
	mu            sync.Mutex
	operations    []string
	constructions []string
	sizes         []int64
}

func (r *recordingMetrics) RecordOperation(_ context.Context, manager, op string, _ time.Duration, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.operations = append(r.operations, manager+"/"+op)
}

func (r *recordingMetrics) RecordConstruction(_ context.Context, manager, factoryKey string, _ time.Duration, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructions = append(r.constructions, manager+"/"+factoryKey)
}

func (r *recordingMetrics) RecordStoreSize(_ context.Context, _ string, size int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sizes = append(r.sizes, size)
}

func newObservedManager(t *testing.T, opts ...Option) *Manager[registry.StringKey, string, *widget] {
	t.Helper()

	store := registry.New[registry.StringKey, *widget]("widgets")
	recipes := factory.New[string, *widget]("widget-recipes")
	require.NoError(t, recipes.Register("widget", func(param any) (*widget, error) {
		return &widget{id: 1}, nil
	}))
	return New[registry.StringKey, string, *widget]("widgets", store, recipes, opts...)
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	m := newObservedManager(t, WithLogger(logger))
	ctx := context.Background()

	_, err := m.Compute(ctx, "a", "widget")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "operation starting")
	assert.Contains(t, out, "instance constructed")
	assert.Contains(t, out, "operation completed")
	assert.Contains(t, out, "manager=widgets")

	buf.Reset()
	_, err = m.Compute(ctx, "a", "widget")
	require.Error(t, err)
	assert.Contains(t, buf.String(), "operation failed")
}

func TestWithMetrics(t *testing.T) {
	rec := &recordingMetrics{}
	m := newObservedManager(t, WithMetrics(rec))
	ctx := context.Background()

	_, err := m.Compute(ctx, "a", "widget")
	require.NoError(t, err)
	_, err = m.Remove(ctx, "a")
	require.NoError(t, err)

	assert.Equal(t, []string{"widgets/compute", "widgets/remove"}, rec.operations)
	assert.Equal(t, []string{"widgets/widget"}, rec.constructions)
	assert.Equal(t, []int64{1, 0}, rec.sizes)
}

func TestWithMetricsNilKeepsNoop(t *testing.T) {
	m := newObservedManager(t, WithMetrics(nil), WithSpans(nil))

	// Options with nil arguments fall back to the defaults.
	_, err := m.Compute(context.Background(), "a", "widget")
	assert.NoError(t, err)
}

// recordingSpans captures span events for assertions.
type recordingSpans struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingSpans) StartOperationSpan(ctx context.Context, _, _, _ string) (context.Context, trace.Span) {
	return ctx, noop.Span{}
}

func (r *recordingSpans) StartConstructionSpan(ctx context.Context, _ string) (context.Context, trace.Span) {
	return ctx, noop.Span{}
}

func (r *recordingSpans) EndSpanWithError(_ trace.Span, _ error) {}

func (r *recordingSpans) AddSpanEvent(_ context.Context, name string, _ ...attribute.KeyValue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, name)
}

func TestWithSpans(t *testing.T) {
	rec := &recordingSpans{}
	m := newObservedManager(t, WithSpans(rec))
	ctx := context.Background()

	_, err := m.Compute(ctx, "a", "widget")
	require.NoError(t, err)
	_, err = m.Remove(ctx, "a")
	require.NoError(t, err)

	assert.Equal(t, []string{"instance_registered", "instance_removed"}, rec.events)
}

func TestWithSpansNoop(t *testing.T) {
	m := newObservedManager(t, WithSpans(observability.NoopSpanManager{}))

	_, err := m.Compute(context.Background(), "a", "widget")
	assert.NoError(t, err)
}

func TestDefaultsAreSilent(t *testing.T) {
	m := newObservedManager(t)

	// No logger, noop metrics and spans: operations still work.
	_, err := m.Compute(context.Background(), "a", "widget")
	assert.NoError(t, err)
}
