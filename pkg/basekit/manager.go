package basekit

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/basementdev/basekit/pkg/basekit/factory"
	"github.com/basementdev/basekit/pkg/basekit/observability"
	"github.com/basementdev/basekit/pkg/basekit/uncertain"
)

// Store is the registry surface a Manager needs. Both registry.Registry and
// registry.Owned satisfy it.
type Store[K comparable, V any] interface {
	Register(key K, value V) error
	Unregister(key K) error
	IsRegistered(key K) bool
	Value(key K) (V, error)
}

// sizer is implemented by stores that can report their size; used only for
// metrics.
type sizer interface {
	Size() int
}

// Manager composes one registry store (keyed by K1, the identity of a live
// instance) and one factory (keyed by K2, the recipe to build instances).
// An instance addressed by a given K1 is constructed by at most one factory
// invocation per compute call; ComputeIfAbsent never constructs when the key
// is already registered.
//
// The manager performs no synchronization across its two collaborators; see
// the package documentation for the concurrency contract.
type Manager[K1, K2 comparable, V any] struct {
	name    string
	store   Store[K1, V]
	factory *factory.Factory[K2, V]
	cfg     managerConfig
}

// New creates a manager over store and fac. The name appears in every error
// the manager raises.
func New[K1, K2 comparable, V any](name string, store Store[K1, V], fac *factory.Factory[K2, V], opts ...Option) *Manager[K1, K2, V] {
	cfg := defaultManagerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Manager[K1, K2, V]{
		name:    name,
		store:   store,
		factory: fac,
		cfg:     cfg,
	}
}

// NewShared creates a manager whose registry and factory share one key type.
func NewShared[K comparable, V any](name string, store Store[K, V], fac *factory.Factory[K, V], opts ...Option) *Manager[K, K, V] {
	return New[K, K, V](name, store, fac, opts...)
}

// Name returns the manager's diagnostic name.
func (m *Manager[K1, K2, V]) Name() string {
	return m.name
}

// Store returns the composed registry store.
func (m *Manager[K1, K2, V]) Store() Store[K1, V] {
	return m.store
}

// Factory returns the composed factory.
func (m *Manager[K1, K2, V]) Factory() *factory.Factory[K2, V] {
	return m.factory
}

// Compute constructs a new instance via the recipe under factoryKey and
// registers it under registryKey. Fails with ErrAlreadyExists when
// registryKey is present and ErrRecipeNotFound when factoryKey is absent;
// construction failures propagate with their cause preserved.
func (m *Manager[K1, K2, V]) Compute(ctx context.Context, registryKey K1, factoryKey K2) (V, error) {
	return m.ComputeWith(ctx, registryKey, factoryKey, factory.NoParameter{})
}

// ComputeWith is Compute with an explicit recipe parameter.
func (m *Manager[K1, K2, V]) ComputeWith(ctx context.Context, registryKey K1, factoryKey K2, param any) (V, error) {
	ctx, finish := m.instrument(ctx, "compute", registryKey)
	v, err := m.compute(ctx, registryKey, factoryKey, param)
	finish(err)
	return v, err
}

func (m *Manager[K1, K2, V]) compute(ctx context.Context, registryKey K1, factoryKey K2, param any) (V, error) {
	var zero V

	if m.store.IsRegistered(registryKey) {
		return zero, m.wrap(fmt.Errorf("%w: %v", ErrAlreadyExists, registryKey))
	}
	if !m.factory.IsRegistered(factoryKey) {
		return zero, m.wrap(fmt.Errorf("%w: %v", ErrRecipeNotFound, factoryKey))
	}

	v, err := m.construct(ctx, factoryKey, param)
	if err != nil {
		return zero, m.wrap(err)
	}

	// If registration fails after a successful construction (a concurrent
	// external registration raced in), the instance is discarded without a
	// disposal hook and is not tracked by the store.
	if err := m.store.Register(registryKey, v); err != nil {
		return zero, m.wrap(err)
	}
	m.noteEvent(ctx, "instance_registered", registryKey)
	m.recordSize(ctx)
	return v, nil
}

// ComputeSafe is the safe form of Compute, empty on any failure.
func (m *Manager[K1, K2, V]) ComputeSafe(ctx context.Context, registryKey K1, factoryKey K2) uncertain.Uncertain[V] {
	v, err := m.Compute(ctx, registryKey, factoryKey)
	if err != nil {
		return uncertain.Empty[V]()
	}
	return uncertain.Of(v)
}

// ComputeWithSafe is the safe form of ComputeWith.
func (m *Manager[K1, K2, V]) ComputeWithSafe(ctx context.Context, registryKey K1, factoryKey K2, param any) uncertain.Uncertain[V] {
	v, err := m.ComputeWith(ctx, registryKey, factoryKey, param)
	if err != nil {
		return uncertain.Empty[V]()
	}
	return uncertain.Of(v)
}

// ComputeIfAbsent returns the instance registered under registryKey, or
// constructs and registers one like Compute when the key is absent. The
// recipe is never invoked for a present key.
func (m *Manager[K1, K2, V]) ComputeIfAbsent(ctx context.Context, registryKey K1, factoryKey K2) (V, error) {
	return m.ComputeIfAbsentWith(ctx, registryKey, factoryKey, factory.NoParameter{})
}

// ComputeIfAbsentWith is ComputeIfAbsent with an explicit recipe parameter.
func (m *Manager[K1, K2, V]) ComputeIfAbsentWith(ctx context.Context, registryKey K1, factoryKey K2, param any) (V, error) {
	ctx, finish := m.instrument(ctx, "computeIfAbsent", registryKey)
	v, err := m.computeIfAbsent(ctx, registryKey, factoryKey, param)
	finish(err)
	return v, err
}

func (m *Manager[K1, K2, V]) computeIfAbsent(ctx context.Context, registryKey K1, factoryKey K2, param any) (V, error) {
	if m.store.IsRegistered(registryKey) {
		v, err := m.store.Value(registryKey)
		if err != nil {
			var zero V
			return zero, m.wrap(err)
		}
		return v, nil
	}
	return m.compute(ctx, registryKey, factoryKey, param)
}

// ComputeIfAbsentSafe is the safe form of ComputeIfAbsent.
func (m *Manager[K1, K2, V]) ComputeIfAbsentSafe(ctx context.Context, registryKey K1, factoryKey K2) uncertain.Uncertain[V] {
	v, err := m.ComputeIfAbsent(ctx, registryKey, factoryKey)
	if err != nil {
		return uncertain.Empty[V]()
	}
	return uncertain.Of(v)
}

// ComputeIfAbsentWithSafe is the safe form of ComputeIfAbsentWith.
func (m *Manager[K1, K2, V]) ComputeIfAbsentWithSafe(ctx context.Context, registryKey K1, factoryKey K2, param any) uncertain.Uncertain[V] {
	v, err := m.ComputeIfAbsentWith(ctx, registryKey, factoryKey, param)
	if err != nil {
		return uncertain.Empty[V]()
	}
	return uncertain.Of(v)
}

// Remove unregisters the instance under registryKey and returns it. Fails
// with ErrInstanceNotFound when the key is absent. The manager performs no
// cleanup on the removed value.
func (m *Manager[K1, K2, V]) Remove(ctx context.Context, registryKey K1) (V, error) {
	ctx, finish := m.instrument(ctx, "remove", registryKey)
	v, err := m.remove(ctx, registryKey)
	finish(err)
	return v, err
}

func (m *Manager[K1, K2, V]) remove(ctx context.Context, registryKey K1) (V, error) {
	var zero V

	if !m.store.IsRegistered(registryKey) {
		return zero, m.wrap(fmt.Errorf("%w: %v", ErrInstanceNotFound, registryKey))
	}

	v, err := m.store.Value(registryKey)
	if err != nil {
		return zero, m.wrap(err)
	}
	if err := m.store.Unregister(registryKey); err != nil {
		return zero, m.wrap(err)
	}
	m.noteEvent(ctx, "instance_removed", registryKey)
	m.recordSize(ctx)
	return v, nil
}

// RemoveSafe is the safe form of Remove, empty on any failure.
func (m *Manager[K1, K2, V]) RemoveSafe(ctx context.Context, registryKey K1) uncertain.Uncertain[V] {
	v, err := m.Remove(ctx, registryKey)
	if err != nil {
		return uncertain.Empty[V]()
	}
	return uncertain.Of(v)
}

// construct invokes the factory with a construction span and metrics around
// it. The returned error is the factory's, unwrapped by the manager layer.
func (m *Manager[K1, K2, V]) construct(ctx context.Context, factoryKey K2, param any) (V, error) {
	printed := fmt.Sprint(factoryKey)
	ctx, span := m.cfg.spans.StartConstructionSpan(ctx, printed)
	elapsed := observability.TimedOperation()
	v, err := m.factory.Create(factoryKey, param)
	ms := elapsed()
	m.cfg.metrics.RecordConstruction(ctx, m.name, printed, time.Duration(ms*float64(time.Millisecond)), err)
	if err == nil {
		observability.LogConstruction(observability.EnrichLogger(m.cfg.logger, m.name, "construct"), printed, ms)
	}
	m.cfg.spans.EndSpanWithError(span, err)
	return v, err
}

// instrument starts the span, timer, and log line for an operation and
// returns a finish func recording the outcome.
func (m *Manager[K1, K2, V]) instrument(ctx context.Context, op string, key any) (context.Context, func(error)) {
	printed := fmt.Sprint(key)
	log := observability.EnrichLogger(m.cfg.logger, m.name, op)
	ctx, span := m.cfg.spans.StartOperationSpan(ctx, m.name, op, printed)
	elapsed := observability.TimedOperation()
	observability.LogOperationStart(log, printed)
	return ctx, func(err error) {
		ms := elapsed()
		m.cfg.metrics.RecordOperation(ctx, m.name, op, time.Duration(ms*float64(time.Millisecond)), err)
		if err != nil {
			observability.LogOperationError(log, printed, err)
		} else {
			observability.LogOperationComplete(log, printed, ms)
		}
		m.cfg.spans.EndSpanWithError(span, err)
	}
}

// noteEvent attaches an event to the operation span in ctx.
func (m *Manager[K1, K2, V]) noteEvent(ctx context.Context, name string, key any) {
	m.cfg.spans.AddSpanEvent(ctx, name, attribute.String("key", fmt.Sprint(key)))
}

func (m *Manager[K1, K2, V]) recordSize(ctx context.Context) {
	if s, ok := m.store.(sizer); ok {
		m.cfg.metrics.RecordStoreSize(ctx, m.name, int64(s.Size()))
	}
}

func (m *Manager[K1, K2, V]) wrap(err error) error {
	return &ManagerError{Manager: m.name, Err: err}
}
