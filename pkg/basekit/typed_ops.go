package basekit

import (
	"context"
	"fmt"

	"github.com/basementdev/basekit/pkg/basekit/factory"
	"github.com/basementdev/basekit/pkg/basekit/uncertain"
)

// The *As operations narrow the produced or stored value to a requested
// subtype V2 of the manager's value type. They are package-level functions
// because Go methods cannot introduce type parameters.

// ComputeAs is Compute narrowed to V2. Fails with factory.ErrTypeMismatch
// when the recipe produces a value that is not a V2; nothing is registered
// in that case.
func ComputeAs[V2 any, K1, K2 comparable, V any](ctx context.Context, m *Manager[K1, K2, V], registryKey K1, factoryKey K2) (V2, error) {
	return ComputeWithAs[V2](ctx, m, registryKey, factoryKey, factory.NoParameter{})
}

// ComputeWithAs is ComputeAs with an explicit recipe parameter.
func ComputeWithAs[V2 any, K1, K2 comparable, V any](ctx context.Context, m *Manager[K1, K2, V], registryKey K1, factoryKey K2, param any) (V2, error) {
	ctx, finish := m.instrument(ctx, "compute", registryKey)
	v, err := computeAs[V2](ctx, m, registryKey, factoryKey, param)
	finish(err)
	return v, err
}

func computeAs[V2 any, K1, K2 comparable, V any](ctx context.Context, m *Manager[K1, K2, V], registryKey K1, factoryKey K2, param any) (V2, error) {
	var zero V2

	if m.store.IsRegistered(registryKey) {
		return zero, m.wrap(fmt.Errorf("%w: %v", ErrAlreadyExists, registryKey))
	}
	if !m.factory.IsRegistered(factoryKey) {
		return zero, m.wrap(fmt.Errorf("%w: %v", ErrRecipeNotFound, factoryKey))
	}

	narrowed, err := factory.CreateAs[V2](m.factory, factoryKey, param)
	if err != nil {
		return zero, m.wrap(err)
	}

	wide, ok := any(narrowed).(V)
	if !ok {
		// V2 was satisfied but the store's value type was not; only
		// possible with unrelated interface constraints.
		return zero, m.wrap(fmt.Errorf("%w: %v", ErrWrongType, registryKey))
	}
	if err := m.store.Register(registryKey, wide); err != nil {
		return zero, m.wrap(err)
	}
	m.noteEvent(ctx, "instance_registered", registryKey)
	m.recordSize(ctx)
	return narrowed, nil
}

// ComputeIfAbsentAs is ComputeIfAbsent narrowed to V2. A stored instance of
// the wrong type fails with ErrWrongType.
func ComputeIfAbsentAs[V2 any, K1, K2 comparable, V any](ctx context.Context, m *Manager[K1, K2, V], registryKey K1, factoryKey K2) (V2, error) {
	return ComputeIfAbsentWithAs[V2](ctx, m, registryKey, factoryKey, factory.NoParameter{})
}

// ComputeIfAbsentWithAs is ComputeIfAbsentAs with an explicit recipe
// parameter.
func ComputeIfAbsentWithAs[V2 any, K1, K2 comparable, V any](ctx context.Context, m *Manager[K1, K2, V], registryKey K1, factoryKey K2, param any) (V2, error) {
	ctx, finish := m.instrument(ctx, "computeIfAbsent", registryKey)
	v, err := computeIfAbsentAs[V2](ctx, m, registryKey, factoryKey, param)
	finish(err)
	return v, err
}

func computeIfAbsentAs[V2 any, K1, K2 comparable, V any](ctx context.Context, m *Manager[K1, K2, V], registryKey K1, factoryKey K2, param any) (V2, error) {
	var zero V2

	if m.store.IsRegistered(registryKey) {
		v, err := m.store.Value(registryKey)
		if err != nil {
			return zero, m.wrap(err)
		}
		narrowed, ok := any(v).(V2)
		if !ok {
			return zero, m.wrap(fmt.Errorf("%w: %v is %T, want %T", ErrWrongType, registryKey, v, zero))
		}
		return narrowed, nil
	}
	return computeAs[V2](ctx, m, registryKey, factoryKey, param)
}

// ComputeAsSafe is the safe form of ComputeAs, empty on any failure.
func ComputeAsSafe[V2 any, K1, K2 comparable, V any](ctx context.Context, m *Manager[K1, K2, V], registryKey K1, factoryKey K2) uncertain.Uncertain[V2] {
	v, err := ComputeAs[V2](ctx, m, registryKey, factoryKey)
	if err != nil {
		return uncertain.Empty[V2]()
	}
	return uncertain.Of(v)
}

// ComputeIfAbsentAsSafe is the safe form of ComputeIfAbsentAs.
func ComputeIfAbsentAsSafe[V2 any, K1, K2 comparable, V any](ctx context.Context, m *Manager[K1, K2, V], registryKey K1, factoryKey K2) uncertain.Uncertain[V2] {
	v, err := ComputeIfAbsentAs[V2](ctx, m, registryKey, factoryKey)
	if err != nil {
		return uncertain.Empty[V2]()
	}
	return uncertain.Of(v)
}
