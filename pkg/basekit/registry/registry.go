package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/basementdev/basekit/pkg/basekit/uncertain"
)

// Registry is a named keyed store with unique keys. It never overwrites:
// Register fails on a present key and Unregister fails on an absent one.
//
// Individual operations are safe for concurrent use via an internal RWMutex.
// The registry does not own the lifecycle of its values; removing or
// clearing entries performs no cleanup on them.
type Registry[K comparable, V any] struct {
	name    string
	mu      sync.RWMutex
	entries map[K]V
}

// New creates an empty registry. The name appears in every error the
// registry raises.
func New[K comparable, V any](name string) *Registry[K, V] {
	return &Registry[K, V]{
		name:    name,
		entries: make(map[K]V),
	}
}

// Name returns the registry's diagnostic name.
func (r *Registry[K, V]) Name() string {
	return r.name
}

// Register inserts value under key. Fails with ErrDuplicateKey when the key
// is already present, leaving the existing mapping unchanged.
func (r *Registry[K, V]) Register(key K, value V) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[key]; ok {
		return &RegistryError{Registry: r.name, Err: fmt.Errorf("%w: %v", ErrDuplicateKey, key)}
	}
	r.entries[key] = value
	return nil
}

// Unregister removes the entry under key. Fails with ErrKeyNotFound when the
// key is absent.
func (r *Registry[K, V]) Unregister(key K) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[key]; !ok {
		return &RegistryError{Registry: r.name, Err: fmt.Errorf("%w: %v", ErrKeyNotFound, key)}
	}
	delete(r.entries, key)
	return nil
}

// IsRegistered reports whether key is present.
func (r *Registry[K, V]) IsRegistered(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[key]
	return ok
}

// Entry returns the (key, value) pair under key, or ErrKeyNotFound.
func (r *Registry[K, V]) Entry(key K) (Entry[K, V], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[key]
	if !ok {
		return Entry[K, V]{}, &RegistryError{Registry: r.name, Err: fmt.Errorf("%w: %v", ErrKeyNotFound, key)}
	}
	return Entry[K, V]{Key: key, Value: v}, nil
}

// EntrySafe is the safe form of Entry, empty on any failure.
func (r *Registry[K, V]) EntrySafe(key K) uncertain.Uncertain[Entry[K, V]] {
	e, err := r.Entry(key)
	if err != nil {
		return uncertain.Empty[Entry[K, V]]()
	}
	return uncertain.Of(e)
}

// Value returns the value under key, or ErrKeyNotFound.
func (r *Registry[K, V]) Value(key K) (V, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[key]
	if !ok {
		var zero V
		return zero, &RegistryError{Registry: r.name, Err: fmt.Errorf("%w: %v", ErrKeyNotFound, key)}
	}
	return v, nil
}

// ValueSafe is the safe form of Value, empty on any failure.
func (r *Registry[K, V]) ValueSafe(key K) uncertain.Uncertain[V] {
	v, err := r.Value(key)
	if err != nil {
		return uncertain.Empty[V]()
	}
	return uncertain.Of(v)
}

// Entries returns a snapshot of all entries in unspecified order.
func (r *Registry[K, V]) Entries() []Entry[K, V] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry[K, V], 0, len(r.entries))
	for k, v := range r.entries {
		out = append(out, Entry[K, V]{Key: k, Value: v})
	}
	return out
}

// Keys returns a snapshot of all keys in unspecified order.
func (r *Registry[K, V]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]K, 0, len(r.entries))
	for k := range r.entries {
		out = append(out, k)
	}
	return out
}

// Values returns a snapshot of all values in unspecified order.
func (r *Registry[K, V]) Values() []V {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]V, 0, len(r.entries))
	for _, v := range r.entries {
		out = append(out, v)
	}
	return out
}

// Clear removes all entries unconditionally.
func (r *Registry[K, V]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[K]V)
}

// Size returns the number of registered keys.
func (r *Registry[K, V]) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// IsEmpty reports whether the registry holds no entries.
func (r *Registry[K, V]) IsEmpty() bool {
	return r.Size() == 0
}

// ForEachEntry applies fn to every entry, stopping at the first failure.
// A callback error is wrapped in an IterationError naming the offending key.
// fn runs on a snapshot, so it may safely mutate the registry.
func (r *Registry[K, V]) ForEachEntry(fn func(Entry[K, V]) error) error {
	for _, e := range r.Entries() {
		if err := fn(e); err != nil {
			return &IterationError{Registry: r.name, Key: fmt.Sprint(e.Key), Err: err}
		}
	}
	return nil
}

// ForEachKey applies fn to every key, stopping at the first failure.
func (r *Registry[K, V]) ForEachKey(fn func(K) error) error {
	for _, k := range r.Keys() {
		if err := fn(k); err != nil {
			return &IterationError{Registry: r.name, Key: fmt.Sprint(k), Err: err}
		}
	}
	return nil
}

// ForEachValue applies fn to every value, stopping at the first failure.
// The IterationError names the key under which the offending value is stored.
func (r *Registry[K, V]) ForEachValue(fn func(V) error) error {
	for _, e := range r.Entries() {
		if err := fn(e.Value); err != nil {
			return &IterationError{Registry: r.name, Key: fmt.Sprint(e.Key), Err: err}
		}
	}
	return nil
}

// ForEach applies fn to every (key, value) pair, stopping at the first
// failure.
func (r *Registry[K, V]) ForEach(fn func(K, V) error) error {
	for _, e := range r.Entries() {
		if err := fn(e.Key, e.Value); err != nil {
			return &IterationError{Registry: r.name, Key: fmt.Sprint(e.Key), Err: err}
		}
	}
	return nil
}

// PrintEntries returns a bracketed listing of all entries for diagnostics.
// Output is sorted by printed key so it is stable across runs.
func (r *Registry[K, V]) PrintEntries() string {
	entries := r.Entries()
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.String())
	}
	sort.Strings(parts)
	return "[" + strings.Join(parts, ", ") + "]"
}

// PrintKeys returns a bracketed listing of all keys for diagnostics.
// Output is sorted so it is stable across runs.
func (r *Registry[K, V]) PrintKeys() string {
	keys := r.Keys()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%q", fmt.Sprint(k)))
	}
	sort.Strings(parts)
	return "[" + strings.Join(parts, ", ") + "]"
}
