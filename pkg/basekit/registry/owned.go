package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/basementdev/basekit/pkg/basekit/uncertain"
)

// Owned is a Registry variant that records which Registrator registered each
// entry. Global operations behave exactly like Registry and see all entries;
// the *By operations are scoped to a single principal and never observe
// entries belonging to a different one.
type Owned[K comparable, V any] struct {
	name    string
	mu      sync.RWMutex
	entries map[K]ownedSlot[V]
}

type ownedSlot[V any] struct {
	value       V
	registrator Registrator
}

// NewOwned creates an empty owned registry.
func NewOwned[K comparable, V any](name string) *Owned[K, V] {
	return &Owned[K, V]{
		name:    name,
		entries: make(map[K]ownedSlot[V]),
	}
}

// Name returns the registry's diagnostic name.
func (r *Owned[K, V]) Name() string {
	return r.name
}

// RegisterAs inserts value under key on behalf of registrator. Fails with
// ErrDuplicateKey when the key is already present, regardless of owner.
func (r *Owned[K, V]) RegisterAs(registrator Registrator, key K, value V) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[key]; ok {
		return &RegistryError{Registry: r.name, Err: fmt.Errorf("%w: %v", ErrDuplicateKey, key)}
	}
	r.entries[key] = ownedSlot[V]{value: value, registrator: registrator}
	return nil
}

// Register inserts value under key, recording SystemRegistrator as the owner.
func (r *Owned[K, V]) Register(key K, value V) error {
	return r.RegisterAs(SystemRegistrator, key, value)
}

// Unregister removes the entry under key regardless of owner. Fails with
// ErrKeyNotFound when the key is absent.
func (r *Owned[K, V]) Unregister(key K) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[key]; !ok {
		return &RegistryError{Registry: r.name, Err: fmt.Errorf("%w: %v", ErrKeyNotFound, key)}
	}
	delete(r.entries, key)
	return nil
}

// IsRegistered reports whether key is present, regardless of owner.
func (r *Owned[K, V]) IsRegistered(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[key]
	return ok
}

// IsRegisteredBy reports whether key is present and owned by registrator.
func (r *Owned[K, V]) IsRegisteredBy(registrator Registrator, key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	slot, ok := r.entries[key]
	return ok && slot.registrator == registrator
}

// HasRegistered reports whether registrator owns at least one entry.
func (r *Owned[K, V]) HasRegistered(registrator Registrator) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, slot := range r.entries {
		if slot.registrator == registrator {
			return true
		}
	}
	return false
}

// Entry returns the (key, value) pair under key, or ErrKeyNotFound.
func (r *Owned[K, V]) Entry(key K) (Entry[K, V], error) {
	e, err := r.OwnedEntry(key)
	if err != nil {
		return Entry[K, V]{}, err
	}
	return e.Entry(), nil
}

// EntrySafe is the safe form of Entry, empty on any failure.
func (r *Owned[K, V]) EntrySafe(key K) uncertain.Uncertain[Entry[K, V]] {
	e, err := r.Entry(key)
	if err != nil {
		return uncertain.Empty[Entry[K, V]]()
	}
	return uncertain.Of(e)
}

// OwnedEntry returns the entry under key including its owner.
func (r *Owned[K, V]) OwnedEntry(key K) (OwnedEntry[K, V], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	slot, ok := r.entries[key]
	if !ok {
		return OwnedEntry[K, V]{}, &RegistryError{Registry: r.name, Err: fmt.Errorf("%w: %v", ErrKeyNotFound, key)}
	}
	return OwnedEntry[K, V]{Key: key, Value: slot.value, Registrator: slot.registrator}, nil
}

// Value returns the value under key, or ErrKeyNotFound.
func (r *Owned[K, V]) Value(key K) (V, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	slot, ok := r.entries[key]
	if !ok {
		var zero V
		return zero, &RegistryError{Registry: r.name, Err: fmt.Errorf("%w: %v", ErrKeyNotFound, key)}
	}
	return slot.value, nil
}

// ValueSafe is the safe form of Value, empty on any failure.
func (r *Owned[K, V]) ValueSafe(key K) uncertain.Uncertain[V] {
	v, err := r.Value(key)
	if err != nil {
		return uncertain.Empty[V]()
	}
	return uncertain.Of(v)
}

// Entries returns a snapshot of all entries in unspecified order.
func (r *Owned[K, V]) Entries() []Entry[K, V] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry[K, V], 0, len(r.entries))
	for k, slot := range r.entries {
		out = append(out, Entry[K, V]{Key: k, Value: slot.value})
	}
	return out
}

// OwnedEntries returns a snapshot of all entries including their owners.
func (r *Owned[K, V]) OwnedEntries() []OwnedEntry[K, V] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]OwnedEntry[K, V], 0, len(r.entries))
	for k, slot := range r.entries {
		out = append(out, OwnedEntry[K, V]{Key: k, Value: slot.value, Registrator: slot.registrator})
	}
	return out
}

// EntriesBy returns a snapshot of the entries owned by registrator.
func (r *Owned[K, V]) EntriesBy(registrator Registrator) []Entry[K, V] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Entry[K, V]
	for k, slot := range r.entries {
		if slot.registrator == registrator {
			out = append(out, Entry[K, V]{Key: k, Value: slot.value})
		}
	}
	return out
}

// Keys returns a snapshot of all keys in unspecified order.
func (r *Owned[K, V]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]K, 0, len(r.entries))
	for k := range r.entries {
		out = append(out, k)
	}
	return out
}

// KeysBy returns a snapshot of the keys owned by registrator.
func (r *Owned[K, V]) KeysBy(registrator Registrator) []K {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []K
	for k, slot := range r.entries {
		if slot.registrator == registrator {
			out = append(out, k)
		}
	}
	return out
}

// Values returns a snapshot of all values in unspecified order.
func (r *Owned[K, V]) Values() []V {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]V, 0, len(r.entries))
	for _, slot := range r.entries {
		out = append(out, slot.value)
	}
	return out
}

// ValuesBy returns a snapshot of the values owned by registrator.
func (r *Owned[K, V]) ValuesBy(registrator Registrator) []V {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []V
	for _, slot := range r.entries {
		if slot.registrator == registrator {
			out = append(out, slot.value)
		}
	}
	return out
}

// Registrators returns the distinct principals currently owning at least one
// entry.
func (r *Owned[K, V]) Registrators() []Registrator {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[Registrator]struct{})
	for _, slot := range r.entries {
		seen[slot.registrator] = struct{}{}
	}
	out := make([]Registrator, 0, len(seen))
	for reg := range seen {
		out = append(out, reg)
	}
	return out
}

// Clear removes all entries unconditionally.
func (r *Owned[K, V]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[K]ownedSlot[V])
}

// ClearBy removes only the entries owned by registrator.
func (r *Owned[K, V]) ClearBy(registrator Registrator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, slot := range r.entries {
		if slot.registrator == registrator {
			delete(r.entries, k)
		}
	}
}

// Size returns the number of registered keys.
func (r *Owned[K, V]) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// SizeBy returns the number of keys owned by registrator.
func (r *Owned[K, V]) SizeBy(registrator Registrator) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, slot := range r.entries {
		if slot.registrator == registrator {
			n++
		}
	}
	return n
}

// IsEmpty reports whether the registry holds no entries.
func (r *Owned[K, V]) IsEmpty() bool {
	return r.Size() == 0
}

// IsEmptyBy reports whether registrator owns no entries.
func (r *Owned[K, V]) IsEmptyBy(registrator Registrator) bool {
	return !r.HasRegistered(registrator)
}

// ForEachEntry applies fn to every entry, stopping at the first failure.
// A callback error is wrapped in an IterationError naming the offending key.
func (r *Owned[K, V]) ForEachEntry(fn func(Entry[K, V]) error) error {
	for _, e := range r.Entries() {
		if err := fn(e); err != nil {
			return &IterationError{Registry: r.name, Key: fmt.Sprint(e.Key), Err: err}
		}
	}
	return nil
}

// ForEachEntryBy applies fn to every entry owned by registrator, stopping at
// the first failure.
func (r *Owned[K, V]) ForEachEntryBy(registrator Registrator, fn func(Entry[K, V]) error) error {
	for _, e := range r.EntriesBy(registrator) {
		if err := fn(e); err != nil {
			return &IterationError{Registry: r.name, Key: fmt.Sprint(e.Key), Err: err}
		}
	}
	return nil
}

// ForEachKey applies fn to every key, stopping at the first failure.
func (r *Owned[K, V]) ForEachKey(fn func(K) error) error {
	for _, k := range r.Keys() {
		if err := fn(k); err != nil {
			return &IterationError{Registry: r.name, Key: fmt.Sprint(k), Err: err}
		}
	}
	return nil
}

// ForEachValue applies fn to every value, stopping at the first failure.
// The IterationError names the key under which the offending value is stored.
func (r *Owned[K, V]) ForEachValue(fn func(V) error) error {
	for _, e := range r.Entries() {
		if err := fn(e.Value); err != nil {
			return &IterationError{Registry: r.name, Key: fmt.Sprint(e.Key), Err: err}
		}
	}
	return nil
}

// ForEach applies fn to every (key, value) pair, stopping at the first
// failure.
func (r *Owned[K, V]) ForEach(fn func(K, V) error) error {
	for _, e := range r.Entries() {
		if err := fn(e.Key, e.Value); err != nil {
			return &IterationError{Registry: r.name, Key: fmt.Sprint(e.Key), Err: err}
		}
	}
	return nil
}

// PrintEntries returns a bracketed listing of all entries including their
// owners, sorted for stable output.
func (r *Owned[K, V]) PrintEntries() string {
	entries := r.OwnedEntries()
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.String())
	}
	sort.Strings(parts)
	return "[" + strings.Join(parts, ", ") + "]"
}

// PrintKeys returns a bracketed listing of all keys, sorted for stable
// output.
func (r *Owned[K, V]) PrintKeys() string {
	keys := r.Keys()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%q", fmt.Sprint(k)))
	}
	sort.Strings(parts)
	return "[" + strings.Join(parts, ", ") + "]"
}
