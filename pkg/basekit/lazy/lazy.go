// Package lazy provides one-time initialization wrappers.
//
// Four flavors cover the combinations of thread safety and mutability:
//
//   - New: single-threaded, computes once, retries after a failed attempt
//   - NewSync: safe for concurrent use, at most one successful computation
//   - NewMutable: single-threaded, value can be replaced or invalidated
//   - NewSyncMutable: concurrent and mutable
//
// The Sync variants use the double-checked pattern: an atomic fast path
// followed by a re-check under the mutex, so the supplier runs at most once
// even under contention. This is the pattern callers should apply around
// Manager.Compute when deploying the registry core concurrently.
package lazy

import (
	"sync"
	"sync/atomic"

	"github.com/basementdev/basekit/pkg/basekit/uncertain"
)

// Lazy computes its value on first use. Not safe for concurrent use.
type Lazy[T any] struct {
	supplier func() (T, error)
	value    T
}

// New returns a Lazy that obtains its value from supplier on first Get.
// The supplier is released after a successful computation; a failed
// computation is retried on the next Get.
func New[T any](supplier func() (T, error)) *Lazy[T] {
	return &Lazy[T]{supplier: supplier}
}

// Get returns the computed value, invoking the supplier if needed.
func (l *Lazy[T]) Get() (T, error) {
	if l.supplier != nil {
		v, err := l.supplier()
		if err != nil {
			var zero T
			return zero, err
		}
		l.value = v
		l.supplier = nil
	}
	return l.value, nil
}

// GetSafe returns the computed value as an Uncertain, empty on failure.
func (l *Lazy[T]) GetSafe() uncertain.Uncertain[T] {
	v, err := l.Get()
	if err != nil {
		return uncertain.Empty[T]()
	}
	return uncertain.Of(v)
}

// Initialized reports whether the value has been computed.
func (l *Lazy[T]) Initialized() bool {
	return l.supplier == nil
}

// Sync is a Lazy safe for concurrent use.
type Sync[T any] struct {
	mu       sync.Mutex
	done     atomic.Bool
	supplier func() (T, error)
	value    T
}

// NewSync returns a concurrent Lazy. The supplier runs at most once
// successfully; concurrent callers during the first computation block until
// it completes. A failed computation is retried by a later caller.
func NewSync[T any](supplier func() (T, error)) *Sync[T] {
	return &Sync[T]{supplier: supplier}
}

// Get returns the computed value, invoking the supplier if needed.
func (l *Sync[T]) Get() (T, error) {
	if l.done.Load() {
		return l.value, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Re-check after acquiring the lock.
	if l.done.Load() {
		return l.value, nil
	}

	v, err := l.supplier()
	if err != nil {
		var zero T
		return zero, err
	}
	l.value = v
	l.supplier = nil
	l.done.Store(true)
	return l.value, nil
}

// GetSafe returns the computed value as an Uncertain, empty on failure.
func (l *Sync[T]) GetSafe() uncertain.Uncertain[T] {
	v, err := l.Get()
	if err != nil {
		return uncertain.Empty[T]()
	}
	return uncertain.Of(v)
}

// Initialized reports whether the value has been computed.
func (l *Sync[T]) Initialized() bool {
	return l.done.Load()
}

// Mutable is a Lazy whose value can be replaced or cleared.
// Not safe for concurrent use.
type Mutable[T any] struct {
	supplier func() (T, error)
	value    T
	has      bool
}

// NewMutable returns a mutable Lazy. Unlike New, the supplier is retained so
// the value can be recomputed after Invalidate.
func NewMutable[T any](supplier func() (T, error)) *Mutable[T] {
	return &Mutable[T]{supplier: supplier}
}

// Get returns the current value, invoking the supplier if none is held.
func (l *Mutable[T]) Get() (T, error) {
	if !l.has {
		v, err := l.supplier()
		if err != nil {
			var zero T
			return zero, err
		}
		l.value = v
		l.has = true
	}
	return l.value, nil
}

// GetSafe returns the current value as an Uncertain, empty on failure.
func (l *Mutable[T]) GetSafe() uncertain.Uncertain[T] {
	v, err := l.Get()
	if err != nil {
		return uncertain.Empty[T]()
	}
	return uncertain.Of(v)
}

// Initialized reports whether a value is currently held.
func (l *Mutable[T]) Initialized() bool {
	return l.has
}

// Set replaces the held value.
func (l *Mutable[T]) Set(value T) {
	l.value = value
	l.has = true
}

// Invalidate clears the held value; the next Get recomputes it.
func (l *Mutable[T]) Invalidate() {
	var zero T
	l.value = zero
	l.has = false
}

// SyncMutable is a Mutable safe for concurrent use.
type SyncMutable[T any] struct {
	mu       sync.Mutex
	supplier func() (T, error)
	value    T
	has      bool
}

// NewSyncMutable returns a concurrent mutable Lazy.
func NewSyncMutable[T any](supplier func() (T, error)) *SyncMutable[T] {
	return &SyncMutable[T]{supplier: supplier}
}

// Get returns the current value, invoking the supplier if none is held.
func (l *SyncMutable[T]) Get() (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.has {
		v, err := l.supplier()
		if err != nil {
			var zero T
			return zero, err
		}
		l.value = v
		l.has = true
	}
	return l.value, nil
}

// GetSafe returns the current value as an Uncertain, empty on failure.
func (l *SyncMutable[T]) GetSafe() uncertain.Uncertain[T] {
	v, err := l.Get()
	if err != nil {
		return uncertain.Empty[T]()
	}
	return uncertain.Of(v)
}

// Initialized reports whether a value is currently held.
func (l *SyncMutable[T]) Initialized() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.has
}

// Set replaces the held value.
func (l *SyncMutable[T]) Set(value T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.value = value
	l.has = true
}

// Invalidate clears the held value; the next Get recomputes it.
func (l *SyncMutable[T]) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	var zero T
	l.value = zero
	l.has = false
}
