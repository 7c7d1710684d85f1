// Package uncertain provides a generic presence-or-absence container.
//
// Uncertain is the return type of every "safe" API variant in basekit: an
// operation that can fail returns its throwing form as (value, error) and its
// safe form as an Uncertain that is empty on any failure. Callers using the
// safe family lose the distinction between failure causes by design.
//
// # Basic Usage
//
//	v := registry.ValueSafe(key)
//	if got, ok := v.Get(); ok {
//	    use(got)
//	}
//
//	port := cfg.PortSafe().OrElse(8080)
package uncertain

import "fmt"

// Uncertain holds either a value or nothing. The zero value is empty.
type Uncertain[T any] struct {
	value   T
	present bool
}

// Of returns an Uncertain containing value.
func Of[T any](value T) Uncertain[T] {
	return Uncertain[T]{value: value, present: true}
}

// OfPtr returns an Uncertain containing *p, or an empty Uncertain if p is nil.
func OfPtr[T any](p *T) Uncertain[T] {
	if p == nil {
		return Empty[T]()
	}
	return Of(*p)
}

// Empty returns an Uncertain containing nothing.
func Empty[T any]() Uncertain[T] {
	return Uncertain[T]{}
}

// IsPresent reports whether a value is present.
func (u Uncertain[T]) IsPresent() bool {
	return u.present
}

// IsMissing reports whether the container is empty.
func (u Uncertain[T]) IsMissing() bool {
	return !u.present
}

// Get returns the contained value and whether it is present.
// When empty, the returned value is the zero value of T.
func (u Uncertain[T]) Get() (T, bool) {
	return u.value, u.present
}

// MustGet returns the contained value, panicking if the container is empty.
func (u Uncertain[T]) MustGet() T {
	if !u.present {
		panic("uncertain: value missing")
	}
	return u.value
}

// OrElse returns the contained value, or def when empty.
func (u Uncertain[T]) OrElse(def T) T {
	if !u.present {
		return def
	}
	return u.value
}

// OrElseGet returns the contained value, or the result of supplier when empty.
// The supplier is not invoked when a value is present.
func (u Uncertain[T]) OrElseGet(supplier func() T) T {
	if !u.present {
		return supplier()
	}
	return u.value
}

// Filter returns u unchanged if a value is present and pred accepts it,
// otherwise an empty Uncertain.
func (u Uncertain[T]) Filter(pred func(T) bool) Uncertain[T] {
	if u.present && pred(u.value) {
		return u
	}
	return Empty[T]()
}

// IfPresent invokes fn with the contained value if one is present.
func (u Uncertain[T]) IfPresent(fn func(T)) {
	if u.present {
		fn(u.value)
	}
}

// IfPresentOrElse invokes fn with the contained value if one is present,
// otherwise invokes els.
func (u Uncertain[T]) IfPresentOrElse(fn func(T), els func()) {
	if u.present {
		fn(u.value)
	} else {
		els()
	}
}

// String returns a debug representation.
func (u Uncertain[T]) String() string {
	if !u.present {
		return "Uncertain(empty)"
	}
	return fmt.Sprintf("Uncertain(%v)", u.value)
}

// Map transforms the contained value with fn, returning an empty Uncertain
// when u is empty.
func Map[T, U any](u Uncertain[T], fn func(T) U) Uncertain[U] {
	if v, ok := u.Get(); ok {
		return Of(fn(v))
	}
	return Empty[U]()
}

// FlatMap transforms the contained value with fn, which itself returns an
// Uncertain. Returns an empty Uncertain when u is empty.
func FlatMap[T, U any](u Uncertain[T], fn func(T) Uncertain[U]) Uncertain[U] {
	if v, ok := u.Get(); ok {
		return fn(v)
	}
	return Empty[U]()
}
