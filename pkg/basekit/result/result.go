// Package result provides a value-or-error container for deferred error
// handling.
//
// Result carries the outcome of an operation so it can be passed around,
// chained, or collapsed into an uncertain.Uncertain without an immediate
// error check at the call site:
//
//	r := result.From(factory.Create(key, param))
//	r.OnFailure(func(err error) { log.Warn("create failed", "error", err) })
//	widget := r.Or(defaultWidget)
package result

import "github.com/basementdev/basekit/pkg/basekit/uncertain"

// Result holds either a successful value or the error that prevented it.
// The zero value is a successful Result holding T's zero value.
type Result[T any] struct {
	value T
	err   error
}

// Success returns a successful Result holding value.
func Success[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Failure returns a failed Result holding err.
func Failure[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// From adapts a conventional (value, error) return into a Result.
func From[T any](value T, err error) Result[T] {
	if err != nil {
		return Failure[T](err)
	}
	return Success(value)
}

// Successful reports whether the Result holds a value.
func (r Result[T]) Successful() bool {
	return r.err == nil
}

// Get returns the value and error in conventional Go form.
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}

// MustGet returns the value, panicking with the held error on failure.
func (r Result[T]) MustGet() T {
	if r.err != nil {
		panic(r.err)
	}
	return r.value
}

// Err returns the held error, or nil on success.
func (r Result[T]) Err() error {
	return r.err
}

// Or returns the value on success, or def on failure.
func (r Result[T]) Or(def T) T {
	if r.err != nil {
		return def
	}
	return r.value
}

// Safe collapses the Result into an Uncertain, discarding the error detail.
func (r Result[T]) Safe() uncertain.Uncertain[T] {
	if r.err != nil {
		return uncertain.Empty[T]()
	}
	return uncertain.Of(r.value)
}

// ErrSafe returns the held error wrapped in an Uncertain, empty on success.
func (r Result[T]) ErrSafe() uncertain.Uncertain[error] {
	if r.err != nil {
		return uncertain.Of(r.err)
	}
	return uncertain.Empty[error]()
}

// OnSuccess invokes fn with the value on success and returns r for chaining.
func (r Result[T]) OnSuccess(fn func(T)) Result[T] {
	if r.err == nil {
		fn(r.value)
	}
	return r
}

// OnFailure invokes fn with the error on failure and returns r for chaining.
func (r Result[T]) OnFailure(fn func(error)) Result[T] {
	if r.err != nil {
		fn(r.err)
	}
	return r
}

// Map transforms a successful value with fn, passing a failure through
// unchanged.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.err != nil {
		return Failure[U](r.err)
	}
	return Success(fn(r.value))
}

// MapErr transforms the error of a failed Result with fn, passing a success
// through unchanged.
func MapErr[T any](r Result[T], fn func(error) error) Result[T] {
	if r.err != nil {
		return Failure[T](fn(r.err))
	}
	return r
}
