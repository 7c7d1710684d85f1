package registry

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by registry operations. Match with errors.Is;
// they are always wrapped in a RegistryError naming the store.
var (
	// ErrDuplicateKey indicates Register was called with a key that is
	// already present. The existing mapping is left unchanged.
	ErrDuplicateKey = errors.New("key already registered")

	// ErrKeyNotFound indicates the operation referenced an absent key.
	ErrKeyNotFound = errors.New("key not registered")
)

// RegistryError wraps a failure with the name of the registry that raised it.
type RegistryError struct {
	// Registry is the name the store was created with.
	Registry string

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *RegistryError) Error() string {
	return fmt.Sprintf("registry %q: %v", e.Registry, e.Err)
}

// Unwrap returns the underlying error.
func (e *RegistryError) Unwrap() error {
	return e.Err
}

// IterationError reports a callback failure during a ForEach helper.
// Iteration stops at the offending element; Key identifies it.
type IterationError struct {
	// Registry is the name of the store being iterated.
	Registry string

	// Key is the printed form of the key at which the callback failed.
	Key string

	// Err is the error returned by the callback.
	Err error
}

// Error implements the error interface.
func (e *IterationError) Error() string {
	return fmt.Sprintf("registry %q: iteration failed at key %q: %v", e.Registry, e.Key, e.Err)
}

// Unwrap returns the callback's error.
func (e *IterationError) Unwrap() error {
	return e.Err
}
