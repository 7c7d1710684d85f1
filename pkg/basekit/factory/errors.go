package factory

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by factory operations. Match with errors.Is.
var (
	// ErrDuplicateKey indicates Register was called with a key that
	// already identifies a recipe.
	ErrDuplicateKey = errors.New("recipe already registered")

	// ErrUnknownKey indicates the operation referenced a key with no
	// registered recipe.
	ErrUnknownKey = errors.New("no recipe registered")

	// ErrNilRecipe indicates Register was called with a nil recipe.
	ErrNilRecipe = errors.New("recipe is nil")

	// ErrTypeMismatch indicates a produced value was not assignable to the
	// requested narrower type. Carried by TypeMismatchError.
	ErrTypeMismatch = errors.New("type mismatch")
)

// FactoryError wraps a failure with the name of the factory that raised it.
type FactoryError struct {
	// Factory is the name the factory was created with.
	Factory string

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *FactoryError) Error() string {
	return fmt.Sprintf("factory %q: %v", e.Factory, e.Err)
}

// Unwrap returns the underlying error.
func (e *FactoryError) Unwrap() error {
	return e.Err
}

// ConstructionError indicates a recipe raised an error (or panicked); the
// original cause is preserved.
type ConstructionError struct {
	// Factory is the name of the factory whose recipe failed.
	Factory string

	// Key is the printed form of the recipe key.
	Key string

	// Err is the recipe's error.
	Err error
}

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	return fmt.Sprintf("factory %q: construction failed for key %q: %v", e.Factory, e.Key, e.Err)
}

// Unwrap returns the recipe's error.
func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// TypeMismatchError indicates a produced or stored value was not assignable
// to the type the caller requested.
type TypeMismatchError struct {
	// Owner is the name of the factory or manager that raised the error.
	Owner string

	// Key is the printed form of the key involved.
	Key string

	// Want and Got are printed type names for diagnostics.
	Want string
	Got  string
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: value for key %q is %s, want %s", e.Owner, e.Key, e.Got, e.Want)
}

// Unwrap returns ErrTypeMismatch so callers can match with errors.Is.
func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}
