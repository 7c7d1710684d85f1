package basekit

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by manager operations. Match with errors.Is;
// they are always wrapped in a ManagerError naming the manager.
var (
	// ErrAlreadyExists indicates Compute was called for a registry key that
	// is already managed.
	ErrAlreadyExists = errors.New("instance already exists")

	// ErrInstanceNotFound indicates Remove referenced a registry key with
	// no managed instance.
	ErrInstanceNotFound = errors.New("instance does not exist")

	// ErrRecipeNotFound indicates the factory key has no registered recipe.
	ErrRecipeNotFound = errors.New("factory recipe does not exist")

	// ErrWrongType indicates a stored instance was not assignable to the
	// type the caller requested.
	ErrWrongType = errors.New("instance has wrong type")
)

// ManagerError wraps a failure with the name of the manager that raised it.
// The cause chain is preserved: errors.Is matches the manager sentinels as
// well as the registry and factory sentinels underneath.
type ManagerError struct {
	// Manager is the name the manager was created with.
	Manager string

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *ManagerError) Error() string {
	return fmt.Sprintf("manager %q: %v", e.Manager, e.Err)
}

// Unwrap returns the underlying error.
func (e *ManagerError) Unwrap() error {
	return e.Err
}
