// Package typed provides polymorphic JSON keyed by a type registry.
//
// A Typed value reports a type name; a Registry maps type names to
// constructors. The registry's Adapter writes the name into a "type"
// discriminator field on marshal and resolves it back to a concrete
// constructor on unmarshal:
//
//	shapes := typed.NewRegistry[Shape]("shapes")
//	_ = shapes.Register(typed.Type[Shape]{Name: "circle", New: func() Shape { return &Circle{} }})
//	_ = shapes.Register(typed.Type[Shape]{Name: "square", New: func() Shape { return &Square{} }})
//
//	data, _ := shapes.Adapter().Marshal(&Circle{Radius: 2})
//	// {"radius":2,"type":"circle"}
//
//	shape, _ := shapes.Adapter().Unmarshal(data) // *Circle
//
// Constructors must return pointer-backed values so unmarshal can populate
// them in place.
package typed

import (
	"errors"
	"fmt"

	"github.com/basementdev/basekit/pkg/basekit/lazy"
	"github.com/basementdev/basekit/pkg/basekit/registry"
	"github.com/basementdev/basekit/pkg/basekit/uncertain"
)

// TypeField is the JSON discriminator field.
const TypeField = "type"

// Sentinel errors reported by the adapter. Match with errors.Is.
var (
	// ErrMissingType indicates the JSON object carries no discriminator.
	ErrMissingType = errors.New("missing type identifier")

	// ErrBadType indicates the discriminator is not a JSON string.
	ErrBadType = errors.New("type identifier must be a string")

	// ErrUnknownType indicates the discriminator names no registered type.
	ErrUnknownType = errors.New("unknown type")

	// ErrTypePresent indicates the value being marshaled already carries a
	// discriminator field.
	ErrTypePresent = errors.New("object already contains a type identifier")
)

// Typed is a value that knows its registered type name.
type Typed interface {
	TypeName() string
}

// Type binds a registered name to a constructor producing a fresh value to
// unmarshal into.
type Type[T Typed] struct {
	// Name is the discriminator written to and read from JSON.
	Name string

	// New produces an empty instance; it must return a pointer-backed value.
	New func() T
}

// Registry maps type names to constructors. It is backed by a plain
// registry.Registry, so duplicate names are rejected and lookups follow the
// usual throwing/safe split.
type Registry[T Typed] struct {
	reg     *registry.Registry[registry.StringKey, Type[T]]
	adapter *lazy.Sync[*Adapter[T]]
}

// NewRegistry creates an empty type registry with the given diagnostic name.
func NewRegistry[T Typed](name string) *Registry[T] {
	r := &Registry[T]{
		reg: registry.New[registry.StringKey, Type[T]](name),
	}
	r.adapter = lazy.NewSync(func() (*Adapter[T], error) {
		return &Adapter[T]{registry: r}, nil
	})
	return r
}

// Name returns the registry's diagnostic name.
func (r *Registry[T]) Name() string {
	return r.reg.Name()
}

// Register adds a type. Fails on an empty name, a nil constructor, or a
// duplicate name.
func (r *Registry[T]) Register(t Type[T]) error {
	if t.Name == "" {
		return fmt.Errorf("type registry %q: type name is empty", r.reg.Name())
	}
	if t.New == nil {
		return fmt.Errorf("type registry %q: constructor for %q is nil", r.reg.Name(), t.Name)
	}
	return r.reg.Register(registry.StringKey(t.Name), t)
}

// MustRegister adds a type, panicking on error. Intended for package-init
// registration of a fixed type set.
func (r *Registry[T]) MustRegister(t Type[T]) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

// Resolve returns the type registered under name.
func (r *Registry[T]) Resolve(name string) (Type[T], error) {
	return r.reg.Value(registry.StringKey(name))
}

// ResolveSafe is the safe form of Resolve, empty on any failure.
func (r *Registry[T]) ResolveSafe(name string) uncertain.Uncertain[Type[T]] {
	return r.reg.ValueSafe(registry.StringKey(name))
}

// IsRegistered reports whether name identifies a type.
func (r *Registry[T]) IsRegistered(name string) bool {
	return r.reg.IsRegistered(registry.StringKey(name))
}

// Names returns the registered type names in unspecified order.
func (r *Registry[T]) Names() []string {
	keys := r.reg.Keys()
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, string(k))
	}
	return out
}

// PrintNames returns a stable bracketed listing of the registered names.
func (r *Registry[T]) PrintNames() string {
	return r.reg.PrintKeys()
}

// Adapter returns the registry's JSON adapter. The adapter is memoized on
// the registry itself, so repeated calls return the same instance and the
// cache's lifetime follows the registry rather than the process.
func (r *Registry[T]) Adapter() *Adapter[T] {
	a, _ := r.adapter.Get()
	return a
}
