// Package factory provides named stores of construction strategies.
//
// A Factory maps keys to recipes. A recipe is a function from an optional
// parameter object to a value; invoking the same key twice may produce
// different instances, as the factory performs no caching. Callers that want
// at-most-one instance per key compose a Factory with a registry via the
// basekit Manager.
//
// # Basic Usage
//
//	widgets := factory.New[registry.StringKey, *Widget]("widgets")
//
//	_ = widgets.Register("round", func(param any) (*Widget, error) {
//	    return &Widget{Shape: "round"}, nil
//	})
//
//	w, err := widgets.CreateDefault("round")
//
// Recipes that take configuration receive it as their parameter; Configured
// adapts a recipe written against config.Config:
//
//	_ = widgets.Register("sized", factory.Configured(func(cfg config.Config) (*Widget, error) {
//	    return &Widget{Size: cfg.Int("size", 1)}, nil
//	}))
//
//	w, err := widgets.Create("sized", config.New(map[string]any{"size": 3}))
package factory

import (
	"fmt"
	"sync"

	"github.com/basementdev/basekit/pkg/basekit/config"
	"github.com/basementdev/basekit/pkg/basekit/uncertain"
)

// Recipe is a registered construction strategy. The parameter is
// NoParameter{} when the caller requested a default construction.
type Recipe[V any] func(param any) (V, error)

// NoParameter is the sentinel parameter passed to recipes invoked without
// configuration.
type NoParameter struct{}

// Factory is a named keyed store of recipes with the same uniqueness
// semantics as a registry: registering a present key or unregistering an
// absent one fails. Safe for concurrent use.
type Factory[K comparable, V any] struct {
	name    string
	mu      sync.RWMutex
	recipes map[K]Recipe[V]
}

// New creates an empty factory. The name appears in every error the factory
// raises.
func New[K comparable, V any](name string) *Factory[K, V] {
	return &Factory[K, V]{
		name:    name,
		recipes: make(map[K]Recipe[V]),
	}
}

// Name returns the factory's diagnostic name.
func (f *Factory[K, V]) Name() string {
	return f.name
}

// Register stores recipe under key. Fails with ErrDuplicateKey when the key
// already identifies a recipe, and with ErrNilRecipe when recipe is nil.
func (f *Factory[K, V]) Register(key K, recipe Recipe[V]) error {
	if recipe == nil {
		return &FactoryError{Factory: f.name, Err: fmt.Errorf("%w: %v", ErrNilRecipe, key)}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.recipes[key]; ok {
		return &FactoryError{Factory: f.name, Err: fmt.Errorf("%w: %v", ErrDuplicateKey, key)}
	}
	f.recipes[key] = recipe
	return nil
}

// Unregister removes the recipe under key. Fails with ErrUnknownKey when the
// key is absent.
func (f *Factory[K, V]) Unregister(key K) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.recipes[key]; !ok {
		return &FactoryError{Factory: f.name, Err: fmt.Errorf("%w: %v", ErrUnknownKey, key)}
	}
	delete(f.recipes, key)
	return nil
}

// IsRegistered reports whether key identifies a recipe.
func (f *Factory[K, V]) IsRegistered(key K) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.recipes[key]
	return ok
}

// Keys returns a snapshot of all recipe keys in unspecified order.
func (f *Factory[K, V]) Keys() []K {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]K, 0, len(f.recipes))
	for k := range f.recipes {
		out = append(out, k)
	}
	return out
}

// Size returns the number of registered recipes.
func (f *Factory[K, V]) Size() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.recipes)
}

// Clear removes all recipes unconditionally.
func (f *Factory[K, V]) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recipes = make(map[K]Recipe[V])
}

// Create invokes the recipe under key with param. Fails with ErrUnknownKey
// when no recipe is registered, and wraps a recipe failure (or panic) in a
// ConstructionError preserving the cause.
func (f *Factory[K, V]) Create(key K, param any) (V, error) {
	f.mu.RLock()
	recipe, ok := f.recipes[key]
	f.mu.RUnlock()

	var zero V
	if !ok {
		return zero, &FactoryError{Factory: f.name, Err: fmt.Errorf("%w: %v", ErrUnknownKey, key)}
	}

	v, err := invoke(recipe, param)
	if err != nil {
		return zero, &ConstructionError{Factory: f.name, Key: fmt.Sprint(key), Err: err}
	}
	return v, nil
}

// invoke runs the recipe outside the factory lock, converting a panic into
// an error so a misbehaving recipe cannot take down the caller.
func invoke[V any](recipe Recipe[V], param any) (v V, err error) {
	defer func() {
		if p := recover(); p != nil {
			var zero V
			v, err = zero, fmt.Errorf("recipe panicked: %v", p)
		}
	}()
	return recipe(param)
}

// CreateDefault invokes the recipe under key with the NoParameter sentinel.
func (f *Factory[K, V]) CreateDefault(key K) (V, error) {
	return f.Create(key, NoParameter{})
}

// CreateSafe is the safe form of Create, empty on any failure.
func (f *Factory[K, V]) CreateSafe(key K, param any) uncertain.Uncertain[V] {
	v, err := f.Create(key, param)
	if err != nil {
		return uncertain.Empty[V]()
	}
	return uncertain.Of(v)
}

// CreateDefaultSafe is the safe form of CreateDefault.
func (f *Factory[K, V]) CreateDefaultSafe(key K) uncertain.Uncertain[V] {
	return f.CreateSafe(key, NoParameter{})
}

// CreateAs invokes the recipe under key and narrows the produced value to
// V2. Fails with ErrTypeMismatch when the value is not a V2. Declared at
// package level because Go methods cannot introduce type parameters.
func CreateAs[V2 any, K comparable, V any](f *Factory[K, V], key K, param any) (V2, error) {
	var zero V2
	v, err := f.Create(key, param)
	if err != nil {
		return zero, err
	}
	narrowed, ok := any(v).(V2)
	if !ok {
		return zero, &TypeMismatchError{
			Owner: f.name,
			Key:   fmt.Sprint(key),
			Want:  fmt.Sprintf("%T", zero),
			Got:   fmt.Sprintf("%T", v),
		}
	}
	return narrowed, nil
}

// CreateDefaultAs is CreateAs with the NoParameter sentinel.
func CreateDefaultAs[V2 any, K comparable, V any](f *Factory[K, V], key K) (V2, error) {
	return CreateAs[V2](f, key, NoParameter{})
}

// CreateAsSafe is the safe form of CreateAs, empty on any failure.
func CreateAsSafe[V2 any, K comparable, V any](f *Factory[K, V], key K, param any) uncertain.Uncertain[V2] {
	v, err := CreateAs[V2](f, key, param)
	if err != nil {
		return uncertain.Empty[V2]()
	}
	return uncertain.Of(v)
}

// Configured adapts a recipe written against config.Config. The NoParameter
// sentinel and raw map[string]any parameters are converted to an empty and a
// wrapped Config respectively; any other parameter type is rejected.
func Configured[V any](fn func(config.Config) (V, error)) Recipe[V] {
	return func(param any) (V, error) {
		switch p := param.(type) {
		case config.Config:
			return fn(p)
		case map[string]any:
			return fn(config.New(p))
		case NoParameter:
			return fn(config.None())
		default:
			var zero V
			return zero, fmt.Errorf("unsupported parameter type %T, want config.Config", param)
		}
	}
}
