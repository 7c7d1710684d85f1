package typed

import (
	"encoding/json"
	"fmt"
)

// Adapter marshals and unmarshals Typed values with a discriminator field.
// Obtain one from Registry.Adapter.
type Adapter[T Typed] struct {
	registry *Registry[T]
}

// Marshal serializes v and injects its type name under TypeField. Fails with
// ErrTypePresent when the serialized object already carries that field.
func (a *Adapter[T]) Marshal(v T) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("type registry %q: %w", a.registry.Name(), err)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("type registry %q: value %q did not serialize to an object: %w", a.registry.Name(), v.TypeName(), err)
	}
	// A nil typed value serializes to JSON null, which decodes to a nil map.
	if obj == nil {
		return nil, fmt.Errorf("type registry %q: value of type %T did not serialize to an object", a.registry.Name(), v)
	}
	if _, ok := obj[TypeField]; ok {
		return nil, fmt.Errorf("type registry %q: %w: %q", a.registry.Name(), ErrTypePresent, v.TypeName())
	}

	name, err := json.Marshal(v.TypeName())
	if err != nil {
		return nil, fmt.Errorf("type registry %q: %w", a.registry.Name(), err)
	}
	obj[TypeField] = name

	return json.Marshal(obj)
}

// Unmarshal reads the discriminator from data, resolves the registered
// constructor, and deserializes into a fresh instance. Fails with
// ErrMissingType, ErrBadType, or ErrUnknownType; an unknown-type error names
// the available types for diagnostics.
func (a *Adapter[T]) Unmarshal(data []byte) (T, error) {
	var zero T

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return zero, fmt.Errorf("type registry %q: %w", a.registry.Name(), err)
	}

	raw, ok := obj[TypeField]
	if !ok {
		return zero, fmt.Errorf("type registry %q: %w", a.registry.Name(), ErrMissingType)
	}

	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return zero, fmt.Errorf("type registry %q: %w", a.registry.Name(), ErrBadType)
	}

	t, err := a.registry.Resolve(name)
	if err != nil {
		return zero, fmt.Errorf("type registry %q: %w %q, available types: %s",
			a.registry.Name(), ErrUnknownType, name, a.registry.PrintNames())
	}

	v := t.New()
	if err := json.Unmarshal(data, any(v)); err != nil {
		return zero, fmt.Errorf("type registry %q: decode %q: %w", a.registry.Name(), name, err)
	}
	return v, nil
}
