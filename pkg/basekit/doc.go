/*
Package basekit composes keyed registries and factories into managers.

# Overview

basekit is a small toolkit for ownership-aware keyed storage, pluggable
construction, and their composition. The subpackages provide the pieces:

  - registry: named keyed stores with strict uniqueness (plus an owned
    variant that records which principal registered each entry)
  - factory: named stores of construction recipes
  - uncertain: the presence-or-absence container returned by "safe" APIs
  - result: value-or-error container for deferred error handling
  - lazy: one-time initialization wrappers
  - config: the typed parameter object passed to recipes
  - typed: polymorphic JSON keyed by a type registry
  - observability: slog and OpenTelemetry hooks

This package provides the Manager, which joins one registry store and one
factory so that a single call looks up an instance and constructs it on
absence.

# Basic Usage

	store := registry.New[registry.StringKey, *Widget]("widgets")
	recipes := factory.New[registry.StringKey, *Widget]("widget-recipes")

	_ = recipes.Register("round", func(param any) (*Widget, error) {
	    return &Widget{Shape: "round"}, nil
	})

	mgr := basekit.NewShared[registry.StringKey, *Widget]("widgets", store, recipes)

	ctx := context.Background()
	w, err := mgr.Compute(ctx, "a", "round")        // constructs and registers
	w, err = mgr.ComputeIfAbsent(ctx, "a", "round") // returns the stored instance
	w, err = mgr.Remove(ctx, "a")                   // unregisters and returns it

Every operation has a safe twin (ComputeSafe, RemoveSafe, ...) that collapses
all failure kinds into an empty uncertain.Uncertain.

# Error Handling

Failures carry the manager's name and unwrap to a sentinel describing the
kind: ErrAlreadyExists, ErrRecipeNotFound, ErrInstanceNotFound, ErrWrongType,
plus the registry and factory sentinels from the composed stores. Match with
errors.Is:

	_, err := mgr.Compute(ctx, "a", "round")
	if errors.Is(err, basekit.ErrAlreadyExists) {
	    // key "a" is already managed
	}

# Concurrency

The composed stores lock internally, but a manager operation is a
check-then-act sequence across two stores and is NOT atomic: under concurrent
use two Compute calls for the same key can both construct, with one failing
to register. Callers needing the at-most-one-construction guarantee must
synchronize externally, for example with the double-checked pattern shown in
the lazy package.

If construction succeeds and the subsequent registration fails, the
constructed instance is discarded without any disposal hook. Callers whose
values hold resources must guard against this themselves.
*/
package basekit
