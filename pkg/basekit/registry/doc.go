// Package registry provides named keyed stores with strict uniqueness
// semantics.
//
// Unlike a plain map, a Registry never silently overwrites: registering a key
// that is already present fails with ErrDuplicateKey, and unregistering an
// absent key fails with ErrKeyNotFound. Every failure is wrapped so the error
// message names the registry that raised it.
//
// # Basic Usage
//
//	widgets := registry.New[registry.StringKey, *Widget]("widgets")
//
//	if err := widgets.Register("a", w); err != nil {
//	    return err
//	}
//
//	w, err := widgets.Value("a")        // throwing form
//	maybe := widgets.ValueSafe("a")     // safe form, empty on any failure
//
// # Ownership
//
// Owned adds a second axis: every entry records the Registrator (an opaque
// principal) that registered it, and queries can be scoped to one principal:
//
//	reg := registry.NewOwned[registry.StringKey, *Widget]("widgets")
//	mod := registry.NewRegistrator("my-mod")
//
//	_ = reg.RegisterAs(mod, "a", w)
//	mine := reg.KeysBy(mod) // only entries registered by mod
//
// # Concurrency
//
// All stores guard their backing map with a sync.RWMutex, so individual
// operations are safe for concurrent use. Check-then-act sequences built on
// top of them (such as Manager.Compute) are not atomic; see the basekit
// package documentation.
//
// Iteration order of Entries, Keys, Values and the ForEach helpers is
// unspecified. Callers must not depend on it.
package registry
