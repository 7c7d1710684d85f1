package registry

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnedRegisterAs(t *testing.T) {
	r := NewOwned[StringKey, int]("test")
	alice := NewRegistrator("alice")

	require.NoError(t, r.RegisterAs(alice, "key", 1))

	assert.True(t, r.IsRegistered("key"))
	assert.True(t, r.IsRegisteredBy(alice, "key"))
	assert.True(t, r.HasRegistered(alice))

	e, err := r.OwnedEntry("key")
	require.NoError(t, err)
	assert.Equal(t, alice, e.Registrator)
}

func TestOwnedRegisterDefaultsToSystem(t *testing.T) {
	r := NewOwned[StringKey, int]("test")

	require.NoError(t, r.Register("key", 1))

	assert.True(t, r.IsRegisteredBy(SystemRegistrator, "key"))
}

func TestOwnedDuplicateAcrossOwners(t *testing.T) {
	r := NewOwned[StringKey, int]("test")
	alice := NewRegistrator("alice")
	bob := NewRegistrator("bob")

	require.NoError(t, r.RegisterAs(alice, "key", 1))

	// Uniqueness is global: a different owner cannot reuse the key.
	err := r.RegisterAs(bob, "key", 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.True(t, r.IsRegisteredBy(alice, "key"))
	assert.False(t, r.IsRegisteredBy(bob, "key"))
}

func TestOwnedScopedViewsAreDisjoint(t *testing.T) {
	r := NewOwned[StringKey, int]("test")
	alice := NewRegistrator("alice")
	bob := NewRegistrator("bob")

	require.NoError(t, r.RegisterAs(alice, "a1", 1))
	require.NoError(t, r.RegisterAs(alice, "a2", 2))
	require.NoError(t, r.RegisterAs(bob, "b1", 3))

	assert.ElementsMatch(t, []StringKey{"a1", "a2"}, r.KeysBy(alice))
	assert.ElementsMatch(t, []StringKey{"b1"}, r.KeysBy(bob))
	assert.ElementsMatch(t, []int{1, 2}, r.ValuesBy(alice))
	assert.Equal(t, 2, r.SizeBy(alice))
	assert.Equal(t, 1, r.SizeBy(bob))

	// No key appears in two scoped views.
	seen := make(map[StringKey]int)
	for _, k := range r.KeysBy(alice) {
		seen[k]++
	}
	for _, k := range r.KeysBy(bob) {
		seen[k]++
	}
	for k, n := range seen {
		assert.Equal(t, 1, n, "key %q visible to more than one owner", k)
	}

	// Global view is the union.
	assert.Equal(t, 3, r.Size())
	assert.ElementsMatch(t, []StringKey{"a1", "a2", "b1"}, r.Keys())
}

func TestOwnedRegistratorsByName(t *testing.T) {
	r := NewOwned[StringKey, int]("test")

	// Same name, same principal.
	require.NoError(t, r.RegisterAs(NewRegistrator("alice"), "a1", 1))
	require.NoError(t, r.RegisterAs(NewRegistrator("alice"), "a2", 2))

	assert.Equal(t, 2, r.SizeBy(NewRegistrator("alice")))
	assert.Len(t, r.Registrators(), 1)
}

func TestAnonymousRegistratorsAreDistinct(t *testing.T) {
	a := Anonymous()
	b := Anonymous()
	assert.NotEqual(t, a, b)

	r := NewOwned[StringKey, int]("test")
	require.NoError(t, r.RegisterAs(a, "key", 1))

	assert.True(t, r.IsRegisteredBy(a, "key"))
	assert.False(t, r.IsRegisteredBy(b, "key"))
}

func TestOwnedUnregisterIgnoresOwner(t *testing.T) {
	r := NewOwned[StringKey, int]("test")
	alice := NewRegistrator("alice")

	require.NoError(t, r.RegisterAs(alice, "key", 1))
	require.NoError(t, r.Unregister("key"))
	assert.False(t, r.IsRegistered("key"))

	err := r.Unregister("key")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestOwnedValueAndEntry(t *testing.T) {
	r := NewOwned[StringKey, int]("test")
	require.NoError(t, r.Register("key", 42))

	v, err := r.Value("key")
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	e, err := r.Entry("key")
	require.NoError(t, err)
	assert.Equal(t, 42, e.Value)

	_, err = r.Value("missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.True(t, r.ValueSafe("missing").IsMissing())
	assert.True(t, r.EntrySafe("key").IsPresent())
}

func TestOwnedClearBy(t *testing.T) {
	r := NewOwned[StringKey, int]("test")
	alice := NewRegistrator("alice")
	bob := NewRegistrator("bob")

	require.NoError(t, r.RegisterAs(alice, "a1", 1))
	require.NoError(t, r.RegisterAs(bob, "b1", 2))

	r.ClearBy(alice)

	assert.True(t, r.IsEmptyBy(alice))
	assert.False(t, r.HasRegistered(alice))
	assert.True(t, r.IsRegistered("b1"))
	assert.Equal(t, 1, r.Size())
}

func TestOwnedClear(t *testing.T) {
	r := NewOwned[StringKey, int]("test")
	require.NoError(t, r.RegisterAs(NewRegistrator("alice"), "a1", 1))
	require.NoError(t, r.Register("s1", 2))

	r.Clear()

	assert.True(t, r.IsEmpty())
	assert.Empty(t, r.Registrators())
}

func TestOwnedForEachEntryBy(t *testing.T) {
	r := NewOwned[StringKey, int]("test")
	alice := NewRegistrator("alice")
	require.NoError(t, r.RegisterAs(alice, "a1", 1))
	require.NoError(t, r.RegisterAs(NewRegistrator("bob"), "b1", 2))

	var seen []StringKey
	err := r.ForEachEntryBy(alice, func(e Entry[StringKey, int]) error {
		seen = append(seen, e.Key)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []StringKey{"a1"}, seen)
}

func TestOwnedForEachFailFast(t *testing.T) {
	r := NewOwned[StringKey, int]("test")
	require.NoError(t, r.Register("a", 5))

	boom := errors.New("boom")
	err := r.ForEachValue(func(v int) error {
		return boom
	})

	require.Error(t, err)
	var iterErr *IterationError
	require.ErrorAs(t, err, &iterErr)
	assert.Equal(t, "a", iterErr.Key)
	assert.ErrorIs(t, err, boom)
}

func TestOwnedPrintEntriesNamesOwners(t *testing.T) {
	r := NewOwned[StringKey, int]("test")
	require.NoError(t, r.RegisterAs(NewRegistrator("alice"), "a", 1))

	assert.Equal(t, `[[Entry]: "a", registered by "alice"]`, r.PrintEntries())
}

func TestOwnedConcurrentRegisterAs(t *testing.T) {
	r := NewOwned[int, int]("test")
	owners := []Registrator{NewRegistrator("alice"), NewRegistrator("bob"), NewRegistrator("carol")}

	var wg sync.WaitGroup
	n := 300
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(val int) {
			defer wg.Done()
			require.NoError(t, r.RegisterAs(owners[val%len(owners)], val, val))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, n, r.Size())
	total := 0
	for _, owner := range owners {
		total += r.SizeBy(owner)
	}
	assert.Equal(t, n, total)
}
