package lazy

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestLazyComputesOnce(t *testing.T) {
	calls := 0
	l := New(func() (int, error) {
		calls++
		return 42, nil
	})

	assert.False(t, l.Initialized())

	v, err := l.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.True(t, l.Initialized())

	v, err = l.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)
}

func TestLazyRetriesAfterFailure(t *testing.T) {
	calls := 0
	l := New(func() (int, error) {
		calls++
		if calls == 1 {
			return 0, errBoom
		}
		return 42, nil
	})

	_, err := l.Get()
	assert.ErrorIs(t, err, errBoom)
	assert.False(t, l.Initialized())

	v, err := l.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 2, calls)
}

func TestLazyGetSafe(t *testing.T) {
	good := New(func() (int, error) { return 42, nil })
	v, ok := good.GetSafe().Get()
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	bad := New(func() (int, error) { return 0, errBoom })
	assert.True(t, bad.GetSafe().IsMissing())
}

func TestSyncComputesOnceUnderContention(t *testing.T) {
	var calls atomic.Int32
	l := NewSync(func() (int, error) {
		calls.Add(1)
		return 42, nil
	})

	var wg sync.WaitGroup
	for c := 0; c < 50; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := l.Get()
			require.NoError(t, err)
			assert.Equal(t, 42, v)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, l.Initialized())
}

func TestSyncRetriesAfterFailure(t *testing.T) {
	var calls atomic.Int32
	l := NewSync(func() (int, error) {
		if calls.Add(1) == 1 {
			return 0, errBoom
		}
		return 42, nil
	})

	_, err := l.Get()
	assert.ErrorIs(t, err, errBoom)
	assert.False(t, l.Initialized())

	v, err := l.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestMutableSet(t *testing.T) {
	l := NewMutable(func() (int, error) { return 42, nil })

	l.Set(7)
	assert.True(t, l.Initialized())

	v, err := l.Get()
	require.NoError(t, err)
	assert.Equal(t, 7, v, "Set preempts the supplier")
}

func TestMutableInvalidate(t *testing.T) {
	calls := 0
	l := NewMutable(func() (int, error) {
		calls++
		return calls, nil
	})

	v, err := l.Get()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	l.Invalidate()
	assert.False(t, l.Initialized())

	v, err = l.Get()
	require.NoError(t, err)
	assert.Equal(t, 2, v, "Invalidate forces recomputation")
}

func TestSyncMutable(t *testing.T) {
	var calls atomic.Int32
	l := NewSyncMutable(func() (int, error) {
		calls.Add(1)
		return 42, nil
	})

	var wg sync.WaitGroup
	for c := 0; c < 50; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := l.Get()
			require.NoError(t, err)
			assert.Equal(t, 42, v)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), calls.Load())

	l.Set(7)
	v, err := l.Get()
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	l.Invalidate()
	_, err = l.Get()
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}
