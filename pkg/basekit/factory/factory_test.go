package factory

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basementdev/basekit/pkg/basekit/config"
)

type widget struct {
	shape string
	size  int
}

type gadget struct {
	widget
	battery int
}

func newTestFactory(t *testing.T) *Factory[string, *widget] {
	t.Helper()
	f := New[string, *widget]("widgets")
	require.NoError(t, f.Register("round", func(param any) (*widget, error) {
		return &widget{shape: "round"}, nil
	}))
	return f
}

func TestRegisterAndCreate(t *testing.T) {
	f := newTestFactory(t)

	w, err := f.CreateDefault("round")
	require.NoError(t, err)
	assert.Equal(t, "round", w.shape)
}

func TestCreateProducesFreshInstances(t *testing.T) {
	f := newTestFactory(t)

	a, err := f.CreateDefault("round")
	require.NoError(t, err)
	b, err := f.CreateDefault("round")
	require.NoError(t, err)

	assert.NotSame(t, a, b)
}

func TestCreatePassesParameter(t *testing.T) {
	f := New[string, *widget]("widgets")
	require.NoError(t, f.Register("sized", func(param any) (*widget, error) {
		size, ok := param.(int)
		if !ok {
			return nil, errors.New("want int parameter")
		}
		return &widget{size: size}, nil
	}))

	w, err := f.Create("sized", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, w.size)
}

func TestCreateDefaultPassesSentinel(t *testing.T) {
	f := New[string, any]("params")
	require.NoError(t, f.Register("echo", func(param any) (any, error) {
		return param, nil
	}))

	v, err := f.CreateDefault("echo")
	require.NoError(t, err)
	assert.Equal(t, NoParameter{}, v)
}

func TestRegisterDuplicateFails(t *testing.T) {
	f := newTestFactory(t)

	err := f.Register("round", func(param any) (*widget, error) {
		return &widget{}, nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateKey)

	var facErr *FactoryError
	require.ErrorAs(t, err, &facErr)
	assert.Equal(t, "widgets", facErr.Factory)
}

func TestRegisterNilRecipeFails(t *testing.T) {
	f := New[string, *widget]("widgets")

	err := f.Register("round", nil)
	assert.ErrorIs(t, err, ErrNilRecipe)
	assert.False(t, f.IsRegistered("round"))
}

func TestUnregister(t *testing.T) {
	f := newTestFactory(t)

	require.NoError(t, f.Unregister("round"))
	assert.False(t, f.IsRegistered("round"))

	err := f.Unregister("round")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestCreateUnknownKey(t *testing.T) {
	f := New[string, *widget]("widgets")

	_, err := f.CreateDefault("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestCreateRecipeFailure(t *testing.T) {
	f := New[string, *widget]("widgets")
	cause := errors.New("out of clay")
	require.NoError(t, f.Register("broken", func(param any) (*widget, error) {
		return nil, cause
	}))

	_, err := f.CreateDefault("broken")
	require.Error(t, err)

	var conErr *ConstructionError
	require.ErrorAs(t, err, &conErr)
	assert.Equal(t, "widgets", conErr.Factory)
	assert.Equal(t, "broken", conErr.Key)
	assert.ErrorIs(t, err, cause)
}

func TestCreateRecoversPanic(t *testing.T) {
	f := New[string, *widget]("widgets")
	require.NoError(t, f.Register("explosive", func(param any) (*widget, error) {
		panic("kaboom")
	}))

	_, err := f.CreateDefault("explosive")
	require.Error(t, err)

	var conErr *ConstructionError
	require.ErrorAs(t, err, &conErr)
	assert.Contains(t, conErr.Err.Error(), "kaboom")
}

func TestCreateSafe(t *testing.T) {
	f := newTestFactory(t)

	assert.True(t, f.CreateDefaultSafe("round").IsPresent())
	assert.True(t, f.CreateDefaultSafe("missing").IsMissing())
	assert.True(t, f.CreateSafe("round", NoParameter{}).IsPresent())
}

func TestCreateAs(t *testing.T) {
	f := New[string, any]("things")
	require.NoError(t, f.Register("gadget", func(param any) (any, error) {
		return &gadget{battery: 90}, nil
	}))
	require.NoError(t, f.Register("widget", func(param any) (any, error) {
		return &widget{}, nil
	}))

	g, err := CreateDefaultAs[*gadget](f, "gadget")
	require.NoError(t, err)
	assert.Equal(t, 90, g.battery)

	_, err = CreateDefaultAs[*gadget](f, "widget")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	var misErr *TypeMismatchError
	require.ErrorAs(t, err, &misErr)
	assert.Equal(t, "things", misErr.Owner)
	assert.Equal(t, "widget", misErr.Key)
}

func TestCreateAsSafe(t *testing.T) {
	f := New[string, any]("things")
	require.NoError(t, f.Register("gadget", func(param any) (any, error) {
		return &gadget{}, nil
	}))

	assert.True(t, CreateAsSafe[*gadget](f, "gadget", NoParameter{}).IsPresent())
	assert.True(t, CreateAsSafe[*widget](f, "gadget", NoParameter{}).IsMissing())
}

func TestConfigured(t *testing.T) {
	recipe := Configured(func(cfg config.Config) (*widget, error) {
		return &widget{size: cfg.Int("size", 1)}, nil
	})

	w, err := recipe(config.New(map[string]any{"size": 3}))
	require.NoError(t, err)
	assert.Equal(t, 3, w.size)

	w, err = recipe(map[string]any{"size": 5})
	require.NoError(t, err)
	assert.Equal(t, 5, w.size)

	w, err = recipe(NoParameter{})
	require.NoError(t, err)
	assert.Equal(t, 1, w.size, "sentinel parameter yields the default config")

	_, err = recipe("bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported parameter type")
}

func TestKeysAndSize(t *testing.T) {
	f := newTestFactory(t)
	require.NoError(t, f.Register("square", func(param any) (*widget, error) {
		return &widget{shape: "square"}, nil
	}))

	assert.ElementsMatch(t, []string{"round", "square"}, f.Keys())
	assert.Equal(t, 2, f.Size())

	f.Clear()
	assert.Equal(t, 0, f.Size())
}

func TestConcurrentCreate(t *testing.T) {
	f := newTestFactory(t)

	var wg sync.WaitGroup
	for c := 0; c < 100; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w, err := f.CreateDefault("round")
			require.NoError(t, err)
			assert.Equal(t, "round", w.shape)
		}()
	}
	wg.Wait()
}
