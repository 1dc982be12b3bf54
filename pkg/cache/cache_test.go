package cache_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gojmespath/gojmespath/pkg/cache"
	"github.com/gojmespath/gojmespath/pkg/types"
)

func newExpr(t *testing.T, text string) *types.Expression {
	t.Helper()
	arena := types.NewArena()
	ast := arena.New(types.NodeIdentity, 0)
	return types.NewExpression(ast, text, arena)
}

func TestGetOrCompileMissThenHit(t *testing.T) {
	c := cache.New(4)
	calls := 0
	compile := func() (*types.Expression, error) {
		calls++
		return newExpr(t, "@"), nil
	}

	e1, err := c.GetOrCompile("@", compile)
	require.NoError(t, err)
	e2, err := c.GetOrCompile("@", compile)
	require.NoError(t, err)

	assert.Same(t, e1, e2)
	assert.Equal(t, 1, calls, "compile must run at most once per key")
	assert.Equal(t, 1, c.Len())
}

func TestGetOrCompileErrorsAreNotCached(t *testing.T) {
	c := cache.New(4)
	calls := 0
	wantErr := errors.New("bad expression")
	compile := func() (*types.Expression, error) {
		calls++
		return nil, wantErr
	}

	_, err := c.GetOrCompile("bad", compile)
	assert.ErrorIs(t, err, wantErr)
	_, err = c.GetOrCompile("bad", compile)
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 2, calls, "a failed compile must not be memoized")
	assert.Equal(t, 0, c.Len())
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := cache.New(2)
	c.Set("a", newExpr(t, "a"))
	c.Set("b", newExpr(t, "b"))

	// touch "a" so "b" becomes the least recently used entry.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Set("c", newExpr(t, "c"))

	_, ok = c.Get("b")
	assert.False(t, ok, "b should have been evicted")
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestInvalidateAndClear(t *testing.T) {
	c := cache.New(4)
	c.Set("a", newExpr(t, "a"))
	c.Set("b", newExpr(t, "b"))

	c.Invalidate("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestCapacityDefaultsWhenNonPositive(t *testing.T) {
	c := cache.New(0)
	assert.Equal(t, 256, c.Capacity())
}
