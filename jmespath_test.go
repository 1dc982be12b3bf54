package gojmespath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gojmespath/gojmespath"
)

func TestScenarioFieldAccess(t *testing.T) {
	got, err := gojmespath.Search("a.b", map[string]interface{}{
		"a": map[string]interface{}{"b": "hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestScenarioProjectionOverArray(t *testing.T) {
	got, err := gojmespath.Search("people[*].first", map[string]interface{}{
		"people": []interface{}{
			map[string]interface{}{"first": "John", "last": "Smith"},
			map[string]interface{}{"first": "Joan", "last": "Smyth"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"John", "Joan"}, got)
}

func TestScenarioSteppedSlice(t *testing.T) {
	got, err := gojmespath.Search("array[6:2:-1]", map[string]interface{}{
		"array": []interface{}{0, 1, 2, 3, 4, 5, 6, 7, 8},
	})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int64(6), int64(5), int64(4), int64(3)}, got)
}

func TestScenarioFilterWithFunctionPredicate(t *testing.T) {
	got, err := gojmespath.Search("array[?length(@) > `5`]", map[string]interface{}{
		"array": []interface{}{"test", "longer"},
	})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"longer"}, got)
}

func TestScenarioMaxByThenField(t *testing.T) {
	got, err := gojmespath.Search("max_by(@, &age).name", []interface{}{
		map[string]interface{}{"name": "john", "age": 75},
		map[string]interface{}{"name": "jane", "age": 78},
	})
	require.NoError(t, err)
	assert.Equal(t, "jane", got)
}

func TestScenarioMerge(t *testing.T) {
	got, err := gojmespath.Search("merge(a,b)", map[string]interface{}{
		"a": map[string]interface{}{"a": 1, "b": 2},
		"b": map[string]interface{}{"b": 3, "c": 4},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"a": int64(1), "b": int64(3), "c": int64(4)}, got)
}

// TestScenarioObjectIterationOrderIsNormalised covers the case where the
// result depends on unspecified object-key iteration order: the test
// checks only order-independent properties (one array per object key)
// rather than a fixed key order, since object iteration order is
// explicitly unspecified.
func TestScenarioObjectIterationOrderIsNormalised(t *testing.T) {
	got, err := gojmespath.Search("*[?[0] == `0`]", map[string]interface{}{
		"foo": []interface{}{0, 1},
		"bar": []interface{}{2, 3},
	})
	require.NoError(t, err)

	arr, ok := got.([]interface{})
	require.True(t, ok)
	require.Len(t, arr, 2, "one filtered result per object key")

	for _, e := range arr {
		_, ok := e.([]interface{})
		assert.True(t, ok, "each per-key result is itself an array")
	}
}

func TestScenarioBareEqualsIsCompileError(t *testing.T) {
	_, err := gojmespath.Compile("=")
	require.Error(t, err)
	var cerr *gojmespath.CompileError
	require.ErrorAs(t, err, &cerr)
}

func TestScenarioUnknownFunctionIsRuntimeError(t *testing.T) {
	expr, err := gojmespath.Compile("unknown(@)")
	require.NoError(t, err)

	_, err = expr.Search(map[string]interface{}{}, nil)
	require.Error(t, err)
	var rerr *gojmespath.RuntimeError
	require.ErrorAs(t, err, &rerr)
}

func TestCachedCompilerReusesCompiledExpressions(t *testing.T) {
	c := gojmespath.NewCachedCompiler(4)
	e1, err := c.Compile("a.b")
	require.NoError(t, err)
	e2, err := c.Compile("a.b")
	require.NoError(t, err)
	assert.Equal(t, e1.String(), e2.String())
	assert.Same(t, e1.AST(), e2.AST(), "both calls must share the single cached compilation")
	assert.Equal(t, 1, c.Len())
}

func TestMustCompilePanicsOnInvalidExpression(t *testing.T) {
	assert.Panics(t, func() { gojmespath.MustCompile("=") })
}
