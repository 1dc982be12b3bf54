package functions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gojmespath/gojmespath/pkg/functions"
	"github.com/gojmespath/gojmespath/pkg/types"
)

func TestKeysAndValues(t *testing.T) {
	rt := functions.NewRuntime()
	obj := types.Object(map[string]types.Value{"a": types.IntValue(1), "b": types.IntValue(2)})

	keys := call(t, rt, "keys", obj)
	arr, _ := keys.AsArray()
	assert.ElementsMatch(t, []types.Value{types.String("a"), types.String("b")}, arr)

	values := call(t, rt, "values", obj)
	arr, _ = values.AsArray()
	assert.ElementsMatch(t, []types.Value{types.IntValue(1), types.IntValue(2)}, arr)
}

func TestMergeLeftToRightOverwrite(t *testing.T) {
	rt := functions.NewRuntime()
	a := types.Object(map[string]types.Value{"x": types.IntValue(1), "y": types.IntValue(2)})
	b := types.Object(map[string]types.Value{"y": types.IntValue(3), "z": types.IntValue(4)})

	got := call(t, rt, "merge", a, b)
	obj, _ := got.AsObject()
	assert.Equal(t, types.IntValue(1), obj["x"])
	assert.Equal(t, types.IntValue(3), obj["y"], "later argument overwrites earlier one")
	assert.Equal(t, types.IntValue(4), obj["z"])
}

func TestNotNull(t *testing.T) {
	rt := functions.NewRuntime()
	assert.Equal(t, types.IntValue(1), call(t, rt, "not_null", types.Null, types.Null, types.IntValue(1)))
	assert.Equal(t, types.Null, call(t, rt, "not_null", types.Null, types.Null))
}

func TestToArray(t *testing.T) {
	rt := functions.NewRuntime()
	assert.Equal(t, numArray(1), call(t, rt, "to_array", types.IntValue(1)))
	got := call(t, rt, "to_array", numArray(1, 2))
	assert.Equal(t, numArray(1, 2), got)
}

func TestTypeFn(t *testing.T) {
	rt := functions.NewRuntime()
	assert.Equal(t, types.String("string"), call(t, rt, "type", types.String("x")))
	assert.Equal(t, types.String("number"), call(t, rt, "type", types.IntValue(1)))
	assert.Equal(t, types.String("null"), call(t, rt, "type", types.Null))
}

func TestMaxMin(t *testing.T) {
	rt := functions.NewRuntime()
	assert.Equal(t, types.IntValue(3), call(t, rt, "max", numArray(1, 3, 2)))
	assert.Equal(t, types.IntValue(1), call(t, rt, "min", numArray(1, 3, 2)))
	assert.Equal(t, types.Null, call(t, rt, "max", types.Array(nil)))
}

func TestSort(t *testing.T) {
	rt := functions.NewRuntime()
	got := call(t, rt, "sort", numArray(3, 1, 2))
	assert.Equal(t, numArray(1, 2, 3), got)

	strs := types.Array([]types.Value{types.String("b"), types.String("a"), types.String("c")})
	got = call(t, rt, "sort", strs)
	arr, _ := got.AsArray()
	assert.Equal(t, []types.Value{types.String("a"), types.String("b"), types.String("c")}, arr)
}
