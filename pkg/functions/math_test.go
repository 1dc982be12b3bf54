package functions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gojmespath/gojmespath/pkg/functions"
	"github.com/gojmespath/gojmespath/pkg/types"
)

func call(t *testing.T, rt *functions.Runtime, name string, args ...types.Value) types.Value {
	t.Helper()
	v, err := rt.Call(name, args)
	require.NoError(t, err)
	return v
}

func numArray(vals ...int64) types.Value {
	items := make([]types.Value, len(vals))
	for i, v := range vals {
		items[i] = types.IntValue(v)
	}
	return types.Array(items)
}

func TestAbsPreservesIntegrality(t *testing.T) {
	rt := functions.NewRuntime()
	assert.Equal(t, types.IntValue(5), call(t, rt, "abs", types.IntValue(-5)))
	assert.Equal(t, types.FloatValue(5.5), call(t, rt, "abs", types.FloatValue(-5.5)))
}

func TestCeilFloorPassThroughIntegers(t *testing.T) {
	rt := functions.NewRuntime()
	assert.Equal(t, types.IntValue(3), call(t, rt, "ceil", types.IntValue(3)))
	assert.Equal(t, types.IntValue(3), call(t, rt, "floor", types.IntValue(3)))
	assert.Equal(t, types.IntValue(3), call(t, rt, "ceil", types.FloatValue(2.1)))
	assert.Equal(t, types.IntValue(2), call(t, rt, "floor", types.FloatValue(2.9)))
}

func TestAvgOfEmptyIsNull(t *testing.T) {
	rt := functions.NewRuntime()
	assert.Equal(t, types.Null, call(t, rt, "avg", types.Array(nil)))
}

func TestAvg(t *testing.T) {
	rt := functions.NewRuntime()
	assert.Equal(t, types.FloatValue(2), call(t, rt, "avg", numArray(1, 2, 3)))
}

func TestSumAllIntStaysInt(t *testing.T) {
	rt := functions.NewRuntime()
	assert.Equal(t, types.IntValue(6), call(t, rt, "sum", numArray(1, 2, 3)))
}

func TestSumMixedPromotesToFloat(t *testing.T) {
	rt := functions.NewRuntime()
	arr := types.Array([]types.Value{types.IntValue(1), types.FloatValue(2.5)})
	assert.Equal(t, types.FloatValue(3.5), call(t, rt, "sum", arr))
}

func TestSumOfEmptyIsZero(t *testing.T) {
	rt := functions.NewRuntime()
	assert.Equal(t, types.IntValue(0), call(t, rt, "sum", types.Array(nil)))
}

func TestMathFunctionsRejectWrongType(t *testing.T) {
	rt := functions.NewRuntime()
	_, err := rt.Call("abs", []types.Value{types.String("x")})
	require.Error(t, err)
	var rerr *types.RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, types.ErrArgTypeMismatch, rerr.Code)
}
