package functions

import (
	"math"

	"github.com/gojmespath/gojmespath/pkg/types"
)

var mathBuiltins = []Descriptor{
	{Name: "abs", Sig: Signature{Inputs: []ArgType{Number}}, Call: absFn},
	{Name: "ceil", Sig: Signature{Inputs: []ArgType{Number}}, Call: ceilFn},
	{Name: "floor", Sig: Signature{Inputs: []ArgType{Number}}, Call: floorFn},
	{Name: "avg", Sig: Signature{Inputs: []ArgType{TypedArrayOf(Number)}}, Call: avgFn},
	{Name: "sum", Sig: Signature{Inputs: []ArgType{TypedArrayOf(Number)}}, Call: sumFn},
}

func absFn(rt *Runtime, args []types.Value) (types.Value, error) {
	n, _ := args[0].AsNumber()
	if i, ok := n.Int64(); ok {
		if i < 0 {
			i = -i
		}
		return types.IntValue(i), nil
	}
	return types.FloatValue(math.Abs(n.Float64())), nil
}

func ceilFn(rt *Runtime, args []types.Value) (types.Value, error) {
	n, _ := args[0].AsNumber()
	if _, ok := n.Int64(); ok {
		return args[0], nil
	}
	return types.IntValue(int64(math.Ceil(n.Float64()))), nil
}

func floorFn(rt *Runtime, args []types.Value) (types.Value, error) {
	n, _ := args[0].AsNumber()
	if _, ok := n.Int64(); ok {
		return args[0], nil
	}
	return types.IntValue(int64(math.Floor(n.Float64()))), nil
}

func avgFn(rt *Runtime, args []types.Value) (types.Value, error) {
	arr, _ := args[0].AsArray()
	if len(arr) == 0 {
		return types.Null, nil
	}
	var sum float64
	for _, e := range arr {
		n, _ := e.AsNumber()
		sum += n.Float64()
	}
	return types.FloatValue(sum / float64(len(arr))), nil
}

func sumFn(rt *Runtime, args []types.Value) (types.Value, error) {
	arr, _ := args[0].AsArray()
	allInt := true
	var isum int64
	var fsum float64
	for _, e := range arr {
		n, _ := e.AsNumber()
		if i, ok := n.Int64(); ok && allInt {
			isum += i
			fsum += float64(i)
			continue
		}
		allInt = false
		fsum += n.Float64()
	}
	if allInt {
		return types.IntValue(isum), nil
	}
	return types.FloatValue(fsum), nil
}
