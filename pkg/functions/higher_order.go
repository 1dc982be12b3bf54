package functions

import (
	"sort"

	"github.com/gojmespath/gojmespath/pkg/types"
)

var higherOrderBuiltins = []Descriptor{
	{Name: "map", Sig: Signature{Inputs: []ArgType{ExpRef, Array}}, Call: mapFn},
	{Name: "sort_by", Sig: Signature{Inputs: []ArgType{Array, ExpRef}}, Call: sortByFn},
	{Name: "max_by", Sig: Signature{Inputs: []ArgType{Array, ExpRef}}, Call: maxByFn},
	{Name: "min_by", Sig: Signature{Inputs: []ArgType{Array, ExpRef}}, Call: minByFn},
}

// mapFn applies the captured expression to every element, keeping Null
// results (unlike a Projection, which drops them).
func mapFn(rt *Runtime, args []types.Value) (types.Value, error) {
	ref, _ := args[0].AsExprRef()
	arr, _ := args[1].AsArray()
	out := make([]types.Value, len(arr))
	for i, e := range arr {
		v, err := rt.Eval.Interpret(e, ref)
		if err != nil {
			return types.Null, err
		}
		out[i] = v
	}
	return types.Array(out), nil
}

// keysOf evaluates ref against every element of arr, requiring each
// result to be a string or number and all results to share the same
// kind, per the mixed-key-type rule shared by sort_by/max_by/min_by.
func keysOf(rt *Runtime, fname string, arr []types.Value, ref *types.Ast) ([]types.Value, error) {
	keys := make([]types.Value, len(arr))
	for i, e := range arr {
		k, err := rt.Eval.Interpret(e, ref)
		if err != nil {
			return nil, err
		}
		if k.Kind() != types.KindString && k.Kind() != types.KindNumber {
			return nil, types.NewRuntimeError(types.ErrFunctionSemantic,
				"%s(): key must be a string or number, got %s", fname, k.TypeName())
		}
		keys[i] = k
	}
	for i := 1; i < len(keys); i++ {
		if keys[i].Kind() != keys[0].Kind() {
			return nil, types.NewRuntimeError(types.ErrFunctionSemantic, "%s(): mixed key types", fname)
		}
	}
	return keys, nil
}

func sortByFn(rt *Runtime, args []types.Value) (types.Value, error) {
	arr, _ := args[0].AsArray()
	ref, _ := args[1].AsExprRef()
	keys, err := keysOf(rt, "sort_by", arr, ref)
	if err != nil {
		return types.Null, err
	}
	idx := make([]int, len(arr))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		cmp, _ := keys[idx[a]].Compare(keys[idx[b]])
		return cmp < 0
	})
	out := make([]types.Value, len(arr))
	for i, j := range idx {
		out[i] = arr[j]
	}
	return types.Array(out), nil
}

func maxByFn(rt *Runtime, args []types.Value) (types.Value, error) {
	return extremeBy(rt, "max_by", args, 1)
}

func minByFn(rt *Runtime, args []types.Value) (types.Value, error) {
	return extremeBy(rt, "min_by", args, -1)
}

func extremeBy(rt *Runtime, fname string, args []types.Value, sign int) (types.Value, error) {
	arr, _ := args[0].AsArray()
	ref, _ := args[1].AsExprRef()
	if len(arr) == 0 {
		return types.Null, nil
	}
	keys, err := keysOf(rt, fname, arr, ref)
	if err != nil {
		return types.Null, err
	}
	best := 0
	for i := 1; i < len(arr); i++ {
		cmp, _ := keys[i].Compare(keys[best])
		if cmp*sign > 0 {
			best = i
		}
	}
	return arr[best], nil
}
