package functions

import (
	"sort"

	"github.com/gojmespath/gojmespath/pkg/types"
)

var collectionBuiltins = []Descriptor{
	{Name: "keys", Sig: Signature{Inputs: []ArgType{Object}}, Call: keysFn},
	{Name: "values", Sig: Signature{Inputs: []ArgType{Object}}, Call: valuesFn},
	{Name: "merge", Sig: Signature{Inputs: []ArgType{Object}, VarArg: Object}, Call: mergeFn},
	{Name: "not_null", Sig: Signature{Inputs: []ArgType{Any}, VarArg: Any}, Call: notNullFn},
	{Name: "to_array", Sig: Signature{Inputs: []ArgType{Any}}, Call: toArrayFn},
	{Name: "type", Sig: Signature{Inputs: []ArgType{Any}}, Call: typeFn},
	{Name: "max", Sig: Signature{Inputs: []ArgType{UnionOf(TypedArrayOf(String), TypedArrayOf(Number))}}, Call: maxFn},
	{Name: "min", Sig: Signature{Inputs: []ArgType{UnionOf(TypedArrayOf(String), TypedArrayOf(Number))}}, Call: minFn},
	{Name: "sort", Sig: Signature{Inputs: []ArgType{UnionOf(TypedArrayOf(Number), TypedArrayOf(String))}}, Call: sortFn},
}

func keysFn(rt *Runtime, args []types.Value) (types.Value, error) {
	obj, _ := args[0].AsObject()
	out := make([]types.Value, 0, len(obj))
	for k := range obj {
		out = append(out, types.String(k))
	}
	return types.Array(out), nil
}

func valuesFn(rt *Runtime, args []types.Value) (types.Value, error) {
	obj, _ := args[0].AsObject()
	out := make([]types.Value, 0, len(obj))
	for _, v := range obj {
		out = append(out, v)
	}
	return types.Array(out), nil
}

func mergeFn(rt *Runtime, args []types.Value) (types.Value, error) {
	out := make(map[string]types.Value)
	for _, a := range args {
		obj, _ := a.AsObject()
		for k, v := range obj {
			out[k] = v
		}
	}
	return types.Object(out), nil
}

func notNullFn(rt *Runtime, args []types.Value) (types.Value, error) {
	for _, a := range args {
		if !a.IsNull() {
			return a, nil
		}
	}
	return types.Null, nil
}

func toArrayFn(rt *Runtime, args []types.Value) (types.Value, error) {
	v := args[0]
	if v.Kind() == types.KindArray {
		return v, nil
	}
	return types.Array([]types.Value{v}), nil
}

func typeFn(rt *Runtime, args []types.Value) (types.Value, error) {
	return types.String(args[0].TypeName()), nil
}

func maxFn(rt *Runtime, args []types.Value) (types.Value, error) {
	return extreme(args[0], 1)
}

func minFn(rt *Runtime, args []types.Value) (types.Value, error) {
	return extreme(args[0], -1)
}

func extreme(v types.Value, sign int) (types.Value, error) {
	arr, _ := v.AsArray()
	if len(arr) == 0 {
		return types.Null, nil
	}
	best := arr[0]
	for _, e := range arr[1:] {
		if cmp, ok := e.Compare(best); ok && cmp*sign > 0 {
			best = e
		}
	}
	return best, nil
}

func sortFn(rt *Runtime, args []types.Value) (types.Value, error) {
	arr, _ := args[0].AsArray()
	out := append([]types.Value(nil), arr...)
	sort.SliceStable(out, func(i, j int) bool {
		cmp, _ := out[i].Compare(out[j])
		return cmp < 0
	})
	return types.Array(out), nil
}
