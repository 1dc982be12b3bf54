package functions

import (
	"strconv"
	"strings"

	"github.com/gojmespath/gojmespath/internal/jsonvalue"
	"github.com/gojmespath/gojmespath/pkg/types"
)

var stringBuiltins = []Descriptor{
	{Name: "contains", Sig: Signature{Inputs: []ArgType{UnionOf(Array, String), Any}}, Call: containsFn},
	{Name: "ends_with", Sig: Signature{Inputs: []ArgType{String, String}}, Call: endsWithFn},
	{Name: "starts_with", Sig: Signature{Inputs: []ArgType{String, String}}, Call: startsWithFn},
	{Name: "join", Sig: Signature{Inputs: []ArgType{String, TypedArrayOf(String)}}, Call: joinFn},
	{Name: "length", Sig: Signature{Inputs: []ArgType{UnionOf(Array, Object, String)}}, Call: lengthFn},
	{Name: "reverse", Sig: Signature{Inputs: []ArgType{UnionOf(Array, String)}}, Call: reverseFn},
	{Name: "to_string", Sig: Signature{Inputs: []ArgType{Any}}, Call: toStringFn},
	{Name: "to_number", Sig: Signature{Inputs: []ArgType{Any}}, Call: toNumberFn},
}

func containsFn(rt *Runtime, args []types.Value) (types.Value, error) {
	subject, target := args[0], args[1]
	switch subject.Kind() {
	case types.KindArray:
		arr, _ := subject.AsArray()
		for _, e := range arr {
			if e.Equal(target) {
				return types.Bool(true), nil
			}
		}
		return types.Bool(false), nil
	case types.KindString:
		s, _ := subject.AsString()
		t, ok := target.AsString()
		if !ok {
			return types.Bool(false), nil
		}
		return types.Bool(strings.Contains(s, t)), nil
	default:
		return types.Null, nil
	}
}

func endsWithFn(rt *Runtime, args []types.Value) (types.Value, error) {
	s, _ := args[0].AsString()
	suffix, _ := args[1].AsString()
	return types.Bool(strings.HasSuffix(s, suffix)), nil
}

func startsWithFn(rt *Runtime, args []types.Value) (types.Value, error) {
	s, _ := args[0].AsString()
	prefix, _ := args[1].AsString()
	return types.Bool(strings.HasPrefix(s, prefix)), nil
}

func joinFn(rt *Runtime, args []types.Value) (types.Value, error) {
	sep, _ := args[0].AsString()
	arr, _ := args[1].AsArray()
	parts := make([]string, len(arr))
	for i, e := range arr {
		parts[i], _ = e.AsString()
	}
	return types.String(strings.Join(parts, sep)), nil
}

func lengthFn(rt *Runtime, args []types.Value) (types.Value, error) {
	v := args[0]
	switch v.Kind() {
	case types.KindString:
		n, _ := v.RuneLen()
		return types.IntValue(int64(n)), nil
	case types.KindArray:
		arr, _ := v.AsArray()
		return types.IntValue(int64(len(arr))), nil
	case types.KindObject:
		obj, _ := v.AsObject()
		return types.IntValue(int64(len(obj))), nil
	default:
		return types.Null, nil
	}
}

func reverseFn(rt *Runtime, args []types.Value) (types.Value, error) {
	v := args[0]
	switch v.Kind() {
	case types.KindArray:
		arr, _ := v.AsArray()
		out := make([]types.Value, len(arr))
		for i, e := range arr {
			out[len(arr)-1-i] = e
		}
		return types.Array(out), nil
	case types.KindString:
		s, _ := v.AsString()
		r := []rune(s)
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
		return types.String(string(r)), nil
	default:
		return types.Null, nil
	}
}

func toStringFn(rt *Runtime, args []types.Value) (types.Value, error) {
	v := args[0]
	if v.Kind() == types.KindString {
		return v, nil
	}
	data, err := jsonvalue.Encode(v)
	if err != nil {
		return types.Null, types.NewRuntimeError(types.ErrFunctionSemantic, "to_string(): %v", err).WithCause(err)
	}
	return types.String(string(data)), nil
}

func toNumberFn(rt *Runtime, args []types.Value) (types.Value, error) {
	v := args[0]
	switch v.Kind() {
	case types.KindNumber:
		return v, nil
	case types.KindString:
		s, _ := v.AsString()
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return types.IntValue(i), nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return types.FloatValue(f), nil
		}
		return types.Null, nil
	default:
		return types.Null, nil
	}
}
