// Package functions implements the built-in function library and the
// typed signature system that gates every call, per §4.5-4.6.
package functions

import (
	"strings"

	"github.com/gojmespath/gojmespath/pkg/types"
)

// ArgType is one member of the argument-type lattice: Any, Null, String,
// Number, Boolean, Object, Array, ExpRef, TypedArray(t), Union(t1, ..., tn).
type ArgType interface {
	Matches(v types.Value) bool
	String() string
}

type anyType struct{}

func (anyType) Matches(types.Value) bool { return true }
func (anyType) String() string           { return "any" }

// Any matches every value.
var Any ArgType = anyType{}

type kindType types.Kind

func (k kindType) Matches(v types.Value) bool { return v.Kind() == types.Kind(k) }
func (k kindType) String() string             { return types.Kind(k).String() }

// The scalar and structural members of the lattice, one per types.Kind.
var (
	Null    ArgType = kindType(types.KindNull)
	String  ArgType = kindType(types.KindString)
	Number  ArgType = kindType(types.KindNumber)
	Boolean ArgType = kindType(types.KindBoolean)
	Object  ArgType = kindType(types.KindObject)
	Array   ArgType = kindType(types.KindArray)
	ExpRef  ArgType = kindType(types.KindExprRef)
)

type typedArray struct{ elem ArgType }

func (t typedArray) Matches(v types.Value) bool {
	arr, ok := v.AsArray()
	if !ok {
		return false
	}
	for _, e := range arr {
		if !t.elem.Matches(e) {
			return false
		}
	}
	return true
}

func (t typedArray) String() string { return "array of " + t.elem.String() }

// TypedArrayOf matches an array all of whose elements match elem. An empty
// array matches any TypedArrayOf.
func TypedArrayOf(elem ArgType) ArgType { return typedArray{elem} }

type union struct{ opts []ArgType }

func (u union) Matches(v types.Value) bool {
	for _, o := range u.opts {
		if o.Matches(v) {
			return true
		}
	}
	return false
}

func (u union) String() string {
	names := make([]string, len(u.opts))
	for i, o := range u.opts {
		names[i] = o.String()
	}
	return strings.Join(names, " or ")
}

// UnionOf matches a value that matches any of opts.
func UnionOf(opts ...ArgType) ArgType { return union{opts} }

// Signature is a fixed-arity input list plus an optional variadic tail
// type, per §4.6.
type Signature struct {
	Inputs []ArgType
	VarArg ArgType // nil when the function is not variadic
}

// Validate checks args against s, returning a RuntimeError naming the
// expected and actual type on the first mismatch.
func (s Signature) Validate(name string, args []types.Value) error {
	n, m := len(args), len(s.Inputs)
	if !(n == m || (n > m && s.VarArg != nil)) {
		return types.NewRuntimeError(types.ErrArityMismatch,
			"%s() expects %d argument(s), got %d", name, m, n)
	}
	for i, t := range s.Inputs {
		if !t.Matches(args[i]) {
			return types.NewRuntimeError(types.ErrArgTypeMismatch,
				"%s(): argument %d must be %s, got %s", name, i+1, t.String(), args[i].TypeName())
		}
	}
	for i := m; i < n; i++ {
		if !s.VarArg.Matches(args[i]) {
			return types.NewRuntimeError(types.ErrArgTypeMismatch,
				"%s(): argument %d must be %s, got %s", name, i+1, s.VarArg.String(), args[i].TypeName())
		}
	}
	return nil
}
