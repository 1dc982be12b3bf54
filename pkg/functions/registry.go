package functions

import "github.com/gojmespath/gojmespath/pkg/types"

// Interpreter is the callback the higher-order built-ins (map, sort_by,
// max_by, min_by) use to evaluate a captured ExpressionRef against an
// element. The evaluator package supplies the concrete implementation;
// this package never imports evaluator, which would otherwise be a
// package import cycle (the evaluator dispatches Function nodes through
// this package's Runtime).
type Interpreter interface {
	Interpret(value types.Value, ast *types.Ast) (types.Value, error)
}

// Fn is a built-in or user-registered function body. It runs only after
// its Signature has validated args, so it may assume arity and type
// conformance (including per-element conformance for TypedArray inputs).
type Fn func(rt *Runtime, args []types.Value) (types.Value, error)

// Descriptor pairs a callable with the signature that gates it.
type Descriptor struct {
	Name string
	Sig  Signature
	Call Fn
}

// Runtime holds the function table consulted by Function AST nodes
// (§4.5). It is pre-populated with the 26 built-ins of §4.6 at
// construction and exposes Register for user-defined functions.
//
// Per §5, a Runtime should be treated as read-only once shared across
// concurrent evaluations; register every function before handing it to
// more than one goroutine.
type Runtime struct {
	// Eval is set by the evaluator package immediately after
	// construction, closing the loop so higher-order built-ins can
	// recurse back into interpretation.
	Eval Interpreter

	funcs map[string]Descriptor
}

// NewRuntime returns a Runtime pre-populated with all 26 built-ins.
func NewRuntime() *Runtime {
	rt := &Runtime{funcs: make(map[string]Descriptor, 32)}
	for _, group := range [][]Descriptor{mathBuiltins, stringBuiltins, collectionBuiltins, higherOrderBuiltins} {
		for _, d := range group {
			rt.funcs[d.Name] = d
		}
	}
	return rt
}

// Register adds name to rt, or replaces an existing entry of the same
// name (including shadowing a built-in).
func (rt *Runtime) Register(name string, sig Signature, call Fn) {
	rt.funcs[name] = Descriptor{Name: name, Sig: sig, Call: call}
}

// Lookup returns the descriptor registered under name.
func (rt *Runtime) Lookup(name string) (Descriptor, bool) {
	d, ok := rt.funcs[name]
	return d, ok
}

// Call looks up name, validates args against its signature, and invokes
// it, per the three-step procedure of §4.4 step 2-4.
func (rt *Runtime) Call(name string, args []types.Value) (types.Value, error) {
	d, ok := rt.funcs[name]
	if !ok {
		return types.Null, types.NewRuntimeError(types.ErrUnknownFunction, "unknown function name %q", name)
	}
	if err := d.Sig.Validate(name, args); err != nil {
		return types.Null, err
	}
	return d.Call(rt, args)
}
