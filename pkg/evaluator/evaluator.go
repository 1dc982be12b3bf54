// Package evaluator implements the tree-walking interpreter of §4.4: a
// pure function of (value, ast) -> value, threading projection semantics,
// short-circuiting boolean operators, and function dispatch through the
// function registry in package functions.
package evaluator

import (
	"log/slog"

	"github.com/gojmespath/gojmespath/pkg/functions"
	"github.com/gojmespath/gojmespath/pkg/types"
)

// defaultMaxDepth bounds recursive evaluation so a pathological or
// maliciously deep input (e.g. a self-referential-looking, very deeply
// nested array run through repeated projections) fails as a RuntimeError
// instead of exhausting the goroutine stack.
const defaultMaxDepth = 1000

// EvalOption configures a Runtime.
type EvalOption func(*evalOptions)

type evalOptions struct {
	maxDepth int
	logger   *slog.Logger
}

// WithMaxDepth overrides the maximum evaluation recursion depth.
func WithMaxDepth(depth int) EvalOption {
	return func(o *evalOptions) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// WithLogger attaches a structured logger. When set, function calls are
// logged at debug level; nil (the default) disables logging entirely.
func WithLogger(logger *slog.Logger) EvalOption {
	return func(o *evalOptions) { o.logger = logger }
}

// Runtime holds a function registry (§4.5) plus the evaluation options
// that govern every Search made against it. It implements
// functions.Interpreter so higher-order built-ins (map, sort_by, max_by,
// min_by) recurse back into evaluation through the same registry and
// maximum depth; each such re-entry starts its depth count from zero.
type Runtime struct {
	fns  *functions.Runtime
	opts evalOptions
}

// NewRuntime returns a Runtime pre-populated with the 26 built-ins of
// §4.6, ready for Interpret or for further Register calls.
func NewRuntime(opts ...EvalOption) *Runtime {
	cfg := evalOptions{maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}
	rt := &Runtime{fns: functions.NewRuntime(), opts: cfg}
	rt.fns.Eval = rt
	return rt
}

// Register adds a user-defined function to rt, per §4.5's register
// operation.
func (rt *Runtime) Register(name string, sig functions.Signature, call functions.Fn) {
	rt.fns.Register(name, sig, call)
}

// Interpret evaluates ast against value, implementing functions.Interpreter.
func (rt *Runtime) Interpret(value types.Value, ast *types.Ast) (types.Value, error) {
	ip := &interp{rt: rt.fns, maxDepth: rt.opts.maxDepth, logger: rt.opts.logger}
	return ip.eval(value, ast, 0)
}

// Interpret evaluates ast against value using rt, per §4.4. It is a thin
// wrapper over (*Runtime).Interpret provided so the interpreter has a
// free-function entry point independent of the method receiver.
func Interpret(value types.Value, ast *types.Ast, rt *Runtime) (types.Value, error) {
	return rt.Interpret(value, ast)
}

type interp struct {
	rt       *functions.Runtime
	maxDepth int
	logger   *slog.Logger
}

func (ip *interp) eval(value types.Value, ast *types.Ast, depth int) (types.Value, error) {
	depth++
	if depth > ip.maxDepth {
		return types.Null, types.NewRuntimeError(types.ErrMaxEvalDepth,
			"evaluation nesting exceeds maximum depth of %d", ip.maxDepth)
	}

	switch ast.Kind {
	case types.NodeIdentity:
		return value, nil

	case types.NodeLiteral:
		return ast.Lit, nil

	case types.NodeField:
		return value.Field(ast.Name), nil

	case types.NodeIndex:
		return value.Index(ast.Int), nil

	case types.NodeSubExpr:
		lv, err := ip.eval(value, ast.LHS, depth)
		if err != nil {
			return types.Null, err
		}
		return ip.eval(lv, ast.RHS, depth)

	case types.NodeOr:
		lv, err := ip.eval(value, ast.LHS, depth)
		if err != nil {
			return types.Null, err
		}
		if lv.Truthy() {
			return lv, nil
		}
		return ip.eval(value, ast.RHS, depth)

	case types.NodeAnd:
		lv, err := ip.eval(value, ast.LHS, depth)
		if err != nil {
			return types.Null, err
		}
		if !lv.Truthy() {
			return lv, nil
		}
		return ip.eval(value, ast.RHS, depth)

	case types.NodeNot:
		iv, err := ip.eval(value, ast.Inner, depth)
		if err != nil {
			return types.Null, err
		}
		return types.Bool(!iv.Truthy()), nil

	case types.NodeCondition:
		pv, err := ip.eval(value, ast.Predicate, depth)
		if err != nil {
			return types.Null, err
		}
		if !pv.Truthy() {
			return types.Null, nil
		}
		return ip.eval(value, ast.Then, depth)

	case types.NodeComparison:
		lv, err := ip.eval(value, ast.LHS, depth)
		if err != nil {
			return types.Null, err
		}
		rv, err := ip.eval(value, ast.RHS, depth)
		if err != nil {
			return types.Null, err
		}
		return compare(ast.Cmp, lv, rv), nil

	case types.NodeObjectValues:
		iv, err := ip.eval(value, ast.Inner, depth)
		if err != nil {
			return types.Null, err
		}
		obj, ok := iv.AsObject()
		if !ok {
			return types.Null, nil
		}
		out := make([]types.Value, 0, len(obj))
		for _, v := range obj {
			out = append(out, v)
		}
		return types.Array(out), nil

	case types.NodeProjection:
		lv, err := ip.eval(value, ast.LHS, depth)
		if err != nil {
			return types.Null, err
		}
		arr, ok := lv.AsArray()
		if !ok {
			return types.Null, nil
		}
		out := make([]types.Value, 0, len(arr))
		for _, e := range arr {
			rv, err := ip.eval(e, ast.RHS, depth)
			if err != nil {
				return types.Null, err
			}
			if rv.IsNull() {
				continue
			}
			out = append(out, rv)
		}
		return types.Array(out), nil

	case types.NodeFlatten:
		iv, err := ip.eval(value, ast.Inner, depth)
		if err != nil {
			return types.Null, err
		}
		arr, ok := iv.AsArray()
		if !ok {
			return types.Null, nil
		}
		out := make([]types.Value, 0, len(arr))
		for _, e := range arr {
			if sub, ok := e.AsArray(); ok {
				out = append(out, sub...)
				continue
			}
			out = append(out, e)
		}
		return types.Array(out), nil

	case types.NodeMultiList:
		if value.IsNull() {
			return types.Null, nil
		}
		out := make([]types.Value, len(ast.Items))
		for i, item := range ast.Items {
			v, err := ip.eval(value, item, depth)
			if err != nil {
				return types.Null, err
			}
			out[i] = v
		}
		return types.Array(out), nil

	case types.NodeMultiHash:
		if value.IsNull() {
			return types.Null, nil
		}
		out := make(map[string]types.Value, len(ast.Pairs))
		for _, p := range ast.Pairs {
			v, err := ip.eval(value, p.Value, depth)
			if err != nil {
				return types.Null, err
			}
			out[p.Key] = v
		}
		return types.Object(out), nil

	case types.NodeSlice:
		return value.Slice(ast.SliceStart, ast.SliceStop, ast.SliceStep), nil

	case types.NodeExprRef:
		return types.ExprRef(ast.Inner), nil

	case types.NodeFunction:
		args := make([]types.Value, len(ast.Items))
		for i, item := range ast.Items {
			v, err := ip.eval(value, item, depth)
			if err != nil {
				return types.Null, err
			}
			args[i] = v
		}
		if ip.logger != nil {
			ip.logger.Debug("evaluating function call", "name", ast.Name, "argc", len(args))
		}
		return ip.rt.Call(ast.Name, args)

	default:
		return types.Null, types.NewRuntimeError(types.ErrFunctionSemantic, "unhandled ast node kind %s", ast.Kind)
	}
}

// compare implements the Comparison node of §4.4: == and != always
// produce a Boolean via value equality; the ordering comparators defer to
// Value.Compare and yield Null ("no result") when ordering is undefined
// for the operand kinds.
func compare(op types.Comparator, a, b types.Value) types.Value {
	switch op {
	case types.CmpEq:
		return types.Bool(a.Equal(b))
	case types.CmpNe:
		return types.Bool(!a.Equal(b))
	}
	cmp, ok := a.Compare(b)
	if !ok {
		return types.Null
	}
	switch op {
	case types.CmpLt:
		return types.Bool(cmp < 0)
	case types.CmpLe:
		return types.Bool(cmp <= 0)
	case types.CmpGt:
		return types.Bool(cmp > 0)
	case types.CmpGe:
		return types.Bool(cmp >= 0)
	default:
		return types.Null
	}
}
