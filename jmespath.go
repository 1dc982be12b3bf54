// Package gojmespath implements JMESPath, a declarative query language
// for JSON documents. It compiles a textual expression to an internal
// program and evaluates that program against JSON-shaped input to
// produce a JSON-shaped result.
//
// # Pipeline
//
// Compile turns expression text into an immutable, concurrency-safe
// Expression via a lexer and a Pratt parser (pkg/parser). Expression.Search
// evaluates that Expression against an input value via a tree-walking
// interpreter (pkg/evaluator) backed by a function registry (pkg/functions)
// and the closed JSON value model (pkg/types).
//
// # Errors
//
// Compile returns a *CompileError for any lexical or syntactic failure.
// Search returns a *RuntimeError for unknown-function, arity, and
// signature-type failures. Every other interpretive "failure" — a
// wrong-typed field access, an out-of-range index, comparing
// incomparable types — is not an error: it silently produces a JSON null,
// by design.
//
// # Minimal example
//
//	expr, err := gojmespath.Compile("people[*].first")
//	if err != nil {
//		return err
//	}
//	result, err := expr.Search(map[string]interface{}{
//		"people": []interface{}{
//			map[string]interface{}{"first": "John"},
//			map[string]interface{}{"first": "Joan"},
//		},
//	}, nil)
package gojmespath

import (
	"log/slog"

	"github.com/gojmespath/gojmespath/internal/jsonvalue"
	"github.com/gojmespath/gojmespath/pkg/cache"
	"github.com/gojmespath/gojmespath/pkg/evaluator"
	"github.com/gojmespath/gojmespath/pkg/functions"
	"github.com/gojmespath/gojmespath/pkg/parser"
	"github.com/gojmespath/gojmespath/pkg/types"
)

// Re-exported so callers never need to import pkg/types directly.
type (
	CompileError = types.CompileError
	RuntimeError = types.RuntimeError
	ErrorCode    = types.ErrorCode
)

// CompileOption configures Compile.
type CompileOption = parser.CompileOption

// WithMaxParseDepth bounds expression-nesting depth during parsing.
// Named to avoid colliding with the evaluator's WithMaxEvalDepth.
func WithMaxParseDepth(depth int) CompileOption { return parser.WithMaxDepth(depth) }

// Expression is a compiled JMESPath expression, safe to share across
// goroutines and to evaluate any number of times against different input.
type Expression struct {
	inner *types.Expression
}

// AST returns the root of the expression's abstract syntax tree.
func (e *Expression) AST() *types.Ast { return e.inner.AST() }

// String returns the original expression text.
func (e *Expression) String() string { return e.inner.String() }

// Compile parses text into a reusable Expression, per §6's `compile`
// operation.
func Compile(text string, opts ...CompileOption) (*Expression, error) {
	inner, err := parser.Compile(text, opts...)
	if err != nil {
		return nil, err
	}
	return &Expression{inner: inner}, nil
}

// MustCompile is like Compile but panics on error. Intended for
// package-level Expression variables built from a string literal known
// to be valid.
func MustCompile(text string) *Expression {
	expr, err := Compile(text)
	if err != nil {
		panic(err)
	}
	return expr
}

// EvalOption configures a Runtime.
type EvalOption = evaluator.EvalOption

// WithMaxEvalDepth bounds recursive-evaluation depth.
func WithMaxEvalDepth(depth int) EvalOption { return evaluator.WithMaxDepth(depth) }

// WithLogger attaches a structured logger that records function calls
// made during evaluation, at debug level.
func WithLogger(logger *slog.Logger) EvalOption { return evaluator.WithLogger(logger) }

// Signature is a function's typed argument signature (§4.6).
type Signature = functions.Signature

// Fn is a registrable function body; see Runtime.Register.
type Fn = functions.Fn

// ArgType is one member of the built-in function argument-type lattice.
type ArgType = functions.ArgType

// The members of the argument-type lattice, re-exported for callers
// registering their own functions via Runtime.Register.
var (
	TypeAny     = functions.Any
	TypeNull    = functions.Null
	TypeString  = functions.String
	TypeNumber  = functions.Number
	TypeBoolean = functions.Boolean
	TypeObject  = functions.Object
	TypeArray   = functions.Array
	TypeExprRef = functions.ExpRef
)

// TypedArray matches an array all of whose elements match elem.
func TypedArray(elem ArgType) ArgType { return functions.TypedArrayOf(elem) }

// Union matches a value that matches any of opts.
func Union(opts ...ArgType) ArgType { return functions.UnionOf(opts...) }

// Runtime holds the function registry consulted during Search (§4.5),
// pre-populated with the 26 built-ins of §4.6.
type Runtime = evaluator.Runtime

// NewRuntime returns a Runtime ready for Search or further Register calls.
func NewRuntime(opts ...EvalOption) *Runtime {
	return evaluator.NewRuntime(opts...)
}

// defaultRuntime backs the package-level Compile+Search convenience path.
// Per §5, register any custom functions before sharing a Runtime across
// goroutines; the default runtime is never mutated by this package.
var defaultRuntime = NewRuntime()

// Search evaluates e against input using rt, converting input from and
// the result back to plain Go values at the boundary (§6's JSON-decoder
// collaborator). If rt is nil, the package default runtime is used.
func (e *Expression) Search(input interface{}, rt *Runtime) (interface{}, error) {
	if rt == nil {
		rt = defaultRuntime
	}
	val, err := jsonvalue.FromGo(input)
	if err != nil {
		return nil, err
	}
	result, err := rt.Interpret(val, e.AST())
	if err != nil {
		return nil, err
	}
	return jsonvalue.ToGo(result)
}

// Search compiles text and evaluates it against input in one step, using
// the package default Runtime. Prefer Compile once and Expression.Search
// repeatedly when the same expression is applied to many documents.
func Search(text string, input interface{}) (interface{}, error) {
	expr, err := Compile(text)
	if err != nil {
		return nil, err
	}
	return expr.Search(input, nil)
}

// CachedCompiler wraps Compile with an LRU cache (pkg/cache) keyed by
// source text, avoiding repeated lexing and parsing of the same
// expression string across many Compile calls.
type CachedCompiler struct {
	cache *cache.Cache
	opts  []CompileOption
}

// NewCachedCompiler returns a CachedCompiler backed by an AST-size
// budget of capacity nodes; see pkg/cache for how that budget is spent
// and reclaimed.
func NewCachedCompiler(capacity int, opts ...CompileOption) *CachedCompiler {
	return &CachedCompiler{cache: cache.New(capacity), opts: opts}
}

// Compile returns the cached Expression for text, compiling and caching
// it on a miss. Compile errors are never cached.
func (c *CachedCompiler) Compile(text string) (*Expression, error) {
	inner, err := c.cache.GetOrCompile(text, func() (*types.Expression, error) {
		return parser.Compile(text, c.opts...)
	})
	if err != nil {
		return nil, err
	}
	return &Expression{inner: inner}, nil
}

// Len reports how many compiled expressions are currently cached.
func (c *CachedCompiler) Len() int { return c.cache.Len() }
