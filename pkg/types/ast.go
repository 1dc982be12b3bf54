package types

// NodeKind identifies which variant of the closed Ast sum type a node is.
type NodeKind uint8

const (
	NodeIdentity NodeKind = iota
	NodeField
	NodeIndex
	NodeLiteral
	NodeExprRef
	NodeNot
	NodeFlatten
	NodeObjectValues
	NodeSlice
	NodeSubExpr
	NodeOr
	NodeAnd
	NodeComparison
	NodeCondition
	NodeProjection
	NodeMultiList
	NodeMultiHash
	NodeFunction
)

// String names the node kind, matching the constructor names used in
// spec.md §3 (Identity, Field, Index, ...).
func (k NodeKind) String() string {
	switch k {
	case NodeIdentity:
		return "Identity"
	case NodeField:
		return "Field"
	case NodeIndex:
		return "Index"
	case NodeLiteral:
		return "Literal"
	case NodeExprRef:
		return "ExpRef"
	case NodeNot:
		return "Not"
	case NodeFlatten:
		return "Flatten"
	case NodeObjectValues:
		return "ObjectValues"
	case NodeSlice:
		return "Slice"
	case NodeSubExpr:
		return "SubExpr"
	case NodeOr:
		return "Or"
	case NodeAnd:
		return "And"
	case NodeComparison:
		return "Comparison"
	case NodeCondition:
		return "Condition"
	case NodeProjection:
		return "Projection"
	case NodeMultiList:
		return "MultiList"
	case NodeMultiHash:
		return "MultiHash"
	case NodeFunction:
		return "Function"
	default:
		return "Unknown"
	}
}

// Comparator enumerates the six comparison operators recognised by
// Comparison nodes.
type Comparator uint8

const (
	CmpEq Comparator = iota
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
)

// String renders the comparator using its source-level spelling.
func (c Comparator) String() string {
	switch c {
	case CmpEq:
		return "=="
	case CmpNe:
		return "!="
	case CmpLt:
		return "<"
	case CmpLe:
		return "<="
	case CmpGt:
		return ">"
	case CmpGe:
		return ">="
	default:
		return "?"
	}
}

// HashPair is one key:value entry of a MultiHash node. Keys are unique at
// construction (the parser rejects re-inserting a key by overwriting the
// earlier pair, per §3's "duplicate keys retain the last occurrence").
type HashPair struct {
	Key   string
	Value *Ast
}

// Ast is the closed, immutable abstract syntax tree node. Exactly which
// fields are meaningful is determined by Kind; see spec.md §3 for the full
// variant list. Ast nodes are produced only by the parser (via Arena) and
// are never mutated after construction — ExpressionRef payloads captured
// from a Value are safe to share across evaluations for exactly this
// reason.
type Ast struct {
	Kind NodeKind

	// Field / Function name.
	Name string

	// Index literal (NodeIndex).
	Int int

	// Literal value (NodeLiteral).
	Lit Value

	// Comparator (NodeComparison).
	Cmp Comparator

	// Children. Which of these are populated depends on Kind:
	//   NodeExprRef, NodeNot, NodeFlatten, NodeObjectValues -> Inner
	//   NodeSubExpr, NodeOr, NodeAnd                        -> LHS, RHS
	//   NodeComparison                                      -> LHS, RHS, Cmp
	//   NodeCondition                                       -> Predicate, Then
	//   NodeProjection                                      -> LHS, RHS
	//   NodeMultiList, NodeFunction (args)                  -> Items
	//   NodeMultiHash                                       -> Pairs
	//   NodeSlice                                           -> SliceStart, SliceStop, SliceStep
	Inner     *Ast
	LHS       *Ast
	RHS       *Ast
	Predicate *Ast
	Then      *Ast
	Items     []*Ast
	Pairs     []HashPair

	SliceStart *int
	SliceStop  *int
	SliceStep  int

	// Position is the source rune index the node was parsed from, used
	// only for diagnostics; it plays no role in Equal.
	Position int
}

// Equal reports whether a and b are structurally equal ASTs, ignoring
// Position. This backs both ExpressionRef equality (§4.1) and the
// "compile is deterministic" testable property (§8): compiling the same
// text twice must produce Ast trees that satisfy Equal.
func (a *Ast) Equal(b *Ast) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case NodeField:
		return a.Name == b.Name
	case NodeIndex:
		return a.Int == b.Int
	case NodeLiteral:
		return a.Lit.Equal(b.Lit)
	case NodeComparison:
		return a.Cmp == b.Cmp && a.LHS.Equal(b.LHS) && a.RHS.Equal(b.RHS)
	case NodeExprRef, NodeNot, NodeFlatten, NodeObjectValues:
		return a.Inner.Equal(b.Inner)
	case NodeSubExpr, NodeOr, NodeAnd, NodeProjection:
		return a.LHS.Equal(b.LHS) && a.RHS.Equal(b.RHS)
	case NodeCondition:
		return a.Predicate.Equal(b.Predicate) && a.Then.Equal(b.Then)
	case NodeSlice:
		return intPtrEqual(a.SliceStart, b.SliceStart) &&
			intPtrEqual(a.SliceStop, b.SliceStop) &&
			a.SliceStep == b.SliceStep
	case NodeMultiList:
		return astSliceEqual(a.Items, b.Items)
	case NodeMultiHash:
		if len(a.Pairs) != len(b.Pairs) {
			return false
		}
		for i := range a.Pairs {
			if a.Pairs[i].Key != b.Pairs[i].Key || !a.Pairs[i].Value.Equal(b.Pairs[i].Value) {
				return false
			}
		}
		return true
	case NodeFunction:
		return a.Name == b.Name && astSliceEqual(a.Items, b.Items)
	default: // NodeIdentity
		return true
	}
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func astSliceEqual(a, b []*Ast) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// arenaChunkSize is the number of Ast values pre-allocated per arena chunk.
const arenaChunkSize = 64

// Arena is a bump-pointer allocator for Ast nodes, avoiding one
// heap allocation per node during parsing. A typical expression fits in a
// single chunk.
//
// # Lifetime
//
// The arena must stay alive as long as any node it returned is reachable;
// attaching it to the Expression that owns the parsed tree achieves this.
//
// # Thread safety
//
// Arena is not thread-safe. Each parse owns its own arena and it is never
// shared across goroutines.
type Arena struct {
	chunks [][]Ast
	pos    int
}

// NewArena allocates an arena pre-warmed with one initial chunk.
func NewArena() *Arena {
	return &Arena{chunks: [][]Ast{make([]Ast, arenaChunkSize)}}
}

// New returns a pointer to a zero-valued Ast node inside the arena, with
// Kind and Position set. All other fields remain at their zero values and
// must be filled in by the caller.
func (a *Arena) New(kind NodeKind, position int) *Ast {
	if a.pos >= arenaChunkSize {
		a.chunks = append(a.chunks, make([]Ast, arenaChunkSize))
		a.pos = 0
	}
	n := &a.chunks[len(a.chunks)-1][a.pos]
	a.pos++
	n.Kind = kind
	n.Position = position
	return n
}

// NodeCount returns the number of nodes allocated from the arena so far.
// Used to weigh a compiled expression by AST size rather than treating
// every expression as equally expensive to hold in a cache.
func (a *Arena) NodeCount() int {
	if len(a.chunks) == 0 {
		return 0
	}
	full := len(a.chunks) - 1
	return full*arenaChunkSize + a.pos
}
