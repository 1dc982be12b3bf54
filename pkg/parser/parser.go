// Package parser implements the JMESPath lexer and a Pratt (top-down
// operator precedence) parser that turns a token stream into the
// types.Ast defined in package types.
//
// # Architecture
//
// Compilation is a strict two-stage pipeline:
//
//   - Lexer (lexer.go, tokens.go): UTF-8 source text -> Token stream,
//     terminated by TokenEOF.
//   - Parser (this file): Token stream -> types.Ast, using the
//     null-denotation (nud, prefix) / left-denotation (led, infix)
//     dispatch of Pratt parsing, driven by each token's left-binding
//     power (Token.LBP).
//
// Compile is the sole entry point; a successful call returns an immutable,
// concurrency-safe types.Expression.
package parser

import (
	"github.com/gojmespath/gojmespath/pkg/types"
)

// CompileOption configures Compile.
type CompileOption func(*compileOptions)

type compileOptions struct {
	maxDepth int
}

// defaultMaxDepth bounds recursive-descent nesting so that pathological
// input (e.g. thousands of nested parens or brackets) fails as a
// CompileError instead of overflowing the goroutine stack.
const defaultMaxDepth = 512

// WithMaxDepth overrides the maximum expression nesting depth.
func WithMaxDepth(depth int) CompileOption {
	return func(o *compileOptions) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// Compile parses text into an immutable, evaluatable Expression. Any
// lexical or syntactic failure is returned as a *types.CompileError.
func Compile(text string, opts ...CompileOption) (*types.Expression, error) {
	cfg := compileOptions{maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}

	tokens, err := Tokenize(text)
	if err != nil {
		return nil, err
	}

	p := newParser(tokens, cfg.maxDepth)
	ast, err := p.expression(0)
	if err != nil {
		return nil, err
	}
	if p.cur().Type != TokenEOF {
		return nil, types.NewCompileError(types.ErrTrailingTokens, p.cur().Position,
			"unexpected trailing token %s after a complete expression", p.cur().Type)
	}
	return types.NewExpression(ast, text, p.arena), nil
}

// parser holds the Pratt-parsing cursor state: the full pre-scanned token
// stream (enabling peek(k) look-ahead), an index cursor, and the node
// arena backing every allocated Ast.
type parser struct {
	tokens   []Token
	idx      int
	arena    *types.Arena
	maxDepth int
	depth    int
}

func newParser(tokens []Token, maxDepth int) *parser {
	return &parser{tokens: tokens, arena: types.NewArena(), maxDepth: maxDepth}
}

// peek returns the token k positions ahead of the cursor, clamped to the
// trailing TokenEOF once the stream is exhausted.
func (p *parser) peek(k int) Token {
	i := p.idx + k
	if i < 0 {
		i = 0
	}
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *parser) cur() Token { return p.peek(0) }

func (p *parser) advance() Token {
	t := p.cur()
	if p.idx < len(p.tokens)-1 {
		p.idx++
	}
	return t
}

func (p *parser) expect(tt TokenType) (Token, error) {
	if p.cur().Type != tt {
		return Token{}, types.NewCompileError(types.ErrExpectedToken, p.cur().Position,
			"expected %s, got %s", tt, p.cur().Type)
	}
	return p.advance(), nil
}

func (p *parser) enter(pos int) error {
	p.depth++
	if p.depth > p.maxDepth {
		return types.NewCompileError(types.ErrMaxDepthExceeded, pos,
			"expression nesting exceeds maximum depth of %d", p.maxDepth)
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

// expression is the Pratt core loop of §4.3: parse a left operand via nud,
// then keep folding in led-produced operators while the next token's LBP
// exceeds rbp.
func (p *parser) expression(rbp int) (*types.Ast, error) {
	if err := p.enter(p.cur().Position); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.nud()
	if err != nil {
		return nil, err
	}
	for p.cur().LBP() > rbp {
		left, err = p.led(left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

// projectionRHS implements the projection-RHS rule of §4.3: after a
// projecting operator, the tail is a dot-RHS, an expression rooted at '['
// or '[?', an implicit Identity when the next token can't extend the
// expression (LBP < 10), or a syntax error.
func (p *parser) projectionRHS(minLBP int) (*types.Ast, error) {
	tok := p.cur()
	switch {
	case tok.LBP() < 10:
		return p.arena.New(types.NodeIdentity, tok.Position), nil
	case tok.Type == TokenLBracket || tok.Type == TokenFilter:
		return p.expression(minLBP)
	case tok.Type == TokenDot:
		dotPos := tok.Position
		p.advance()
		if p.cur().Type == TokenStar {
			pos := p.cur().Position
			p.advance()
			return p.wildcardValues(p.arena.New(types.NodeIdentity, dotPos), pos)
		}
		if p.cur().Type == TokenLBracket {
			pos := p.cur().Position
			p.advance()
			return p.parseMultiList(pos)
		}
		return p.expression(minLBP)
	default:
		return nil, types.NewCompileError(types.ErrUnexpectedToken, tok.Position,
			"unexpected token %s in projection", tok.Type)
	}
}

// wildcardValues builds Projection(ObjectValues(base), rhs) for a wildcard
// values expression ("*" or ".*"), where rhs is parsed as a projection
// tail at LBP 20.
func (p *parser) wildcardValues(base *types.Ast, pos int) (*types.Ast, error) {
	rhs, err := p.projectionRHS(20)
	if err != nil {
		return nil, err
	}
	ov := p.arena.New(types.NodeObjectValues, pos)
	ov.Inner = base
	proj := p.arena.New(types.NodeProjection, pos)
	proj.LHS = ov
	proj.RHS = rhs
	return proj, nil
}

// parseFilter builds Projection(left, Condition(predicate, rhs)) for both
// the prefix and infix "[?" forms.
func (p *parser) parseFilter(left *types.Ast, pos int) (*types.Ast, error) {
	pred, err := p.expression(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRBracket); err != nil {
		return nil, err
	}
	rhs, err := p.projectionRHS(21)
	if err != nil {
		return nil, err
	}
	cond := p.arena.New(types.NodeCondition, pos)
	cond.Predicate = pred
	cond.Then = rhs
	proj := p.arena.New(types.NodeProjection, pos)
	proj.LHS = left
	proj.RHS = cond
	return proj, nil
}

// parseIndexOrSlice implements the index/slice sub-parser of §4.3. The
// cursor sits just after '[' and just before a Number or ':'.
func (p *parser) parseIndexOrSlice(pos int) (*types.Ast, error) {
	var parts [3]*int

	if p.cur().Type == TokenNumber {
		n := int(p.cur().Num)
		parts[0] = &n
		p.advance()
	}

	if p.cur().Type == TokenRBracket {
		p.advance()
		if parts[0] == nil {
			return nil, types.NewCompileError(types.ErrUnexpectedToken, pos, "expected an index or slice inside '['")
		}
		idx := p.arena.New(types.NodeIndex, pos)
		idx.Int = *parts[0]
		return idx, nil
	}

	colons := 0
	for p.cur().Type == TokenColon {
		colons++
		if colons > 2 {
			return nil, types.NewCompileError(types.ErrTooManySliceColons, p.cur().Position, "too many ':' in slice expression")
		}
		p.advance()
		if p.cur().Type == TokenNumber {
			n := int(p.cur().Num)
			parts[colons] = &n
			p.advance()
		}
	}
	if colons == 0 {
		return nil, types.NewCompileError(types.ErrExpectedToken, p.cur().Position, "expected ']' or ':' inside '['")
	}
	if _, err := p.expect(TokenRBracket); err != nil {
		return nil, err
	}

	step := 1
	if parts[2] != nil {
		step = *parts[2]
	}
	if step == 0 {
		return nil, types.NewCompileError(types.ErrSliceStepZero, pos, "slice step cannot be 0")
	}

	slice := p.arena.New(types.NodeSlice, pos)
	slice.SliceStart = parts[0]
	slice.SliceStop = parts[1]
	slice.SliceStep = step

	rhs, err := p.projectionRHS(20)
	if err != nil {
		return nil, err
	}
	proj := p.arena.New(types.NodeProjection, pos)
	proj.LHS = slice
	proj.RHS = rhs
	return proj, nil
}

// parseMultiList parses a comma-separated expression list up to and
// including the closing ']'. The cursor sits just after the opening '['.
func (p *parser) parseMultiList(pos int) (*types.Ast, error) {
	var items []*types.Ast
	if p.cur().Type != TokenRBracket {
		for {
			item, err := p.expression(0)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			if p.cur().Type != TokenComma {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(TokenRBracket); err != nil {
		return nil, err
	}
	n := p.arena.New(types.NodeMultiList, pos)
	n.Items = items
	return n, nil
}

// parseMultiHash parses a comma-separated key:value list up to and
// including the closing '}'. The cursor sits just after the opening '{'.
// Duplicate keys retain the last occurrence, per §3.
func (p *parser) parseMultiHash(pos int) (*types.Ast, error) {
	var pairs []types.HashPair
	seen := make(map[string]int)
	if p.cur().Type != TokenRBrace {
		for {
			keyTok := p.cur()
			if keyTok.Type != TokenIdentifier && keyTok.Type != TokenQuotedIdentifier {
				return nil, types.NewCompileError(types.ErrExpectedToken, keyTok.Position,
					"expected an identifier as an object key, got %s", keyTok.Type)
			}
			p.advance()
			if _, err := p.expect(TokenColon); err != nil {
				return nil, err
			}
			val, err := p.expression(0)
			if err != nil {
				return nil, err
			}
			if i, ok := seen[keyTok.Str]; ok {
				pairs[i].Value = val
			} else {
				seen[keyTok.Str] = len(pairs)
				pairs = append(pairs, types.HashPair{Key: keyTok.Str, Value: val})
			}
			if p.cur().Type != TokenComma {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}
	n := p.arena.New(types.NodeMultiHash, pos)
	n.Pairs = pairs
	return n, nil
}

// parseArgList parses a comma-separated expression list up to and
// including the closing ')'. The cursor sits just after the opening '('.
func (p *parser) parseArgList() ([]*types.Ast, error) {
	var args []*types.Ast
	if p.cur().Type != TokenRParen {
		for {
			arg, err := p.expression(0)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.cur().Type != TokenComma {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return args, nil
}

// nud (null denotation) parses tok as a prefix expression: an operand
// with nothing to its left, per §4.3.
func (p *parser) nud() (*types.Ast, error) {
	tok := p.cur()
	switch tok.Type {
	case TokenAt:
		p.advance()
		return p.arena.New(types.NodeIdentity, tok.Position), nil

	case TokenIdentifier:
		p.advance()
		n := p.arena.New(types.NodeField, tok.Position)
		n.Name = tok.Str
		return n, nil

	case TokenQuotedIdentifier:
		p.advance()
		if p.cur().Type == TokenLParen {
			return nil, types.NewCompileError(types.ErrQuotedIdentifierAsFunction, tok.Position,
				"quoted identifier %q cannot be used as a function name", tok.Str)
		}
		n := p.arena.New(types.NodeField, tok.Position)
		n.Name = tok.Str
		return n, nil

	case TokenStar:
		p.advance()
		return p.wildcardValues(p.arena.New(types.NodeIdentity, tok.Position), tok.Position)

	case TokenLiteral:
		p.advance()
		n := p.arena.New(types.NodeLiteral, tok.Position)
		n.Lit = tok.Lit
		return n, nil

	case TokenLBracket:
		p.advance()
		return p.bracketNud(tok.Position)

	case TokenFlatten:
		p.advance()
		flat := p.arena.New(types.NodeFlatten, tok.Position)
		flat.Inner = p.arena.New(types.NodeIdentity, tok.Position)
		rhs, err := p.projectionRHS(9)
		if err != nil {
			return nil, err
		}
		proj := p.arena.New(types.NodeProjection, tok.Position)
		proj.LHS = flat
		proj.RHS = rhs
		return proj, nil

	case TokenLBrace:
		p.advance()
		return p.parseMultiHash(tok.Position)

	case TokenAmpersand:
		p.advance()
		inner, err := p.expression(45)
		if err != nil {
			return nil, err
		}
		n := p.arena.New(types.NodeExprRef, tok.Position)
		n.Inner = inner
		return n, nil

	case TokenNot:
		p.advance()
		inner, err := p.expression(45)
		if err != nil {
			return nil, err
		}
		n := p.arena.New(types.NodeNot, tok.Position)
		n.Inner = inner
		return n, nil

	case TokenFilter:
		p.advance()
		return p.parseFilter(p.arena.New(types.NodeIdentity, tok.Position), tok.Position)

	case TokenLParen:
		p.advance()
		inner, err := p.expression(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return inner, nil

	default:
		return nil, types.NewCompileError(types.ErrUnexpectedToken, tok.Position, "unexpected token %s", tok.Type)
	}
}

// bracketNud dispatches the three nud forms that begin with '[' (the
// opening bracket has already been consumed): index/slice, a wildcard
// index projection ("[*]"), or a multi-select list.
func (p *parser) bracketNud(pos int) (*types.Ast, error) {
	switch p.cur().Type {
	case TokenNumber, TokenColon:
		return p.parseIndexOrSlice(pos)
	case TokenStar:
		if p.peek(1).Type == TokenRBracket {
			p.advance() // '*'
			p.advance() // ']'
			rhs, err := p.projectionRHS(20)
			if err != nil {
				return nil, err
			}
			proj := p.arena.New(types.NodeProjection, pos)
			proj.LHS = p.arena.New(types.NodeIdentity, pos)
			proj.RHS = rhs
			return proj, nil
		}
		return p.parseMultiList(pos)
	default:
		return p.parseMultiList(pos)
	}
}

// led (left denotation) parses tok as an infix or postfix continuation of
// left, per §4.3.
func (p *parser) led(left *types.Ast) (*types.Ast, error) {
	tok := p.cur()
	switch tok.Type {
	case TokenDot:
		p.advance()
		if p.cur().Type == TokenStar {
			pos := p.cur().Position
			p.advance()
			return p.wildcardValues(left, pos)
		}
		var rhs *types.Ast
		var err error
		if p.cur().Type == TokenLBracket {
			pos := p.cur().Position
			p.advance()
			rhs, err = p.parseMultiList(pos)
		} else {
			rhs, err = p.expression(40)
		}
		if err != nil {
			return nil, err
		}
		n := p.arena.New(types.NodeSubExpr, tok.Position)
		n.LHS = left
		n.RHS = rhs
		return n, nil

	case TokenLBracket:
		p.advance()
		switch p.cur().Type {
		case TokenNumber, TokenColon:
			idxOrSlice, err := p.parseIndexOrSlice(tok.Position)
			if err != nil {
				return nil, err
			}
			n := p.arena.New(types.NodeSubExpr, tok.Position)
			n.LHS = left
			n.RHS = idxOrSlice
			return n, nil
		case TokenStar:
			p.advance()
			if _, err := p.expect(TokenRBracket); err != nil {
				return nil, err
			}
			rhs, err := p.projectionRHS(20)
			if err != nil {
				return nil, err
			}
			proj := p.arena.New(types.NodeProjection, tok.Position)
			proj.LHS = left
			proj.RHS = rhs
			return proj, nil
		default:
			return nil, types.NewCompileError(types.ErrUnexpectedToken, p.cur().Position,
				"unexpected token %s after '['", p.cur().Type)
		}

	case TokenOr:
		p.advance()
		rhs, err := p.expression(2)
		if err != nil {
			return nil, err
		}
		n := p.arena.New(types.NodeOr, tok.Position)
		n.LHS, n.RHS = left, rhs
		return n, nil

	case TokenAnd:
		p.advance()
		rhs, err := p.expression(3)
		if err != nil {
			return nil, err
		}
		n := p.arena.New(types.NodeAnd, tok.Position)
		n.LHS, n.RHS = left, rhs
		return n, nil

	case TokenPipe:
		p.advance()
		rhs, err := p.expression(1)
		if err != nil {
			return nil, err
		}
		n := p.arena.New(types.NodeSubExpr, tok.Position)
		n.LHS, n.RHS = left, rhs
		return n, nil

	case TokenLParen:
		if left.Kind != types.NodeField {
			return nil, types.NewCompileError(types.ErrUnexpectedToken, tok.Position, "'(' can only follow a function name")
		}
		p.advance()
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		n := p.arena.New(types.NodeFunction, tok.Position)
		n.Name = left.Name
		n.Items = args
		return n, nil

	case TokenFlatten:
		p.advance()
		flat := p.arena.New(types.NodeFlatten, tok.Position)
		flat.Inner = left
		rhs, err := p.projectionRHS(9)
		if err != nil {
			return nil, err
		}
		proj := p.arena.New(types.NodeProjection, tok.Position)
		proj.LHS = flat
		proj.RHS = rhs
		return proj, nil

	case TokenFilter:
		p.advance()
		return p.parseFilter(left, tok.Position)

	case TokenEqual, TokenNotEqual, TokenLess, TokenLessEqual, TokenGreater, TokenGreaterEqual:
		cmp := comparatorFor(tok.Type)
		p.advance()
		rhs, err := p.expression(5)
		if err != nil {
			return nil, err
		}
		n := p.arena.New(types.NodeComparison, tok.Position)
		n.Cmp = cmp
		n.LHS, n.RHS = left, rhs
		return n, nil

	default:
		return nil, types.NewCompileError(types.ErrUnexpectedToken, tok.Position, "unexpected token %s", tok.Type)
	}
}

func comparatorFor(t TokenType) types.Comparator {
	switch t {
	case TokenNotEqual:
		return types.CmpNe
	case TokenLess:
		return types.CmpLt
	case TokenLessEqual:
		return types.CmpLe
	case TokenGreater:
		return types.CmpGt
	case TokenGreaterEqual:
		return types.CmpGe
	default:
		return types.CmpEq
	}
}
