package parser

import "github.com/gojmespath/gojmespath/pkg/types"

// TokenType identifies the lexical category of a Token.
type TokenType uint8

const (
	TokenEOF TokenType = iota
	TokenIdentifier
	TokenQuotedIdentifier
	TokenNumber
	TokenLiteral // backtick-delimited JSON literal or '...' raw string

	TokenDot          // .
	TokenStar         // *
	TokenFlatten      // []
	TokenAnd          // &&
	TokenOr           // ||
	TokenPipe         // |
	TokenFilter       // [?
	TokenLBracket     // [
	TokenRBracket     // ]
	TokenComma        // ,
	TokenColon        // :
	TokenNot          // !
	TokenNotEqual     // !=
	TokenEqual        // ==
	TokenGreater      // >
	TokenGreaterEqual // >=
	TokenLess         // <
	TokenLessEqual    // <=
	TokenAt           // @
	TokenAmpersand    // &
	TokenLParen       // (
	TokenRParen       // )
	TokenLBrace       // {
	TokenRBrace       // }
)

// String names the token type using its source-level spelling, for error
// messages.
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of expression"
	case TokenIdentifier:
		return "identifier"
	case TokenQuotedIdentifier:
		return "quoted identifier"
	case TokenNumber:
		return "number"
	case TokenLiteral:
		return "literal"
	case TokenDot:
		return "."
	case TokenStar:
		return "*"
	case TokenFlatten:
		return "[]"
	case TokenAnd:
		return "&&"
	case TokenOr:
		return "||"
	case TokenPipe:
		return "|"
	case TokenFilter:
		return "[?"
	case TokenLBracket:
		return "["
	case TokenRBracket:
		return "]"
	case TokenComma:
		return ","
	case TokenColon:
		return ":"
	case TokenNot:
		return "!"
	case TokenNotEqual:
		return "!="
	case TokenEqual:
		return "=="
	case TokenGreater:
		return ">"
	case TokenGreaterEqual:
		return ">="
	case TokenLess:
		return "<"
	case TokenLessEqual:
		return "<="
	case TokenAt:
		return "@"
	case TokenAmpersand:
		return "&"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenLBrace:
		return "{"
	case TokenRBrace:
		return "}"
	default:
		return "(unknown)"
	}
}

// Token is a single lexical token, carrying whichever payload field its
// Type calls for (Str for identifiers, Num for numbers, Lit for backtick
// and raw string literals) plus the left-binding-power the parser consults in the Pratt
// loop.
type Token struct {
	Type     TokenType
	Str      string      // Identifier / QuotedIdentifier text
	Num      int64       // Number value
	Lit      types.Value // Literal value
	Position int
}

// lbpTable is the left-binding-power table of §4.3. Tokens not present
// bind at power 0 (never continue an expression).
var lbpTable = map[TokenType]int{
	TokenPipe:         1,
	TokenOr:           2,
	TokenAnd:          3,
	TokenEqual:        5,
	TokenNotEqual:     5,
	TokenLess:         5,
	TokenLessEqual:    5,
	TokenGreater:      5,
	TokenGreaterEqual: 5,
	TokenFlatten:      9,
	TokenStar:         20,
	TokenFilter:       21,
	TokenDot:          40,
	TokenNot:          45,
	TokenLBrace:       50,
	TokenLBracket:     55,
	TokenLParen:       60,
}

// LBP returns the token's left-binding power.
func (t Token) LBP() int {
	return lbpTable[t.Type]
}
