package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gojmespath/gojmespath/pkg/parser"
	"github.com/gojmespath/gojmespath/pkg/types"
)

func tokenTypes(t *testing.T, src string) []parser.TokenType {
	t.Helper()
	toks, err := parser.Tokenize(src)
	require.NoError(t, err)
	types := make([]parser.TokenType, len(toks))
	for i, tok := range toks {
		types[i] = tok.Type
	}
	return types
}

func TestTokenizeIdentifiersAndDot(t *testing.T) {
	got := tokenTypes(t, "foo.bar")
	assert.Equal(t, []parser.TokenType{
		parser.TokenIdentifier, parser.TokenDot, parser.TokenIdentifier, parser.TokenEOF,
	}, got)
}

func TestTokenizeNumbers(t *testing.T) {
	toks, err := parser.Tokenize("[-1]")
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, parser.TokenNumber, toks[1].Type)
	assert.Equal(t, int64(-1), toks[1].Num)
}

func TestTokenizePunctuatorDisambiguation(t *testing.T) {
	tests := []struct {
		src  string
		want []parser.TokenType
	}{
		{"[]", []parser.TokenType{parser.TokenFlatten, parser.TokenEOF}},
		{"[?", []parser.TokenType{parser.TokenFilter, parser.TokenEOF}},
		{"[", []parser.TokenType{parser.TokenLBracket, parser.TokenEOF}},
		{"||", []parser.TokenType{parser.TokenOr, parser.TokenEOF}},
		{"|", []parser.TokenType{parser.TokenPipe, parser.TokenEOF}},
		{"&&", []parser.TokenType{parser.TokenAnd, parser.TokenEOF}},
		{"&", []parser.TokenType{parser.TokenAmpersand, parser.TokenEOF}},
		{"!=", []parser.TokenType{parser.TokenNotEqual, parser.TokenEOF}},
		{"!", []parser.TokenType{parser.TokenNot, parser.TokenEOF}},
		{"<=", []parser.TokenType{parser.TokenLessEqual, parser.TokenEOF}},
		{"<", []parser.TokenType{parser.TokenLess, parser.TokenEOF}},
		{">=", []parser.TokenType{parser.TokenGreaterEqual, parser.TokenEOF}},
		{">", []parser.TokenType{parser.TokenGreater, parser.TokenEOF}},
		{"==", []parser.TokenType{parser.TokenEqual, parser.TokenEOF}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenTypes(t, tt.src))
		})
	}
}

func TestTokenizeBareEqualsIsAnError(t *testing.T) {
	_, err := parser.Tokenize("a=b")
	require.Error(t, err)
	var cerr *types.CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, types.ErrBareEquals, cerr.Code)
}

func TestTokenizeQuotedIdentifierEscapes(t *testing.T) {
	toks, err := parser.Tokenize(`"a\nb"`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, "a\nb", toks[0].Str)
}

func TestTokenizeRawStringEscape(t *testing.T) {
	toks, err := parser.Tokenize(`'it\'s'`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	got, ok := toks[0].Lit.AsString()
	require.True(t, ok)
	assert.Equal(t, "it's", got)
}

func TestTokenizeLiteralJSONObject(t *testing.T) {
	toks, err := parser.Tokenize("`{\"a\": 1}`")
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, parser.TokenLiteral, toks[0].Type)
	assert.Equal(t, types.KindObject, toks[0].Lit.Kind())
}

func TestTokenizeUnterminatedDelimiters(t *testing.T) {
	tests := []struct {
		src  string
		code types.ErrorCode
	}{
		{`"unterminated`, types.ErrUnterminatedString},
		{`'unterminated`, types.ErrUnterminatedRawString},
		{"`unterminated", types.ErrUnterminatedLiteral},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := parser.Tokenize(tt.src)
			require.Error(t, err)
			var cerr *types.CompileError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.code, cerr.Code)
		})
	}
}

func TestTokenizeInvalidCharacter(t *testing.T) {
	_, err := parser.Tokenize("a~b")
	require.Error(t, err)
	var cerr *types.CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, types.ErrInvalidCharacter, cerr.Code)
}

func TestTokenizeLoneMinusIsInvalidCharacter(t *testing.T) {
	_, err := parser.Tokenize("- 1")
	require.Error(t, err)
	var cerr *types.CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, types.ErrInvalidCharacter, cerr.Code)
}

func TestTokenizeSkipsWhitespace(t *testing.T) {
	got := tokenTypes(t, "  foo \t.\nbar\r\n")
	assert.Equal(t, []parser.TokenType{
		parser.TokenIdentifier, parser.TokenDot, parser.TokenIdentifier, parser.TokenEOF,
	}, got)
}

func TestLBPTable(t *testing.T) {
	toks, err := parser.Tokenize("a || b && c == d")
	require.NoError(t, err)
	// a || b && c == d
	// index:   0  1 2 3 4  5 6
	assert.Equal(t, 2, toks[1].LBP()) // ||
	assert.Equal(t, 3, toks[3].LBP()) // &&
	assert.Equal(t, 5, toks[5].LBP()) // ==
	assert.Equal(t, 0, toks[0].LBP()) // identifier binds at 0
}
