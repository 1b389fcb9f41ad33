package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func num(n float64) Token    { return Token{Type: TokenNumber, Number: n} }
func ident(s string) Token   { return Token{Type: TokenIdentifier, Text: s} }
func str(s string) Token     { return Token{Type: TokenString, Text: s} }
func op(typ TokenType) Token { return Token{Type: typ} }

func TestLexer(t *testing.T) {
	cases := []struct {
		input  string
		tokens []Token
	}{
		{"1 + 2 - 3 * 4 / 5", []Token{num(1), op(TokenPlus), num(2), op(TokenMinus), num(3), op(TokenTimes), num(4), op(TokenDivide), num(5)}},
		{"x + x", []Token{ident("x"), op(TokenPlus), ident("x")}},
		{"(1 + 2) * 3", []Token{op(TokenLeftParen), num(1), op(TokenPlus), num(2), op(TokenRightParen), op(TokenTimes), num(3)}},
		{"1 >= 2", []Token{num(1), op(TokenGreaterEqual), num(2)}},
		{"1>2", []Token{num(1), op(TokenGreater), num(2)}},
		{"a != b", []Token{ident("a"), op(TokenNotEqual), ident("b")}},
		{"a = b", []Token{ident("a"), op(TokenEqual), ident("b")}},
		{"a && b || not c", []Token{ident("a"), op(TokenAnd), ident("b"), op(TokenOr), op(TokenNot), ident("c")}},
		{"notable", []Token{ident("notable")}},
		{"_x1 + Y_2", []Token{ident("_x1"), op(TokenPlus), ident("Y_2")}},
		{"0.25 + 10", []Token{num(0.25), op(TokenPlus), num(10)}},
		{`"double" 'single'`, []Token{str("double"), str("single")}},
		{`"say \"hi\"" 'it\'s' "a\\b"`, []Token{str(`say "hi"`), str("it's"), str(`a\b`)}},
		{`"a\nb"`, []Token{str(`a\nb`)}},
		{`"héllo"`, []Token{str("héllo")}},
		{"max(a, b)", []Token{ident("max"), op(TokenLeftParen), ident("a"), op(TokenComma), ident("b"), op(TokenRightParen)}},
		{" \t\r\n", []Token{}},
		{"", []Token{}},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			tokens, err := Lex(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.tokens, tokens)
		})
	}
}

func TestLexerWhitespaceInvariance(t *testing.T) {
	spaced, err := Lex("1 +   2")
	require.NoError(t, err)
	tight, err := Lex("1+2")
	require.NoError(t, err)
	assert.Equal(t, tight, spaced)
}

func TestLexerErrors(t *testing.T) {
	cases := []struct {
		input  string
		offset int
		err    string
	}{
		{"1 + #", 4, "unexpected character '#'"},
		{"a ! b", 2, `did you mean "!="`},
		{"a & b", 2, `did you mean "&&"`},
		{"a | b", 2, `did you mean "||"`},
		{"1 < 2", 2, "unexpected character '<'"},
		{`"open`, 0, "unterminated string"},
		{"x + 'open", 4, "unterminated string"},
		{"1.", 1, "expected digit after decimal point"},
		{"1.x", 1, "expected digit after decimal point"},
		{".5", 0, "unexpected character '.'"},
		{"a.b", 1, "unexpected character '.'"},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			tokens, err := Lex(tc.input)
			require.Error(t, err)
			assert.Nil(t, tokens)
			assert.Equal(t, LexError, err.Kind())
			assert.Equal(t, tc.offset, err.Offset())
			assert.Contains(t, err.Error(), tc.err)
		})
	}
}

func TestLexErrorPretty(t *testing.T) {
	_, err := Lex("a + #")
	require.Error(t, err)
	assert.Equal(t, "lex error: unexpected character '#'\na + #\n....^", err.Pretty("a + #"))
}
