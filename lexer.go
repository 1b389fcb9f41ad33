package formula

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// TokenType defines the type of token produced by the lexer.
type TokenType string

// Token types
const (
	TokenNumber       TokenType = "number"
	TokenString       TokenType = "string"
	TokenIdentifier   TokenType = "identifier"
	TokenPlus         TokenType = "+"
	TokenMinus        TokenType = "-"
	TokenTimes        TokenType = "*"
	TokenDivide       TokenType = "/"
	TokenEqual        TokenType = "="
	TokenNotEqual     TokenType = "!="
	TokenGreater      TokenType = ">"
	TokenGreaterEqual TokenType = ">="
	TokenAnd          TokenType = "&&"
	TokenOr           TokenType = "||"
	TokenNot          TokenType = "not"
	TokenLeftParen    TokenType = "("
	TokenRightParen   TokenType = ")"
	TokenComma        TokenType = ","
)

var basic = map[rune]TokenType{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenTimes,
	'/': TokenDivide,
	'=': TokenEqual,
	'>': TokenGreater,
	'(': TokenLeftParen,
	')': TokenRightParen,
	',': TokenComma,
}

// doubles are the two-character operators keyed by their first rune. A `>`
// may stand alone, the others may not.
var doubles = map[rune]struct {
	second rune
	typ    TokenType
}{
	'>': {'=', TokenGreaterEqual},
	'!': {'=', TokenNotEqual},
	'&': {'&', TokenAnd},
	'|': {'|', TokenOr},
}

// Token describes a single token produced by the lexer. Number is set for
// number tokens, Text for strings and identifiers.
type Token struct {
	Type   TokenType
	Number float64
	Text   string
}

func (t Token) String() string {
	switch t.Type {
	case TokenNumber:
		return "number(" + strconv.FormatFloat(t.Number, 'f', -1, 64) + ")"
	case TokenString:
		return "string(" + strconv.Quote(t.Text) + ")"
	case TokenIdentifier:
		return "identifier(" + t.Text + ")"
	}
	return string(t.Type)
}

// Lex converts a formula into its tokens in input order. Either the whole
// input is consumed or a lex error is returned.
func Lex(source string) ([]Token, Error) {
	l := &lexer{expression: source}
	tokens := make([]Token, 0, len(source)/2)
	for {
		t, ok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, t)
	}
}

type lexer struct {
	expression string
	pos        int
	lastWidth  int
}

// next returns the next rune in the expression at the current position.
func (l *lexer) next() rune {
	if l.pos >= len(l.expression) {
		l.lastWidth = 0
		return -1
	}
	r, w := utf8.DecodeRuneInString(l.expression[l.pos:])
	l.pos += w
	l.lastWidth = w
	return r
}

// back moves back one rune.
func (l *lexer) back() {
	l.pos -= l.lastWidth
}

// peek returns the next rune without moving the position forward.
func (l *lexer) peek() rune {
	r := l.next()
	l.back()
	return r
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

// consumeNumber reads an integer with an optional fractional part. The
// leading digit has already been read.
func (l *lexer) consumeNumber() (Token, Error) {
	start := l.pos - l.lastWidth
	for isDigit(l.peek()) {
		l.next()
	}
	if l.peek() == '.' {
		l.next()
		if !isDigit(l.peek()) {
			return Token{}, newLexError(l.pos-1, "expected digit after decimal point")
		}
		for isDigit(l.peek()) {
			l.next()
		}
	}
	f, err := strconv.ParseFloat(l.expression[start:l.pos], 64)
	if err != nil {
		return Token{}, newLexError(start, "invalid number %s", l.expression[start:l.pos])
	}
	return Token{Type: TokenNumber, Number: f}, nil
}

// consumeIdentifier reads runes until a non-identifier character. The
// keyword `not` becomes its own token.
func (l *lexer) consumeIdentifier() Token {
	start := l.pos - l.lastWidth
	for isIdentPart(l.peek()) {
		l.next()
	}
	value := l.expression[start:l.pos]
	if value == "not" {
		return Token{Type: TokenNot}
	}
	return Token{Type: TokenIdentifier, Text: value}
}

// consumeString reads runes until the matching unescaped quote. A backslash
// escapes the quote or another backslash and is kept literally otherwise.
func (l *lexer) consumeString(quote rune) (Token, Error) {
	start := l.pos - l.lastWidth
	var sb strings.Builder
	for {
		r := l.next()
		switch {
		case r == -1:
			return Token{}, newLexError(start, "unterminated string")
		case r == quote:
			return Token{Type: TokenString, Text: sb.String()}, nil
		case r == '\\' && (l.peek() == quote || l.peek() == '\\'):
			sb.WriteRune(l.next())
		default:
			sb.WriteRune(r)
		}
	}
}

// Next returns the next token. The boolean is false once the input is
// exhausted.
func (l *lexer) Next() (Token, bool, Error) {
	r := l.next()
	for r == ' ' || r == '\t' || r == '\r' || r == '\n' {
		r = l.next()
	}
	start := l.pos - l.lastWidth
	switch {
	case r == -1:
		return Token{}, false, nil
	case doubles[r].typ != "":
		d := doubles[r]
		if l.peek() == d.second {
			l.next()
			return Token{Type: d.typ}, true, nil
		}
		if typ, ok := basic[r]; ok {
			return Token{Type: typ}, true, nil
		}
		return Token{}, false, newLexError(start, "unexpected character %q, did you mean %q?", r, string([]rune{r, d.second}))
	case basic[r] != "":
		return Token{Type: basic[r]}, true, nil
	case isDigit(r):
		t, err := l.consumeNumber()
		return t, err == nil, err
	case r == '"' || r == '\'':
		t, err := l.consumeString(r)
		return t, err == nil, err
	case isIdentStart(r):
		return l.consumeIdentifier(), true, nil
	}
	return Token{}, false, newLexError(start, "unexpected character %q", r)
}
