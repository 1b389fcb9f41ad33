package formula

// Parse builds an abstract syntax tree from the tokens produced by Lex. The
// whole token list must form a single expression.
func Parse(tokens []Token) (*Node, Error) {
	p := &parser{tokens: tokens}
	ast, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if t, ok := p.peek(); ok {
		return nil, newParseError(string(t.Type), "expected end of formula but found %s", t)
	}
	return ast, nil
}

// parser is an implementation of a Pratt or top-down operator precedence
// parser. It reads the token slice through a cursor and never modifies it.
type parser struct {
	tokens []Token
	pos    int
}

// peek returns the next token without consuming it.
func (p *parser) peek() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

// advance consumes and returns the next token.
func (p *parser) advance() (Token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

func (p *parser) parseExpr(bindingPower int) (*Node, Error) {
	leftToken, ok := p.advance()
	if !ok {
		return nil, newParseError("", "incomplete expression, unexpected end of formula")
	}
	leftNode, err := p.prefix(leftToken)
	if err != nil {
		return nil, err
	}
	for {
		currentToken, ok := p.peek()
		if !ok || bindingPowers[currentToken.Type] <= bindingPower {
			return leftNode, nil
		}
		p.advance()
		leftNode, err = p.infix(currentToken, leftNode)
		if err != nil {
			return nil, err
		}
	}
}

// ensure the next token is `typ`, returning the `result` unless `err` is set
// or the token is missing. Advances past the expected token.
func (p *parser) ensure(result *Node, err Error, typ TokenType, message string) (*Node, Error) {
	if err != nil {
		return nil, err
	}
	if t, ok := p.advance(); ok && t.Type == typ {
		return result, nil
	}
	return nil, newParseError(string(typ), "%s", message)
}
