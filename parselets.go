package formula

// bindingPowers for infix tokens. Not listed means the token cannot continue
// an expression. The higher the number, the tighter the operator binds.
var bindingPowers = map[TokenType]int{
	TokenOr:           1,
	TokenAnd:          2,
	TokenEqual:        3,
	TokenNotEqual:     3,
	TokenGreater:      4,
	TokenGreaterEqual: 4,
	TokenPlus:         5,
	TokenMinus:        5,
	TokenTimes:        6,
	TokenDivide:       6,
}

// binaryOperators maps infix tokens to the operator they produce and whether
// the operator is left associative.
var binaryOperators = map[TokenType]struct {
	op   Operator
	left bool
}{
	TokenOr:           {OpOr, true},
	TokenAnd:          {OpAnd, true},
	TokenEqual:        {OpEqual, true},
	TokenNotEqual:     {OpNotEqual, true},
	TokenGreater:      {OpGreater, true},
	TokenGreaterEqual: {OpGreaterEqual, true},
	TokenPlus:         {OpAdd, true},
	TokenMinus:        {OpSubtract, true},
	TokenTimes:        {OpMultiply, true},
	TokenDivide:       {OpDivide, true},
}

// prefix: null denotation. These tokens start an expression and have no left
// context: literals, identifiers, builtin calls, `not` and parentheses.
func (p *parser) prefix(t Token) (*Node, Error) {
	switch t.Type {
	case TokenNumber:
		return &Node{Type: NodeNumber, Number: t.Number}, nil
	case TokenString:
		return &Node{Type: NodeString, Text: t.Text}, nil
	case TokenIdentifier:
		if next, ok := p.peek(); ok && next.Type == TokenLeftParen {
			return p.builtinCall(t.Text)
		}
		return &Node{Type: NodeIdentifier, Name: t.Text}, nil
	case TokenLeftParen:
		result, err := p.parseExpr(0)
		return p.ensure(result, err, TokenRightParen, "expected right paren to close expression")
	case TokenNot:
		operand, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		return &Node{Type: NodeUnop, Unary: OpNot, Left: operand}, nil
	}
	return nil, newParseError(string(t.Type), "unexpected %s", t)
}

// infix: left denotation. These tokens combine the expression parsed so far
// with the expression to their right.
func (p *parser) infix(t Token, left *Node) (*Node, Error) {
	bin, ok := binaryOperators[t.Type]
	if !ok {
		return nil, newParseError(string(t.Type), "unexpected %s", t)
	}
	bindingPower := bindingPowers[t.Type]
	if !bin.left {
		bindingPower--
	}
	right, err := p.parseExpr(bindingPower)
	if err != nil {
		return nil, err
	}
	return &Node{Type: NodeBinop, Op: bin.op, Left: left, Right: right}, nil
}

// builtinCall parses `name(arg, ...)`. The name has been consumed and the
// next token is known to be a left paren.
func (p *parser) builtinCall(name string) (*Node, Error) {
	p.advance()
	args := []*Node{}
	if next, ok := p.peek(); ok && next.Type == TokenRightParen {
		p.advance()
		return &Node{Type: NodeBuiltin, Name: name, Args: args}, nil
	}
	for {
		if _, ok := p.peek(); !ok {
			return nil, newParseError(name, "unexpected end of argument list for builtin %q", name)
		}
		if next, _ := p.peek(); next.Type == TokenRightParen {
			return nil, newParseError(name, "expected argument after comma in builtin %q", name)
		}
		arg, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		next, ok := p.advance()
		switch {
		case !ok:
			return nil, newParseError(name, "expected closing parenthesis after arguments to builtin %q", name)
		case next.Type == TokenComma:
			continue
		case next.Type == TokenRightParen:
			return &Node{Type: NodeBuiltin, Name: name, Args: args}, nil
		}
		return nil, newParseError(name, "expected comma or closing parenthesis in arguments to builtin %q but found %s", name, next)
	}
}
