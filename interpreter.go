package formula

// InterpreterOption passes configuration settings when creating a new
// interpreter instance.
type InterpreterOption func(*interpreter)

// WithBuiltins replaces the builtin table. Use DefaultBuiltins.With(...) to
// extend the defaults instead of replacing them.
func WithBuiltins(builtins Builtins) InterpreterOption {
	return func(i *interpreter) {
		i.builtins = builtins
	}
}

// Interpreter executes formula AST programs.
type Interpreter interface {
	Run(env Environment) (Value, Error)
}

// NewInterpreter returns an interpreter for the given AST. It holds no
// per-run state, so Run may be called concurrently with distinct
// environments.
func NewInterpreter(ast *Node, options ...InterpreterOption) Interpreter {
	i := &interpreter{
		ast:      ast,
		builtins: DefaultBuiltins,
	}
	for _, opt := range options {
		opt(i)
	}
	return i
}

// Interpret evaluates an AST against an environment using DefaultBuiltins.
func Interpret(ast *Node, env Environment) (Value, Error) {
	return NewInterpreter(ast).Run(env)
}

type interpreter struct {
	ast      *Node
	builtins Builtins
}

func (i *interpreter) Run(env Environment) (Value, Error) {
	return i.run(i.ast, env)
}

func (i *interpreter) run(ast *Node, env Environment) (Value, Error) {
	switch ast.Type {
	case NodeNumber:
		return Num(ast.Number), nil
	case NodeString:
		return String(ast.Text), nil
	case NodeIdentifier:
		if v, ok := env.Lookup(ast.Name); ok {
			return v, nil
		}
		return Value{}, newEvalError(ast.Name, "unbound identifier %s", ast.Name)
	case NodeUnop:
		operand, err := i.run(ast.Left, env)
		if err != nil {
			return Value{}, err
		}
		if !operand.IsBool() {
			return Value{}, newTypeError(string(ast.Unary), "operand of %s must be boolean but got %s", ast.Unary, operand.Repr())
		}
		return Bool(!operand.AsBool()), nil
	case NodeBinop:
		// Both sides are always evaluated, including for && and ||.
		left, err := i.run(ast.Left, env)
		if err != nil {
			return Value{}, err
		}
		right, err := i.run(ast.Right, env)
		if err != nil {
			return Value{}, err
		}
		return binop(ast.Op, left, right)
	case NodeBuiltin:
		args := make([]Value, 0, len(ast.Args))
		for _, arg := range ast.Args {
			v, err := i.run(arg, env)
			if err != nil {
				return Value{}, err
			}
			args = append(args, v)
		}
		b, ok := i.builtins[ast.Name]
		if !ok {
			return Value{}, newEvalError(ast.Name, "unknown builtin %s", ast.Name)
		}
		if err := b.check(args); err != nil {
			return Value{}, err
		}
		return b.Fn(args)
	}
	return Value{}, newEvalError("", "unexpected node %s", ast.Type)
}

// requireKind returns a type error naming the first operand not of `kind`.
func requireKind(op Operator, kind Kind, left, right Value) Error {
	for _, v := range []Value{left, right} {
		if v.Kind() != kind {
			return newTypeError(string(op), "operands of %s must be %s but got %s", op, kind, v.Repr())
		}
	}
	return nil
}

func binop(op Operator, left, right Value) (Value, Error) {
	switch op {
	case OpEqual:
		return Bool(left.Equal(right)), nil
	case OpNotEqual:
		return Bool(!left.Equal(right)), nil
	case OpAnd, OpOr:
		if err := requireKind(op, KindBool, left, right); err != nil {
			return Value{}, err
		}
		if op == OpAnd {
			return Bool(left.AsBool() && right.AsBool()), nil
		}
		return Bool(left.AsBool() || right.AsBool()), nil
	}

	if err := requireKind(op, KindNum, left, right); err != nil {
		return Value{}, err
	}
	l, r := left.AsNum(), right.AsNum()
	switch op {
	case OpAdd:
		return Num(l + r), nil
	case OpSubtract:
		return Num(l - r), nil
	case OpMultiply:
		return Num(l * r), nil
	case OpDivide:
		// Division by zero yields an infinity or NaN, not an error.
		return Num(l / r), nil
	case OpGreater:
		return Bool(l > r), nil
	case OpGreaterEqual:
		return Bool(l >= r), nil
	}
	return Value{}, newEvalError(string(op), "unknown operator %s", op)
}
