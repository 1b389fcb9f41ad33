package formula

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Schema gives the kind of each attribute a formula may reference. KindAny
// may be used for attributes whose values are mixed.
type Schema map[string]Kind

// SchemaOf returns the schema of a representative environment.
func SchemaOf(env Environment) Schema {
	s := make(Schema, len(env))
	for k, v := range env {
		s[k] = v.Kind()
	}
	return s
}

// TypeChecker infers the result kind of a formula without evaluating it.
type TypeChecker interface {
	Run(schema Schema) (Kind, Error)
}

// NewTypeChecker returns a type checker for the given AST. Only the
// WithBuiltins option has an effect.
func NewTypeChecker(ast *Node, options ...InterpreterOption) TypeChecker {
	i := &interpreter{builtins: DefaultBuiltins}
	for _, opt := range options {
		opt(i)
	}
	return &typeChecker{ast: ast, builtins: i.builtins}
}

// Check infers the kind a formula produces given the kinds of the attributes
// it references. It reports the errors that evaluating against any row of
// that schema would definitely produce. KindAny is returned when the result
// depends on data, for example the branches of if().
func Check(ast *Node, schema Schema, options ...InterpreterOption) (Kind, Error) {
	return NewTypeChecker(ast, options...).Run(schema)
}

type typeChecker struct {
	ast      *Node
	builtins Builtins
}

func (c *typeChecker) Run(schema Schema) (Kind, Error) {
	return c.run(c.ast, schema)
}

func requireStatic(op Operator, kind Kind, left, right Kind) Error {
	for _, k := range []Kind{left, right} {
		if !kindMatches(kind, k) {
			return newTypeError(string(op), "operands of %s must be %s but got %s", op, kind, k)
		}
	}
	return nil
}

func (c *typeChecker) run(ast *Node, schema Schema) (Kind, Error) {
	switch ast.Type {
	case NodeNumber:
		return KindNum, nil
	case NodeString:
		return KindString, nil
	case NodeIdentifier:
		if k, ok := schema[ast.Name]; ok {
			return k, nil
		}
		names := maps.Keys(schema)
		slices.Sort(names)
		return "", newEvalError(ast.Name, "unbound identifier %s, expected one of [%s]", ast.Name, strings.Join(names, ", "))
	case NodeUnop:
		k, err := c.run(ast.Left, schema)
		if err != nil {
			return "", err
		}
		if !kindMatches(KindBool, k) {
			return "", newTypeError(string(ast.Unary), "operand of %s must be boolean but got %s", ast.Unary, k)
		}
		return KindBool, nil
	case NodeBinop:
		left, err := c.run(ast.Left, schema)
		if err != nil {
			return "", err
		}
		right, err := c.run(ast.Right, schema)
		if err != nil {
			return "", err
		}
		switch ast.Op {
		case OpEqual, OpNotEqual:
			return KindBool, nil
		case OpAnd, OpOr:
			return KindBool, requireStatic(ast.Op, KindBool, left, right)
		case OpGreater, OpGreaterEqual:
			return KindBool, requireStatic(ast.Op, KindNum, left, right)
		}
		return KindNum, requireStatic(ast.Op, KindNum, left, right)
	case NodeBuiltin:
		b, ok := c.builtins[ast.Name]
		if !ok {
			return "", newEvalError(ast.Name, "unknown builtin %s", ast.Name)
		}
		if err := b.checkArity(len(ast.Args)); err != nil {
			return "", err
		}
		for idx, arg := range ast.Args {
			k, err := c.run(arg, schema)
			if err != nil {
				return "", err
			}
			if want := b.paramKind(idx); !kindMatches(want, k) {
				return "", newTypeError(b.Name, "%s() argument %d must be %s but got %s", b.Name, idx+1, want, k)
			}
		}
		if b.Result == "" {
			return KindAny, nil
		}
		return b.Result, nil
	}
	return "", newEvalError("", "unexpected node %s", ast.Type)
}
