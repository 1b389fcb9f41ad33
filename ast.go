package formula

import (
	"strconv"
	"strings"
)

// NodeType defines the type of the abstract syntax tree node.
type NodeType int

const (
	NodeUnknown NodeType = iota
	NodeBinop
	NodeUnop
	NodeIdentifier
	NodeNumber
	NodeString
	NodeBuiltin
)

func (t NodeType) String() string {
	switch t {
	case NodeBinop:
		return "binop"
	case NodeUnop:
		return "unop"
	case NodeIdentifier:
		return "identifier"
	case NodeNumber:
		return "number"
	case NodeString:
		return "string"
	case NodeBuiltin:
		return "builtin"
	}
	return "unknown"
}

// Operator is a binary operator.
type Operator string

const (
	OpAdd          Operator = "+"
	OpSubtract     Operator = "-"
	OpMultiply     Operator = "*"
	OpDivide       Operator = "/"
	OpEqual        Operator = "="
	OpNotEqual     Operator = "!="
	OpGreater      Operator = ">"
	OpGreaterEqual Operator = ">="
	OpAnd          Operator = "&&"
	OpOr           Operator = "||"
)

// UnaryOperator is a prefix operator.
type UnaryOperator string

const OpNot UnaryOperator = "not"

// Node is a unit of the abstract syntax tree. Which fields are used depends
// on Type:
//
//   - NodeBinop: Op, Left, Right
//   - NodeUnop: Unary, Left (the operand)
//   - NodeIdentifier: Name
//   - NodeNumber: Number
//   - NodeString: Text
//   - NodeBuiltin: Name, Args
//
// Nodes are never modified after parsing, so a tree may be shared between
// goroutines.
type Node struct {
	Type   NodeType
	Op     Operator
	Unary  UnaryOperator
	Name   string
	Number float64
	Text   string
	Left   *Node
	Right  *Node
	Args   []*Node
}

// String renders the tree in a fully parenthesised prefix form, for example
// `(+ 1 (* 2 3))` for `1 + 2 * 3`.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	switch n.Type {
	case NodeNumber:
		sb.WriteString(strconv.FormatFloat(n.Number, 'f', -1, 64))
	case NodeString:
		sb.WriteString(strconv.Quote(n.Text))
	case NodeIdentifier:
		sb.WriteString(n.Name)
	case NodeUnop:
		sb.WriteString("(" + string(n.Unary) + " ")
		n.Left.write(sb)
		sb.WriteString(")")
	case NodeBinop:
		sb.WriteString("(" + string(n.Op) + " ")
		n.Left.write(sb)
		sb.WriteString(" ")
		n.Right.write(sb)
		sb.WriteString(")")
	case NodeBuiltin:
		sb.WriteString(n.Name + "(")
		for i, arg := range n.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			arg.write(sb)
		}
		sb.WriteString(")")
	default:
		sb.WriteString("?")
	}
}
