package ast

import (
	"strings"

	"vela/pkg/value"
)

// Node is either a literal wrapping an operand or an operation with ordered
// children. Symbol-like nodes (SYMBOL, TYPE, HELP_COMMENT) carry a token.
type Node struct {
	Op       Operation
	Token    string
	Operand  value.Operand // non-nil only for literals
	Children []*Node
}

// NewLiteral creates a literal node
func NewLiteral(v value.Operand) *Node {
	return &Node{Operand: v}
}

// NewOp creates an operation node with the given children
func NewOp(op Operation, children ...*Node) *Node {
	return &Node{Op: op, Children: children}
}

// NewToken creates an operation node carrying a source token
func NewToken(op Operation, token string, children ...*Node) *Node {
	return &Node{Op: op, Token: token, Children: children}
}

// NewSymbol creates a SYMBOL node
func NewSymbol(name string) *Node {
	return NewToken(SYMBOL, name)
}

// IsLiteral reports whether the node wraps an operand
func (n *Node) IsLiteral() bool {
	return n.Operand != nil
}

// HasChildren reports whether the node has at least one child
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// Head returns the first child, or nil
func (n *Node) Head() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// Left is an alias of Head for binary-shaped nodes
func (n *Node) Left() *Node {
	return n.Head()
}

// Right returns the second child, or nil
func (n *Node) Right() *Node {
	if len(n.Children) < 2 {
		return nil
	}
	return n.Children[1]
}

// AddChild appends a child node
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// String renders the tree as an s-expression, mostly for debug logging
func (n *Node) String() string {
	if n == nil {
		return "()"
	}
	if n.IsLiteral() {
		return value.Repr(n.Operand)
	}

	switch n.Op {
	case SYMBOL, TYPE:
		return n.Token
	case HELP_COMMENT:
		return "<<" + n.Token + ">>"
	}

	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(n.Op.String())
	for _, child := range n.Children {
		sb.WriteByte(' ')
		sb.WriteString(child.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
