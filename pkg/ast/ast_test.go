package ast

import (
	"testing"

	"vela/pkg/value"
)

func TestArity(t *testing.T) {
	tests := []struct {
		op       Operation
		expected int
	}{
		{ADD, 2},
		{SHR, 2},
		{NEG, 1},
		{NOT, 1},
		{SYMBOL, 0},
		{SEQUENCE, VariableArity},
		{BIND, VariableArity},
		{WHILE, VariableArity},
	}

	for _, test := range tests {
		if got := test.op.Arity(); got != test.expected {
			t.Errorf("%s: expected arity %d, got %d", test.op, test.expected, got)
		}
	}
}

func TestSpecialForms(t *testing.T) {
	for _, op := range []Operation{SEQUENCE, BIND, IS, FUNDEF, FUNCALL, LIST, WHEN, IF, WHILE} {
		if !op.IsSpecialForm() {
			t.Errorf("%s should be a special form", op)
		}
	}
	for _, op := range []Operation{ADD, NEG, SYMBOL, PAIR} {
		if op.IsSpecialForm() {
			t.Errorf("%s should not be a special form", op)
		}
	}
}

func TestNodeString(t *testing.T) {
	n := NewOp(ADD, NewLiteral(value.Integer(2)), NewOp(MUL, NewSymbol("x"), NewLiteral(value.String("a"))))

	expected := `(ADD 2 (MUL x "a"))`
	if got := n.String(); got != expected {
		t.Errorf("expected %s, got %s", expected, got)
	}
	if n.Left().Operand != value.Integer(2) || n.Right().Op != MUL {
		t.Errorf("unexpected children %v", n.Children)
	}
}
