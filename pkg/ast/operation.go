package ast

import "fmt"

type Operation int

// List of AST operations
const (
	// binary
	ADD Operation = iota
	SUB
	MUL
	DIV
	POW
	AND
	XOR
	OR
	EQUAL
	NOT_EQUAL
	GREATER_THAN
	LESS_THAN
	GREATER_THAN_OR_EQUAL
	LESS_THAN_OR_EQUAL
	APPROXIMATELY_EQUAL
	IN
	SHL
	SHR

	// unary
	NEG
	NOT

	// leaf
	SYMBOL

	// special forms
	SEQUENCE
	BIND
	IS
	FUNDEF
	FUNCALL
	LIST
	WHEN
	IF
	WHILE

	// components of special forms
	PAIR
	TYPE
	HELP_COMMENT
)

// VariableArity marks operations whose child count is not fixed
const VariableArity = -1

type opInfo struct {
	name  string
	token string
	arity int
}

var operations = map[Operation]opInfo{
	ADD:                   {"ADD", "+", 2},
	SUB:                   {"SUB", "-", 2},
	MUL:                   {"MUL", "*", 2},
	DIV:                   {"DIV", "/", 2},
	POW:                   {"POW", "^", 2},
	AND:                   {"AND", "and", 2},
	XOR:                   {"XOR", "xor", 2},
	OR:                    {"OR", "or", 2},
	EQUAL:                 {"EQUAL", "=", 2},
	NOT_EQUAL:             {"NOT_EQUAL", "<>", 2},
	GREATER_THAN:          {"GREATER_THAN", ">", 2},
	LESS_THAN:             {"LESS_THAN", "<", 2},
	GREATER_THAN_OR_EQUAL: {"GREATER_THAN_OR_EQUAL", ">=", 2},
	LESS_THAN_OR_EQUAL:    {"LESS_THAN_OR_EQUAL", "<=", 2},
	APPROXIMATELY_EQUAL:   {"APPROXIMATELY_EQUAL", "=~", 2},
	IN:                    {"IN", "in", 2},
	SHL:                   {"SHL", "<<", 2},
	SHR:                   {"SHR", ">>", 2},

	NEG: {"NEG", "-", 1},
	NOT: {"NOT", "not", 1},

	SYMBOL: {"SYMBOL", "", 0},

	SEQUENCE: {"SEQUENCE", "", VariableArity},
	BIND:     {"BIND", "<-", VariableArity},
	IS:       {"IS", "is", VariableArity},
	FUNDEF:   {"FUNDEF", "", VariableArity},
	FUNCALL:  {"FUNCALL", "", VariableArity},
	LIST:     {"LIST", "", VariableArity},
	WHEN:     {"WHEN", "when", VariableArity},
	IF:       {"IF", "if", VariableArity},
	WHILE:    {"WHILE", "while", VariableArity},

	PAIR:         {"PAIR", "", VariableArity},
	TYPE:         {"TYPE", "", 0},
	HELP_COMMENT: {"HELP_COMMENT", "", 0},
}

// String returns the operation name
func (o Operation) String() string {
	if info, ok := operations[o]; ok {
		return info.name
	}

	return fmt.Sprintf("UNKNOWN(%d)", int(o))
}

// Token returns the source text of an operator, or its name if it has none
func (o Operation) Token() string {
	if info, ok := operations[o]; ok && info.token != "" {
		return info.token
	}

	return o.String()
}

// Arity returns 2 for binary, 1 for unary, 0 for leaves and VariableArity for special forms
func (o Operation) Arity() int {
	if info, ok := operations[o]; ok {
		return info.arity
	}

	return VariableArity
}

// IsSpecialForm reports whether the operation is evaluated by a dedicated rule
func (o Operation) IsSpecialForm() bool {
	switch o {
	case SEQUENCE, BIND, IS, FUNDEF, FUNCALL, LIST, WHEN, IF, WHILE:
		return true
	default:
		return false
	}
}
