package parser

import (
	"vela/pkg/ast"
	"vela/pkg/lexer"
)

// Binding strength of infix operators, loosest first. NOT sits between
// the logical connectives and the relational operators.
const (
	precOr = iota + 1
	precAnd
	precNot
	precRelational
	precShift
	precAdditive
	precMultiplicative
)

type infix struct {
	op         ast.Operation
	precedence int
}

// All infix operators are left associative; '^' is handled separately
// because it is right associative and binds tighter than unary minus.
var infixTable = map[lexer.TokenType]infix{
	lexer.OR:  {ast.OR, precOr},
	lexer.XOR: {ast.XOR, precOr},

	lexer.AND: {ast.AND, precAnd},

	lexer.EQ:     {ast.EQUAL, precRelational},
	lexer.NE:     {ast.NOT_EQUAL, precRelational},
	lexer.LT:     {ast.LESS_THAN, precRelational},
	lexer.GT:     {ast.GREATER_THAN, precRelational},
	lexer.LE:     {ast.LESS_THAN_OR_EQUAL, precRelational},
	lexer.GE:     {ast.GREATER_THAN_OR_EQUAL, precRelational},
	lexer.APPROX: {ast.APPROXIMATELY_EQUAL, precRelational},
	lexer.IN:     {ast.IN, precRelational},

	lexer.SHL: {ast.SHL, precShift},
	lexer.SHR: {ast.SHR, precShift},

	lexer.PLUS:  {ast.ADD, precAdditive},
	lexer.MINUS: {ast.SUB, precAdditive},

	lexer.MULT: {ast.MUL, precMultiplicative},
	lexer.DIV:  {ast.DIV, precMultiplicative},
}

// lookupInfix returns the infix entry for a token type
func lookupInfix(t lexer.TokenType) (infix, bool) {
	in, ok := infixTable[t]
	return in, ok
}
