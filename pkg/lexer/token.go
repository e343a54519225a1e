package lexer

import (
	"fmt"
	"strings"
)

type TokenType int
type TokenCategory int

type Token struct {
	Type    TokenType // Type of the token
	Lexeme  string    // Actual string from source code
	Literal string    // Literal value (if applicable), empty string if not
	Pos     Position  // Position in source code
}

// NewToken creates a new Token instance
func NewToken(tokenType TokenType, lexeme string, literal string, Pos Position) Token {
	return Token{
		Type:    tokenType,
		Lexeme:  lexeme,
		Literal: literal,
		Pos:     Pos,
	}
}

const (
	NONE TokenCategory = iota
	KEYWORD
	IDENTIFIER
	LITERAL
	OPERATOR
	DELIMITER
)

const (
	EOF TokenType = iota // End of file

	IS    // is
	IF    // if
	THEN  // then
	ELSE  // else
	WHEN  // when
	WHILE // while
	AND   // and
	OR    // or
	XOR   // xor
	NOT   // not
	IN    // in
	TRUE  // true
	FALSE // false
	FUN   // fun, function, λ

	ID     // identifier
	INT    // integer literal
	REAL   // real literal
	STRING // string literal
	HELP   // << help text >>

	BIND   // <-
	ARROW  // ->
	PLUS   // +
	MINUS  // -
	MULT   // *
	DIV    // /
	POW    // ^
	EQ     // =
	NE     // <>
	LT     // <
	GT     // >
	LE     // <=
	GE     // >=
	APPROX // =~
	SHL    // <<
	SHR    // >>

	COMMA   // ,
	COLON   // :
	LPAREN  // (
	RPAREN  // )
	LBRACE  // {
	RBRACE  // }
	LSBRACE // [
	RSBRACE // ]

	ILLEGAL // illegal token
)

var Keywords = map[string]TokenType{
	"is":       IS,
	"if":       IF,
	"then":     THEN,
	"else":     ELSE,
	"when":     WHEN,
	"while":    WHILE,
	"and":      AND,
	"or":       OR,
	"xor":      XOR,
	"not":      NOT,
	"in":       IN,
	"true":     TRUE,
	"false":    FALSE,
	"fun":      FUN,
	"function": FUN,
	"λ":        FUN,
}

var tokenNames = map[TokenType]string{
	IS:      "is",
	IF:      "if",
	THEN:    "then",
	ELSE:    "else",
	WHEN:    "when",
	WHILE:   "while",
	AND:     "and",
	OR:      "or",
	XOR:     "xor",
	NOT:     "not",
	IN:      "in",
	TRUE:    "true",
	FALSE:   "false",
	FUN:     "function",
	ID:      "id",
	INT:     "int",
	REAL:    "real",
	STRING:  "string",
	HELP:    "help",
	BIND:    "<-",
	ARROW:   "->",
	PLUS:    "+",
	MINUS:   "-",
	MULT:    "*",
	DIV:     "/",
	POW:     "^",
	EQ:      "=",
	NE:      "<>",
	LT:      "<",
	GT:      ">",
	LE:      "<=",
	GE:      ">=",
	APPROX:  "=~",
	SHL:     "<<",
	SHR:     ">>",
	COMMA:   ",",
	COLON:   ":",
	LPAREN:  "(",
	RPAREN:  ")",
	LBRACE:  "{",
	RBRACE:  "}",
	LSBRACE: "[",
	RSBRACE: "]",
	ILLEGAL: "illegal",
	EOF:     "$",
}

// TokenToString converts a TokenType to its string representation
func (t Token) TokenToString() (string, bool) {
	str, ok := tokenNames[t.Type]
	return str, ok
}

// String returns a string representation of the Token
func (t Token) String() string {
	if t.Literal == "" {
		return fmt.Sprintf("T_{%s, %v, nil, %s}",
			t.Type, t.Lexeme, t.Pos.String())
	}

	return fmt.Sprintf("T_{%s, %v, %q, %s}",
		t.Type, t.Lexeme, t.Literal, t.Pos.String())
}

// String returns a string representation of the TokenType
func (t TokenType) String() string {
	if str, ok := (Token{Type: t}).TokenToString(); ok {
		return str
	}

	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}

// GetCategory returns the category of the token
func (t TokenType) GetCategory() TokenCategory {
	switch t {
	case IS, IF, THEN, ELSE, WHEN, WHILE, AND, OR, XOR, NOT, IN, TRUE, FALSE, FUN:
		return KEYWORD
	case ID:
		return IDENTIFIER
	case INT, REAL, STRING, HELP:
		return LITERAL
	case BIND, ARROW, PLUS, MINUS, MULT, DIV, POW, EQ, NE, LT, GT, LE, GE, APPROX, SHL, SHR:
		return OPERATOR
	case COMMA, COLON, LPAREN, RPAREN, LBRACE, RBRACE, LSBRACE, RSBRACE:
		return DELIMITER
	default:
		return NONE
	}
}

// IsKeyword checks if the given identifier is a keyword and returns its TokenType if it is.
// Keywords are case-insensitive.
func IsKeyword(identifier string) (TokenType, bool) {
	tokenType, ok := Keywords[strings.ToLower(identifier)]
	return tokenType, ok
}
