package parser

import (
	"fmt"

	"vela/pkg/color"
	"vela/pkg/lexer"
)

// ParseError is a syntax error at a source position
type ParseError struct {
	Pos lexer.Position
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s", e.Msg, e.Pos)
}

// errorf records a parsing error at the current token and returns it
func (p *Parser) errorf(format string, args ...any) error {
	err := &ParseError{Pos: p.currentToken.Pos, Msg: fmt.Sprintf(format, args...)}
	p.errors = append(p.errors, err)
	return err
}

// Errors returns the parsing errors formatted for the terminal
func (p *Parser) Errors() []string {
	formatted := make([]string, 0, len(p.errors))
	for _, err := range p.errors {
		formatted = append(formatted, color.RedText(err.Msg)+" at "+color.Position(err.Pos.Line, err.Pos.Column))
	}
	return formatted
}

// categorizeError provides a specific error message based on the expected token and the current one
func (p *Parser) categorizeError(expected lexer.TokenType, current lexer.Token) string {
	if current.Type == lexer.ILLEGAL {
		return fmt.Sprintf("Illegal character '%s'", current.Lexeme)
	}

	// Delimiters
	switch expected {
	case lexer.RPAREN:
		return "Missing closing parenthesis"
	case lexer.RBRACE:
		return "Missing closing brace"
	case lexer.RSBRACE:
		return "Missing closing bracket"
	case lexer.LBRACE:
		return "Missing opening brace"
	case lexer.LPAREN:
		if current.Type == lexer.LBRACE {
			return "Wrong bracket type - expected parenthesis"
		}
		return "Missing opening parenthesis"
	case lexer.COLON:
		return "Missing type annotation"
	case lexer.THEN:
		return "Missing 'then'"
	case lexer.ARROW:
		return "Missing '->'"
	}

	// Identifiers
	if expected == lexer.ID {
		if current.Type.GetCategory() == lexer.KEYWORD {
			return "Cannot use reserved keyword as identifier"
		}
		return "Expected identifier"
	}

	if current.Type == lexer.EOF {
		return "Unexpected end of input"
	}

	return "Syntax error"
}

// unexpected reports a token that cannot start an expression
func (p *Parser) unexpected() error {
	current := p.currentToken
	switch {
	case current.Type == lexer.ILLEGAL:
		return p.errorf("Illegal character '%s'", current.Lexeme)
	case p.isStatementBoundary(current.Type), current.Type == lexer.RPAREN, current.Type == lexer.RSBRACE:
		return p.errorf("Missing expression")
	default:
		return p.errorf("Unexpected token '%s'", current.Lexeme)
	}
}
