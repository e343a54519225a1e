package parser

import (
	"vela/pkg/lexer"
)

// next advances to the next token; EOF is sticky
func (p *Parser) next() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	p.currentToken = p.tokens[p.pos]
}

// peekAt returns the token k positions ahead of the current one
func (p *Parser) peekAt(k int) lexer.Token {
	if p.pos+k < len(p.tokens) {
		return p.tokens[p.pos+k]
	}
	return p.tokens[len(p.tokens)-1]
}

// match checks if the current token is one of the given types
func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.currentToken.Type == t {
			return true
		}
	}
	return false
}

// expect consumes the current token if it has the expected type,
// otherwise it reports a contextual error
func (p *Parser) expect(expected lexer.TokenType) (lexer.Token, error) {
	tok := p.currentToken
	if tok.Type != expected {
		return tok, p.errorf("%s", p.categorizeError(expected, tok))
	}

	p.next()
	return tok, nil
}

// isTypeName checks if the current token can name a type
func (p *Parser) isTypeName() bool {
	return p.match(lexer.ID, lexer.FUN)
}

// isNamedFunction checks if an identifier starts a named function definition,
// i.e. "name(" followed by "param:" or by "()" and a return type or body
func (p *Parser) isNamedFunction() bool {
	if p.currentToken.Type != lexer.ID || p.peekAt(1).Type != lexer.LPAREN {
		return false
	}

	switch p.peekAt(2).Type {
	case lexer.ID:
		return p.peekAt(3).Type == lexer.COLON
	case lexer.RPAREN:
		after := p.peekAt(3).Type
		return after == lexer.COLON || after == lexer.LBRACE
	default:
		return false
	}
}

// isStatementBoundary checks if a token type ends a statement list
func (p *Parser) isStatementBoundary(t lexer.TokenType) bool {
	switch t {
	case lexer.RBRACE, lexer.EOF:
		return true
	default:
		return false
	}
}
