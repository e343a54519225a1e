package lexer

import (
	"strconv"
	"strings"
)

type Lexer struct {
	input        string // input string to be tokenized
	length       int    // length of the input string
	position     int    // current position in the input string
	line         int    // current line number for error reporting
	column       int    // current column number for error reporting
	currentToken Token  // previous token, used to recognise help comments after '{'
}

// Create a new lexer instance
func NewLexer(s string) *Lexer {
	return &Lexer{
		input:        s,
		length:       len(s),
		position:     0,
		line:         1,
		column:       1,
		currentToken: Token{},
	}
}

// Get the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	// End of input
	if l.position >= l.length {
		tok := NewToken(EOF, "", "", l.currentPosition())
		l.currentToken = tok
		return tok
	}

	// A '<<' directly after '{' opens a help comment running to '>>'
	if l.currentToken.Type == LBRACE && strings.HasPrefix(l.input[l.position:], "<<") {
		return l.helpComment()
	}

	remaining := l.input[l.position:]
	tokenType, lexeme, matched := MatchToken(remaining)

	if !matched || tokenType == EOF {
		if tokenType == EOF && lexeme != "" {
			l.advance(len(lexeme))
			return l.NextToken()
		}

		pos := l.currentPosition()
		l.advance(len(lexeme))

		tok := NewToken(ILLEGAL, lexeme, "", pos)
		l.currentToken = tok
		return tok
	}

	var literal string
	switch tokenType {
	case TRUE:
		literal = "true"
	case FALSE:
		literal = "false"
	case STRING:
		literal = unquote(lexeme)
	default:
		literal = lexeme
	}

	tok := NewToken(tokenType, lexeme, literal, l.currentPosition())
	l.advance(len(lexeme))
	l.currentToken = tok

	return tok
}

// Tokens returns every remaining token, ending with EOF
func (l *Lexer) Tokens() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens
		}
	}
}

// View next token without advancing the position
func (l *Lexer) Peek() Token {
	// save state
	cpos := l.position
	cline := l.line
	ccol := l.column
	ctok := l.currentToken

	token := l.NextToken()

	// restore state
	l.position = cpos
	l.line = cline
	l.column = ccol
	l.currentToken = ctok

	return token
}

// Check if there are more characters to read
func (l *Lexer) HasMore() bool {
	return l.position < l.length
}

// helpComment lexes "<< text >>"; an unterminated comment is ILLEGAL
func (l *Lexer) helpComment() Token {
	pos := l.currentPosition()
	rest := l.input[l.position:]

	end := strings.Index(rest, ">>")
	if end < 0 {
		l.advance(len(rest))
		tok := NewToken(ILLEGAL, rest, "", pos)
		l.currentToken = tok
		return tok
	}

	lexeme := rest[:end+2]
	tok := NewToken(HELP, lexeme, strings.TrimSpace(lexeme[2:end]), pos)
	l.advance(len(lexeme))
	l.currentToken = tok
	return tok
}

// Skip whitespace and comments
func (l *Lexer) skipWhitespace() {
	for l.position < l.length {
		ch := l.input[l.position]

		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			l.advance(1)
		} else if ch == '#' {
			// comments run to the end of the line
			for l.position < l.length && l.input[l.position] != '\n' {
				l.advance(1)
			}
		} else {
			break
		}
	}
}

// Advance the lexer position by n bytes, counting columns in runes
func (l *Lexer) advance(n int) {
	for i := 0; i < n; i++ {
		if l.position >= l.length {
			break
		}

		ch := l.input[l.position]
		if ch == '\n' {
			l.line++
			l.column = 1
		} else if ch&0xC0 != 0x80 {
			l.column++
		}

		l.position++
	}
}

// Get the current position of the lexer
func (l *Lexer) currentPosition() Position {
	return Position{
		Line:   l.line,
		Column: l.column,
		Offset: l.position,
	}
}

// unquote strips the quotes of a string lexeme and resolves escapes,
// falling back to the raw text for escapes Go does not know
func unquote(lexeme string) string {
	if s, err := strconv.Unquote(lexeme); err == nil {
		return s
	}

	return lexeme[1 : len(lexeme)-1]
}
