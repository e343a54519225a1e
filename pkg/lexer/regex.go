package lexer

import (
	"regexp"
)

type tokenRegex struct {
	Pattern *regexp.Regexp
	Raw     string
}

func newTokenRegex(raw string) tokenRegex {
	return tokenRegex{regexp.MustCompile(raw), raw}
}

// Token regex patterns. Keywords are lexed as identifiers and then looked up.
var tokenRegexes = map[TokenType]tokenRegex{
	BIND:   newTokenRegex(`^<-`),
	ARROW:  newTokenRegex(`^->`),
	LE:     newTokenRegex(`^<=`),
	GE:     newTokenRegex(`^>=`),
	NE:     newTokenRegex(`^<>`),
	APPROX: newTokenRegex(`^=~`),
	SHL:    newTokenRegex(`^<<`),
	SHR:    newTokenRegex(`^>>`),

	PLUS:  newTokenRegex(`^\+`),
	MINUS: newTokenRegex(`^-`),
	MULT:  newTokenRegex(`^\*`),
	DIV:   newTokenRegex(`^/`),
	POW:   newTokenRegex(`^\^`),
	EQ:    newTokenRegex(`^=`),
	LT:    newTokenRegex(`^<`),
	GT:    newTokenRegex(`^>`),

	COMMA:   newTokenRegex(`^,`),
	COLON:   newTokenRegex(`^:`),
	LPAREN:  newTokenRegex(`^\(`),
	RPAREN:  newTokenRegex(`^\)`),
	LBRACE:  newTokenRegex(`^\{`),
	RBRACE:  newTokenRegex(`^\}`),
	LSBRACE: newTokenRegex(`^\[`),
	RSBRACE: newTokenRegex(`^\]`),

	REAL:   newTokenRegex(`^(\d+\.\d*([eE][+-]?\d+)?|\.\d+([eE][+-]?\d+)?|\d+[eE][+-]?\d+)`),
	INT:    newTokenRegex(`^\d+`),
	STRING: newTokenRegex(`^"([^"\\]|\\.)*"`),
	ID:     newTokenRegex(`^[\p{L}_][\p{L}\p{N}_]*`),
}

var (
	whitespaceRegex = regexp.MustCompile(`^\s+`)
	commentRegex    = regexp.MustCompile(`^#.*`)
)

// Token precedence order for matching (longer patterns first)
var tokenPrecedenceOrder = []TokenType{
	BIND, ARROW, LE, GE, NE, APPROX, SHL, SHR,
	PLUS, MINUS, MULT, DIV, POW, EQ, LT, GT,
	COMMA, COLON, LPAREN, RPAREN, LBRACE, RBRACE, LSBRACE, RSBRACE,
	REAL, INT, STRING, ID,
}

// Get the regex pattern for a token type
func (t TokenType) Regex() *regexp.Regexp {
	if regex, ok := tokenRegexes[t]; ok {
		return regex.Pattern
	}

	return nil
}

// Get the raw regex string for a token type
func (t TokenType) RawRegex() string {
	if regex, ok := tokenRegexes[t]; ok {
		return regex.Raw
	}

	return ""
}

// Match the first token at the start of the string, in precedence order.
// Whitespace and comments are reported as EOF with a non-empty lexeme.
func MatchToken(s string) (TokenType, string, bool) {
	if s == "" {
		return EOF, "", false
	} else if match := whitespaceRegex.FindString(s); match != "" {
		return EOF, match, true
	} else if match := commentRegex.FindString(s); match != "" {
		return EOF, match, true
	}

	for _, tokenType := range tokenPrecedenceOrder {
		if regex, ok := tokenRegexes[tokenType]; ok {
			if match := regex.Pattern.FindString(s); match != "" {
				if tokenType == ID {
					if kw, isKw := IsKeyword(match); isKw {
						return kw, match, true
					}
				}
				return tokenType, match, true
			}
		}
	}

	return ILLEGAL, string([]rune(s)[0]), false
}
