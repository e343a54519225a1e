package lexer_test

import (
	"testing"

	"vela/pkg/lexer"
)

func TestTokens(t *testing.T) {
	input := "x <- 10 / 2\n" +
		"while x > 0 {\n" +
		"	x <- x - 1\n" +
		"}\n" +
		"If x = 0 Then \"done\" else [1, 2.5] ^ 2\n" +
		"when { s =~ \"a.*\" -> true  s in \"abc\" -> false }\n" +
		"inc is λ(n:int):int { n + 1 }\n" +
		"a <> b and not c xor d <= e >= f >> 1"
	mylexer := lexer.NewLexer(input)

	expectedTokens := []lexer.TokenType{
		lexer.ID, lexer.BIND, lexer.INT, lexer.DIV, lexer.INT,
		lexer.WHILE, lexer.ID, lexer.GT, lexer.INT, lexer.LBRACE,
		lexer.ID, lexer.BIND, lexer.ID, lexer.MINUS, lexer.INT,
		lexer.RBRACE,
		lexer.IF, lexer.ID, lexer.EQ, lexer.INT, lexer.THEN, lexer.STRING, lexer.ELSE,
		lexer.LSBRACE, lexer.INT, lexer.COMMA, lexer.REAL, lexer.RSBRACE, lexer.POW, lexer.INT,
		lexer.WHEN, lexer.LBRACE, lexer.ID, lexer.APPROX, lexer.STRING, lexer.ARROW, lexer.TRUE,
		lexer.ID, lexer.IN, lexer.STRING, lexer.ARROW, lexer.FALSE, lexer.RBRACE,
		lexer.ID, lexer.IS, lexer.FUN, lexer.LPAREN, lexer.ID, lexer.COLON, lexer.ID, lexer.RPAREN,
		lexer.COLON, lexer.ID, lexer.LBRACE, lexer.ID, lexer.PLUS, lexer.INT, lexer.RBRACE,
		lexer.ID, lexer.NE, lexer.ID, lexer.AND, lexer.NOT, lexer.ID, lexer.XOR, lexer.ID,
		lexer.LE, lexer.ID, lexer.GE, lexer.ID, lexer.SHR, lexer.INT,
		lexer.EOF,
	}

	for i, expected := range expectedTokens {
		token := mylexer.NextToken()
		if token.Type != expected {
			t.Errorf("Token %d: expected %s, got %s (%q)", i, expected, token.Type, token.Lexeme)
		}
	}
}

func TestStringLiteral(t *testing.T) {
	tok := lexer.NewLexer(`"tab\there \"q\""`).NextToken()

	if tok.Type != lexer.STRING {
		t.Fatalf("expected string token, got %s", tok.Type)
	}
	if tok.Literal != "tab\there \"q\"" {
		t.Errorf("unexpected literal %q", tok.Literal)
	}
}

func TestIllegalAndPosition(t *testing.T) {
	l := lexer.NewLexer("1 +\n  2 & 3")

	var illegal lexer.Token
	for tok := l.NextToken(); tok.Type != lexer.EOF; tok = l.NextToken() {
		if tok.Type == lexer.ILLEGAL {
			illegal = tok
		}
	}

	if illegal.Lexeme != "&" {
		t.Fatalf("expected illegal '&', got %q", illegal.Lexeme)
	}
	if illegal.Pos.Line != 2 || illegal.Pos.Column != 5 {
		t.Errorf("expected position 2:5, got %d:%d", illegal.Pos.Line, illegal.Pos.Column)
	}
}
