package lexer_test

import (
	"testing"

	"vela/pkg/lexer"
)

func TestComments(t *testing.T) {
	input := `# test comment
x <- 10 # another test comment
# another another test comment
y is 20.0`

	mylexer := lexer.NewLexer(input)
	expectedTokens := []lexer.TokenType{
		lexer.ID, lexer.BIND, lexer.INT,
		lexer.ID, lexer.IS, lexer.REAL,
		lexer.EOF,
	}

	for i, expected := range expectedTokens {
		token := mylexer.NextToken()
		if token.Type != expected {
			t.Errorf("Token %d: expected %s, got %s", i, expected, token.Type)
		}
	}
}

func TestHelpComment(t *testing.T) {
	input := `f(n:int):int { << doubles n >> n * 2 } 1 << 2`

	tokens := lexer.NewLexer(input).Tokens()
	expectedTokens := []lexer.TokenType{
		lexer.ID, lexer.LPAREN, lexer.ID, lexer.COLON, lexer.ID, lexer.RPAREN, lexer.COLON, lexer.ID,
		lexer.LBRACE, lexer.HELP, lexer.ID, lexer.MULT, lexer.INT, lexer.RBRACE,
		lexer.INT, lexer.SHL, lexer.INT,
		lexer.EOF,
	}

	if len(tokens) != len(expectedTokens) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expectedTokens), len(tokens), tokens)
	}
	for i, expected := range expectedTokens {
		if tokens[i].Type != expected {
			t.Errorf("Token %d: expected %s, got %s", i, expected, tokens[i].Type)
		}
	}
	if tokens[9].Literal != "doubles n" {
		t.Errorf("expected help literal %q, got %q", "doubles n", tokens[9].Literal)
	}
}
