package lexer

import "fmt"

// Position locates a token: 1-based line and column (in runes), 0-based byte offset
type Position struct {
	Line   int
	Column int
	Offset int
}

// String renders the position the way errors report it
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}
