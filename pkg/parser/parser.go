package parser

import (
	"strconv"

	"vela/pkg/ast"
	"vela/pkg/lexer"
	"vela/pkg/value"
)

type Parser struct {
	tokens       []lexer.Token // token stream, always terminated by EOF
	pos          int           // index of the current token
	currentToken lexer.Token   // current token
	errors       []*ParseError // list of errors
}

// NewParser creates a new parser instance
func NewParser(l *lexer.Lexer) *Parser {
	p := &Parser{
		tokens: l.Tokens(),
		errors: []*ParseError{},
	}

	// Initialize current token
	p.currentToken = p.tokens[0]

	return p
}

// Parse parses source text as a program
func Parse(src string) (*ast.Node, error) {
	return NewParser(lexer.NewLexer(src)).Parse()
}

// ParseExpression parses source text as a single expression
func ParseExpression(src string) (*ast.Node, error) {
	return NewParser(lexer.NewLexer(src)).ParseExpression()
}

// Parse parses a whole program into a SEQUENCE node
func (p *Parser) Parse() (*ast.Node, error) {
	seq, err := p.sequence()
	if err != nil {
		return nil, err
	}

	if !p.match(lexer.EOF) {
		return nil, p.unexpected()
	}

	return seq, nil
}

// ParseExpression parses exactly one expression
func (p *Parser) ParseExpression() (*ast.Node, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	if !p.match(lexer.EOF) {
		return nil, p.unexpected()
	}

	return expr, nil
}

// sequence parses statements until '}' or end of input
func (p *Parser) sequence() (*ast.Node, error) {
	seq := ast.NewOp(ast.SEQUENCE)

	for !p.isStatementBoundary(p.currentToken.Type) {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		seq.AddChild(stmt)
	}

	return seq, nil
}

// statement parses a binding, a loop, a named function or an expression
func (p *Parser) statement() (*ast.Node, error) {
	switch {
	case p.match(lexer.ID) && p.peekAt(1).Type == lexer.BIND:
		return p.binding(ast.BIND)

	case p.match(lexer.ID) && p.peekAt(1).Type == lexer.IS:
		return p.binding(ast.IS)

	case p.match(lexer.WHILE):
		return p.while()

	case p.isNamedFunction():
		name := p.currentToken
		p.next()
		return p.function(ast.NewSymbol(name.Lexeme))

	default:
		return p.expression()
	}
}

// binding parses "name <- expr" and "name is expr"
func (p *Parser) binding(op ast.Operation) (*ast.Node, error) {
	name := p.currentToken
	p.next() // name
	p.next() // '<-' or 'is'

	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	return ast.NewToken(op, name.Lexeme, ast.NewSymbol(name.Lexeme), expr), nil
}

// while parses "while cond { statements }"
func (p *Parser) while() (*ast.Node, error) {
	p.next()

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}

	_, body, err := p.block()
	if err != nil {
		return nil, err
	}

	return ast.NewOp(ast.WHILE, cond, body), nil
}

// function parses the parameter list, optional return type and body of a
// function definition; name is nil for a lambda
func (p *Parser) function(name *ast.Node) (*ast.Node, error) {
	fundef := ast.NewOp(ast.FUNDEF)
	if name != nil {
		fundef.AddChild(name)
	}

	params, err := p.parameters()
	if err != nil {
		return nil, err
	}

	var returnType *ast.Node
	if p.match(lexer.COLON) {
		p.next()
		if returnType, err = p.typeName(); err != nil {
			return nil, err
		}
	}

	help, body, err := p.block()
	if err != nil {
		return nil, err
	}

	if help != nil {
		fundef.AddChild(help)
	}
	for _, param := range params {
		fundef.AddChild(param)
	}
	if returnType != nil {
		fundef.AddChild(returnType)
	}
	fundef.AddChild(body)

	return fundef, nil
}

// parameters parses "(name:type, ...)" into PAIR(SYMBOL, TYPE) nodes
func (p *Parser) parameters() ([]*ast.Node, error) {
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}

	var params []*ast.Node
	for !p.match(lexer.RPAREN) {
		if len(params) > 0 {
			if _, err := p.expect(lexer.COMMA); err != nil {
				return nil, err
			}
		}

		name, err := p.expect(lexer.ID)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		typ, err := p.typeName()
		if err != nil {
			return nil, err
		}

		params = append(params, ast.NewOp(ast.PAIR, ast.NewSymbol(name.Lexeme), typ))
	}
	p.next()

	return params, nil
}

// typeName parses a type name; validity is checked at evaluation
func (p *Parser) typeName() (*ast.Node, error) {
	if !p.isTypeName() {
		return nil, p.errorf("Expected type name")
	}

	typ := ast.NewToken(ast.TYPE, p.currentToken.Lexeme)
	p.next()
	return typ, nil
}

// block parses "{ [<<help>>] statements }"
func (p *Parser) block() (*ast.Node, *ast.Node, error) {
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, nil, err
	}

	var help *ast.Node
	if p.match(lexer.HELP) {
		help = ast.NewToken(ast.HELP_COMMENT, p.currentToken.Literal)
		p.next()
	}

	body, err := p.sequence()
	if err != nil {
		return nil, nil, err
	}

	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, nil, err
	}

	return help, body, nil
}

// expression parses an expression with the loosest binding strength
func (p *Parser) expression() (*ast.Node, error) {
	return p.binary(precOr)
}

// binary is a precedence climbing parser over the infix table
func (p *Parser) binary(minPrecedence int) (*ast.Node, error) {
	var left *ast.Node
	var err error

	if p.match(lexer.NOT) && minPrecedence <= precNot {
		p.next()
		operand, err := p.binary(precNot)
		if err != nil {
			return nil, err
		}
		left = ast.NewOp(ast.NOT, operand)
	} else if left, err = p.unary(); err != nil {
		return nil, err
	}

	for {
		in, ok := lookupInfix(p.currentToken.Type)
		if !ok || in.precedence < minPrecedence {
			return left, nil
		}
		p.next()

		right, err := p.binary(in.precedence + 1)
		if err != nil {
			return nil, err
		}
		left = ast.NewOp(in.op, left, right)
	}
}

// unary parses prefix minus
func (p *Parser) unary() (*ast.Node, error) {
	if p.match(lexer.MINUS) {
		p.next()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewOp(ast.NEG, operand), nil
	}

	return p.power()
}

// power parses right associative exponentiation
func (p *Parser) power() (*ast.Node, error) {
	base, err := p.call()
	if err != nil {
		return nil, err
	}

	if !p.match(lexer.POW) {
		return base, nil
	}
	p.next()

	exponent, err := p.unary()
	if err != nil {
		return nil, err
	}

	return ast.NewOp(ast.POW, base, exponent), nil
}

// call parses a primary followed by any number of argument lists
func (p *Parser) call() (*ast.Node, error) {
	callee, err := p.primary()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.LPAREN) {
		p.next()

		funcall := ast.NewOp(ast.FUNCALL, callee)
		if callee.Op == ast.SYMBOL && !callee.IsLiteral() {
			funcall.Token = callee.Token
		}

		for !p.match(lexer.RPAREN) {
			if len(funcall.Children) > 1 {
				if _, err := p.expect(lexer.COMMA); err != nil {
					return nil, err
				}
			}

			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			funcall.AddChild(arg)
		}
		p.next()

		callee = funcall
	}

	return callee, nil
}

// primary parses literals, names, groups, lists and the expression forms
func (p *Parser) primary() (*ast.Node, error) {
	tok := p.currentToken

	switch tok.Type {
	case lexer.INT:
		n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, p.errorf("Integer out of range '%s'", tok.Lexeme)
		}
		p.next()
		return ast.NewLiteral(value.Integer(n)), nil

	case lexer.REAL:
		x, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, p.errorf("Invalid real number '%s'", tok.Lexeme)
		}
		p.next()
		return ast.NewLiteral(value.Real(x)), nil

	case lexer.STRING:
		p.next()
		return ast.NewLiteral(value.String(tok.Literal)), nil

	case lexer.TRUE, lexer.FALSE:
		p.next()
		return ast.NewLiteral(value.Boolean(tok.Type == lexer.TRUE)), nil

	case lexer.ID:
		p.next()
		return ast.NewSymbol(tok.Lexeme), nil

	case lexer.LPAREN:
		p.next()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	case lexer.LSBRACE:
		return p.list()

	case lexer.IF:
		return p.ifExpression()

	case lexer.WHEN:
		return p.when()

	case lexer.FUN:
		p.next()
		return p.function(nil)

	default:
		return nil, p.unexpected()
	}
}

// list parses "[a, b, c]"; commas between elements are optional
func (p *Parser) list() (*ast.Node, error) {
	p.next()

	list := ast.NewOp(ast.LIST)
	for !p.match(lexer.RSBRACE) {
		if p.match(lexer.EOF) {
			return nil, p.errorf("%s", p.categorizeError(lexer.RSBRACE, p.currentToken))
		}

		elem, err := p.expression()
		if err != nil {
			return nil, err
		}
		list.AddChild(elem)

		if p.match(lexer.COMMA) {
			p.next()
		}
	}
	p.next()

	return list, nil
}

// ifExpression parses "if cond then consequent [else alternative]"
func (p *Parser) ifExpression() (*ast.Node, error) {
	p.next()

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.THEN); err != nil {
		return nil, err
	}

	consequent, err := p.consequent()
	if err != nil {
		return nil, err
	}

	node := ast.NewOp(ast.IF, cond, consequent)
	if p.match(lexer.ELSE) {
		p.next()
		alternative, err := p.consequent()
		if err != nil {
			return nil, err
		}
		node.AddChild(alternative)
	}

	return node, nil
}

// when parses "when { cond -> consequent ... }"
func (p *Parser) when() (*ast.Node, error) {
	p.next()

	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}

	node := ast.NewOp(ast.WHEN)
	for !p.match(lexer.RBRACE) {
		if p.match(lexer.EOF) {
			return nil, p.errorf("%s", p.categorizeError(lexer.RBRACE, p.currentToken))
		}

		cond, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.ARROW); err != nil {
			return nil, err
		}
		consequent, err := p.consequent()
		if err != nil {
			return nil, err
		}

		node.AddChild(ast.NewOp(ast.PAIR, cond, consequent))
	}
	p.next()

	return node, nil
}

// consequent parses either a braced statement block or a single expression
func (p *Parser) consequent() (*ast.Node, error) {
	if !p.match(lexer.LBRACE) {
		return p.expression()
	}

	_, body, err := p.block()
	return body, err
}
