// Package parser turns a token stream into an ordered sequence of top-level
// declarations. One function per grammar rule, climbing from assignment
// (lowest precedence) down to primary. On a syntax error the parser records
// a diagnostic, discards tokens to the next statement boundary, and resumes,
// so one malformed statement does not hide errors later in the file.
package parser

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/token"
)

// maxCallArity bounds parameter and argument lists, matching the reference
// implementation's limit.
const maxCallArity = 255

type Parser struct {
	tokens  []token.Token
	current int
	errs    []*ParseError
}

func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the whole token stream. The returned program is usable only
// when the error slice is empty; a program that parsed with errors must not
// be evaluated.
func (p *Parser) Parse() ([]ast.Stmt, []*ParseError) {
	var statements []ast.Stmt
	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.errs = append(p.errs, err)
			p.synchronize()
			continue
		}
		statements = append(statements, stmt)
	}
	return statements, p.errs
}

// declaration → funDecl | varDecl | statement ;
func (p *Parser) declaration() (ast.Stmt, *ParseError) {
	if p.match(token.Fun) {
		return p.functionDeclaration("function")
	}
	if p.match(token.Var) {
		return p.varDeclaration()
	}
	return p.statement()
}

// function → IDENTIFIER "(" parameters? ")" block ;
func (p *Parser) functionDeclaration(kind string) (ast.Stmt, *ParseError) {
	name, err := p.consume(token.Identifier, fmt.Sprintf("Expect %s name.", kind))
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LeftParen, fmt.Sprintf("Expect '(' after %s name.", kind)); err != nil {
		return nil, err
	}

	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxCallArity {
				return nil, errorAt(p.peek(), fmt.Sprintf("Can't have more than %d parameters.", maxCallArity))
			}
			param, err := p.consume(token.Identifier, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after parameters."); err != nil {
		return nil, err
	}

	if _, err := p.consume(token.LeftBrace, fmt.Sprintf("Expect '{' before %s body.", kind)); err != nil {
		return nil, err
	}
	body, perr := p.block()
	if perr != nil {
		return nil, perr
	}
	return &ast.FunctionStmt{Name: name, Params: params, Body: body}, nil
}

// varDecl → "var" IDENTIFIER ( "=" expression )? ";" ;
func (p *Parser) varDeclaration() (ast.Stmt, *ParseError) {
	name, err := p.consume(token.Identifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var initializer ast.Expr
	if p.match(token.Equal) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &ast.VarStmt{Name: name, Initializer: initializer}, nil
}

// statement → forStmt | ifStmt | printStmt | returnStmt | whileStmt | block | exprStmt ;
func (p *Parser) statement() (ast.Stmt, *ParseError) {
	switch {
	case p.match(token.For):
		return p.forStatement()
	case p.match(token.If):
		return p.ifStatement()
	case p.match(token.Print):
		return p.printStatement()
	case p.match(token.Return):
		return p.returnStatement()
	case p.match(token.While):
		return p.whileStatement()
	case p.match(token.LeftBrace):
		statements, err := p.block()
		if err != nil {
			return nil, err
		}
		return &ast.BlockStmt{Statements: statements}, nil
	}
	return p.expressionStatement()
}

// block → "{" declaration* "}" ;
//
// Recovery happens per declaration here too, so one malformed statement in a
// block does not discard its siblings or cascade past the closing brace.
func (p *Parser) block() ([]ast.Stmt, *ParseError) {
	var statements []ast.Stmt
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.errs = append(p.errs, err)
			p.synchronize()
			continue
		}
		statements = append(statements, stmt)
	}
	if _, err := p.consume(token.RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return statements, nil
}

// forStmt desugars into Block/While at parse time so the evaluator needs no
// loop-specific node: { initializer; while (condition) { body; increment; } }.
func (p *Parser) forStatement() (ast.Stmt, *ParseError) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var initializer ast.Stmt
	var err *ParseError
	switch {
	case p.match(token.Semicolon):
		initializer = nil
	case p.match(token.Var):
		initializer, err = p.varDeclaration()
	default:
		initializer, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var condition ast.Expr
	if !p.check(token.Semicolon) {
		condition, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment ast.Expr
	if !p.check(token.RightParen) {
		increment, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if increment != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{body, &ast.ExpressionStmt{Expression: increment}}}
	}
	if condition == nil {
		condition = &ast.BooleanLiteral{Value: true}
	}
	body = &ast.WhileStmt{Condition: condition, Body: body}
	if initializer != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{initializer, body}}
	}
	return body, nil
}

// ifStmt → "if" "(" expression ")" statement ( "else" statement )? ;
func (p *Parser) ifStatement() (ast.Stmt, *ParseError) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}

	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch ast.Stmt
	if p.match(token.Else) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfStmt{Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}, nil
}

// printStmt → "print" expression ";" ;
func (p *Parser) printStatement() (ast.Stmt, *ParseError) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &ast.PrintStmt{Expression: value}, nil
}

// returnStmt → "return" expression? ";" ;
func (p *Parser) returnStatement() (ast.Stmt, *ParseError) {
	keyword := p.previous()
	var value ast.Expr
	var err *ParseError
	if !p.check(token.Semicolon) {
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Keyword: keyword, Value: value}, nil
}

// whileStmt → "while" "(" expression ")" statement ;
func (p *Parser) whileStatement() (ast.Stmt, *ParseError) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after while condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Condition: condition, Body: body}, nil
}

// exprStmt → expression ";" ;
func (p *Parser) expressionStatement() (ast.Stmt, *ParseError) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ast.ExpressionStmt{Expression: expr}, nil
}

//-----------------------------------------------------------------------------
// Expressions, by descending precedence
//-----------------------------------------------------------------------------

// expression → assignment ;
func (p *Parser) expression() (ast.Expr, *ParseError) {
	return p.assignment()
}

// assignment → IDENTIFIER "=" assignment | logic_or ;
//
// The left side is parsed as an ordinary expression first, then validated as
// an assignment target when '=' follows.
func (p *Parser) assignment() (ast.Expr, *ParseError) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.match(token.Equal) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if variable, ok := expr.(*ast.Variable); ok {
			return &ast.Assign{Name: variable.Name, Value: value}, nil
		}
		return nil, errorAt(equals, "Invalid assignment target.")
	}
	return expr, nil
}

// logic_or → logic_and ( "or" logic_and )* ;
func (p *Parser) or() (ast.Expr, *ParseError) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.match(token.Or) {
		operator := p.previous()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		expr = &ast.Logical{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

// logic_and → equality ( "and" equality )* ;
func (p *Parser) and() (ast.Expr, *ParseError) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(token.And) {
		operator := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &ast.Logical{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

// equality → comparison ( ( "!=" | "==" ) comparison )* ;
func (p *Parser) equality() (ast.Expr, *ParseError) {
	return p.leftAssociative(p.comparison, token.BangEqual, token.EqualEqual)
}

// comparison → term ( ( ">" | ">=" | "<" | "<=" ) term )* ;
func (p *Parser) comparison() (ast.Expr, *ParseError) {
	return p.leftAssociative(p.term, token.Greater, token.GreaterEqual, token.Less, token.LessEqual)
}

// term → factor ( ( "-" | "+" ) factor )* ;
func (p *Parser) term() (ast.Expr, *ParseError) {
	return p.leftAssociative(p.factor, token.Minus, token.Plus)
}

// factor → unary ( ( "/" | "*" ) unary )* ;
func (p *Parser) factor() (ast.Expr, *ParseError) {
	return p.leftAssociative(p.unary, token.Slash, token.Star)
}

// leftAssociative folds "operand (op operand)*" into a left-leaning tree,
// shared by every left-associative binary level.
func (p *Parser) leftAssociative(operand func() (ast.Expr, *ParseError), types ...token.Type) (ast.Expr, *ParseError) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.match(types...) {
		operator := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

// unary → ( "!" | "-" ) unary | call ;
func (p *Parser) unary() (ast.Expr, *ParseError) {
	if p.match(token.Bang, token.Minus) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Operator: operator, Right: right}, nil
	}
	return p.call()
}

// call → primary ( "(" arguments? ")" )* ;
//
// The loop supports chained calls such as f()().
func (p *Parser) call() (ast.Expr, *ParseError) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.match(token.LeftParen) {
		expr, err = p.finishCall(expr)
		if err != nil {
			return nil, err
		}
	}
	return expr, nil
}

// arguments → expression ( "," expression )* ;
func (p *Parser) finishCall(callee ast.Expr) (ast.Expr, *ParseError) {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		for {
			if len(args) >= maxCallArity {
				return nil, errorAt(p.peek(), fmt.Sprintf("Can't have more than %d arguments.", maxCallArity))
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren, err := p.consume(token.RightParen, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return &ast.Call{Callee: callee, Paren: paren, Arguments: args}, nil
}

// primary → NUMBER | STRING | "true" | "false" | "nil" | "(" expression ")" | IDENTIFIER ;
func (p *Parser) primary() (ast.Expr, *ParseError) {
	switch {
	case p.match(token.True):
		return &ast.BooleanLiteral{Value: true}, nil
	case p.match(token.False):
		return &ast.BooleanLiteral{Value: false}, nil
	case p.match(token.Nil):
		return &ast.NilLiteral{}, nil
	case p.match(token.Number):
		value, _ := p.previous().Literal.(float64)
		return &ast.NumberLiteral{Value: value}, nil
	case p.match(token.String):
		value, _ := p.previous().Literal.(string)
		return &ast.StringLiteral{Value: value}, nil
	case p.match(token.Identifier):
		return &ast.Variable{Name: p.previous()}, nil
	case p.match(token.LeftParen):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &ast.Grouping{Expression: expr}, nil
	}
	return nil, errorAt(p.peek(), "Expect expression.")
}

//-----------------------------------------------------------------------------
// Token cursor
//-----------------------------------------------------------------------------

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(t token.Type, message string) (token.Token, *ParseError) {
	if p.check(t) {
		return p.advance(), nil
	}
	return token.Token{}, errorAt(p.peek(), message)
}

// synchronize discards tokens until a statement boundary: just past a
// semicolon, or in front of a token that begins a new declaration.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == token.Semicolon {
			return
		}
		switch p.peek().Type {
		case token.Class, token.Fun, token.Var, token.For,
			token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}

func (p *Parser) check(t token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}
