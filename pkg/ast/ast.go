// Package ast defines the expression and statement nodes produced by the
// parser and consumed by the interpreter. Nodes are immutable trees;
// evaluation never mutates them.
package ast

import "lox/interpreter-go/pkg/token"

// Expr is implemented by every expression node.
type Expr interface {
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	stmtNode()
}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

type NumberLiteral struct {
	Value float64
}

type StringLiteral struct {
	Value string
}

type BooleanLiteral struct {
	Value bool
}

type NilLiteral struct{}

// Variable is a name reference, resolved against the environment chain at
// evaluation time.
type Variable struct {
	Name token.Token
}

// Assign mutates an existing binding; it never declares one.
type Assign struct {
	Name  token.Token
	Value Expr
}

// Logical is a short-circuiting and/or expression. Its result is whichever
// operand determined the outcome, not a forced Boolean.
type Logical struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

type Unary struct {
	Operator token.Token
	Right    Expr
}

// Call applies a callee to arguments. Paren is the closing parenthesis,
// kept for runtime error attribution.
type Call struct {
	Callee    Expr
	Paren     token.Token
	Arguments []Expr
}

type Grouping struct {
	Expression Expr
}

func (*NumberLiteral) exprNode()  {}
func (*StringLiteral) exprNode()  {}
func (*BooleanLiteral) exprNode() {}
func (*NilLiteral) exprNode()     {}
func (*Variable) exprNode()       {}
func (*Assign) exprNode()         {}
func (*Logical) exprNode()        {}
func (*Binary) exprNode()         {}
func (*Unary) exprNode()          {}
func (*Call) exprNode()           {}
func (*Grouping) exprNode()       {}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

type ExpressionStmt struct {
	Expression Expr
}

type PrintStmt struct {
	Expression Expr
}

// VarStmt declares a binding in the current scope. Initializer may be nil,
// in which case the binding starts out as nil.
type VarStmt struct {
	Name        token.Token
	Initializer Expr
}

type BlockStmt struct {
	Statements []Stmt
}

type IfStmt struct {
	Condition  Expr
	ThenBranch Stmt
	ElseBranch Stmt
}

type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

// FunctionStmt declares a named function. There is no separate for-loop
// node: for desugars to Block/While at parse time.
type FunctionStmt struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

// ReturnStmt carries a value out of the enclosing call. Keyword is kept for
// error attribution when return appears outside any call.
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr
}

func (*ExpressionStmt) stmtNode() {}
func (*PrintStmt) stmtNode()      {}
func (*VarStmt) stmtNode()        {}
func (*BlockStmt) stmtNode()      {}
func (*IfStmt) stmtNode()         {}
func (*WhileStmt) stmtNode()      {}
func (*FunctionStmt) stmtNode()   {}
func (*ReturnStmt) stmtNode()     {}
