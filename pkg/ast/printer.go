package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatExpr renders an expression as a parenthesized prefix form, e.g.
// "(+ 2 (* 3 4))". Useful for parser tests and the ast subcommand.
func FormatExpr(expr Expr) string {
	switch e := expr.(type) {
	case *NumberLiteral:
		return strconv.FormatFloat(e.Value, 'f', -1, 64)
	case *StringLiteral:
		return fmt.Sprintf("%q", e.Value)
	case *BooleanLiteral:
		return strconv.FormatBool(e.Value)
	case *NilLiteral:
		return "nil"
	case *Variable:
		return e.Name.Lexeme
	case *Assign:
		return parenthesize("= "+e.Name.Lexeme, e.Value)
	case *Logical:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *Binary:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *Unary:
		return parenthesize(e.Operator.Lexeme, e.Right)
	case *Call:
		return parenthesize("call", append([]Expr{e.Callee}, e.Arguments...)...)
	case *Grouping:
		return parenthesize("group", e.Expression)
	default:
		return fmt.Sprintf("<unknown expr %T>", expr)
	}
}

// FormatStmt renders a statement tree in the same prefix form.
func FormatStmt(stmt Stmt) string {
	switch s := stmt.(type) {
	case *ExpressionStmt:
		return parenthesize("expr", s.Expression)
	case *PrintStmt:
		return parenthesize("print", s.Expression)
	case *VarStmt:
		if s.Initializer == nil {
			return "(var " + s.Name.Lexeme + ")"
		}
		return parenthesize("var "+s.Name.Lexeme, s.Initializer)
	case *BlockStmt:
		return formatBlock("block", s.Statements)
	case *IfStmt:
		var sb strings.Builder
		sb.WriteString("(if ")
		sb.WriteString(FormatExpr(s.Condition))
		sb.WriteByte(' ')
		sb.WriteString(FormatStmt(s.ThenBranch))
		if s.ElseBranch != nil {
			sb.WriteByte(' ')
			sb.WriteString(FormatStmt(s.ElseBranch))
		}
		sb.WriteByte(')')
		return sb.String()
	case *WhileStmt:
		return "(while " + FormatExpr(s.Condition) + " " + FormatStmt(s.Body) + ")"
	case *FunctionStmt:
		var sb strings.Builder
		sb.WriteString("(fun ")
		sb.WriteString(s.Name.Lexeme)
		sb.WriteString(" (")
		for i, p := range s.Params {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(p.Lexeme)
		}
		sb.WriteString(")")
		for _, body := range s.Body {
			sb.WriteByte(' ')
			sb.WriteString(FormatStmt(body))
		}
		sb.WriteByte(')')
		return sb.String()
	case *ReturnStmt:
		if s.Value == nil {
			return "(return)"
		}
		return parenthesize("return", s.Value)
	default:
		return fmt.Sprintf("<unknown stmt %T>", stmt)
	}
}

// FormatProgram renders each top-level declaration on its own line.
func FormatProgram(stmts []Stmt) string {
	lines := make([]string, 0, len(stmts))
	for _, stmt := range stmts {
		lines = append(lines, FormatStmt(stmt))
	}
	return strings.Join(lines, "\n")
}

func parenthesize(name string, exprs ...Expr) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(name)
	for _, expr := range exprs {
		sb.WriteByte(' ')
		sb.WriteString(FormatExpr(expr))
	}
	sb.WriteByte(')')
	return sb.String()
}

func formatBlock(name string, stmts []Stmt) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(name)
	for _, stmt := range stmts {
		sb.WriteByte(' ')
		sb.WriteString(FormatStmt(stmt))
	}
	sb.WriteByte(')')
	return sb.String()
}
