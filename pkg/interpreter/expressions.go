package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/token"
)

func (i *Interpreter) evaluate(expr ast.Expr, env *runtime.Environment) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return runtime.NumberValue{Val: e.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: e.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: e.Value}, nil
	case *ast.NilLiteral:
		return runtime.NilValue{}, nil

	case *ast.Grouping:
		return i.evaluate(e.Expression, env)

	case *ast.Variable:
		value, ok := env.Get(e.Name.Lexeme)
		if !ok {
			return nil, runtimeErrorAt(e.Name, "Undefined variable '%s'.", e.Name.Lexeme)
		}
		return value, nil

	case *ast.Assign:
		value, err := i.evaluate(e.Value, env)
		if err != nil {
			return nil, err
		}
		// Nearest scope wins; assignment never declares a new binding.
		if !env.Assign(e.Name.Lexeme, value) {
			return nil, runtimeErrorAt(e.Name, "Undefined variable '%s'.", e.Name.Lexeme)
		}
		return value, nil

	case *ast.Logical:
		return i.evaluateLogical(e, env)

	case *ast.Binary:
		return i.evaluateBinary(e, env)

	case *ast.Unary:
		return i.evaluateUnary(e, env)

	case *ast.Call:
		return i.evaluateCall(e, env)

	default:
		return nil, &RuntimeError{Message: fmt.Sprintf("unknown expression node %T", expr)}
	}
}

// evaluateLogical short-circuits: the result is whichever operand decided
// the outcome, not a Boolean coercion of it.
func (i *Interpreter) evaluateLogical(e *ast.Logical, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluate(e.Left, env)
	if err != nil {
		return nil, err
	}

	if e.Operator.Type == token.Or {
		if runtime.Truthy(left) {
			return left, nil
		}
	} else if !runtime.Truthy(left) {
		return left, nil
	}

	return i.evaluate(e.Right, env)
}

func (i *Interpreter) evaluateBinary(e *ast.Binary, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluate(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right, env)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case token.Plus:
		switch l := left.(type) {
		case runtime.NumberValue:
			if r, ok := right.(runtime.NumberValue); ok {
				return runtime.NumberValue{Val: l.Val + r.Val}, nil
			}
		case runtime.StringValue:
			if r, ok := right.(runtime.StringValue); ok {
				return runtime.StringValue{Val: l.Val + r.Val}, nil
			}
		}
		return nil, runtimeErrorAt(e.Operator, "Operands must be two numbers or two strings.")

	case token.Minus:
		l, r, err := i.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.NumberValue{Val: l - r}, nil

	case token.Star:
		l, r, err := i.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.NumberValue{Val: l * r}, nil

	case token.Slash:
		l, r, err := i.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		// Division follows IEEE-754: x/0 is an infinity, 0/0 is NaN.
		return runtime.NumberValue{Val: l / r}, nil

	case token.Greater:
		l, r, err := i.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: l > r}, nil

	case token.GreaterEqual:
		l, r, err := i.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: l >= r}, nil

	case token.Less:
		l, r, err := i.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: l < r}, nil

	case token.LessEqual:
		l, r, err := i.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: l <= r}, nil

	case token.EqualEqual:
		return runtime.BoolValue{Val: runtime.Equals(left, right)}, nil

	case token.BangEqual:
		return runtime.BoolValue{Val: !runtime.Equals(left, right)}, nil

	default:
		return nil, runtimeErrorAt(e.Operator, "Unknown binary operator.")
	}
}

func (i *Interpreter) evaluateUnary(e *ast.Unary, env *runtime.Environment) (runtime.Value, error) {
	right, err := i.evaluate(e.Right, env)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case token.Minus:
		number, ok := right.(runtime.NumberValue)
		if !ok {
			return nil, runtimeErrorAt(e.Operator, "Operand must be a number.")
		}
		return runtime.NumberValue{Val: -number.Val}, nil
	case token.Bang:
		return runtime.BoolValue{Val: !runtime.Truthy(right)}, nil
	default:
		return nil, runtimeErrorAt(e.Operator, "Unknown unary operator.")
	}
}

func (i *Interpreter) numberOperands(op token.Token, left, right runtime.Value) (float64, float64, error) {
	l, lok := left.(runtime.NumberValue)
	r, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return 0, 0, runtimeErrorAt(op, "Operands must be numbers.")
	}
	return l.Val, r.Val, nil
}
