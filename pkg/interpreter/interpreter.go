// Package interpreter executes parsed programs by walking the syntax tree.
// Execution is single-threaded and depth-first; the only non-local control
// transfer is the return signal, which unwinds to the enclosing call
// boundary and no further.
package interpreter

import (
	"errors"
	"fmt"
	"io"
	"os"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

// Interpreter owns the global environment for one run and the stream print
// writes to. Independent runs get independent interpreters, so a test suite
// can execute many programs in one process without shared state.
type Interpreter struct {
	globals *runtime.Environment
	stdout  io.Writer
}

// New creates an interpreter printing to stdout. The global environment
// starts empty: nothing is predeclared beyond what the program defines.
func New() *Interpreter {
	return NewWithOutput(os.Stdout)
}

// NewWithOutput creates an interpreter whose print statements write to w.
func NewWithOutput(w io.Writer) *Interpreter {
	return &Interpreter{
		globals: runtime.NewEnvironment(),
		stdout:  w,
	}
}

// Globals exposes the global scope, mainly for REPL sessions and embedding.
func (i *Interpreter) Globals() *runtime.Environment {
	return i.globals
}

// RegisterNative binds a host function in the global scope. The interpreter
// itself registers nothing; hosts opt in per function.
func (i *Interpreter) RegisterNative(name string, arity int, impl runtime.NativeFunc) {
	i.globals.Define(name, &runtime.NativeFunctionValue{Name: name, Arity: arity, Impl: impl})
}

// Interpret executes top-level declarations in order against the global
// environment. It returns a *RuntimeError on failure; execution stops at the
// first runtime error.
func (i *Interpreter) Interpret(program []ast.Stmt) error {
	for _, stmt := range program {
		if err := i.execute(stmt, i.globals); err != nil {
			var signal returnSignal
			if errors.As(err, &signal) {
				return runtimeErrorAt(signal.keyword, "Can't return from top-level code.")
			}
			return err
		}
	}
	return nil
}

func (i *Interpreter) execute(stmt ast.Stmt, env *runtime.Environment) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := i.evaluate(s.Expression, env)
		return err

	case *ast.PrintStmt:
		value, err := i.evaluate(s.Expression, env)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.stdout, runtime.Display(value))
		return nil

	case *ast.VarStmt:
		var value runtime.Value = runtime.NilValue{}
		if s.Initializer != nil {
			var err error
			value, err = i.evaluate(s.Initializer, env)
			if err != nil {
				return err
			}
		}
		env.Define(s.Name.Lexeme, value)
		return nil

	case *ast.BlockStmt:
		return i.executeBlock(s.Statements, runtime.NewEnclosedEnvironment(env))

	case *ast.IfStmt:
		condition, err := i.evaluate(s.Condition, env)
		if err != nil {
			return err
		}
		if runtime.Truthy(condition) {
			return i.execute(s.ThenBranch, env)
		}
		if s.ElseBranch != nil {
			return i.execute(s.ElseBranch, env)
		}
		return nil

	case *ast.WhileStmt:
		for {
			condition, err := i.evaluate(s.Condition, env)
			if err != nil {
				return err
			}
			if !runtime.Truthy(condition) {
				return nil
			}
			if err := i.execute(s.Body, env); err != nil {
				return err
			}
		}

	case *ast.FunctionStmt:
		// The binding is created before the body ever runs, so the function
		// sees its own name and recursion resolves.
		env.Define(s.Name.Lexeme, &runtime.FunctionValue{Declaration: s, Closure: env})
		return nil

	case *ast.ReturnStmt:
		var value runtime.Value = runtime.NilValue{}
		if s.Value != nil {
			var err error
			value, err = i.evaluate(s.Value, env)
			if err != nil {
				return err
			}
		}
		return returnSignal{value: value, keyword: s.Keyword}

	default:
		return &RuntimeError{Message: fmt.Sprintf("unknown statement node %T", stmt)}
	}
}

// executeBlock runs statements against a fresh child scope. The scope is
// dropped on exit unless a closure declared inside it still references it.
func (i *Interpreter) executeBlock(statements []ast.Stmt, env *runtime.Environment) error {
	for _, stmt := range statements {
		if err := i.execute(stmt, env); err != nil {
			return err
		}
	}
	return nil
}
