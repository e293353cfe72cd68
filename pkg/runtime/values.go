// Package runtime defines the dynamic value union and the environment chain
// shared by the interpreter.
package runtime

import (
	"fmt"
	"strconv"

	"lox/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
	KindNil
	KindFunction
	KindNativeFunction
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNil:
		return "nil"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

//-----------------------------------------------------------------------------
// Functions & closures
//-----------------------------------------------------------------------------

// FunctionValue is a user-declared function bundled with the environment
// that was active at its declaration site. Calls build their frame on top of
// Closure, never on the caller's environment.
type FunctionValue struct {
	Declaration *ast.FunctionStmt
	Closure     *Environment
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

// NativeFunc is the implementation signature for host-registered functions.
type NativeFunc func(args []Value) (Value, error)

// NativeFunctionValue is a host function exposed to programs through
// explicit registration. Nothing is predeclared by default.
type NativeFunctionValue struct {
	Name  string
	Arity int
	Impl  NativeFunc
}

func (v *NativeFunctionValue) Kind() Kind { return KindNativeFunction }

// Callable unifies the invocable value kinds for arity checking.
type Callable interface {
	Value
	CallableArity() int
}

func (v *FunctionValue) CallableArity() int       { return len(v.Declaration.Params) }
func (v *NativeFunctionValue) CallableArity() int { return v.Arity }

//-----------------------------------------------------------------------------
// Shared semantics
//-----------------------------------------------------------------------------

// Truthy reports whether a value counts as true in a condition. Only nil and
// boolean false are falsy; 0 and "" are truthy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case NilValue:
		return false
	case BoolValue:
		return val.Val
	default:
		return true
	}
}

// Equals implements == over the full value union: nil equals only nil,
// scalars compare by value within their own kind, values of different kinds
// are never equal, and callables are equal only by identity.
func Equals(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch left := a.(type) {
	case NumberValue:
		return left.Val == b.(NumberValue).Val
	case StringValue:
		return left.Val == b.(StringValue).Val
	case BoolValue:
		return left.Val == b.(BoolValue).Val
	case NilValue:
		return true
	case *FunctionValue:
		return left == b.(*FunctionValue)
	case *NativeFunctionValue:
		return left == b.(*NativeFunctionValue)
	default:
		return false
	}
}

// Display renders a value the way print emits it: numbers without a trailing
// decimal point when integral (IEEE infinities as "+Inf"/"-Inf", "NaN" for
// NaN), strings without quotes, booleans as true/false, nil as "nil".
func Display(v Value) string {
	switch val := v.(type) {
	case NumberValue:
		return strconv.FormatFloat(val.Val, 'f', -1, 64)
	case StringValue:
		return val.Val
	case BoolValue:
		return strconv.FormatBool(val.Val)
	case NilValue:
		return "nil"
	case *FunctionValue:
		return fmt.Sprintf("<fn %s>", val.Declaration.Name.Lexeme)
	case *NativeFunctionValue:
		return fmt.Sprintf("<native fn %s>", val.Name)
	default:
		return fmt.Sprintf("<unknown %T>", v)
	}
}
