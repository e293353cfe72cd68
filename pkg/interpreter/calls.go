package interpreter

import (
	"errors"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

// evaluateCall implements the call protocol: evaluate the callee, evaluate
// arguments left to right, check arity, then enter the frame. A user call's
// frame is a child of the function's captured environment, never of the
// caller's environment.
func (i *Interpreter) evaluateCall(e *ast.Call, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluate(e.Callee, env)
	if err != nil {
		return nil, err
	}

	args := make([]runtime.Value, 0, len(e.Arguments))
	for _, argExpr := range e.Arguments {
		arg, err := i.evaluate(argExpr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	callable, ok := callee.(runtime.Callable)
	if !ok {
		return nil, runtimeErrorAt(e.Paren, "Can only call functions or classes.")
	}
	if len(args) != callable.CallableArity() {
		return nil, runtimeErrorAt(e.Paren, "Expected %d arguments but got %d.", callable.CallableArity(), len(args))
	}

	switch fn := callable.(type) {
	case *runtime.FunctionValue:
		return i.callFunction(fn, args)
	case *runtime.NativeFunctionValue:
		result, err := fn.Impl(args)
		if err != nil {
			return nil, runtimeErrorAt(e.Paren, "%s", err.Error())
		}
		if result == nil {
			result = runtime.NilValue{}
		}
		return result, nil
	default:
		return nil, runtimeErrorAt(e.Paren, "Can only call functions or classes.")
	}
}

func (i *Interpreter) callFunction(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	frame := runtime.NewEnclosedEnvironment(fn.Closure)
	for idx, param := range fn.Declaration.Params {
		frame.Define(param.Lexeme, args[idx])
	}

	err := i.executeBlock(fn.Declaration.Body, frame)
	if err != nil {
		var signal returnSignal
		if errors.As(err, &signal) {
			return signal.value, nil
		}
		return nil, err
	}
	// Falling off the end of a body yields nil.
	return runtime.NilValue{}, nil
}
