package interpreter

import (
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/token"
)

// returnSignal propagates a return value up through statement execution as
// an ordinary error value. It is unwrapped exactly at the call boundary and
// must never escape past the top level; Interpret converts an escaped signal
// into a RuntimeError.
type returnSignal struct {
	value   runtime.Value
	keyword token.Token
}

func (returnSignal) Error() string {
	return "return"
}
