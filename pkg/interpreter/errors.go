package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/token"
)

// RuntimeError reports an evaluation failure attributed to a source token.
// Evaluation halts at the point of the error; side effects already emitted
// are not rolled back.
type RuntimeError struct {
	Line    int
	Lexeme  string
	Message string
}

func (e *RuntimeError) Error() string {
	if e.Lexeme == "" {
		return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Line, e.Lexeme, e.Message)
}

func runtimeErrorAt(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Line:    tok.Line,
		Lexeme:  tok.Lexeme,
		Message: fmt.Sprintf(format, args...),
	}
}
