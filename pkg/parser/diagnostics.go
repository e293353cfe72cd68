package parser

import (
	"fmt"

	"lox/interpreter-go/pkg/token"
)

// ParseError is a syntax diagnostic carrying the offending token. The parser
// records one per malformed statement and resynchronizes, so several can
// surface from a single pass.
type ParseError struct {
	Token   token.Token
	Message string
}

func (e *ParseError) Error() string {
	if e.Token.Type == token.EOF {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Token.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Token.Line, e.Token.Lexeme, e.Message)
}

func errorAt(tok token.Token, message string) *ParseError {
	return &ParseError{Token: tok, Message: message}
}
