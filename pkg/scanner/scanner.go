// Package scanner converts raw source text into a line-tagged token stream.
// Lexical errors are recorded and scanning continues, so a single bad
// character does not hide diagnostics later in the file.
package scanner

import (
	"fmt"
	"strconv"

	"lox/interpreter-go/pkg/token"
)

// Error is a lexical diagnostic attributed to a source line.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}

// Scanner walks source text and produces tokens terminated by a single EOF
// token. It is single-use; create a new Scanner per source string.
type Scanner struct {
	source  string
	tokens  []token.Token
	errs    []*Error
	start   int
	current int
	line    int
}

func New(source string) *Scanner {
	return &Scanner{source: source, line: 1}
}

// ScanTokens scans the whole source and returns the token stream together
// with every lexical error encountered. The token stream always ends with an
// EOF token, even when errors were recorded.
func (s *Scanner) ScanTokens() ([]token.Token, []*Error) {
	for !s.isAtEnd() {
		s.start = s.current
		s.scanToken()
	}
	s.tokens = append(s.tokens, token.Token{Type: token.EOF, Line: s.line})
	return s.tokens, s.errs
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.addToken(token.LeftParen)
	case ')':
		s.addToken(token.RightParen)
	case '{':
		s.addToken(token.LeftBrace)
	case '}':
		s.addToken(token.RightBrace)
	case ',':
		s.addToken(token.Comma)
	case '.':
		s.addToken(token.Dot)
	case '-':
		s.addToken(token.Minus)
	case '+':
		s.addToken(token.Plus)
	case ';':
		s.addToken(token.Semicolon)
	case '*':
		s.addToken(token.Star)
	case '!':
		s.addMatched('=', token.BangEqual, token.Bang)
	case '=':
		s.addMatched('=', token.EqualEqual, token.Equal)
	case '<':
		s.addMatched('=', token.LessEqual, token.Less)
	case '>':
		s.addMatched('=', token.GreaterEqual, token.Greater)
	case '/':
		if s.match('/') {
			// Comment runs to end of line and produces no token.
			for s.peek() != '\n' && !s.isAtEnd() {
				s.advance()
			}
		} else {
			s.addToken(token.Slash)
		}
	case ' ', '\r', '\t':
	case '\n':
		s.line++
	case '"', '\'':
		s.scanString(c)
	default:
		switch {
		case isDigit(c):
			s.scanNumber()
		case isAlpha(c):
			s.scanIdentifier()
		default:
			s.reportf("Unexpected character: %q.", c)
		}
	}
}

// addMatched applies the maximal-munch rule for two-character operators:
// the longer token wins only when the next character matches.
func (s *Scanner) addMatched(expected byte, matched, single token.Type) {
	if s.match(expected) {
		s.addToken(matched)
	} else {
		s.addToken(single)
	}
}

func (s *Scanner) scanString(delim byte) {
	startLine := s.line
	for s.peek() != delim && !s.isAtEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}

	if s.isAtEnd() {
		s.errs = append(s.errs, &Error{Line: startLine, Message: "Unterminated string."})
		return
	}

	// The closing delimiter.
	s.advance()

	value := s.source[s.start+1 : s.current-1]
	s.addLiteralToken(token.String, value)
}

func (s *Scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}

	// A fractional part requires a digit after the dot; "5." leaves the dot
	// for the parser to reject.
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}

	value, err := strconv.ParseFloat(s.source[s.start:s.current], 64)
	if err != nil {
		s.reportf("Invalid number literal %q.", s.source[s.start:s.current])
		return
	}
	s.addLiteralToken(token.Number, value)
}

func (s *Scanner) scanIdentifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}

	text := s.source[s.start:s.current]
	if keyword, ok := token.LookupKeyword(text); ok {
		s.addToken(keyword)
		return
	}
	s.addToken(token.Identifier)
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	return c
}

func (s *Scanner) match(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) addToken(t token.Type) {
	s.addLiteralToken(t, nil)
}

func (s *Scanner) addLiteralToken(t token.Type, literal any) {
	s.tokens = append(s.tokens, token.Token{
		Type:    t,
		Lexeme:  s.source[s.start:s.current],
		Literal: literal,
		Line:    s.line,
	})
}

func (s *Scanner) reportf(format string, args ...any) {
	s.errs = append(s.errs, &Error{Line: s.line, Message: fmt.Sprintf(format, args...)})
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
