// Package driver wires the pipeline together: source text through the
// scanner and parser into the interpreter, with diagnostics reported to an
// error stream and mapped to sysexits-style process codes.
package driver

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/interpreter"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/scanner"
)

// Process exit codes, following the sysexits convention the reference
// implementation uses: 65 for scan/parse errors, 70 for runtime errors.
const (
	ExitOK           = 0
	ExitUsage        = 64
	ExitSyntaxError  = 65
	ExitNoInput      = 66
	ExitRuntimeError = 70
)

// Runner executes whole sources against a single interpreter instance. A
// REPL session reuses one Runner so bindings persist across lines.
type Runner struct {
	stdout io.Writer
	stderr io.Writer
	interp *interpreter.Interpreter
}

func NewRunner(stdout, stderr io.Writer) *Runner {
	return &Runner{
		stdout: stdout,
		stderr: stderr,
		interp: interpreter.NewWithOutput(stdout),
	}
}

// Interpreter exposes the underlying interpreter for host registration.
func (r *Runner) Interpreter() *interpreter.Interpreter {
	return r.interp
}

// Compile scans and parses source, reporting every diagnostic to the error
// stream. The returned program is usable only when ok is true: any lexical
// or syntax error makes the whole source unusable for evaluation.
func (r *Runner) Compile(source string) (program []ast.Stmt, ok bool) {
	tokens, scanErrs := scanner.New(source).ScanTokens()
	if len(scanErrs) > 0 {
		for _, err := range scanErrs {
			fmt.Fprintln(r.stderr, err)
		}
		return nil, false
	}

	program, parseErrs := parser.New(tokens).Parse()
	if len(parseErrs) > 0 {
		for _, err := range parseErrs {
			fmt.Fprintln(r.stderr, err)
		}
		return nil, false
	}
	return program, true
}

// RunSource executes one source string and returns the process exit code
// for the outcome.
func (r *Runner) RunSource(source string) int {
	program, ok := r.Compile(source)
	if !ok {
		return ExitSyntaxError
	}
	if err := r.interp.Interpret(program); err != nil {
		fmt.Fprintln(r.stderr, err)
		return ExitRuntimeError
	}
	return ExitOK
}

// RunFile reads and executes a script file.
func (r *Runner) RunFile(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(r.stderr, "cannot read %s: %v\n", path, err)
		return ExitNoInput
	}
	return r.RunSource(string(source))
}

// REPL runs a line-oriented prompt against a persistent interpreter.
// Diagnostics are reported per line and the session continues; an empty
// line or end of input ends the session.
func (r *Runner) REPL(stdin io.Reader) int {
	lines := bufio.NewScanner(stdin)
	for {
		fmt.Fprint(r.stdout, "> ")
		if !lines.Scan() {
			fmt.Fprintln(r.stdout)
			return ExitOK
		}
		line := lines.Text()
		if line == "" {
			return ExitOK
		}
		// Errors are reported but never end the session.
		r.RunSource(line)
	}
}
