package main

import (
	"fmt"
	"os"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/scanner"
)

type runCmd struct {
	Script string `arg:"" optional:"" type:"existingfile" help:"Lox source file"`
}

func (c *runCmd) Run() error {
	runner := driver.NewRunner(os.Stdout, os.Stderr)
	if c.Script == "" {
		return codeToError(runner.REPL(os.Stdin))
	}
	return codeToError(runner.RunFile(c.Script))
}

type replCmd struct{}

func (c *replCmd) Run() error {
	runner := driver.NewRunner(os.Stdout, os.Stderr)
	return codeToError(runner.REPL(os.Stdin))
}

type astCmd struct {
	Script string `arg:"" type:"existingfile" help:"Lox source file"`
}

func (c *astCmd) Run() error {
	source, err := os.ReadFile(c.Script)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read %s: %v\n", c.Script, err)
		return &exitError{code: driver.ExitNoInput}
	}
	runner := driver.NewRunner(os.Stdout, os.Stderr)
	program, ok := runner.Compile(string(source))
	if !ok {
		return &exitError{code: driver.ExitSyntaxError}
	}
	fmt.Println(ast.FormatProgram(program))
	return nil
}

type tokensCmd struct {
	Script string `arg:"" type:"existingfile" help:"Lox source file"`
}

func (c *tokensCmd) Run() error {
	source, err := os.ReadFile(c.Script)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read %s: %v\n", c.Script, err)
		return &exitError{code: driver.ExitNoInput}
	}

	tokens, scanErrs := scanner.New(string(source)).ScanTokens()
	for _, tok := range tokens {
		fmt.Println(tok)
	}
	for _, scanErr := range scanErrs {
		fmt.Fprintln(os.Stderr, scanErr)
	}
	if len(scanErrs) > 0 {
		return &exitError{code: driver.ExitSyntaxError}
	}
	return nil
}

func codeToError(code int) error {
	if code == driver.ExitOK {
		return nil
	}
	return &exitError{code: code}
}
