package driver

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lox/interpreter-go/pkg/runtime"
)

func newTestRunner() (*Runner, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return NewRunner(&stdout, &stderr), &stdout, &stderr
}

func TestRunSourceOK(t *testing.T) {
	r, stdout, stderr := newTestRunner()
	if code := r.RunSource("print 1 + 2;"); code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if stdout.String() != "3\n" {
		t.Fatalf("unexpected stdout: %q", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
}

func TestRunSourceScanError(t *testing.T) {
	r, _, stderr := newTestRunner()
	if code := r.RunSource("print @;"); code != ExitSyntaxError {
		t.Fatalf("expected exit %d, got %d", ExitSyntaxError, code)
	}
	if !strings.Contains(stderr.String(), "Unexpected character") {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
}

func TestRunSourceParseErrorsAllReported(t *testing.T) {
	r, stdout, stderr := newTestRunner()
	if code := r.RunSource("var 1;\nprint +;\nprint 9;"); code != ExitSyntaxError {
		t.Fatalf("expected exit %d, got %d", ExitSyntaxError, code)
	}
	if !strings.Contains(stderr.String(), "Expect variable name.") {
		t.Fatalf("missing first diagnostic: %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), "Expect expression.") {
		t.Fatalf("missing second diagnostic: %q", stderr.String())
	}
	// A source with syntax errors must not execute at all.
	if stdout.Len() != 0 {
		t.Fatalf("unexpected stdout: %q", stdout.String())
	}
}

func TestRunSourceRuntimeError(t *testing.T) {
	r, stdout, stderr := newTestRunner()
	if code := r.RunSource("print 1;\nprint missing;"); code != ExitRuntimeError {
		t.Fatalf("expected exit %d, got %d", ExitRuntimeError, code)
	}
	if stdout.String() != "1\n" {
		t.Fatalf("unexpected stdout: %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "Undefined variable 'missing'.") {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.lox")
	if err := os.WriteFile(path, []byte("print \"from file\";\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, stdout, _ := newTestRunner()
	if code := r.RunFile(path); code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if stdout.String() != "from file\n" {
		t.Fatalf("unexpected stdout: %q", stdout.String())
	}
}

func TestRunFileMissing(t *testing.T) {
	r, _, stderr := newTestRunner()
	if code := r.RunFile(filepath.Join(t.TempDir(), "nope.lox")); code != ExitNoInput {
		t.Fatalf("expected exit %d, got %d", ExitNoInput, code)
	}
	if !strings.Contains(stderr.String(), "cannot read") {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
}

func TestREPLBindingsPersistAcrossLines(t *testing.T) {
	r, stdout, _ := newTestRunner()
	stdin := strings.NewReader("var a = 1;\nprint a + 1;\n\n")
	if code := r.REPL(stdin); code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if stdout.String() != "> > 2\n> " {
		t.Fatalf("unexpected stdout: %q", stdout.String())
	}
}

func TestREPLSurvivesErrors(t *testing.T) {
	r, stdout, stderr := newTestRunner()
	stdin := strings.NewReader("print missing;\nprint 7;\n\n")
	if code := r.REPL(stdin); code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if !strings.Contains(stderr.String(), "Undefined variable 'missing'.") {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
	if !strings.Contains(stdout.String(), "7\n") {
		t.Fatalf("session should continue past errors, stdout: %q", stdout.String())
	}
}

func TestREPLEndsAtEOF(t *testing.T) {
	r, stdout, _ := newTestRunner()
	if code := r.REPL(strings.NewReader("print 1;")); code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if stdout.String() != "> 1\n> \n" {
		t.Fatalf("unexpected stdout: %q", stdout.String())
	}
}

func TestInterpreterAccessorAllowsHostRegistration(t *testing.T) {
	r, stdout, _ := newTestRunner()
	r.Interpreter().RegisterNative("answer", 0, func(args []runtime.Value) (runtime.Value, error) {
		return runtime.NumberValue{Val: 42}, nil
	})
	if code := r.RunSource("print answer();"); code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if stdout.String() != "42\n" {
		t.Fatalf("unexpected stdout: %q", stdout.String())
	}
}
