package interpreter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/scanner"
)

func compile(t *testing.T, source string) []ast.Stmt {
	t.Helper()
	tokens, scanErrs := scanner.New(source).ScanTokens()
	if len(scanErrs) != 0 {
		t.Fatalf("unexpected scan errors: %v", scanErrs)
	}
	program, parseErrs := parser.New(tokens).Parse()
	if len(parseErrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}
	return program
}

// run executes source on a fresh interpreter and returns everything print
// emitted, one line per element.
func run(t *testing.T, source string) ([]string, error) {
	t.Helper()
	var out bytes.Buffer
	interp := NewWithOutput(&out)
	err := interp.Interpret(compile(t, source))
	text := strings.TrimSuffix(out.String(), "\n")
	if text == "" {
		return nil, err
	}
	return strings.Split(text, "\n"), err
}

func runOK(t *testing.T, source string) []string {
	t.Helper()
	lines, err := run(t, source)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	return lines
}

func runtimeErrorFrom(t *testing.T, source string) *RuntimeError {
	t.Helper()
	_, err := run(t, source)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	var rerr *RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
	}
	return rerr
}

func TestPrintOutcomes(t *testing.T) {
	cases := []struct {
		source string
		want   []string
	}{
		{"print 1 + 2 * 3;", []string{"7"}},
		{"print (1 + 2) * 3;", []string{"9"}},
		{"print 10 / 4;", []string{"2.5"}},
		{"print -5 - -3;", []string{"-2"}},
		{`print "foo" + "bar";`, []string{"foobar"}},
		{"print 1 < 2;", []string{"true"}},
		{"print 2 <= 1;", []string{"false"}},
		{"print nil;", []string{"nil"}},
		{"print !nil;", []string{"true"}},
		{"print !0;", []string{"false"}},
		{`print 1 == "1";`, []string{"false"}},
		{"print nil == false;", []string{"false"}},
		{"print 1 != 2;", []string{"true"}},
	}
	for _, tc := range cases {
		got := runOK(t, tc.source)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("%s: output mismatch (-want +got):\n%s", tc.source, diff)
		}
	}
}

func TestDivisionFollowsIEEE754(t *testing.T) {
	got := runOK(t, "print 1 / 0;\nprint -1 / 0;\nprint 0 / 0;")
	want := []string{"+Inf", "-Inf", "NaN"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestVarDefaultsToNil(t *testing.T) {
	got := runOK(t, "var a;\nprint a;")
	if diff := cmp.Diff([]string{"nil"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestBlockScopingAndShadowing(t *testing.T) {
	got := runOK(t, `
var a = 1;
{
  var a = 2;
  print a;
}
print a;
`)
	if diff := cmp.Diff([]string{"2", "1"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestAssignmentReachesDefiningScope(t *testing.T) {
	got := runOK(t, `
var a = 1;
{
  a = 2;
}
print a;
`)
	if diff := cmp.Diff([]string{"2"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestAssignmentIsAnExpression(t *testing.T) {
	got := runOK(t, "var a = 1;\nvar b = 1;\nprint a = b = 5;\nprint a;\nprint b;")
	if diff := cmp.Diff([]string{"5", "5", "5"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestShortCircuitSkipsRightOperand(t *testing.T) {
	// boom is undefined; reaching it would be a runtime error.
	got := runOK(t, "print false and boom;\nprint 1 or boom;")
	if diff := cmp.Diff([]string{"false", "1"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestLogicalOperatorsReturnOperandValues(t *testing.T) {
	got := runOK(t, `print nil or "fallback";`+"\n"+`print "left" and "right";`+"\n"+`print nil and "never";`)
	if diff := cmp.Diff([]string{"fallback", "right", "nil"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestIfElseChain(t *testing.T) {
	got := runOK(t, `
var n = 0;
if (n < 0) print "negative";
else if (n > 0) print "positive";
else print "zero";
`)
	if diff := cmp.Diff([]string{"zero"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestWhileAndForLoops(t *testing.T) {
	got := runOK(t, `
var i = 0;
while (i < 3) {
  print i;
  i = i + 1;
}
for (var j = 3; j > 0; j = j - 1) print j;
`)
	if diff := cmp.Diff([]string{"0", "1", "2", "3", "2", "1"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestFunctionCallAndReturn(t *testing.T) {
	got := runOK(t, `
fun add(a, b) {
  return a + b;
}
print add(1, 2);
print add;
`)
	if diff := cmp.Diff([]string{"3", "<fn add>"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestFallingOffBodyYieldsNil(t *testing.T) {
	got := runOK(t, "fun noop() {}\nprint noop();")
	if diff := cmp.Diff([]string{"nil"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestReturnUnwindsThroughNestedLoops(t *testing.T) {
	got := runOK(t, `
fun find() {
  for (var i = 0; i < 10; i = i + 1) {
    while (true) {
      if (i == 3) return i;
      i = i + 1;
    }
  }
}
print find();
`)
	if diff := cmp.Diff([]string{"3"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRecursion(t *testing.T) {
	got := runOK(t, `
fun fib(n) {
  if (n < 2) return n;
  return fib(n - 1) + fib(n - 2);
}
print fib(10);
`)
	if diff := cmp.Diff([]string{"55"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestClosureCapturesDeclarationEnvironment(t *testing.T) {
	got := runOK(t, `
fun makeCounter() {
  var count = 0;
  fun increment() {
    count = count + 1;
    return count;
  }
  return increment;
}
var counter = makeCounter();
print counter();
print counter();
var other = makeCounter();
print other();
`)
	if diff := cmp.Diff([]string{"1", "2", "1"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestLoopClosuresShareOneVariable(t *testing.T) {
	// The desugared for loop declares its variable once, so every closure
	// created in the body observes the same binding and its final value.
	got := runOK(t, `
var first;
var second;
for (var i = 1; i <= 2; i = i + 1) {
  fun get() { return i; }
  if (i == 1) first = get;
  else second = get;
}
print first();
print second();
`)
	if diff := cmp.Diff([]string{"3", "3"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestCallFrameBuildsOnClosureNotCaller(t *testing.T) {
	got := runOK(t, `
var a = "global";
fun show() {
  print a;
}
fun caller() {
  var a = "local";
  show();
}
caller();
`)
	if diff := cmp.Diff([]string{"global"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestChainedCalls(t *testing.T) {
	got := runOK(t, `
fun adder(a) {
  fun inner(b) {
    return a + b;
  }
  return inner;
}
print adder(1)(2);
`)
	if diff := cmp.Diff([]string{"3"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestFunctionEqualityIsIdentity(t *testing.T) {
	got := runOK(t, `
fun f() {}
fun g() {}
var h = f;
print f == h;
print f == g;
`)
	if diff := cmp.Diff([]string{"true", "false"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRuntimeErrors(t *testing.T) {
	cases := []struct {
		source  string
		message string
	}{
		{`print "a" + 1;`, "Operands must be two numbers or two strings."},
		{`print 1 + "a";`, "Operands must be two numbers or two strings."},
		{`print 1 < "2";`, "Operands must be numbers."},
		{`print -"a";`, "Operand must be a number."},
		{"print missing;", "Undefined variable 'missing'."},
		{"missing = 1;", "Undefined variable 'missing'."},
		{`"not callable"();`, "Can only call functions or classes."},
		{"fun f(a, b) {}\nf(1);", "Expected 2 arguments but got 1."},
		{"fun f() {}\nf(1);", "Expected 0 arguments but got 1."},
		{"return 1;", "Can't return from top-level code."},
	}
	for _, tc := range cases {
		rerr := runtimeErrorFrom(t, tc.source)
		if rerr.Message != tc.message {
			t.Fatalf("%s: got message %q, want %q", tc.source, rerr.Message, tc.message)
		}
	}
}

func TestRuntimeErrorCarriesLineAndLexeme(t *testing.T) {
	rerr := runtimeErrorFrom(t, "var a = 1;\nprint a + nil;")
	if rerr.Line != 2 {
		t.Fatalf("expected line 2, got %d", rerr.Line)
	}
	want := "[line 2] Error at '+': Operands must be two numbers or two strings."
	if rerr.Error() != want {
		t.Fatalf("got %q, want %q", rerr.Error(), want)
	}
}

func TestExecutionStopsAtFirstRuntimeError(t *testing.T) {
	lines, err := run(t, "print 1;\nprint missing;\nprint 2;")
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	if diff := cmp.Diff([]string{"1"}, lines); diff != "" {
		t.Fatalf("output before the error must survive, after must not (-want +got):\n%s", diff)
	}
}

func TestRegisterNative(t *testing.T) {
	var out bytes.Buffer
	interp := NewWithOutput(&out)
	interp.RegisterNative("double", 1, func(args []runtime.Value) (runtime.Value, error) {
		n, ok := args[0].(runtime.NumberValue)
		if !ok {
			return nil, fmt.Errorf("double expects a number")
		}
		return runtime.NumberValue{Val: 2 * n.Val}, nil
	})

	if err := interp.Interpret(compile(t, "print double(21);\nprint double;")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "42\n<native fn double>\n"
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}

func TestNativeErrorBecomesRuntimeError(t *testing.T) {
	var out bytes.Buffer
	interp := NewWithOutput(&out)
	interp.RegisterNative("fail", 0, func(args []runtime.Value) (runtime.Value, error) {
		return nil, fmt.Errorf("host refused")
	})

	err := interp.Interpret(compile(t, "fail();"))
	var rerr *RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
	}
	if rerr.Message != "host refused" {
		t.Fatalf("unexpected message: %q", rerr.Message)
	}
}

func TestNativeArityIsChecked(t *testing.T) {
	var out bytes.Buffer
	interp := NewWithOutput(&out)
	interp.RegisterNative("pair", 2, func(args []runtime.Value) (runtime.Value, error) {
		return args[0], nil
	})

	err := interp.Interpret(compile(t, "pair(1);"))
	var rerr *RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
	}
	if rerr.Message != "Expected 2 arguments but got 1." {
		t.Fatalf("unexpected message: %q", rerr.Message)
	}
}

func TestGlobalsPersistAcrossInterpretCalls(t *testing.T) {
	var out bytes.Buffer
	interp := NewWithOutput(&out)
	if err := interp.Interpret(compile(t, "var a = 1;")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := interp.Interpret(compile(t, "print a;")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "1\n" {
		t.Fatalf("got %q, want %q", out.String(), "1\n")
	}
}
