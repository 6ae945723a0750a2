package evaluator_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/longkhanh1987/CS-4080-HW/pkg/ast"
	"github.com/longkhanh1987/CS-4080-HW/pkg/diagnostics"
	"github.com/longkhanh1987/CS-4080-HW/pkg/evaluator"
	"github.com/longkhanh1987/CS-4080-HW/pkg/lexer"
	"github.com/longkhanh1987/CS-4080-HW/pkg/parser"
)

// --- helpers ---

func parse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	stmts, diags := parser.ParseSource(src)
	if len(diags) > 0 {
		t.Fatalf("parse errors: %s", diagnostics.FormatDiagnostics(diags, false))
	}
	return stmts
}

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	tokens, _ := lexer.Tokenize(src)
	expr, diags := parser.ParseExpression(tokens)
	if len(diags) > 0 {
		t.Fatalf("parse errors: %s", diagnostics.FormatDiagnostics(diags, false))
	}
	return expr
}

// run parses and executes source, returning what it printed.
func run(t *testing.T, src string, opts ...evaluator.Option) (string, error) {
	t.Helper()
	var out bytes.Buffer
	opts = append([]evaluator.Option{evaluator.WithStdout(&out)}, opts...)
	in := evaluator.NewInterpreter(opts...)
	err := in.Interpret(parse(t, src))
	return out.String(), err
}

// mustRun is like run but also fails on runtime errors.
func mustRun(t *testing.T, src string) string {
	t.Helper()
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	return out
}

// expectRuntimeError asserts the error is a *RuntimeError with the expected
// message and line.
func expectRuntimeError(t *testing.T, err error, message string, line int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected runtime error %q, got nil", message)
	}
	var rtErr *evaluator.RuntimeError
	if !errors.As(err, &rtErr) {
		t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
	}
	if rtErr.Message != message {
		t.Errorf("message = %q, want %q", rtErr.Message, message)
	}
	if rtErr.Token.Line != line {
		t.Errorf("line = %d, want %d", rtErr.Token.Line, line)
	}
}

// --- 1. End to end ---

func TestShadowedBlockVariable(t *testing.T) {
	got := mustRun(t, "var a = 1; { var a = 2; print a; } print a;")
	if got != "2\n1\n" {
		t.Errorf("got %q, want %q", got, "2\n1\n")
	}
}

func TestPrintedValues(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"print 1;", "1"},
		{"print 2.5;", "2.5"},
		{"print 10 / 4;", "2.5"},
		{"print -3 + 1;", "-2"},
		{"print 2 * (3 + 4);", "14"},
		{"print 7 - 2 - 1;", "4"},
		{"print nil;", "nil"},
		{"print true;", "true"},
		{"print !nil;", "true"},
		{"print !0;", "false"},
		{`print "a" + "b";`, "ab"},
		{`print "n" + 1;`, "n1"},
		{`print 1.5 + "n";`, "1.5n"},
		{`print "x" + nil;`, "xnil"},
		{`print "t" + true;`, "ttrue"},
		{"print 1, 2, 3;", "3"},
		{"print 1 == 1.0;", "true"},
		{`print "a" == "a";`, "true"},
		{`print 1 == "1";`, "false"},
		{"print nil == false;", "false"},
		{"print nil != nil;", "false"},
		{"print 3 >= 3;", "true"},
		{"print 2 < 1;", "false"},
		{"print 0 ? 1 : 2;", "1"},
		{"print nil ? 1 : 2;", "2"},
		{"print true ? 1 : false ? 2 : 3;", "1"},
		{"print false ? 1 : false ? 2 : 3;", "3"},
		{`print "" and 1;`, "1"},
		{`print nil or "d";`, "d"},
		{"print false and 1;", "false"},
		{"print 1 or 2;", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := mustRun(t, tt.src)
			if got != tt.want+"\n" {
				t.Errorf("got %q, want %q", got, tt.want+"\n")
			}
		})
	}
}

// --- 2. Short-circuit evaluation ---

func TestShortCircuitSkipsUntakenOperand(t *testing.T) {
	tests := []string{
		"print false and undefined;",
		"print true or undefined;",
		"print true ? 1 : undefined;",
		"print false ? undefined : 2;",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			mustRun(t, src)
		})
	}
}

func TestTernaryEvaluatesOneBranch(t *testing.T) {
	src := `
var n = 0;
fun bump() { n = n + 1; return n; }
var r = true ? 1 : bump();
var s = false ? bump() : 2;
print n;`
	if got := mustRun(t, src); got != "0\n" {
		t.Errorf("got %q, want 0", got)
	}
}

func TestCommaEvaluatesLeftToRight(t *testing.T) {
	src := `
var log = "";
fun note(s) { log = log + s; return s; }
print (note("a"), note("b"), note("c"));
print log;`
	if got := mustRun(t, src); got != "c\nabc\n" {
		t.Errorf("got %q", got)
	}
}

// --- 3. Variables & scoping ---

func TestScoping(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"assign outer from block", "var a = 1; { a = 2; } print a;", "2\n"},
		{"nested shadowing", "var a = 1; { var a = 2; { var a = 3; print a; } print a; } print a;", "3\n2\n1\n"},
		{"global self reference", "var a = 1; var a = a + 1; print a;", "2\n"},
		{"declare then assign", "var a; a = 5; print a;", "5\n"},
		{"assignment is an expression", "var a; var b; a = b = 3; print a + b;", "6\n"},
		{"redeclare in block", "{ var a = 1; var a = 2; print a; }", "2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustRun(t, tt.src); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBlockVariableInvisibleAfterExit(t *testing.T) {
	_, err := run(t, "{ var inner = 1; }\nprint inner;")
	expectRuntimeError(t, err, "Undefined variable 'inner'.", 2)
}

func TestEnvironmentRestoredAfterFault(t *testing.T) {
	var out bytes.Buffer
	in := evaluator.NewInterpreter(evaluator.WithStdout(&out))

	err := in.Interpret(parse(t, "var a = 1; { var a = 2; print missing; }"))
	expectRuntimeError(t, err, "Undefined variable 'missing'.", 1)

	val, err := in.InterpretExpression(parseExpr(t, "a"))
	if err != nil {
		t.Fatal(err)
	}
	if !evaluator.Equal(val, evaluator.NewNumber(1)) {
		t.Errorf("a = %v after fault, want 1", val)
	}
}

func TestStatePersistsAcrossCalls(t *testing.T) {
	var out bytes.Buffer
	in := evaluator.NewInterpreter(evaluator.WithStdout(&out))
	if err := in.Interpret(parse(t, "var count = 1;")); err != nil {
		t.Fatal(err)
	}
	if err := in.Interpret(parse(t, "count = count + 1; print count;")); err != nil {
		t.Fatal(err)
	}
	if out.String() != "2\n" {
		t.Errorf("got %q", out.String())
	}
}

// --- 4. Control flow ---

func TestControlFlow(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"if else", "if (1 > 2) print 1; else print 2;", "2\n"},
		{"if without else", "if (nil) print 1; print 3;", "3\n"},
		{"while", "var i = 0; while (i < 3) { print i; i = i + 1; }", "0\n1\n2\n"},
		{"for", "for (var i = 0; i < 3; i = i + 1) print i;", "0\n1\n2\n"},
		{"for break", "for (var i = 0; i < 10; i = i + 1) { if (i == 3) break; print i; }", "0\n1\n2\n"},
		{"break inner only", `
for (var i = 0; i < 2; i = i + 1) {
  for (var j = 0; j < 5; j = j + 1) {
    if (j == 1) break;
    print i + ":" + j;
  }
}`, "0:0\n1:0\n"},
		{"break skips increment", "var i = 0; for (;; i = i + 1) { if (i == 2) break; } print i;", "2\n"},
		{"for scope ends", "var i = 10; for (var i = 0; i < 1; i = i + 1) {} print i;", "10\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustRun(t, tt.src); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// --- 5. Functions ---

func TestFunctions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"call", "fun add(a, b) { return a + b; } print add(1, 2);", "3\n"},
		{"implicit nil", "fun f() {} print f();", "nil\n"},
		{"bare return", "fun f() { return; } print f();", "nil\n"},
		{"print function", "fun f() {} print f;", "<fn f>\n"},
		{"recursion", "fun fib(n) { return n < 2 ? n : fib(n - 1) + fib(n - 2); } print fib(10);", "55\n"},
		{"return from loop", "fun f() { while (true) { return 7; } } print f();", "7\n"},
		{"return from nested block", "fun f() { { { return 1; } } print 0; } print f();", "1\n"},
		{"first class", "fun twice(f, x) { return f(f(x)); } fun inc(n) { return n + 1; } print twice(inc, 1);", "3\n"},
		{"closure counter", `
fun makeCounter() {
  var i = 0;
  fun count() { i = i + 1; return i; }
  return count;
}
var c = makeCounter();
print c();
print c();
var d = makeCounter();
print d();`, "1\n2\n1\n"},
		{"closure outlives block", `
var f;
{
  var captured = "kept";
  fun g() { return captured; }
  f = g;
}
print f();`, "kept\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustRun(t, tt.src); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// --- 6. Runtime errors ---

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		message string
		line    int
	}{
		{"negate string", `-"a";`, "Operand must be a number.", 1},
		{"compare string", `1 < "a";`, "Operands must be numbers.", 1},
		{"multiply nil", "nil * 2;", "Operands must be numbers.", 1},
		{"add bools", "true + 1;", "Operands must be two numbers or at least one string.", 1},
		{"divide by zero", "\n1 / 0;", "Division by zero.", 2},
		{"undefined read", "\n\nprint x;", "Undefined variable 'x'.", 3},
		{"undefined assign", "x = 1;", "Undefined variable 'x'.", 1},
		{"uninitialized", "var x;\nprint x;", "Variable 'x' is not initialized.", 2},
		{"local self initializer", "{ var a = a; }", "Variable 'a' is not initialized.", 1},
		{"call string", `"s"();`, "Can only call functions and classes.", 1},
		{"call nil", "nil();", "Can only call functions and classes.", 1},
		{"arity", "fun f(a) {}\nf();", "Expected 1 arguments but got 0.", 2},
		{"unbounded recursion", "fun f() { return f(); } f();", "Stack overflow.", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.src)
			expectRuntimeError(t, err, tt.message, tt.line)
		})
	}
}

func TestFaultStopsExecution(t *testing.T) {
	out, err := run(t, "print 1; print nil - 1; print 2;")
	if err == nil {
		t.Fatal("expected runtime error")
	}
	if out != "1\n" {
		t.Errorf("got %q, want only the output before the fault", out)
	}
}

func TestCallDepthBudget(t *testing.T) {
	src := "fun down(n) { return n == 0 ? 0 : down(n - 1); } print down(%d);"
	budget := evaluator.WithBudget(evaluator.Budget{MaxCallDepth: 10})

	out, err := run(t, fmt.Sprintf(src, 5), budget)
	if err != nil || out != "0\n" {
		t.Fatalf("shallow recursion failed: %q, %v", out, err)
	}

	_, err = run(t, fmt.Sprintf(src, 20), budget)
	expectRuntimeError(t, err, "Stack overflow.", 1)
}

func TestTrackerCountsCalls(t *testing.T) {
	var out bytes.Buffer
	in := evaluator.NewInterpreter(evaluator.WithStdout(&out))
	if err := in.Interpret(parse(t, "fun f() {} f(); f(); f();")); err != nil {
		t.Fatal(err)
	}
	tr := in.Tracker()
	if tr.Calls != 3 || tr.CallDepth != 0 {
		t.Errorf("tracker = %+v", tr)
	}
}

// --- 7. Expressions ---

func TestInterpretExpression(t *testing.T) {
	in := evaluator.NewInterpreter()
	val, err := in.InterpretExpression(parseExpr(t, "1, 2, 3"))
	if err != nil {
		t.Fatal(err)
	}
	if !evaluator.Equal(val, evaluator.NewNumber(3)) {
		t.Errorf("got %v, want 3", val)
	}
}

func TestPureExpressionIdempotent(t *testing.T) {
	in := evaluator.NewInterpreter(evaluator.WithGlobals(func(env *evaluator.Environment) {
		env.Define("x", evaluator.NewNumber(4))
	}))
	expr := parseExpr(t, `(x + 2 * 3 - 4 / 2) + " apples"`)

	first, err := in.InterpretExpression(expr)
	if err != nil {
		t.Fatal(err)
	}
	second, err := in.InterpretExpression(expr)
	if err != nil {
		t.Fatal(err)
	}
	if !evaluator.Equal(first, second) {
		t.Errorf("%v != %v", first, second)
	}
	if evaluator.Stringify(first) != "8 apples" {
		t.Errorf("got %q", evaluator.Stringify(first))
	}
}

func TestRuntimeErrorDiagnostic(t *testing.T) {
	_, err := run(t, "\nprint -nil;")
	var rtErr *evaluator.RuntimeError
	if !errors.As(err, &rtErr) {
		t.Fatalf("expected *RuntimeError, got %v", err)
	}
	got := diagnostics.FormatDiagnostic(rtErr.Diagnostic(), false)
	if got != "Operand must be a number.\n[line 2]" {
		t.Errorf("got %q", got)
	}
}
