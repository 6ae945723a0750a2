package validator_test

import (
	"strings"
	"testing"

	"github.com/longkhanh1987/CS-4080-HW/pkg/diagnostics"
	"github.com/longkhanh1987/CS-4080-HW/pkg/parser"
	"github.com/longkhanh1987/CS-4080-HW/pkg/validator"
)

// helper parses source and validates, returning diagnostics from validation only.
// It fatals on parse errors so test cases focus on validator behavior.
func mustParseAndValidate(t *testing.T, source string) []diagnostics.Diagnostic {
	t.Helper()
	stmts, parseErrs := parser.ParseSource(source)
	if len(parseErrs) > 0 {
		t.Fatalf("unexpected parse error: %s", parseErrs[0].Message)
	}
	return validator.Validate(stmts)
}

// assertNoDiags asserts zero diagnostics were produced.
func assertNoDiags(t *testing.T, diags []diagnostics.Diagnostic) {
	t.Helper()
	if len(diags) != 0 {
		var msgs []string
		for _, d := range diags {
			msgs = append(msgs, diagnostics.FormatDiagnostic(d, false))
		}
		t.Errorf("expected no diagnostics, got %d:\n  %s", len(diags), strings.Join(msgs, "\n  "))
	}
}

func TestValidPrograms(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"empty", ""},
		{"globals", "var a = 1; var b = a; print b;"},
		{"global self reference", "var a = 1; var a = a + 1;"},
		{"shadowing", "var a = 1; { var a = 2; print a; }"},
		{"outer read in initializer", "var a = 1; { var b = a; }"},
		{"break in while", "while (true) break;"},
		{"break in for", "for (;;) { if (true) break; }"},
		{"break in nested block", "while (true) { { break; } }"},
		{"return in function", "fun f() { return 1; }"},
		{"bare return", "fun f() { return; }"},
		{"return in nested function", "fun f() { fun g() { return; } return g; }"},
		{"recursion", "{ fun fib(n) { return n < 2 ? n : fib(n - 1) + fib(n - 2); } }"},
		{"loop inside function", "fun f() { while (true) { break; } }"},
		{"parameter use", "fun f(a) { var b = a; return b; }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertNoDiags(t, mustParseAndValidate(t, tt.source))
		})
	}
}

func TestInvalidPrograms(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			"break at top level",
			"break;",
			"[line 1] Error at 'break': Can't use 'break' outside of a loop.",
		},
		{
			"break in if",
			"if (true) { break; }",
			"[line 1] Error at 'break': Can't use 'break' outside of a loop.",
		},
		{
			"break in function inside loop",
			"while (true) { fun f() { break; } }",
			"[line 1] Error at 'break': Can't use 'break' outside of a loop.",
		},
		{
			"top-level return",
			"return 1;",
			"[line 1] Error at 'return': Can't return from top-level code.",
		},
		{
			"return in top-level block",
			"{\n  return;\n}",
			"[line 2] Error at 'return': Can't return from top-level code.",
		},
		{
			"local self initializer",
			"{ var a = a; }",
			"[line 1] Error at 'a': Can't read local variable in its own initializer.",
		},
		{
			"local self initializer in expression",
			"var a = 1; { var a = a + 1; }",
			"[line 1] Error at 'a': Can't read local variable in its own initializer.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := mustParseAndValidate(t, tt.source)
			if len(diags) != 1 {
				t.Fatalf("expected 1 diagnostic, got %v", diags)
			}
			if diags[0].Code != diagnostics.EStatic {
				t.Errorf("expected code %s, got %s", diagnostics.EStatic, diags[0].Code)
			}
			if got := diagnostics.FormatDiagnostic(diags[0], false); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCollectsAllDiagnostics(t *testing.T) {
	diags := mustParseAndValidate(t, "break;\nreturn;\n{ var x = x; }")
	if len(diags) != 3 {
		t.Fatalf("expected 3 diagnostics, got %v", diags)
	}
	for i, d := range diags {
		if d.Line != i+1 {
			t.Errorf("diagnostic %d on line %d", i, d.Line)
		}
		if !d.IsSyntax() {
			t.Errorf("diagnostic %d should count as a syntax error", i)
		}
	}
}
