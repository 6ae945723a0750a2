// Package runtime provides the top-level Lox runtime orchestrator. It wires
// the lexer, parser, validator and interpreter together and reports
// diagnostics through a shared sink.
package runtime

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/longkhanh1987/CS-4080-HW/pkg/ast"
	"github.com/longkhanh1987/CS-4080-HW/pkg/diagnostics"
	"github.com/longkhanh1987/CS-4080-HW/pkg/evaluator"
	"github.com/longkhanh1987/CS-4080-HW/pkg/formatter"
	"github.com/longkhanh1987/CS-4080-HW/pkg/lexer"
	"github.com/longkhanh1987/CS-4080-HW/pkg/parser"
	"github.com/longkhanh1987/CS-4080-HW/pkg/stdlib"
	"github.com/longkhanh1987/CS-4080-HW/pkg/validator"
)

// Status is the outcome of running a program or chunk.
type Status int

const (
	StatusOK Status = iota
	StatusSyntaxError
	StatusRuntimeError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusSyntaxError:
		return "syntax error"
	case StatusRuntimeError:
		return "runtime error"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Runtime wires together all Lox components for program execution.
type Runtime struct {
	stdout io.Writer
	stderr io.Writer
	color  bool
	logger *log.Logger
	stdlib *stdlib.Registry
	budget evaluator.Budget

	sink   *diagnostics.Sink
	interp *evaluator.Interpreter
}

// Option is a functional option for configuring the Runtime.
type Option func(*Runtime)

// WithStdout sets where program output goes.
func WithStdout(w io.Writer) Option {
	return func(rt *Runtime) {
		rt.stdout = w
	}
}

// WithStderr sets where diagnostics go.
func WithStderr(w io.Writer) Option {
	return func(rt *Runtime) {
		rt.stderr = w
	}
}

// WithColor enables colored diagnostics.
func WithColor(enabled bool) Option {
	return func(rt *Runtime) {
		rt.color = enabled
	}
}

// WithLogger sets the logger for phase tracing.
func WithLogger(l *log.Logger) Option {
	return func(rt *Runtime) {
		rt.logger = l
	}
}

// WithStdlib sets the native function registry.
func WithStdlib(r *stdlib.Registry) Option {
	return func(rt *Runtime) {
		rt.stdlib = r
	}
}

// WithBudget sets the interpreter's resource limits.
func WithBudget(b evaluator.Budget) Option {
	return func(rt *Runtime) {
		rt.budget = b
	}
}

// New creates a new Runtime with the given options.
// By default the native defaults are registered, output goes to the
// process's stdout and stderr, and logging is discarded.
func New(opts ...Option) *Runtime {
	rt := &Runtime{
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: log.New(io.Discard, "", 0),
		stdlib: stdlib.Defaults(),
	}
	for _, opt := range opts {
		opt(rt)
	}

	rt.sink = diagnostics.NewSink(rt.stderr, rt.color)
	rt.interp = evaluator.NewInterpreter(
		evaluator.WithStdout(rt.stdout),
		evaluator.WithGlobals(rt.stdlib.Install),
		evaluator.WithBudget(rt.budget),
	)
	return rt
}

// HadError reports whether the last run reported a syntax error.
func (rt *Runtime) HadError() bool {
	return rt.sink.HadError()
}

// HadRuntimeError reports whether the last run reported a runtime error.
func (rt *Runtime) HadRuntimeError() bool {
	return rt.sink.HadRuntimeError()
}

// RunFile parses, validates and executes a whole program. Nothing runs if
// any syntax error is found.
func (rt *Runtime) RunFile(source string) Status {
	rt.sink.Reset()

	tokens, lexDiags := rt.lex(source)
	stmts, ok := rt.compile(tokens, lexDiags)
	if !ok {
		return StatusSyntaxError
	}
	return rt.execute(stmts)
}

// RunChunk runs one interactive input chunk against the persistent
// interpreter state. A chunk that is a bare expression has its value
// printed; anything else runs as statements.
func (rt *Runtime) RunChunk(source string) Status {
	rt.sink.Reset()

	tokens, lexDiags := rt.lex(source)
	if len(lexDiags) == 0 && !startsStatement(tokens) {
		expr, diags := parser.ParseExpression(tokens)
		if expr != nil && len(diags) > 0 {
			// The whole chunk is an expression; its diagnostics came from
			// error productions and re-parsing would only add cascades.
			rt.sink.ReportAll(diags)
			return StatusSyntaxError
		}
		if expr != nil {
			rt.logger.Printf("chunk: expression")
			val, err := rt.interp.InterpretExpression(expr)
			if err != nil {
				rt.reportRuntime(err)
				return StatusRuntimeError
			}
			fmt.Fprintln(rt.stdout, evaluator.Stringify(val))
			return StatusOK
		}
	}

	stmts, ok := rt.compile(tokens, lexDiags)
	if !ok {
		return StatusSyntaxError
	}
	return rt.execute(stmts)
}

// Check parses and validates a program without executing it.
func (rt *Runtime) Check(source string) []diagnostics.Diagnostic {
	stmts, diags := parser.ParseSource(source)
	if len(diags) > 0 {
		return diags
	}
	return validator.Validate(stmts)
}

// Format parses and formats a program.
func (rt *Runtime) Format(source string) (string, error) {
	stmts, diags := parser.ParseSource(source)
	if len(diags) > 0 {
		return "", &DiagnosticError{Diagnostics: diags}
	}
	return formatter.Format(stmts), nil
}

// PrintAST renders each top-level statement on its own line. With rpn set,
// only statements carrying an expression are printed, in reverse Polish
// notation.
func (rt *Runtime) PrintAST(source string, rpn bool) (string, error) {
	stmts, diags := parser.ParseSource(source)
	if len(diags) > 0 {
		return "", &DiagnosticError{Diagnostics: diags}
	}

	var lines []string
	for _, stmt := range stmts {
		if !rpn {
			lines = append(lines, formatter.ParenthesizeStmt(stmt))
			continue
		}
		switch s := stmt.(type) {
		case *ast.ExpressionStmt:
			lines = append(lines, formatter.RPN(s.Expression))
		case *ast.PrintStmt:
			lines = append(lines, formatter.RPN(s.Expression))
		}
	}
	if len(lines) == 0 {
		return "", nil
	}
	return strings.Join(lines, "\n") + "\n", nil
}

// Report writes diagnostics to the runtime's sink.
func (rt *Runtime) Report(diags []diagnostics.Diagnostic) {
	rt.sink.ReportAll(diags)
}

func (rt *Runtime) lex(source string) ([]lexer.Token, []diagnostics.Diagnostic) {
	start := time.Now()
	tokens, diags := lexer.Tokenize(source)
	rt.logger.Printf("lex: %d tokens, %d diagnostics in %s", len(tokens), len(diags), time.Since(start))
	return tokens, diags
}

// compile parses and validates tokens, reporting every diagnostic. Lexical
// diagnostics from the same source are reported first.
func (rt *Runtime) compile(tokens []lexer.Token, lexDiags []diagnostics.Diagnostic) ([]ast.Stmt, bool) {
	start := time.Now()
	stmts, diags := parser.Parse(tokens)
	diags = append(lexDiags, diags...)
	if len(diags) == 0 {
		diags = validator.Validate(stmts)
	}
	rt.logger.Printf("parse: %d statements, %d diagnostics in %s", len(stmts), len(diags), time.Since(start))

	rt.sink.ReportAll(diags)
	return stmts, !rt.sink.HadError()
}

func (rt *Runtime) execute(stmts []ast.Stmt) Status {
	start := time.Now()
	err := rt.interp.Interpret(stmts)
	rt.logger.Printf("run: %d calls in %s", rt.interp.Tracker().Calls, time.Since(start))
	if err != nil {
		rt.reportRuntime(err)
		return StatusRuntimeError
	}
	return StatusOK
}

func (rt *Runtime) reportRuntime(err error) {
	var rtErr *evaluator.RuntimeError
	if errors.As(err, &rtErr) {
		rt.sink.Report(rtErr.Diagnostic())
		return
	}
	rt.sink.RuntimeError(err.Error(), 0)
}

// startsStatement reports whether the first token can only begin a
// statement, so expression parsing need not be attempted.
func startsStatement(tokens []lexer.Token) bool {
	if len(tokens) == 0 {
		return false
	}
	switch tokens[0].Type {
	case lexer.TokVar, lexer.TokFun, lexer.TokPrint, lexer.TokLeftBrace,
		lexer.TokIf, lexer.TokWhile, lexer.TokFor, lexer.TokBreak, lexer.TokReturn:
		return true
	}
	return false
}

// DiagnosticError wraps diagnostics as an error.
type DiagnosticError struct {
	Diagnostics []diagnostics.Diagnostic
}

func (e *DiagnosticError) Error() string {
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = diagnostics.FormatDiagnostic(d, false)
	}
	return strings.Join(msgs, "; ")
}
