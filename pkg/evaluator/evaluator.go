package evaluator

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/longkhanh1987/CS-4080-HW/pkg/ast"
	"github.com/longkhanh1987/CS-4080-HW/pkg/lexer"
)

// completionKind says how a statement finished.
type completionKind int

const (
	completionNormal completionKind = iota
	completionBreak
	completionReturn
)

// completion is the control-flow result of executing a statement. value is
// set only for completionReturn.
type completion struct {
	kind  completionKind
	value Value
}

var normal = completion{kind: completionNormal}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithStdout sets the writer print statements write to.
func WithStdout(w io.Writer) Option {
	return func(in *Interpreter) {
		in.stdout = w
	}
}

// WithGlobals runs fn against the global environment before any code runs.
func WithGlobals(fn func(*Environment)) Option {
	return func(in *Interpreter) {
		fn(in.globals)
	}
}

// WithBudget sets the interpreter's resource limits.
func WithBudget(b Budget) Option {
	return func(in *Interpreter) {
		in.budget = b
	}
}

// Interpreter executes Lox statements. Its global environment persists
// across calls, so an interactive session can build on earlier input.
type Interpreter struct {
	stdout  io.Writer
	globals *Environment
	env     *Environment
	budget  Budget
	tracker BudgetTracker
}

// NewInterpreter creates an interpreter with an empty global scope.
func NewInterpreter(opts ...Option) *Interpreter {
	globals := NewEnvironment(nil)
	in := &Interpreter{
		stdout:  os.Stdout,
		globals: globals,
		env:     globals,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Tracker returns a snapshot of resource usage.
func (in *Interpreter) Tracker() BudgetTracker {
	return in.tracker
}

// Interpret executes stmts in order against the current environment. The
// first runtime fault stops execution and is returned as a *RuntimeError.
// Statements that already ran keep their effects.
func (in *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		c, err := in.execute(stmt)
		if err != nil {
			return err
		}
		if c.kind != completionNormal {
			// A stray break or return at top level ends the program.
			return nil
		}
	}
	return nil
}

// InterpretExpression evaluates a single expression against the current
// environment.
func (in *Interpreter) InterpretExpression(expr ast.Expr) (Value, error) {
	return in.evaluate(expr)
}

// --- Statements ---

func (in *Interpreter) execute(stmt ast.Stmt) (completion, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := in.evaluate(s.Expression)
		return normal, err

	case *ast.PrintStmt:
		val, err := in.evaluate(s.Expression)
		if err != nil {
			return normal, err
		}
		fmt.Fprintln(in.stdout, Stringify(val))
		return normal, nil

	case *ast.VarStmt:
		return normal, in.executeVar(s)

	case *ast.BlockStmt:
		return in.executeBlock(s.Statements, in.env.Child())

	case *ast.IfStmt:
		cond, err := in.evaluate(s.Condition)
		if err != nil {
			return normal, err
		}
		if Truthiness(cond) {
			return in.execute(s.ThenBranch)
		}
		if s.ElseBranch != nil {
			return in.execute(s.ElseBranch)
		}
		return normal, nil

	case *ast.WhileStmt:
		return in.executeWhile(s)

	case *ast.BreakStmt:
		return completion{kind: completionBreak}, nil

	case *ast.ReturnStmt:
		var val Value = NewNil()
		if s.Value != nil {
			var err error
			if val, err = in.evaluate(s.Value); err != nil {
				return normal, err
			}
		}
		return completion{kind: completionReturn, value: val}, nil

	case *ast.FunctionStmt:
		in.env.Define(s.Name.Lexeme, &Function{decl: s, closure: in.env})
		return normal, nil
	}

	return normal, fmt.Errorf("unsupported statement type: %T", stmt)
}

// executeVar binds the name before evaluating a local initializer, so a
// local reading itself in its initializer sees an uninitialized binding.
// Globals are bound only after the initializer runs.
func (in *Interpreter) executeVar(s *ast.VarStmt) error {
	name := s.Name.Lexeme
	if s.Initializer == nil {
		in.env.DefineUninitialized(name)
		return nil
	}

	if in.env != in.globals {
		in.env.DefineUninitialized(name)
	}
	val, err := in.evaluate(s.Initializer)
	if err != nil {
		return err
	}
	in.env.Define(name, val)
	return nil
}

// executeBlock runs stmts with env as the current environment. The previous
// environment is restored however the block exits.
func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) (completion, error) {
	previous := in.env
	in.env = env
	defer func() {
		in.env = previous
	}()

	for _, stmt := range stmts {
		c, err := in.execute(stmt)
		if err != nil || c.kind != completionNormal {
			return c, err
		}
	}
	return normal, nil
}

func (in *Interpreter) executeWhile(s *ast.WhileStmt) (completion, error) {
	for {
		cond, err := in.evaluate(s.Condition)
		if err != nil {
			return normal, err
		}
		if !Truthiness(cond) {
			return normal, nil
		}

		c, err := in.execute(s.Body)
		if err != nil {
			return normal, err
		}
		switch c.kind {
		case completionBreak:
			return normal, nil
		case completionReturn:
			return c, nil
		}
	}
}

// --- Expressions ---

func (in *Interpreter) evaluate(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return FromLiteral(e.Value), nil

	case *ast.Grouping:
		return in.evaluate(e.Expression)

	case *ast.Unary:
		return in.evalUnary(e)

	case *ast.Binary:
		return in.evalBinary(e)

	case *ast.Logical:
		left, err := in.evaluate(e.Left)
		if err != nil {
			return nil, err
		}
		if e.Operator.Type == lexer.TokOr {
			if Truthiness(left) {
				return left, nil
			}
		} else if !Truthiness(left) {
			return left, nil
		}
		return in.evaluate(e.Right)

	case *ast.Ternary:
		cond, err := in.evaluate(e.Condition)
		if err != nil {
			return nil, err
		}
		if Truthiness(cond) {
			return in.evaluate(e.ThenBranch)
		}
		return in.evaluate(e.ElseBranch)

	case *ast.Variable:
		return in.env.Get(e.Name)

	case *ast.Assign:
		val, err := in.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if err := in.env.Assign(e.Name, val); err != nil {
			return nil, err
		}
		return val, nil

	case *ast.Call:
		return in.evalCall(e)
	}

	return nil, fmt.Errorf("unsupported expression type: %T", expr)
}

func (in *Interpreter) evalUnary(e *ast.Unary) (Value, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case lexer.TokBang:
		return NewBool(!Truthiness(right)), nil
	case lexer.TokMinus:
		n, ok := right.(Number)
		if !ok {
			return nil, &RuntimeError{Token: e.Operator, Message: "Operand must be a number."}
		}
		return NewNumber(-n.Value), nil
	}
	return nil, &RuntimeError{Token: e.Operator, Message: "Unknown unary operator."}
}

func (in *Interpreter) evalBinary(e *ast.Binary) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	op := e.Operator
	switch op.Type {
	case lexer.TokComma:
		return right, nil
	case lexer.TokEqualEqual:
		return NewBool(Equal(left, right)), nil
	case lexer.TokBangEqual:
		return NewBool(!Equal(left, right)), nil
	case lexer.TokPlus:
		return add(op, left, right)
	}

	l, r, err := numberOperands(op, left, right)
	if err != nil {
		return nil, err
	}

	switch op.Type {
	case lexer.TokMinus:
		return NewNumber(l - r), nil
	case lexer.TokStar:
		return NewNumber(l * r), nil
	case lexer.TokSlash:
		if r == 0 {
			return nil, &RuntimeError{Token: op, Message: "Division by zero."}
		}
		return NewNumber(l / r), nil
	case lexer.TokGreater:
		return NewBool(l > r), nil
	case lexer.TokGreaterEqual:
		return NewBool(l >= r), nil
	case lexer.TokLess:
		return NewBool(l < r), nil
	case lexer.TokLessEqual:
		return NewBool(l <= r), nil
	}
	return nil, &RuntimeError{Token: op, Message: "Unknown binary operator."}
}

// add sums two numbers or concatenates when either side is a string.
func add(op lexer.Token, left, right Value) (Value, error) {
	if l, ok := left.(Number); ok {
		if r, ok := right.(Number); ok {
			return NewNumber(l.Value + r.Value), nil
		}
	}
	_, leftStr := left.(String)
	_, rightStr := right.(String)
	if leftStr || rightStr {
		return NewString(Stringify(left) + Stringify(right)), nil
	}
	return nil, &RuntimeError{Token: op, Message: "Operands must be two numbers or at least one string."}
}

func numberOperands(op lexer.Token, left, right Value) (float64, float64, error) {
	l, lok := left.(Number)
	r, rok := right.(Number)
	if !lok || !rok {
		return 0, 0, &RuntimeError{Token: op, Message: "Operands must be numbers."}
	}
	return l.Value, r.Value, nil
}

func (in *Interpreter) evalCall(e *ast.Call) (Value, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, 0, len(e.Arguments))
	for _, arg := range e.Arguments {
		val, err := in.evaluate(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, &RuntimeError{Token: e.Paren, Message: "Can only call functions and classes."}
	}
	if len(args) != fn.Arity() {
		return nil, &RuntimeError{
			Token:   e.Paren,
			Message: fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args)),
		}
	}

	if in.tracker.CallDepth >= in.budget.maxCallDepth() {
		return nil, &RuntimeError{Token: e.Paren, Message: "Stack overflow."}
	}
	in.tracker.CallDepth++
	in.tracker.Calls++
	defer func() {
		in.tracker.CallDepth--
	}()

	result, err := fn.Call(in, args)
	if err != nil {
		var rtErr *RuntimeError
		if errors.As(err, &rtErr) {
			return nil, err
		}
		return nil, &RuntimeError{Token: e.Paren, Message: err.Error()}
	}
	return result, nil
}
