// Package validator implements static checks over a parsed Lox program:
// control-flow statements in the wrong place and locals read inside their
// own initializer.
package validator

import (
	"github.com/longkhanh1987/CS-4080-HW/pkg/ast"
	"github.com/longkhanh1987/CS-4080-HW/pkg/diagnostics"
	"github.com/longkhanh1987/CS-4080-HW/pkg/lexer"
)

// scope tracks the locals of one block or function body. A name maps to
// false while its initializer is being checked and true once defined.
type scope struct {
	bindings map[string]bool
	parent   *scope
}

func newScope(parent *scope) *scope {
	return &scope{bindings: make(map[string]bool), parent: parent}
}

func (s *scope) declare(name string) {
	s.bindings[name] = false
}

func (s *scope) define(name string) {
	s.bindings[name] = true
}

// declaredOnly reports whether name is bound in this scope but not yet
// defined.
func (s *scope) declaredOnly(name string) bool {
	ready, ok := s.bindings[name]
	return ok && !ready
}

type validator struct {
	diags []diagnostics.Diagnostic
	// scope is nil at global level.
	scope     *scope
	loopDepth int
	funcDepth int
}

// Validate performs static analysis on a Lox program and returns diagnostics.
func Validate(stmts []ast.Stmt) []diagnostics.Diagnostic {
	v := &validator{}
	v.validateStatements(stmts)
	return v.diags
}

func (v *validator) addDiag(tok lexer.Token, msg string) {
	where := diagnostics.AtLexeme(tok.Lexeme)
	if tok.Type == lexer.TokEOF {
		where = diagnostics.AtEnd
	}
	v.diags = append(v.diags, diagnostics.MakeDiag(diagnostics.EStatic, msg, tok.Line, where))
}

func (v *validator) beginScope() {
	v.scope = newScope(v.scope)
}

func (v *validator) endScope() {
	v.scope = v.scope.parent
}

func (v *validator) validateStatements(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		v.validateStmt(stmt)
	}
}

func (v *validator) validateStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		v.validateExpr(s.Expression)

	case *ast.PrintStmt:
		v.validateExpr(s.Expression)

	case *ast.VarStmt:
		if v.scope != nil {
			v.scope.declare(s.Name.Lexeme)
		}
		if s.Initializer != nil {
			v.validateExpr(s.Initializer)
		}
		if v.scope != nil {
			v.scope.define(s.Name.Lexeme)
		}

	case *ast.BlockStmt:
		v.beginScope()
		v.validateStatements(s.Statements)
		v.endScope()

	case *ast.IfStmt:
		v.validateExpr(s.Condition)
		v.validateStmt(s.ThenBranch)
		if s.ElseBranch != nil {
			v.validateStmt(s.ElseBranch)
		}

	case *ast.WhileStmt:
		v.validateExpr(s.Condition)
		v.loopDepth++
		v.validateStmt(s.Body)
		v.loopDepth--

	case *ast.BreakStmt:
		if v.loopDepth == 0 {
			v.addDiag(s.Keyword, "Can't use 'break' outside of a loop.")
		}

	case *ast.ReturnStmt:
		if v.funcDepth == 0 {
			v.addDiag(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			v.validateExpr(s.Value)
		}

	case *ast.FunctionStmt:
		// The name is usable inside the body for recursion.
		if v.scope != nil {
			v.scope.define(s.Name.Lexeme)
		}
		v.validateFunction(s)
	}
}

func (v *validator) validateFunction(fn *ast.FunctionStmt) {
	// A break inside the body never targets a loop around the declaration.
	enclosingLoops := v.loopDepth
	v.loopDepth = 0
	v.funcDepth++

	v.beginScope()
	for _, param := range fn.Params {
		v.scope.define(param.Lexeme)
	}
	v.validateStatements(fn.Body)
	v.endScope()

	v.funcDepth--
	v.loopDepth = enclosingLoops
}

func (v *validator) validateExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Literal:
	case *ast.Grouping:
		v.validateExpr(e.Expression)
	case *ast.Unary:
		v.validateExpr(e.Right)
	case *ast.Binary:
		v.validateExpr(e.Left)
		v.validateExpr(e.Right)
	case *ast.Logical:
		v.validateExpr(e.Left)
		v.validateExpr(e.Right)
	case *ast.Ternary:
		v.validateExpr(e.Condition)
		v.validateExpr(e.ThenBranch)
		v.validateExpr(e.ElseBranch)
	case *ast.Variable:
		if v.scope != nil && v.scope.declaredOnly(e.Name.Lexeme) {
			v.addDiag(e.Name, "Can't read local variable in its own initializer.")
		}
	case *ast.Assign:
		v.validateExpr(e.Value)
	case *ast.Call:
		v.validateExpr(e.Callee)
		for _, arg := range e.Arguments {
			v.validateExpr(arg)
		}
	}
}
