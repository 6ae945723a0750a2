package formatter

import (
	"strconv"
	"strings"

	"github.com/longkhanh1987/CS-4080-HW/pkg/ast"
)

// Parenthesize renders expr in fully parenthesized prefix form, e.g.
// "(+ 1 (* 2 3))". Ternaries print as "(?: c a b)" and the comma operator
// as "(, a b)".
func Parenthesize(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalText(e.Value)
	case *ast.Grouping:
		return paren("group", e.Expression)
	case *ast.Unary:
		return paren(e.Operator.Lexeme, e.Right)
	case *ast.Binary:
		return paren(e.Operator.Lexeme, e.Left, e.Right)
	case *ast.Logical:
		return paren(e.Operator.Lexeme, e.Left, e.Right)
	case *ast.Ternary:
		return paren("?:", e.Condition, e.ThenBranch, e.ElseBranch)
	case *ast.Variable:
		return e.Name.Lexeme
	case *ast.Assign:
		return paren("= "+e.Name.Lexeme, e.Value)
	case *ast.Call:
		return paren("call "+Parenthesize(e.Callee), e.Arguments...)
	}
	return ""
}

func paren(name string, exprs ...ast.Expr) string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteString(" ")
		b.WriteString(Parenthesize(e))
	}
	b.WriteString(")")
	return b.String()
}

// RPN renders expr in reverse Polish notation: operands first, then the
// operator lexeme, separated by single spaces. Groupings vanish.
func RPN(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalText(e.Value)
	case *ast.Grouping:
		return RPN(e.Expression)
	case *ast.Unary:
		return join(RPN(e.Right), e.Operator.Lexeme)
	case *ast.Binary:
		return join(RPN(e.Left), RPN(e.Right), e.Operator.Lexeme)
	case *ast.Logical:
		return join(RPN(e.Left), RPN(e.Right), e.Operator.Lexeme)
	case *ast.Ternary:
		return join(RPN(e.Condition), RPN(e.ThenBranch), RPN(e.ElseBranch), "?:")
	case *ast.Variable:
		return e.Name.Lexeme
	case *ast.Assign:
		return join(RPN(e.Value), e.Name.Lexeme, "=")
	case *ast.Call:
		parts := []string{RPN(e.Callee)}
		for _, arg := range e.Arguments {
			parts = append(parts, RPN(arg))
		}
		parts = append(parts, "call/"+strconv.Itoa(len(e.Arguments)))
		return join(parts...)
	}
	return ""
}

func join(parts ...string) string {
	return strings.Join(parts, " ")
}

// literalText prints numbers without a trailing ".0" when integral.
func literalText(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return val
	}
	return ""
}

// ParenthesizeStmt renders a statement in the same prefix form, e.g.
// "(var a (+ 1 2))" or "(while (< i 3) (block (print i)))".
func ParenthesizeStmt(stmt ast.Stmt) string {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		return paren(";", s.Expression)
	case *ast.PrintStmt:
		return paren("print", s.Expression)
	case *ast.VarStmt:
		if s.Initializer == nil {
			return "(var " + s.Name.Lexeme + ")"
		}
		return paren("var "+s.Name.Lexeme, s.Initializer)
	case *ast.BlockStmt:
		return stmtList("(block", s.Statements)
	case *ast.IfStmt:
		out := "(if " + Parenthesize(s.Condition) + " " + ParenthesizeStmt(s.ThenBranch)
		if s.ElseBranch != nil {
			out += " " + ParenthesizeStmt(s.ElseBranch)
		}
		return out + ")"
	case *ast.WhileStmt:
		return "(while " + Parenthesize(s.Condition) + " " + ParenthesizeStmt(s.Body) + ")"
	case *ast.BreakStmt:
		return "(break)"
	case *ast.ReturnStmt:
		if s.Value == nil {
			return "(return)"
		}
		return paren("return", s.Value)
	case *ast.FunctionStmt:
		params := make([]string, len(s.Params))
		for i, p := range s.Params {
			params[i] = p.Lexeme
		}
		return stmtList("(fun "+s.Name.Lexeme+"("+strings.Join(params, " ")+")", s.Body)
	}
	return ""
}

func stmtList(head string, stmts []ast.Stmt) string {
	var b strings.Builder
	b.WriteString(head)
	for _, s := range stmts {
		b.WriteString(" ")
		b.WriteString(ParenthesizeStmt(s))
	}
	b.WriteString(")")
	return b.String()
}
