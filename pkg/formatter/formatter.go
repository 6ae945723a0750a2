// Package formatter prints Lox syntax trees: a canonical source formatter
// plus the parenthesized and reverse Polish expression printers.
package formatter

import (
	"strings"

	"github.com/longkhanh1987/CS-4080-HW/pkg/ast"
	"github.com/longkhanh1987/CS-4080-HW/pkg/lexer"
)

const indent = "  "

// Precedence levels (higher = tighter binding).
const (
	precComma = iota + 1
	precAssignment
	precConditional
	precOr
	precAnd
	precEquality
	precComparison
	precTerm
	precFactor
	precUnary
	precCall
	precPrimary
)

var binaryPrecedence = map[lexer.TokenType]int{
	lexer.TokComma:        precComma,
	lexer.TokOr:           precOr,
	lexer.TokAnd:          precAnd,
	lexer.TokEqualEqual:   precEquality,
	lexer.TokBangEqual:    precEquality,
	lexer.TokGreater:      precComparison,
	lexer.TokGreaterEqual: precComparison,
	lexer.TokLess:         precComparison,
	lexer.TokLessEqual:    precComparison,
	lexer.TokPlus:         precTerm,
	lexer.TokMinus:        precTerm,
	lexer.TokStar:         precFactor,
	lexer.TokSlash:        precFactor,
}

// Format pretty-prints a Lox program back to source code. Groupings are
// dropped and parentheses re-inserted only where precedence requires them.
// For loops come back in their desugared while form.
func Format(stmts []ast.Stmt) string {
	if len(stmts) == 0 {
		return ""
	}
	lines := make([]string, len(stmts))
	for i, s := range stmts {
		lines[i] = formatStmt(s, 0)
	}
	return strings.Join(lines, "\n") + "\n"
}

// FormatExpr renders a single expression in canonical source form.
func FormatExpr(expr ast.Expr) string {
	text, _ := formatExpr(expr)
	return text
}

func formatStmt(s ast.Stmt, depth int) string {
	prefix := strings.Repeat(indent, depth)
	switch stmt := s.(type) {
	case *ast.ExpressionStmt:
		return prefix + FormatExpr(stmt.Expression) + ";"
	case *ast.PrintStmt:
		return prefix + "print " + FormatExpr(stmt.Expression) + ";"
	case *ast.VarStmt:
		if stmt.Initializer == nil {
			return prefix + "var " + stmt.Name.Lexeme + ";"
		}
		return prefix + "var " + stmt.Name.Lexeme + " = " + FormatExpr(stmt.Initializer) + ";"
	case *ast.BlockStmt:
		return prefix + formatBlock(stmt.Statements, depth)
	case *ast.IfStmt:
		out := prefix + "if (" + FormatExpr(stmt.Condition) + ")" + formatBody(stmt.ThenBranch, depth)
		if stmt.ElseBranch != nil {
			if _, isBlock := stmt.ThenBranch.(*ast.BlockStmt); isBlock {
				out += " else"
			} else {
				out += "\n" + prefix + "else"
			}
			out += formatBody(stmt.ElseBranch, depth)
		}
		return out
	case *ast.WhileStmt:
		return prefix + "while (" + FormatExpr(stmt.Condition) + ")" + formatBody(stmt.Body, depth)
	case *ast.BreakStmt:
		return prefix + "break;"
	case *ast.ReturnStmt:
		if stmt.Value == nil {
			return prefix + "return;"
		}
		return prefix + "return " + FormatExpr(stmt.Value) + ";"
	case *ast.FunctionStmt:
		params := make([]string, len(stmt.Params))
		for i, p := range stmt.Params {
			params[i] = p.Lexeme
		}
		return prefix + "fun " + stmt.Name.Lexeme + "(" + strings.Join(params, ", ") + ") " +
			formatBlock(stmt.Body, depth)
	}
	return ""
}

// formatBody keeps a block body on the header line and indents any other
// statement on the next one.
func formatBody(s ast.Stmt, depth int) string {
	if block, ok := s.(*ast.BlockStmt); ok {
		return " " + formatBlock(block.Statements, depth)
	}
	return "\n" + formatStmt(s, depth+1)
}

func formatBlock(stmts []ast.Stmt, depth int) string {
	if len(stmts) == 0 {
		return "{}"
	}
	lines := make([]string, len(stmts))
	for i, s := range stmts {
		lines[i] = formatStmt(s, depth+1)
	}
	return "{\n" + strings.Join(lines, "\n") + "\n" + strings.Repeat(indent, depth) + "}"
}

// formatExpr returns the rendered expression and the precedence of its
// outermost operator.
func formatExpr(e ast.Expr) (string, int) {
	switch expr := e.(type) {
	case *ast.Literal:
		if s, ok := expr.Value.(string); ok {
			return `"` + s + `"`, precPrimary
		}
		return literalText(expr.Value), precPrimary
	case *ast.Grouping:
		return formatExpr(expr.Expression)
	case *ast.Variable:
		return expr.Name.Lexeme, precPrimary
	case *ast.Unary:
		return expr.Operator.Lexeme + operand(expr.Right, precUnary), precUnary
	case *ast.Binary:
		return formatInfix(expr.Left, expr.Operator, expr.Right)
	case *ast.Logical:
		return formatInfix(expr.Left, expr.Operator, expr.Right)
	case *ast.Ternary:
		return operand(expr.Condition, precOr) + " ? " + FormatExpr(expr.ThenBranch) +
			" : " + operand(expr.ElseBranch, precConditional), precConditional
	case *ast.Assign:
		return expr.Name.Lexeme + " = " + operand(expr.Value, precAssignment), precAssignment
	case *ast.Call:
		args := make([]string, len(expr.Arguments))
		for i, a := range expr.Arguments {
			args[i] = operand(a, precAssignment)
		}
		return operand(expr.Callee, precCall) + "(" + strings.Join(args, ", ") + ")", precCall
	}
	return "", precPrimary
}

func formatInfix(left ast.Expr, op lexer.Token, right ast.Expr) (string, int) {
	prec := binaryPrecedence[op.Type]
	sep := " " + op.Lexeme + " "
	if op.Type == lexer.TokComma {
		sep = ", "
	}
	return operand(left, prec) + sep + operand(right, prec+1), prec
}

// operand renders e, parenthesized if it binds looser than want.
func operand(e ast.Expr, want int) string {
	text, prec := formatExpr(e)
	if prec < want {
		return "(" + text + ")"
	}
	return text
}
