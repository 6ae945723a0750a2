// Package ast defines the Lox AST node types.
//
// Expressions and statements are sealed interfaces; each operation over the
// tree (parser, interpreter, printers, validator) dispatches with a type
// switch over the concrete node types.
package ast

import "github.com/longkhanh1987/CS-4080-HW/pkg/lexer"

// Node is the interface implemented by all AST nodes.
type Node interface {
	Kind() string
	// Line returns the source line the node is reported at.
	Line() int
}

// --- Expr is the interface for all expression nodes ---

type Expr interface {
	Node
	exprNode() // sealed marker
}

// --- Stmt is the interface for all statement nodes ---

type Stmt interface {
	Node
	stmtNode() // sealed marker
}

// --- Expressions ---

// Literal holds nil, bool, float64 or string.
type Literal struct {
	Value   any
	SrcLine int
}

func (n *Literal) Kind() string { return "Literal" }
func (n *Literal) Line() int    { return n.SrcLine }
func (n *Literal) exprNode()    {}

type Grouping struct {
	Expression Expr
}

func (n *Grouping) Kind() string { return "Grouping" }
func (n *Grouping) Line() int    { return n.Expression.Line() }
func (n *Grouping) exprNode()    {}

type Unary struct {
	Operator lexer.Token
	Right    Expr
}

func (n *Unary) Kind() string { return "Unary" }
func (n *Unary) Line() int    { return n.Operator.Line }
func (n *Unary) exprNode()    {}

// Binary also represents the comma operator, with Operator.Type == TokComma.
type Binary struct {
	Left     Expr
	Operator lexer.Token
	Right    Expr
}

func (n *Binary) Kind() string { return "Binary" }
func (n *Binary) Line() int    { return n.Operator.Line }
func (n *Binary) exprNode()    {}

type Ternary struct {
	Condition  Expr
	ThenBranch Expr
	ElseBranch Expr
}

func (n *Ternary) Kind() string { return "Ternary" }
func (n *Ternary) Line() int    { return n.Condition.Line() }
func (n *Ternary) exprNode()    {}

type Variable struct {
	Name lexer.Token
}

func (n *Variable) Kind() string { return "Variable" }
func (n *Variable) Line() int    { return n.Name.Line }
func (n *Variable) exprNode()    {}

type Assign struct {
	Name  lexer.Token
	Value Expr
}

func (n *Assign) Kind() string { return "Assign" }
func (n *Assign) Line() int    { return n.Name.Line }
func (n *Assign) exprNode()    {}

type Logical struct {
	Left     Expr
	Operator lexer.Token
	Right    Expr
}

func (n *Logical) Kind() string { return "Logical" }
func (n *Logical) Line() int    { return n.Operator.Line }
func (n *Logical) exprNode()    {}

// Call keeps the closing parenthesis token for runtime error locations.
type Call struct {
	Callee    Expr
	Paren     lexer.Token
	Arguments []Expr
}

func (n *Call) Kind() string { return "Call" }
func (n *Call) Line() int    { return n.Paren.Line }
func (n *Call) exprNode()    {}

// --- Statements ---

type ExpressionStmt struct {
	Expression Expr
}

func (n *ExpressionStmt) Kind() string { return "ExpressionStmt" }
func (n *ExpressionStmt) Line() int    { return n.Expression.Line() }
func (n *ExpressionStmt) stmtNode()    {}

type PrintStmt struct {
	Keyword    lexer.Token
	Expression Expr
}

func (n *PrintStmt) Kind() string { return "PrintStmt" }
func (n *PrintStmt) Line() int    { return n.Keyword.Line }
func (n *PrintStmt) stmtNode()    {}

// VarStmt has a nil Initializer for "var x;".
type VarStmt struct {
	Name        lexer.Token
	Initializer Expr
}

func (n *VarStmt) Kind() string { return "VarStmt" }
func (n *VarStmt) Line() int    { return n.Name.Line }
func (n *VarStmt) stmtNode()    {}

type BlockStmt struct {
	Statements []Stmt
	SrcLine    int
}

func (n *BlockStmt) Kind() string { return "BlockStmt" }
func (n *BlockStmt) Line() int    { return n.SrcLine }
func (n *BlockStmt) stmtNode()    {}

// IfStmt has a nil ElseBranch when there is no else clause.
type IfStmt struct {
	Keyword    lexer.Token
	Condition  Expr
	ThenBranch Stmt
	ElseBranch Stmt
}

func (n *IfStmt) Kind() string { return "IfStmt" }
func (n *IfStmt) Line() int    { return n.Keyword.Line }
func (n *IfStmt) stmtNode()    {}

// WhileStmt is also the desugared form of a for loop.
type WhileStmt struct {
	Keyword   lexer.Token
	Condition Expr
	Body      Stmt
}

func (n *WhileStmt) Kind() string { return "WhileStmt" }
func (n *WhileStmt) Line() int    { return n.Keyword.Line }
func (n *WhileStmt) stmtNode()    {}

type BreakStmt struct {
	Keyword lexer.Token
}

func (n *BreakStmt) Kind() string { return "BreakStmt" }
func (n *BreakStmt) Line() int    { return n.Keyword.Line }
func (n *BreakStmt) stmtNode()    {}

// ReturnStmt has a nil Value for a bare "return;".
type ReturnStmt struct {
	Keyword lexer.Token
	Value   Expr
}

func (n *ReturnStmt) Kind() string { return "ReturnStmt" }
func (n *ReturnStmt) Line() int    { return n.Keyword.Line }
func (n *ReturnStmt) stmtNode()    {}

type FunctionStmt struct {
	Name   lexer.Token
	Params []lexer.Token
	Body   []Stmt
}

func (n *FunctionStmt) Kind() string { return "FunctionStmt" }
func (n *FunctionStmt) Line() int    { return n.Name.Line }
func (n *FunctionStmt) stmtNode()    {}
