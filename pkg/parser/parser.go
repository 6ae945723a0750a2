// Package parser implements the Lox recursive-descent parser.
//
// Grammar, lowest precedence first:
//
//	program     → declaration* EOF
//	declaration → funDecl | varDecl | statement
//	statement   → exprStmt | forStmt | ifStmt | printStmt | returnStmt
//	            | whileStmt | breakStmt | block
//	expression  → comma
//	comma       → assignment ( "," assignment )*
//	assignment  → IDENTIFIER "=" assignment | conditional
//	conditional → logic_or ( "?" expression ":" conditional )?
//	logic_or    → logic_and ( "or" logic_and )*
//	logic_and   → equality ( "and" equality )*
//	equality    → comparison ( ( "!=" | "==" ) comparison )*
//	comparison  → term ( ( ">" | ">=" | "<" | "<=" ) term )*
//	term        → factor ( ( "-" | "+" ) factor )*
//	factor      → unary ( ( "/" | "*" ) unary )*
//	unary       → ( "!" | "-" ) unary | call
//	call        → primary ( "(" arguments? ")" )*
//	primary     → NUMBER | STRING | "true" | "false" | "nil"
//	            | "(" expression ")" | IDENTIFIER
package parser

import (
	"github.com/longkhanh1987/CS-4080-HW/pkg/ast"
	"github.com/longkhanh1987/CS-4080-HW/pkg/diagnostics"
	"github.com/longkhanh1987/CS-4080-HW/pkg/lexer"
)

// maxArgs is the largest number of call arguments or function parameters.
const maxArgs = 255

// maxNesting bounds recursive descent. Each grouping level costs a few
// units, each nested statement one.
const maxNesting = 4096

type parser struct {
	tokens  []lexer.Token
	pos     int
	diags   []diagnostics.Diagnostic
	nesting int
	// halted is set once nesting overflows; the rest of the input is
	// dropped and no further diagnostics are recorded.
	halted bool
}

// parseError is returned up the descent when a construct cannot be
// derived. Its diagnostic has already been recorded; the nearest
// declaration boundary recovers by synchronizing.
type parseError struct {
	diag diagnostics.Diagnostic
}

func (e *parseError) Error() string {
	return e.diag.Message
}

func newParser(tokens []lexer.Token) *parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != lexer.TokEOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens[:len(tokens):len(tokens)], lexer.NewToken(lexer.TokEOF, "", line))
	}
	return &parser{tokens: tokens}
}

// Parse parses a whole program. It keeps going after a syntax error so
// that every independent error in the source is reported.
func Parse(tokens []lexer.Token) ([]ast.Stmt, []diagnostics.Diagnostic) {
	p := newParser(tokens)
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts, p.diags
}

// ParseExpression parses tokens as exactly one expression followed by EOF.
// Diagnostics are returned rather than reported so the caller can fall
// back to statement parsing.
func ParseExpression(tokens []lexer.Token) (ast.Expr, []diagnostics.Diagnostic) {
	p := newParser(tokens)
	expr, err := p.expression()
	if err != nil {
		return nil, p.diags
	}
	if !p.isAtEnd() {
		p.errorAt(p.peek(), "Expect end of expression.")
		return nil, p.diags
	}
	return expr, p.diags
}

// ParseSource tokenizes and parses source. Lexical diagnostics come first.
func ParseSource(source string) ([]ast.Stmt, []diagnostics.Diagnostic) {
	tokens, lexDiags := lexer.Tokenize(source)
	stmts, diags := Parse(tokens)
	return stmts, append(lexDiags, diags...)
}

// --- Token navigation ---

func (p *parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

func (p *parser) previous() lexer.Token {
	return p.tokens[p.pos-1]
}

func (p *parser) isAtEnd() bool {
	return p.peek().Type == lexer.TokEOF
}

func (p *parser) check(typ lexer.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == typ
}

func (p *parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.pos++
	}
	return p.previous()
}

func (p *parser) match(types ...lexer.TokenType) bool {
	for _, typ := range types {
		if p.check(typ) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) consume(typ lexer.TokenType, msg string) (lexer.Token, error) {
	if p.check(typ) {
		return p.advance(), nil
	}
	return p.peek(), p.errorAt(p.peek(), msg)
}

// report records a diagnostic without abandoning the current construct.
func (p *parser) report(tok lexer.Token, msg string) diagnostics.Diagnostic {
	where := diagnostics.AtLexeme(tok.Lexeme)
	if tok.Type == lexer.TokEOF {
		where = diagnostics.AtEnd
	}
	d := diagnostics.MakeDiag(diagnostics.EParse, msg, tok.Line, where)
	if !p.halted {
		p.diags = append(p.diags, d)
	}
	return d
}

func (p *parser) errorAt(tok lexer.Token, msg string) *parseError {
	return &parseError{diag: p.report(tok, msg)}
}

// enter descends one nesting level. Callers defer leave regardless of
// the result.
func (p *parser) enter() error {
	p.nesting++
	if p.nesting <= maxNesting {
		return nil
	}
	err := p.errorAt(p.peek(), "Too much nesting.")
	p.halted = true
	p.pos = len(p.tokens) - 1
	return err
}

func (p *parser) leave() {
	p.nesting--
}

// synchronize discards tokens until the start of the next statement.
func (p *parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == lexer.TokSemicolon {
			return
		}

		switch p.peek().Type {
		case lexer.TokClass, lexer.TokFun, lexer.TokVar, lexer.TokFor,
			lexer.TokIf, lexer.TokWhile, lexer.TokPrint, lexer.TokReturn:
			return
		}

		p.advance()
	}
}
