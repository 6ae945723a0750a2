package parser

import (
	"github.com/longkhanh1987/CS-4080-HW/pkg/ast"
	"github.com/longkhanh1987/CS-4080-HW/pkg/lexer"
)

// declaration is the recovery boundary: a failed declaration is dropped
// and the token cursor resynchronized.
func (p *parser) declaration() ast.Stmt {
	var stmt ast.Stmt
	var err error

	switch {
	case p.match(lexer.TokFun):
		stmt, err = p.function()
	case p.match(lexer.TokVar):
		stmt, err = p.varDeclaration()
	default:
		stmt, err = p.statement()
	}

	if err != nil {
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *parser) function() (ast.Stmt, error) {
	defer p.leave()
	if err := p.enter(); err != nil {
		return nil, err
	}

	name, err := p.consume(lexer.TokIdentifier, "Expect function name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokLeftParen, "Expect '(' after function name."); err != nil {
		return nil, err
	}

	var params []lexer.Token
	if !p.check(lexer.TokRightParen) {
		for {
			if len(params) >= maxArgs {
				p.report(p.peek(), "Can't have more than 255 parameters.")
			}
			param, err := p.consume(lexer.TokIdentifier, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(lexer.TokComma) {
				break
			}
		}
	}
	if _, err := p.consume(lexer.TokRightParen, "Expect ')' after parameters."); err != nil {
		return nil, err
	}

	if _, err := p.consume(lexer.TokLeftBrace, "Expect '{' before function body."); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionStmt{Name: name, Params: params, Body: body}, nil
}

func (p *parser) varDeclaration() (ast.Stmt, error) {
	name, err := p.consume(lexer.TokIdentifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var initializer ast.Expr
	if p.match(lexer.TokEqual) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(lexer.TokSemicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &ast.VarStmt{Name: name, Initializer: initializer}, nil
}

func (p *parser) statement() (ast.Stmt, error) {
	defer p.leave()
	if err := p.enter(); err != nil {
		return nil, err
	}

	switch {
	case p.match(lexer.TokFor):
		return p.forStatement()
	case p.match(lexer.TokIf):
		return p.ifStatement()
	case p.match(lexer.TokPrint):
		return p.printStatement()
	case p.match(lexer.TokReturn):
		return p.returnStatement()
	case p.match(lexer.TokWhile):
		return p.whileStatement()
	case p.match(lexer.TokBreak):
		return p.breakStatement()
	case p.match(lexer.TokLeftBrace):
		line := p.previous().Line
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return &ast.BlockStmt{Statements: stmts, SrcLine: line}, nil
	default:
		return p.expressionStatement()
	}
}

// forStatement desugars "for (init; cond; incr) body" into
// { init; while (cond) { body; incr; } }.
func (p *parser) forStatement() (ast.Stmt, error) {
	keyword := p.previous()
	if _, err := p.consume(lexer.TokLeftParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var initializer ast.Stmt
	var err error
	switch {
	case p.match(lexer.TokSemicolon):
	case p.match(lexer.TokVar):
		initializer, err = p.varDeclaration()
	default:
		initializer, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var condition ast.Expr
	if !p.check(lexer.TokSemicolon) {
		if condition, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.TokSemicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment ast.Expr
	if !p.check(lexer.TokRightParen) {
		if increment, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.TokRightParen, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if increment != nil {
		body = &ast.BlockStmt{
			Statements: []ast.Stmt{body, &ast.ExpressionStmt{Expression: increment}},
			SrcLine:    keyword.Line,
		}
	}
	if condition == nil {
		condition = &ast.Literal{Value: true, SrcLine: keyword.Line}
	}
	body = &ast.WhileStmt{Keyword: keyword, Condition: condition, Body: body}

	if initializer != nil {
		body = &ast.BlockStmt{
			Statements: []ast.Stmt{initializer, body},
			SrcLine:    keyword.Line,
		}
	}
	return body, nil
}

func (p *parser) ifStatement() (ast.Stmt, error) {
	keyword := p.previous()
	if _, err := p.consume(lexer.TokLeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokRightParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}

	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch ast.Stmt
	if p.match(lexer.TokElse) {
		if elseBranch, err = p.statement(); err != nil {
			return nil, err
		}
	}

	return &ast.IfStmt{
		Keyword:    keyword,
		Condition:  condition,
		ThenBranch: thenBranch,
		ElseBranch: elseBranch,
	}, nil
}

func (p *parser) printStatement() (ast.Stmt, error) {
	keyword := p.previous()
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokSemicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &ast.PrintStmt{Keyword: keyword, Expression: value}, nil
}

func (p *parser) returnStatement() (ast.Stmt, error) {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(lexer.TokSemicolon) {
		var err error
		if value, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.TokSemicolon, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Keyword: keyword, Value: value}, nil
}

func (p *parser) whileStatement() (ast.Stmt, error) {
	keyword := p.previous()
	if _, err := p.consume(lexer.TokLeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokRightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Keyword: keyword, Condition: condition, Body: body}, nil
}

func (p *parser) breakStatement() (ast.Stmt, error) {
	keyword := p.previous()
	if _, err := p.consume(lexer.TokSemicolon, "Expect ';' after 'break'."); err != nil {
		return nil, err
	}
	return &ast.BreakStmt{Keyword: keyword}, nil
}

// block parses declarations up to the closing brace. The opening brace has
// already been consumed.
func (p *parser) block() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for !p.check(lexer.TokRightBrace) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	if _, err := p.consume(lexer.TokRightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *parser) expressionStatement() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokSemicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ast.ExpressionStmt{Expression: expr}, nil
}
