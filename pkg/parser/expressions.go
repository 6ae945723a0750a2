package parser

import (
	"github.com/longkhanh1987/CS-4080-HW/pkg/ast"
	"github.com/longkhanh1987/CS-4080-HW/pkg/lexer"
)

func (p *parser) expression() (ast.Expr, error) {
	return p.comma()
}

// comma is left-associative and yields a Binary with a TokComma operator.
func (p *parser) comma() (ast.Expr, error) {
	expr, err := p.assignment()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.TokComma) {
		op := p.previous()
		right, err := p.assignment()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *parser) assignment() (ast.Expr, error) {
	defer p.leave()
	if err := p.enter(); err != nil {
		return nil, err
	}

	expr, err := p.conditional()
	if err != nil {
		return nil, err
	}

	if p.match(lexer.TokEqual) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if v, ok := expr.(*ast.Variable); ok {
			return &ast.Assign{Name: v.Name, Value: value}, nil
		}
		p.report(equals, "Invalid assignment target.")
	}
	return expr, nil
}

func (p *parser) conditional() (ast.Expr, error) {
	defer p.leave()
	if err := p.enter(); err != nil {
		return nil, err
	}

	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.match(lexer.TokQuestion) {
		thenBranch, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.TokColon, "Expect ':' after then branch of conditional expression."); err != nil {
			return nil, err
		}
		elseBranch, err := p.conditional()
		if err != nil {
			return nil, err
		}
		expr = &ast.Ternary{Condition: expr, ThenBranch: thenBranch, ElseBranch: elseBranch}
	}
	return expr, nil
}

func (p *parser) or() (ast.Expr, error) {
	return p.logical(p.and, lexer.TokOr)
}

func (p *parser) and() (ast.Expr, error) {
	return p.logical(p.equality, lexer.TokAnd)
}

func (p *parser) logical(operand func() (ast.Expr, error), typ lexer.TokenType) (ast.Expr, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.match(typ) {
		op := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = &ast.Logical{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

// binary parses a left-associative chain of operand (op operand)*.
func (p *parser) binary(operand func() (ast.Expr, error), types ...lexer.TokenType) (ast.Expr, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.match(types...) {
		op := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *parser) equality() (ast.Expr, error) {
	return p.binary(p.comparison, lexer.TokBangEqual, lexer.TokEqualEqual)
}

func (p *parser) comparison() (ast.Expr, error) {
	return p.binary(p.term, lexer.TokGreater, lexer.TokGreaterEqual, lexer.TokLess, lexer.TokLessEqual)
}

func (p *parser) term() (ast.Expr, error) {
	return p.binary(p.factor, lexer.TokMinus, lexer.TokPlus)
}

func (p *parser) factor() (ast.Expr, error) {
	return p.binary(p.unary, lexer.TokSlash, lexer.TokStar)
}

func (p *parser) unary() (ast.Expr, error) {
	defer p.leave()
	if err := p.enter(); err != nil {
		return nil, err
	}

	if p.match(lexer.TokBang, lexer.TokMinus) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Operator: op, Right: right}, nil
	}
	return p.call()
}

func (p *parser) call() (ast.Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.TokLeftParen) {
		if expr, err = p.finishCall(expr); err != nil {
			return nil, err
		}
	}
	return expr, nil
}

func (p *parser) finishCall(callee ast.Expr) (ast.Expr, error) {
	var args []ast.Expr
	if !p.check(lexer.TokRightParen) {
		for {
			if len(args) >= maxArgs {
				p.report(p.peek(), "Can't have more than 255 arguments.")
			}
			arg, err := p.assignment()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(lexer.TokComma) {
				break
			}
		}
	}
	paren, err := p.consume(lexer.TokRightParen, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return &ast.Call{Callee: callee, Paren: paren, Arguments: args}, nil
}

func (p *parser) primary() (ast.Expr, error) {
	tok := p.peek()
	switch {
	case p.match(lexer.TokFalse):
		return &ast.Literal{Value: false, SrcLine: tok.Line}, nil
	case p.match(lexer.TokTrue):
		return &ast.Literal{Value: true, SrcLine: tok.Line}, nil
	case p.match(lexer.TokNil):
		return &ast.Literal{Value: nil, SrcLine: tok.Line}, nil
	case p.match(lexer.TokNumber, lexer.TokString):
		return &ast.Literal{Value: tok.Literal, SrcLine: tok.Line}, nil
	case p.match(lexer.TokIdentifier):
		return &ast.Variable{Name: tok}, nil
	case p.match(lexer.TokLeftParen):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.TokRightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &ast.Grouping{Expression: expr}, nil
	}

	if p.match(lexer.TokPlus, lexer.TokStar, lexer.TokSlash,
		lexer.TokEqualEqual, lexer.TokBangEqual,
		lexer.TokGreater, lexer.TokGreaterEqual, lexer.TokLess, lexer.TokLessEqual) {
		return p.missingLeftOperand(p.previous())
	}

	return nil, p.errorAt(tok, "Expect expression.")
}

// missingLeftOperand handles a binary operator with no left operand. The
// right operand is parsed at the operator's own precedence and dropped.
func (p *parser) missingLeftOperand(op lexer.Token) (ast.Expr, error) {
	p.report(op, "Missing left-hand operand.")

	var err error
	switch op.Type {
	case lexer.TokStar, lexer.TokSlash:
		_, err = p.unary()
	case lexer.TokPlus:
		_, err = p.factor()
	case lexer.TokGreater, lexer.TokGreaterEqual, lexer.TokLess, lexer.TokLessEqual:
		_, err = p.term()
	default:
		_, err = p.comparison()
	}
	if err != nil {
		return nil, err
	}
	return &ast.Literal{Value: nil, SrcLine: op.Line}, nil
}
