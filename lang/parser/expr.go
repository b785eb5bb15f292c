package parser

import (
	"github.com/loxlang/golox/lang/ast"
	"github.com/loxlang/golox/lang/token"
)

// Precedence climbing, lowest to highest: assignment, logical or, logical
// and, equality, comparison, term, factor, unary, call, primary.

func (p *parser) expression() ast.Expr {
	return p.assignment()
}

// assignment parses the left-hand side as an expression first, then rewrites
// it into an assignment target if an '=' follows: an IdentExpr becomes an
// AssignExpr and a DotExpr becomes a SetExpr. Any other target reports an
// error without entering panic mode, since the parser is in a sane state.
func (p *parser) assignment() ast.Expr {
	expr := p.logicOr()

	if p.match(token.EQ) {
		eq := p.prev
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.IdentExpr:
			return &ast.AssignExpr{Name: target.Name, Value: value}
		case *ast.DotExpr:
			return &ast.SetExpr{Left: target.Left, Name: target.Name, Value: value}
		}
		p.errorAt(eq, "Invalid assignment target.")
	}
	return expr
}

func (p *parser) logicOr() ast.Expr {
	expr := p.logicAnd()
	for p.match(token.OR) {
		op := p.prev
		right := p.logicAnd()
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) logicAnd() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.prev
		right := p.equality()
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BANGEQ, token.EQEQ) {
		op := p.prev
		right := p.comparison()
		expr = &ast.BinOpExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.GT, token.GE, token.LT, token.LE) {
		op := p.prev
		right := p.term()
		expr = &ast.BinOpExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.MINUS, token.PLUS) {
		op := p.prev
		right := p.factor()
		expr = &ast.BinOpExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.SLASH, token.STAR) {
		op := p.prev
		right := p.unary()
		expr = &ast.BinOpExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.prev
		right := p.unary()
		return &ast.UnaryOpExpr{Op: op, Right: right}
	}
	return p.call()
}

func (p *parser) call() ast.Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(token.LPAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.expect(token.IDENT, "Expect property name after '.'.")
			expr = &ast.DotExpr{Left: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if p.tok.Type != token.RPAREN {
		for {
			if len(args) >= 255 {
				p.errorAt(p.tok, "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	rparen := p.expect(token.RPAREN, "Expect ')' after arguments.")
	return &ast.CallExpr{Callee: callee, Rparen: rparen, Args: args}
}

func (p *parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return &ast.LiteralExpr{Value: false}
	case p.match(token.TRUE):
		return &ast.LiteralExpr{Value: true}
	case p.match(token.NIL):
		return &ast.LiteralExpr{Value: nil}

	case p.match(token.NUMBER, token.STRING):
		return &ast.LiteralExpr{Value: p.prev.Literal}

	case p.match(token.SUPER):
		keyword := p.prev
		p.expect(token.DOT, "Expect '.' after 'super'.")
		method := p.expect(token.IDENT, "Expect superclass method name.")
		return &ast.SuperExpr{Keyword: keyword, Method: method}

	case p.match(token.THIS):
		return &ast.ThisExpr{Keyword: p.prev}

	case p.match(token.IDENT):
		return &ast.IdentExpr{Name: p.prev}

	case p.match(token.LPAREN):
		expr := p.expression()
		p.expect(token.RPAREN, "Expect ')' after expression.")
		return &ast.ParenExpr{Expr: expr}
	}

	p.errorAt(p.tok, "Expect expression.")
	panic(errPanicMode)
}
