package parser

import (
	"github.com/loxlang/golox/lang/ast"
	"github.com/loxlang/golox/lang/token"
)

// declaration parses a single declaration or statement. On a parse error it
// synchronizes to the next declaration boundary and returns nil, so the
// caller simply skips the failed statement and keeps parsing.
func (p *parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if e := recover(); e != nil {
			if e != errPanicMode { //nolint:errorlint
				panic(e)
			}
			p.synchronize()
			stmt = nil
		}
	}()

	switch {
	case p.match(token.CLASS):
		return p.classDecl()
	case p.match(token.FUN):
		return p.function("function")
	case p.match(token.VAR):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *parser) classDecl() ast.Stmt {
	name := p.expect(token.IDENT, "Expect class name.")

	var superclass *ast.IdentExpr
	if p.match(token.LT) {
		sup := p.expect(token.IDENT, "Expect superclass name.")
		superclass = &ast.IdentExpr{Name: sup}
	}

	p.expect(token.LBRACE, "Expect '{' before class body.")
	var methods []*ast.FuncStmt
	for p.tok.Type != token.RBRACE && p.tok.Type != token.EOF {
		methods = append(methods, p.function("method"))
	}
	p.expect(token.RBRACE, "Expect '}' after class body.")

	return &ast.ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

// function parses a function declaration or a class method (kind selects the
// error messages). The leading 'fun' keyword, if any, is already consumed.
func (p *parser) function(kind string) *ast.FuncStmt {
	name := p.expect(token.IDENT, "Expect "+kind+" name.")
	p.expect(token.LPAREN, "Expect '(' after "+kind+" name.")

	var params []token.Token
	if p.tok.Type != token.RPAREN {
		for {
			if len(params) >= 255 {
				p.errorAt(p.tok, "Can't have more than 255 parameters.")
			}
			params = append(params, p.expect(token.IDENT, "Expect parameter name."))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.RPAREN, "Expect ')' after parameters.")

	p.expect(token.LBRACE, "Expect '{' before "+kind+" body.")
	body := p.block()
	return &ast.FuncStmt{Name: name, Params: params, Body: body}
}

func (p *parser) varDecl() ast.Stmt {
	name := p.expect(token.IDENT, "Expect variable name.")

	var init ast.Expr
	if p.match(token.EQ) {
		init = p.expression()
	}
	p.expect(token.SEMICOLON, "Expect ';' after variable declaration.")
	return &ast.VarStmt{Name: name, Init: init}
}

func (p *parser) statement() ast.Stmt {
	switch {
	case p.match(token.FOR):
		return p.forStmt()
	case p.match(token.IF):
		return p.ifStmt()
	case p.match(token.PRINT):
		return p.printStmt()
	case p.match(token.RETURN):
		return p.returnStmt()
	case p.match(token.WHILE):
		return p.whileStmt()
	case p.match(token.LBRACE):
		return &ast.BlockStmt{Stmts: p.block()}
	default:
		return p.exprStmt()
	}
}

// forStmt desugars for (init; cond; step) body into:
//
//	{ init; while (cond) { body; step; } }
//
// with a missing cond becoming true and missing init/step omitted.
func (p *parser) forStmt() ast.Stmt {
	p.expect(token.LPAREN, "Expect '(' after 'for'.")

	var init ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		init = nil
	case p.match(token.VAR):
		init = p.varDecl()
	default:
		init = p.exprStmt()
	}

	var cond ast.Expr
	if p.tok.Type != token.SEMICOLON {
		cond = p.expression()
	}
	p.expect(token.SEMICOLON, "Expect ';' after loop condition.")

	var step ast.Expr
	if p.tok.Type != token.RPAREN {
		step = p.expression()
	}
	p.expect(token.RPAREN, "Expect ')' after for clauses.")

	body := p.statement()
	if step != nil {
		body = &ast.BlockStmt{Stmts: []ast.Stmt{body, &ast.ExprStmt{Expr: step}}}
	}
	if cond == nil {
		cond = &ast.LiteralExpr{Value: true}
	}
	body = &ast.WhileStmt{Cond: cond, Body: body}
	if init != nil {
		body = &ast.BlockStmt{Stmts: []ast.Stmt{init, body}}
	}
	return body
}

func (p *parser) ifStmt() ast.Stmt {
	p.expect(token.LPAREN, "Expect '(' after 'if'.")
	cond := p.expression()
	p.expect(token.RPAREN, "Expect ')' after if condition.")

	then := p.statement()
	var els ast.Stmt
	if p.match(token.ELSE) {
		els = p.statement()
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: els}
}

func (p *parser) printStmt() ast.Stmt {
	expr := p.expression()
	p.expect(token.SEMICOLON, "Expect ';' after value.")
	return &ast.PrintStmt{Expr: expr}
}

func (p *parser) returnStmt() ast.Stmt {
	keyword := p.prev

	var value ast.Expr
	if p.tok.Type != token.SEMICOLON {
		value = p.expression()
	}
	p.expect(token.SEMICOLON, "Expect ';' after return value.")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *parser) whileStmt() ast.Stmt {
	p.expect(token.LPAREN, "Expect '(' after 'while'.")
	cond := p.expression()
	p.expect(token.RPAREN, "Expect ')' after condition.")
	body := p.statement()
	return &ast.WhileStmt{Cond: cond, Body: body}
}

func (p *parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for p.tok.Type != token.RBRACE && p.tok.Type != token.EOF {
		if d := p.declaration(); d != nil {
			stmts = append(stmts, d)
		}
	}
	p.expect(token.RBRACE, "Expect '}' after block.")
	return stmts
}

func (p *parser) exprStmt() ast.Stmt {
	expr := p.expression()
	p.expect(token.SEMICOLON, "Expect ';' after expression.")
	return &ast.ExprStmt{Expr: expr}
}
