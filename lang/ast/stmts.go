package ast

import (
	"fmt"

	"github.com/loxlang/golox/lang/token"
)

type (
	// BlockStmt represents a brace-delimited block of statements.
	BlockStmt struct {
		Stmts []Stmt
	}

	// ClassStmt represents a class declaration statement. Superclass is nil
	// when the class has no superclass clause.
	ClassStmt struct {
		Name       token.Token
		Superclass *IdentExpr
		Methods    []*FuncStmt
	}

	// ExprStmt represents an expression used as a statement.
	ExprStmt struct {
		Expr Expr
	}

	// FuncStmt represents a function declaration statement, or a method when
	// it appears in a class body.
	FuncStmt struct {
		Name   token.Token
		Params []token.Token
		Body   []Stmt
	}

	// IfStmt represents an if statement with an optional else branch.
	IfStmt struct {
		Cond Expr
		Then Stmt
		Else Stmt // may be nil
	}

	// PrintStmt represents a print statement.
	PrintStmt struct {
		Expr Expr
	}

	// ReturnStmt represents a return statement. Value is nil for a bare
	// return.
	ReturnStmt struct {
		Keyword token.Token
		Value   Expr
	}

	// VarStmt represents a variable declaration with an optional initializer.
	VarStmt struct {
		Name token.Token
		Init Expr // may be nil
	}

	// WhileStmt represents a while loop. A for loop is desugared by the
	// parser into a WhileStmt, wrapped in a block when it has an initializer,
	// and never appears in the AST.
	WhileStmt struct {
		Cond Expr
		Body Stmt
	}
)

func (n *BlockStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "block", map[string]int{"stmts": len(n.Stmts)})
}
func (n *BlockStmt) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}
func (n *BlockStmt) stmt() {}

func (n *ClassStmt) Format(f fmt.State, verb rune) {
	var inherits int
	if n.Superclass != nil {
		inherits = 1
	}
	format(f, verb, n, "class "+n.Name.Lexeme, map[string]int{
		"inherits": inherits,
		"methods":  len(n.Methods),
	})
}
func (n *ClassStmt) Walk(v Visitor) {
	if n.Superclass != nil {
		Walk(v, n.Superclass)
	}
	for _, m := range n.Methods {
		Walk(v, m)
	}
}
func (n *ClassStmt) stmt() {}

func (n *ExprStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "expr stmt", nil) }
func (n *ExprStmt) Walk(v Visitor)                { Walk(v, n.Expr) }
func (n *ExprStmt) stmt()                         {}

func (n *FuncStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "fun "+n.Name.Lexeme, map[string]int{
		"params": len(n.Params),
		"stmts":  len(n.Body),
	})
}
func (n *FuncStmt) Walk(v Visitor) {
	for _, s := range n.Body {
		Walk(v, s)
	}
}
func (n *FuncStmt) stmt() {}

func (n *IfStmt) Format(f fmt.State, verb rune) {
	lbl := "if"
	if n.Else != nil {
		lbl += " else"
	}
	format(f, verb, n, lbl, nil)
}
func (n *IfStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	if n.Else != nil {
		Walk(v, n.Else)
	}
}
func (n *IfStmt) stmt() {}

func (n *PrintStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "print", nil) }
func (n *PrintStmt) Walk(v Visitor)                { Walk(v, n.Expr) }
func (n *PrintStmt) stmt()                         {}

func (n *ReturnStmt) Format(f fmt.State, verb rune) {
	var exprCount int
	if n.Value != nil {
		exprCount = 1
	}
	format(f, verb, n, "return", map[string]int{"expr": exprCount})
}
func (n *ReturnStmt) Walk(v Visitor) {
	if n.Value != nil {
		Walk(v, n.Value)
	}
}
func (n *ReturnStmt) stmt() {}

func (n *VarStmt) Format(f fmt.State, verb rune) {
	var initCount int
	if n.Init != nil {
		initCount = 1
	}
	format(f, verb, n, "var "+n.Name.Lexeme, map[string]int{"init": initCount})
}
func (n *VarStmt) Walk(v Visitor) {
	if n.Init != nil {
		Walk(v, n.Init)
	}
}
func (n *VarStmt) stmt() {}

func (n *WhileStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "while", nil) }
func (n *WhileStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Body)
}
func (n *WhileStmt) stmt() {}
