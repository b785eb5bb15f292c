package ast

import (
	"fmt"

	"github.com/loxlang/golox/lang/token"
)

type (
	// AssignExpr represents an assignment to a named variable, e.g. x = 1.
	// It is created by the parser by rewriting an IdentExpr left-hand side.
	AssignExpr struct {
		Name  token.Token
		Value Expr
	}

	// BinOpExpr represents a binary expression, e.g. x + y.
	BinOpExpr struct {
		Left  Expr
		Op    token.Token
		Right Expr
	}

	// CallExpr represents a function or class call, e.g. x(y, z). Rparen is
	// the closing parenthesis, kept for error reporting.
	CallExpr struct {
		Callee Expr
		Rparen token.Token
		Args   []Expr
	}

	// DotExpr represents a property read, e.g. x.y.
	DotExpr struct {
		Left Expr
		Name token.Token
	}

	// IdentExpr represents a variable reference.
	IdentExpr struct {
		Name token.Token
	}

	// LiteralExpr represents a literal number, string, boolean or nil.
	LiteralExpr struct {
		Value interface{} // float64 | string | bool | nil
	}

	// LogicalExpr represents a short-circuiting 'and' or 'or' expression.
	LogicalExpr struct {
		Left  Expr
		Op    token.Token
		Right Expr
	}

	// ParenExpr represents an expression wrapped in parentheses.
	ParenExpr struct {
		Expr Expr
	}

	// SetExpr represents a property write, e.g. x.y = z. It is created by the
	// parser by rewriting a DotExpr left-hand side.
	SetExpr struct {
		Left  Expr
		Name  token.Token
		Value Expr
	}

	// SuperExpr represents a superclass method access, e.g. super.method.
	SuperExpr struct {
		Keyword token.Token
		Method  token.Token
	}

	// ThisExpr represents the 'this' keyword.
	ThisExpr struct {
		Keyword token.Token
	}

	// UnaryOpExpr represents a unary operator expression, e.g. -x or !x.
	UnaryOpExpr struct {
		Op    token.Token
		Right Expr
	}
)

func (n *AssignExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "assign "+n.Name.Lexeme, nil)
}
func (n *AssignExpr) Walk(v Visitor) { Walk(v, n.Value) }
func (n *AssignExpr) expr()          {}

func (n *BinOpExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "binary "+n.Op.Type.GoString(), nil)
}
func (n *BinOpExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *BinOpExpr) expr() {}

func (n *CallExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "call", map[string]int{"args": len(n.Args)})
}
func (n *CallExpr) Walk(v Visitor) {
	Walk(v, n.Callee)
	for _, e := range n.Args {
		Walk(v, e)
	}
}
func (n *CallExpr) expr() {}

func (n *DotExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "expr."+n.Name.Lexeme, nil)
}
func (n *DotExpr) Walk(v Visitor) { Walk(v, n.Left) }
func (n *DotExpr) expr()          {}

func (n *IdentExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, n.Name.Lexeme, nil)
}
func (n *IdentExpr) Walk(v Visitor) {}
func (n *IdentExpr) expr()          {}

func (n *LiteralExpr) Format(f fmt.State, verb rune) {
	switch v := n.Value.(type) {
	case nil:
		format(f, verb, n, "nil", nil)
	case string:
		format(f, verb, n, fmt.Sprintf("%q", v), nil)
	default:
		format(f, verb, n, fmt.Sprintf("%v", v), nil)
	}
}
func (n *LiteralExpr) Walk(v Visitor) {}
func (n *LiteralExpr) expr()          {}

func (n *LogicalExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "logical "+n.Op.Lexeme, nil)
}
func (n *LogicalExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *LogicalExpr) expr() {}

func (n *ParenExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "(expr)", nil)
}
func (n *ParenExpr) Walk(v Visitor) { Walk(v, n.Expr) }
func (n *ParenExpr) expr()          {}

func (n *SetExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "set expr."+n.Name.Lexeme, nil)
}
func (n *SetExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Value)
}
func (n *SetExpr) expr() {}

func (n *SuperExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "super."+n.Method.Lexeme, nil)
}
func (n *SuperExpr) Walk(v Visitor) {}
func (n *SuperExpr) expr()          {}

func (n *ThisExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "this", nil)
}
func (n *ThisExpr) Walk(v Visitor) {}
func (n *ThisExpr) expr()          {}

func (n *UnaryOpExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "unary "+n.Op.Type.GoString(), nil)
}
func (n *UnaryOpExpr) Walk(v Visitor) { Walk(v, n.Right) }
func (n *UnaryOpExpr) expr()          {}
