package interp

import (
	"github.com/loxlang/golox/lang/ast"
	"github.com/loxlang/golox/lang/token"
)

func (it *Interp) eval(expr ast.Expr) (Value, error) {
	switch expr := expr.(type) {
	case *ast.AssignExpr:
		v, err := it.eval(expr.Value)
		if err != nil {
			return nil, err
		}
		if depth, ok := it.depths[expr]; ok {
			it.env.AssignAt(depth, expr.Name, v)
			return v, nil
		}
		if err := it.globals.Assign(expr.Name, v); err != nil {
			return nil, err
		}
		return v, nil

	case *ast.BinOpExpr:
		return it.evalBinOp(expr)

	case *ast.CallExpr:
		callee, err := it.eval(expr.Callee)
		if err != nil {
			return nil, err
		}
		args := make([]Value, len(expr.Args))
		for i, a := range expr.Args {
			if args[i], err = it.eval(a); err != nil {
				return nil, err
			}
		}
		return Call(it, callee, args, expr.Rparen)

	case *ast.DotExpr:
		obj, err := it.eval(expr.Left)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, &Error{Line: expr.Name.Line, Msg: "Only instances have properties."}
		}
		return inst.Get(expr.Name)

	case *ast.IdentExpr:
		return it.lookupVariable(expr.Name, expr)

	case *ast.LiteralExpr:
		switch v := expr.Value.(type) {
		case nil:
			return Nil, nil
		case bool:
			return Bool(v), nil
		case float64:
			return Float(v), nil
		case string:
			return String(v), nil
		}
		return nil, &Error{Msg: "invalid literal"}

	case *ast.LogicalExpr:
		left, err := it.eval(expr.Left)
		if err != nil {
			return nil, err
		}
		// short-circuit: the result is the deciding operand itself, not a
		// boolean
		if expr.Op.Type == token.OR {
			if Truth(left) {
				return left, nil
			}
		} else if !Truth(left) {
			return left, nil
		}
		return it.eval(expr.Right)

	case *ast.ParenExpr:
		return it.eval(expr.Expr)

	case *ast.SetExpr:
		obj, err := it.eval(expr.Left)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, &Error{Line: expr.Name.Line, Msg: "Only instances have fields."}
		}
		v, err := it.eval(expr.Value)
		if err != nil {
			return nil, err
		}
		inst.Set(expr.Name, v)
		return v, nil

	case *ast.SuperExpr:
		return it.evalSuper(expr)

	case *ast.ThisExpr:
		return it.lookupVariable(expr.Keyword, expr)

	case *ast.UnaryOpExpr:
		right, err := it.eval(expr.Right)
		if err != nil {
			return nil, err
		}
		switch expr.Op.Type {
		case token.BANG:
			return Bool(!Truth(right)), nil
		default: // MINUS
			f, ok := right.(Float)
			if !ok {
				return nil, &Error{Line: expr.Op.Line, Msg: "Operand must be a number."}
			}
			return -f, nil
		}
	}
	return nil, &Error{Msg: "invalid expression"}
}

// lookupVariable reads the binding for the referencing node: at the recorded
// depth if the resolver has an entry for it, otherwise in the globals where
// absence is a runtime error.
func (it *Interp) lookupVariable(name token.Token, expr ast.Expr) (Value, error) {
	if depth, ok := it.depths[expr]; ok {
		return it.env.GetAt(depth, name.Lexeme), nil
	}
	return it.globals.Get(name)
}

func (it *Interp) evalBinOp(expr *ast.BinOpExpr) (Value, error) {
	left, err := it.eval(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := it.eval(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Type {
	case token.EQEQ:
		return Bool(Equal(left, right)), nil
	case token.BANGEQ:
		return Bool(!Equal(left, right)), nil
	}

	if expr.Op.Type == token.PLUS {
		// + is overloaded: numeric addition or string concatenation
		if lf, ok := left.(Float); ok {
			if rf, ok := right.(Float); ok {
				return lf + rf, nil
			}
		}
		if ls, ok := left.(String); ok {
			if rs, ok := right.(String); ok {
				return ls + rs, nil
			}
		}
		return nil, &Error{Line: expr.Op.Line, Msg: "Operands must be two numbers or two strings."}
	}

	lf, lok := left.(Float)
	rf, rok := right.(Float)
	if !lok || !rok {
		return nil, &Error{Line: expr.Op.Line, Msg: "Operands must be numbers."}
	}

	switch expr.Op.Type {
	case token.MINUS:
		return lf - rf, nil
	case token.STAR:
		return lf * rf, nil
	case token.SLASH:
		return lf / rf, nil
	case token.GT:
		return Bool(lf > rf), nil
	case token.GE:
		return Bool(lf >= rf), nil
	case token.LT:
		return Bool(lf < rf), nil
	default: // LE
		return Bool(lf <= rf), nil
	}
}

// evalSuper reads 'super' at the depth recorded for the node to get the
// superclass, and 'this' one environment nearer to get the receiver, then
// binds the method found on the superclass chain.
func (it *Interp) evalSuper(expr *ast.SuperExpr) (Value, error) {
	depth := it.depths[expr]
	superclass := it.env.GetAt(depth, "super").(*Class)
	receiver := it.env.GetAt(depth-1, "this").(*Instance)

	m := superclass.FindMethod(expr.Method.Lexeme)
	if m == nil {
		return nil, &Error{Line: expr.Method.Line, Msg: "Undefined property '" + expr.Method.Lexeme + "'."}
	}
	return m.Bind(receiver), nil
}
