package interp

import (
	"fmt"

	"github.com/loxlang/golox/lang/ast"
	"github.com/loxlang/golox/lang/token"
)

// Call calls the function or class value callee with the specified
// arguments. The rparen token locates the call site for error reporting.
func Call(it *Interp, callee Value, args []Value, rparen token.Token) (Value, error) {
	c, ok := callee.(Callable)
	if !ok {
		return nil, &Error{Line: rparen.Line, Msg: "Can only call functions and classes."}
	}
	if len(args) != c.Arity() {
		return nil, &Error{
			Line: rparen.Line,
			Msg:  fmt.Sprintf("Expected %d arguments but got %d.", c.Arity(), len(args)),
		}
	}
	return c.CallInternal(it, args)
}

// A Function is a function declared by a function statement or a class
// method, paired with the environment in which it was declared (its
// closure).
type Function struct {
	decl          *ast.FuncStmt
	closure       *Environment
	isInitializer bool
}

var (
	_ Value    = (*Function)(nil)
	_ Callable = (*Function)(nil)
)

func (fn *Function) String() string { return "<fn " + fn.decl.Name.Lexeme + ">" }
func (fn *Function) Type() string   { return "function" }
func (fn *Function) Arity() int     { return len(fn.decl.Params) }

// CallInternal executes the function body in a fresh environment enclosing
// the closure, with parameters bound positionally. A return statement
// unwinds to here; falling off the end returns nil, except for an
// initializer which always returns the instance bound as 'this'.
func (fn *Function) CallInternal(it *Interp, args []Value) (Value, error) {
	env := NewEnvironment(fn.closure)
	for i, param := range fn.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	if err := it.execBlock(fn.decl.Body, env); err != nil {
		ret, ok := err.(*returnSignal)
		if !ok {
			return nil, err
		}
		if fn.isInitializer {
			return fn.closure.GetAt(0, "this"), nil
		}
		return ret.value, nil
	}

	if fn.isInitializer {
		return fn.closure.GetAt(0, "this"), nil
	}
	return Nil, nil
}

// Bind returns a copy of the function whose closure is a fresh environment
// defining 'this' as the receiver, enclosing the original closure.
func (fn *Function) Bind(inst *Instance) *Function {
	env := NewEnvironment(fn.closure)
	env.Define("this", inst)
	return &Function{decl: fn.decl, closure: env, isInitializer: fn.isInitializer}
}

// A Builtin is a function implemented in Go, exposed to Lox programs through
// the Universe.
type Builtin struct {
	name  string
	arity int
	fn    func(it *Interp, args []Value) (Value, error)
}

var (
	_ Value    = (*Builtin)(nil)
	_ Callable = (*Builtin)(nil)
)

// NewBuiltin returns a builtin callable with the specified name and arity.
func NewBuiltin(name string, arity int, fn func(it *Interp, args []Value) (Value, error)) *Builtin {
	return &Builtin{name: name, arity: arity, fn: fn}
}

func (b *Builtin) String() string { return "<native fn>" }
func (b *Builtin) Type() string   { return "function" }
func (b *Builtin) Arity() int     { return b.arity }
func (b *Builtin) CallInternal(it *Interp, args []Value) (Value, error) {
	return b.fn(it, args)
}
