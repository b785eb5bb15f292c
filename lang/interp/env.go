package interp

import (
	"github.com/dolthub/swiss"
	"github.com/loxlang/golox/lang/token"
)

// An Environment is one frame of the lexical environment chain: a mutable
// name-to-value table plus a pointer to the enclosing frame. A fresh frame is
// created per block, per function call, per method binding (defining 'this')
// and per definition of a class that has a superclass (defining 'super').
// Frames outlive their creating scope for as
// long as a closure or activation references them.
type Environment struct {
	values    *swiss.Map[string, Value]
	enclosing *Environment
}

// NewEnvironment returns an empty environment frame chained to enclosing,
// which is nil only for the global environment.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		values:    swiss.NewMap[string, Value](8),
		enclosing: enclosing,
	}
}

// Define binds name to v in this frame, inserting or overwriting.
func (e *Environment) Define(name string, v Value) {
	e.values.Put(name, v)
}

// Get resolves name by walking the chain outward from this frame. Absence
// everywhere is the undefined-variable runtime error.
func (e *Environment) Get(name token.Token) (Value, error) {
	if v, ok := e.values.Get(name.Lexeme); ok {
		return v, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, &Error{Line: name.Line, Msg: "Undefined variable '" + name.Lexeme + "'."}
}

// Assign writes v to the existing binding of name, walking the chain outward
// from this frame. Absence everywhere is the undefined-variable runtime
// error.
func (e *Environment) Assign(name token.Token, v Value) error {
	if _, ok := e.values.Get(name.Lexeme); ok {
		e.values.Put(name.Lexeme, v)
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, v)
	}
	return &Error{Line: name.Line, Msg: "Undefined variable '" + name.Lexeme + "'."}
}

// GetAt reads name in the frame exactly depth hops up the chain. The binding
// must exist, an invariant maintained by the resolver.
func (e *Environment) GetAt(depth int, name string) Value {
	v, _ := e.ancestor(depth).values.Get(name)
	return v
}

// AssignAt writes v to name in the frame exactly depth hops up the chain.
func (e *Environment) AssignAt(depth int, name token.Token, v Value) {
	e.ancestor(depth).values.Put(name.Lexeme, v)
}

func (e *Environment) ancestor(depth int) *Environment {
	env := e
	for i := 0; i < depth; i++ {
		env = env.enclosing
	}
	return env
}
