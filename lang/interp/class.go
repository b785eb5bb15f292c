package interp

import (
	"github.com/dolthub/swiss"
	"github.com/loxlang/golox/lang/token"
)

// A Class is the runtime value of a class declaration: a name, an optional
// superclass and a method table. A class is callable, calling it allocates
// an instance and runs the init method if there is one.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

var (
	_ Value    = (*Class)(nil)
	_ Callable = (*Class)(nil)
)

func (c *Class) String() string { return "<class " + c.Name + ">" }
func (c *Class) Type() string   { return "class" }

// Arity of the class as a callable is the arity of its init method if any,
// else 0.
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// CallInternal allocates a new instance and, if an init method exists, binds
// and invokes it with the call arguments.
func (c *Class) CallInternal(it *Interp, args []Value) (Value, error) {
	inst := &Instance{
		class:  c,
		fields: swiss.NewMap[string, Value](8),
	}
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(inst).CallInternal(it, args); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// FindMethod looks up name on the class and then up the superclass chain.
func (c *Class) FindMethod(name string) *Function {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// An Instance is a bag of fields attached to a class. Fields are created on
// first assignment and shadow methods of the same name on reads.
type Instance struct {
	class  *Class
	fields *swiss.Map[string, Value]
}

var _ Value = (*Instance)(nil)

func (i *Instance) String() string { return "<" + i.class.Name + " instance>" }
func (i *Instance) Type() string   { return "instance" }

// Get reads a property: a field if present, otherwise a method of the class
// chain bound to this receiver. Absence is the undefined-property runtime
// error.
func (i *Instance) Get(name token.Token) (Value, error) {
	if v, ok := i.fields.Get(name.Lexeme); ok {
		return v, nil
	}
	if m := i.class.FindMethod(name.Lexeme); m != nil {
		return m.Bind(i), nil
	}
	return nil, &Error{Line: name.Line, Msg: "Undefined property '" + name.Lexeme + "'."}
}

// Set writes a field, inserting or overwriting.
func (i *Instance) Set(name token.Token, v Value) {
	i.fields.Put(name.Lexeme, v)
}
