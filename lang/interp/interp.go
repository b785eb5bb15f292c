// Package interp implements the tree-walking evaluator for Lox. It executes
// the statement forest produced by the parser, using the resolver's
// binding-depth table to reach local bindings at precise depths in the
// lexical environment chain, and falling back to the global environment
// otherwise.
package interp

import (
	"context"
	"io"
	"os"

	"github.com/loxlang/golox/lang/ast"
	"github.com/loxlang/golox/lang/resolver"
)

// Interp is a single-threaded Lox interpreter. The zero value is not ready
// to use, call New.
type Interp struct {
	// Stdout is the standard output of the interpreted program (the print
	// statement). If nil, os.Stdout is used.
	Stdout io.Writer

	globals *Environment
	env     *Environment
	depths  resolver.Depths

	stdout io.Writer
}

// New returns an interpreter with fresh globals populated from the
// Universe.
func New() *Interp {
	globals := NewEnvironment(nil)
	for name, v := range Universe {
		globals.Define(name, v)
	}
	return &Interp{
		globals: globals,
		env:     globals,
		depths:  make(resolver.Depths),
	}
}

// Globals returns the interpreter's global environment.
func (it *Interp) Globals() *Environment { return it.globals }

// RunChunk executes the statements of ch. The depths table from the
// resolver is merged into the interpreter's own, so that closures created by
// earlier chunks (e.g. previous REPL lines) keep resolving. A returned
// non-nil error is either an *Error runtime error, which abandons the
// remainder of the statement list, or the context's error if ctx was
// cancelled.
func (it *Interp) RunChunk(ctx context.Context, ch *ast.Chunk, depths resolver.Depths) error {
	it.init()
	for k, v := range depths {
		it.depths[k] = v
	}

	for _, s := range ch.Stmts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := it.exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interp) init() {
	if it.Stdout != nil {
		it.stdout = it.Stdout
	} else {
		it.stdout = os.Stdout
	}
}

func (it *Interp) exec(stmt ast.Stmt) error {
	switch stmt := stmt.(type) {
	case *ast.BlockStmt:
		return it.execBlock(stmt.Stmts, NewEnvironment(it.env))

	case *ast.ClassStmt:
		return it.execClass(stmt)

	case *ast.ExprStmt:
		_, err := it.eval(stmt.Expr)
		return err

	case *ast.FuncStmt:
		fn := &Function{decl: stmt, closure: it.env}
		it.env.Define(stmt.Name.Lexeme, fn)
		return nil

	case *ast.IfStmt:
		cond, err := it.eval(stmt.Cond)
		if err != nil {
			return err
		}
		if Truth(cond) {
			return it.exec(stmt.Then)
		}
		if stmt.Else != nil {
			return it.exec(stmt.Else)
		}
		return nil

	case *ast.PrintStmt:
		v, err := it.eval(stmt.Expr)
		if err != nil {
			return err
		}
		_, err = io.WriteString(it.stdout, v.String()+"\n")
		return err

	case *ast.ReturnStmt:
		var value Value = Nil
		if stmt.Value != nil {
			v, err := it.eval(stmt.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return &returnSignal{value: value}

	case *ast.VarStmt:
		var value Value = Nil
		if stmt.Init != nil {
			v, err := it.eval(stmt.Init)
			if err != nil {
				return err
			}
			value = v
		}
		it.env.Define(stmt.Name.Lexeme, value)
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := it.eval(stmt.Cond)
			if err != nil {
				return err
			}
			if !Truth(cond) {
				return nil
			}
			if err := it.exec(stmt.Body); err != nil {
				return err
			}
		}
	}
	return nil
}

// execBlock executes stmts in env, saving and restoring the current
// environment frame around the execution.
func (it *Interp) execBlock(stmts []ast.Stmt, env *Environment) error {
	saved := it.env
	it.env = env
	defer func() { it.env = saved }()

	for _, s := range stmts {
		if err := it.exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interp) execClass(stmt *ast.ClassStmt) error {
	var superclass *Class
	if stmt.Superclass != nil {
		sup, err := it.eval(stmt.Superclass)
		if err != nil {
			return err
		}
		var ok bool
		if superclass, ok = sup.(*Class); !ok {
			return &Error{Line: stmt.Superclass.Name.Line, Msg: "Superclass must be a class."}
		}
	}

	// the class name is declared before the methods are built so that the
	// methods can refer to the class by name
	it.env.Define(stmt.Name.Lexeme, Nil)

	env := it.env
	if superclass != nil {
		env = NewEnvironment(env)
		env.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(stmt.Methods))
	for _, m := range stmt.Methods {
		methods[m.Name.Lexeme] = &Function{
			decl:          m,
			closure:       env,
			isInitializer: m.Name.Lexeme == "init",
		}
	}

	class := &Class{Name: stmt.Name.Lexeme, Superclass: superclass, Methods: methods}
	return it.env.Assign(stmt.Name, class)
}
