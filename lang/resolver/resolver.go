// Package resolver implements the static lexical-scope analyzer that takes a
// parsed abstract syntax tree and pre-computes the binding depth of each
// variable reference.
//
// # Scopes
//
// Each function body, block and class body pushes a scope (plus an extra
// surrounding scope binding 'super' when a superclass is present). The global
// scope is implicit and never on the stack: names that resolve to no scope
// are left out of the depth table and resolved in the global environment at
// lookup time. This late binding of globals is deliberate, it allows mutually
// recursive top-level functions without forward declarations.
//
// # Declare vs define
//
// A name is declared when its statement is entered and defined once its
// initializer has been resolved. Reading a name that is declared but not yet
// defined in the innermost scope is the self-referential-initializer error.
//
// The resolver also enforces the other static rules: no 'this' or 'super'
// outside a class, no 'return' at top level, no value-carrying 'return'
// inside an initializer, no duplicate declaration in the same local scope,
// and no class inheriting from itself. All errors are reported to the list
// and none stops the walk.
package resolver

import (
	"context"

	"github.com/loxlang/golox/lang/ast"
	"github.com/loxlang/golox/lang/scanner"
	"github.com/loxlang/golox/lang/token"
)

// ResolveChunks resolves the chunks and returns the combined binding-depth
// table. The returned error, if non-nil, is guaranteed to be a
// scanner.ErrorList. An AST that resulted in errors in the parse phase should
// never be passed to the resolver, the behavior is undefined.
func ResolveChunks(ctx context.Context, chunks ...*ast.Chunk) (Depths, error) {
	r := resolver{depths: make(Depths)}
	for _, ch := range chunks {
		for _, s := range ch.Stmts {
			r.stmt(s)
		}
	}
	return r.depths, r.errors.Err()
}

// ResolveChunk is like ResolveChunks for a single chunk.
func ResolveChunk(ctx context.Context, ch *ast.Chunk) (Depths, error) {
	return ResolveChunks(ctx, ch)
}

type resolver struct {
	depths Depths
	errors scanner.ErrorList

	// scopes is the stack of lexical block scopes, innermost last. Each scope
	// maps a name to whether it is fully defined (false = declared only).
	scopes []map[string]bool

	currentFunc  FuncKind
	currentClass ClassKind
}

func (r *resolver) errorAt(tok token.Token, msg string) {
	where := " at end"
	if tok.Type != token.EOF {
		where = " at '" + tok.Lexeme + "'"
	}
	r.errors.Add(tok.Line, where, msg)
}

func (r *resolver) push() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *resolver) pop() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare inserts name into the innermost scope, not yet defined. At global
// scope (empty stack) this is a no-op: global re-declarations are permitted.
func (r *resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.errorAt(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal walks the scope stack from innermost outward and, on the
// first scope containing name, records the hop count for the referencing
// node. If no scope contains the name the table is left unchanged and the
// evaluator treats the reference as global.
func (r *resolver) resolveLocal(e ast.Expr, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.depths[e] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *resolver) stmt(stmt ast.Stmt) {
	switch stmt := stmt.(type) {
	case *ast.BlockStmt:
		r.push()
		for _, s := range stmt.Stmts {
			r.stmt(s)
		}
		r.pop()

	case *ast.ClassStmt:
		enclosing := r.currentClass
		r.currentClass = ClassClass

		r.declare(stmt.Name)
		r.define(stmt.Name)

		if stmt.Superclass != nil {
			if stmt.Superclass.Name.Lexeme == stmt.Name.Lexeme {
				r.errorAt(stmt.Superclass.Name, "A class can't inherit from itself.")
			}
			r.currentClass = ClassSubclass
			r.expr(stmt.Superclass)

			r.push()
			r.scopes[len(r.scopes)-1]["super"] = true
		}

		r.push()
		r.scopes[len(r.scopes)-1]["this"] = true

		for _, m := range stmt.Methods {
			kind := FuncMethod
			if m.Name.Lexeme == "init" {
				kind = FuncInitializer
			}
			r.function(m, kind)
		}

		r.pop()
		if stmt.Superclass != nil {
			r.pop()
		}
		r.currentClass = enclosing

	case *ast.ExprStmt:
		r.expr(stmt.Expr)

	case *ast.FuncStmt:
		r.declare(stmt.Name)
		r.define(stmt.Name)
		r.function(stmt, FuncFunction)

	case *ast.IfStmt:
		r.expr(stmt.Cond)
		r.stmt(stmt.Then)
		if stmt.Else != nil {
			r.stmt(stmt.Else)
		}

	case *ast.PrintStmt:
		r.expr(stmt.Expr)

	case *ast.ReturnStmt:
		if r.currentFunc == FuncNone {
			r.errorAt(stmt.Keyword, "Can't return from top-level code.")
		}
		if stmt.Value != nil {
			if r.currentFunc == FuncInitializer {
				r.errorAt(stmt.Keyword, "Can't return a value from an initializer.")
			}
			r.expr(stmt.Value)
		}

	case *ast.VarStmt:
		r.declare(stmt.Name)
		if stmt.Init != nil {
			r.expr(stmt.Init)
		}
		r.define(stmt.Name)

	case *ast.WhileStmt:
		r.expr(stmt.Cond)
		r.stmt(stmt.Body)
	}
}

func (r *resolver) function(fn *ast.FuncStmt, kind FuncKind) {
	enclosing := r.currentFunc
	r.currentFunc = kind

	r.push()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	for _, s := range fn.Body {
		r.stmt(s)
	}
	r.pop()

	r.currentFunc = enclosing
}

func (r *resolver) expr(expr ast.Expr) {
	switch expr := expr.(type) {
	case *ast.AssignExpr:
		r.expr(expr.Value)
		r.resolveLocal(expr, expr.Name.Lexeme)

	case *ast.BinOpExpr:
		r.expr(expr.Left)
		r.expr(expr.Right)

	case *ast.CallExpr:
		r.expr(expr.Callee)
		for _, e := range expr.Args {
			r.expr(e)
		}

	case *ast.DotExpr:
		// only the object is resolved, the property name is a runtime lookup
		r.expr(expr.Left)

	case *ast.IdentExpr:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][expr.Name.Lexeme]; ok && !defined {
				r.errorAt(expr.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(expr, expr.Name.Lexeme)

	case *ast.LiteralExpr:
		// nothing to do

	case *ast.LogicalExpr:
		r.expr(expr.Left)
		r.expr(expr.Right)

	case *ast.ParenExpr:
		r.expr(expr.Expr)

	case *ast.SetExpr:
		r.expr(expr.Value)
		r.expr(expr.Left)

	case *ast.SuperExpr:
		switch r.currentClass {
		case ClassNone:
			r.errorAt(expr.Keyword, "Can't use 'super' outside of a class.")
		case ClassClass:
			r.errorAt(expr.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(expr, "super")

	case *ast.ThisExpr:
		if r.currentClass == ClassNone {
			r.errorAt(expr.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(expr, "this")

	case *ast.UnaryOpExpr:
		r.expr(expr.Right)
	}
}
