package resolver

import "github.com/loxlang/golox/lang/ast"

// Depths is the binding-depth table produced by the resolver. It maps a
// variable-referencing expression node (IdentExpr, AssignExpr, ThisExpr or
// SuperExpr) to the number of enclosing environments the evaluator must
// ascend to reach the binding. The table is keyed on node identity, so two
// structurally equal references get distinct entries. Absence of a node from
// the table means the reference targets the global environment, which is
// resolved late, at lookup time.
type Depths map[ast.Expr]int

// FuncKind tracks the kind of function body being resolved, to validate
// return statements.
type FuncKind uint8

// List of function kinds.
const (
	FuncNone FuncKind = iota
	FuncFunction
	FuncInitializer
	FuncMethod
)

// ClassKind tracks the kind of class body being resolved, to validate 'this'
// and 'super' expressions.
type ClassKind uint8

// List of class kinds.
const (
	ClassNone ClassKind = iota
	ClassClass
	ClassSubclass
)
