package resolver_test

import (
	"context"
	"testing"

	"github.com/loxlang/golox/lang/ast"
	"github.com/loxlang/golox/lang/parser"
	"github.com/loxlang/golox/lang/resolver"
	"github.com/loxlang/golox/lang/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, src string) (*ast.Chunk, resolver.Depths, scanner.ErrorList) {
	t.Helper()

	ctx := context.Background()
	ch, err := parser.ParseChunk(ctx, "", []byte(src))
	require.NoError(t, err)

	depths, err := resolver.ResolveChunk(ctx, ch)
	if err == nil {
		return ch, depths, nil
	}
	list, ok := err.(scanner.ErrorList)
	require.True(t, ok, "error is not a scanner.ErrorList: %v", err)
	return ch, depths, list
}

func errMsgs(errs scanner.ErrorList) []string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Msg
	}
	return msgs
}

func TestResolveClosureCapturesDefinitionScope(t *testing.T) {
	ch, depths, errs := resolve(t, `
var a = "global";
{
  fun show() { print a; }
  var a = "local";
  show();
}`)
	require.Nil(t, errs.Err())

	block := ch.Stmts[1].(*ast.BlockStmt)
	show := block.Stmts[0].(*ast.FuncStmt)

	// 'a' inside show resolves to no scope on the stack: it targets the
	// global, not the later local of the same name
	aRef := show.Body[0].(*ast.PrintStmt).Expr.(*ast.IdentExpr)
	_, ok := depths[aRef]
	require.False(t, ok)

	// the call to show finds the function one scope in, at depth 0
	call := block.Stmts[2].(*ast.ExprStmt).Expr.(*ast.CallExpr)
	showRef := call.Callee.(*ast.IdentExpr)
	require.Equal(t, 0, depths[showRef])
}

func TestResolveNestedFunctionDepths(t *testing.T) {
	ch, depths, errs := resolve(t, `
fun outer() {
  var x = 1;
  fun inner() { print x; }
  inner();
}`)
	require.Nil(t, errs.Err())

	outer := ch.Stmts[0].(*ast.FuncStmt)
	inner := outer.Body[1].(*ast.FuncStmt)

	xRef := inner.Body[0].(*ast.PrintStmt).Expr.(*ast.IdentExpr)
	require.Equal(t, 1, depths[xRef])

	call := outer.Body[2].(*ast.ExprStmt).Expr.(*ast.CallExpr)
	require.Equal(t, 0, depths[call.Callee.(*ast.IdentExpr)])
}

func TestResolveThisAndSuperDepths(t *testing.T) {
	ch, depths, errs := resolve(t, `
class A { m() {} }
class B < A {
  m() {
    super.m();
    print this;
  }
}`)
	require.Nil(t, errs.Err())

	b := ch.Stmts[1].(*ast.ClassStmt)
	m := b.Methods[0]

	// from a method body: this scope is one out, super scope one further
	sup := m.Body[0].(*ast.ExprStmt).Expr.(*ast.CallExpr).Callee.(*ast.SuperExpr)
	require.Equal(t, 2, depths[sup])

	this := m.Body[1].(*ast.PrintStmt).Expr.(*ast.ThisExpr)
	require.Equal(t, 1, depths[this])
}

func TestResolveAssignDepth(t *testing.T) {
	ch, depths, errs := resolve(t, "{ var a = 1; { a = 2; } }")
	require.Nil(t, errs.Err())

	outer := ch.Stmts[0].(*ast.BlockStmt)
	inner := outer.Stmts[1].(*ast.BlockStmt)
	assign := inner.Stmts[0].(*ast.ExprStmt).Expr.(*ast.AssignExpr)
	require.Equal(t, 1, depths[assign])
}

func TestResolveGlobalAssignNotInTable(t *testing.T) {
	ch, depths, errs := resolve(t, "var a = 1; a = 2;")
	require.Nil(t, errs.Err())

	assign := ch.Stmts[1].(*ast.ExprStmt).Expr.(*ast.AssignExpr)
	_, ok := depths[assign]
	require.False(t, ok)
}

func TestResolveIdempotent(t *testing.T) {
	ctx := context.Background()
	ch, err := parser.ParseChunk(ctx, "", []byte(`
fun counter() {
  var n = 0;
  fun tick() { n = n + 1; return n; }
  return tick;
}`))
	require.NoError(t, err)

	d1, err := resolver.ResolveChunk(ctx, ch)
	require.NoError(t, err)
	d2, err := resolver.ResolveChunk(ctx, ch)
	require.NoError(t, err)
	require.Equal(t, d1, d2)
	require.NotEmpty(t, d1)
}

func TestResolveReturnAtTopLevel(t *testing.T) {
	_, _, errs := resolve(t, "return 1;")
	require.Len(t, errs, 1)
	assert.Equal(t, "[line 1] Error at 'return': Can't return from top-level code.", errs[0].Error())
}

func TestResolveReturnValueInInitializer(t *testing.T) {
	_, _, errs := resolve(t, `
fun bad() { return 1; }
class X { init() { return 1; } }`)
	require.Equal(t, []string{"Can't return a value from an initializer."}, errMsgs(errs))
}

func TestResolveBareReturnInInitializer(t *testing.T) {
	_, _, errs := resolve(t, "class X { init() { return; } }")
	require.Nil(t, errs.Err())
}

func TestResolveThisOutsideClass(t *testing.T) {
	_, _, errs := resolve(t, "print this;")
	require.Equal(t, []string{"Can't use 'this' outside of a class."}, errMsgs(errs))

	_, _, errs = resolve(t, "fun f() { return this; }")
	require.Equal(t, []string{"Can't use 'this' outside of a class."}, errMsgs(errs))
}

func TestResolveSuperErrors(t *testing.T) {
	_, _, errs := resolve(t, "print super.x;")
	require.Equal(t, []string{"Can't use 'super' outside of a class."}, errMsgs(errs))

	_, _, errs = resolve(t, "class A { m() { super.m(); } }")
	require.Equal(t, []string{"Can't use 'super' in a class with no superclass."}, errMsgs(errs))
}

func TestResolveSelfInheritance(t *testing.T) {
	_, _, errs := resolve(t, "class A < A {}")
	require.Equal(t, []string{"A class can't inherit from itself."}, errMsgs(errs))
}

func TestResolveDuplicateLocal(t *testing.T) {
	_, _, errs := resolve(t, "{ var a = 1; var a = 2; }")
	require.Equal(t, []string{"Already a variable with this name in this scope."}, errMsgs(errs))

	// duplicate parameters collide too
	_, _, errs = resolve(t, "fun f(a, a) {}")
	require.Equal(t, []string{"Already a variable with this name in this scope."}, errMsgs(errs))
}

func TestResolveGlobalRedeclaration(t *testing.T) {
	// re-declaring at global scope is permitted
	_, _, errs := resolve(t, "var a = 1; var a = 2;")
	require.Nil(t, errs.Err())
}

func TestResolveSelfReferentialInitializer(t *testing.T) {
	_, _, errs := resolve(t, "fun f() { var a = a; }")
	require.Equal(t, []string{"Can't read local variable in its own initializer."}, errMsgs(errs))
}

func TestResolveErrorsAreNotFatal(t *testing.T) {
	// multiple independent static errors are all reported in one pass
	_, _, errs := resolve(t, `
return 1;
print this;
{ var a = 1; var a = 2; }`)
	require.Equal(t, []string{
		"Can't return from top-level code.",
		"Can't use 'this' outside of a class.",
		"Already a variable with this name in this scope.",
	}, errMsgs(errs))
}
