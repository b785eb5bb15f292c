package interp_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/loxlang/golox/lang/interp"
	"github.com/loxlang/golox/lang/parser"
	"github.com/loxlang/golox/lang/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runOut parses, resolves and executes src in a fresh interpreter and
// returns the produced output, requiring that no error occurred.
func runOut(t *testing.T, src string) string {
	t.Helper()

	ctx := context.Background()
	ch, err := parser.ParseChunk(ctx, "", []byte(src))
	require.NoError(t, err)
	depths, err := resolver.ResolveChunk(ctx, ch)
	require.NoError(t, err)

	var buf bytes.Buffer
	it := interp.New()
	it.Stdout = &buf
	require.NoError(t, it.RunChunk(ctx, ch, depths))
	return buf.String()
}

// runErr is like runOut but requires a runtime error and returns it along
// with the output produced before the error.
func runErr(t *testing.T, src string) (string, *interp.Error) {
	t.Helper()

	ctx := context.Background()
	ch, err := parser.ParseChunk(ctx, "", []byte(src))
	require.NoError(t, err)
	depths, err := resolver.ResolveChunk(ctx, ch)
	require.NoError(t, err)

	var buf bytes.Buffer
	it := interp.New()
	it.Stdout = &buf
	err = it.RunChunk(ctx, ch, depths)
	require.Error(t, err)
	rerr, ok := err.(*interp.Error)
	require.True(t, ok, "error is not a runtime *interp.Error: %v", err)
	return buf.String(), rerr
}

func TestArithmetic(t *testing.T) {
	assert.Equal(t, "3\n", runOut(t, "print 1 + 2;"))
	assert.Equal(t, "2.5\n", runOut(t, "print 5 / 2;"))
	assert.Equal(t, "-6\n", runOut(t, "print -2 * 3;"))
	assert.Equal(t, "1\n", runOut(t, "print 3 - 2;"))
}

func TestNumberFormatting(t *testing.T) {
	// trailing .0 is stripped from whole values
	assert.Equal(t, "3\n", runOut(t, "print 3.0;"))
	assert.Equal(t, "0.5\n", runOut(t, "print 0.5;"))
	assert.Equal(t, "100\n", runOut(t, "print 99.5 + 0.5;"))
}

func TestStringConcat(t *testing.T) {
	assert.Equal(t, "hello, world\n", runOut(t, `print "hello, " + "world";`))
}

func TestComparisons(t *testing.T) {
	assert.Equal(t, "true\n", runOut(t, "print 1 < 2;"))
	assert.Equal(t, "true\n", runOut(t, "print 2 <= 2;"))
	assert.Equal(t, "false\n", runOut(t, "print 1 > 2;"))
	assert.Equal(t, "true\n", runOut(t, "print 2 >= 2;"))
}

func TestEquality(t *testing.T) {
	assert.Equal(t, "true\n", runOut(t, "print nil == nil;"))
	assert.Equal(t, "true\n", runOut(t, `print "a" == "a";`))
	assert.Equal(t, "false\n", runOut(t, `print "a" == "b";`))
	// cross-variant equality is false, never an error
	assert.Equal(t, "false\n", runOut(t, `print 1 == "1";`))
	assert.Equal(t, "false\n", runOut(t, "print nil == false;"))
	assert.Equal(t, "true\n", runOut(t, `print 1 != "1";`))
}

func TestTruthiness(t *testing.T) {
	// only nil and false are falsy, 0 and "" are truthy
	assert.Equal(t, "yes\n", runOut(t, `if (0) print "yes"; else print "no";`))
	assert.Equal(t, "yes\n", runOut(t, `if ("") print "yes"; else print "no";`))
	assert.Equal(t, "no\n", runOut(t, `if (nil) print "yes"; else print "no";`))
	assert.Equal(t, "no\n", runOut(t, `if (false) print "yes"; else print "no";`))
}

func TestLogicalReturnsOperand(t *testing.T) {
	assert.Equal(t, "hi\n", runOut(t, `print "hi" or 2;`))
	assert.Equal(t, "yes\n", runOut(t, `print nil or "yes";`))
	assert.Equal(t, "nil\n", runOut(t, `print nil and "unreached";`))
	assert.Equal(t, "2\n", runOut(t, `print 1 and 2;`))
}

func TestLogicalShortCircuit(t *testing.T) {
	// the right operand of a short-circuited operator is not evaluated
	assert.Equal(t, "true\n", runOut(t, `
fun boom() { return missing; }
print true or boom();`))
}

func TestVarAndAssign(t *testing.T) {
	assert.Equal(t, "2\n", runOut(t, "var a = 1; a = 2; print a;"))
	assert.Equal(t, "nil\n", runOut(t, "var a; print a;"))
	// assignment is an expression yielding the assigned value
	assert.Equal(t, "3\n3\n", runOut(t, "var a = 1; print a = 3; print a;"))
}

func TestBlockScoping(t *testing.T) {
	assert.Equal(t, "inner\nouter\n", runOut(t, `
var a = "outer";
{
  var a = "inner";
  print a;
}
print a;`))
}

func TestWhileLoop(t *testing.T) {
	assert.Equal(t, "0\n1\n2\n", runOut(t, `
var i = 0;
while (i < 3) {
  print i;
  i = i + 1;
}`))
}

func TestForLoop(t *testing.T) {
	assert.Equal(t, "0\n1\n2\n", runOut(t, "for (var i = 0; i < 3; i = i + 1) print i;"))
}

func TestFunctionsAndReturn(t *testing.T) {
	assert.Equal(t, "3\n", runOut(t, `
fun add(a, b) { return a + b; }
print add(1, 2);`))

	// falling off the end returns nil
	assert.Equal(t, "nil\n", runOut(t, "fun f() {} print f();"))

	assert.Equal(t, "<fn add>\n", runOut(t, "fun add(a, b) { return a + b; } print add;"))
}

func TestRecursion(t *testing.T) {
	assert.Equal(t, "13\n", runOut(t, `
fun fib(n) {
  if (n < 2) return n;
  return fib(n - 1) + fib(n - 2);
}
print fib(7);`))
}

func TestMutualRecursionLateBinding(t *testing.T) {
	// global references resolve at use time, so mutually recursive top-level
	// functions need no forward declarations
	assert.Equal(t, "true\n", runOut(t, `
fun isEven(n) {
  if (n == 0) return true;
  return isOdd(n - 1);
}
fun isOdd(n) {
  if (n == 0) return false;
  return isEven(n - 1);
}
print isEven(4);`))
}

func TestClosureCounter(t *testing.T) {
	assert.Equal(t, "1\n2\n", runOut(t, `
fun counter() {
  var n = 0;
  fun tick() {
    n = n + 1;
    return n;
  }
  return tick;
}
var tick = counter();
print tick();
print tick();`))
}

func TestClosureCapturesDefinitionScope(t *testing.T) {
	assert.Equal(t, "global\n", runOut(t, `
var a = "global";
{
  fun show() { print a; }
  var a = "local";
  show();
}`))
}

func TestClassInstantiation(t *testing.T) {
	assert.Equal(t, "<Foo instance>\n", runOut(t, "class Foo {} print Foo();"))
	assert.Equal(t, "<class Foo>\n", runOut(t, "class Foo {} print Foo;"))
}

func TestFieldsAndMethods(t *testing.T) {
	assert.Equal(t, "3\n", runOut(t, `
class Point {
  init(x, y) {
    this.x = x;
    this.y = y;
  }
  sum() { return this.x + this.y; }
}
print Point(1, 2).sum();`))
}

func TestFieldShadowsMethod(t *testing.T) {
	assert.Equal(t, "field\n", runOut(t, `
class C {
  m() { return "method"; }
}
var c = C();
c.m = "field";
print c.m;`))
}

func TestBoundMethodRetainsReceiver(t *testing.T) {
	assert.Equal(t, "1\n", runOut(t, `
class C {
  init() { this.x = 1; }
  getX() { return this.x; }
}
var m = C().getX;
print m();`))
}

func TestInheritance(t *testing.T) {
	assert.Equal(t, "Fry until golden.\n", runOut(t, `
class Doughnut {
  cook() { print "Fry until golden."; }
}
class BostonCream < Doughnut {}
BostonCream().cook();`))
}

func TestSuperCall(t *testing.T) {
	assert.Equal(t, "Fry until golden.\nPipe full of custard and coat with chocolate.\n", runOut(t, `
class Doughnut {
  cook() { print "Fry until golden."; }
}
class BostonCream < Doughnut {
  cook() {
    super.cook();
    print "Pipe full of custard and coat with chocolate.";
  }
}
BostonCream().cook();`))
}

func TestSuperResolvesPastReceiverClass(t *testing.T) {
	// super binds to the declaring class's superclass, not the receiver's
	assert.Equal(t, "A method\n", runOut(t, `
class A {
  method() { print "A method"; }
}
class B < A {
  method() { print "B method"; }
  test() { super.method(); }
}
class C < B {}
C().test();`))
}

func TestInitReturnsInstance(t *testing.T) {
	// bare return in init yields the instance
	assert.Equal(t, "<Foo instance>\n", runOut(t, `
class Foo { init() { return; } }
print Foo();`))

	// and so does calling init again explicitly
	assert.Equal(t, "<Foo instance>\n", runOut(t, `
class Foo { init() {} }
var f = Foo();
print f.init();`))
}

func TestClock(t *testing.T) {
	assert.Equal(t, "<native fn>\n", runOut(t, "print clock;"))
	assert.Equal(t, "true\n", runOut(t, "print clock() > 0;"))
}

func TestRuntimeErrorMessages(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"add mismatch", `print "a" + 1;`, "Operands must be two numbers or two strings.\n[line 1]"},
		{"number and string", `print 1 + "a";`, "Operands must be two numbers or two strings.\n[line 1]"},
		{"compare mismatch", `print 1 < "a";`, "Operands must be numbers.\n[line 1]"},
		{"unary mismatch", `print -"a";`, "Operand must be a number.\n[line 1]"},
		{"undefined variable", "print b;", "Undefined variable 'b'.\n[line 1]"},
		{"undefined assign", "b = 2;", "Undefined variable 'b'.\n[line 1]"},
		{"call non-callable", `"not a fn"();`, "Can only call functions and classes.\n[line 1]"},
		{"arity", "fun f(a) {} f(1, 2);", "Expected 1 arguments but got 2.\n[line 1]"},
		{"undefined property", "class C {} C().missing;", "Undefined property 'missing'.\n[line 1]"},
		{"property on non-instance", "true.x;", "Only instances have properties.\n[line 1]"},
		{"field on non-instance", `"str".x = 1;`, "Only instances have fields.\n[line 1]"},
		{"superclass not a class", `var NotAClass = "str"; class C < NotAClass {}`, "Superclass must be a class.\n[line 1]"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := runErr(t, c.src)
			require.Equal(t, c.want, err.Error())
		})
	}
}

func TestRuntimeErrorAbandonsStatements(t *testing.T) {
	out, err := runErr(t, "print 1; print x; print 2;")
	require.Equal(t, "1\n", out)
	require.Equal(t, "Undefined variable 'x'.\n[line 1]", err.Error())
}

func TestEqualityNeverRaises(t *testing.T) {
	assert.Equal(t, "false\n", runOut(t, `print clock == 1;`))
	assert.Equal(t, "true\n", runOut(t, `class C {} print C == C;`))
	assert.Equal(t, "false\n", runOut(t, `class C {} print C() == C();`))
	assert.Equal(t, "true\n", runOut(t, `class C {} var c = C(); print c == c;`))
}

func TestReplStyleChunks(t *testing.T) {
	// closures from an earlier chunk keep resolving in later ones, as in the
	// REPL where the depth tables are merged
	ctx := context.Background()
	var buf bytes.Buffer
	it := interp.New()
	it.Stdout = &buf

	for _, src := range []string{
		"fun counter() { var n = 0; fun tick() { n = n + 1; return n; } return tick; }",
		"var tick = counter();",
		"print tick();",
		"print tick();",
	} {
		ch, err := parser.ParseChunk(ctx, "", []byte(src))
		require.NoError(t, err)
		depths, err := resolver.ResolveChunk(ctx, ch)
		require.NoError(t, err)
		require.NoError(t, it.RunChunk(ctx, ch, depths))
	}
	require.Equal(t, "1\n2\n", buf.String())
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch, err := parser.ParseChunk(context.Background(), "", []byte("print 1;"))
	require.NoError(t, err)
	depths, err := resolver.ResolveChunk(context.Background(), ch)
	require.NoError(t, err)

	var buf bytes.Buffer
	it := interp.New()
	it.Stdout = &buf
	err = it.RunChunk(ctx, ch, depths)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, buf.String())
}
