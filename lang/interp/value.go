package interp

import "strconv"

// Value is the interface implemented by any value manipulated by the
// interpreter.
type Value interface {
	// String returns the string representation of the value, as produced by
	// the print statement.
	String() string

	// Type returns a short string describing the value's type.
	Type() string
}

// A Callable value f may be the operand of a function call, f(x). Clients
// should use the Call function, never the CallInternal method, so that
// callability and arity are enforced in one place.
type Callable interface {
	Value
	Arity() int
	CallInternal(it *Interp, args []Value) (Value, error)
}

// NilType is the type of nil. Its only legal value is Nil. (We represent it
// as a number, not struct{}, so that Nil may be constant.)
type NilType byte

// Nil is the sole value of NilType.
const Nil = NilType(0)

var _ Value = Nil

func (NilType) String() string { return "nil" }
func (NilType) Type() string   { return "nil" }

// Bool is the type of boolean values.
type Bool bool

// True and False are the two values of type Bool.
const (
	True  Bool = true
	False Bool = false
)

var _ Value = False

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (b Bool) Type() string { return "bool" }

// Float is the type of numbers, a 64-bit float.
type Float float64

var _ Value = Float(0)

// String formats the number with the shortest representation that round
// trips, which strips the trailing .0 from whole values (3.0 prints as 3).
func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}
func (f Float) Type() string { return "number" }

// String is the type of string values. Its String method returns the raw
// contents, unquoted.
type String string

var _ Value = String("")

func (s String) String() string { return string(s) }
func (s String) Type() string   { return "string" }

// Truth returns the truth value of v: nil and false are falsy, every other
// value is truthy, including 0 and the empty string.
func Truth(v Value) bool {
	switch v := v.(type) {
	case NilType:
		return false
	case Bool:
		return bool(v)
	default:
		return true
	}
}

// Equal reports value-level equality of x and y: nil equals nil, values of
// the same variant compare structurally, values of different variants are
// never equal. Functions, classes and instances compare by identity. Equal
// never fails.
func Equal(x, y Value) bool {
	switch x := x.(type) {
	case NilType:
		_, ok := y.(NilType)
		return ok
	case Bool:
		yb, ok := y.(Bool)
		return ok && x == yb
	case Float:
		yf, ok := y.(Float)
		return ok && x == yf
	case String:
		ys, ok := y.(String)
		return ok && x == ys
	default:
		return x == y
	}
}
