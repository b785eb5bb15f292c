package interp

import "fmt"

// Error is a Lox runtime error: a type mismatch, wrong arity, or an
// undefined variable or property. It unwinds evaluation to the top-level run
// call, abandoning the remainder of the statement list.
type Error struct {
	Line int
	Msg  string
}

// Error implements the error interface, formatting the error the way the
// interpreter reports runtime errors.
func (e *Error) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Msg, e.Line)
}

// returnSignal is the non-local control-flow signal that propagates a return
// statement's value up to the function call boundary, where it is consumed.
// It travels the error path for convenience but is not an error: it never
// escapes a call and is kept distinct from the Error type.
type returnSignal struct {
	value Value
}

func (r *returnSignal) Error() string { return "return" }
