package interp

import "time"

// Universe defines the set of built-ins available to every Lox program. It
// is copied into the globals of each new interpreter, so mutating a global
// in one program never affects another. This should not be modified.
var Universe = map[string]Value{
	"clock": NewBuiltin("clock", 0, func(it *Interp, args []Value) (Value, error) {
		return Float(float64(time.Now().UnixNano()) / 1e9), nil
	}),
}
