// Package ast defines the types to represent the abstract syntax tree (AST)
// of a Lox program.
//
// Every node is a pointer and the identity of a node is its pointer identity.
// The resolver relies on this to record a distinct binding depth per
// variable-referencing node, so two structurally equal expressions are never
// collapsed into one.
package ast

import (
	"fmt"
	"sort"
	"strings"
)

// Node represents any node in the AST.
type Node interface {
	// Every Node implements the fmt.Formatter interface so they can print a
	// description of themselves. The only supported verbs are 'v' and 's'.
	// The '#' flag can be used to print count information about children
	// nodes.
	fmt.Formatter

	// Walk enters each node inside itself to implement the Visitor pattern.
	Walk(v Visitor)
}

// Expr represents an expression in the AST.
type Expr interface {
	Node
	expr()
}

// Stmt represents a statement in the AST.
type Stmt interface {
	Node
	stmt()
}

// Chunk represents the parse result of a single source unit (a file or a
// REPL line): a list of declarations. EOFLine records the line of the EOF
// marker, which is useful for empty sources.
type Chunk struct {
	// Name is the filename, which may be empty if the chunk is not a file.
	Name    string
	Stmts   []Stmt
	EOFLine int
}

func (n *Chunk) Format(f fmt.State, verb rune) {
	format(f, verb, n, "chunk", map[string]int{"stmts": len(n.Stmts)})
}
func (n *Chunk) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}

func format(f fmt.State, verb rune, n Node, label string, counts map[string]int) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(%T)", verb, n)
		return
	}

	if w, ok := f.Width(); ok {
		minus, plus := f.Flag('-'), f.Flag('+')
		runes := []rune(label)
		if len(runes) >= w {
			runes = runes[:w]
		} else if minus {
			runes = append(runes, []rune(strings.Repeat(" ", w-len(runes)))...)
		} else if !plus {
			runes = append([]rune(strings.Repeat(" ", w-len(runes))), runes...)
		}
		label = string(runes)
	}

	fmt.Fprint(f, label)
	if f.Flag('#') && len(counts) > 0 {
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprint(f, " {")
		for i, k := range keys {
			if i > 0 {
				fmt.Fprint(f, ", ")
			}
			fmt.Fprintf(f, "%s=%d", k, counts[k])
		}
		fmt.Fprint(f, "}")
	}
}
