// Package parser implements the recursive-descent parser that transforms Lox
// source code into an abstract syntax tree (AST).
package parser

import (
	"context"
	"errors"
	"os"

	"github.com/loxlang/golox/lang/ast"
	"github.com/loxlang/golox/lang/scanner"
	"github.com/loxlang/golox/lang/token"
)

// ParseFiles is a helper function that parses the source files and returns
// the ASTs and any error encountered. The error, if non-nil, is guaranteed to
// be a scanner.ErrorList.
func ParseFiles(ctx context.Context, files ...string) ([]*ast.Chunk, error) {
	if len(files) == 0 {
		return nil, nil
	}

	var p parser
	res := make([]*ast.Chunk, 0, len(files))
	for _, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			p.errors.Add(0, "", err.Error())
			continue
		}

		p.init(b)
		ch := p.parseChunk()
		ch.Name = file
		res = append(res, ch)
	}
	return res, p.errors.Err()
}

// ParseChunk is a helper function that parses a single chunk from a slice of
// bytes and returns the AST and any error encountered. The error, if non-nil,
// is guaranteed to be a scanner.ErrorList.
func ParseChunk(ctx context.Context, filename string, src []byte) (*ast.Chunk, error) {
	var p parser
	p.init(src)
	ch := p.parseChunk()
	ch.Name = filename
	return ch, p.errors.Err()
}

// parser parses source files and generates an AST.
type parser struct {
	scanner scanner.Scanner
	errors  scanner.ErrorList

	// current and previous token
	tok  token.Token
	prev token.Token
}

func (p *parser) init(src []byte) {
	p.scanner.Init(src, func(line int, msg string) {
		p.errors.Add(line, "", msg)
	})

	// advance to first token
	p.tok = p.scanner.Scan()
	p.prev = token.Token{}
}

var errPanicMode = errors.New("panic")

func (p *parser) parseChunk() *ast.Chunk {
	var ch ast.Chunk
	for p.tok.Type != token.EOF {
		if d := p.declaration(); d != nil {
			ch.Stmts = append(ch.Stmts, d)
		}
	}
	ch.EOFLine = p.tok.Line
	return &ch
}

func (p *parser) advance() token.Token {
	p.prev = p.tok
	if p.tok.Type != token.EOF {
		p.tok = p.scanner.Scan()
	}
	return p.prev
}

// match consumes the current token and returns true if it is one of the
// specified types.
func (p *parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.tok.Type == t {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes and returns the current token if it is of the expected
// type, otherwise it reports an error and panics with errPanicMode which gets
// recovered at the declaration level, triggering synchronization.
func (p *parser) expect(typ token.Type, msg string) token.Token {
	if p.tok.Type == typ {
		return p.advance()
	}
	p.errorAt(p.tok, msg)
	panic(errPanicMode)
}

// errorAt reports a parse error at the given token. It does not panic, so
// parsing continues; callers that cannot make progress panic with
// errPanicMode themselves.
func (p *parser) errorAt(tok token.Token, msg string) {
	where := " at end"
	if tok.Type != token.EOF {
		where = " at '" + tok.Lexeme + "'"
	}
	p.errors.Add(tok.Line, where, msg)
}

// synchronize discards tokens after a parse error until the next plausible
// declaration boundary: right past a semicolon, or just before a token that
// begins a top-level construct.
func (p *parser) synchronize() {
	for p.tok.Type != token.EOF {
		switch p.tok.Type {
		case token.CLASS, token.FUN, token.VAR, token.FOR,
			token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
		if p.prev.Type == token.SEMICOLON {
			return
		}
	}
}
