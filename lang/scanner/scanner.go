// Package scanner implements the lexical scanner that tokenizes Lox source
// files for the parser to consume.
package scanner

import (
	"strconv"

	"github.com/loxlang/golox/lang/token"
)

// Scanner tokenizes source files for the parser to consume. It makes a
// single pass over the source with at most one character of lookahead.
type Scanner struct {
	// immutable state after Init
	src []byte
	err func(line int, msg string)

	// mutable scanning state
	start int // start offset in bytes of the token being scanned
	cur   int // current reading offset in bytes
	line  int // current 1-based line, incremented on newlines
}

// Init initializes the scanner to tokenize a new source buffer. The errHandler
// is called for each lexical error encountered; scanning always continues
// after an error.
func (s *Scanner) Init(src []byte, errHandler func(line int, msg string)) {
	s.src = src
	s.err = errHandler
	s.start = 0
	s.cur = 0
	s.line = 1
}

// ScanAll scans src to completion and returns the full token sequence. The
// returned slice always ends in exactly one EOF token.
func ScanAll(src []byte, errHandler func(line int, msg string)) []token.Token {
	var s Scanner
	s.Init(src, errHandler)

	var toks []token.Token
	for {
		tok := s.Scan()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func (s *Scanner) atEnd() bool { return s.cur >= len(s.src) }

func (s *Scanner) advance() byte {
	b := s.src[s.cur]
	s.cur++
	return b
}

// peek returns the current byte without advancing the scanner, or 0 at EOF.
func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.cur]
}

// peekNext returns the byte after the current one, or 0 if there is none.
func (s *Scanner) peekNext() byte {
	if s.cur+1 >= len(s.src) {
		return 0
	}
	return s.src[s.cur+1]
}

// advance only if the current byte matches b.
func (s *Scanner) advanceIf(b byte) bool {
	if s.atEnd() || s.src[s.cur] != b {
		return false
	}
	s.cur++
	return true
}

func (s *Scanner) error(line int, msg string) {
	if s.err != nil {
		s.err(line, msg)
	}
}

func (s *Scanner) make(typ token.Type) token.Token {
	return token.Token{
		Type:   typ,
		Lexeme: string(s.src[s.start:s.cur]),
		Line:   s.line,
	}
}

// Scan returns the next token in the source. Once the source is exhausted it
// returns an EOF token with an empty lexeme and the current line, and keeps
// doing so on subsequent calls.
func (s *Scanner) Scan() token.Token {
	for !s.atEnd() {
		s.start = s.cur

		switch c := s.advance(); c {
		case '(':
			return s.make(token.LPAREN)
		case ')':
			return s.make(token.RPAREN)
		case '{':
			return s.make(token.LBRACE)
		case '}':
			return s.make(token.RBRACE)
		case ',':
			return s.make(token.COMMA)
		case '.':
			return s.make(token.DOT)
		case '-':
			return s.make(token.MINUS)
		case '+':
			return s.make(token.PLUS)
		case ';':
			return s.make(token.SEMICOLON)
		case '*':
			return s.make(token.STAR)

		case '!':
			if s.advanceIf('=') {
				return s.make(token.BANGEQ)
			}
			return s.make(token.BANG)
		case '=':
			if s.advanceIf('=') {
				return s.make(token.EQEQ)
			}
			return s.make(token.EQ)
		case '<':
			if s.advanceIf('=') {
				return s.make(token.LE)
			}
			return s.make(token.LT)
		case '>':
			if s.advanceIf('=') {
				return s.make(token.GE)
			}
			return s.make(token.GT)

		case '/':
			if s.advanceIf('/') {
				// comment, consume to end of line but leave the newline so the
				// line count is handled in one place
				for s.peek() != '\n' && !s.atEnd() {
					s.advance()
				}
				continue
			}
			return s.make(token.SLASH)

		case ' ', '\r', '\t':
			continue
		case '\n':
			s.line++
			continue

		case '"':
			tok, ok := s.scanString()
			if !ok {
				continue
			}
			return tok

		default:
			switch {
			case isDigit(c):
				return s.scanNumber()
			case isLetter(c):
				return s.scanIdent()
			default:
				s.error(s.line, "Unexpected character.")
				continue
			}
		}
	}

	s.start = s.cur
	return token.Token{Type: token.EOF, Line: s.line}
}

// scanString scans a double-quoted string literal. Strings may span multiple
// lines and have no escape sequences. Reports an error and returns !ok if the
// string is unterminated.
func (s *Scanner) scanString() (token.Token, bool) {
	for s.peek() != '"' && !s.atEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}

	if s.atEnd() {
		s.error(s.line, "Unterminated string.")
		return token.Token{}, false
	}

	s.advance() // closing quote
	tok := s.make(token.STRING)
	tok.Literal = string(s.src[s.start+1 : s.cur-1])
	return tok, true
}

// scanNumber scans a numeric literal: one or more digits with an optional
// fractional part. A trailing dot does not start a fractional part, it is
// left to be scanned as a DOT token.
func (s *Scanner) scanNumber() token.Token {
	for isDigit(s.peek()) {
		s.advance()
	}

	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance() // the '.'
		for isDigit(s.peek()) {
			s.advance()
		}
	}

	tok := s.make(token.NUMBER)
	// the lexeme is guaranteed to be a valid float at this point
	v, _ := strconv.ParseFloat(tok.Lexeme, 64)
	tok.Literal = v
	return tok
}

func (s *Scanner) scanIdent() token.Token {
	for isLetter(s.peek()) || isDigit(s.peek()) {
		s.advance()
	}

	tok := s.make(token.IDENT)
	tok.Type = token.LookupKw(tok.Lexeme)
	return tok
}

// only ASCII letters and digits participate in identifiers and numbers, the
// rest of the source is treated as opaque UTF-8.
func isLetter(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z' || b == '_'
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}
