package parser

import (
	"fmt"

	"schemer/lexer"
)

// Error is a syntax error. We also use it internally (as a panic
// value) to signal that we cannot continue parsing.
type Error struct {
	Filename string
	Token    lexer.Token
	Message  string
}

func (e *Error) Error() string { return e.String() }
func (e *Error) String() string {
	return fmt.Sprintf("%s:%d:%d: syntax error: %s", e.Filename, e.Token.Line, e.Token.Column, e.Message)
}

func (p *Parser) error(tok lexer.Token, s string, args ...interface{}) {
	err := Error{
		Filename: p.filename,
		Token:    tok,
		Message:  fmt.Sprintf(s, args...),
	}
	p.Errors = append(p.Errors, err)
	panic(err)
}

func (p *Parser) expect(typ lexer.TokenType, s string, args ...interface{}) lexer.Token {
	if !p.check(typ) {
		p.error(p.peek(), s, args...)
	}
	return p.consume()
}
