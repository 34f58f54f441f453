package lexer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

//go:generate stringer -type=TokenType

type TokenType uint8

const (
	_ = TokenType(iota)
	// brackets
	LEFT_PAREN
	RIGHT_PAREN
	// reader shorthand for (quote ...)
	QUOTE
	// literals
	SYMBOL
	NUMBER
	BOOLEAN
	STRING
	// meta
	EOF
)

type Token struct {
	Type    TokenType
	Lexeme  string      // raw slice of the source
	Literal interface{} // float64, bool, string or nil
	Line    int
	Column  int // in runes, 1-based
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q %d:%d", t.Type, t.Lexeme, t.Line, t.Column)
}

// Error is a lexical error.
type Error struct {
	Filename string
	Line     int
	Column   int
	Message  string
}

func (e *Error) Error() string { return e.String() }
func (e *Error) String() string {
	return fmt.Sprintf("%s:%d:%d: lexical error: %s", e.Filename, e.Line, e.Column, e.Message)
}

type Lexer struct {
	Filename string  // filename
	source   string  // the complete source code
	Tokens   []Token // list of tokens produced
	Errors   []Error // list of lexer errors
	current  int     // where are we in the input?
	line     int     // line and column positions
	column   int     // NB: column position is in terms of runes
	start    int     // the first char of the lexeme being scanned
	startLn  int     // starting line number
	startCol int     // starting col number
	stop     bool    // whether we have met a fatal error and cannot advance any more
}

func New(filename string, source string) *Lexer {
	return &Lexer{
		Filename: filename,
		source:   source,
		Tokens:   []Token{},
		line:     1,
		column:   1,
		startLn:  1,
		startCol: 1,
	}
}

// Tokenize scans the whole source and returns the tokens, or the
// first lexical error.
func Tokenize(filename string, source string) ([]Token, error) {
	l := New(filename, source)
	l.ScanTokens()
	if len(l.Errors) != 0 {
		return nil, &l.Errors[0]
	}
	return l.Tokens, nil
}

// utils

// isAtEnd lets us know if we've reached the end of the input.
func (l *Lexer) isAtEnd() bool { return l.current >= len(l.source) }

// advance consumes one rune and returns the consumed rune.
// current is incremented by the width of the returned rune.
func (l *Lexer) advance() rune {
	r, w := utf8.DecodeRuneInString(l.source[l.current:])
	if r == utf8.RuneError && w <= 1 {
		l.error("unexpected symbol: invalid utf8 input at byte %d", l.current)
	}
	l.current += w
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

// peek is the same as advance, but does not advance .current.
func (l *Lexer) peek() rune {
	if l.stop || l.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.current:])
	return r
}

// public api, actual lexing

// ScanTokens scans until the end of input or the first error. The
// token list is always terminated by an EOF token.
func (l *Lexer) ScanTokens() {
	for !l.stop && !l.isAtEnd() {
		l.start = l.current
		l.startLn = l.line
		l.startCol = l.column
		l.scanToken()
	}
	l.Tokens = append(l.Tokens, Token{EOF, "", nil, l.line, l.column})
}

func (l *Lexer) scanToken() {
	ch := l.advance()
	if l.stop {
		// invalid utf8 char
		return
	}
	switch ch {
	// Ignore whitespace
	case ' ', '\t', '\r', '\n':
	case ';':
		for l.peek() != '\n' && !l.stop && !l.isAtEnd() {
			l.advance()
		}
	case '(':
		l.emit(LEFT_PAREN)
	case ')':
		l.emit(RIGHT_PAREN)
	case '\'':
		l.emit(QUOTE)
	case '"':
		l.lexString()
	case '#':
		l.lexBoolean()
	default:
		switch {
		case isDigit(ch) || ch == '+' || ch == '-':
			l.lexNumber(ch)
		case isSymbolStart(ch):
			l.lexSymbol()
		default:
			l.errorAtStart("unexpected symbol %q", ch)
		}
	}
}

// run consumes everything up to the next delimiter.
func (l *Lexer) run() string {
	for !l.stop && !l.isAtEnd() && !isDelimiter(l.peek()) {
		l.advance()
	}
	return l.source[l.start:l.current]
}

func (l *Lexer) lexSymbol() {
	word := l.run()
	if l.stop {
		return
	}
	l.emitLiteral(SYMBOL, word)
}

func (l *Lexer) lexNumber(first rune) {
	word := l.run()
	if l.stop {
		return
	}
	if num, ok := parseNumber(word); ok {
		l.emitLiteral(NUMBER, num)
		return
	}
	if isDigit(first) {
		l.errorAtStart("invalid number: %s", word)
		return
	}
	// operators such as + and - are ordinary symbols.
	l.emitLiteral(SYMBOL, word)
}

func (l *Lexer) lexBoolean() {
	word := l.run()
	if l.stop {
		return
	}
	switch word {
	case "#t":
		l.emitLiteral(BOOLEAN, true)
	case "#f":
		l.emitLiteral(BOOLEAN, false)
	default:
		l.errorAtStart("invalid boolean: %s", word)
	}
}

// lexString scans up to the next unescaped '"'. The literal keeps
// the raw text between the quotes; escapes are interpreted when the
// string is rendered.
func (l *Lexer) lexString() {
	// we've already ate one '"' token.
	esc := false
	for !l.isAtEnd() {
		ch := l.advance()
		if l.stop {
			return
		}
		switch {
		case esc:
			esc = false
		case ch == '\\':
			esc = true
		case ch == '"':
			l.emitLiteral(STRING, l.source[l.start+1:l.current-1])
			return
		}
	}
	// if we've reached here, then there was no terminating "
	l.errorAtStart("unterminated string")
}

func (l *Lexer) emit(typ TokenType) { l.emitLiteral(typ, nil) }
func (l *Lexer) emitLiteral(typ TokenType, lit interface{}) {
	l.Tokens = append(l.Tokens, Token{
		Type:    typ,
		Lexeme:  l.source[l.start:l.current],
		Literal: lit,
		Line:    l.startLn,
		Column:  l.startCol,
	})
}

func (l *Lexer) error(s string, args ...interface{}) {
	l.errorAt(l.line, l.column, s, args...)
}

func (l *Lexer) errorAtStart(s string, args ...interface{}) {
	l.errorAt(l.startLn, l.startCol, s, args...)
}

func (l *Lexer) errorAt(line, col int, s string, args ...interface{}) {
	l.Errors = append(l.Errors, Error{
		Filename: l.Filename,
		Line:     line,
		Column:   col,
		Message:  fmt.Sprintf(s, args...),
	})
	l.stop = true
}

// parseNumber accepts decimal and exponent notation only; Go's
// spellings of infinity and NaN are symbols here.
func parseNumber(s string) (float64, bool) {
	if strings.ContainsAny(s, "iInNxX_") {
		return 0, false
	}
	num, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(num, 0) {
		return 0, false
	}
	return num, true
}

func isDelimiter(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '(' || ch == ')'
}

func isSymbolStart(ch rune) bool {
	switch ch {
	case '(', ')', '"', '\'', '#', ';':
		return false
	}
	return !isDelimiter(ch) && !isDigit(ch) && !unicode.IsControl(ch)
}

func isDigit(ch rune) bool { return '0' <= ch && ch <= '9' }
