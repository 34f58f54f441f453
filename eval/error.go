package eval

import (
	"bytes"
	"fmt"

	"schemer/lexer"
)

// This file implements error formatting and reporting mechanisms.
// The protocol around adding errors is:
//
//   1. Every time we call a procedure, we do ctx.pushFunc(...)
//      and pop it again when the call returns.
//
//   2. Errors are created without a location by builtins. The
//      evaluator stamps the location of the expression being
//      evaluated onto the error the first time it sees it.
//
//   3. When an error escapes a procedure call, the call site is
//      added to the trace together with the procedure we were in.

type TraceEntry struct {
	Filename string
	Line     int
	Column   int
	Context  string
}

func (te TraceEntry) String() string {
	return fmt.Sprintf("at %s:%d:%d: %s", te.Filename, te.Line, te.Column, te.Context)
}

// SemanticError is raised for valid syntax with an invalid meaning:
// unbound variables, arity and type mismatches, bad indices.
type SemanticError struct {
	Filename string
	Line     int
	Column   int
	Message  string
	Trace    []TraceEntry
}

func (e *SemanticError) Error() string { return e.String() }
func (e *SemanticError) String() string {
	var buf bytes.Buffer
	if e.Line > 0 {
		buf.WriteString(fmt.Sprintf("%s:%d:%d: ", e.Filename, e.Line, e.Column))
	}
	buf.WriteString("semantic error: ")
	buf.WriteString(e.Message)
	for _, entry := range e.Trace {
		buf.WriteString("\n  ")
		buf.WriteString(entry.String())
	}
	return buf.String()
}

// RuntimeError is raised for failures of the host environment rather
// than the program text, e.g. an import that cannot be read.
type RuntimeError struct {
	Filename string
	Line     int
	Column   int
	Message  string
}

func (e *RuntimeError) Error() string { return e.String() }
func (e *RuntimeError) String() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: runtime error: %s", e.Filename, e.Line, e.Column, e.Message)
	}
	return "runtime error: " + e.Message
}

func semanticError(s string, args ...interface{}) *SemanticError {
	return &SemanticError{Message: fmt.Sprintf(s, args...)}
}

func wrongType(proc string, v Value) *SemanticError {
	return semanticError("in procedure '%s': wrong type %q", proc, Render(v))
}

// locate stamps tok's position onto err unless it already has one.
func (ctx *Context) locate(err error, tok lexer.Token) error {
	switch err := err.(type) {
	case *SemanticError:
		if err.Line == 0 {
			err.Filename = ctx.currFile()
			err.Line = tok.Line
			err.Column = tok.Column
		}
	case *RuntimeError:
		if err.Line == 0 {
			err.Filename = ctx.currFile()
			err.Line = tok.Line
			err.Column = tok.Column
		}
	}
	return err
}

// addContext records that err escaped a call at tok.
func (ctx *Context) addContext(err error, tok lexer.Token) {
	if err, ok := err.(*SemanticError); ok && tok.Line > 0 {
		err.Trace = append(err.Trace, TraceEntry{
			Filename: ctx.currFile(),
			Line:     tok.Line,
			Column:   tok.Column,
			Context:  ctx.currFunc().Context(),
		})
	}
}
