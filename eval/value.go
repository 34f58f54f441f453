package eval

import (
	"schemer/parser"
)

//go:generate stringer -type=ValueType

type ValueType uint8

const (
	_ = ValueType(iota)
	// Real values
	VT_UNSPECIFIED
	VT_BOOLEAN
	VT_NUMBER
	VT_STRING
	VT_LIST
	VT_PROCEDURE
	VT_BUILTIN
)

type Value interface {
	Type() ValueType
}

type Unspecified struct{}
type Boolean bool
type Number float64
type String string

// List is the only aggregate; it is mutated in place by vector-set!
// and sort, so it is always passed around by pointer.
type List struct {
	Values []Value
}

func NewList(values ...Value) *List {
	if values == nil {
		values = []Value{}
	}
	return &List{Values: values}
}

// Procedure is a closure: the environment is the one that was active
// when the lambda was evaluated.
type Procedure struct {
	Params   []string
	Variadic bool
	Body     []parser.Expr
	closure  *Environment
	filename string
}

func newProcedure(filename string, params []string, variadic bool, body []parser.Expr, env *Environment) *Procedure {
	return &Procedure{
		Params:   params,
		Variadic: variadic,
		Body:     body,
		closure:  env,
		filename: filename,
	}
}

// VARIADIC marks builtins which take any number of arguments.
const VARIADIC = -1

type builtinFunc func(ctx *Context, env *Environment, args []Value) (Value, error)

// Builtin represents a built-in procedure.
type Builtin struct {
	name  string
	arity int
	call  builtinFunc
}

func newBuiltin(name string, arity int, call builtinFunc) *Builtin {
	return &Builtin{
		name:  name,
		arity: arity,
		call:  call,
	}
}

func (v Unspecified) Type() ValueType { return VT_UNSPECIFIED }
func (v Boolean) Type() ValueType     { return VT_BOOLEAN }
func (v Number) Type() ValueType      { return VT_NUMBER }
func (v String) Type() ValueType      { return VT_STRING }
func (v *List) Type() ValueType       { return VT_LIST }
func (v *Procedure) Type() ValueType  { return VT_PROCEDURE }
func (v *Builtin) Type() ValueType    { return VT_BUILTIN }

// ==========
// Singletons
// ==========

var (
	UNSPECIFIED = Unspecified{}
	TRUE        = Boolean(true)
	FALSE       = Boolean(false)
)

// isTruthy: everything except #f is true.
func isTruthy(v Value) bool {
	b, ok := v.(Boolean)
	return !ok || bool(b)
}

func isProcedure(v Value) bool {
	switch v.(type) {
	case *Procedure, *Builtin:
		return true
	}
	return false
}
