package eval

import (
	"io"
	"math"
	"sort"
)

// =================
// Builtin functions
// =================

// ----------
// arithmetic
// ----------

type numberFold func(acc, x Number) Number

// foldNumbers checks every argument before folding, so (+ 1 "a")
// fails even though the first addition would succeed. With an
// identity the fold starts from it, otherwise from the first argument.
func foldNumbers(name string, identity *Number, f numberFold) builtinFunc {
	return func(ctx *Context, env *Environment, args []Value) (Value, error) {
		nums := make([]Number, len(args))
		for i, arg := range args {
			n, err := expectNumber(name, arg)
			if err != nil {
				return nil, err
			}
			nums[i] = n
		}
		if identity != nil {
			acc := *identity
			for _, n := range nums {
				acc = f(acc, n)
			}
			return acc, nil
		}
		if len(nums) == 0 {
			return nil, semanticError("in procedure '%s': expected at least 1 argument", name)
		}
		acc := nums[0]
		for _, n := range nums[1:] {
			acc = f(acc, n)
		}
		return acc, nil
	}
}

func numberPtr(n Number) *Number { return &n }

var (
	bi_plus   = foldNumbers("+", numberPtr(0), func(a, b Number) Number { return a + b })
	bi_times  = foldNumbers("*", numberPtr(1), func(a, b Number) Number { return a * b })
	bi_minus  = foldNumbers("-", nil, func(a, b Number) Number { return a - b })
	bi_divide = foldNumbers("/", nil, func(a, b Number) Number { return a / b })
)

// -----------
// comparisons
// -----------

type numberCompare func(a, b Number) bool

func compareNumbers(name string, f numberCompare) builtinFunc {
	return func(ctx *Context, env *Environment, args []Value) (Value, error) {
		a, err := expectNumber(name, args[0])
		if err != nil {
			return nil, err
		}
		b, err := expectNumber(name, args[1])
		if err != nil {
			return nil, err
		}
		return Boolean(f(a, b)), nil
	}
}

// ----
// math
// ----

func unaryMath(name string, f func(float64) float64) builtinFunc {
	return func(ctx *Context, env *Environment, args []Value) (Value, error) {
		n, err := expectNumber(name, args[0])
		if err != nil {
			return nil, err
		}
		return Number(f(float64(n))), nil
	}
}

func binaryMath(name string, f func(float64, float64) float64) builtinFunc {
	return func(ctx *Context, env *Environment, args []Value) (Value, error) {
		a, err := expectNumber(name, args[0])
		if err != nil {
			return nil, err
		}
		b, err := expectNumber(name, args[1])
		if err != nil {
			return nil, err
		}
		return Number(f(float64(a), float64(b))), nil
	}
}

// ---
// not
// ---
func bi_not(ctx *Context, env *Environment, args []Value) (Value, error) {
	b, ok := args[0].(Boolean)
	if !ok {
		return FALSE, nil
	}
	return !b, nil
}

// -------
// display
// -------
func bi_display(ctx *Context, env *Environment, args []Value) (Value, error) {
	if _, err := io.WriteString(ctx.out, ctx.Render(args[0])); err != nil {
		return nil, &RuntimeError{Message: err.Error()}
	}
	return UNSPECIFIED, nil
}

func bi_displayln(ctx *Context, env *Environment, args []Value) (Value, error) {
	if _, err := io.WriteString(ctx.out, ctx.Render(args[0])+"\n"); err != nil {
		return nil, &RuntimeError{Message: err.Error()}
	}
	return UNSPECIFIED, nil
}

// ----------
// predicates
// ----------

func typePredicate(typ ValueType) builtinFunc {
	return func(ctx *Context, env *Environment, args []Value) (Value, error) {
		return Boolean(args[0].Type() == typ), nil
	}
}

func bi_is_null(ctx *Context, env *Environment, args []Value) (Value, error) {
	list, ok := args[0].(*List)
	return Boolean(ok && len(list.Values) == 0), nil
}

// -----
// lists
// -----

func bi_length(ctx *Context, env *Environment, args []Value) (Value, error) {
	list, err := expectList("length", args[0])
	if err != nil {
		return nil, err
	}
	return Number(len(list.Values)), nil
}

func bi_car(ctx *Context, env *Environment, args []Value) (Value, error) {
	list, err := expectList("car", args[0])
	if err != nil {
		return nil, err
	}
	if len(list.Values) == 0 {
		return nil, semanticError("in procedure 'car': empty list")
	}
	return list.Values[0], nil
}

func bi_cdr(ctx *Context, env *Environment, args []Value) (Value, error) {
	list, err := expectList("cdr", args[0])
	if err != nil {
		return nil, err
	}
	if len(list.Values) == 0 {
		return NewList(), nil
	}
	rest := make([]Value, len(list.Values)-1)
	copy(rest, list.Values[1:])
	return NewList(rest...), nil
}

func bi_vector_ref(ctx *Context, env *Environment, args []Value) (Value, error) {
	list, err := expectList("vector-ref", args[0])
	if err != nil {
		return nil, err
	}
	idx, err := expectIndex("vector-ref", list, args[1])
	if err != nil {
		return nil, err
	}
	return list.Values[idx], nil
}

func bi_vector_set(ctx *Context, env *Environment, args []Value) (Value, error) {
	list, err := expectList("vector-set!", args[0])
	if err != nil {
		return nil, err
	}
	idx, err := expectIndex("vector-set!", list, args[1])
	if err != nil {
		return nil, err
	}
	list.Values[idx] = args[2]
	return list, nil
}

// maxListSize is the largest size make-list accepts.
const maxListSize = 1 << 24

// make-list fills every slot with its own copy of a list argument.
func bi_make_list(ctx *Context, env *Environment, args []Value) (Value, error) {
	n, err := expectNumber("make-list", args[0])
	if err != nil {
		return nil, err
	}
	if n < 0 || n > maxListSize || n != Number(math.Trunc(float64(n))) {
		return nil, semanticError("in procedure 'make-list': invalid size %s", formatNumber(float64(n)))
	}
	values := make([]Value, int(n))
	fill, isList := args[1].(*List)
	for i := range values {
		if isList {
			values[i] = fill.copy()
		} else {
			values[i] = args[1]
		}
	}
	return NewList(values...), nil
}

// copy is shallow: nested lists stay shared.
func (v *List) copy() *List {
	values := make([]Value, len(v.Values))
	copy(values, v.Values)
	return NewList(values...)
}

// sort orders the list in place. The comparator answers "does a come
// before b"; anything but #t counts as no.
func bi_sort(ctx *Context, env *Environment, args []Value) (Value, error) {
	cmp := args[0]
	if !isProcedure(cmp) {
		return nil, wrongType("sort", cmp)
	}
	list, err := expectList("sort", args[1])
	if err != nil {
		return nil, err
	}
	var failed error
	sort.SliceStable(list.Values, func(i, j int) bool {
		if failed != nil {
			return false
		}
		rv, err := ctx.Apply(cmp, []Value{list.Values[i], list.Values[j]}, env)
		if err != nil {
			failed = err
			return false
		}
		b, ok := rv.(Boolean)
		return ok && bool(b)
	})
	if failed != nil {
		return nil, failed
	}
	return list, nil
}

// -------
// strings
// -------

func bi_string_append(ctx *Context, env *Environment, args []Value) (Value, error) {
	a, err := expectString("string-append", args[0])
	if err != nil {
		return nil, err
	}
	b, err := expectString("string-append", args[1])
	if err != nil {
		return nil, err
	}
	return a + b, nil
}

func bi_string_eq(ctx *Context, env *Environment, args []Value) (Value, error) {
	strs := make([]String, len(args))
	for i, arg := range args {
		s, err := expectString("string=?", arg)
		if err != nil {
			return nil, err
		}
		strs[i] = s
	}
	for _, s := range strs {
		if s != strs[0] {
			return FALSE, nil
		}
	}
	return TRUE, nil
}

func bi_string_lt(ctx *Context, env *Environment, args []Value) (Value, error) {
	a, err := expectString("string<?", args[0])
	if err != nil {
		return nil, err
	}
	b, err := expectString("string<?", args[1])
	if err != nil {
		return nil, err
	}
	return Boolean(a < b), nil
}

func bi_number_to_string(ctx *Context, env *Environment, args []Value) (Value, error) {
	n, err := expectNumber("number->string", args[0])
	if err != nil {
		return nil, err
	}
	return String(formatNumber(float64(n))), nil
}

// --------------
// quote and set!
// --------------

func bi_quote(ctx *Context, env *Environment, args []Value) (Value, error) {
	return args[0], nil
}

// bi_set rebinds a name through the caller's scope chain, the same way
// the set! form does: (set! "x" 5).
func bi_set(ctx *Context, env *Environment, args []Value) (Value, error) {
	name, err := expectString("set!", args[0])
	if err != nil {
		return nil, err
	}
	if !env.Set(string(name), args[1]) {
		return nil, semanticError("unbound variable %s", name)
	}
	return args[1], nil
}

// =======
// Globals
// =======

func (ctx *Context) addBuiltins(env *Environment) {
	builtins := []*Builtin{
		newBuiltin("+", VARIADIC, bi_plus),
		newBuiltin("-", VARIADIC, bi_minus),
		newBuiltin("*", VARIADIC, bi_times),
		newBuiltin("/", VARIADIC, bi_divide),

		newBuiltin("=", 2, compareNumbers("=", func(a, b Number) bool { return a == b })),
		newBuiltin("<", 2, compareNumbers("<", func(a, b Number) bool { return a < b })),
		newBuiltin("<=", 2, compareNumbers("<=", func(a, b Number) bool { return a <= b })),
		newBuiltin(">", 2, compareNumbers(">", func(a, b Number) bool { return a > b })),
		newBuiltin(">=", 2, compareNumbers(">=", func(a, b Number) bool { return a >= b })),

		newBuiltin("min", 2, binaryMath("min", math.Min)),
		newBuiltin("max", 2, binaryMath("max", math.Max)),
		newBuiltin("abs", 1, unaryMath("abs", math.Abs)),
		newBuiltin("sqrt", 1, unaryMath("sqrt", math.Sqrt)),
		newBuiltin("expt", 1, unaryMath("expt", math.Exp)),
		newBuiltin("sin", 1, unaryMath("sin", math.Sin)),
		newBuiltin("cos", 1, unaryMath("cos", math.Cos)),
		newBuiltin("log", 1, unaryMath("log", math.Log)),

		newBuiltin("not", 1, bi_not),
		newBuiltin("display", 1, bi_display),
		newBuiltin("displayln", 1, bi_displayln),

		newBuiltin("number?", 1, typePredicate(VT_NUMBER)),
		newBuiltin("boolean?", 1, typePredicate(VT_BOOLEAN)),
		newBuiltin("string?", 1, typePredicate(VT_STRING)),
		newBuiltin("list?", 1, typePredicate(VT_LIST)),
		newBuiltin("null?", 1, bi_is_null),

		newBuiltin("length", 1, bi_length),
		newBuiltin("car", 1, bi_car),
		newBuiltin("cdr", 1, bi_cdr),
		newBuiltin("vector-ref", 2, bi_vector_ref),
		newBuiltin("vector-set!", 3, bi_vector_set),
		newBuiltin("make-list", 2, bi_make_list),
		newBuiltin("sort", 2, bi_sort),

		newBuiltin("string-append", 2, bi_string_append),
		newBuiltin("string=?", VARIADIC, bi_string_eq),
		newBuiltin("string<?", 2, bi_string_lt),
		newBuiltin("number->string", 1, bi_number_to_string),

		newBuiltin("quote", 1, bi_quote),
		newBuiltin("set!", 2, bi_set),
	}
	for _, b := range builtins {
		env.Define(b.name, b)
	}
}

// =========
// Utilities
// =========

func expectNumber(proc string, v Value) (Number, error) {
	n, ok := v.(Number)
	if !ok {
		return 0, wrongType(proc, v)
	}
	return n, nil
}

func expectString(proc string, v Value) (String, error) {
	s, ok := v.(String)
	if !ok {
		return "", wrongType(proc, v)
	}
	return s, nil
}

func expectList(proc string, v Value) (*List, error) {
	list, ok := v.(*List)
	if !ok {
		return nil, wrongType(proc, v)
	}
	return list, nil
}

// expectIndex wants a whole number in [0, len(list)).
func expectIndex(proc string, list *List, v Value) (int, error) {
	n, err := expectNumber(proc, v)
	if err != nil {
		return 0, err
	}
	f := float64(n)
	if f != math.Trunc(f) {
		return 0, wrongType(proc, v)
	}
	if f < 0 || f >= float64(len(list.Values)) {
		return 0, semanticError("in procedure '%s': index out of range: %s", proc, formatNumber(f))
	}
	return int(f), nil
}
