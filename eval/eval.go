package eval

// Implements the actual evaluator for the language.

import (
	"fmt"

	"schemer/lexer"
	"schemer/parser"
)

// Eval evaluates a single expression in env.
func (ctx *Context) Eval(node parser.Expr, env *Environment) (Value, error) {
	return ctx.eval(node, env)
}

func (ctx *Context) eval(node parser.Expr, env *Environment) (Value, error) {
	switch node := node.(type) {
	case *parser.Literal:
		return literal(node.Token), nil
	case *parser.Symbol:
		return ctx.evalSymbol(node, env)
	case *parser.Define:
		return ctx.evalDefine(node, env)
	case *parser.Call:
		return ctx.evalCall(node, env)
	case *parser.Lambda:
		return newProcedure(ctx.currFile(), paramNames(node.Params), node.Variadic, node.Body, env), nil
	case *parser.Func:
		return newProcedure(ctx.currFile(), paramNames(node.Params), false, node.Body, env), nil
	case *parser.If:
		return ctx.evalIf(node, env)
	case *parser.Begin:
		return ctx.evalSequence(node.Body, env)
	case *parser.Quote:
		return ctx.quoted(node.Datum, env)
	case *parser.List:
		return ctx.quoted(node, env)
	case *parser.Set:
		return ctx.evalSet(node, env)
	case *parser.Import:
		return ctx.evalImport(node, env)
	case *parser.Return:
		return ctx.eval(node.Value, env)
	}
	panic(fmt.Sprintf("unhandled node %#+v", node))
}

// evalSequence evaluates exprs in order and yields the last value.
func (ctx *Context) evalSequence(exprs []parser.Expr, env *Environment) (Value, error) {
	var rv Value = UNSPECIFIED
	for _, expr := range exprs {
		v, err := ctx.eval(expr, env)
		if err != nil {
			return nil, err
		}
		rv = v
	}
	return rv, nil
}

func literal(tok lexer.Token) Value {
	switch lit := tok.Literal.(type) {
	case float64:
		return Number(lit)
	case bool:
		return Boolean(lit)
	case string:
		return String(lit)
	}
	return UNSPECIFIED
}

func paramNames(params []lexer.Token) []string {
	names := make([]string, len(params))
	for i, param := range params {
		names[i] = param.Lexeme
	}
	return names
}

func (ctx *Context) evalSymbol(node *parser.Symbol, env *Environment) (Value, error) {
	name := node.Token.Lexeme
	rv, ok := env.Get(name)
	if !ok {
		return nil, ctx.locate(semanticError("unbound variable %s", name), node.Token)
	}
	return rv, nil
}

func (ctx *Context) evalDefine(node *parser.Define, env *Environment) (Value, error) {
	var value Value = UNSPECIFIED
	if node.Value != nil {
		rv, err := ctx.eval(node.Value, env)
		if err != nil {
			return nil, err
		}
		value = rv
	}
	env.Define(node.Name.Lexeme, value)
	return value, nil
}

func (ctx *Context) evalSet(node *parser.Set, env *Environment) (Value, error) {
	value, err := ctx.eval(node.Value, env)
	if err != nil {
		return nil, err
	}
	if !env.Set(node.Name.Lexeme, value) {
		return nil, ctx.locate(semanticError("unbound variable %s", node.Name.Lexeme), node.Name)
	}
	return value, nil
}

func (ctx *Context) evalIf(node *parser.If, env *Environment) (Value, error) {
	cond, err := ctx.eval(node.Cond, env)
	if err != nil {
		return nil, err
	}
	if isTruthy(cond) {
		return ctx.eval(node.Then, env)
	}
	if node.Else != nil {
		return ctx.eval(node.Else, env)
	}
	return UNSPECIFIED, nil
}

// quoted evaluates quoted data: lists are built item by item and
// symbols stand for their own names.
func (ctx *Context) quoted(node parser.Expr, env *Environment) (Value, error) {
	switch node := node.(type) {
	case *parser.List:
		values := make([]Value, len(node.Items))
		for i, item := range node.Items {
			v, err := ctx.quoted(item, env)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return NewList(values...), nil
	case *parser.Symbol:
		return String(node.Token.Lexeme), nil
	case *parser.Literal:
		return literal(node.Token), nil
	case *parser.Quote:
		return ctx.quoted(node.Datum, env)
	}
	return ctx.eval(node, env)
}

// =====
// Calls
// =====

func (ctx *Context) evalCall(node *parser.Call, env *Environment) (Value, error) {
	callee, err := ctx.eval(node.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]Value, len(node.Args))
	for i, arg := range node.Args {
		if args[i], err = ctx.eval(arg, env); err != nil {
			return nil, err
		}
	}
	rv, err := ctx.apply(node.Token, node.Callee.Tok().Lexeme, callee, args, env)
	if err != nil {
		return nil, ctx.locate(err, node.Token)
	}
	return rv, nil
}

// Apply calls a procedure value with already evaluated arguments.
// env is the environment of the caller.
func (ctx *Context) Apply(callee Value, args []Value, env *Environment) (Value, error) {
	if env == nil {
		env = ctx.global
	}
	return ctx.apply(lexer.Token{}, ctx.nameOf(callee), callee, args, env)
}

func (ctx *Context) apply(tok lexer.Token, name string, callee Value, args []Value, env *Environment) (Value, error) {
	switch callee := callee.(type) {
	case *Procedure:
		if !callee.Variadic && len(callee.Params) != len(args) {
			return nil, wrongArgCount(name, len(callee.Params), len(args))
		}
		return ctx.callProcedure(tok, name, callee, args)
	case *Builtin:
		if callee.arity != VARIADIC && callee.arity != len(args) {
			return nil, wrongArgCount(name, callee.arity, len(args))
		}
		return callee.call(ctx, env, args)
	}
	return nil, semanticError("%s is not a procedure: %s", name, Render(callee))
}

func wrongArgCount(name string, want, got int) *SemanticError {
	return semanticError("wrong number of arguments in %s (it takes %d arguments, but %d are received)", name, want, got)
}

// callProcedure runs the body in a fresh frame whose parent is the
// procedure's closure, not the caller's environment.
func (ctx *Context) callProcedure(tok lexer.Token, name string, proc *Procedure, args []Value) (Value, error) {
	if ctx.maxDepth > 0 && ctx.depth >= ctx.maxDepth {
		return nil, &RuntimeError{Message: fmt.Sprintf("maximum recursion depth exceeded (%d)", ctx.maxDepth)}
	}
	ctx.depth++
	defer func() { ctx.depth-- }()

	env := NewEnvironment(proc.closure)
	if proc.Variadic {
		env.Define(proc.Params[0], NewList(args...))
	} else {
		for i, param := range proc.Params {
			env.Define(param, args[i])
		}
	}

	ctx.pushFunc(procedureCse{name, proc})
	var rv Value = UNSPECIFIED
	for _, expr := range proc.Body {
		v, err := ctx.eval(expr, env)
		if err != nil {
			ctx.popFunc()
			ctx.addContext(err, tok)
			return nil, err
		}
		rv = v
		// only a (return ...) at the top of the body ends the call
		if _, ok := expr.(*parser.Return); ok {
			break
		}
	}
	ctx.popFunc()
	return rv, nil
}

// nameOf finds a printable name for a procedure value.
func (ctx *Context) nameOf(v Value) string {
	if name, ok := ctx.global.KeyOf(v); ok {
		return name
	}
	if b, ok := v.(*Builtin); ok {
		return b.name
	}
	return anonymous
}
