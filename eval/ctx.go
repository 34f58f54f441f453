package eval

import (
	"io"
	"log"
	"os"

	"schemer/parser"
	"schemer/resolver"
)

// DefaultMaxDepth bounds nested procedure calls. Without tail calls a
// runaway recursion would otherwise exhaust the goroutine stack and
// kill the process.
const DefaultMaxDepth = 10000

type Context struct {
	// the root environment: builtins and top-level definitions.
	global *Environment
	// stack contains the current call stack. we consult the call-stack to tell
	// us which procedure we're in, and augment that using an expression's token.
	stack []callStackEntry
	// where display and displayln write to.
	out io.Writer
	// import bookkeeping, one per interpreter.
	imports  *resolver.Resolver
	logger   *log.Logger
	depth    int
	maxDepth int
}

type Option func(*Context)

// WithOutput redirects display and displayln.
func WithOutput(w io.Writer) Option {
	return func(ctx *Context) { ctx.out = w }
}

// WithImportRoot sets the directory relative import paths are
// resolved against.
func WithImportRoot(dir string) Option {
	return func(ctx *Context) { ctx.imports = resolver.New(dir) }
}

// WithLogger enables tracing of imports.
func WithLogger(l *log.Logger) Option {
	return func(ctx *Context) { ctx.logger = l }
}

// WithMaxDepth sets the maximum procedure nesting; 0 disables the
// check.
func WithMaxDepth(n int) Option {
	return func(ctx *Context) { ctx.maxDepth = n }
}

func NewContext(opts ...Option) *Context {
	ctx := &Context{
		global:   NewEnvironment(nil),
		stack:    make([]callStackEntry, 0, 8),
		out:      os.Stdout,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(ctx)
	}
	if ctx.imports == nil {
		ctx.imports = resolver.New("")
	}
	if ctx.logger == nil {
		ctx.logger = log.New(io.Discard, "", 0)
	}
	ctx.addBuiltins(ctx.global)
	return ctx
}

// Global returns the root environment.
func (ctx *Context) Global() *Environment { return ctx.global }

// Imports returns the canonical paths imported so far.
func (ctx *Context) Imports() []string { return ctx.imports.Files() }

// Run tokenizes, parses and interprets source in the global
// environment, returning the rendering of the last value.
func (ctx *Context) Run(filename string, source string) (string, error) {
	module, err := parser.ParseString(filename, source)
	if err != nil {
		return "", err
	}
	return ctx.InterpretModule(module, ctx.global)
}

// InterpretModule interprets a parsed file in env.
func (ctx *Context) InterpretModule(module *parser.Module, env *Environment) (string, error) {
	ctx.pushFunc(moduleCse{module.Filename})
	defer ctx.popFunc()
	return ctx.Interpret(module.Exprs, env)
}

// Interpret evaluates exprs in order and renders the last value.
func (ctx *Context) Interpret(exprs []parser.Expr, env *Environment) (string, error) {
	if env == nil {
		env = ctx.global
	}
	var rv Value = UNSPECIFIED
	for _, expr := range exprs {
		v, err := ctx.eval(expr, env)
		if err != nil {
			return "", err
		}
		rv = v
	}
	return ctx.Render(rv), nil
}
