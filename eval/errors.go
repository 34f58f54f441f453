package eval

// callStackEntry contains partial information about the procedure
// call; only including the filename and the string.
type callStackEntry interface {
	Filename() string
	Context() string
}

type moduleCse struct{ filename string }

func (m moduleCse) Filename() string { return m.filename }
func (m moduleCse) Context() string  { return "[module]" }

const anonymous = "anonymous procedure"

type procedureCse struct {
	name      string
	procedure *Procedure
}

func (f procedureCse) Filename() string { return f.procedure.filename }
func (f procedureCse) Context() string {
	if f.name == "" || f.name == anonymous {
		return "in " + anonymous
	}
	return "in procedure " + f.name
}

func (ctx *Context) pushFunc(e callStackEntry) { ctx.stack = append(ctx.stack, e) }
func (ctx *Context) popFunc()                  { ctx.stack = ctx.stack[:len(ctx.stack)-1] }
func (ctx *Context) currFile() string          { return ctx.currFunc().Filename() }

func (ctx *Context) currFunc() callStackEntry {
	if len(ctx.stack) == 0 {
		return moduleCse{}
	}
	return ctx.stack[len(ctx.stack)-1]
}
