package eval

import (
	"fmt"
	"os"

	"schemer/parser"
)

// evalImport loads a file into env. Definitions of the imported file
// land directly in env; there is no separate module namespace.
func (ctx *Context) evalImport(node *parser.Import, env *Environment) (Value, error) {
	v, err := ctx.eval(node.Path, env)
	if err != nil {
		return nil, err
	}
	spec, ok := v.(String)
	if !ok {
		return nil, ctx.locate(wrongType("import", v), node.Token)
	}
	if err := ctx.importFile(string(spec), env); err != nil {
		return nil, ctx.locate(err, node.Token)
	}
	return UNSPECIFIED, nil
}

func (ctx *Context) importFile(spec string, env *Environment) error {
	path, err := ctx.imports.Resolve(spec)
	if err != nil {
		return &RuntimeError{Message: err.Error()}
	}
	if ctx.imports.Imported(path) {
		ctx.logger.Printf("skipping already imported %s", path)
		return nil
	}
	ctx.imports.Mark(path)
	ctx.logger.Printf("importing %s", path)

	source, err := os.ReadFile(path)
	if err != nil {
		return &RuntimeError{Message: fmt.Sprintf("cannot import file: %s: %s", path, err)}
	}
	module, err := parser.ParseString(path, string(source))
	if err != nil {
		return err
	}
	_, err = ctx.InterpretModule(module, env)
	return err
}
