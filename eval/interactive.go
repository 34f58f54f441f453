package eval

import (
	"sort"
	"strings"

	"schemer/parser"
)

// InteractiveContext keeps one Context alive across inputs, so that
// definitions made on one line are visible on the next.
type InteractiveContext struct {
	Filename string
	ctx      *Context
}

func NewInteractiveContext(opts ...Option) *InteractiveContext {
	return &InteractiveContext{
		Filename: "<stdin>",
		ctx:      NewContext(opts...),
	}
}

// Run evaluates one input in the global environment. Blank input
// yields the empty string.
func (ic *InteractiveContext) Run(input string) (string, error) {
	module, err := parser.ParseString(ic.Filename, input)
	if err != nil {
		return "", err
	}
	if len(module.Exprs) == 0 {
		return "", nil
	}
	return ic.ctx.InterpretModule(module, ic.ctx.global)
}

// Names returns the sorted global names starting with prefix, for
// completion.
func (ic *InteractiveContext) Names(prefix string) []string {
	names := []string{}
	for _, name := range ic.ctx.global.Names() {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
