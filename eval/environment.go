package eval

// Environment is one frame of a scope chain. Frames are shared by
// reference between closures and call frames.
type Environment struct {
	store map[string]Value
	keys  []string // insertion order, for KeyOf
	outer *Environment
}

func NewEnvironment(outer *Environment) *Environment {
	return &Environment{
		store: map[string]Value{},
		outer: outer,
	}
}

// Outer returns the enclosing environment, nil for the root.
func (e *Environment) Outer() *Environment { return e.outer }

// Define binds the given name to the given value in this frame only.
func (e *Environment) Define(name string, value Value) {
	if _, ok := e.store[name]; !ok {
		e.keys = append(e.keys, name)
	}
	e.store[name] = value
}

// Resolve returns the closest environment where name is bound.
func (e *Environment) Resolve(name string) *Environment {
	for env := e; env != nil; env = env.outer {
		if _, ok := env.store[name]; ok {
			return env
		}
	}
	return nil
}

// Get gets the given name from the environment, traversing
// the outer environments if it is not found.
func (e *Environment) Get(name string) (Value, bool) {
	env := e.Resolve(name)
	if env == nil {
		return nil, false
	}
	return env.store[name], true
}

// Set rebinds name in the closest frame that already has it. It
// reports false when no frame does.
func (e *Environment) Set(name string, value Value) bool {
	env := e.Resolve(name)
	if env == nil {
		return false
	}
	env.store[name] = value
	return true
}

// KeyOf returns the first name in this frame (not its ancestors)
// bound to value. It is only used to print procedure names.
func (e *Environment) KeyOf(value Value) (string, bool) {
	for _, key := range e.keys {
		if e.store[key] == value {
			return key, true
		}
	}
	return "", false
}

// Names lists every name visible from this frame, innermost first.
// Shadowed names are listed once.
func (e *Environment) Names() []string {
	seen := map[string]bool{}
	names := []string{}
	for env := e; env != nil; env = env.outer {
		for _, key := range env.keys {
			if !seen[key] {
				seen[key] = true
				names = append(names, key)
			}
		}
	}
	return names
}
