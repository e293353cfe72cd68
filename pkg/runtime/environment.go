package runtime

// Environment maps names to values within one scope and links to the scope
// that encloses it. Blocks and call frames create child environments;
// closures hold a pointer to the environment active at their declaration,
// which keeps the chain reachable for as long as the closure lives.
type Environment struct {
	values    map[string]Value
	enclosing *Environment
}

// NewEnvironment creates a scope with no enclosing scope (the global scope).
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Value)}
}

// NewEnclosedEnvironment creates a child scope of enclosing.
func NewEnclosedEnvironment(enclosing *Environment) *Environment {
	return &Environment{values: make(map[string]Value), enclosing: enclosing}
}

// Define binds name in this scope. Redefining a name in the same scope is
// permitted and simply rebinds it.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get resolves name by walking the chain from this scope outward.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.enclosing {
		if value, ok := env.values[name]; ok {
			return value, true
		}
	}
	return nil, false
}

// Assign mutates the nearest enclosing binding of name. It reports false
// when no scope in the chain binds the name; assignment never declares.
func (e *Environment) Assign(name string, value Value) bool {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values[name]; ok {
			env.values[name] = value
			return true
		}
	}
	return false
}

// Enclosing exposes the parent scope, nil for the global scope.
func (e *Environment) Enclosing() *Environment {
	return e.enclosing
}
