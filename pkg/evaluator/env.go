package evaluator

import "github.com/longkhanh1987/CS-4080-HW/pkg/lexer"

// Environment is one lexical scope. Lookup walks the enclosing chain one
// link at a time. Closures keep their defining environment alive.
type Environment struct {
	values    map[string]Value
	enclosing *Environment
}

// NewEnvironment creates a new environment with an optional enclosing scope.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		values:    make(map[string]Value),
		enclosing: enclosing,
	}
}

// Child creates a new scope whose enclosing scope is this environment.
func (e *Environment) Child() *Environment {
	return NewEnvironment(e)
}

// Enclosing returns the parent scope, or nil for the global scope.
func (e *Environment) Enclosing() *Environment {
	return e.enclosing
}

// DefineUninitialized binds name in this scope without a value. Reading it
// before a Define or Assign is a runtime error.
func (e *Environment) DefineUninitialized(name string) {
	e.values[name] = uninitialized{}
}

// Define binds name in this scope, replacing any existing binding here.
func (e *Environment) Define(name string, val Value) {
	e.values[name] = val
}

// Get looks up the variable named by tok.
func (e *Environment) Get(tok lexer.Token) (Value, error) {
	for env := e; env != nil; env = env.Enclosing() {
		val, ok := env.values[tok.Lexeme]
		if !ok {
			continue
		}
		if _, unset := val.(uninitialized); unset {
			return nil, &RuntimeError{
				Token:   tok,
				Message: "Variable '" + tok.Lexeme + "' is not initialized.",
			}
		}
		return val, nil
	}
	return nil, undefinedVariable(tok)
}

// Assign rebinds the innermost existing binding of tok's name. It never
// creates a binding.
func (e *Environment) Assign(tok lexer.Token, val Value) error {
	for env := e; env != nil; env = env.Enclosing() {
		if _, ok := env.values[tok.Lexeme]; ok {
			env.values[tok.Lexeme] = val
			return nil
		}
	}
	return undefinedVariable(tok)
}

func undefinedVariable(tok lexer.Token) *RuntimeError {
	return &RuntimeError{
		Token:   tok,
		Message: "Undefined variable '" + tok.Lexeme + "'.",
	}
}
