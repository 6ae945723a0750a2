// Package stdlib provides the Lox native function registry.
package stdlib

import (
	"sort"

	"github.com/longkhanh1987/CS-4080-HW/pkg/evaluator"
)

// Fn represents a native function.
type Fn struct {
	Name    string
	Arity   int
	Execute evaluator.NativeFunc
}

// Registry holds registered native functions.
type Registry struct {
	fns map[string]*Fn
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		fns: make(map[string]*Fn),
	}
}

// Register adds a native function to the registry.
func (r *Registry) Register(fn Fn) {
	r.fns[fn.Name] = &fn
}

// Get retrieves a native function by name.
func (r *Registry) Get(name string) *Fn {
	return r.fns[name]
}

// All returns all registered native functions.
func (r *Registry) All() map[string]*Fn {
	return r.fns
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.fns))
	for name := range r.fns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Install defines every registered function in env.
func (r *Registry) Install(env *evaluator.Environment) {
	for _, fn := range r.fns {
		env.Define(fn.Name, evaluator.NewNative(fn.Name, fn.Arity, fn.Execute))
	}
}

// Defaults returns a registry holding the default natives.
func Defaults() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}
