package evaluator

import "github.com/longkhanh1987/CS-4080-HW/pkg/ast"

// Callable is a value that can appear in call position.
type Callable interface {
	Value
	Name() string
	Arity() int
	Call(in *Interpreter, args []Value) (Value, error)
}

// Function is a user-defined function closed over its defining scope.
type Function struct {
	decl    *ast.FunctionStmt
	closure *Environment
}

func (*Function) loxValue() {}

func (f *Function) Name() string { return f.decl.Name.Lexeme }
func (f *Function) Arity() int   { return len(f.decl.Params) }

// Call binds the arguments in a fresh scope under the closure and runs the
// body. Falling off the end returns nil.
func (f *Function) Call(in *Interpreter, args []Value) (Value, error) {
	env := f.closure.Child()
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	c, err := in.executeBlock(f.decl.Body, env)
	if err != nil {
		return nil, err
	}
	if c.kind == completionReturn {
		return c.value, nil
	}
	return NewNil(), nil
}

// NativeFunc implements a native function. Errors that are not
// *RuntimeError are reported at the call site.
type NativeFunc func(args []Value) (Value, error)

// Native is a function implemented in Go.
type Native struct {
	name  string
	arity int
	fn    NativeFunc
}

// NewNative wraps fn as a callable Lox value.
func NewNative(name string, arity int, fn NativeFunc) *Native {
	return &Native{name: name, arity: arity, fn: fn}
}

func (*Native) loxValue() {}

func (n *Native) Name() string { return n.name }
func (n *Native) Arity() int   { return n.arity }

func (n *Native) Call(_ *Interpreter, args []Value) (Value, error) {
	return n.fn(args)
}
