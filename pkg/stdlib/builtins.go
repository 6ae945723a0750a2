package stdlib

import (
	"fmt"
	"unicode/utf8"

	"github.com/longkhanh1987/CS-4080-HW/pkg/evaluator"
)

// RegisterDefaults adds all native functions.
func RegisterDefaults(r *Registry) {
	r.Register(Fn{Name: "clock", Arity: 0, Execute: nativeClock})
	r.Register(Fn{Name: "str", Arity: 1, Execute: nativeStr})
	r.Register(Fn{Name: "len", Arity: 1, Execute: nativeLen})
	r.Register(Fn{Name: "type", Arity: 1, Execute: nativeType})
}

// clock() → seconds as a number, for measuring elapsed time
func nativeClock(_ []evaluator.Value) (evaluator.Value, error) {
	return evaluator.NewNumber(hiresSeconds()), nil
}

// str(v) → v as print would show it
func nativeStr(args []evaluator.Value) (evaluator.Value, error) {
	return evaluator.NewString(evaluator.Stringify(args[0])), nil
}

// len(s) → number of characters in a string
func nativeLen(args []evaluator.Value) (evaluator.Value, error) {
	s, ok := args[0].(evaluator.String)
	if !ok {
		return nil, fmt.Errorf("len() expects a string but got %s.", evaluator.TypeName(args[0]))
	}
	return evaluator.NewNumber(float64(utf8.RuneCountInString(s.Value))), nil
}

// type(v) → "nil", "boolean", "number", "string" or "function"
func nativeType(args []evaluator.Value) (evaluator.Value, error) {
	return evaluator.NewString(evaluator.TypeName(args[0])), nil
}
