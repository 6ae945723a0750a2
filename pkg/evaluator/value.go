// Package evaluator implements the Lox tree-walking interpreter: runtime
// values, the environment chain and statement execution.
package evaluator

import (
	"math"
	"strconv"
)

// Value is the interface for all Lox runtime values.
// Use the sealed marker method to restrict implementations to this package.
type Value interface {
	loxValue() // sealed marker
}

// Nil represents the nil value.
type Nil struct{}

func (Nil) loxValue() {}

// Bool represents a boolean value.
type Bool struct {
	Value bool
}

func (Bool) loxValue() {}

// Number represents a numeric value. Lox has a single double-precision
// number type.
type Number struct {
	Value float64
}

func (Number) loxValue() {}

// String represents a string value.
type String struct {
	Value string
}

func (String) loxValue() {}

// uninitialized marks a binding that has been declared but not yet given a
// value. It never escapes the environment.
type uninitialized struct{}

func (uninitialized) loxValue() {}

// NewNil creates a nil value.
func NewNil() Value {
	return Nil{}
}

// NewBool creates a boolean value.
func NewBool(b bool) Value {
	return Bool{Value: b}
}

// NewNumber creates a numeric value.
func NewNumber(n float64) Value {
	return Number{Value: n}
}

// NewString creates a string value.
func NewString(s string) Value {
	return String{Value: s}
}

// FromLiteral converts a parsed literal (nil, bool, float64 or string) to
// a runtime value.
func FromLiteral(v any) Value {
	switch val := v.(type) {
	case bool:
		return NewBool(val)
	case float64:
		return NewNumber(val)
	case string:
		return NewString(val)
	default:
		return NewNil()
	}
}

// Truthiness returns the boolean interpretation of a Lox value.
// nil and false are falsy; everything else is truthy.
func Truthiness(v Value) bool {
	switch val := v.(type) {
	case Nil:
		return false
	case Bool:
		return val.Value
	default:
		return true
	}
}

// Equal reports whether two values are equal. Values of different types
// are never equal; callables compare by identity.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av.Value == bv.Value
	case Number:
		bv, ok := b.(Number)
		return ok && av.Value == bv.Value
	case String:
		bv, ok := b.(String)
		return ok && av.Value == bv.Value
	}
	return a == b
}

// Stringify renders a value the way print shows it.
func Stringify(v Value) string {
	switch val := v.(type) {
	case Nil:
		return "nil"
	case Bool:
		return strconv.FormatBool(val.Value)
	case Number:
		return formatNumber(val.Value)
	case String:
		return val.Value
	case *Function:
		return "<fn " + val.Name() + ">"
	case *Native:
		return "<native fn>"
	}
	return ""
}

// formatNumber drops the fractional part of integral values.
func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case math.Abs(n) >= 1e21:
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// TypeName returns the Lox type name of a value.
func TypeName(v Value) string {
	switch v.(type) {
	case Nil:
		return "nil"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Callable:
		return "function"
	default:
		return "unknown"
	}
}
