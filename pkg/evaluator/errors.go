package evaluator

import (
	"github.com/longkhanh1987/CS-4080-HW/pkg/diagnostics"
	"github.com/longkhanh1987/CS-4080-HW/pkg/lexer"
)

// RuntimeError is a fault raised while executing a program. Token locates
// the fault for reporting.
type RuntimeError struct {
	Token   lexer.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// Diagnostic converts the error to the runtime diagnostic shape.
func (e *RuntimeError) Diagnostic() diagnostics.Diagnostic {
	return diagnostics.MakeDiag(diagnostics.ERuntime, e.Message, e.Token.Line, "")
}
