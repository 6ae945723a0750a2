// Package diagnostics defines Lox diagnostics for lex, parse, static and
// runtime errors, and the sink that reports them.
package diagnostics

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Diagnostic code constants.
const (
	ELex     = "E_LEX"
	EParse   = "E_PARSE"
	EStatic  = "E_STATIC"
	ERuntime = "E_RUNTIME"
	EIO      = "E_IO"
)

// Diagnostic represents a lex, parse, static or runtime diagnostic.
//
// Where is either empty, " at end" or " at '<lexeme>'".
type Diagnostic struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line"`
	Where   string `json:"where,omitempty"`
}

// MakeDiag creates a new Diagnostic.
func MakeDiag(code, message string, line int, where string) Diagnostic {
	return Diagnostic{
		Code:    code,
		Message: message,
		Line:    line,
		Where:   where,
	}
}

// AtEnd is the location suffix used for errors at the end of input.
const AtEnd = " at end"

// AtLexeme returns the location suffix for an error at the given lexeme.
func AtLexeme(lexeme string) string {
	return " at '" + lexeme + "'"
}

// IsSyntax reports whether d is a compile-time (non-runtime) diagnostic.
func (d Diagnostic) IsSyntax() bool {
	return d.Code == ELex || d.Code == EParse || d.Code == EStatic
}

// FormatDiagnostic formats a single diagnostic for display.
func FormatDiagnostic(d Diagnostic, asJSON bool) string {
	if asJSON {
		b, _ := json.Marshal(d)
		return string(b)
	}
	if d.Code == ERuntime {
		return FormatRuntime(d.Message, d.Line)
	}
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Where, d.Message)
}

// FormatDiagnostics formats a slice of diagnostics, one per line.
func FormatDiagnostics(diags []Diagnostic, asJSON bool) string {
	parts := make([]string, len(diags))
	for i, d := range diags {
		parts[i] = FormatDiagnostic(d, asJSON)
	}
	if asJSON {
		return "[" + strings.Join(parts, ",") + "]"
	}
	return strings.Join(parts, "\n")
}

// FormatRuntime formats a runtime error message with its source line.
func FormatRuntime(message string, line int) string {
	return fmt.Sprintf("%s\n[line %d]", message, line)
}
