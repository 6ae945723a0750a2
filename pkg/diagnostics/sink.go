package diagnostics

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/tevino/abool/v2"
)

// Sink receives diagnostics and remembers whether a syntax or runtime
// error was reported since the last Reset.
type Sink struct {
	w               io.Writer
	syntaxColor     *color.Color
	runtimeColor    *color.Color
	hadError        *abool.AtomicBool
	hadRuntimeError *abool.AtomicBool
}

// NewSink creates a sink writing to w. When colored is false no escape
// sequences are emitted.
func NewSink(w io.Writer, colored bool) *Sink {
	s := &Sink{
		w:               w,
		syntaxColor:     color.New(color.FgRed),
		runtimeColor:    color.New(color.FgYellow),
		hadError:        abool.New(),
		hadRuntimeError: abool.New(),
	}
	if colored {
		s.syntaxColor.EnableColor()
		s.runtimeColor.EnableColor()
	} else {
		s.syntaxColor.DisableColor()
		s.runtimeColor.DisableColor()
	}
	return s
}

// Report writes a diagnostic and sets the matching error flag.
func (s *Sink) Report(d Diagnostic) {
	if !d.IsSyntax() {
		s.RuntimeError(d.Message, d.Line)
		return
	}
	fmt.Fprintln(s.w, s.syntaxColor.Sprint(FormatDiagnostic(d, false)))
	s.hadError.Set()
}

// ReportAll reports each diagnostic in order.
func (s *Sink) ReportAll(diags []Diagnostic) {
	for _, d := range diags {
		s.Report(d)
	}
}

// RuntimeError writes a runtime error in the "<message>\n[line L]" shape.
func (s *Sink) RuntimeError(message string, line int) {
	fmt.Fprintln(s.w, s.runtimeColor.Sprint(FormatRuntime(message, line)))
	s.hadRuntimeError.Set()
}

// HadError reports whether a syntax error was reported.
func (s *Sink) HadError() bool {
	return s.hadError.IsSet()
}

// HadRuntimeError reports whether a runtime error was reported.
func (s *Sink) HadRuntimeError() bool {
	return s.hadRuntimeError.IsSet()
}

// Reset clears both error flags. The interactive driver calls it once per
// input chunk.
func (s *Sink) Reset() {
	s.hadError.UnSet()
	s.hadRuntimeError.UnSet()
}
