package evaluator

// DefaultMaxCallDepth bounds nested function calls when no budget is set.
const DefaultMaxCallDepth = 4096

// Budget holds the resource limits for an interpreter.
type Budget struct {
	// MaxCallDepth is the deepest allowed chain of active calls. Zero
	// means DefaultMaxCallDepth.
	MaxCallDepth int
}

func (b Budget) maxCallDepth() int {
	if b.MaxCallDepth <= 0 {
		return DefaultMaxCallDepth
	}
	return b.MaxCallDepth
}

// BudgetTracker tracks resource consumption during execution.
type BudgetTracker struct {
	CallDepth int
	// Calls counts every call made since the interpreter was created.
	Calls int64
}
