package pipeline

import "context"

// StepFunc is one phase production step: it consumes the previous phase's
// state and produces the next. Steps are opaque to the driver; a failure
// aborts the remaining phases without retry.
type StepFunc func(ctx context.Context, sess *Session, prev State) (State, error)

// Steps maps every phase to its production step. Tests substitute stand-in
// steps; real runs use DefaultSteps.
type Steps struct {
	funcs [numPhases]StepFunc
}

// NewSteps returns an empty step table.
func NewSteps() *Steps {
	return &Steps{}
}

// Set installs the step for p and returns the table for chaining.
func (s *Steps) Set(p Phase, fn StepFunc) *Steps {
	s.funcs[p] = fn
	return s
}

// Func returns the step installed for p, or nil.
func (s *Steps) Func(p Phase) StepFunc {
	return s.funcs[p]
}

// DefaultSteps wires the real toy-compiler production steps.
func DefaultSteps() *Steps {
	return NewSteps().
		Set(PhaseParse, stepParse).
		Set(PhaseExpand, stepExpand).
		Set(PhaseAssignIds, stepAssignIds).
		Set(PhaseAnalyze, stepAnalyze).
		Set(PhaseTranslate, stepTranslate).
		Set(PhaseCodeGen, stepCodeGen).
		Set(PhaseLink, stepLink)
}
