// Package pipeline drives compilation as a fixed sequence of phases, with a
// per-phase control point for inspecting state and halting early.
//
// The driver owns all pipeline state. Callers customize a run through the
// Callbacks interface and the ControllerSet it builds; everything else is
// the default toolchain behavior.
package pipeline

// Phase is one ordered stage of the pipeline.
//
// The total order is fixed: phases never run out of order, concurrently,
// or more than once per run.
type Phase uint8

const (
	// PhaseParse turns source bytes into the unexpanded syntax tree.
	PhaseParse Phase = iota
	// PhaseExpand rewrites macro invocations into plain calls.
	PhaseExpand
	// PhaseAssignIds numbers every node of the expanded tree.
	PhaseAssignIds
	// PhaseAnalyze builds the semantic side tables.
	PhaseAnalyze
	// PhaseTranslate lowers the tree into IR; the tree is discarded.
	PhaseTranslate
	// PhaseCodeGen serializes the IR into an object file.
	PhaseCodeGen
	// PhaseLink produces the final output from the object.
	PhaseLink

	numPhases
)

// NumPhases is the number of pipeline phases.
const NumPhases = int(numPhases)

func (p Phase) String() string {
	switch p {
	case PhaseParse:
		return "parse"
	case PhaseExpand:
		return "expand"
	case PhaseAssignIds:
		return "assign-ids"
	case PhaseAnalyze:
		return "analyze"
	case PhaseTranslate:
		return "translate"
	case PhaseCodeGen:
		return "codegen"
	case PhaseLink:
		return "link"
	}
	return "unknown"
}

// Phases returns every phase in execution order.
func Phases() []Phase {
	out := make([]Phase, 0, NumPhases)
	for p := PhaseParse; p < numPhases; p++ {
		out = append(out, p)
	}
	return out
}
