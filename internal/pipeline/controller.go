package pipeline

// Signal tells the driver whether to keep going after a control point.
type Signal uint8

const (
	// Continue proceeds to the next phase or control point.
	Continue Signal = iota
	// Stop halts the pipeline cleanly after the current control point.
	Stop
)

func (s Signal) String() string {
	if s == Stop {
		return "stop"
	}
	return "continue"
}

// PhaseCallback inspects the state a phase just produced. It must treat the
// state as read-only; external side effects (printing, recording) are fine.
// A returned error aborts the remaining phases as a CallbackError.
type PhaseCallback func(State) error

// PhaseController configures one phase boundary. The zero value is the
// default: continue, no callback.
//
// When both are set, the callback always runs before Stop is honored.
type PhaseController struct {
	Stop     Signal
	Callback PhaseCallback
}

// ControllerSet holds one PhaseController per phase plus run-wide flags.
// Callbacks.BuildController produces it exactly once per run, before the
// first phase executes; the driver never mutates it afterward.
type ControllerSet struct {
	controllers [numPhases]PhaseController

	// ProduceGlobMap asks the analyze phase to record glob imports.
	ProduceGlobMap bool
}

// NewControllerSet returns the all-default set: every phase continues with
// no callback, reproducing the full unmodified pipeline.
func NewControllerSet() *ControllerSet {
	return &ControllerSet{}
}

// Controller returns the controller configured for p.
func (cs *ControllerSet) Controller(p Phase) PhaseController {
	return cs.controllers[p]
}

// Set configures the controller for p. Meant to be called while building
// the set, before the driver starts.
func (cs *ControllerSet) Set(p Phase, c PhaseController) {
	cs.controllers[p] = c
}
