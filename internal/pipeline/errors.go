package pipeline

import "fmt"

// CommandLineError reports malformed or unsupported arguments. It is raised
// by the option-parsing layer before EarlyCallback ever runs.
type CommandLineError struct {
	Msg string
}

func (e *CommandLineError) Error() string {
	return "command line error: " + e.Msg
}

// NoInputError reports that no input was supplied and TransformAbsentInput
// declined to synthesize one.
type NoInputError struct{}

func (*NoInputError) Error() string {
	return "no input filename given"
}

// PhaseError wraps a failure inside a phase production step. The pipeline
// never retries; all later phases are abandoned.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("phase %s failed: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }

// CallbackError wraps a failure raised by a tool-supplied phase callback.
// It aborts the remaining phases and is reported as an error, unlike a
// deliberate Stop.
type CallbackError struct {
	Phase Phase
	Err   error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("callback at phase %s failed: %v", e.Phase, e.Err)
}

func (e *CallbackError) Unwrap() error { return e.Err }

// errDiagnostics marks a phase that completed mechanically but reported
// error diagnostics; the driver wraps it in a PhaseError.
var errDiagnostics = fmt.Errorf("diagnostics reported errors")
