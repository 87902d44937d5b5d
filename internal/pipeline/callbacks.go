package pipeline

import (
	"fmt"
	"io"
	"os"

	"flint/internal/diag"
)

// Callbacks is the caller-supplied customization surface of the pipeline.
//
// Implementations embed Defaults and override only what they need; the
// embedded value supplies reference behavior for everything else, which
// keeps build-tool integrations (print-file-names queries and the like)
// working even under heavy customization.
type Callbacks interface {
	// EarlyCallback runs right after raw argument parsing, before option
	// validation. It must not mutate args.
	EarlyCallback(args []string, registry *diag.Registry) Signal

	// LateCallback runs after all option processing, immediately before
	// the first phase.
	LateCallback(args []string, sess *Session, input Input, outDir, outFile string) Signal

	// TransformPresentInput may substitute the source to compile.
	// The default is identity.
	TransformPresentInput(input Input, path string) (Input, string)

	// TransformAbsentInput runs when the caller supplied no input.
	// Returning ok=false means the pipeline cannot proceed (NoInputError).
	TransformAbsentInput(args []string, opts *Options, outDir, outFile string,
		registry *diag.Registry) (input Input, path string, ok bool)

	// BuildController produces the ControllerSet for this run. It is
	// called exactly once, after LateCallback and before the phase loop,
	// and is the single place to stop early or attach phase callbacks.
	BuildController(sess *Session) *ControllerSet
}

// Defaults is the reference Callbacks implementation: the full pipeline,
// unmodified. Out receives print-file-names output and defaults to stdout.
type Defaults struct {
	Out io.Writer
}

var _ Callbacks = Defaults{}

func (Defaults) EarlyCallback([]string, *diag.Registry) Signal { return Continue }

// LateCallback answers print-file-names queries the way build tools expect:
// print the would-be outputs and keep going (the default controller then
// stops after parse instead of doing a full build).
func (d Defaults) LateCallback(_ []string, sess *Session, _ Input, _, outFile string) Signal {
	if sess != nil && sess.Opts.PrintFileNames {
		out := d.Out
		if out == nil {
			out = os.Stdout
		}
		name := outFile
		if name == "" {
			name = sess.Opts.CrateName
		}
		fmt.Fprintln(out, name)
	}
	return Continue
}

func (Defaults) TransformPresentInput(input Input, path string) (Input, string) {
	return input, path
}

// TransformAbsentInput fails by default: compiling nothing is a fatal,
// unrecoverable error in the reference tool. The one exception is a
// print-file-names query, which synthesizes an empty input so the answer
// can still be produced. Tools wanting a constructive message or a default
// input override this hook.
func (Defaults) TransformAbsentInput(_ []string, opts *Options, _, _ string,
	_ *diag.Registry) (Input, string, bool) {
	if opts != nil && opts.PrintFileNames {
		return SourceInput{Name: "<none>"}, "", true
	}
	return nil, "", false
}

// BuildController returns the all-default set, except that a
// print-file-names run stops after parse: the query was already answered
// in LateCallback and there is nothing to build.
func (Defaults) BuildController(sess *Session) *ControllerSet {
	cs := NewControllerSet()
	if sess != nil && sess.Opts.PrintFileNames {
		cs.Set(PhaseParse, PhaseController{Stop: Stop})
	}
	return cs
}
