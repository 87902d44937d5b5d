package pipeline

import (
	"flint/internal/diag"
	"flint/internal/observ"
	"flint/internal/project"
	"flint/internal/source"
)

// Options are the processed invocation options the pipeline runs under.
// They are fixed before LateCallback fires.
type Options struct {
	CrateName string
	OutDir    string
	OutFile   string

	// PrintFileNames asks the tool to print the names of the files it
	// would produce instead of doing a full build. Build-tool integrations
	// query this; see Defaults.LateCallback.
	PrintFileNames bool

	MaxDiagnostics int
	Timings        bool
}

// Session is the per-run environment shared by the driver, the production
// steps, and (read-only) the callbacks.
type Session struct {
	Opts     *Options
	Registry *diag.Registry
	Files    *source.FileSet
	Bag      *diag.Bag
	Timer    *observ.Timer
	Manifest *project.Manifest // nil when no flint.toml was found

	// resolved input, set by the driver before the phase loop
	Input     Input
	InputPath string

	// copied from the ControllerSet before the phase loop
	produceGlobMap bool
}

// NewSession builds a session for one run.
func NewSession(opts *Options, registry *diag.Registry) *Session {
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = 100
	}
	return &Session{
		Opts:     opts,
		Registry: registry,
		Files:    source.NewFileSet(),
		Bag:      diag.NewBag(opts.MaxDiagnostics),
		Timer:    observ.NewTimer(),
	}
}

// Reporter returns the session's diagnostic sink.
func (s *Session) Reporter() diag.Reporter {
	return diag.BagReporter{Bag: s.Bag}
}
