package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"flint/internal/diag"
	"flint/internal/project"
)

// Config describes one pipeline invocation. Interpretation of Args belongs
// to the CLI layer; the driver only passes them through to the callbacks.
type Config struct {
	Args []string

	// Input may be nil; TransformAbsentInput then decides the outcome.
	Input     Input
	InputPath string

	OutputDir  string
	OutputFile string
	CrateName  string

	Registry       *diag.Registry
	MaxDiagnostics int
	PrintFileNames bool
	Timings        bool

	// Steps substitutes the production steps; nil means DefaultSteps.
	Steps *Steps
	// Progress receives phase events; nil disables them.
	Progress ProgressSink
}

// Result captures how a run ended.
type Result struct {
	Session *Session
	// LastPhase is the last phase whose production step ran.
	LastPhase Phase
	// LastState is the state that phase produced.
	LastState State
	// Stopped is true for a clean deliberate halt (callback Signal or
	// PhaseController.Stop), which is not an error.
	Stopped bool
	// Completed is true when every phase ran.
	Completed bool
}

// Run executes the pipeline for cfg, dispatching to cb at every control
// point. The callbacks object is an explicit dependency; there is no
// ambient "current callbacks" anywhere.
//
// Phases run strictly in order on the calling goroutine. For each phase the
// production step runs first, then the phase callback (if any), and only
// then is the Stop flag honored: a registered callback always completes
// before its phase halts the pipeline, and no later callback ever fires.
func Run(ctx context.Context, cfg Config, cb Callbacks) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cb == nil {
		cb = Defaults{}
	}
	registry := cfg.Registry
	if registry == nil {
		registry = diag.NewRegistry()
	}

	res := &Result{}

	if cb.EarlyCallback(cfg.Args, registry) == Stop {
		res.Stopped = true
		return res, nil
	}

	opts := &Options{
		CrateName:      cfg.CrateName,
		OutDir:         cfg.OutputDir,
		OutFile:        cfg.OutputFile,
		PrintFileNames: cfg.PrintFileNames,
		MaxDiagnostics: cfg.MaxDiagnostics,
		Timings:        cfg.Timings,
	}

	// input resolution: substitution hook for present input, synthesis
	// hook for absent input
	input, inputPath := cfg.Input, cfg.InputPath
	if input != nil {
		input, inputPath = cb.TransformPresentInput(input, inputPath)
	} else {
		var ok bool
		input, inputPath, ok = cb.TransformAbsentInput(cfg.Args, opts, opts.OutDir, opts.OutFile, registry)
		if !ok {
			return res, &NoInputError{}
		}
	}

	sess := NewSession(opts, registry)
	sess.Input = input
	sess.InputPath = inputPath
	resolveNaming(sess)
	res.Session = sess

	if cb.LateCallback(cfg.Args, sess, input, opts.OutDir, opts.OutFile) == Stop {
		res.Stopped = true
		return res, nil
	}

	// built exactly once, immediately before the first phase
	ctl := cb.BuildController(sess)
	if ctl == nil {
		ctl = NewControllerSet()
	}
	sess.produceGlobMap = ctl.ProduceGlobMap

	steps := cfg.Steps
	if steps == nil {
		steps = DefaultSteps()
	}

	return res, runPhases(ctx, cfg, sess, steps, ctl, res)
}

func runPhases(ctx context.Context, cfg Config, sess *Session, steps *Steps, ctl *ControllerSet, res *Result) error {
	emit := func(evt Event) {
		if cfg.Progress != nil {
			cfg.Progress.OnEvent(evt)
		}
	}
	skipRemaining := func(after Phase) {
		for p := after + 1; p < numPhases; p++ {
			emit(Event{Phase: p, Status: StatusSkipped})
		}
	}

	var st State
	for _, ph := range Phases() {
		if err := ctx.Err(); err != nil {
			return &PhaseError{Phase: ph, Err: err}
		}

		emit(Event{Phase: ph, Status: StatusWorking})
		started := time.Now()
		lap := sess.Timer.Start(ph.String())

		step := steps.Func(ph)
		if step == nil {
			step = stepMissing
		}
		next, err := step(ctx, sess, st)
		lap.Stop()
		elapsed := time.Since(started)

		if err == nil && sess.Bag.HasErrors() {
			err = errDiagnostics
		}
		if err != nil {
			perr := &PhaseError{Phase: ph, Err: err}
			emit(Event{Phase: ph, Status: StatusError, Err: perr, Elapsed: elapsed})
			skipRemaining(ph)
			return perr
		}

		st = next
		res.LastPhase = ph
		res.LastState = st

		// the callback sees the fresh state before Stop is honored
		ctrl := ctl.Controller(ph)
		if ctrl.Callback != nil {
			if cerr := ctrl.Callback(st); cerr != nil {
				werr := &CallbackError{Phase: ph, Err: cerr}
				emit(Event{Phase: ph, Status: StatusError, Err: werr, Elapsed: elapsed})
				skipRemaining(ph)
				return werr
			}
		}
		emit(Event{Phase: ph, Status: StatusDone, Elapsed: elapsed})

		if ctrl.Stop == Stop {
			res.Stopped = true
			skipRemaining(ph)
			return nil
		}
	}
	res.Completed = true
	return nil
}

// resolveNaming fills crate name, output dir, and manifest from the input
// path once the input is known.
func resolveNaming(sess *Session) {
	opts := sess.Opts

	if sess.InputPath != "" {
		if manifestPath, ok := project.Find(filepath.Dir(sess.InputPath)); ok {
			if m, err := project.Load(manifestPath); err == nil {
				sess.Manifest = m
				if opts.CrateName == "" {
					opts.CrateName = m.Package.Name
				}
				if opts.OutDir == "" && m.Package.Output != "" {
					opts.OutDir = filepath.Join(filepath.Dir(manifestPath), m.Package.Output)
				}
			}
		}
	}
	if opts.CrateName == "" {
		switch in := sess.Input.(type) {
		case FileInput:
			opts.CrateName = project.CrateNameFor(in.Path)
		case SourceInput:
			opts.CrateName = project.CrateNameFor(in.Name)
		default:
			opts.CrateName = "main"
		}
	}
	if opts.OutDir == "" {
		opts.OutDir = "target"
	}
}
