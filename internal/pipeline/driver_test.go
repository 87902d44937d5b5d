package pipeline

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"flint/internal/diag"
)

// stubSteps installs stand-in steps for every phase that record execution
// order and hand back the matching state variant.
func stubSteps(ran *[]Phase) *Steps {
	variant := func(p Phase) State {
		switch p {
		case PhaseParse:
			return &Parsed{}
		case PhaseExpand:
			return &Expanded{}
		case PhaseAssignIds:
			return &Assigned{}
		case PhaseAnalyze:
			return &Analyzed{}
		case PhaseTranslate:
			return &Translated{}
		case PhaseCodeGen:
			return &Generated{}
		case PhaseLink:
			return &Linked{}
		}
		return nil
	}
	steps := NewSteps()
	for _, p := range Phases() {
		p := p
		steps.Set(p, func(_ context.Context, _ *Session, _ State) (State, error) {
			*ran = append(*ran, p)
			return variant(p), nil
		})
	}
	return steps
}

func memConfig(steps *Steps) Config {
	return Config{
		Input: SourceInput{Name: "test.fl", Source: []byte("fn main() {}\n")},
		Steps: steps,
	}
}

// testCallbacks overrides individual hooks while delegating the rest.
type testCallbacks struct {
	Defaults
	early func(args []string, registry *diag.Registry) Signal
	late  func(args []string, sess *Session, input Input, outDir, outFile string) Signal
	build func(sess *Session) *ControllerSet
}

func (c *testCallbacks) EarlyCallback(args []string, registry *diag.Registry) Signal {
	if c.early != nil {
		return c.early(args, registry)
	}
	return c.Defaults.EarlyCallback(args, registry)
}

func (c *testCallbacks) LateCallback(args []string, sess *Session, input Input, outDir, outFile string) Signal {
	if c.late != nil {
		return c.late(args, sess, input, outDir, outFile)
	}
	return c.Defaults.LateCallback(args, sess, input, outDir, outFile)
}

func (c *testCallbacks) BuildController(sess *Session) *ControllerSet {
	if c.build != nil {
		return c.build(sess)
	}
	return c.Defaults.BuildController(sess)
}

func TestRunDefaultRunsEveryPhase(t *testing.T) {
	var ran []Phase
	res, err := Run(context.Background(), memConfig(stubSteps(&ran)), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Completed {
		t.Fatal("expected a completed run")
	}
	if res.Stopped {
		t.Fatal("default run must not report a stop")
	}
	if len(ran) != NumPhases {
		t.Fatalf("expected %d phases, ran %d: %v", NumPhases, len(ran), ran)
	}
	for i, p := range Phases() {
		if ran[i] != p {
			t.Fatalf("phase order broken at %d: got %v, want %v", i, ran[i], p)
		}
	}
	if res.LastPhase != PhaseLink {
		t.Fatalf("last phase = %v, want link", res.LastPhase)
	}
	if _, ok := res.LastState.(*Linked); !ok {
		t.Fatalf("last state = %T, want *Linked", res.LastState)
	}
}

func TestRunStopHaltsAfterPhase(t *testing.T) {
	var ran []Phase
	cb := &testCallbacks{build: func(*Session) *ControllerSet {
		cs := NewControllerSet()
		cs.Set(PhaseAnalyze, PhaseController{Stop: Stop})
		return cs
	}}
	res, err := Run(context.Background(), memConfig(stubSteps(&ran)), cb)
	if err != nil {
		t.Fatalf("deliberate stop must not be an error, got %v", err)
	}
	if !res.Stopped || res.Completed {
		t.Fatalf("want stopped, not completed; got stopped=%v completed=%v", res.Stopped, res.Completed)
	}
	if res.LastPhase != PhaseAnalyze {
		t.Fatalf("last phase = %v, want analyze", res.LastPhase)
	}
	want := []Phase{PhaseParse, PhaseExpand, PhaseAssignIds, PhaseAnalyze}
	if len(ran) != len(want) {
		t.Fatalf("ran %v, want %v", ran, want)
	}
}

func TestRunCallbackFiresBeforeStop(t *testing.T) {
	var ran []Phase
	var sawState State
	cb := &testCallbacks{build: func(*Session) *ControllerSet {
		cs := NewControllerSet()
		cs.Set(PhaseExpand, PhaseController{
			Stop: Stop,
			Callback: func(st State) error {
				sawState = st
				return nil
			},
		})
		return cs
	}}
	res, err := Run(context.Background(), memConfig(stubSteps(&ran)), cb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sawState == nil {
		t.Fatal("callback did not run before the stop was honored")
	}
	if _, ok := sawState.(*Expanded); !ok {
		t.Fatalf("callback saw %T, want *Expanded", sawState)
	}
	if !res.Stopped {
		t.Fatal("expected a stopped run")
	}
}

func TestRunStopSuppressesLaterCallbacks(t *testing.T) {
	var ran []Phase
	laterFired := false
	cb := &testCallbacks{build: func(*Session) *ControllerSet {
		cs := NewControllerSet()
		cs.Set(PhaseParse, PhaseController{Stop: Stop})
		cs.Set(PhaseAnalyze, PhaseController{Callback: func(State) error {
			laterFired = true
			return nil
		}})
		return cs
	}}
	if _, err := Run(context.Background(), memConfig(stubSteps(&ran)), cb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if laterFired {
		t.Fatal("callback after the stop phase must never fire")
	}
	if len(ran) != 1 || ran[0] != PhaseParse {
		t.Fatalf("only parse should have run, got %v", ran)
	}
}

func TestRunCallbackErrorAborts(t *testing.T) {
	var ran []Phase
	boom := errors.New("boom")
	cb := &testCallbacks{build: func(*Session) *ControllerSet {
		cs := NewControllerSet()
		cs.Set(PhaseAssignIds, PhaseController{Callback: func(State) error { return boom }})
		return cs
	}}
	res, err := Run(context.Background(), memConfig(stubSteps(&ran)), cb)
	var cbErr *CallbackError
	if !errors.As(err, &cbErr) {
		t.Fatalf("want *CallbackError, got %v", err)
	}
	if cbErr.Phase != PhaseAssignIds {
		t.Fatalf("callback error phase = %v, want assign-ids", cbErr.Phase)
	}
	if !errors.Is(err, boom) {
		t.Fatal("callback error must wrap the original error")
	}
	if res.Stopped {
		t.Fatal("a callback failure is not a deliberate stop")
	}
	if len(ran) != 3 {
		t.Fatalf("phases after the failure must not run, got %v", ran)
	}
}

func TestRunStepErrorWrapsPhaseError(t *testing.T) {
	var ran []Phase
	steps := stubSteps(&ran)
	boom := errors.New("translate exploded")
	steps.Set(PhaseTranslate, func(context.Context, *Session, State) (State, error) {
		return nil, boom
	})
	_, err := Run(context.Background(), memConfig(steps), nil)
	var phErr *PhaseError
	if !errors.As(err, &phErr) {
		t.Fatalf("want *PhaseError, got %v", err)
	}
	if phErr.Phase != PhaseTranslate {
		t.Fatalf("phase = %v, want translate", phErr.Phase)
	}
	if !errors.Is(err, boom) {
		t.Fatal("phase error must wrap the step error")
	}
	if len(ran) != NumPhases-3 {
		t.Fatalf("phases after the failure must not run, got %v", ran)
	}
}

func TestRunDiagnosticsFailThePhase(t *testing.T) {
	var ran []Phase
	steps := stubSteps(&ran)
	steps.Set(PhaseAnalyze, func(_ context.Context, sess *Session, _ State) (State, error) {
		sess.Bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.SemUnknownCall,
			Message:  "unknown function",
		})
		return &Analyzed{}, nil
	})
	res, err := Run(context.Background(), memConfig(steps), nil)
	var phErr *PhaseError
	if !errors.As(err, &phErr) {
		t.Fatalf("want *PhaseError, got %v", err)
	}
	if phErr.Phase != PhaseAnalyze {
		t.Fatalf("phase = %v, want analyze", phErr.Phase)
	}
	if !errors.Is(err, errDiagnostics) {
		t.Fatal("diagnostic failures must carry the diagnostics sentinel")
	}
	if res.LastPhase != PhaseAssignIds {
		t.Fatalf("failed phase must not publish its state, last = %v", res.LastPhase)
	}
}

func TestRunNoInput(t *testing.T) {
	var ran []Phase
	_, err := Run(context.Background(), Config{Steps: stubSteps(&ran)}, nil)
	var noInput *NoInputError
	if !errors.As(err, &noInput) {
		t.Fatalf("want *NoInputError, got %v", err)
	}
	if len(ran) != 0 {
		t.Fatalf("no phase may run without input, got %v", ran)
	}
}

func TestRunEarlyCallbackStop(t *testing.T) {
	var ran []Phase
	cb := &testCallbacks{early: func([]string, *diag.Registry) Signal { return Stop }}
	res, err := Run(context.Background(), memConfig(stubSteps(&ran)), cb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Stopped {
		t.Fatal("early stop must be a clean halt")
	}
	if res.Session != nil {
		t.Fatal("stopping early must not build a session")
	}
	if len(ran) != 0 {
		t.Fatalf("no phase may run after an early stop, got %v", ran)
	}
}

func TestRunLateCallbackStop(t *testing.T) {
	var ran []Phase
	cb := &testCallbacks{late: func([]string, *Session, Input, string, string) Signal { return Stop }}
	res, err := Run(context.Background(), memConfig(stubSteps(&ran)), cb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Stopped {
		t.Fatal("late stop must be a clean halt")
	}
	if res.Session == nil {
		t.Fatal("late callback runs against a live session")
	}
	if len(ran) != 0 {
		t.Fatalf("no phase may run after a late stop, got %v", ran)
	}
}

func TestRunPrintFileNamesWithoutInput(t *testing.T) {
	var ran []Phase
	var out bytes.Buffer
	res, err := Run(context.Background(), Config{
		PrintFileNames: true,
		Steps:          stubSteps(&ran),
	}, Defaults{Out: &out})
	if err != nil {
		t.Fatalf("print-file-names must synthesize an input, got %v", err)
	}
	if got := out.String(); got != "main\n" {
		t.Fatalf("printed %q, want %q", got, "main\n")
	}
	if !res.Stopped {
		t.Fatal("print-file-names run stops after parse")
	}
	if len(ran) != 1 || ran[0] != PhaseParse {
		t.Fatalf("only parse should have run, got %v", ran)
	}
}

// A custom Callbacks that only cares about one override keeps the
// print-file-names answer through delegation to the embedded defaults.
func TestRunPrintFileNamesSurvivesCustomization(t *testing.T) {
	var ran []Phase
	var out bytes.Buffer
	cb := &testCallbacks{
		Defaults: Defaults{Out: &out},
		early:    func([]string, *diag.Registry) Signal { return Continue },
	}
	res, err := Run(context.Background(), Config{
		PrintFileNames: true,
		OutputFile:     "app",
		Steps:          stubSteps(&ran),
	}, cb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.String(); got != "app\n" {
		t.Fatalf("printed %q, want %q", got, "app\n")
	}
	if !res.Stopped {
		t.Fatal("delegated defaults still stop after parse")
	}
}

func TestRunContextCancellation(t *testing.T) {
	var ran []Phase
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, memConfig(stubSteps(&ran)), nil)
	var phErr *PhaseError
	if !errors.As(err, &phErr) {
		t.Fatalf("want *PhaseError, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if len(ran) != 0 {
		t.Fatalf("cancelled run must not execute phases, got %v", ran)
	}
}

type recordingSink struct {
	events []Event
}

func (s *recordingSink) OnEvent(evt Event) { s.events = append(s.events, evt) }

func TestRunProgressEventsOnStop(t *testing.T) {
	var ran []Phase
	sink := &recordingSink{}
	cfg := memConfig(stubSteps(&ran))
	cfg.Progress = sink
	cb := &testCallbacks{build: func(*Session) *ControllerSet {
		cs := NewControllerSet()
		cs.Set(PhaseExpand, PhaseController{Stop: Stop})
		return cs
	}}
	if _, err := Run(context.Background(), cfg, cb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byPhase := map[Phase][]Status{}
	for _, evt := range sink.events {
		byPhase[evt.Phase] = append(byPhase[evt.Phase], evt.Status)
	}
	for _, p := range []Phase{PhaseParse, PhaseExpand} {
		got := byPhase[p]
		if len(got) != 2 || got[0] != StatusWorking || got[1] != StatusDone {
			t.Fatalf("phase %v events = %v, want [working done]", p, got)
		}
	}
	for p := PhaseAssignIds; p < numPhases; p++ {
		got := byPhase[p]
		if len(got) != 1 || got[0] != StatusSkipped {
			t.Fatalf("phase %v events = %v, want [skipped]", p, got)
		}
	}
}

func TestRunGlobMapFlagReachesSession(t *testing.T) {
	var ran []Phase
	var sawFlag bool
	steps := stubSteps(&ran)
	steps.Set(PhaseAnalyze, func(_ context.Context, sess *Session, _ State) (State, error) {
		sawFlag = sess.produceGlobMap
		return &Analyzed{}, nil
	})
	cb := &testCallbacks{build: func(*Session) *ControllerSet {
		cs := NewControllerSet()
		cs.ProduceGlobMap = true
		return cs
	}}
	if _, err := Run(context.Background(), memConfig(steps), cb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sawFlag {
		t.Fatal("ProduceGlobMap must be visible to the analyze step")
	}
}

func TestResolveNamingDefaults(t *testing.T) {
	tests := []struct {
		name      string
		input     Input
		wantCrate string
	}{
		{"file input", FileInput{Path: "examples/app.fl"}, "app"},
		{"virtual input", SourceInput{Name: "<input>"}, "main"},
		{"named virtual", SourceInput{Name: "lib.fl"}, "lib"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := NewSession(&Options{}, diag.NewRegistry())
			sess.Input = tt.input
			resolveNaming(sess)
			if sess.Opts.CrateName != tt.wantCrate {
				t.Errorf("crate = %q, want %q", sess.Opts.CrateName, tt.wantCrate)
			}
			if sess.Opts.OutDir != "target" {
				t.Errorf("out dir = %q, want target", sess.Opts.OutDir)
			}
		})
	}
}

func TestPhaseStrings(t *testing.T) {
	want := []string{"parse", "expand", "assign-ids", "analyze", "translate", "codegen", "link"}
	phases := Phases()
	if len(phases) != len(want) {
		t.Fatalf("phase count = %d, want %d", len(phases), len(want))
	}
	for i, p := range phases {
		if p.String() != want[i] {
			t.Errorf("phase %d = %q, want %q", i, p, want[i])
		}
	}
}
