package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"flint/internal/ir"
)

func runSource(t *testing.T, src string, cb Callbacks) (*Result, error) {
	t.Helper()
	cfg := Config{
		Input:     SourceInput{Name: "main.fl", Source: []byte(src)},
		OutputDir: t.TempDir(),
	}
	return Run(context.Background(), cfg, cb)
}

func TestCompileEndToEnd(t *testing.T) {
	src := `
use std::io;

fn greet(who) {
    println!("hello", who);
}

fn main() {
    greet("world");
}
`
	res, err := runSource(t, src, nil)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if !res.Completed {
		t.Fatal("expected a completed run")
	}

	linked, ok := res.LastState.(*Linked)
	if !ok {
		t.Fatalf("last state = %T, want *Linked", res.LastState)
	}
	image, err := os.ReadFile(linked.OutputPath)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if !bytes.HasPrefix(image, []byte("FLX1")) {
		t.Fatalf("output lacks image magic, starts with %q", image[:4])
	}

	obj, err := ir.ReadObjectFile(filepath.Join(filepath.Dir(linked.OutputPath), "main.flo"))
	if err != nil {
		t.Fatalf("object unreadable: %v", err)
	}
	if obj.Entry != "main" {
		t.Fatalf("entry = %q, want main", obj.Entry)
	}
	if len(obj.Funcs) != 2 {
		t.Fatalf("funcs = %d, want 2", len(obj.Funcs))
	}

	greet, ok := findFunc(obj, "greet")
	if !ok {
		t.Fatal("greet not in object")
	}
	if !hasCall(greet, "println", 2) {
		t.Fatalf("greet should call println with 2 args after expansion, instrs: %v", greet.Instrs)
	}
}

func findFunc(obj *ir.ObjectFile, name string) (ir.Func, bool) {
	for _, fn := range obj.Funcs {
		if fn.Name == name {
			return fn, true
		}
	}
	return ir.Func{}, false
}

func hasCall(fn ir.Func, callee string, n uint32) bool {
	for _, in := range fn.Instrs {
		if in.Op == ir.OpCall && in.Text == callee && in.N == n {
			return true
		}
	}
	return false
}

func TestCompileNestedFnQualifiedName(t *testing.T) {
	src := `
fn main() {
    fn helper() {}
    helper();
}
`
	var sawIR *ir.Module
	cb := &testCallbacks{build: func(*Session) *ControllerSet {
		cs := NewControllerSet()
		cs.Set(PhaseTranslate, PhaseController{
			Stop: Stop,
			Callback: func(st State) error {
				sawIR = st.(*Translated).IR
				return nil
			},
		})
		return cs
	}}
	if _, err := runSource(t, src, cb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sawIR == nil {
		t.Fatal("translate callback did not fire")
	}
	if _, ok := sawIR.Lookup("main::helper"); !ok {
		names := make([]string, 0, len(sawIR.Funcs))
		for _, fn := range sawIR.Funcs {
			names = append(names, fn.Name)
		}
		t.Fatalf("nested fn not flattened under a qualified name, funcs: %v", names)
	}
}

func TestCompileNoMainFailsAtLink(t *testing.T) {
	res, err := runSource(t, "fn lib_only() {}\n", nil)
	var phErr *PhaseError
	if !errors.As(err, &phErr) {
		t.Fatalf("want *PhaseError, got %v", err)
	}
	if phErr.Phase != PhaseLink {
		t.Fatalf("phase = %v, want link", phErr.Phase)
	}
	if !res.Session.Bag.HasErrors() {
		t.Fatal("missing entry point must leave a diagnostic")
	}
}

func TestCompileUnknownMacroFailsAtExpand(t *testing.T) {
	_, err := runSource(t, "fn main() { mystery!(1); }\n", nil)
	var phErr *PhaseError
	if !errors.As(err, &phErr) {
		t.Fatalf("want *PhaseError, got %v", err)
	}
	if phErr.Phase != PhaseExpand {
		t.Fatalf("phase = %v, want expand", phErr.Phase)
	}
}

func TestCompileUnknownCallFailsAtAnalyze(t *testing.T) {
	_, err := runSource(t, "fn main() { missing(); }\n", nil)
	var phErr *PhaseError
	if !errors.As(err, &phErr) {
		t.Fatalf("want *PhaseError, got %v", err)
	}
	if phErr.Phase != PhaseAnalyze {
		t.Fatalf("phase = %v, want analyze", phErr.Phase)
	}
}

func TestCompileDuplicateFnFailsAtAnalyze(t *testing.T) {
	_, err := runSource(t, "fn main() {}\nfn main() {}\n", nil)
	var phErr *PhaseError
	if !errors.As(err, &phErr) {
		t.Fatalf("want *PhaseError, got %v", err)
	}
	if phErr.Phase != PhaseAnalyze {
		t.Fatalf("phase = %v, want analyze", phErr.Phase)
	}
}

func TestAnalyzeGlobMap(t *testing.T) {
	src := `
use std::io::*;
use std::fmt::*;
use std::io::*;

fn main() {}
`
	var saw *Analyzed
	cb := &testCallbacks{build: func(*Session) *ControllerSet {
		cs := NewControllerSet()
		cs.ProduceGlobMap = true
		cs.Set(PhaseAnalyze, PhaseController{
			Stop: Stop,
			Callback: func(st State) error {
				saw = st.(*Analyzed)
				return nil
			},
		})
		return cs
	}}
	res, err := runSource(t, src, cb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saw == nil {
		t.Fatal("analyze callback did not fire")
	}
	if len(saw.GlobMap) != 2 {
		t.Fatalf("glob map has %d entries, want 2: %v", len(saw.GlobMap), saw.GlobMap)
	}
	if _, ok := saw.GlobMap["std::io"]; !ok {
		t.Fatal("std::io glob missing from map")
	}
	if !res.Session.Bag.HasWarnings() {
		t.Fatal("duplicate glob import should warn")
	}
}

func TestAnalyzeGlobMapOffByDefault(t *testing.T) {
	var saw *Analyzed
	cb := &testCallbacks{build: func(*Session) *ControllerSet {
		cs := NewControllerSet()
		cs.Set(PhaseAnalyze, PhaseController{
			Stop: Stop,
			Callback: func(st State) error {
				saw = st.(*Analyzed)
				return nil
			},
		})
		return cs
	}}
	if _, err := runSource(t, "use std::io::*;\nfn main() {}\n", cb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saw.GlobMap != nil {
		t.Fatalf("glob map must be nil unless requested, got %v", saw.GlobMap)
	}
}

func TestParseBadSourceFailsAtParse(t *testing.T) {
	_, err := runSource(t, "fn 123() {}\n", nil)
	var phErr *PhaseError
	if !errors.As(err, &phErr) {
		t.Fatalf("want *PhaseError, got %v", err)
	}
	if phErr.Phase != PhaseParse {
		t.Fatalf("phase = %v, want parse", phErr.Phase)
	}
}
