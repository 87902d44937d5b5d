package pipeline

import (
	"context"
	"fmt"

	"flint/internal/ast"
	"flint/internal/diag"
	"flint/internal/symbols"
)

// stepAssignIds numbers every node of the expanded tree.
func stepAssignIds(_ context.Context, _ *Session, prev State) (State, error) {
	expanded, ok := prev.(*Expanded)
	if !ok {
		return nil, fmt.Errorf("assign-ids: unexpected state %T", prev)
	}
	return &Assigned{Tree: expanded.Tree, IDs: ast.AssignIDs(expanded.Tree)}, nil
}

// stepAnalyze builds the symbol table, checks calls, and optionally
// records the glob-import map.
func stepAnalyze(_ context.Context, sess *Session, prev State) (State, error) {
	assigned, ok := prev.(*Assigned)
	if !ok {
		return nil, fmt.Errorf("analyze: unexpected state %T", prev)
	}

	an := &analyzer{
		reporter: sess.Reporter(),
		table:    symbols.NewTable(),
	}
	if sess.produceGlobMap {
		an.globMap = make(symbols.GlobMap)
	}

	ast.Walk(&collectPass{an: an}, assigned.Tree)
	ast.Walk(&checkPass{an: an}, assigned.Tree)

	return &Analyzed{
		Tree:    assigned.Tree,
		IDs:     assigned.IDs,
		Symbols: an.table,
		GlobMap: an.globMap,
	}, nil
}

type analyzer struct {
	reporter diag.Reporter
	table    *symbols.Table
	globMap  symbols.GlobMap
}

// collectPass records function definitions and imports.
type collectPass struct {
	ast.Inspector
	an *analyzer
}

func (p *collectPass) VisitFn(fn *ast.FnItem) bool {
	info := symbols.FnInfo{Name: fn.Name, Arity: len(fn.Params), Span: fn.NameSpn}
	if !p.an.table.Insert(info) {
		diag.ReportError(p.an.reporter, diag.SemDuplicateFn, fn.NameSpn,
			fmt.Sprintf("function `%s` is defined more than once", fn.Name))
	}
	return true
}

func (p *collectPass) VisitUse(use *ast.UseItem) bool {
	if p.an.globMap == nil || !use.Glob {
		return false
	}
	path := use.Path.String()
	if _, dup := p.an.globMap[path]; dup {
		diag.ReportWarning(p.an.reporter, diag.SemDuplicateImport, use.Span,
			fmt.Sprintf("`%s::*` is imported more than once", path))
		return false
	}
	p.an.globMap[path] = use.Span
	return false
}

// checkPass verifies that every called name resolves.
type checkPass struct {
	ast.Inspector
	an *analyzer
}

func (p *checkPass) VisitCall(call *ast.CallExpr) bool {
	callee, ok := call.Fn.(*ast.IdentExpr)
	if !ok {
		return true
	}
	if _, found := p.an.table.Lookup(callee.Name); !found {
		diag.ReportError(p.an.reporter, diag.SemUnknownCall, callee.Span,
			fmt.Sprintf("call to undefined function `%s`", callee.Name))
	}
	return true
}
