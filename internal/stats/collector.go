// Package stats is the reference pipeline customization: it inspects the
// unexpanded syntax tree right after parse and accumulates crate-wide
// counters, never letting the rest of the pipeline run.
package stats

import (
	"flint/internal/ast"
)

// Collector walks a pre-expansion tree counting function items by their
// parameter count and uses of the `println!` macro.
//
// Nested function definitions are counted independently of their enclosing
// function; closures are not function items and are never counted. Since
// the traversal runs before macro expansion, invocations nested inside a
// macro's own arguments are raw tokens and stay invisible; that is a known
// limitation of collecting this early.
type Collector struct {
	ast.Inspector

	PrintlnCount uint
	ArgCounts    map[uint]uint
}

func NewCollector() *Collector {
	return &Collector{ArgCounts: make(map[uint]uint)}
}

// VisitFn tallies the function's parameter count and keeps descending so
// nested definitions are seen too.
func (c *Collector) VisitFn(fn *ast.FnItem) bool {
	c.ArgCounts[uint(len(fn.Params))]++
	return true
}

// VisitMacro counts invocations whose path is literally `println`.
func (c *Collector) VisitMacro(m *ast.MacroExpr) bool {
	if m.Path.String() == "println" {
		c.PrintlnCount++
	}
	return true
}

// Collect runs the collector over a whole file.
func (c *Collector) Collect(f *ast.File) {
	ast.Walk(c, f)
}
