// Package symbols holds the semantic side tables built by the analyze phase.
package symbols

import "flint/internal/source"

// FnInfo describes one known function.
type FnInfo struct {
	Name    string
	Arity   int
	Span    source.Span
	Builtin bool
}

// Table maps function names to their signatures for one crate.
type Table struct {
	funcs map[string]FnInfo
}

// NewTable returns a table pre-seeded with the runtime builtins.
func NewTable() *Table {
	t := &Table{funcs: make(map[string]FnInfo, 16)}
	for _, name := range builtins {
		t.funcs[name] = FnInfo{Name: name, Arity: -1, Builtin: true}
	}
	return t
}

// runtime-provided functions; arity -1 means variadic
var builtins = []string{"print", "println", "format"}

// Insert records a function. Returns false when the name is already taken
// by a non-builtin definition.
func (t *Table) Insert(info FnInfo) bool {
	if existing, ok := t.funcs[info.Name]; ok && !existing.Builtin {
		return false
	}
	t.funcs[info.Name] = info
	return true
}

// Lookup finds a function by name.
func (t *Table) Lookup(name string) (FnInfo, bool) {
	info, ok := t.funcs[name]
	return info, ok
}

// Len counts user-defined functions, excluding builtins.
func (t *Table) Len() int {
	n := 0
	for _, info := range t.funcs {
		if !info.Builtin {
			n++
		}
	}
	return n
}

// GlobMap records glob imports (`use path::*`) by path.
type GlobMap map[string]source.Span
