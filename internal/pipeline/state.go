package pipeline

import (
	"flint/internal/ast"
	"flint/internal/ir"
	"flint/internal/source"
	"flint/internal/symbols"
)

// State is the phase-tagged snapshot of pipeline data handed to callbacks.
//
// It is a closed sum: exactly one variant per phase, each exposing only the
// fields that phase produces and retains. Callbacks type-switch on the
// concrete variant; reaching for another phase's data is a compile error
// because the field does not exist on the variant.
//
// Ownership is linear: every production step consumes the previous variant
// and returns the next, so no two live variants coexist and later phases
// cannot reach back into discarded data.
type State interface {
	// Phase identifies the phase that produced this state.
	Phase() Phase

	state()
}

// Parsed is the state after PhaseParse: the unexpanded syntax tree.
type Parsed struct {
	Tree  *ast.File
	Files *source.FileSet
}

// Expanded is the state after PhaseExpand: macros are gone from the tree.
type Expanded struct {
	Tree *ast.File
}

// Assigned is the state after PhaseAssignIds.
type Assigned struct {
	Tree *ast.File
	IDs  *ast.IDMap
}

// Analyzed is the state after PhaseAnalyze: tree plus semantic side tables.
// GlobMap is nil unless the ControllerSet requested it.
type Analyzed struct {
	Tree    *ast.File
	IDs     *ast.IDMap
	Symbols *symbols.Table
	GlobMap symbols.GlobMap
}

// Translated is the state after PhaseTranslate. The syntax tree no longer
// exists; only the IR handle survives.
type Translated struct {
	IR *ir.Module
}

// Generated is the state after PhaseCodeGen.
type Generated struct {
	Object     *ir.ObjectFile
	ObjectPath string
}

// Linked is the state after PhaseLink.
type Linked struct {
	OutputPath string
}

func (*Parsed) Phase() Phase     { return PhaseParse }
func (*Expanded) Phase() Phase   { return PhaseExpand }
func (*Assigned) Phase() Phase   { return PhaseAssignIds }
func (*Analyzed) Phase() Phase   { return PhaseAnalyze }
func (*Translated) Phase() Phase { return PhaseTranslate }
func (*Generated) Phase() Phase  { return PhaseCodeGen }
func (*Linked) Phase() Phase     { return PhaseLink }

func (*Parsed) state()     {}
func (*Expanded) state()   {}
func (*Assigned) state()   {}
func (*Analyzed) state()   {}
func (*Translated) state() {}
func (*Generated) state()  {}
func (*Linked) state()     {}
