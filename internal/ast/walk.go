package ast

// Visitor is the capability interface for tree traversal. Each composite
// node gets a Visit method whose return value decides whether Walk descends
// into the node's children. Consumers embed Inspector and override only the
// node kinds they care about.
type Visitor interface {
	VisitFile(*File) bool
	VisitFn(*FnItem) bool
	VisitStruct(*StructItem) bool
	VisitUse(*UseItem) bool
	VisitLet(*LetStmt) bool
	VisitReturn(*ReturnStmt) bool
	VisitExprStmt(*ExprStmt) bool
	VisitCall(*CallExpr) bool
	VisitBinary(*BinaryExpr) bool
	VisitClosure(*ClosureExpr) bool
	VisitMacro(*MacroExpr) bool
	VisitIdent(*IdentExpr)
	VisitLit(*LitExpr)
}

// Inspector is the default Visitor: visit every child, do nothing.
type Inspector struct{}

func (Inspector) VisitFile(*File) bool          { return true }
func (Inspector) VisitFn(*FnItem) bool          { return true }
func (Inspector) VisitStruct(*StructItem) bool  { return true }
func (Inspector) VisitUse(*UseItem) bool        { return true }
func (Inspector) VisitLet(*LetStmt) bool        { return true }
func (Inspector) VisitReturn(*ReturnStmt) bool  { return true }
func (Inspector) VisitExprStmt(*ExprStmt) bool  { return true }
func (Inspector) VisitCall(*CallExpr) bool      { return true }
func (Inspector) VisitBinary(*BinaryExpr) bool  { return true }
func (Inspector) VisitClosure(*ClosureExpr) bool { return true }
func (Inspector) VisitMacro(*MacroExpr) bool    { return true }
func (Inspector) VisitIdent(*IdentExpr)         {}
func (Inspector) VisitLit(*LitExpr)             {}

// Walk performs a depth-first traversal of n, dispatching to v per node kind.
func Walk(v Visitor, n Node) {
	switch n := n.(type) {
	case *File:
		if v.VisitFile(n) {
			for _, it := range n.Items {
				Walk(v, it)
			}
		}
	case *FnItem:
		if v.VisitFn(n) && n.Body != nil {
			Walk(v, n.Body)
		}
	case *StructItem:
		v.VisitStruct(n)
	case *UseItem:
		v.VisitUse(n)
	case *Block:
		for _, st := range n.Stmts {
			Walk(v, st)
		}
	case *LetStmt:
		if v.VisitLet(n) && n.Value != nil {
			Walk(v, n.Value)
		}
	case *ExprStmt:
		if v.VisitExprStmt(n) {
			Walk(v, n.X)
		}
	case *ReturnStmt:
		if v.VisitReturn(n) && n.X != nil {
			Walk(v, n.X)
		}
	case *ItemStmt:
		Walk(v, n.It)
	case *CallExpr:
		if v.VisitCall(n) {
			Walk(v, n.Fn)
			for _, arg := range n.Args {
				Walk(v, arg)
			}
		}
	case *BinaryExpr:
		if v.VisitBinary(n) {
			Walk(v, n.L)
			Walk(v, n.R)
		}
	case *ClosureExpr:
		if v.VisitClosure(n) {
			Walk(v, n.Body)
		}
	case *MacroExpr:
		// no structured children before expansion; the raw tokens stay opaque
		v.VisitMacro(n)
	case *IdentExpr:
		v.VisitIdent(n)
	case *LitExpr:
		v.VisitLit(n)
	}
}
