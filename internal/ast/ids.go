package ast

// NodeID numbers a node within one compilation.
type NodeID uint32

// NoNodeID is the zero value; valid IDs start at 1.
const NoNodeID NodeID = 0

// IDMap assigns stable IDs to nodes in traversal order.
type IDMap struct {
	ids  map[Node]NodeID
	next NodeID
}

func NewIDMap() *IDMap {
	return &IDMap{ids: make(map[Node]NodeID, 64), next: 1}
}

// Assign gives n an ID, reusing an existing one on repeat calls.
func (m *IDMap) Assign(n Node) NodeID {
	if id, ok := m.ids[n]; ok {
		return id
	}
	id := m.next
	m.next++
	m.ids[n] = id
	return id
}

// Get looks up the ID previously assigned to n.
func (m *IDMap) Get(n Node) (NodeID, bool) {
	id, ok := m.ids[n]
	return id, ok
}

func (m *IDMap) Len() int {
	return len(m.ids)
}

type idAssigner struct {
	Inspector
	m *IDMap
}

func (a *idAssigner) VisitFile(n *File) bool          { a.m.Assign(n); return true }
func (a *idAssigner) VisitFn(n *FnItem) bool          { a.m.Assign(n); return true }
func (a *idAssigner) VisitStruct(n *StructItem) bool  { a.m.Assign(n); return true }
func (a *idAssigner) VisitUse(n *UseItem) bool        { a.m.Assign(n); return true }
func (a *idAssigner) VisitLet(n *LetStmt) bool        { a.m.Assign(n); return true }
func (a *idAssigner) VisitReturn(n *ReturnStmt) bool  { a.m.Assign(n); return true }
func (a *idAssigner) VisitExprStmt(n *ExprStmt) bool  { a.m.Assign(n); return true }
func (a *idAssigner) VisitCall(n *CallExpr) bool      { a.m.Assign(n); return true }
func (a *idAssigner) VisitBinary(n *BinaryExpr) bool  { a.m.Assign(n); return true }
func (a *idAssigner) VisitClosure(n *ClosureExpr) bool { a.m.Assign(n); return true }
func (a *idAssigner) VisitMacro(n *MacroExpr) bool    { a.m.Assign(n); return true }

// AssignIDs numbers every node of f in depth-first order.
func AssignIDs(f *File) *IDMap {
	m := NewIDMap()
	Walk(&idAssigner{m: m}, f)
	return m
}
