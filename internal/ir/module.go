// Package ir is the flat intermediate representation the tree is lowered
// into. Once a Module exists the syntax tree is gone; later phases and
// callbacks only ever see IR handles.
package ir

// Op is one stack-machine opcode.
type Op uint8

const (
	OpNop Op = iota
	// OpConst pushes a literal; Text holds its spelling.
	OpConst
	// OpLoad pushes the value bound to the name in Text.
	OpLoad
	// OpStore pops into the local named by Text.
	OpStore
	// OpCall invokes the function named by Text with N stacked arguments.
	OpCall
	// OpBinary applies the operator spelled in Text to the two top values.
	OpBinary
	// OpRet returns from the current function; N is 1 when a value is carried.
	OpRet
)

func (op Op) String() string {
	switch op {
	case OpNop:
		return "nop"
	case OpConst:
		return "const"
	case OpLoad:
		return "load"
	case OpStore:
		return "store"
	case OpCall:
		return "call"
	case OpBinary:
		return "binary"
	case OpRet:
		return "ret"
	}
	return "unknown"
}

// Instr is one instruction.
type Instr struct {
	Op   Op
	Text string
	N    uint32
}

// Func is one lowered function.
type Func struct {
	Name   string
	Params []string
	Instrs []Instr
}

// Module is the IR for a whole crate.
type Module struct {
	CrateName string
	Funcs     []Func
}

// Lookup finds a function by name.
func (m *Module) Lookup(name string) (*Func, bool) {
	for i := range m.Funcs {
		if m.Funcs[i].Name == name {
			return &m.Funcs[i], true
		}
	}
	return nil, false
}
